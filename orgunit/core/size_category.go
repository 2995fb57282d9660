package core

// SizeCategory buckets an organizational unit by member count.
type SizeCategory string

const (
	SizeStartup    SizeCategory = "Startup"
	SizeSmall      SizeCategory = "Small"
	SizeMedium     SizeCategory = "Medium"
	SizeLarge      SizeCategory = "Large"
	SizeEnterprise SizeCategory = "Enterprise"
	SizeMegaCorp   SizeCategory = "MegaCorp"
)

// SizeCategoryFromMemberCount derives the category from a member count.
func SizeCategoryFromMemberCount(count int) SizeCategory {
	switch {
	case count <= 10:
		return SizeStartup
	case count <= 50:
		return SizeSmall
	case count <= 250:
		return SizeMedium
	case count <= 1000:
		return SizeLarge
	case count <= 5000:
		return SizeEnterprise
	default:
		return SizeMegaCorp
	}
}
