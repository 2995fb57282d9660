package core

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationAbsorbedEventType is the event type identifier.
const OrganizationAbsorbedEventType = "OrganizationAbsorbed"

// OrganizationAbsorbed represents the surviving side of a merge: this unit
// absorbed the merged unit. The survivor's own status does not change.
type OrganizationAbsorbed struct {
	EventType            EventTypeString
	OrganizationID       OrganizationIDString
	MergedOrganizationID OrganizationIDString
	OccurredAt           OccurredAtTS
}

// BuildOrganizationAbsorbed creates a new OrganizationAbsorbed event.
func BuildOrganizationAbsorbed(
	organizationID uuid.UUID,
	mergedOrganizationID uuid.UUID,
	occurredAt time.Time,
) OrganizationAbsorbed {

	event := OrganizationAbsorbed{
		EventType:            OrganizationAbsorbedEventType,
		OrganizationID:       organizationID.String(),
		MergedOrganizationID: mergedOrganizationID.String(),
		OccurredAt:           ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e OrganizationAbsorbed) IsEventType() string {
	return OrganizationAbsorbedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrganizationAbsorbed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
