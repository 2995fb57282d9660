package core

import (
	"errors"
	"fmt"
)

// Type classifies an organizational unit.
type Type string

// The closed set of organization types. Internal types form the company
// hierarchy; external types represent business relationships.
const (
	TypeCompany    Type = "Company"
	TypeDivision   Type = "Division"
	TypeDepartment Type = "Department"
	TypeTeam       Type = "Team"
	TypeProject    Type = "Project"
	TypePartner    Type = "Partner"
	TypeCustomer   Type = "Customer"
	TypeVendor     Type = "Vendor"
	TypeNonProfit  Type = "NonProfit"
	TypeGovernment Type = "Government"
	TypeOther      Type = "Other"
)

// internalHierarchyRank orders the internal types from the top of the
// hierarchy downwards. External types have no rank.
var internalHierarchyRank = map[Type]int{
	TypeCompany:    1,
	TypeDivision:   2,
	TypeDepartment: 3,
	TypeTeam:       4,
	TypeProject:    5,
}

var externalTypes = map[Type]struct{}{
	TypePartner:    {},
	TypeCustomer:   {},
	TypeVendor:     {},
	TypeNonProfit:  {},
	TypeGovernment: {},
	TypeOther:      {},
}

// ParseType converts a string to a Type, rejecting unknown values.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, internal := internalHierarchyRank[t]; internal {
		return t, nil
	}
	if _, external := externalTypes[t]; external {
		return t, nil
	}

	return "", errors.Join(ErrInvalidCommand, fmt.Errorf("unknown organization type: %q", s))
}

// IsInternal reports whether t is part of the internal company hierarchy.
func (t Type) IsInternal() bool {
	_, internal := internalHierarchyRank[t]
	return internal
}

// CanParent reports whether a unit of type t may have a child of the given type.
// Internal children must sit strictly below their parent in the hierarchy;
// external children may hang off any internal unit.
func (t Type) CanParent(child Type) bool {
	parentRank, parentInternal := internalHierarchyRank[t]
	if !parentInternal {
		return false
	}

	childRank, childInternal := internalHierarchyRank[child]
	if !childInternal {
		return true
	}

	return childRank > parentRank
}
