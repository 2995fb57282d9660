package core

import (
	"time"
)

// Member is a person's membership in one organizational unit.
// ReportsTo is empty for members without a manager.
type Member struct {
	PersonID  PersonIDString
	Role      Role
	ReportsTo PersonIDString
	JoinedAt  time.Time
}

// Location is a physical or logical site of an organizational unit.
type Location struct {
	LocationID LocationIDString
	Name       string
	Address    string
	AddedAt    time.Time
}

// ChildOrganization is the parent-side bookkeeping record of a child unit.
// Status reflects the child's last recorded status, which may lag the child's
// own stream until reconciliation records it here.
type ChildOrganization struct {
	OrganizationID OrganizationIDString
	Name           string
	Type           Type
	Status         Status
	AddedAt        time.Time
}

// State is the current state of one organizational unit, derived purely by
// folding its event stream. The zero value represents a unit that does not exist.
type State struct {
	ID                OrganizationIDString
	Name              string
	Type              Type
	Status            Status
	ParentID          OrganizationIDString
	Members           map[PersonIDString]Member
	Locations         map[LocationIDString]Location
	PrimaryLocationID LocationIDString
	Children          map[OrganizationIDString]ChildOrganization
	Absorbed          map[OrganizationIDString]time.Time
	MergedInto        OrganizationIDString
	AcquiredBy        OrganizationIDString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Exists reports whether the unit has been created.
func (s State) Exists() bool {
	return s.ID != ""
}

// DependentsOf returns the person ids of members reporting to the given member,
// in no particular order.
func (s State) DependentsOf(personID PersonIDString) []PersonIDString {
	var dependents []PersonIDString
	for id, member := range s.Members {
		if member.ReportsTo == personID {
			dependents = append(dependents, id)
		}
	}

	return dependents
}

// HasNonTerminalChildren reports whether any child's recorded status still has
// outgoing transitions. Such children block dissolution of the parent.
func (s State) HasNonTerminalChildren() bool {
	for _, child := range s.Children {
		if !child.Status.IsTerminal() {
			return true
		}
	}

	return false
}
