package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberAddedEventType is the event type identifier.
const MemberAddedEventType = "MemberAdded"

// MemberAdded represents when a person joins an organizational unit.
// ReportsTo is empty when the member has no manager.
type MemberAdded struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	PersonID       PersonIDString
	RoleTitle      string
	RoleLevel      string
	Permissions    []string
	ReportsTo      PersonIDString
	OccurredAt     OccurredAtTS
}

// BuildMemberAdded creates a new MemberAdded event.
func BuildMemberAdded(
	organizationID uuid.UUID,
	personID PersonIDString,
	role Role,
	reportsTo PersonIDString,
	occurredAt time.Time,
) MemberAdded {

	event := MemberAdded{
		EventType:      MemberAddedEventType,
		OrganizationID: organizationID.String(),
		PersonID:       personID,
		RoleTitle:      role.Title,
		RoleLevel:      string(role.Level),
		Permissions:    role.Permissions,
		ReportsTo:      reportsTo,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e MemberAdded) IsEventType() string {
	return MemberAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// Role reconstructs the role value carried by the event.
func (e MemberAdded) Role() Role {
	return Role{
		Title:       e.RoleTitle,
		Level:       RoleLevel(e.RoleLevel),
		Permissions: e.Permissions,
	}
}
