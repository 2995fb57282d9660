package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberRoleUpdatedEventType is the event type identifier.
const MemberRoleUpdatedEventType = "MemberRoleUpdated"

// MemberRoleUpdated represents a role change of an existing member.
// The previous role is kept for history.
type MemberRoleUpdated struct {
	EventType         EventTypeString
	OrganizationID    OrganizationIDString
	PersonID          PersonIDString
	RoleTitle         string
	RoleLevel         string
	Permissions       []string
	PreviousRoleTitle string
	PreviousRoleLevel string
	OccurredAt        OccurredAtTS
}

// BuildMemberRoleUpdated creates a new MemberRoleUpdated event.
func BuildMemberRoleUpdated(
	organizationID uuid.UUID,
	personID PersonIDString,
	role Role,
	previousRole Role,
	occurredAt time.Time,
) MemberRoleUpdated {

	event := MemberRoleUpdated{
		EventType:         MemberRoleUpdatedEventType,
		OrganizationID:    organizationID.String(),
		PersonID:          personID,
		RoleTitle:         role.Title,
		RoleLevel:         string(role.Level),
		Permissions:       role.Permissions,
		PreviousRoleTitle: previousRole.Title,
		PreviousRoleLevel: string(previousRole.Level),
		OccurredAt:        ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e MemberRoleUpdated) IsEventType() string {
	return MemberRoleUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRoleUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// Role reconstructs the new role value carried by the event.
func (e MemberRoleUpdated) Role() Role {
	return Role{
		Title:       e.RoleTitle,
		Level:       RoleLevel(e.RoleLevel),
		Permissions: e.Permissions,
	}
}
