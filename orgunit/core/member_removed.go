package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberRemovedEventType is the event type identifier.
const MemberRemovedEventType = "MemberRemoved"

// MemberRemoved represents when a person leaves an organizational unit.
// Dependent reporting lines are always rewired by preceding ReportingLineChanged
// events in the same append, so a stream never contains a dangling manager.
type MemberRemoved struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	PersonID       PersonIDString
	OccurredAt     OccurredAtTS
}

// BuildMemberRemoved creates a new MemberRemoved event.
func BuildMemberRemoved(
	organizationID uuid.UUID,
	personID PersonIDString,
	occurredAt time.Time,
) MemberRemoved {

	event := MemberRemoved{
		EventType:      MemberRemovedEventType,
		OrganizationID: organizationID.String(),
		PersonID:       personID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e MemberRemoved) IsEventType() string {
	return MemberRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
