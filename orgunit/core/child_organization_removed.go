package core

import (
	"time"

	"github.com/google/uuid"
)

// ChildOrganizationRemovedEventType is the event type identifier.
const ChildOrganizationRemovedEventType = "ChildOrganizationRemoved"

// ChildOrganizationRemoved represents unlinking a child unit from this parent.
type ChildOrganizationRemoved struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	ChildID        OrganizationIDString
	OccurredAt     OccurredAtTS
}

// BuildChildOrganizationRemoved creates a new ChildOrganizationRemoved event.
func BuildChildOrganizationRemoved(
	organizationID uuid.UUID,
	childID uuid.UUID,
	occurredAt time.Time,
) ChildOrganizationRemoved {

	event := ChildOrganizationRemoved{
		EventType:      ChildOrganizationRemovedEventType,
		OrganizationID: organizationID.String(),
		ChildID:        childID.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ChildOrganizationRemoved) IsEventType() string {
	return ChildOrganizationRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ChildOrganizationRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
