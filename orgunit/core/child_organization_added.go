package core

import (
	"time"

	"github.com/google/uuid"
)

// ChildOrganizationAddedEventType is the event type identifier.
const ChildOrganizationAddedEventType = "ChildOrganizationAdded"

// ChildOrganizationAdded represents linking a child unit to this parent.
// ChildStatus is the child's status at linking time.
type ChildOrganizationAdded struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	ChildID        OrganizationIDString
	ChildName      string
	ChildType      string
	ChildStatus    string
	OccurredAt     OccurredAtTS
}

// BuildChildOrganizationAdded creates a new ChildOrganizationAdded event.
func BuildChildOrganizationAdded(
	organizationID uuid.UUID,
	childID uuid.UUID,
	childName string,
	childType Type,
	childStatus Status,
	occurredAt time.Time,
) ChildOrganizationAdded {

	event := ChildOrganizationAdded{
		EventType:      ChildOrganizationAddedEventType,
		OrganizationID: organizationID.String(),
		ChildID:        childID.String(),
		ChildName:      childName,
		ChildType:      string(childType),
		ChildStatus:    string(childStatus),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ChildOrganizationAdded) IsEventType() string {
	return ChildOrganizationAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ChildOrganizationAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
