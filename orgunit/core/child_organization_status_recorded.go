package core

import (
	"time"

	"github.com/google/uuid"
)

// ChildOrganizationStatusRecordedEventType is the event type identifier.
const ChildOrganizationStatusRecordedEventType = "ChildOrganizationStatusRecorded"

// ChildOrganizationStatusRecorded represents the parent learning about a child's
// status change, recorded by the reconciliation consumer of the child's stream.
type ChildOrganizationStatusRecorded struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	ChildID        OrganizationIDString
	Status         string
	OccurredAt     OccurredAtTS
}

// BuildChildOrganizationStatusRecorded creates a new ChildOrganizationStatusRecorded event.
func BuildChildOrganizationStatusRecorded(
	organizationID uuid.UUID,
	childID uuid.UUID,
	status Status,
	occurredAt time.Time,
) ChildOrganizationStatusRecorded {

	event := ChildOrganizationStatusRecorded{
		EventType:      ChildOrganizationStatusRecordedEventType,
		OrganizationID: organizationID.String(),
		ChildID:        childID.String(),
		Status:         string(status),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ChildOrganizationStatusRecorded) IsEventType() string {
	return ChildOrganizationStatusRecordedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ChildOrganizationStatusRecorded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
