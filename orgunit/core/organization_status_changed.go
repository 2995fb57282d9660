package core

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationStatusChangedEventType is the event type identifier.
const OrganizationStatusChangedEventType = "OrganizationStatusChanged"

// OrganizationStatusChanged represents a lifecycle status change of a unit.
// PreviousStatus is kept for history; Reason is free text and may be empty.
type OrganizationStatusChanged struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	Status         string
	PreviousStatus string
	Reason         string
	OccurredAt     OccurredAtTS
}

// BuildOrganizationStatusChanged creates a new OrganizationStatusChanged event.
func BuildOrganizationStatusChanged(
	organizationID uuid.UUID,
	status Status,
	previousStatus Status,
	reason string,
	occurredAt time.Time,
) OrganizationStatusChanged {

	event := OrganizationStatusChanged{
		EventType:      OrganizationStatusChangedEventType,
		OrganizationID: organizationID.String(),
		Status:         string(status),
		PreviousStatus: string(previousStatus),
		Reason:         reason,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e OrganizationStatusChanged) IsEventType() string {
	return OrganizationStatusChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrganizationStatusChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
