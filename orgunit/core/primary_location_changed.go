package core

import (
	"time"

	"github.com/google/uuid"
)

// PrimaryLocationChangedEventType is the event type identifier.
const PrimaryLocationChangedEventType = "PrimaryLocationChanged"

// PrimaryLocationChanged represents a change of the unit's primary location.
type PrimaryLocationChanged struct {
	EventType          EventTypeString
	OrganizationID     OrganizationIDString
	LocationID         LocationIDString
	PreviousLocationID LocationIDString
	OccurredAt         OccurredAtTS
}

// BuildPrimaryLocationChanged creates a new PrimaryLocationChanged event.
func BuildPrimaryLocationChanged(
	organizationID uuid.UUID,
	locationID uuid.UUID,
	previousLocationID LocationIDString,
	occurredAt time.Time,
) PrimaryLocationChanged {

	event := PrimaryLocationChanged{
		EventType:          PrimaryLocationChangedEventType,
		OrganizationID:     organizationID.String(),
		LocationID:         locationID.String(),
		PreviousLocationID: previousLocationID,
		OccurredAt:         ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e PrimaryLocationChanged) IsEventType() string {
	return PrimaryLocationChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e PrimaryLocationChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
