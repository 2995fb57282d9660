package core

import (
	"time"

	"github.com/google/uuid"
)

// LocationRemovedEventType is the event type identifier.
const LocationRemovedEventType = "LocationRemoved"

// LocationRemoved represents the removal of a location from an organizational unit.
type LocationRemoved struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	LocationID     LocationIDString
	OccurredAt     OccurredAtTS
}

// BuildLocationRemoved creates a new LocationRemoved event.
func BuildLocationRemoved(
	organizationID uuid.UUID,
	locationID uuid.UUID,
	occurredAt time.Time,
) LocationRemoved {

	event := LocationRemoved{
		EventType:      LocationRemovedEventType,
		OrganizationID: organizationID.String(),
		LocationID:     locationID.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LocationRemoved) IsEventType() string {
	return LocationRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LocationRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
