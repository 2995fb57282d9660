package core

import (
	"time"

	"github.com/google/uuid"
)

// LocationAddedEventType is the event type identifier.
const LocationAddedEventType = "LocationAdded"

// LocationAdded represents a new location of an organizational unit.
// IsPrimary is true when this is the unit's first location.
type LocationAdded struct {
	EventType      EventTypeString
	OrganizationID OrganizationIDString
	LocationID     LocationIDString
	Name           string
	Address        string
	IsPrimary      bool
	OccurredAt     OccurredAtTS
}

// BuildLocationAdded creates a new LocationAdded event.
func BuildLocationAdded(
	organizationID uuid.UUID,
	locationID uuid.UUID,
	name string,
	address string,
	isPrimary bool,
	occurredAt time.Time,
) LocationAdded {

	event := LocationAdded{
		EventType:      LocationAddedEventType,
		OrganizationID: organizationID.String(),
		LocationID:     locationID.String(),
		Name:           name,
		Address:        address,
		IsPrimary:      isPrimary,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LocationAdded) IsEventType() string {
	return LocationAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LocationAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
