package core

import (
	"time"

	"github.com/google/uuid"
)

// Location command type identifiers.
const (
	AddLocationCommandType           = "AddLocation"
	RemoveLocationCommandType        = "RemoveLocation"
	ChangePrimaryLocationCommandType = "ChangePrimaryLocation"
)

// AddLocation represents the intent to add a location to a unit.
// The unit's first location automatically becomes its primary location.
type AddLocation struct {
	OrganizationID uuid.UUID
	LocationID     uuid.UUID
	Name           string
	Address        string
	OccurredAt     OccurredAtTS
}

// BuildAddLocation creates a new AddLocation command.
func BuildAddLocation(
	organizationID uuid.UUID,
	locationID uuid.UUID,
	name string,
	address string,
	occurredAt time.Time,
) AddLocation {

	return AddLocation{
		OrganizationID: organizationID,
		LocationID:     locationID,
		Name:           name,
		Address:        address,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c AddLocation) CommandType() string {
	return AddLocationCommandType
}

// Validate checks the command payload in isolation.
func (c AddLocation) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireID("location id", c.LocationID); err != nil {
		return err
	}

	return requireText("location name", c.Name)
}

// RemoveLocation represents the intent to remove a location from a unit.
// The primary location cannot be removed while other locations exist.
type RemoveLocation struct {
	OrganizationID uuid.UUID
	LocationID     uuid.UUID
	OccurredAt     OccurredAtTS
}

// BuildRemoveLocation creates a new RemoveLocation command.
func BuildRemoveLocation(
	organizationID uuid.UUID,
	locationID uuid.UUID,
	occurredAt time.Time,
) RemoveLocation {

	return RemoveLocation{
		OrganizationID: organizationID,
		LocationID:     locationID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c RemoveLocation) CommandType() string {
	return RemoveLocationCommandType
}

// Validate checks the command payload in isolation.
func (c RemoveLocation) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}

	return requireID("location id", c.LocationID)
}

// ChangePrimaryLocation represents the intent to make an existing location primary.
type ChangePrimaryLocation struct {
	OrganizationID uuid.UUID
	LocationID     uuid.UUID
	OccurredAt     OccurredAtTS
}

// BuildChangePrimaryLocation creates a new ChangePrimaryLocation command.
func BuildChangePrimaryLocation(
	organizationID uuid.UUID,
	locationID uuid.UUID,
	occurredAt time.Time,
) ChangePrimaryLocation {

	return ChangePrimaryLocation{
		OrganizationID: organizationID,
		LocationID:     locationID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c ChangePrimaryLocation) CommandType() string {
	return ChangePrimaryLocationCommandType
}

// Validate checks the command payload in isolation.
func (c ChangePrimaryLocation) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}

	return requireID("location id", c.LocationID)
}
