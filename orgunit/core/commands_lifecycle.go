package core

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle command type identifiers.
const (
	CreateOrganizationCommandType       = "CreateOrganization"
	ChangeOrganizationStatusCommandType = "ChangeOrganizationStatus"
	DissolveOrganizationCommandType     = "DissolveOrganization"
	MergeOrganizationsCommandType       = "MergeOrganizations"
	AcquireOrganizationCommandType      = "AcquireOrganization"
)

// CreateOrganization represents the intent to bring a new organizational unit
// into existence. ParentID is uuid.Nil for root units.
type CreateOrganization struct {
	OrganizationID uuid.UUID
	Name           string
	OrgType        string
	ParentID       uuid.UUID
	OccurredAt     OccurredAtTS
}

// BuildCreateOrganization creates a new CreateOrganization command.
func BuildCreateOrganization(
	organizationID uuid.UUID,
	name string,
	orgType Type,
	parentID uuid.UUID,
	occurredAt time.Time,
) CreateOrganization {

	return CreateOrganization{
		OrganizationID: organizationID,
		Name:           name,
		OrgType:        string(orgType),
		ParentID:       parentID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c CreateOrganization) CommandType() string {
	return CreateOrganizationCommandType
}

// Validate checks the command payload in isolation.
func (c CreateOrganization) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireText("name", c.Name); err != nil {
		return err
	}
	if _, err := ParseType(c.OrgType); err != nil {
		return err
	}
	if c.ParentID == c.OrganizationID {
		return invalidCommand("organization cannot be its own parent")
	}

	return nil
}

// ChangeOrganizationStatus represents the intent to move a unit through its
// lifecycle. Terminal statuses are not reachable with this command; use
// DissolveOrganization, MergeOrganizations, or AcquireOrganization.
type ChangeOrganizationStatus struct {
	OrganizationID uuid.UUID
	Status         string
	Reason         string
	OccurredAt     OccurredAtTS
}

// BuildChangeOrganizationStatus creates a new ChangeOrganizationStatus command.
func BuildChangeOrganizationStatus(
	organizationID uuid.UUID,
	status Status,
	reason string,
	occurredAt time.Time,
) ChangeOrganizationStatus {

	return ChangeOrganizationStatus{
		OrganizationID: organizationID,
		Status:         string(status),
		Reason:         reason,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c ChangeOrganizationStatus) CommandType() string {
	return ChangeOrganizationStatusCommandType
}

// Validate checks the command payload in isolation.
func (c ChangeOrganizationStatus) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if _, err := ParseStatus(c.Status); err != nil {
		return err
	}

	return nil
}

// DissolveOrganization represents the intent to dissolve a unit permanently.
type DissolveOrganization struct {
	OrganizationID uuid.UUID
	Reason         string
	OccurredAt     OccurredAtTS
}

// BuildDissolveOrganization creates a new DissolveOrganization command.
func BuildDissolveOrganization(
	organizationID uuid.UUID,
	reason string,
	occurredAt time.Time,
) DissolveOrganization {

	return DissolveOrganization{
		OrganizationID: organizationID,
		Reason:         reason,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c DissolveOrganization) CommandType() string {
	return DissolveOrganizationCommandType
}

// Validate checks the command payload in isolation.
func (c DissolveOrganization) Validate() error {
	return requireID("organization id", c.OrganizationID)
}

// MergeOrganizations represents the intent to merge one unit into a surviving
// unit. The merged unit ends in the terminal Merged status; the survivor
// records the absorption on its own stream.
type MergeOrganizations struct {
	OrganizationID     uuid.UUID // the unit being merged away
	IntoOrganizationID uuid.UUID // the surviving unit
	OccurredAt         OccurredAtTS
}

// BuildMergeOrganizations creates a new MergeOrganizations command.
func BuildMergeOrganizations(
	organizationID uuid.UUID,
	intoOrganizationID uuid.UUID,
	occurredAt time.Time,
) MergeOrganizations {

	return MergeOrganizations{
		OrganizationID:     organizationID,
		IntoOrganizationID: intoOrganizationID,
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c MergeOrganizations) CommandType() string {
	return MergeOrganizationsCommandType
}

// Validate checks the command payload in isolation.
func (c MergeOrganizations) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireID("surviving organization id", c.IntoOrganizationID); err != nil {
		return err
	}
	if c.OrganizationID == c.IntoOrganizationID {
		return invalidCommand("organization cannot merge into itself")
	}

	return nil
}

// AcquireOrganization represents the intent of one unit to acquire another.
// The acquired unit ends in the terminal Acquired status with the acquirer as
// parent; the acquirer records the unit as a child on its own stream.
type AcquireOrganization struct {
	OrganizationID uuid.UUID // the unit being acquired
	AcquirerID     uuid.UUID
	OccurredAt     OccurredAtTS
}

// BuildAcquireOrganization creates a new AcquireOrganization command.
func BuildAcquireOrganization(
	organizationID uuid.UUID,
	acquirerID uuid.UUID,
	occurredAt time.Time,
) AcquireOrganization {

	return AcquireOrganization{
		OrganizationID: organizationID,
		AcquirerID:     acquirerID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c AcquireOrganization) CommandType() string {
	return AcquireOrganizationCommandType
}

// Validate checks the command payload in isolation.
func (c AcquireOrganization) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireID("acquirer id", c.AcquirerID); err != nil {
		return err
	}
	if c.OrganizationID == c.AcquirerID {
		return invalidCommand("organization cannot acquire itself")
	}

	return nil
}
