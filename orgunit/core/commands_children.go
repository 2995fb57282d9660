package core

import (
	"time"

	"github.com/google/uuid"
)

// Child-organization command type identifiers.
const (
	AddChildOrganizationCommandType          = "AddChildOrganization"
	RemoveChildOrganizationCommandType       = "RemoveChildOrganization"
	RecordChildOrganizationStatusCommandType = "RecordChildOrganizationStatus"
)

// AddChildOrganization represents the intent to link a child unit under this parent.
type AddChildOrganization struct {
	OrganizationID uuid.UUID
	ChildID        uuid.UUID
	ChildName      string
	ChildType      string
	ChildStatus    string
	OccurredAt     OccurredAtTS
}

// BuildAddChildOrganization creates a new AddChildOrganization command.
func BuildAddChildOrganization(
	organizationID uuid.UUID,
	childID uuid.UUID,
	childName string,
	childType Type,
	childStatus Status,
	occurredAt time.Time,
) AddChildOrganization {

	return AddChildOrganization{
		OrganizationID: organizationID,
		ChildID:        childID,
		ChildName:      childName,
		ChildType:      string(childType),
		ChildStatus:    string(childStatus),
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c AddChildOrganization) CommandType() string {
	return AddChildOrganizationCommandType
}

// Validate checks the command payload in isolation.
func (c AddChildOrganization) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireID("child id", c.ChildID); err != nil {
		return err
	}
	if c.ChildID == c.OrganizationID {
		return invalidCommand("organization cannot be its own child")
	}
	if err := requireText("child name", c.ChildName); err != nil {
		return err
	}
	if _, err := ParseType(c.ChildType); err != nil {
		return err
	}
	if _, err := ParseStatus(c.ChildStatus); err != nil {
		return err
	}

	return nil
}

// RemoveChildOrganization represents the intent to unlink a child unit.
type RemoveChildOrganization struct {
	OrganizationID uuid.UUID
	ChildID        uuid.UUID
	OccurredAt     OccurredAtTS
}

// BuildRemoveChildOrganization creates a new RemoveChildOrganization command.
func BuildRemoveChildOrganization(
	organizationID uuid.UUID,
	childID uuid.UUID,
	occurredAt time.Time,
) RemoveChildOrganization {

	return RemoveChildOrganization{
		OrganizationID: organizationID,
		ChildID:        childID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c RemoveChildOrganization) CommandType() string {
	return RemoveChildOrganizationCommandType
}

// Validate checks the command payload in isolation.
func (c RemoveChildOrganization) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}

	return requireID("child id", c.ChildID)
}

// RecordChildOrganizationStatus represents the parent learning a child's
// current status, typically issued by the reconciliation consumer of the
// child's stream rather than by an end user.
type RecordChildOrganizationStatus struct {
	OrganizationID uuid.UUID
	ChildID        uuid.UUID
	Status         string
	OccurredAt     OccurredAtTS
}

// BuildRecordChildOrganizationStatus creates a new RecordChildOrganizationStatus command.
func BuildRecordChildOrganizationStatus(
	organizationID uuid.UUID,
	childID uuid.UUID,
	status Status,
	occurredAt time.Time,
) RecordChildOrganizationStatus {

	return RecordChildOrganizationStatus{
		OrganizationID: organizationID,
		ChildID:        childID,
		Status:         string(status),
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c RecordChildOrganizationStatus) CommandType() string {
	return RecordChildOrganizationStatusCommandType
}

// Validate checks the command payload in isolation.
func (c RecordChildOrganizationStatus) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireID("child id", c.ChildID); err != nil {
		return err
	}
	if _, err := ParseStatus(c.Status); err != nil {
		return err
	}

	return nil
}
