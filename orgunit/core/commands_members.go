package core

import (
	"time"

	"github.com/google/uuid"
)

// Membership command type identifiers.
const (
	AddMemberCommandType           = "AddMember"
	UpdateMemberRoleCommandType    = "UpdateMemberRole"
	RemoveMemberCommandType        = "RemoveMember"
	ChangeReportingLineCommandType = "ChangeReportingLine"
)

// AddMember represents the intent to add a person to a unit.
// ReportsTo is empty for members without a manager.
type AddMember struct {
	OrganizationID uuid.UUID
	PersonID       PersonIDString
	RoleTitle      string
	RoleLevel      string
	Permissions    []string
	ReportsTo      PersonIDString
	OccurredAt     OccurredAtTS
}

// BuildAddMember creates a new AddMember command.
func BuildAddMember(
	organizationID uuid.UUID,
	personID PersonIDString,
	role Role,
	reportsTo PersonIDString,
	occurredAt time.Time,
) AddMember {

	return AddMember{
		OrganizationID: organizationID,
		PersonID:       personID,
		RoleTitle:      role.Title,
		RoleLevel:      string(role.Level),
		Permissions:    role.Permissions,
		ReportsTo:      reportsTo,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c AddMember) CommandType() string {
	return AddMemberCommandType
}

// Validate checks the command payload in isolation.
func (c AddMember) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireText("person id", c.PersonID); err != nil {
		return err
	}
	if err := requireText("role title", c.RoleTitle); err != nil {
		return err
	}
	if _, err := ParseRoleLevel(c.RoleLevel); err != nil {
		return err
	}
	if c.ReportsTo == c.PersonID {
		return invalidCommand("member cannot report to themselves")
	}

	return nil
}

// Role reconstructs the role value carried by the command.
func (c AddMember) Role() Role {
	return Role{
		Title:       c.RoleTitle,
		Level:       RoleLevel(c.RoleLevel),
		Permissions: c.Permissions,
	}
}

// UpdateMemberRole represents the intent to change an existing member's role.
type UpdateMemberRole struct {
	OrganizationID uuid.UUID
	PersonID       PersonIDString
	RoleTitle      string
	RoleLevel      string
	Permissions    []string
	OccurredAt     OccurredAtTS
}

// BuildUpdateMemberRole creates a new UpdateMemberRole command.
func BuildUpdateMemberRole(
	organizationID uuid.UUID,
	personID PersonIDString,
	role Role,
	occurredAt time.Time,
) UpdateMemberRole {

	return UpdateMemberRole{
		OrganizationID: organizationID,
		PersonID:       personID,
		RoleTitle:      role.Title,
		RoleLevel:      string(role.Level),
		Permissions:    role.Permissions,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c UpdateMemberRole) CommandType() string {
	return UpdateMemberRoleCommandType
}

// Validate checks the command payload in isolation.
func (c UpdateMemberRole) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireText("person id", c.PersonID); err != nil {
		return err
	}
	if err := requireText("role title", c.RoleTitle); err != nil {
		return err
	}
	if _, err := ParseRoleLevel(c.RoleLevel); err != nil {
		return err
	}

	return nil
}

// Role reconstructs the role value carried by the command.
func (c UpdateMemberRole) Role() Role {
	return Role{
		Title:       c.RoleTitle,
		Level:       RoleLevel(c.RoleLevel),
		Permissions: c.Permissions,
	}
}

// RemoveMember represents the intent to remove a member from a unit.
//
// Removing a member with dependent reports is blocked unless the command
// authorizes reassignment: with ReassignDependents set, every dependent is
// rewired to NewManagerID (which may be empty, meaning they report to nobody)
// in the same atomic append as the removal.
type RemoveMember struct {
	OrganizationID     uuid.UUID
	PersonID           PersonIDString
	ReassignDependents bool
	NewManagerID       PersonIDString
	OccurredAt         OccurredAtTS
}

// BuildRemoveMember creates a new RemoveMember command without dependent reassignment.
func BuildRemoveMember(
	organizationID uuid.UUID,
	personID PersonIDString,
	occurredAt time.Time,
) RemoveMember {

	return RemoveMember{
		OrganizationID: organizationID,
		PersonID:       personID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// BuildRemoveMemberWithReassignment creates a new RemoveMember command that
// rewires dependents to newManagerID; pass an empty id to leave them without a manager.
func BuildRemoveMemberWithReassignment(
	organizationID uuid.UUID,
	personID PersonIDString,
	newManagerID PersonIDString,
	occurredAt time.Time,
) RemoveMember {

	return RemoveMember{
		OrganizationID:     organizationID,
		PersonID:           personID,
		ReassignDependents: true,
		NewManagerID:       newManagerID,
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c RemoveMember) CommandType() string {
	return RemoveMemberCommandType
}

// Validate checks the command payload in isolation.
func (c RemoveMember) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireText("person id", c.PersonID); err != nil {
		return err
	}
	if c.NewManagerID != "" && !c.ReassignDependents {
		return invalidCommand("new manager given without reassignment authorization")
	}
	if c.NewManagerID == c.PersonID {
		return invalidCommand("dependents cannot be reassigned to the removed member")
	}

	return nil
}

// ChangeReportingLine represents the intent to change one member's manager.
// An empty ReportsTo means the member will report to nobody.
type ChangeReportingLine struct {
	OrganizationID uuid.UUID
	PersonID       PersonIDString
	ReportsTo      PersonIDString
	OccurredAt     OccurredAtTS
}

// BuildChangeReportingLine creates a new ChangeReportingLine command.
func BuildChangeReportingLine(
	organizationID uuid.UUID,
	personID PersonIDString,
	reportsTo PersonIDString,
	occurredAt time.Time,
) ChangeReportingLine {

	return ChangeReportingLine{
		OrganizationID: organizationID,
		PersonID:       personID,
		ReportsTo:      reportsTo,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// CommandType returns the type identifier for this command.
func (c ChangeReportingLine) CommandType() string {
	return ChangeReportingLineCommandType
}

// Validate checks the command payload in isolation.
func (c ChangeReportingLine) Validate() error {
	if err := requireID("organization id", c.OrganizationID); err != nil {
		return err
	}
	if err := requireText("person id", c.PersonID); err != nil {
		return err
	}
	if c.ReportsTo == c.PersonID {
		return invalidCommand("member cannot report to themselves")
	}

	return nil
}
