package core

import (
	"errors"
)

// Error categories. Every rejection is one of these, checkable with errors.Is.
var (
	// ErrInvalidCommand is the category for malformed command payloads,
	// detected by Command.Validate before any state is consulted.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrBusinessRuleViolated is the category for well-formed commands
	// rejected by the current state.
	ErrBusinessRuleViolated = errors.New("business rule violated")
)

// ErrOrganizationNotFound is returned when a command other than
// CreateOrganization addresses a unit with an empty stream.
var ErrOrganizationNotFound = errors.New("organization not found")

// Business-rule errors. Each one joins the category so both the specific
// sentinel and ErrBusinessRuleViolated match with errors.Is.
var (
	ErrOrganizationAlreadyExists = errors.Join(ErrBusinessRuleViolated, errors.New("organization already exists"))
	ErrOrganizationTerminal      = errors.Join(ErrBusinessRuleViolated, errors.New("organization is in a terminal status"))

	ErrInvalidStatusTransition            = errors.Join(ErrBusinessRuleViolated, errors.New("status transition not allowed"))
	ErrCircularHierarchy                  = errors.Join(ErrBusinessRuleViolated, errors.New("hierarchy change would create a cycle"))
	ErrCircularReporting                  = errors.Join(ErrBusinessRuleViolated, errors.New("reporting line would create a cycle"))
	ErrDissolutionBlockedByActiveChildren = errors.Join(ErrBusinessRuleViolated, errors.New("dissolution blocked by non-terminal child organizations"))
	ErrMemberRemovalBlockedByDependents   = errors.Join(ErrBusinessRuleViolated, errors.New("member removal blocked by dependent reports"))

	ErrMemberAlreadyExists = errors.Join(ErrBusinessRuleViolated, errors.New("member already exists"))
	ErrMemberNotFound      = errors.Join(ErrBusinessRuleViolated, errors.New("member not found"))
	ErrManagerNotFound     = errors.Join(ErrBusinessRuleViolated, errors.New("manager not found"))

	ErrLocationAlreadyExists         = errors.Join(ErrBusinessRuleViolated, errors.New("location already exists"))
	ErrLocationNotFound              = errors.Join(ErrBusinessRuleViolated, errors.New("location not found"))
	ErrPrimaryLocationRemovalBlocked = errors.Join(ErrBusinessRuleViolated, errors.New("primary location cannot be removed while other locations exist"))

	ErrChildAlreadyPresent = errors.Join(ErrBusinessRuleViolated, errors.New("child organization already present"))
	ErrChildNotFound       = errors.Join(ErrBusinessRuleViolated, errors.New("child organization not found"))
	ErrChildTypeNotAllowed = errors.Join(ErrBusinessRuleViolated, errors.New("organization type cannot parent this child type"))
)
