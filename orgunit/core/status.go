package core

import (
	"errors"
	"fmt"
)

// Status is the lifecycle status of an organizational unit.
type Status string

// The closed set of lifecycle statuses.
const (
	StatusCreating  Status = "Creating"
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusSuspended Status = "Suspended"
	StatusDissolved Status = "Dissolved"
	StatusMerged    Status = "Merged"
	StatusAcquired  Status = "Acquired"
)

// statusTransitions is the fixed transition graph. Terminal statuses have no
// outgoing edges. The graph is total: every pair not listed here is forbidden.
var statusTransitions = map[Status][]Status{
	StatusCreating:  {StatusActive, StatusDissolved},
	StatusActive:    {StatusInactive, StatusSuspended, StatusDissolved, StatusMerged, StatusAcquired},
	StatusInactive:  {StatusActive, StatusDissolved},
	StatusSuspended: {StatusActive, StatusDissolved},
	StatusDissolved: {},
	StatusMerged:    {},
	StatusAcquired:  {},
}

// AllStatuses returns every status in a stable order, for exhaustive checks.
func AllStatuses() []Status {
	return []Status{
		StatusCreating,
		StatusActive,
		StatusInactive,
		StatusSuspended,
		StatusDissolved,
		StatusMerged,
		StatusAcquired,
	}
}

// ParseStatus converts a string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, known := statusTransitions[status]; !known {
		return "", errors.Join(ErrInvalidCommand, fmt.Errorf("unknown status: %q", s))
	}

	return status, nil
}

// CanTransitionTo reports whether the graph allows moving from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	allowed, known := statusTransitions[s]
	return known && len(allowed) == 0
}
