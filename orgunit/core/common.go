package core

import (
	"time"
)

// Instead of implementing full value objects, identifiers are carried as alias types
// with helper methods where needed.

// OrganizationIDString represents an organizational unit identifier.
type OrganizationIDString = string

// PersonIDString represents an opaque person identifier owned by an external system.
type PersonIDString = string

// LocationIDString represents a location identifier.
type LocationIDString = string

// EventTypeString represents an event type identifier.
type EventTypeString = string

// CommandTypeString represents a command type identifier.
type CommandTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision,
// so that an event round-tripped through storage compares equal to the original.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
