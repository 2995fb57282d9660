// Package memorylog provides an in-memory event log with the same semantics as the
// Postgres engine: per-entity streams, contiguous versions starting at 1, and
// conditional appends that fail with eventlog.ErrConcurrencyConflict when the
// expected version is stale. It is intended for tests and local development.
package memorylog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/orgstack/orgunit-engine-go/eventlog"
)

// EventLog is a thread-safe in-memory event log.
type EventLog struct {
	mu     sync.RWMutex
	global eventlog.StoredRecords
}

// NewEventLog creates an empty in-memory event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Read retrieves the events of one entity's stream, ordered by version,
// starting after fromVersion (pass 0 to read the whole stream).
func (el *EventLog) Read(_ context.Context, entityID uuid.UUID, fromVersion eventlog.Version) (
	eventlog.StoredRecords,
	error,
) {

	el.mu.RLock()
	defer el.mu.RUnlock()

	stream := make(eventlog.StoredRecords, 0)
	for _, stored := range el.global {
		if stored.EntityID == entityID && stored.Version > fromVersion {
			stream = append(stream, stored)
		}
	}

	return stream, nil
}

// ReadAll retrieves every event in the log in global append order.
func (el *EventLog) ReadAll(_ context.Context) (eventlog.StoredRecords, error) {
	el.mu.RLock()
	defer el.mu.RUnlock()

	all := make(eventlog.StoredRecords, len(el.global))
	copy(all, el.global)

	return all, nil
}

// Append attempts to append one or multiple records onto one entity's stream,
// conditioned on the stream still being at expectedVersion.
func (el *EventLog) Append(
	_ context.Context,
	entityID uuid.UUID,
	expectedVersion eventlog.Version,
	record eventlog.Record,
	additionalRecords ...eventlog.Record,
) (eventlog.Version, error) {

	el.mu.Lock()
	defer el.mu.Unlock()

	currentVersion := el.currentVersionLocked(entityID)
	if currentVersion != expectedVersion {
		return 0, eventlog.ErrConcurrencyConflict
	}

	allRecords := eventlog.Records{record}
	allRecords = append(allRecords, additionalRecords...)

	version := currentVersion
	for _, rec := range allRecords {
		version++
		el.global = append(el.global, eventlog.StoredRecord{
			Record:   rec,
			EntityID: entityID,
			Version:  version,
		})
	}

	return version, nil
}

func (el *EventLog) currentVersionLocked(entityID uuid.UUID) eventlog.Version {
	var current eventlog.Version
	for _, stored := range el.global {
		if stored.EntityID == entityID && stored.Version > current {
			current = stored.Version
		}
	}

	return current
}
