// Package projection derives read models from the event stream. Projections are
// disposable caches: they consume event envelopes at least once, deduplicate by
// stream version, and can always be rebuilt from the log.
package projection

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
	"github.com/orgstack/orgunit-engine-go/orgunit/shell"
)

// View is one read model fed by the Builder. Apply must be idempotent-safe only
// in combination with the Builder's version dedup: the Builder guarantees each
// (organization, version) is applied at most once and in stream order.
type View interface {
	// Name identifies the view, for logging.
	Name() string

	// Apply folds one event into the view.
	Apply(organizationID uuid.UUID, event core.DomainEvent)

	// Reset clears the view for a rebuild.
	Reset()
}

// ReplayLog is the log surface needed for rebuilds.
type ReplayLog interface {
	ReadAll(ctx context.Context) (eventlog.StoredRecords, error)
}

// Builder routes event envelopes to its views exactly once per stream position.
// Redelivered envelopes (at-least-once transports deliver duplicates) are
// dropped by comparing against a per-organization high-water version mark.
type Builder struct {
	mu        sync.Mutex
	views     []View
	highWater map[uuid.UUID]eventlog.Version
	logger    eventlog.Logger
}

// NewBuilder creates a Builder feeding the given views.
func NewBuilder(views ...View) *Builder {
	return &Builder{
		views:     views,
		highWater: make(map[uuid.UUID]eventlog.Version),
	}
}

// WithLogger sets an optional logger and returns the Builder for chaining.
func (b *Builder) WithLogger(logger eventlog.Logger) *Builder {
	b.logger = logger
	return b
}

// Consume applies the envelopes to all views, dropping any envelope at or
// below the organization's high-water mark.
func (b *Builder) Consume(envelopes ...shell.EventEnvelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, envelope := range envelopes {
		b.consumeLocked(envelope)
	}
}

func (b *Builder) consumeLocked(envelope shell.EventEnvelope) {
	if envelope.Version <= b.highWater[envelope.OrganizationID] {
		if b.logger != nil {
			b.logger.Debug("duplicate envelope dropped",
				"organization_id", envelope.OrganizationID.String(),
				"version", envelope.Version)
		}

		return
	}

	for _, view := range b.views {
		view.Apply(envelope.OrganizationID, envelope.DomainEvent)
	}

	b.highWater[envelope.OrganizationID] = envelope.Version
}

// Rebuild resets all views and replays the entire log in global append order.
// The result is equivalent to having consumed every envelope exactly once.
func (b *Builder) Rebuild(ctx context.Context, log ReplayLog) error {
	records, err := log.ReadAll(ctx)
	if err != nil {
		return err
	}

	envelopes, err := shell.EventEnvelopesFrom(records)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, view := range b.views {
		view.Reset()
	}
	b.highWater = make(map[uuid.UUID]eventlog.Version)

	for _, envelope := range envelopes {
		b.consumeLocked(envelope)
	}

	return nil
}
