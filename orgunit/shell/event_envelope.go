package shell

import (
	"errors"

	"github.com/google/uuid"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

// ErrEventEnvelopeFromStoredRecordFailed is returned when event envelope conversion fails.
var ErrEventEnvelopeFromStoredRecordFailed = errors.New("event envelope from stored record failed")

// EventEnvelopes is a slice of EventEnvelope instances.
type EventEnvelopes = []EventEnvelope

// EventEnvelope combines a domain event with its stream position and metadata.
// The organization id and version let consumers deduplicate redeliveries.
type EventEnvelope struct {
	OrganizationID uuid.UUID
	Version        eventlog.Version
	DomainEvent    core.DomainEvent
	EventMetadata  EventMetadata
}

// BuildEventEnvelope creates a new EventEnvelope.
func BuildEventEnvelope(
	organizationID uuid.UUID,
	version eventlog.Version,
	domainEvent core.DomainEvent,
	eventMetadata EventMetadata,
) EventEnvelope {

	return EventEnvelope{
		OrganizationID: organizationID,
		Version:        version,
		DomainEvent:    domainEvent,
		EventMetadata:  eventMetadata,
	}
}

// EventEnvelopeFrom converts a stored record to an EventEnvelope.
func EventEnvelopeFrom(record eventlog.StoredRecord) (EventEnvelope, error) {
	metadata, err := EventMetadataFrom(record)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrEventEnvelopeFromStoredRecordFailed, err)
	}

	domainEvent, err := DomainEventFrom(record)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrEventEnvelopeFromStoredRecordFailed, err)
	}

	return BuildEventEnvelope(record.EntityID, record.Version, domainEvent, metadata), nil
}

// EventEnvelopesFrom converts multiple stored records to EventEnvelopes.
func EventEnvelopesFrom(records eventlog.StoredRecords) (EventEnvelopes, error) {
	envelopes := make(EventEnvelopes, 0, len(records))

	for _, record := range records {
		envelope, err := EventEnvelopeFrom(record)
		if err != nil {
			return nil, err
		}

		envelopes = append(envelopes, envelope)
	}

	return envelopes, nil
}
