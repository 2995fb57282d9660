package shell

import (
	"encoding/json"
	"errors"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

// ErrMappingToRecordFailedForDomainEvent is returned when domain event serialization fails.
var ErrMappingToRecordFailedForDomainEvent = errors.New("mapping to record failed for domain event")

// ErrMappingToRecordFailedForMetadata is returned when metadata serialization fails.
var ErrMappingToRecordFailedForMetadata = errors.New("mapping to record failed for metadata")

// RecordFrom converts a DomainEvent with metadata to an eventlog.Record.
func RecordFrom(event core.DomainEvent, metadata EventMetadata) (eventlog.Record, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return eventlog.Record{}, errors.Join(ErrMappingToRecordFailedForDomainEvent, err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return eventlog.Record{}, errors.Join(ErrMappingToRecordFailedForMetadata, err)
	}

	record, err := eventlog.BuildRecord(
		event.IsEventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)
	if err != nil {
		return eventlog.Record{}, errors.Join(ErrMappingToRecordFailedForDomainEvent, err)
	}

	return record, nil
}

// RecordWithEmptyMetadataFrom converts a DomainEvent to an eventlog.Record with empty metadata.
func RecordWithEmptyMetadataFrom(event core.DomainEvent) (eventlog.Record, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return eventlog.Record{}, errors.Join(ErrMappingToRecordFailedForDomainEvent, err)
	}

	record, err := eventlog.BuildRecordWithEmptyMetadata(
		event.IsEventType(),
		event.HasOccurredAt(),
		payloadJSON,
	)
	if err != nil {
		return eventlog.Record{}, errors.Join(ErrMappingToRecordFailedForDomainEvent, err)
	}

	return record, nil
}
