package shell

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	// The event set is closed, so an unknown type is a fatal mapping error and the
	// whole operation fails; events are never silently skipped.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple stored records to DomainEvents.
func DomainEventsFrom(records eventlog.StoredRecords) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(records))

	for _, record := range records {
		domainEvent, err := DomainEventFrom(record)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a stored record to its corresponding DomainEvent.
func DomainEventFrom(record eventlog.StoredRecord) (core.DomainEvent, error) {
	switch record.EventType {
	case core.OrganizationCreatedEventType:
		return unmarshalEvent[core.OrganizationCreated](record.PayloadJSON)

	case core.OrganizationStatusChangedEventType:
		return unmarshalEvent[core.OrganizationStatusChanged](record.PayloadJSON)

	case core.MemberAddedEventType:
		return unmarshalEvent[core.MemberAdded](record.PayloadJSON)

	case core.MemberRoleUpdatedEventType:
		return unmarshalEvent[core.MemberRoleUpdated](record.PayloadJSON)

	case core.MemberRemovedEventType:
		return unmarshalEvent[core.MemberRemoved](record.PayloadJSON)

	case core.ReportingLineChangedEventType:
		return unmarshalEvent[core.ReportingLineChanged](record.PayloadJSON)

	case core.LocationAddedEventType:
		return unmarshalEvent[core.LocationAdded](record.PayloadJSON)

	case core.LocationRemovedEventType:
		return unmarshalEvent[core.LocationRemoved](record.PayloadJSON)

	case core.PrimaryLocationChangedEventType:
		return unmarshalEvent[core.PrimaryLocationChanged](record.PayloadJSON)

	case core.ChildOrganizationAddedEventType:
		return unmarshalEvent[core.ChildOrganizationAdded](record.PayloadJSON)

	case core.ChildOrganizationRemovedEventType:
		return unmarshalEvent[core.ChildOrganizationRemoved](record.PayloadJSON)

	case core.ChildOrganizationStatusRecordedEventType:
		return unmarshalEvent[core.ChildOrganizationStatusRecorded](record.PayloadJSON)

	case core.OrganizationDissolvedEventType:
		return unmarshalEvent[core.OrganizationDissolved](record.PayloadJSON)

	case core.OrganizationMergedEventType:
		return unmarshalEvent[core.OrganizationMerged](record.PayloadJSON)

	case core.OrganizationAbsorbedEventType:
		return unmarshalEvent[core.OrganizationAbsorbed](record.PayloadJSON)

	case core.OrganizationAcquiredEventType:
		return unmarshalEvent[core.OrganizationAcquired](record.PayloadJSON)

	default:
		return nil, errors.Join(
			ErrMappingToDomainEventFailed,
			ErrMappingToDomainEventUnknownEventType,
			fmt.Errorf("event type: %s", record.EventType),
		)
	}
}

func unmarshalEvent[T core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(T)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
