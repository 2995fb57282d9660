package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
	"github.com/orgstack/orgunit-engine-go/orgunit/shell"
)

func givenSampleEvents(orgID uuid.UUID, now time.Time) core.DomainEvents {
	role := core.Role{Title: "Engineering Manager", Level: core.LevelManager, Permissions: []string{"approve_leave"}}

	return core.DomainEvents{
		core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", now),
		core.BuildOrganizationStatusChanged(orgID, core.StatusActive, core.StatusCreating, "launch", now),
		core.BuildMemberAdded(orgID, "person-1", role, "", now),
		core.BuildMemberRoleUpdated(orgID, "person-1", core.Role{Title: "Director", Level: core.LevelDirector}, role, now),
		core.BuildReportingLineChanged(orgID, "person-2", "person-1", "", now),
		core.BuildMemberRemoved(orgID, "person-2", now),
		core.BuildLocationAdded(orgID, uuid.New(), "HQ", "1 Main St", true, now),
		core.BuildLocationRemoved(orgID, uuid.New(), now),
		core.BuildPrimaryLocationChanged(orgID, uuid.New(), uuid.New().String(), now),
		core.BuildChildOrganizationAdded(orgID, uuid.New(), "Acme Labs", core.TypeDivision, core.StatusActive, now),
		core.BuildChildOrganizationRemoved(orgID, uuid.New(), now),
		core.BuildChildOrganizationStatusRecorded(orgID, uuid.New(), core.StatusDissolved, now),
		core.BuildOrganizationDissolved(orgID, core.StatusActive, "wind down", now),
		core.BuildOrganizationMerged(orgID, uuid.New(), now),
		core.BuildOrganizationAbsorbed(orgID, uuid.New(), now),
		core.BuildOrganizationAcquired(orgID, uuid.New(), now),
	}
}

func asStoredRecord(t *testing.T, orgID uuid.UUID, version eventlog.Version, record eventlog.Record) eventlog.StoredRecord {
	t.Helper()

	return eventlog.StoredRecord{
		Record:   record,
		EntityID: orgID,
		Version:  version,
	}
}

func Test_DomainEventFrom_RoundTripsEveryEventType(t *testing.T) {
	// arrange
	orgID := uuid.New()
	now := time.Now()
	events := givenSampleEvents(orgID, now)

	for i, event := range events {
		t.Run(event.IsEventType(), func(t *testing.T) {
			record, err := shell.RecordWithEmptyMetadataFrom(event)
			require.NoError(t, err)

			// act
			mapped, mappingErr := shell.DomainEventFrom(asStoredRecord(t, orgID, eventlog.Version(i+1), record))

			// assert
			require.NoError(t, mappingErr)
			assert.Equal(t, event, mapped)
		})
	}
}

func Test_DomainEventFrom_Fails_ForUnknownEventType(t *testing.T) {
	// arrange - the event set is closed, so an unknown type must be fatal
	record, err := eventlog.BuildRecordWithEmptyMetadata("SomethingElseHappened", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, mappingErr := shell.DomainEventFrom(asStoredRecord(t, uuid.New(), 1, record))

	// assert
	require.Error(t, mappingErr)
	assert.ErrorIs(t, mappingErr, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, mappingErr, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventsFrom_Fails_WhenAnyRecordIsUnknown(t *testing.T) {
	// arrange
	orgID := uuid.New()
	goodRecord, err := shell.RecordWithEmptyMetadataFrom(
		core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", time.Now()))
	require.NoError(t, err)
	badRecord, err := eventlog.BuildRecordWithEmptyMetadata("SomethingElseHappened", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	records := eventlog.StoredRecords{
		asStoredRecord(t, orgID, 1, goodRecord),
		asStoredRecord(t, orgID, 2, badRecord),
	}

	// act
	events, mappingErr := shell.DomainEventsFrom(records)

	// assert - nothing is silently skipped
	require.Error(t, mappingErr)
	assert.Nil(t, events)
}

func Test_EventMetadata_RoundTrip(t *testing.T) {
	// arrange
	metadata := shell.BuildEventMetadata(uuid.New(), uuid.New(), uuid.New())
	event := core.BuildMemberRemoved(uuid.New(), "person-1", time.Now())

	record, err := shell.RecordFrom(event, metadata)
	require.NoError(t, err)

	// act
	mapped, mappingErr := shell.EventMetadataFrom(asStoredRecord(t, uuid.New(), 1, record))

	// assert
	require.NoError(t, mappingErr)
	assert.Equal(t, metadata, mapped)
}

func Test_EventEnvelopesFrom_CarriesStreamPosition(t *testing.T) {
	// arrange
	orgID := uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildOrganizationCreated(orgID, "Acme Robotics", core.TypeCompany, "", now),
		core.BuildOrganizationStatusChanged(orgID, core.StatusActive, core.StatusCreating, "", now),
	}

	records := make(eventlog.StoredRecords, 0, len(events))
	for i, event := range events {
		record, err := shell.RecordWithEmptyMetadataFrom(event)
		require.NoError(t, err)
		records = append(records, asStoredRecord(t, orgID, eventlog.Version(i+1), record))
	}

	// act
	envelopes, err := shell.EventEnvelopesFrom(records)

	// assert
	require.NoError(t, err)
	require.Len(t, envelopes, 2)
	for i, envelope := range envelopes {
		assert.Equal(t, orgID, envelope.OrganizationID)
		assert.Equal(t, eventlog.Version(i+1), envelope.Version)
		assert.Equal(t, events[i], envelope.DomainEvent)
	}
}
