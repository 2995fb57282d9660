package memorylog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/eventlog/memorylog"
)

func givenRecord(t *testing.T, eventType string) eventlog.Record {
	t.Helper()

	record, err := eventlog.BuildRecordWithEmptyMetadata(eventType, time.Now(), []byte(`{"k":"v"}`))
	require.NoError(t, err)

	return record
}

func Test_Append_StartsStreamsAtVersionOne(t *testing.T) {
	// arrange
	log := memorylog.NewEventLog()
	entityID := uuid.New()
	ctx := context.Background()

	// act
	version, err := log.Append(ctx, entityID, 0, givenRecord(t, "SomethingHappened"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, eventlog.Version(1), version)
}

func Test_Append_Conflicts_WhenExpectedVersionIsStale(t *testing.T) {
	// arrange
	log := memorylog.NewEventLog()
	entityID := uuid.New()
	ctx := context.Background()

	_, err := log.Append(ctx, entityID, 0, givenRecord(t, "SomethingHappened"))
	require.NoError(t, err)

	// act - a second writer still assumes an empty stream
	_, conflictErr := log.Append(ctx, entityID, 0, givenRecord(t, "SomethingElseHappened"))

	// assert
	assert.ErrorIs(t, conflictErr, eventlog.ErrConcurrencyConflict)

	records, readErr := log.Read(ctx, entityID, 0)
	require.NoError(t, readErr)
	assert.Len(t, records, 1, "a conflicting append must not write anything")
}

func Test_Append_MultipleRecordsGetContiguousVersions(t *testing.T) {
	// arrange
	log := memorylog.NewEventLog()
	entityID := uuid.New()
	ctx := context.Background()

	// act
	version, err := log.Append(ctx, entityID, 0,
		givenRecord(t, "First"), givenRecord(t, "Second"), givenRecord(t, "Third"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, eventlog.Version(3), version)

	records, readErr := log.Read(ctx, entityID, 0)
	require.NoError(t, readErr)
	require.Len(t, records, 3)
	for i, record := range records {
		assert.Equal(t, eventlog.Version(i+1), record.Version)
	}
}

func Test_Read_StartsAfterFromVersion(t *testing.T) {
	// arrange
	log := memorylog.NewEventLog()
	entityID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := log.Append(ctx, entityID, eventlog.Version(i), givenRecord(t, fmt.Sprintf("Event%d", i+1)))
		require.NoError(t, err)
	}

	// act
	records, err := log.Read(ctx, entityID, 3)

	// assert
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, eventlog.Version(4), records[0].Version)
	assert.Equal(t, eventlog.Version(5), records[1].Version)
}

func Test_Read_IsolatesStreams(t *testing.T) {
	// arrange
	log := memorylog.NewEventLog()
	firstID := uuid.New()
	secondID := uuid.New()
	ctx := context.Background()

	_, err := log.Append(ctx, firstID, 0, givenRecord(t, "FirstStream"))
	require.NoError(t, err)
	_, err = log.Append(ctx, secondID, 0, givenRecord(t, "SecondStream"))
	require.NoError(t, err)

	// act
	records, readErr := log.Read(ctx, firstID, 0)

	// assert
	require.NoError(t, readErr)
	require.Len(t, records, 1)
	assert.Equal(t, "FirstStream", records[0].EventType)
}

func Test_ReadAll_PreservesGlobalAppendOrder(t *testing.T) {
	// arrange - interleave two streams
	log := memorylog.NewEventLog()
	firstID := uuid.New()
	secondID := uuid.New()
	ctx := context.Background()

	_, err := log.Append(ctx, firstID, 0, givenRecord(t, "A1"))
	require.NoError(t, err)
	_, err = log.Append(ctx, secondID, 0, givenRecord(t, "B1"))
	require.NoError(t, err)
	_, err = log.Append(ctx, firstID, 1, givenRecord(t, "A2"))
	require.NoError(t, err)

	// act
	all, readErr := log.ReadAll(ctx)

	// assert
	require.NoError(t, readErr)
	require.Len(t, all, 3)
	assert.Equal(t, "A1", all[0].EventType)
	assert.Equal(t, "B1", all[1].EventType)
	assert.Equal(t, "A2", all[2].EventType)
}
