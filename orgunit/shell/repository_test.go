package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/eventlog/memorylog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
	"github.com/orgstack/orgunit-engine-go/orgunit/shell"
)

// conflictingLog wraps a Log and fails the first failAppends appends with a
// concurrency conflict before delegating.
type conflictingLog struct {
	inner       shell.Log
	failAppends int
	appendCalls int
}

func (l *conflictingLog) Read(ctx context.Context, entityID uuid.UUID, fromVersion eventlog.Version) (eventlog.StoredRecords, error) {
	return l.inner.Read(ctx, entityID, fromVersion)
}

func (l *conflictingLog) Append(
	ctx context.Context,
	entityID uuid.UUID,
	expectedVersion eventlog.Version,
	record eventlog.Record,
	additionalRecords ...eventlog.Record,
) (eventlog.Version, error) {

	l.appendCalls++
	if l.appendCalls <= l.failAppends {
		return 0, eventlog.ErrConcurrencyConflict
	}

	return l.inner.Append(ctx, entityID, expectedVersion, record, additionalRecords...)
}

// entityConflictLog wraps a Log and fails appends for one entity a given
// number of times before delegating.
type entityConflictLog struct {
	inner        shell.Log
	failEntityID uuid.UUID
	failuresLeft int
}

func (l *entityConflictLog) Read(ctx context.Context, entityID uuid.UUID, fromVersion eventlog.Version) (eventlog.StoredRecords, error) {
	return l.inner.Read(ctx, entityID, fromVersion)
}

func (l *entityConflictLog) Append(
	ctx context.Context,
	entityID uuid.UUID,
	expectedVersion eventlog.Version,
	record eventlog.Record,
	additionalRecords ...eventlog.Record,
) (eventlog.Version, error) {

	if entityID == l.failEntityID && l.failuresLeft > 0 {
		l.failuresLeft--
		return 0, eventlog.ErrConcurrencyConflict
	}

	return l.inner.Append(ctx, entityID, expectedVersion, record, additionalRecords...)
}

// capturingPublisher records every envelope it receives and can be told to fail.
type capturingPublisher struct {
	envelopes shell.EventEnvelopes
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, envelopes ...shell.EventEnvelope) error {
	if p.err != nil {
		return p.err
	}

	p.envelopes = append(p.envelopes, envelopes...)

	return nil
}

// recordingSpan remembers what happened to one span.
type recordingSpan struct {
	name     string
	attrs    map[string]string
	status   string
	finished bool
}

func (s *recordingSpan) SetStatus(status string) {
	s.status = status
}

func (s *recordingSpan) AddAttribute(key, value string) {
	s.attrs[key] = value
}

// recordingTracer collects every span started through it.
type recordingTracer struct {
	spans []*recordingSpan
}

func (tr *recordingTracer) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventlog.SpanContext) {
	span := &recordingSpan{name: name, attrs: make(map[string]string, len(attrs))}
	for key, value := range attrs {
		span.attrs[key] = value
	}
	tr.spans = append(tr.spans, span)

	return ctx, span
}

func (tr *recordingTracer) FinishSpan(spanCtx eventlog.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*recordingSpan)
	if !ok {
		return
	}

	span.status = status
	span.finished = true
	for key, value := range attrs {
		span.attrs[key] = value
	}
}

func (tr *recordingTracer) lastSpan(t *testing.T) *recordingSpan {
	t.Helper()
	require.NotEmpty(t, tr.spans)

	return tr.spans[len(tr.spans)-1]
}

func givenRepository(t *testing.T, options ...shell.RepositoryOption) (shell.Repository, *memorylog.EventLog) {
	t.Helper()

	log := memorylog.NewEventLog()
	repository, err := shell.NewRepository(log, options...)
	require.NoError(t, err)

	return repository, log
}

func givenActiveUnit(t *testing.T, repository shell.Repository, orgID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	_, err := repository.Execute(ctx, orgID, core.BuildCreateOrganization(orgID, "Acme Robotics", core.TypeCompany, uuid.Nil, now))
	require.NoError(t, err)

	_, err = repository.Execute(ctx, orgID, core.BuildChangeOrganizationStatus(orgID, core.StatusActive, "", now))
	require.NoError(t, err)
}

func Test_Repository_Execute_AppendsAndReadsBack(t *testing.T) {
	// arrange
	repository, log := givenRepository(t)
	orgID := uuid.New()
	ctx := context.Background()

	// act
	givenActiveUnit(t, repository, orgID)

	// assert - two events, versions 1 and 2, mapping back to the domain
	records, err := log.Read(ctx, orgID, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, eventlog.Version(1), records[0].Version)
	assert.Equal(t, eventlog.Version(2), records[1].Version)

	events, err := shell.DomainEventsFrom(records)
	require.NoError(t, err)
	state := core.Fold(events)
	assert.Equal(t, core.StatusActive, state.Status)
}

func Test_Repository_Execute_RejectedCommandAppendsNothing(t *testing.T) {
	// arrange
	repository, log := givenRepository(t)
	orgID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, orgID)

	// act - removing an unknown member is rejected
	events, err := repository.Execute(ctx, orgID, core.BuildRemoveMember(orgID, "person-ghost", time.Now()))

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMemberNotFound)
	assert.Empty(t, events)

	records, readErr := log.Read(ctx, orgID, 0)
	require.NoError(t, readErr)
	assert.Len(t, records, 2)
}

func Test_Repository_Execute_NotFound_ForEmptyStream(t *testing.T) {
	// arrange
	repository, _ := givenRepository(t)

	// act
	_, err := repository.Execute(context.Background(), uuid.New(),
		core.BuildDissolveOrganization(uuid.New(), "", time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrOrganizationNotFound)
}

func Test_Repository_Execute_IdempotentCommandReturnsNoEventsAndNoError(t *testing.T) {
	// arrange
	repository, log := givenRepository(t)
	orgID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, orgID)

	// act
	events, err := repository.Execute(ctx, orgID,
		core.BuildChangeOrganizationStatus(orgID, core.StatusActive, "", time.Now()))

	// assert
	require.NoError(t, err)
	assert.Empty(t, events)

	records, readErr := log.Read(ctx, orgID, 0)
	require.NoError(t, readErr)
	assert.Len(t, records, 2)
}

func Test_Repository_Execute_MultiEventDecisionAppendsAtomically(t *testing.T) {
	// arrange - a manager with one dependent, removed with reassignment
	repository, log := givenRepository(t)
	orgID := uuid.New()
	ctx := context.Background()
	now := time.Now()
	givenActiveUnit(t, repository, orgID)

	manager := core.Role{Title: "Engineering Manager", Level: core.LevelManager}
	engineer := core.Role{Title: "Engineer", Level: core.LevelMid}

	_, err := repository.Execute(ctx, orgID, core.BuildAddMember(orgID, "person-m1", manager, "", now))
	require.NoError(t, err)
	_, err = repository.Execute(ctx, orgID, core.BuildAddMember(orgID, "person-m2", engineer, "person-m1", now))
	require.NoError(t, err)

	// act
	events, err := repository.Execute(ctx, orgID,
		core.BuildRemoveMemberWithReassignment(orgID, "person-m1", "", now))

	// assert - both events landed as one append, versions stay contiguous
	require.NoError(t, err)
	require.Len(t, events, 2)

	records, readErr := log.Read(ctx, orgID, 0)
	require.NoError(t, readErr)
	require.Len(t, records, 6)
	for i, record := range records {
		assert.Equal(t, eventlog.Version(i+1), record.Version)
	}
}

func Test_Repository_Execute_PublishesAppendedEvents(t *testing.T) {
	// arrange
	publisher := &capturingPublisher{}
	repository, _ := givenRepository(t, shell.WithPublisher(publisher))
	orgID := uuid.New()

	// act
	givenActiveUnit(t, repository, orgID)

	// assert - one envelope per appended event with correct stream positions
	require.Len(t, publisher.envelopes, 2)
	assert.Equal(t, eventlog.Version(1), publisher.envelopes[0].Version)
	assert.Equal(t, eventlog.Version(2), publisher.envelopes[1].Version)
	assert.Equal(t, orgID, publisher.envelopes[0].OrganizationID)
	assert.NotEmpty(t, publisher.envelopes[0].EventMetadata.MessageID)
}

func Test_Repository_Execute_PublishFailureDoesNotFailTheCommand(t *testing.T) {
	// arrange - the log is the source of truth, publication is best effort
	publisher := &capturingPublisher{err: errors.New("broker unavailable")}
	repository, log := givenRepository(t, shell.WithPublisher(publisher))
	orgID := uuid.New()
	ctx := context.Background()

	// act
	events, err := repository.Execute(ctx, orgID,
		core.BuildCreateOrganization(orgID, "Acme Robotics", core.TypeCompany, uuid.Nil, time.Now()))

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)

	records, readErr := log.Read(ctx, orgID, 0)
	require.NoError(t, readErr)
	assert.Len(t, records, 1)
}

func Test_Repository_Execute_SurfacesConcurrencyConflict(t *testing.T) {
	// arrange
	wrapped := &conflictingLog{inner: memorylog.NewEventLog(), failAppends: 1}
	repository, err := shell.NewRepository(wrapped)
	require.NoError(t, err)
	orgID := uuid.New()

	// act
	_, execErr := repository.Execute(context.Background(), orgID,
		core.BuildCreateOrganization(orgID, "Acme Robotics", core.TypeCompany, uuid.Nil, time.Now()))

	// assert - the repository never retries on its own
	assert.ErrorIs(t, execErr, eventlog.ErrConcurrencyConflict)
}

func Test_Repository_Execute_ConflictIsRetryable(t *testing.T) {
	// arrange - the first append conflicts, the retry loop completes the command
	wrapped := &conflictingLog{inner: memorylog.NewEventLog(), failAppends: 1}
	repository, err := shell.NewRepository(wrapped)
	require.NoError(t, err)
	orgID := uuid.New()
	ctx := context.Background()

	// act
	retryErr := shell.RetryWithExponentialBackoff(ctx, func(ctx context.Context) error {
		_, execErr := repository.Execute(ctx, orgID,
			core.BuildCreateOrganization(orgID, "Acme Robotics", core.TypeCompany, uuid.Nil, time.Now()))
		return execErr
	}, shell.WithBaseDelay(time.Millisecond))

	// assert
	require.NoError(t, retryErr)

	records, readErr := wrapped.Read(ctx, orgID, 0)
	require.NoError(t, readErr)
	assert.Len(t, records, 1)
}

func Test_Repository_Execute_Merge_AppendsToBothStreams(t *testing.T) {
	// arrange
	repository, log := givenRepository(t)
	mergedID := uuid.New()
	survivorID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, mergedID)
	givenActiveUnit(t, repository, survivorID)

	// act
	events, err := repository.Execute(ctx, mergedID,
		core.BuildMergeOrganizations(mergedID, survivorID, time.Now()))

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)

	mergedRecords, readErr := log.Read(ctx, mergedID, 0)
	require.NoError(t, readErr)
	require.Len(t, mergedRecords, 3)
	assert.Equal(t, core.OrganizationMergedEventType, mergedRecords[2].EventType)

	survivorRecords, readErr := log.Read(ctx, survivorID, 0)
	require.NoError(t, readErr)
	require.Len(t, survivorRecords, 3)
	assert.Equal(t, core.OrganizationAbsorbedEventType, survivorRecords[2].EventType)
}

func Test_Repository_Execute_Merge_Rejected_WhenTargetDoesNotMatchCommand(t *testing.T) {
	// arrange - addressing the merge command to the survivor's stream must be
	// rejected before either stream is touched
	repository, log := givenRepository(t)
	mergedID := uuid.New()
	survivorID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, mergedID)
	givenActiveUnit(t, repository, survivorID)

	// act
	events, err := repository.Execute(ctx, survivorID,
		core.BuildMergeOrganizations(mergedID, survivorID, time.Now()))

	// assert
	require.ErrorIs(t, err, core.ErrInvalidCommand)
	assert.Empty(t, events)

	mergedRecords, readErr := log.Read(ctx, mergedID, 0)
	require.NoError(t, readErr)
	assert.Len(t, mergedRecords, 2)

	survivorRecords, readErr := log.Read(ctx, survivorID, 0)
	require.NoError(t, readErr)
	assert.Len(t, survivorRecords, 2)
}

func Test_Repository_Execute_Acquire_Rejected_WhenTargetDoesNotMatchCommand(t *testing.T) {
	// arrange
	repository, _ := givenRepository(t)
	targetID := uuid.New()
	acquirerID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, targetID)
	givenActiveUnit(t, repository, acquirerID)

	// act
	events, err := repository.Execute(ctx, acquirerID,
		core.BuildAcquireOrganization(targetID, acquirerID, time.Now()))

	// assert
	require.ErrorIs(t, err, core.ErrInvalidCommand)
	assert.Empty(t, events)
}

func Test_Repository_Execute_Merge_ResubmissionCompletesAPartialMerge(t *testing.T) {
	// arrange - the merged side's append lands, the survivor's conflicts,
	// leaving the merge half done; resubmitting the command completes it
	mergedID := uuid.New()
	survivorID := uuid.New()
	wrapped := &entityConflictLog{inner: memorylog.NewEventLog(), failEntityID: survivorID}
	repository, err := shell.NewRepository(wrapped)
	require.NoError(t, err)
	ctx := context.Background()
	givenActiveUnit(t, repository, mergedID)
	givenActiveUnit(t, repository, survivorID)

	command := core.BuildMergeOrganizations(mergedID, survivorID, time.Now())

	wrapped.failuresLeft = 1
	_, firstErr := repository.Execute(ctx, mergedID, command)
	require.ErrorIs(t, firstErr, eventlog.ErrConcurrencyConflict)

	mergedRecords, readErr := wrapped.Read(ctx, mergedID, 0)
	require.NoError(t, readErr)
	require.Len(t, mergedRecords, 3, "the merged side's event must have landed")

	survivorRecords, readErr := wrapped.Read(ctx, survivorID, 0)
	require.NoError(t, readErr)
	require.Len(t, survivorRecords, 2, "the survivor's event must not have landed")

	// act - resubmit: the merged side is idempotent, the survivor completes
	events, retryErr := repository.Execute(ctx, mergedID, command)

	// assert
	require.NoError(t, retryErr)
	require.Len(t, events, 1)
	assert.Equal(t, core.OrganizationAbsorbedEventType, events[0].IsEventType())

	survivorRecords, readErr = wrapped.Read(ctx, survivorID, 0)
	require.NoError(t, readErr)
	assert.Len(t, survivorRecords, 3)
}

func Test_Repository_Execute_Acquire_AppendsToBothStreams(t *testing.T) {
	// arrange
	repository, log := givenRepository(t)
	targetID := uuid.New()
	acquirerID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, targetID)
	givenActiveUnit(t, repository, acquirerID)

	// act
	events, err := repository.Execute(ctx, targetID,
		core.BuildAcquireOrganization(targetID, acquirerID, time.Now()))

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)

	targetRecords, readErr := log.Read(ctx, targetID, 0)
	require.NoError(t, readErr)
	require.Len(t, targetRecords, 3)
	assert.Equal(t, core.OrganizationAcquiredEventType, targetRecords[2].EventType)

	acquirerRecords, readErr := log.Read(ctx, acquirerID, 0)
	require.NoError(t, readErr)
	require.Len(t, acquirerRecords, 3)
	assert.Equal(t, core.ChildOrganizationAddedEventType, acquirerRecords[2].EventType)
}

func Test_Repository_Execute_TracesCommandOutcomes(t *testing.T) {
	// arrange
	tracer := &recordingTracer{}
	repository, _ := givenRepository(t, shell.WithTracing(tracer))
	orgID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, orgID)

	// act - one executed command, one rejected command
	_, execErr := repository.Execute(ctx, orgID,
		core.BuildAddMember(orgID, "person-1", core.Role{Title: "Engineer", Level: core.LevelMid}, "", time.Now()))
	require.NoError(t, execErr)
	executed := tracer.lastSpan(t)

	_, rejectErr := repository.Execute(ctx, orgID,
		core.BuildRemoveMember(orgID, "person-unknown", time.Now()))
	require.ErrorIs(t, rejectErr, core.ErrMemberNotFound)
	rejected := tracer.lastSpan(t)

	// assert
	assert.Equal(t, "repository.execute", executed.name)
	assert.True(t, executed.finished)
	assert.Equal(t, "success", executed.status)
	assert.Equal(t, core.AddMemberCommandType, executed.attrs["command_type"])
	assert.Equal(t, orgID.String(), executed.attrs["organization_id"])
	assert.Equal(t, "1", executed.attrs["event_count"])

	assert.True(t, rejected.finished)
	assert.Equal(t, "rejected", rejected.status)
	assert.Equal(t, "0", rejected.attrs["event_count"])
}

func Test_Repository_Execute_TracesConcurrencyConflicts(t *testing.T) {
	// arrange
	tracer := &recordingTracer{}
	wrapped := &conflictingLog{inner: memorylog.NewEventLog()}
	repository, err := shell.NewRepository(wrapped, shell.WithTracing(tracer))
	require.NoError(t, err)
	orgID := uuid.New()
	ctx := context.Background()
	givenActiveUnit(t, repository, orgID)

	wrapped.failAppends = wrapped.appendCalls + 1

	// act
	_, execErr := repository.Execute(ctx, orgID,
		core.BuildAddMember(orgID, "person-1", core.Role{Title: "Engineer", Level: core.LevelMid}, "", time.Now()))

	// assert
	require.ErrorIs(t, execErr, eventlog.ErrConcurrencyConflict)
	conflicted := tracer.lastSpan(t)
	assert.True(t, conflicted.finished)
	assert.Equal(t, "conflict", conflicted.status)
}

func Test_NewRepository_Fails_WithoutLog(t *testing.T) {
	// act
	_, err := shell.NewRepository(nil)

	// assert
	assert.ErrorIs(t, err, shell.ErrNilLog)
}
