package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
)

const (
	logMsgCommandRejected       = "command rejected"
	logMsgCommandIdempotent     = "command idempotent, nothing appended"
	logMsgCommandExecuted       = "command executed"
	logMsgPublishFailed         = "event publication failed, log remains source of truth"
	logAttrCommandType          = "command_type"
	logAttrOrganizationID       = "organization_id"
	logAttrEventCount           = "event_count"
	logAttrError                = "error"
	metricExecuteDuration       = "repository_execute_duration_seconds"
	metricCommandsTotal         = "repository_commands_total"
	metricPublishFailuresTotal  = "repository_publish_failures_total"
	metricOutcomeLabelSucceeded = "succeeded"
	metricOutcomeLabelRejected  = "rejected"
	metricOutcomeLabelConflict  = "conflict"
	metricOutcomeLabelFailed    = "failed"
	spanNameExecute             = "repository.execute"
	spanStatusSuccess           = "success"
	spanStatusConflict          = "conflict"
	spanStatusRejected          = "rejected"
	spanStatusFailed            = "failed"
)

// ErrNilLog is returned when a Repository is constructed without an event log.
var ErrNilLog = errors.New("event log must not be nil")

// Log is the event log surface the Repository needs. Both the Postgres engine
// and the in-memory log satisfy it.
type Log interface {
	Read(ctx context.Context, entityID uuid.UUID, fromVersion eventlog.Version) (eventlog.StoredRecords, error)
	Append(ctx context.Context, entityID uuid.UUID, expectedVersion eventlog.Version, record eventlog.Record, additionalRecords ...eventlog.Record) (eventlog.Version, error)
}

// Publisher is the egress surface for freshly appended events, at-least-once.
type Publisher interface {
	Publish(ctx context.Context, envelopes ...EventEnvelope) error
}

// Repository orchestrates command execution against one organizational unit:
// load the stream, fold it into state, decide, and conditionally append.
//
// A concurrency conflict surfaces as eventlog.ErrConcurrencyConflict and is
// retryable by the caller (see RetryWithExponentialBackoff); the Repository
// itself never retries. Publication is best effort: the log is the source of
// truth and a failed publish is logged, counted, and not returned.
type Repository struct {
	log       Log
	publisher Publisher
	logger    eventlog.ContextualLogger
	metrics   eventlog.MetricsCollector
	tracing   eventlog.TracingCollector
}

// RepositoryOption defines a functional option for configuring a Repository.
type RepositoryOption func(*Repository) error

// WithPublisher sets the egress publisher receiving appended events.
func WithPublisher(publisher Publisher) RepositoryOption {
	return func(r *Repository) error {
		r.publisher = publisher
		return nil
	}
}

// WithContextualLogger sets the logger for command execution.
func WithContextualLogger(logger eventlog.ContextualLogger) RepositoryOption {
	return func(r *Repository) error {
		r.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for command execution.
func WithMetrics(collector eventlog.MetricsCollector) RepositoryOption {
	return func(r *Repository) error {
		r.metrics = collector
		return nil
	}
}

// WithTracing sets the tracing collector for command execution. Each Execute
// runs inside a span carrying the command type and organization id, finished
// with the command's outcome.
func WithTracing(collector eventlog.TracingCollector) RepositoryOption {
	return func(r *Repository) error {
		r.tracing = collector
		return nil
	}
}

// NewRepository creates a Repository on top of the given event log.
func NewRepository(log Log, options ...RepositoryOption) (Repository, error) {
	if log == nil {
		return Repository{}, ErrNilLog
	}

	r := Repository{log: log}
	for _, option := range options {
		if err := option(&r); err != nil {
			return Repository{}, err
		}
	}

	return r, nil
}

// Execute runs one command against the unit identified by organizationID and
// returns the events that were appended. An idempotent command returns no
// events and no error. MergeOrganizations and AcquireOrganization additionally
// touch the counterpart unit's stream; for those, organizationID must name
// the unit being merged resp. acquired, or the command is rejected.
func (r Repository) Execute(ctx context.Context, organizationID uuid.UUID, command core.Command) (core.DomainEvents, error) {
	start := time.Now()
	ctx, span := r.startSpan(ctx, organizationID, command)

	events, err := r.execute(ctx, organizationID, command)

	r.finishSpan(span, events, err)
	r.recordOutcome(command, time.Since(start), err)

	return events, err
}

func (r Repository) startSpan(ctx context.Context, organizationID uuid.UUID, command core.Command) (context.Context, eventlog.SpanContext) {
	if r.tracing == nil {
		return ctx, nil
	}

	return r.tracing.StartSpan(ctx, spanNameExecute, map[string]string{
		logAttrCommandType:    command.CommandType(),
		logAttrOrganizationID: organizationID.String(),
	})
}

func (r Repository) finishSpan(span eventlog.SpanContext, events core.DomainEvents, err error) {
	if r.tracing == nil || span == nil {
		return
	}

	r.tracing.FinishSpan(span, spanStatusFor(err), map[string]string{
		logAttrEventCount: strconv.Itoa(len(events)),
	})
}

// spanStatusFor maps a command's error to a span status, mirroring the
// outcome labels used for metrics.
func spanStatusFor(err error) string {
	switch {
	case err == nil:
		return spanStatusSuccess
	case errors.Is(err, eventlog.ErrConcurrencyConflict):
		return spanStatusConflict
	case errors.Is(err, core.ErrInvalidCommand), errors.Is(err, core.ErrBusinessRuleViolated), errors.Is(err, core.ErrOrganizationNotFound):
		return spanStatusRejected
	default:
		return spanStatusFailed
	}
}

func (r Repository) execute(ctx context.Context, organizationID uuid.UUID, command core.Command) (core.DomainEvents, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	switch c := command.(type) {
	case core.MergeOrganizations:
		if c.OrganizationID != organizationID {
			return nil, errors.Join(core.ErrInvalidCommand,
				fmt.Errorf("merge targets organization %s, not %s", c.OrganizationID, organizationID))
		}

		return r.executeMerge(ctx, c)
	case core.AcquireOrganization:
		if c.OrganizationID != organizationID {
			return nil, errors.Join(core.ErrInvalidCommand,
				fmt.Errorf("acquisition targets organization %s, not %s", c.OrganizationID, organizationID))
		}

		return r.executeAcquire(ctx, c)
	default:
		return r.executeSingle(ctx, organizationID, command)
	}
}

func (r Repository) executeSingle(ctx context.Context, organizationID uuid.UUID, command core.Command) (core.DomainEvents, error) {
	state, version, err := r.load(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	result := core.Decide(state, command)

	return r.applyDecision(ctx, organizationID, version, command, result)
}

func (r Repository) executeMerge(ctx context.Context, command core.MergeOrganizations) (core.DomainEvents, error) {
	mergedState, mergedVersion, err := r.load(ctx, command.OrganizationID)
	if err != nil {
		return nil, err
	}

	survivorState, survivorVersion, err := r.load(ctx, command.IntoOrganizationID)
	if err != nil {
		return nil, err
	}

	mergedResult, survivorResult := core.DecideMerge(mergedState, survivorState, command)
	if err := mergedResult.HasError(); err != nil {
		return nil, err
	}
	if err := survivorResult.HasError(); err != nil {
		return nil, err
	}

	// Terminal side first: if only the first append lands, a retried command
	// finds that side idempotent and completes the survivor's append.
	appended, err := r.applyDecision(ctx, command.OrganizationID, mergedVersion, command, mergedResult)
	if err != nil {
		return nil, err
	}

	survivorAppended, err := r.applyDecision(ctx, command.IntoOrganizationID, survivorVersion, command, survivorResult)
	if err != nil {
		return appended, err
	}

	return append(appended, survivorAppended...), nil
}

func (r Repository) executeAcquire(ctx context.Context, command core.AcquireOrganization) (core.DomainEvents, error) {
	targetState, targetVersion, err := r.load(ctx, command.OrganizationID)
	if err != nil {
		return nil, err
	}

	acquirerState, acquirerVersion, err := r.load(ctx, command.AcquirerID)
	if err != nil {
		return nil, err
	}

	targetResult, acquirerResult := core.DecideAcquire(targetState, acquirerState, command)
	if err := targetResult.HasError(); err != nil {
		return nil, err
	}
	if err := acquirerResult.HasError(); err != nil {
		return nil, err
	}

	appended, err := r.applyDecision(ctx, command.OrganizationID, targetVersion, command, targetResult)
	if err != nil {
		return nil, err
	}

	acquirerAppended, err := r.applyDecision(ctx, command.AcquirerID, acquirerVersion, command, acquirerResult)
	if err != nil {
		return appended, err
	}

	return append(appended, acquirerAppended...), nil
}

// load reads one unit's full stream and folds it into state, returning the
// current stream version for the conditional append.
func (r Repository) load(ctx context.Context, organizationID uuid.UUID) (core.State, eventlog.Version, error) {
	records, err := r.log.Read(ctx, organizationID, 0)
	if err != nil {
		return core.State{}, 0, err
	}

	events, err := DomainEventsFrom(records)
	if err != nil {
		return core.State{}, 0, err
	}

	var version eventlog.Version
	if len(records) > 0 {
		version = records[len(records)-1].Version
	}

	return core.Fold(events), version, nil
}

// applyDecision turns one decision into a conditional append on one stream,
// followed by best-effort publication.
func (r Repository) applyDecision(
	ctx context.Context,
	organizationID uuid.UUID,
	expectedVersion eventlog.Version,
	command core.Command,
	result core.DecisionResult,
) (core.DomainEvents, error) {

	if err := result.HasError(); err != nil {
		r.logInfo(ctx, logMsgCommandRejected,
			logAttrCommandType, command.CommandType(),
			logAttrOrganizationID, organizationID.String(),
			logAttrError, err.Error())

		return nil, err
	}

	if !result.HasEventsToAppend() {
		r.logInfo(ctx, logMsgCommandIdempotent,
			logAttrCommandType, command.CommandType(),
			logAttrOrganizationID, organizationID.String())

		return nil, nil
	}

	// One causation chain per command execution; each event gets its own message id.
	commandID := uuid.New()

	records := make(eventlog.Records, 0, len(result.Events))
	envelopes := make(EventEnvelopes, 0, len(result.Events))

	for i, event := range result.Events {
		metadata := BuildEventMetadata(uuid.New(), commandID, commandID)

		record, mappingErr := RecordFrom(event, metadata)
		if mappingErr != nil {
			return nil, mappingErr
		}

		records = append(records, record)
		envelopes = append(envelopes, BuildEventEnvelope(
			organizationID,
			expectedVersion+eventlog.Version(i)+1,
			event,
			metadata,
		))
	}

	if _, err := r.log.Append(ctx, organizationID, expectedVersion, records[0], records[1:]...); err != nil {
		return nil, err
	}

	r.publish(ctx, envelopes)

	r.logInfo(ctx, logMsgCommandExecuted,
		logAttrCommandType, command.CommandType(),
		logAttrOrganizationID, organizationID.String(),
		logAttrEventCount, len(result.Events))

	return result.Events, nil
}

func (r Repository) publish(ctx context.Context, envelopes EventEnvelopes) {
	if r.publisher == nil || len(envelopes) == 0 {
		return
	}

	if err := r.publisher.Publish(ctx, envelopes...); err != nil {
		r.logWarn(ctx, logMsgPublishFailed, logAttrError, err.Error())

		if r.metrics != nil {
			r.metrics.IncrementCounter(metricPublishFailuresTotal, nil)
		}
	}
}

func (r Repository) recordOutcome(command core.Command, duration time.Duration, err error) {
	if r.metrics == nil {
		return
	}

	outcome := metricOutcomeLabelSucceeded
	switch {
	case err == nil:
		// succeeded
	case errors.Is(err, eventlog.ErrConcurrencyConflict):
		outcome = metricOutcomeLabelConflict
	case errors.Is(err, core.ErrInvalidCommand), errors.Is(err, core.ErrBusinessRuleViolated), errors.Is(err, core.ErrOrganizationNotFound):
		outcome = metricOutcomeLabelRejected
	default:
		outcome = metricOutcomeLabelFailed
	}

	labels := map[string]string{logAttrCommandType: command.CommandType(), "outcome": outcome}
	r.metrics.RecordDuration(metricExecuteDuration, duration, labels)
	r.metrics.IncrementCounter(metricCommandsTotal, labels)
}

func (r Repository) logInfo(ctx context.Context, msg string, args ...any) {
	if r.logger != nil {
		r.logger.InfoContext(ctx, msg, args...)
	}
}

func (r Repository) logWarn(ctx context.Context, msg string, args ...any) {
	if r.logger != nil {
		r.logger.WarnContext(ctx, msg, args...)
	}
}
