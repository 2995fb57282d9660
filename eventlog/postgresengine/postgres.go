package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/orgstack/orgunit-engine-go/eventlog"
	"github.com/orgstack/orgunit-engine-go/eventlog/postgresengine/internal/adapters"
)

const (
	defaultEventTableName         = "events"
	logMsgBuildSelectQueryFailed  = "failed to build select query"
	logMsgDBQueryFailed           = "database query execution failed"
	logMsgCloseRowsFailed         = "failed to close database rows"
	logMsgScanRowFailed           = "failed to scan database row"
	logMsgBuildStoredRecordFailed = "failed to build stored record from database row"
	logMsgBuildInsertQueryFailed  = "failed to build insert query"
	logMsgDBExecFailed            = "database execution failed during event append"
	logMsgRowsAffectedFailed      = "failed to get rows affected count"
	logMsgSingleEventSQLFailed    = "failed to convert single event insert statement to SQL"
	logMsgMultiEventSQLFailed     = "failed to convert multiple events insert statement to SQL"
	logMsgReadCompleted           = "read completed"
	logMsgEventsAppended          = "events appended"
	logMsgConcurrencyConflict     = "concurrency conflict detected"
	logMsgSQLExecuted             = "executed sql for: "
	logMsgOperation               = "eventlog operation: "
	logAttrError                  = "error"
	logAttrQuery                  = "query"
	logAttrEntityID               = "entity_id"
	logAttrEventType              = "event_type"
	logAttrEventCount             = "event_count"
	logAttrDurationMS             = "duration_ms"
	logAttrExpectedEvents         = "expected_events"
	logAttrRowsAffected           = "rows_affected"
	logAttrExpectedVersion        = "expected_version"
	logActionRead                 = "read"
	logActionAppend               = "append"
	colEntityID                   = "entity_id"
	colVersion                    = "version"
	colEventType                  = "event_type"
	colOccurredAt                 = "occurred_at"
	colPayload                    = "payload"
	colMetadata                   = "metadata"
	colSequenceNumber             = "sequence_number"
	colOrd                        = "ord"
	cteContext                    = "context"
	cteVals                       = "vals"
	dialectPostgres               = "postgres"
	aliasMaxVersion               = "max_version"
	castUUID                      = "?::uuid"
	castText                      = "?::text"
	castBigint                    = "?::bigint"
	castTimestamp                 = "?::timestamp with time zone"
	castJsonb                     = "?::jsonb"

	metricReadDuration   = "eventlog_read_duration_seconds"
	metricAppendDuration = "eventlog_append_duration_seconds"
	metricConflictsTotal = "eventlog_concurrency_conflicts_total"

	spanNameRead       = "eventlog.read"
	spanNameReadAll    = "eventlog.read_all"
	spanNameAppend     = "eventlog.append"
	spanAttrEntityID   = "entity_id"
	spanAttrEventCount = "event_count"
	spanStatusSuccess  = "success"
	spanStatusError    = "error"
	spanStatusConflict = "conflict"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// EventLog is a Postgres-backed, append-only store of per-entity event streams.
// Optimistic concurrency is enforced in a single round trip: the append INSERT is
// guarded by a CTE reading the stream's current MAX(version), so a conditional
// append either lands all events or affects zero rows.
type EventLog struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventlog.Logger
	metricsCollector eventlog.MetricsCollector
	tracingCollector eventlog.TracingCollector
}

// Option defines a functional option for configuring EventLog.
type Option func(*EventLog) error

// WithTableName sets the table name for the EventLog.
func WithTableName(tableName string) Option {
	return func(el *EventLog) error {
		if tableName == "" {
			return eventlog.ErrEmptyEventsTableName
		}

		el.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the EventLog.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Event counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger eventlog.Logger) Option {
	return func(el *EventLog) error {
		el.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the EventLog.
// The collector will receive read/append durations and concurrency conflict counts.
func WithMetrics(collector eventlog.MetricsCollector) Option {
	return func(el *EventLog) error {
		el.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the EventLog.
// Every Read, ReadAll and Append runs inside a span carrying the entity id and
// event count, finished with a success, error or conflict status.
func WithTracing(collector eventlog.TracingCollector) Option {
	return func(el *EventLog) error {
		el.tracingCollector = collector
		return nil
	}
}

type queryResultRow struct {
	entityID   string
	version    int64
	eventType  string
	payload    []byte
	metadata   []byte
	occurredAt time.Time
}

// NewEventLogFromPGXPool creates a new EventLog using a pgx Pool with optional configuration.
func NewEventLogFromPGXPool(db *pgxpool.Pool, options ...Option) (EventLog, error) {
	if db == nil {
		return EventLog{}, eventlog.ErrNilDatabaseConnection
	}

	return newEventLog(adapters.NewPGXAdapter(db), options...)
}

// NewEventLogFromSQLDB creates a new EventLog using a sql.DB with optional configuration.
func NewEventLogFromSQLDB(db *sql.DB, options ...Option) (EventLog, error) {
	if db == nil {
		return EventLog{}, eventlog.ErrNilDatabaseConnection
	}

	return newEventLog(adapters.NewSQLAdapter(db), options...)
}

// NewEventLogFromSQLX creates a new EventLog using a sqlx.DB with optional configuration.
func NewEventLogFromSQLX(db *sqlx.DB, options ...Option) (EventLog, error) {
	if db == nil {
		return EventLog{}, eventlog.ErrNilDatabaseConnection
	}

	return newEventLog(adapters.NewSQLXAdapter(db), options...)
}

func newEventLog(db adapters.DBAdapter, options ...Option) (EventLog, error) {
	el := EventLog{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&el); err != nil {
			return EventLog{}, err
		}
	}

	return el, nil
}

// Read retrieves the events of one entity's stream, ordered by version,
// starting after fromVersion (pass 0 to read the whole stream).
func (el EventLog) Read(ctx context.Context, entityID uuid.UUID, fromVersion eventlog.Version) (
	eventlog.StoredRecords,
	error,
) {

	ctx, span := el.startSpan(ctx, spanNameRead, map[string]string{spanAttrEntityID: entityID.String()})

	sqlQuery, buildQueryErr := el.buildSelectQuery(entityID, fromVersion)
	if buildQueryErr != nil {
		if el.logger != nil {
			el.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		}
		el.finishSpan(span, spanStatusError, nil)

		return nil, buildQueryErr
	}

	stream, readErr := el.readWithQuery(ctx, sqlQuery, entityID)
	if readErr != nil {
		el.finishSpan(span, spanStatusError, nil)
		return nil, readErr
	}

	el.finishSpan(span, spanStatusSuccess, map[string]string{spanAttrEventCount: strconv.Itoa(len(stream))})

	return stream, nil
}

// ReadAll retrieves every event in the log in global append order.
// It exists for projection rebuilds; command handling always reads single streams.
func (el EventLog) ReadAll(ctx context.Context) (eventlog.StoredRecords, error) {
	ctx, span := el.startSpan(ctx, spanNameReadAll, nil)

	sqlQuery, buildQueryErr := el.buildSelectAllQuery()
	if buildQueryErr != nil {
		if el.logger != nil {
			el.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		}
		el.finishSpan(span, spanStatusError, nil)

		return nil, buildQueryErr
	}

	stream, readErr := el.readWithQuery(ctx, sqlQuery, uuid.Nil)
	if readErr != nil {
		el.finishSpan(span, spanStatusError, nil)
		return nil, readErr
	}

	el.finishSpan(span, spanStatusSuccess, map[string]string{spanAttrEventCount: strconv.Itoa(len(stream))})

	return stream, nil
}

func (el EventLog) readWithQuery(ctx context.Context, sqlQuery string, entityID uuid.UUID) (
	eventlog.StoredRecords,
	error,
) {

	rows, duration, queryErr := el.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer el.closeRows(rows)

	stream, scanErr := el.processQueryResults(rows)
	if scanErr != nil {
		return nil, scanErr
	}

	el.recordDuration(metricReadDuration, duration)
	el.logOperation(
		logMsgReadCompleted,
		logAttrEntityID, entityID.String(),
		logAttrEventCount, len(stream),
		logAttrDurationMS, el.durationToMilliseconds(duration))

	return stream, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (el EventLog) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := el.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	el.logQueryWithDuration(sqlQuery, logActionRead, duration)

	if queryErr != nil {
		if el.logger != nil {
			el.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, duration, errors.Join(eventlog.ErrQueryingEventsFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (el EventLog) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if el.logger != nil {
			el.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// processQueryResults processes database rows and converts them to stored records.
func (el EventLog) processQueryResults(rows adapters.DBRows) (
	eventlog.StoredRecords,
	error,
) {

	result := queryResultRow{}
	stream := make(eventlog.StoredRecords, 0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.entityID, &result.version, &result.eventType, &result.occurredAt, &result.payload, &result.metadata)
		if rowScanErr != nil {
			if el.logger != nil {
				el.logger.Error(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			}

			return nil, errors.Join(eventlog.ErrScanningDBRowFailed, rowScanErr)
		}

		record, buildRecordErr := eventlog.BuildRecord(result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildRecordErr != nil {
			if el.logger != nil {
				el.logger.Error(logMsgBuildStoredRecordFailed, logAttrError, buildRecordErr.Error(), logAttrEventType, result.eventType)
			}

			return nil, errors.Join(eventlog.ErrBuildingStoredRecordFailed, buildRecordErr)
		}

		entityID, parseErr := uuid.Parse(result.entityID)
		if parseErr != nil {
			return nil, errors.Join(eventlog.ErrBuildingStoredRecordFailed, parseErr)
		}

		stream = append(stream, eventlog.StoredRecord{
			Record:   record,
			EntityID: entityID,
			Version:  eventlog.Version(result.version),
		})
	}

	return stream, nil
}

// Append attempts to append one or multiple eventlog.Record(s) onto one entity's stream,
// conditioned on the stream still being at expectedVersion. The inserted events receive
// versions expectedVersion+1 ... expectedVersion+n.
//
// Returns the new stream version on success, or eventlog.ErrConcurrencyConflict when a
// concurrent writer advanced the stream first.
func (el EventLog) Append(
	ctx context.Context,
	entityID uuid.UUID,
	expectedVersion eventlog.Version,
	record eventlog.Record,
	additionalRecords ...eventlog.Record,
) (eventlog.Version, error) {

	allRecords := eventlog.Records{record}
	allRecords = append(allRecords, additionalRecords...)

	ctx, span := el.startSpan(ctx, spanNameAppend, map[string]string{
		spanAttrEntityID:   entityID.String(),
		spanAttrEventCount: strconv.Itoa(len(allRecords)),
	})

	sqlQuery, buildQueryErr := el.buildAppendQuery(entityID, allRecords, expectedVersion)
	if buildQueryErr != nil {
		el.finishSpan(span, spanStatusError, nil)
		return 0, buildQueryErr
	}

	rowsAffected, duration, execErr := el.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		el.finishSpan(span, appendSpanStatus(execErr), nil)
		return 0, execErr
	}

	if err := el.validateAppendResult(entityID, rowsAffected, len(allRecords), expectedVersion); err != nil {
		el.finishSpan(span, appendSpanStatus(err), nil)
		return 0, err
	}

	el.finishSpan(span, spanStatusSuccess, nil)

	el.recordDuration(metricAppendDuration, duration)
	el.logOperation(
		logMsgEventsAppended,
		logAttrEntityID, entityID.String(),
		logAttrEventCount, len(allRecords),
		logAttrDurationMS, el.durationToMilliseconds(duration),
	)

	return expectedVersion + eventlog.Version(len(allRecords)), nil
}

// buildAppendQuery builds the appropriate SQL query for single or multiple events.
func (el EventLog) buildAppendQuery(
	entityID uuid.UUID,
	allRecords eventlog.Records,
	expectedVersion eventlog.Version,
) (sqlQueryString, error) {

	var sqlQuery sqlQueryString
	var buildQueryErr error

	switch len(allRecords) {
	case 1:
		sqlQuery, buildQueryErr = el.buildInsertQueryForSingleEvent(entityID, allRecords[0], expectedVersion)

	default:
		sqlQuery, buildQueryErr = el.buildInsertQueryForMultipleEvents(entityID, allRecords, expectedVersion)
	}

	if buildQueryErr != nil {
		if el.logger != nil {
			el.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEventCount, len(allRecords))
		}

		return "", buildQueryErr
	}

	return sqlQuery, nil
}

// executeAppendQuery executes the SQL append query and returns rows affected and duration.
func (el EventLog) executeAppendQuery(ctx context.Context, sqlQuery string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	tag, execErr := el.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	el.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		// Two conditional appends racing on the same stream can both pass the CTE guard;
		// the unique (entity_id, version) index then rejects the loser.
		if isUniqueViolation(execErr) {
			el.incrementCounter(metricConflictsTotal)
			return 0, duration, eventlog.ErrConcurrencyConflict
		}

		if el.logger != nil {
			el.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, duration, errors.Join(eventlog.ErrAppendingEventsFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		if el.logger != nil {
			el.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, duration, errors.Join(eventlog.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// validateAppendResult checks if the append operation was successful and detects concurrency conflicts.
func (el EventLog) validateAppendResult(
	entityID uuid.UUID,
	rowsAffected int64,
	expectedEventCount int,
	expectedVersion eventlog.Version,
) error {

	if rowsAffected < int64(expectedEventCount) {
		el.incrementCounter(metricConflictsTotal)
		el.logOperation(
			logMsgConcurrencyConflict,
			logAttrEntityID, entityID.String(),
			logAttrExpectedEvents, expectedEventCount,
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedVersion, expectedVersion,
		)

		return eventlog.ErrConcurrencyConflict
	}

	return nil
}

func (el EventLog) buildSelectQuery(entityID uuid.UUID, fromVersion eventlog.Version) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(el.eventTableName).
		Select(goqu.L(castText, goqu.C(colEntityID)).As(colEntityID), colVersion, colEventType, colOccurredAt, colPayload, colMetadata).
		Where(
			goqu.C(colEntityID).Eq(entityID.String()),
			goqu.C(colVersion).Gt(fromVersion),
		).
		Order(goqu.I(colVersion).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventlog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (el EventLog) buildSelectAllQuery() (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(el.eventTableName).
		Select(goqu.L(castText, goqu.C(colEntityID)).As(colEntityID), colVersion, colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventlog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (el EventLog) buildInsertQueryForSingleEvent(
	entityID uuid.UUID,
	record eventlog.Record,
	expectedVersion eventlog.Version,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(el.eventTableName).
		Select(goqu.COALESCE(goqu.MAX(colVersion), 0).As(aliasMaxVersion)).
		Where(goqu.C(colEntityID).Eq(entityID.String()))

	// Define the SELECT for the INSERT
	selectStmt := builder.
		From(cteContext).
		Select(
			goqu.L(castUUID, entityID.String()),
			goqu.L("? + 1", goqu.C(aliasMaxVersion)),
			goqu.V(record.EventType),
			goqu.V(record.OccurredAt),
			goqu.V(record.PayloadJSON),
			goqu.V(record.MetadataJSON),
		).
		Where(goqu.C(aliasMaxVersion).Eq(goqu.V(expectedVersion)))

	// Finalize the full INSERT query
	insertStmt := builder.
		Insert(el.eventTableName).
		Cols(colEntityID, colVersion, colEventType, colOccurredAt, colPayload, colMetadata).
		FromQuery(selectStmt).
		With(cteContext, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		if el.logger != nil {
			el.logger.Error(logMsgSingleEventSQLFailed, logAttrError, toSQLErr.Error(), logAttrEventType, record.EventType)
		}
		return "", errors.Join(eventlog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (el EventLog) buildInsertQueryForMultipleEvents(
	entityID uuid.UUID,
	records eventlog.Records,
	expectedVersion eventlog.Version,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(el.eventTableName).
		Select(goqu.COALESCE(goqu.MAX(colVersion), 0).As(aliasMaxVersion)).
		Where(goqu.C(colEntityID).Eq(entityID.String()))

	// Create individual SELECT statements for each event; ord determines the version offset
	unionStatements := make([]*goqu.SelectDataset, len(records))
	for i, record := range records {
		unionStatements[i] = builder.
			Select(
				goqu.L(castBigint, i+1).As(colOrd),
				goqu.L(castText, record.EventType).As(colEventType),
				goqu.L(castTimestamp, record.OccurredAt).As(colOccurredAt),
				goqu.L(castJsonb, record.PayloadJSON).As(colPayload),
				goqu.L(castJsonb, record.MetadataJSON).As(colMetadata),
			)
	}

	// Combine all SELECT statements with UNION ALL
	valuesStmt := unionStatements[0]
	for i := 1; i < len(unionStatements); i++ {
		valuesStmt = valuesStmt.UnionAll(unionStatements[i])
	}

	// Finalize the full INSERT query
	valsOrd := fmt.Sprintf("%s.%s", cteVals, colOrd)
	valsEventType := fmt.Sprintf("%s.%s", cteVals, colEventType)
	valsOccurredAt := fmt.Sprintf("%s.%s", cteVals, colOccurredAt)
	valsPayload := fmt.Sprintf("%s.%s", cteVals, colPayload)
	valsMetadata := fmt.Sprintf("%s.%s", cteVals, colMetadata)

	insertStmt := builder.
		Insert(el.eventTableName).
		Cols(colEntityID, colVersion, colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.L(castUUID, entityID.String()),
					goqu.L(fmt.Sprintf("%s.%s + %s", cteContext, aliasMaxVersion, valsOrd)),
					valsEventType,
					valsOccurredAt,
					valsPayload,
					valsMetadata,
				).
				Where(goqu.C(aliasMaxVersion).Eq(goqu.V(expectedVersion))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		if el.logger != nil {
			el.logger.Error(logMsgMultiEventSQLFailed, logAttrError, toSQLErr.Error(), logAttrEventCount, len(records))
		}
		return "", errors.Join(eventlog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// isUniqueViolation reports whether the error is a Postgres unique constraint
// violation (SQLSTATE 23505), matched textually to stay adapter-agnostic.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key value")
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (el EventLog) logQueryWithDuration(
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	if el.logger != nil {
		el.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, el.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (el EventLog) logOperation(action string, args ...any) {
	if el.logger != nil {
		el.logger.Info(logMsgOperation+action, args...)
	}
}

// startSpan opens a trace span if a tracing collector is configured.
func (el EventLog) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventlog.SpanContext) {
	if el.tracingCollector == nil {
		return ctx, nil
	}

	return el.tracingCollector.StartSpan(ctx, name, attrs)
}

// finishSpan completes a trace span if a tracing collector is configured.
func (el EventLog) finishSpan(span eventlog.SpanContext, status string, attrs map[string]string) {
	if el.tracingCollector == nil || span == nil {
		return
	}

	el.tracingCollector.FinishSpan(span, status, attrs)
}

// appendSpanStatus distinguishes an optimistic-concurrency loss from a real failure.
func appendSpanStatus(err error) string {
	if errors.Is(err, eventlog.ErrConcurrencyConflict) {
		return spanStatusConflict
	}

	return spanStatusError
}

func (el EventLog) recordDuration(metric string, duration time.Duration) {
	if el.metricsCollector != nil {
		el.metricsCollector.RecordDuration(metric, duration, nil)
	}
}

func (el EventLog) incrementCounter(metric string) {
	if el.metricsCollector != nil {
		el.metricsCollector.IncrementCounter(metric, nil)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (el EventLog) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
