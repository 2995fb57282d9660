package eventlog

import (
	"errors"
)

// Version is a type alias for uint64, representing the position of an event within
// one entity's stream. Versions start at 1 and increase by exactly 1 per event.
type Version = uint64

var ErrEmptyEventsTableName = errors.New("empty events table name supplied")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrConcurrencyConflict is returned by conditional appends when the entity stream
// advanced past the expected version between read and append. It signals a retryable
// situation: reload, re-validate, append again.
var ErrConcurrencyConflict = errors.New("concurrency conflict, expected version did not match")

var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingEventsFailed = errors.New("querying events failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrBuildingStoredRecordFailed = errors.New("building stored record failed")
var ErrAppendingEventsFailed = errors.New("appending events failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
