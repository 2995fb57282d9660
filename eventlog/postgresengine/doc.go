// Package postgresengine implements the event log on PostgreSQL.
//
// It expects an events table with this shape (the table name is configurable
// via WithTableName):
//
//	CREATE TABLE events (
//	    sequence_number BIGSERIAL PRIMARY KEY,
//	    entity_id       UUID                     NOT NULL,
//	    version         BIGINT                   NOT NULL,
//	    event_type      TEXT                     NOT NULL,
//	    occurred_at     TIMESTAMP WITH TIME ZONE NOT NULL,
//	    payload         JSONB                    NOT NULL,
//	    metadata        JSONB                    NOT NULL,
//	    UNIQUE (entity_id, version)
//	);
//
//	CREATE INDEX events_entity_id_version_idx ON events (entity_id, version);
//
// Versions within one entity's stream start at 1 and are contiguous. Appends
// are conditional on the stream's current MAX(version), evaluated inside the
// INSERT statement itself, so optimistic concurrency needs no transaction:
// either all events of an append land, or zero rows are affected and the
// append reports eventlog.ErrConcurrencyConflict. The unique constraint backs
// the guard up against rare same-snapshot races.
package postgresengine
