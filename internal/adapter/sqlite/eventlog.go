// Package sqlite persists telemetry events for operator diagnostics. The
// event log is optional; the service runs without it when no path is
// configured.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/soletra/backdrop-backend/internal/domain"
	"github.com/soletra/backdrop-backend/internal/sandbox"
)

// Schema is the complete DDL for the event log.
const Schema = `
CREATE TABLE IF NOT EXISTS telemetry_events (
    event_id   TEXT PRIMARY KEY,
    source     TEXT NOT NULL,
    state      TEXT NOT NULL,
    preset_id  TEXT,
    reason     TEXT,
    timestamp  INTEGER NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);
CREATE INDEX IF NOT EXISTS idx_telemetry_events_time
    ON telemetry_events(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_telemetry_events_source
    ON telemetry_events(source, timestamp DESC);
`

// Entry is one persisted telemetry event.
type Entry struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	State     string    `json:"state"`
	PresetID  string    `json:"presetId,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventLog records resolution and render outcomes. Writes never fail the
// caller: a broken event log costs diagnostics, not traffic.
type EventLog struct {
	log *slog.Logger
	db  *sql.DB
}

// Open opens (or creates) the event log database at path and applies the
// schema.
func Open(logger *slog.Logger, path string) (*EventLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply event log schema: %w", err)
	}
	return &EventLog{
		log: logger.With("adapter", "eventlog"),
		db:  db,
	}, nil
}

// Record persists one resolution outcome. Failures are logged and dropped.
func (l *EventLog) Record(ctx context.Context, source string, t domain.Telemetry) {
	l.insert(ctx, source, string(t.State), t.PresetID, t.Reason, t.Timestamp)
}

// RecordRender persists one sandbox render outcome.
func (l *EventLog) RecordRender(ctx context.Context, ev sandbox.Event) {
	l.insert(ctx, "sandbox", string(ev.Type), ev.PresetID, ev.Details, ev.Timestamp)
}

func (l *EventLog) insert(ctx context.Context, source, state, presetID, reason string, ts time.Time) {
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO telemetry_events (event_id, source, state, preset_id, reason, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), source, state, presetID, reason, ts.UnixMilli(),
	)
	if err != nil {
		l.log.WarnContext(ctx, "event insert failed",
			slog.String("source", source),
			slog.String("state", state),
			slog.String("error", err.Error()),
		)
	}
}

// Recent returns up to n events, newest first.
func (l *EventLog) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT event_id, source, state, preset_id, reason, timestamp
		 FROM telemetry_events
		 ORDER BY timestamp DESC, created_at DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var presetID, reason sql.NullString
		var ts int64
		if err := rows.Scan(&e.ID, &e.Source, &e.State, &presetID, &reason, &ts); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.PresetID = presetID.String
		e.Reason = reason.String
		e.Timestamp = time.UnixMilli(ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes events older than the retention window and reports how
// many were removed.
func (l *EventLog) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	threshold := time.Now().Add(-retention).UnixMilli()
	res, err := l.db.ExecContext(ctx, `DELETE FROM telemetry_events WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (l *EventLog) Close() error {
	return l.db.Close()
}
