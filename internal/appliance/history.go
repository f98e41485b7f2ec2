package appliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// State history source values.
const (
	HistorySourceStream   = "stream"
	HistorySourcePoll     = "poll"
	HistorySourceDeferred = "deferred"
	HistorySourceCommand  = "command"
)

// HistoryEntry represents a single appliance state change record.
//
// Each entry stores a full snapshot of the appliance state at the time the
// change was observed. This provides a local audit trail even when the
// time-series database is unavailable.
type HistoryEntry struct {
	// ID is the UUID primary key for the history row.
	ID string `json:"id"`

	// ApplianceID is the unique identifier of the appliance.
	ApplianceID string `json:"appliance_id"`

	// State is the JSON snapshot of the appliance state.
	State State `json:"state"`

	// Source identifies how the state change was observed (stream, poll,
	// deferred, command).
	Source string `json:"source"`

	// CreatedAt is the timestamp of the state change (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// HistoryRepository stores and retrieves appliance state change history.
//
// Implementations must be thread-safe and use UTC timestamps.
type HistoryRepository interface {
	// RecordState records an appliance state change.
	RecordState(ctx context.Context, applianceID string, state State, source string) error

	// History returns recent state change history for the appliance,
	// ordered newest first.
	History(ctx context.Context, applianceID string, limit int) ([]HistoryEntry, error)
}

// SQLiteHistoryRepository implements HistoryRepository using SQLite.
//
// It stores state snapshots as JSON in the appliance_state_history table.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteHistoryRepository creates a new SQLite state history repository.
func NewSQLiteHistoryRepository(db *sql.DB) *SQLiteHistoryRepository {
	return &SQLiteHistoryRepository{db: db}
}

// RecordState inserts a new state history entry for an appliance.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - applianceID: Unique appliance identifier
//   - state: State snapshot to persist
//   - source: Origin of the change (stream, poll, deferred, command)
//
// Returns:
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteHistoryRepository) RecordState(ctx context.Context, applianceID string, state State, source string) error {
	if applianceID == "" {
		return fmt.Errorf("appliance id is required")
	}
	if source == "" {
		source = HistorySourceStream
	}
	if state == nil {
		state = State{}
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshalling state: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO appliance_state_history (id, appliance_id, state, source) VALUES (?, ?, ?, ?)",
		uuid.NewString(),
		applianceID,
		string(stateJSON),
		source,
	)
	if err != nil {
		return fmt.Errorf("inserting state history: %w", err)
	}

	return nil
}

// History returns recent state history entries for an appliance, ordered
// newest first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - applianceID: Unique appliance identifier
//   - limit: Maximum entries to return (default 50, max 200)
//
// Returns:
//   - []HistoryEntry: History entries ordered by created_at DESC
//   - error: nil on success, otherwise the underlying query error
func (r *SQLiteHistoryRepository) History(ctx context.Context, applianceID string, limit int) ([]HistoryEntry, error) {
	if applianceID == "" {
		return nil, fmt.Errorf("appliance id is required")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, appliance_id, state, source, created_at
		 FROM appliance_state_history
		 WHERE appliance_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		applianceID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying state history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var entry HistoryEntry
		var stateJSON string
		var createdAt string

		if err := rows.Scan(&entry.ID, &entry.ApplianceID, &stateJSON, &entry.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning state history: %w", err)
		}

		if err := json.Unmarshal([]byte(stateJSON), &entry.State); err != nil {
			return nil, fmt.Errorf("unmarshalling state: %w", err)
		}

		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			ts, err = time.Parse("2006-01-02 15:04:05", createdAt)
			if err != nil {
				return nil, fmt.Errorf("parsing created_at: %w", err)
			}
		}
		entry.CreatedAt = ts.UTC()

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating state history: %w", err)
	}

	return entries, nil
}
