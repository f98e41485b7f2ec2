package appliance

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// openHistoryDB creates an in-memory database with the state history schema.
func openHistoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
CREATE TABLE appliance_state_history (
    id TEXT PRIMARY KEY,
    appliance_id TEXT NOT NULL,
    state TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT 'stream',
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);
CREATE INDEX idx_state_history_appliance ON appliance_state_history (appliance_id, created_at DESC);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return db
}

func TestHistoryRepository_RecordAndQuery(t *testing.T) {
	repo := NewSQLiteHistoryRepository(openHistoryDB(t))
	ctx := context.Background()

	state := State{
		"connectionState": "connected",
		"properties": map[string]any{"reported": map[string]any{
			"applianceState": "RUNNING",
			"timeToEnd":      1800.0,
		}},
	}

	if err := repo.RecordState(ctx, "wm-1", state, HistorySourceStream); err != nil {
		t.Fatalf("RecordState() error = %v", err)
	}
	if err := repo.RecordState(ctx, "wm-1", state, HistorySourcePoll); err != nil {
		t.Fatalf("RecordState() error = %v", err)
	}
	if err := repo.RecordState(ctx, "ov-1", state, HistorySourceCommand); err != nil {
		t.Fatalf("RecordState() error = %v", err)
	}

	t.Run("entries scoped to appliance", func(t *testing.T) {
		entries, err := repo.History(ctx, "wm-1", 0)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("entries = %d, want 2", len(entries))
		}
		sources := map[string]bool{}
		for _, e := range entries {
			if e.ApplianceID != "wm-1" {
				t.Errorf("ApplianceID = %q", e.ApplianceID)
			}
			if e.ID == "" {
				t.Error("entry missing id")
			}
			if e.CreatedAt.IsZero() {
				t.Error("entry missing timestamp")
			}
			sources[e.Source] = true
		}
		if !sources[HistorySourceStream] || !sources[HistorySourcePoll] {
			t.Errorf("sources = %v", sources)
		}
	})

	t.Run("state snapshot round-trips", func(t *testing.T) {
		entries, err := repo.History(ctx, "ov-1", 0)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1", len(entries))
		}
		got := entries[0].State
		if got.ConnectionState() != "connected" {
			t.Errorf("ConnectionState() = %q", got.ConnectionState())
		}
		if got.Reported()["timeToEnd"] != 1800.0 {
			t.Errorf("timeToEnd = %v", got.Reported()["timeToEnd"])
		}
	})

	t.Run("limit applies", func(t *testing.T) {
		entries, err := repo.History(ctx, "wm-1", 1)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("entries = %d, want 1", len(entries))
		}
	})

	t.Run("unknown appliance returns empty", func(t *testing.T) {
		entries, err := repo.History(ctx, "ghost", 0)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("entries = %d, want 0", len(entries))
		}
	})
}

func TestHistoryRepository_Validation(t *testing.T) {
	repo := NewSQLiteHistoryRepository(openHistoryDB(t))
	ctx := context.Background()

	if err := repo.RecordState(ctx, "", State{}, HistorySourceStream); err == nil {
		t.Error("RecordState() should reject an empty appliance id")
	}
	if _, err := repo.History(ctx, "", 0); err == nil {
		t.Error("History() should reject an empty appliance id")
	}

	// Empty source defaults to the stream origin.
	if err := repo.RecordState(ctx, "wm-1", nil, ""); err != nil {
		t.Fatalf("RecordState() error = %v", err)
	}
	entries, err := repo.History(ctx, "wm-1", 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Source != HistorySourceStream {
		t.Errorf("entries = %+v, want one stream-sourced entry", entries)
	}
}
