package history

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	if store.conn == nil {
		t.Fatal("Store connection is nil")
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := setupTestStore(t)

	id1, err := store.Record("deploy", "hostname:web*", 314, "Run script: deploy", "ActivityGroup")
	if err != nil {
		t.Fatalf("Failed to record execution: %v", err)
	}
	if id1 == "" {
		t.Fatal("Expected a non-empty invocation id")
	}

	id2, err := store.Record("backup", "tag:db", 315, "Run script: backup", "ActivityGroup")
	if err != nil {
		t.Fatalf("Failed to record execution: %v", err)
	}
	if id2 == id1 {
		t.Error("Expected distinct invocation ids")
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// Most recent first.
	if entries[0].ScriptTitle != "backup" || entries[1].ScriptTitle != "deploy" {
		t.Errorf("Unexpected order: %q, %q", entries[0].ScriptTitle, entries[1].ScriptTitle)
	}
	if entries[1].Query != "hostname:web*" || entries[1].ActivityID != 314 {
		t.Errorf("Unexpected entry: %+v", entries[1])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("Expected a recorded timestamp")
	}
}

func TestRecentLimit(t *testing.T) {
	store := setupTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.Record("deploy", "tag:all", 100+i, "summary", "ActivityGroup"); err != nil {
			t.Fatalf("Failed to record execution: %v", err)
		}
	}

	entries, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}

	if len(entries) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].ActivityID != 104 {
		t.Errorf("Expected newest entry first, got activity %d", entries[0].ActivityID)
	}
}

func TestRecentEmpty(t *testing.T) {
	store := setupTestStore(t)

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
