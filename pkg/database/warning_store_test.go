package database

import (
	"context"
	"testing"
)

// TestSaveWithDatabaseOffline verifies that persisting a warning count
// against a database that never connected does not crash and lands in
// the offline write queue instead.
func TestSaveWithDatabaseOffline(t *testing.T) {
	db := NewDatabase()
	store := NewWarningStore(db)

	if err := store.Save(context.Background(), "g1", "u1", 3); err != nil {
		t.Fatalf("Save with DB offline returned error: %v", err)
	}

	db.queueMu.Lock()
	defer db.queueMu.Unlock()

	if len(db.writeQueue) != 1 {
		t.Fatalf("expected 1 queued operation, got %d", len(db.writeQueue))
	}

	op := db.writeQueue[0]
	if op.CollectionName != "warnings" {
		t.Errorf("queued collection = %q, want %q", op.CollectionName, "warnings")
	}
	if op.Operation != "set" {
		t.Errorf("queued operation = %q, want %q", op.Operation, "set")
	}
}

// TestSaveOfflineRepeatedly pins that every offline write is queued,
// not just the first one.
func TestSaveOfflineRepeatedly(t *testing.T) {
	db := NewDatabase()
	store := NewWarningStore(db)

	for i := 1; i <= 3; i++ {
		if err := store.Save(context.Background(), "g1", "u1", i); err != nil {
			t.Fatalf("Save #%d with DB offline returned error: %v", i, err)
		}
	}

	db.queueMu.Lock()
	defer db.queueMu.Unlock()

	if len(db.writeQueue) != 3 {
		t.Fatalf("expected 3 queued operations, got %d", len(db.writeQueue))
	}
}
