package moderation

import (
	"context"
	"sync"
	"testing"
)

// TestLedgerEscalation verifies the counts 1..max-1 and the atomic
// reset-to-zero on the escalating call.
func TestLedgerEscalation(t *testing.T) {
	const maxWarnings = 5
	store := newMemStore()
	l := NewWarningLedger(store)
	ctx := context.Background()

	for i := 1; i < maxWarnings; i++ {
		count, escalated := l.AddWarning(ctx, "g1", "u1", maxWarnings)
		if count != i {
			t.Fatalf("warning %d: count = %d, want %d", i, count, i)
		}
		if escalated {
			t.Fatalf("warning %d: escalated = true, want false", i)
		}
	}

	count, escalated := l.AddWarning(ctx, "g1", "u1", maxWarnings)
	if !escalated {
		t.Error("final warning: escalated = false, want true")
	}
	if count != maxWarnings {
		t.Errorf("final warning: count = %d, want %d", count, maxWarnings)
	}
	if got := l.Get("g1", "u1"); got != 0 {
		t.Errorf("post-escalation Get = %d, want 0 (reset in same operation)", got)
	}
	if saved, _ := store.get("g1", "u1"); saved != 0 {
		t.Errorf("post-escalation persisted count = %d, want 0", saved)
	}
}

// TestLedgerReset verifies the admin reset path.
func TestLedgerReset(t *testing.T) {
	store := newMemStore()
	l := NewWarningLedger(store)
	ctx := context.Background()

	l.AddWarning(ctx, "g1", "u1", 5)
	l.AddWarning(ctx, "g1", "u1", 5)
	l.Reset(ctx, "g1", "u1")

	if got := l.Get("g1", "u1"); got != 0 {
		t.Errorf("Get after Reset = %d, want 0", got)
	}
	if saved, _ := store.get("g1", "u1"); saved != 0 {
		t.Errorf("persisted count after Reset = %d, want 0", saved)
	}
}

// TestLedgerPersistenceFailure ensures a failing store never breaks the
// moderation path: in-memory state stays authoritative.
func TestLedgerPersistenceFailure(t *testing.T) {
	store := newMemStore()
	store.failSaves = true
	l := NewWarningLedger(store)
	ctx := context.Background()

	count, escalated := l.AddWarning(ctx, "g1", "u1", 5)
	if count != 1 || escalated {
		t.Errorf("AddWarning = (%d, %v), want (1, false)", count, escalated)
	}
	if got := l.Get("g1", "u1"); got != 1 {
		t.Errorf("Get = %d, want 1 despite persistence failure", got)
	}
}

// TestLedgerConcurrentSameUser hammers one user from many goroutines
// and checks no increment is lost.
func TestLedgerConcurrentSameUser(t *testing.T) {
	const workers = 50
	store := newMemStore()
	l := NewWarningLedger(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// maxWarnings above the total so no reset interferes
			l.AddWarning(ctx, "g1", "u1", workers+1)
		}()
	}
	wg.Wait()

	if got := l.Get("g1", "u1"); got != workers {
		t.Errorf("Get = %d, want %d (lost updates)", got, workers)
	}
}

// TestLedgerLoadFromStore verifies startup restore and that a corrupt
// or unavailable store starts the ledger empty.
func TestLedgerLoadFromStore(t *testing.T) {
	store := newMemStore()
	store.saved["g1/u1"] = 3
	store.saved["g2/u9"] = 1

	l := NewWarningLedger(store)
	l.LoadFromStore(context.Background())

	if got := l.Get("g1", "u1"); got != 3 {
		t.Errorf("Get(g1,u1) = %d, want 3", got)
	}
	if got := l.Get("g2", "u9"); got != 1 {
		t.Errorf("Get(g2,u9) = %d, want 1", got)
	}
	if got := l.Get("g1", "unknown"); got != 0 {
		t.Errorf("Get(unknown) = %d, want 0", got)
	}
}

// TestLedgerTop verifies the dashboard ranking.
func TestLedgerTop(t *testing.T) {
	store := newMemStore()
	l := NewWarningLedger(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		l.AddWarning(ctx, "g1", "heavy", 10)
	}
	l.AddWarning(ctx, "g1", "light", 10)

	top := l.Top(5)
	if len(top) != 2 {
		t.Fatalf("len(Top) = %d, want 2", len(top))
	}
	if top[0].UserID != "heavy" || top[0].Count != 3 {
		t.Errorf("Top[0] = %+v, want heavy/3", top[0])
	}

	if got := l.Top(1); len(got) != 1 {
		t.Errorf("len(Top(1)) = %d, want 1", len(got))
	}
}
