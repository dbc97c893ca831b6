package audit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moderation.log")
	l := NewAuditLogger(path)
	t.Cleanup(l.Close)
	return l
}

func TestRecordAppendsToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moderation.log")
	l := NewAuditLogger(path)

	l.Record("g1", "u1 - WARNING - test - 1/5")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "u1 - WARNING - test - 1/5") {
		t.Errorf("log file missing the record: %q", string(data))
	}
	if !strings.Contains(string(data), "[g1]") {
		t.Errorf("log file missing the guild tag: %q", string(data))
	}
}

func TestRecentNewestFirst(t *testing.T) {
	l := newTestLogger(t)

	l.Record("g1", "first")
	l.Record("g1", "second")
	l.Record("g1", "third")

	recent := l.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("len(Recent(2)) = %d, want 2", len(recent))
	}
	if !strings.Contains(recent[0], "third") {
		t.Errorf("Recent[0] = %q, want the newest entry", recent[0])
	}
	if !strings.Contains(recent[1], "second") {
		t.Errorf("Recent[1] = %q, want the second newest", recent[1])
	}
}

func TestRecentBounded(t *testing.T) {
	l := newTestLogger(t)

	for i := 0; i < recentCapacity+50; i++ {
		l.Record("g1", "entry")
	}
	if got := len(l.Recent(recentCapacity + 50)); got != recentCapacity {
		t.Errorf("len(Recent) = %d, want %d", got, recentCapacity)
	}
}

func TestMirrorAndPublisherFire(t *testing.T) {
	l := newTestLogger(t)

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var mirrored string
	var published Record

	l.SetMirror(func(guildID, text string) {
		mu.Lock()
		mirrored = guildID + ":" + text
		mu.Unlock()
		wg.Done()
	})
	l.SetPublisher(func(record Record) {
		mu.Lock()
		published = record
		mu.Unlock()
		wg.Done()
	})

	l.Record("g1", "u1 - MUTED - Reached max warnings")
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if mirrored != "g1:u1 - MUTED - Reached max warnings" {
		t.Errorf("mirror got %q", mirrored)
	}
	if published.GuildID != "g1" || published.ID == "" {
		t.Errorf("publisher got %+v, want guild g1 and a generated ID", published)
	}
}

func TestRecordWithoutHooksIsSafe(t *testing.T) {
	l := newTestLogger(t)
	l.Record("g1", "no hooks registered")

	if got := len(l.Recent(1)); got != 1 {
		t.Errorf("len(Recent(1)) = %d, want 1", got)
	}
}
