package moderation

import (
	"sync"
	"time"
)

// SpamDetector tracks per-author message timestamps inside a trailing
// window and flags burst posting. Safe for concurrent use.
type SpamDetector struct {
	window time.Duration
	limit  int

	mu    sync.Mutex
	times map[string][]time.Time
}

// NewSpamDetector creates a detector that declares spam when limit or
// more messages arrive within window.
func NewSpamDetector(window time.Duration, limit int) *SpamDetector {
	return &SpamDetector{
		window: window,
		limit:  limit,
		times:  make(map[string][]time.Time),
	}
}

// RecordAndCheck registers a message from userID at now and reports
// whether the author is spamming plus the count inside the window.
// State is mutated unconditionally on every call, even when spam is
// declared. A timestamp exactly at now-window is excluded (strict
// inequality), so there are no false negatives across the boundary.
func (d *SpamDetector) RecordAndCheck(userID string, now time.Time) (isSpam bool, countInWindow int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.times[userID][:0]
	for _, t := range d.times[userID] {
		if now.Sub(t) < d.window {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	d.times[userID] = kept

	return len(kept) >= d.limit, len(kept)
}
