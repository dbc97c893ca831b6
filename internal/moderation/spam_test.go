package moderation

import (
	"testing"
	"time"
)

// TestSpamDetectorBurst verifies the limit is hit on the 5th message
// inside the window and that an expired timestamp rotates out.
func TestSpamDetectorBurst(t *testing.T) {
	d := NewSpamDetector(7*time.Second, 5)
	base := time.Unix(1000, 0)

	for i := 0; i < 4; i++ {
		isSpam, count := d.RecordAndCheck("user-1", base.Add(time.Duration(i)*time.Second))
		if isSpam {
			t.Fatalf("call %d: isSpam = true, want false", i+1)
		}
		if count != i+1 {
			t.Fatalf("call %d: count = %d, want %d", i+1, count, i+1)
		}
	}

	isSpam, count := d.RecordAndCheck("user-1", base.Add(4*time.Second))
	if !isSpam {
		t.Error("5th call: isSpam = false, want true")
	}
	if count != 5 {
		t.Errorf("5th call: count = %d, want 5", count)
	}

	// At base+7.5s the first timestamp (7.5s old) has left the window;
	// one dropped, one added keeps the count at the limit.
	isSpam, count = d.RecordAndCheck("user-1", base.Add(7500*time.Millisecond))
	if !isSpam {
		t.Error("6th call: isSpam = false, want true")
	}
	if count != 5 {
		t.Errorf("6th call: count = %d, want 5 (one dropped, one added)", count)
	}
}

// TestSpamDetectorWindowBoundary verifies the strict inequality: a
// message exactly window seconds old is excluded.
func TestSpamDetectorWindowBoundary(t *testing.T) {
	d := NewSpamDetector(7*time.Second, 5)
	base := time.Unix(2000, 0)

	d.RecordAndCheck("user-1", base)
	_, count := d.RecordAndCheck("user-1", base.Add(7*time.Second))
	if count != 1 {
		t.Errorf("count = %d, want 1 (timestamp exactly at now-window excluded)", count)
	}
}

// TestSpamDetectorCountsWhileSpamming ensures state is mutated
// unconditionally, even on calls that already declared spam.
func TestSpamDetectorCountsWhileSpamming(t *testing.T) {
	d := NewSpamDetector(7*time.Second, 3)
	base := time.Unix(3000, 0)

	d.RecordAndCheck("user-1", base)
	d.RecordAndCheck("user-1", base.Add(time.Second))
	isSpam, _ := d.RecordAndCheck("user-1", base.Add(2*time.Second))
	if !isSpam {
		t.Fatal("3rd call should declare spam")
	}

	isSpam, count := d.RecordAndCheck("user-1", base.Add(3*time.Second))
	if !isSpam {
		t.Error("4th call should still declare spam")
	}
	if count != 4 {
		t.Errorf("4th call: count = %d, want 4 (counting continues)", count)
	}
}

// TestSpamDetectorPerUserIsolation ensures authors don't share windows.
func TestSpamDetectorPerUserIsolation(t *testing.T) {
	d := NewSpamDetector(7*time.Second, 5)
	base := time.Unix(4000, 0)

	for i := 0; i < 4; i++ {
		d.RecordAndCheck("user-1", base.Add(time.Duration(i)*time.Second))
	}

	isSpam, count := d.RecordAndCheck("user-2", base.Add(4*time.Second))
	if isSpam {
		t.Error("user-2 first message flagged as spam")
	}
	if count != 1 {
		t.Errorf("user-2 count = %d, want 1", count)
	}
}
