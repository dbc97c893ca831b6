package moderation

import (
	"strings"
	"testing"
	"time"
)

func newMuteFixture() (*MuteController, *fakePlatform, *fakeAudit, *manualClock) {
	platform := newFakePlatform()
	audit := &fakeAudit{}
	clock := newManualClock()
	return NewMuteController(platform, audit, clock), platform, audit, clock
}

func countRecords(records []string, substr string) int {
	n := 0
	for _, r := range records {
		if strings.Contains(r, substr) {
			n++
		}
	}
	return n
}

// TestMuteApplyAndExpire verifies the automatic Muted -> Unmuted
// transition fires exactly once after the configured duration.
func TestMuteApplyAndExpire(t *testing.T) {
	m, platform, audit, clock := newMuteFixture()

	m.Apply("g1", "u1", 5*time.Minute, "Reached max warnings")
	if !m.IsMuted("g1", "u1") {
		t.Fatal("user should be muted after Apply")
	}
	if len(platform.grantedRoles()) != 1 {
		t.Errorf("granted roles = %d, want 1", len(platform.grantedRoles()))
	}

	clock.Advance(4 * time.Minute)
	if !m.IsMuted("g1", "u1") {
		t.Error("mute expired early")
	}

	clock.Advance(2 * time.Minute)
	if m.IsMuted("g1", "u1") {
		t.Error("mute should have expired")
	}
	if len(platform.revokedRoles()) != 1 {
		t.Errorf("revoked roles = %d, want 1", len(platform.revokedRoles()))
	}
	if got := countRecords(audit.all(), "UNMUTED - auto"); got != 1 {
		t.Errorf("auto-unmute audit records = %d, want 1", got)
	}

	// Nothing further ever fires.
	clock.Advance(time.Hour)
	if got := countRecords(audit.all(), "UNMUTED"); got != 1 {
		t.Errorf("unmute audit records after an hour = %d, want 1", got)
	}
}

// TestMuteRevokeCancelsExpiry verifies apply-then-revoke leaves no
// pending expiry side effect.
func TestMuteRevokeCancelsExpiry(t *testing.T) {
	m, platform, audit, clock := newMuteFixture()

	m.Apply("g1", "u1", 5*time.Minute, "admin")
	m.Revoke("g1", "u1", "admin unmute")

	if m.IsMuted("g1", "u1") {
		t.Fatal("user should be unmuted after Revoke")
	}
	if len(platform.revokedRoles()) != 1 {
		t.Errorf("revoked roles = %d, want 1", len(platform.revokedRoles()))
	}

	clock.Advance(time.Hour)
	if got := countRecords(audit.all(), "UNMUTED - auto"); got != 0 {
		t.Errorf("auto-unmute fired %d times after explicit revoke, want 0", got)
	}
}

// TestMuteReapplySupersedes verifies a second Apply cancels the first
// timer: exactly one expiry, at second-apply time plus duration.
func TestMuteReapplySupersedes(t *testing.T) {
	m, platform, audit, clock := newMuteFixture()

	m.Apply("g1", "u1", 5*time.Minute, "first")
	clock.Advance(3 * time.Minute)
	m.Apply("g1", "u1", 5*time.Minute, "second")

	// First timer's deadline passes; the mute must survive.
	clock.Advance(3 * time.Minute)
	if !m.IsMuted("g1", "u1") {
		t.Fatal("superseded timer fired")
	}

	// Second deadline (3m+5m from first apply) passes.
	clock.Advance(2 * time.Minute)
	if m.IsMuted("g1", "u1") {
		t.Error("mute should have expired at second apply + duration")
	}
	if got := countRecords(audit.all(), "UNMUTED - auto"); got != 1 {
		t.Errorf("auto-unmute audit records = %d, want exactly 1", got)
	}
	if len(platform.revokedRoles()) != 1 {
		t.Errorf("revoked roles = %d, want 1", len(platform.revokedRoles()))
	}
}

// TestMuteRevokeIdempotent verifies revoking an unmuted user is a
// silent no-op.
func TestMuteRevokeIdempotent(t *testing.T) {
	m, platform, audit, _ := newMuteFixture()

	m.Revoke("g1", "u1", "admin unmute")

	if len(platform.revokedRoles()) != 0 {
		t.Errorf("revoked roles = %d, want 0", len(platform.revokedRoles()))
	}
	if len(audit.all()) != 0 {
		t.Errorf("audit records = %d, want 0", len(audit.all()))
	}
}

// TestMuteRoleFailureKeepsBookkeeping verifies a role-mutation failure
// is absorbed: the state transition and audit record still happen.
func TestMuteRoleFailureKeepsBookkeeping(t *testing.T) {
	m, platform, audit, clock := newMuteFixture()
	platform.failRoleOps = true

	m.Apply("g1", "u1", time.Minute, "test")
	if !m.IsMuted("g1", "u1") {
		t.Fatal("state transition aborted by role failure")
	}
	if got := countRecords(audit.all(), "MUTED"); got != 1 {
		t.Errorf("mute audit records = %d, want 1", got)
	}

	clock.Advance(2 * time.Minute)
	if m.IsMuted("g1", "u1") {
		t.Error("expiry aborted by role failure")
	}
}

// TestMutePerGuildIsolation verifies (user, guild) keys don't collide.
func TestMutePerGuildIsolation(t *testing.T) {
	m, _, _, clock := newMuteFixture()

	m.Apply("g1", "u1", 5*time.Minute, "test")
	m.Apply("g2", "u1", 10*time.Minute, "test")

	clock.Advance(6 * time.Minute)
	if m.IsMuted("g1", "u1") {
		t.Error("g1 mute should have expired")
	}
	if !m.IsMuted("g2", "u1") {
		t.Error("g2 mute should still be active")
	}
}
