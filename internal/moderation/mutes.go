package moderation

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// MutedRoleName is the restriction role granted while a mute is active.
const MutedRoleName = "Muted"

type muteKey struct {
	guildID string
	userID  string
}

// activeMute is the per-(guild,user) mute state. The generation counter
// lets a superseded or cancelled timer recognize it must not fire.
type activeMute struct {
	expiresAt  time.Time
	generation uint64
	timer      Timer
}

// MuteController owns the Unmuted -> Muted -> Unmuted state machine:
// it applies the restriction role, schedules the automatic expiry and
// guarantees at most one pending expiry timer per (guild, user).
type MuteController struct {
	platform Platform
	audit    AuditSink
	clock    Clock

	mu      sync.Mutex
	active  map[muteKey]*activeMute
	roleIDs map[string]string // guildID -> muted role ID
	gen     uint64
}

// NewMuteController creates a controller with no active mutes.
func NewMuteController(platform Platform, audit AuditSink, clock Clock) *MuteController {
	return &MuteController{
		platform: platform,
		audit:    audit,
		clock:    clock,
		active:   make(map[muteKey]*activeMute),
		roleIDs:  make(map[string]string),
	}
}

// Apply transitions the user to Muted for duration. Calling it while
// already Muted supersedes the pending expiry: the prior timer is
// cancelled and a fresh one scheduled from now. Role-mutation failures
// are logged, never allowed to abort the state bookkeeping.
func (m *MuteController) Apply(guildID, userID string, duration time.Duration, reason string) {
	roleID := m.mutedRole(guildID)
	if roleID != "" {
		if err := m.platform.GrantRole(guildID, userID, roleID); err != nil {
			logger.Error(fmt.Sprintf("Fallo al asignar rol de silencio a %s: %v", userID, err), "MuteController")
		}
	}

	m.mu.Lock()
	key := muteKey{guildID, userID}
	if prior, ok := m.active[key]; ok && prior.timer != nil {
		prior.timer.Stop()
	}
	m.gen++
	gen := m.gen
	state := &activeMute{
		expiresAt:  m.clock.Now().Add(duration),
		generation: gen,
	}
	m.active[key] = state
	state.timer = m.clock.AfterFunc(duration, func() {
		m.expire(key, gen)
	})
	m.mu.Unlock()

	m.audit.Record(guildID, fmt.Sprintf("%s - MUTED - %s", userID, reason))
}

// Revoke transitions the user to Unmuted immediately and cancels the
// pending automatic expiry so it never double-fires. Revoking an
// already-Unmuted user is a no-op.
func (m *MuteController) Revoke(guildID, userID string, reason string) {
	m.mu.Lock()
	key := muteKey{guildID, userID}
	state, ok := m.active[key]
	if ok {
		if state.timer != nil {
			state.timer.Stop()
		}
		delete(m.active, key)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	m.removeRole(guildID, userID)
	m.audit.Record(guildID, fmt.Sprintf("%s - UNMUTED - %s", userID, reason))
}

// IsMuted reports whether the user currently holds an active mute.
func (m *MuteController) IsMuted(guildID, userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[muteKey{guildID, userID}]
	return ok
}

// expire is the automatic Muted -> Unmuted transition. A stale
// generation means the mute was superseded or revoked after this timer
// was scheduled; it must not fire then.
func (m *MuteController) expire(key muteKey, gen uint64) {
	m.mu.Lock()
	state, ok := m.active[key]
	if !ok || state.generation != gen {
		m.mu.Unlock()
		return
	}
	delete(m.active, key)
	m.mu.Unlock()

	m.removeRole(key.guildID, key.userID)
	m.audit.Record(key.guildID, fmt.Sprintf("%s - UNMUTED - auto", key.userID))
}

// mutedRole resolves (and lazily creates) the guild's restriction role.
// Returns "" when the platform cannot provide one; the state machine
// still runs so the audit trail stays complete.
func (m *MuteController) mutedRole(guildID string) string {
	m.mu.Lock()
	roleID, ok := m.roleIDs[guildID]
	m.mu.Unlock()
	if ok {
		return roleID
	}

	roleID, err := m.platform.EnsureRoleExists(guildID, MutedRoleName)
	if err != nil {
		logger.Error(fmt.Sprintf("Fallo al preparar el rol '%s' en %s: %v", MutedRoleName, guildID, err), "MuteController")
		return ""
	}

	m.mu.Lock()
	m.roleIDs[guildID] = roleID
	m.mu.Unlock()
	return roleID
}

func (m *MuteController) removeRole(guildID, userID string) {
	roleID := m.mutedRole(guildID)
	if roleID == "" {
		return
	}
	if err := m.platform.RevokeRole(guildID, userID, roleID); err != nil {
		logger.Error(fmt.Sprintf("Fallo al retirar rol de silencio de %s: %v", userID, err), "MuteController")
	}
}
