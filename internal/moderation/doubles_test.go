package moderation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memStore is an in-memory WarningStore. failSaves makes every Save
// return an error to exercise the persistence-failure path.
type memStore struct {
	mu        sync.Mutex
	saved     map[string]int // "guildID/userID" -> count
	failSaves bool
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]int)}
}

func (s *memStore) Load(ctx context.Context) (map[string]map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]map[string]int)
	for key, count := range s.saved {
		var guildID, userID string
		for i := 0; i < len(key); i++ {
			if key[i] == '/' {
				guildID, userID = key[:i], key[i+1:]
				break
			}
		}
		if out[guildID] == nil {
			out[guildID] = make(map[string]int)
		}
		out[guildID][userID] = count
	}
	return out, nil
}

func (s *memStore) Save(ctx context.Context, guildID, userID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSaves {
		return fmt.Errorf("store unavailable")
	}
	s.saved[guildID+"/"+userID] = count
	return nil
}

func (s *memStore) get(guildID, userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, ok := s.saved[guildID+"/"+userID]
	return count, ok
}

// fakeAudit collects audit records.
type fakeAudit struct {
	mu      sync.Mutex
	records []string
}

func (a *fakeAudit) Record(guildID, text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, text)
}

func (a *fakeAudit) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.records...)
}

// fakePlatform records platform side effects; individual calls can be
// made to fail.
type fakePlatform struct {
	mu           sync.Mutex
	deleted      []MessageRef
	sent         []string
	granted      []string // "guildID/userID/roleID"
	revoked      []string
	failDeletes  bool
	failRoleOps  bool
	ensuredRoles map[string]string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{ensuredRoles: make(map[string]string)}
}

func (p *fakePlatform) DeleteMessage(ref MessageRef) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failDeletes {
		return fmt.Errorf("missing permissions")
	}
	p.deleted = append(p.deleted, ref)
	return nil
}

func (p *fakePlatform) SendChannelMessage(channelID, text string, deleteAfter time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, text)
	return nil
}

func (p *fakePlatform) GrantRole(guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failRoleOps {
		return fmt.Errorf("role hierarchy")
	}
	p.granted = append(p.granted, guildID+"/"+userID+"/"+roleID)
	return nil
}

func (p *fakePlatform) RevokeRole(guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failRoleOps {
		return fmt.Errorf("role hierarchy")
	}
	p.revoked = append(p.revoked, guildID+"/"+userID+"/"+roleID)
	return nil
}

func (p *fakePlatform) EnsureRoleExists(guildID, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.ensuredRoles[guildID]; ok {
		return id, nil
	}
	id := "role-" + guildID
	p.ensuredRoles[guildID] = id
	return id, nil
}

func (p *fakePlatform) sentMessages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sent...)
}

func (p *fakePlatform) deletedRefs() []MessageRef {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]MessageRef(nil), p.deleted...)
}

func (p *fakePlatform) grantedRoles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.granted...)
}

func (p *fakePlatform) revokedRoles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.revoked...)
}

// manualClock is a controllable Clock. Advance moves time forward and
// fires due timers synchronously on the calling goroutine.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	fireAt  time.Time
	f       func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1700000000, 0)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, fireAt: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.fireAt.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}
