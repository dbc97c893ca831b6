package moderation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// WarningStore is the durable backing for the warning ledger. The
// in-memory state stays authoritative for the process lifetime; Save
// failures are logged and tolerated (best-effort durability).
type WarningStore interface {
	// Load returns all persisted counts keyed by guildID then userID.
	Load(ctx context.Context) (map[string]map[string]int, error)
	// Save persists a single count after a mutation.
	Save(ctx context.Context, guildID, userID string, count int) error
}

// AuditSink receives one record per moderation action.
type AuditSink interface {
	Record(guildID, text string)
}

type ledgerKey struct {
	guildID string
	userID  string
}

// WarningLedger is the authoritative escalation state: a persistent
// mapping of user to warning count. Mutations for the same user are
// serialized; different users do not contend beyond the map lock.
type WarningLedger struct {
	store WarningStore

	mu     sync.Mutex
	counts map[ledgerKey]int
}

// NewWarningLedger creates an empty ledger backed by store.
func NewWarningLedger(store WarningStore) *WarningLedger {
	return &WarningLedger{
		store:  store,
		counts: make(map[ledgerKey]int),
	}
}

// LoadFromStore replaces in-memory state with the persisted counts.
// A store failure starts the ledger empty rather than aborting startup.
func (l *WarningLedger) LoadFromStore(ctx context.Context) {
	loaded, err := l.store.Load(ctx)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron cargar las advertencias, iniciando con ledger vacío: %v", err), "WarningLedger")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts = make(map[ledgerKey]int)
	total := 0
	for guildID, users := range loaded {
		for userID, count := range users {
			if count > 0 {
				l.counts[ledgerKey{guildID, userID}] = count
				total++
			}
		}
	}
	logger.Info(fmt.Sprintf("Ledger de advertencias cargado: %d usuarios con advertencias", total), "WarningLedger")
}

// AddWarning increments the user's count atomically. When the new count
// reaches maxWarnings the stored count resets to 0 in the same
// operation and escalated is true so the caller can trigger a mute.
func (l *WarningLedger) AddWarning(ctx context.Context, guildID, userID string, maxWarnings int) (newCount int, escalated bool) {
	l.mu.Lock()
	key := ledgerKey{guildID, userID}
	newCount = l.counts[key] + 1
	escalated = newCount >= maxWarnings
	if escalated {
		l.counts[key] = 0
	} else {
		l.counts[key] = newCount
	}
	stored := l.counts[key]
	l.mu.Unlock()

	l.persist(ctx, guildID, userID, stored)
	return newCount, escalated
}

// Reset clears the user's warning count (admin action).
func (l *WarningLedger) Reset(ctx context.Context, guildID, userID string) {
	l.mu.Lock()
	l.counts[ledgerKey{guildID, userID}] = 0
	l.mu.Unlock()

	l.persist(ctx, guildID, userID, 0)
}

// Get returns the user's current warning count.
func (l *WarningLedger) Get(guildID, userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[ledgerKey{guildID, userID}]
}

// Top returns up to n (userID, count) pairs with the highest counts in
// a guild-agnostic view, for the dashboard.
func (l *WarningLedger) Top(n int) []WarningRecord {
	l.mu.Lock()
	records := make([]WarningRecord, 0, len(l.counts))
	for key, count := range l.counts {
		if count > 0 {
			records = append(records, WarningRecord{GuildID: key.guildID, UserID: key.userID, Count: count})
		}
	}
	l.mu.Unlock()

	// Insertion sort by descending count; the dashboard asks for a
	// handful of rows out of a small map.
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && records[j].Count > records[j-1].Count; j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
	if len(records) > n {
		records = records[:n]
	}
	return records
}

// WarningRecord is a ledger row as exposed to the dashboard.
type WarningRecord struct {
	GuildID string `json:"guildId"`
	UserID  string `json:"userId"`
	Count   int    `json:"count"`
}

// persist writes one count through the store. Failures must not crash
// the moderation path: log and continue, the in-memory state remains
// authoritative.
func (l *WarningLedger) persist(ctx context.Context, guildID, userID string, count int) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := l.store.Save(ctx, guildID, userID, count); err != nil {
		logger.Error(fmt.Sprintf("Fallo al persistir advertencias de %s: %v", userID, err), "WarningLedger")
	}
}
