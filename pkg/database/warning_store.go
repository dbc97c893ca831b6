// Package database provides the DataManager for cached database operations.
package database

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// WarningStore persists per-user warning counts in the "warnings"
// collection. Writes go through the DataManager so they are cached and
// queued while the database is offline.
type WarningStore struct {
	dm *DataManager[models.WarningsDocument]
}

// NewWarningStore creates a WarningStore over the given database
func NewWarningStore(db *Database) *WarningStore {
	return &WarningStore{
		dm: NewDataManager[models.WarningsDocument]("warnings", db),
	}
}

// Load reads every warning document into a guildID -> userID -> count map
func (s *WarningStore) Load(ctx context.Context) (map[string]map[string]int, error) {
	docs, err := s.dm.GetAll(bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error al cargar advertencias: %w", err)
	}

	counts := make(map[string]map[string]int)
	for _, doc := range docs {
		if doc.GuildID == "" || doc.UserID == "" {
			continue
		}
		if counts[doc.GuildID] == nil {
			counts[doc.GuildID] = make(map[string]int)
		}
		counts[doc.GuildID][doc.UserID] = doc.Count
	}

	logger.System(fmt.Sprintf("Cargadas %d advertencias desde la DB.", len(docs)), "WarningStore")
	return counts, nil
}

// Save upserts the count for one user. A zero count is stored, not
// deleted, so the reset survives a cold start too.
func (s *WarningStore) Save(ctx context.Context, guildID, userID string, count int) error {
	query := bson.M{"guildId": guildID, "userId": userID}
	doc := models.WarningsDocument{
		GuildID: guildID,
		UserID:  userID,
		Count:   count,
	}

	if _, err := s.dm.Set(query, doc); err != nil {
		return fmt.Errorf("error al guardar advertencia de %s/%s: %w", guildID, userID, err)
	}
	return nil
}
