package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// TestGenerateCacheKeyDeterministic verifies that the cache key does
// not depend on map iteration order.
func TestGenerateCacheKeyDeterministic(t *testing.T) {
	dm := &DataManager[struct{}]{}

	a := bson.M{"guildId": "g1", "userId": "u1"}
	b := bson.M{"userId": "u1", "guildId": "g1"}

	keyA := dm.generateCacheKey(a)
	keyB := dm.generateCacheKey(b)

	if keyA != keyB {
		t.Errorf("cache keys differ for equal queries: %q vs %q", keyA, keyB)
	}
}

// TestGenerateCacheKeyDistinct verifies different queries never collide.
func TestGenerateCacheKeyDistinct(t *testing.T) {
	dm := &DataManager[struct{}]{}

	keyA := dm.generateCacheKey(bson.M{"guildId": "g1", "userId": "u1"})
	keyB := dm.generateCacheKey(bson.M{"guildId": "g1", "userId": "u2"})

	if keyA == keyB {
		t.Errorf("cache keys collide: %q", keyA)
	}
}
