package generator

import (
	"math/rand"
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
)

// CacheExpiry bounds how long generated puzzles are reused before a fresh
// generator call is forced.
const CacheExpiry = 24 * time.Hour

type cacheEntry struct {
	Puzzles   []puzzles.Puzzle `json:"puzzles"`
	Timestamp int64            `json:"timestamp"` // unix millis
}

// Cache stores generated puzzles in the local key-value store under the same
// key layout the web client uses.
type Cache struct {
	store *localstore.Store
}

func NewCache(store *localstore.Store) *Cache {
	return &Cache{store: store}
}

// Puzzles returns the cached list, treating an expired cache as absent.
func (c *Cache) Puzzles() []puzzles.Puzzle {
	if c == nil || c.store == nil {
		return nil
	}
	var entry cacheEntry
	ok, err := c.store.Get(localstore.KeyPuzzleCache, &entry)
	if err != nil || !ok {
		return nil
	}
	if time.Now().UnixMilli()-entry.Timestamp > CacheExpiry.Milliseconds() {
		c.store.Delete(localstore.KeyPuzzleCache)
		return nil
	}
	return entry.Puzzles
}

// Add appends a puzzle and rewrites the cache with a fresh timestamp.
func (c *Cache) Add(p puzzles.Puzzle) {
	if c == nil || c.store == nil {
		return
	}
	entry := cacheEntry{
		Puzzles:   append(c.Puzzles(), p),
		Timestamp: time.Now().UnixMilli(),
	}
	// Cache errors are ignored, same as the client: generation still works
	// without a cache.
	c.store.Set(localstore.KeyPuzzleCache, entry)
}

// RandomByDifficulty picks a cached puzzle of the requested tier, or nil.
func (c *Cache) RandomByDifficulty(d puzzles.Difficulty) *puzzles.Puzzle {
	var tier []puzzles.Puzzle
	for _, p := range c.Puzzles() {
		if p.Difficulty == d {
			tier = append(tier, p)
		}
	}
	if len(tier) == 0 {
		return nil
	}
	p := tier[rand.Intn(len(tier))]
	return &p
}
