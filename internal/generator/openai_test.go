package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	return NewCache(store)
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestGenerate_ParsesPuzzleFromCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)

		chatReply(t, w, "Here is your puzzle:\n```json\n"+
			`{"title":"Off By One","description":"Fix the loop","starterCode":"for(;;){}","expectedOutput":"done"}`+
			"\n```")
	}))
	defer server.Close()

	client := NewClient("test-key", "", newTestCache(t))
	client.BaseURL = server.URL

	p, err := client.Generate(context.Background(), puzzles.Medium)
	require.NoError(t, err)

	assert.Equal(t, puzzles.KindGenerated, p.Kind)
	assert.Equal(t, "Off By One", p.Title)
	assert.Equal(t, "Fix the loop", p.Description)
	assert.Equal(t, "for(;;){}", p.StarterCode)
	assert.Equal(t, "done", p.ExpectedOutput)
	assert.Equal(t, puzzles.Medium, p.Difficulty)

	// The generated puzzle lands in the cache for reuse.
	cached := client.Cache.RandomByDifficulty(puzzles.Medium)
	require.NotNil(t, cached)
	assert.Equal(t, p.ID, cached.ID)
}

func TestGenerate_CacheHitSkipsNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		chatReply(t, w, `{"title":"T","description":"D","starterCode":"S","expectedOutput":"E"}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "", newTestCache(t))
	client.BaseURL = server.URL

	_, err := client.Generate(context.Background(), puzzles.Easy)
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), puzzles.Easy)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second request must come from the cache")
}

func TestGenerate_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", "", newTestCache(t))
	client.BaseURL = server.URL

	_, err := client.Generate(context.Background(), puzzles.Hard)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGenerate_NoAPIKey(t *testing.T) {
	client := NewClient("", "", newTestCache(t))

	_, err := client.Generate(context.Background(), puzzles.Easy)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestValidate(t *testing.T) {
	answer := "true"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, answer)
	}))
	defer server.Close()

	client := NewClient("test-key", "", newTestCache(t))
	client.BaseURL = server.URL

	ok, err := client.Validate(context.Background(), "fixed code", "broken code", "42")
	require.NoError(t, err)
	assert.True(t, ok)

	answer = "false"
	ok, err = client.Validate(context.Background(), "still broken", "broken code", "42")
	require.NoError(t, err)
	assert.False(t, ok)

	answer = " TRUE \n"
	ok, err = client.Validate(context.Background(), "fixed code", "broken code", "42")
	require.NoError(t, err)
	assert.True(t, ok, "verdict parsing is case and whitespace insensitive")
}

func TestCacheExpiry(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	cache := NewCache(store)

	cache.Add(puzzles.Puzzle{ID: "p1", Difficulty: puzzles.Easy})
	require.Len(t, cache.Puzzles(), 1)

	// Rewrite the entry with a timestamp past the expiry window.
	stale := cacheEntry{
		Puzzles:   []puzzles.Puzzle{{ID: "p1", Difficulty: puzzles.Easy}},
		Timestamp: time.Now().Add(-CacheExpiry - time.Minute).UnixMilli(),
	}
	require.NoError(t, store.Set(localstore.KeyPuzzleCache, stale))

	assert.Nil(t, cache.Puzzles(), "expired cache reads as absent")
	assert.False(t, store.Has(localstore.KeyPuzzleCache), "expired cache is cleared")
}

func TestCacheRoundTripBeforeExpiry(t *testing.T) {
	cache := newTestCache(t)

	p := puzzles.Puzzle{
		ID:             "ai-123",
		Kind:           puzzles.KindGenerated,
		Title:          "Cached",
		StarterCode:    "function f() {}",
		ExpectedOutput: "ok",
		Difficulty:     puzzles.Hard,
	}
	cache.Add(p)

	got := cache.RandomByDifficulty(puzzles.Hard)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.StarterCode, got.StarterCode)
	assert.Equal(t, p.ExpectedOutput, got.ExpectedOutput)

	assert.Nil(t, cache.RandomByDifficulty(puzzles.Easy), "other tiers stay empty")
}

func TestExtractJSON(t *testing.T) {
	raw, ok := extractJSON("prose before {\"a\":1} prose after")
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, raw)

	_, ok = extractJSON("no json here")
	assert.False(t, ok)
}
