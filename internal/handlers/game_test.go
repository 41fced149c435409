package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismailsvc/stellar-bomb-backend/internal/game"
	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
	"github.com/ismailsvc/stellar-bomb-backend/internal/services"
)

const testWallet = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// stubGen serves one fixed puzzle so rounds start instantly in tests.
type stubGen struct{}

func (stubGen) Generate(ctx context.Context, d puzzles.Difficulty) (*puzzles.Puzzle, error) {
	return &puzzles.Puzzle{
		ID:          "stub-1",
		Kind:        puzzles.KindCatalog,
		Title:       "Stub puzzle",
		StarterCode: "function sum(a, b) { return a - b; }",
		Difficulty:  d,
		Check: func(code string) bool {
			return strings.Contains(code, "a + b")
		},
	}, nil
}

func (stubGen) Validate(ctx context.Context, userCode, starterCode, expectedOutput string) (bool, error) {
	return true, nil
}

func setupGameRouter(t *testing.T, authedWallet string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	Init(Deps{
		Game:     game.NewManager(stubGen{}, store, nil),
		Profiles: services.NewProfileService(nil, store),
		Local:    store,
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if authedWallet != "" {
			c.Set("wallet", authedWallet)
		}
	})

	g := r.Group("/api/game")
	g.POST("/start", StartRound)
	g.POST("/submit", SubmitCode)
	g.GET("/round", GetRound)
	g.POST("/acknowledge", AcknowledgeRound)
	g.POST("/quit", QuitRound)
	g.GET("/stats", GetStats)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStartRound(t *testing.T) {
	r := setupGameRouter(t, "")

	w := doJSON(r, http.MethodPost, "/api/game/start", gin.H{"difficulty": "easy"})
	require.Equal(t, http.StatusOK, w.Code)

	var view game.RoundView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, game.StatePlaying, view.State)
	require.NotNil(t, view.Puzzle)
	assert.Equal(t, "Stub puzzle", view.Puzzle.Title)
	assert.Equal(t, 40, view.RemainingSeconds)
	assert.Equal(t, 3, view.MistakesRemaining)
}

func TestStartRound_UnknownDifficulty(t *testing.T) {
	r := setupGameRouter(t, "")

	w := doJSON(r, http.MethodPost, "/api/game/start", gin.H{"difficulty": "impossible"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartRound_MissingBody(t *testing.T) {
	r := setupGameRouter(t, "")

	w := doJSON(r, http.MethodPost, "/api/game/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitCode_WithoutRound(t *testing.T) {
	r := setupGameRouter(t, "")

	w := doJSON(r, http.MethodPost, "/api/game/submit", gin.H{"code": "anything"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitCode_CorrectFix(t *testing.T) {
	r := setupGameRouter(t, "")

	w := doJSON(r, http.MethodPost, "/api/game/start", gin.H{"difficulty": "medium"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/game/submit", gin.H{"code": "return a + b;"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Correct bool           `json:"correct"`
		Round   game.RoundView `json:"round"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Correct)
	assert.Equal(t, game.StateSuccess, resp.Round.State)
}

func TestSubmitCode_WrongFixSpendsMistake(t *testing.T) {
	r := setupGameRouter(t, "")

	w := doJSON(r, http.MethodPost, "/api/game/start", gin.H{"difficulty": "easy"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/game/submit", gin.H{"code": "still broken"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Correct bool           `json:"correct"`
		Round   game.RoundView `json:"round"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Correct)
	assert.Equal(t, game.StatePlaying, resp.Round.State)
	assert.Equal(t, 2, resp.Round.MistakesRemaining)
}

func TestAcknowledgeAndQuit(t *testing.T) {
	r := setupGameRouter(t, "")

	doJSON(r, http.MethodPost, "/api/game/start", gin.H{"difficulty": "easy"})
	doJSON(r, http.MethodPost, "/api/game/submit", gin.H{"code": "return a + b;"})

	w := doJSON(r, http.MethodPost, "/api/game/acknowledge", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view game.RoundView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, game.StateIdle, view.State)

	w = doJSON(r, http.MethodPost, "/api/game/quit", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStats_RequiresWallet(t *testing.T) {
	r := setupGameRouter(t, "")

	w := doJSON(r, http.MethodGet, "/api/game/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetStats_AuthedWallet(t *testing.T) {
	r := setupGameRouter(t, testWallet)

	doJSON(r, http.MethodPost, "/api/game/start", gin.H{"difficulty": "hard"})
	doJSON(r, http.MethodPost, "/api/game/submit", gin.H{"code": "return a + b;"})

	w := doJSON(r, http.MethodGet, "/api/game/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats game.PlayerStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.SuccessfulGames)
}
