package game

import (
	"testing"

	"github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"
	"github.com/stretchr/testify/assert"
)

func TestRankedScore(t *testing.T) {
	assert.Equal(t, 100, RankedScore(0, puzzles.Easy))
	assert.Equal(t, 200, RankedScore(0, puzzles.Medium))
	assert.Equal(t, 500, RankedScore(0, puzzles.Hard))

	assert.Equal(t, 100+25*10, RankedScore(25, puzzles.Easy))
	assert.Equal(t, 500+12*10, RankedScore(12, puzzles.Hard))
}

func TestRankedScore_MonotonicInRemainingTime(t *testing.T) {
	for _, d := range []puzzles.Difficulty{puzzles.Easy, puzzles.Medium, puzzles.Hard} {
		prev := RankedScore(0, d)
		for s := 1; s <= TotalTimeByDifficulty[d]; s++ {
			cur := RankedScore(s, d)
			assert.GreaterOrEqual(t, cur, prev, "difficulty %s at %ds", d, s)
			prev = cur
		}
	}
}

func TestRankedScore_HarderPaysMore(t *testing.T) {
	for s := 0; s <= 20; s += 5 {
		assert.Greater(t, RankedScore(s, puzzles.Hard), RankedScore(s, puzzles.Medium))
		assert.Greater(t, RankedScore(s, puzzles.Medium), RankedScore(s, puzzles.Easy))
	}
}

func TestRankedScore_UnknownDifficultyUsesMediumBase(t *testing.T) {
	assert.Equal(t, 200+10*10, RankedScore(10, puzzles.Difficulty("nightmare")))
}

func TestRankedScore_NegativeRemainingClamps(t *testing.T) {
	assert.Equal(t, 100, RankedScore(-5, puzzles.Easy))
}

func TestSimplePoints(t *testing.T) {
	assert.Equal(t, 1, SimplePoints(puzzles.Easy))
	assert.Equal(t, 2, SimplePoints(puzzles.Medium))
	assert.Equal(t, 3, SimplePoints(puzzles.Hard))
	assert.Equal(t, 2, SimplePoints(puzzles.Difficulty("unknown")))
}

func TestDifficultyTables(t *testing.T) {
	assert.Equal(t, 40, TotalTimeByDifficulty[puzzles.Easy])
	assert.Equal(t, 30, TotalTimeByDifficulty[puzzles.Medium])
	assert.Equal(t, 20, TotalTimeByDifficulty[puzzles.Hard])

	assert.Equal(t, 3, MistakesByDifficulty[puzzles.Easy])
	assert.Equal(t, 1, MistakesByDifficulty[puzzles.Medium])
	assert.Equal(t, 0, MistakesByDifficulty[puzzles.Hard])
}
