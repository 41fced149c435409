package game

import "github.com/ismailsvc/stellar-bomb-backend/internal/puzzles"

// Countdown duration and mistake budget per difficulty. A zero budget means
// any wrong submission is instantly fatal.
var (
	TotalTimeByDifficulty = map[puzzles.Difficulty]int{
		puzzles.Easy:   40,
		puzzles.Medium: 30,
		puzzles.Hard:   20,
	}

	MistakesByDifficulty = map[puzzles.Difficulty]int{
		puzzles.Easy:   3,
		puzzles.Medium: 1,
		puzzles.Hard:   0,
	}
)

var rankedBasePoints = map[puzzles.Difficulty]int{
	puzzles.Easy:   100,
	puzzles.Medium: 200,
	puzzles.Hard:   500,
}

// RankedScore is the score the leaderboard orders by: a difficulty base plus
// ten points per remaining second. Unknown difficulties fall back to the
// medium base, matching the original client.
func RankedScore(remainingSeconds int, d puzzles.Difficulty) int {
	base, ok := rankedBasePoints[d]
	if !ok {
		base = rankedBasePoints[puzzles.Medium]
	}
	timeBonus := remainingSeconds * 10
	if timeBonus < 0 {
		timeBonus = 0
	}
	return base + timeBonus
}

// SimplePoints is the legacy 1/2/3 bookkeeping scheme kept on catalog puzzle
// records. It never decides leaderboard order; RankedScore does.
func SimplePoints(d puzzles.Difficulty) int {
	switch d {
	case puzzles.Easy:
		return 1
	case puzzles.Medium:
		return 2
	case puzzles.Hard:
		return 3
	}
	return 2
}
