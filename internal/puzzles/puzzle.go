package puzzles

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Kind tags the two puzzle variants. Catalog puzzles carry a static acceptance
// predicate over the submitted code; generated puzzles delegate acceptance to
// the external validator.
type Kind string

const (
	KindCatalog   Kind = "catalog"
	KindGenerated Kind = "generated"
)

// Puzzle is immutable once created. Catalog puzzles live for the process
// lifetime; generated ones are created on demand and may be cached for 24h.
type Puzzle struct {
	ID             string     `json:"id"`
	Kind           Kind       `json:"kind"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StarterCode    string     `json:"starterCode"`
	ExpectedOutput string     `json:"expectedOutput,omitempty"`
	Difficulty     Difficulty `json:"category"`

	// SimplePoints is the legacy 1/2/3 per-puzzle bookkeeping value. The
	// leaderboard ranks by game.RankedScore, never by this field.
	SimplePoints int `json:"points,omitempty"`

	// Check is the acceptance predicate for catalog puzzles. Nil for
	// generated puzzles, which are validated externally.
	Check func(code string) bool `json:"-"`
}

func ValidDifficulty(d Difficulty) bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}
