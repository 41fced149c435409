package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchStatusWaiting    MatchStatus = "waiting"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// PuzzleSnapshot is the puzzle copy frozen into a match row so both players
// solve the exact same puzzle. Stored as a JSON column.
type PuzzleSnapshot struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	StarterCode    string `json:"starterCode"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
}

func (p PuzzleSnapshot) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PuzzleSnapshot) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = PuzzleSnapshot{}
		return nil
	default:
		return fmt.Errorf("unsupported type for PuzzleSnapshot: %T", value)
	}
}

// MultiplayerMatch is the shared match row keyed by a short human-shareable
// code. The row store is authoritative; clients hold read-through views
// refreshed by polling.
type MultiplayerMatch struct {
	MatchCode  string         `gorm:"primaryKey;column:match_code" json:"match_code"`
	PuzzleID   string         `gorm:"column:puzzle_id" json:"puzzle_id"`
	Difficulty string         `json:"difficulty"`
	PuzzleData PuzzleSnapshot `gorm:"column:puzzle_data;type:jsonb" json:"puzzle_data"`
	Status     MatchStatus    `gorm:"type:text;default:'waiting'" json:"status"`

	Player1Wallet   string  `gorm:"column:player1_wallet" json:"player1_wallet"`
	Player1Username string  `gorm:"column:player1_username" json:"player1_username"`
	Player2Wallet   *string `gorm:"column:player2_wallet" json:"player2_wallet"`
	Player2Username *string `gorm:"column:player2_username" json:"player2_username"`

	Player1Solved *bool `gorm:"column:player1_solved" json:"player1_solved"`
	Player1Time   *int  `gorm:"column:player1_time" json:"player1_time"`
	Player2Solved *bool `gorm:"column:player2_solved" json:"player2_solved"`
	Player2Time   *int  `gorm:"column:player2_time" json:"player2_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MultiplayerMatch) TableName() string {
	return "multiplayer_matches"
}
