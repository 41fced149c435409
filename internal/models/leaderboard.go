package models

import "time"

// LeaderboardEntry is an append-only score record. The remote table is
// unbounded; ranking queries order by points descending.
type LeaderboardEntry struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WalletAddress string    `gorm:"column:wallet_address;index" json:"wallet_address"`
	Username      string    `json:"username"`
	PuzzleTitle   string    `gorm:"column:puzzle_title" json:"puzzle_title"`
	Difficulty    string    `json:"difficulty"`
	RemainingTime int       `gorm:"column:remaining_time" json:"remaining_time"`
	Points        int       `gorm:"index:idx_leaderboard_points,sort:desc" json:"points"`
	Avatar        string    `json:"avatar"`
	SelectedFrame string    `gorm:"column:selected_frame" json:"selected_frame"`
	CreatedAt     time.Time `json:"created_at"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}
