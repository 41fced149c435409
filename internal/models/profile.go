package models

import (
	"time"

	"github.com/lib/pq"
)

// UserProfile is the durable per-wallet profile row. Writes use upsert
// semantics keyed by wallet address.
type UserProfile struct {
	WalletAddress string    `gorm:"primaryKey;column:wallet_address" json:"wallet_address"`
	Username      string    `json:"username"`
	Avatar        string    `gorm:"default:'👨‍💻'" json:"avatar"`
	PhotoURL      string    `gorm:"column:photo_url" json:"photo_url"`
	Bio           string    `json:"bio"`
	Level         int       `gorm:"default:1" json:"level"`
	SelectedFrame string    `gorm:"column:selected_frame;default:'frame-none'" json:"selected_frame"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Owned cosmetics (Postgres string arrays)
	PurchasedAvatars pq.StringArray `gorm:"type:text[]" json:"purchased_avatars"`
	PurchasedFrames  pq.StringArray `gorm:"type:text[]" json:"purchased_frames"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
