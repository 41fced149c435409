package models

import "time"

// AvatarPurchase is an insert-only receipt for a cosmetic avatar bought with
// the native currency. The transaction id comes from the wallet collaborator.
type AvatarPurchase struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	WalletAddress string    `gorm:"column:wallet_address;index" json:"wallet_address"`
	AvatarEmoji   string    `gorm:"column:avatar_emoji" json:"avatar_emoji"`
	Cost          float64   `json:"cost"`
	TransactionID string    `gorm:"column:transaction_id" json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (AvatarPurchase) TableName() string {
	return "avatar_purchases"
}

// FramePurchase is the insert-only receipt for avatar frames.
type FramePurchase struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	WalletAddress string    `gorm:"column:wallet_address;index" json:"wallet_address"`
	FrameID       string    `gorm:"column:frame_id" json:"frame_id"`
	Cost          float64   `json:"cost"`
	TransactionID string    `gorm:"column:transaction_id" json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (FramePurchase) TableName() string {
	return "frame_purchases"
}
