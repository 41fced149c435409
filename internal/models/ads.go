package models

import (
	"time"

	"github.com/lib/pq"
)

type AdPriority string

const (
	AdPriorityHigh   AdPriority = "high"
	AdPriorityMedium AdPriority = "medium"
	AdPriorityLow    AdPriority = "low"
)

// Advertisement is a rotation slot entry read from the row store.
type Advertisement struct {
	ID           string         `gorm:"primaryKey;type:text" json:"id"`
	Title        string         `json:"title"`
	ImageURL     string         `gorm:"column:image_url" json:"image_url"`
	TargetURL    string         `gorm:"column:target_url" json:"target_url"`
	PlacementIDs pq.StringArray `gorm:"column:placement_ids;type:text[]" json:"placement_ids"`
	Priority     AdPriority     `gorm:"type:text;default:'medium'" json:"priority"`
	Active       bool           `gorm:"default:true" json:"active"`
	StartDate    time.Time      `gorm:"column:start_date" json:"start_date"`
	EndDate      time.Time      `gorm:"column:end_date" json:"end_date"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}

// AdAnalytic aggregates impressions and clicks per ad, upserted on ad_id.
type AdAnalytic struct {
	AdID        string    `gorm:"primaryKey;column:ad_id" json:"ad_id"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	CTR         float64   `gorm:"column:ctr" json:"ctr"`
	Timestamp   time.Time `json:"timestamp"`
}

func (AdAnalytic) TableName() string {
	return "ad_analytics"
}
