package ads

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

var ErrAdNotFound = errors.New("advertisement not found")

// Service serves sponsor banners and tracks their analytics. It is handed to
// its consumers explicitly rather than reached through a global, and keeps
// counters in memory between flushes so a missing database only costs
// durability, never gameplay.
type Service struct {
	db *gorm.DB

	mu        sync.RWMutex
	ads       []models.Advertisement
	analytics map[string]*models.AdAnalytic
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:        db,
		analytics: make(map[string]*models.AdAnalytic),
	}
}

// LoadAds pulls the ad inventory from the database. Without one the service
// simply serves whatever SetAds installed (nothing, by default).
func (s *Service) LoadAds() error {
	if s.db == nil {
		return nil
	}

	var ads []models.Advertisement
	if err := s.db.Where("active = ?", true).Find(&ads).Error; err != nil {
		return err
	}

	s.mu.Lock()
	s.ads = ads
	s.mu.Unlock()

	logger.Info().Int("count", len(ads)).Msg("Ad inventory loaded")
	return nil
}

// SetAds replaces the in-memory inventory directly.
func (s *Service) SetAds(ads []models.Advertisement) {
	s.mu.Lock()
	s.ads = ads
	s.mu.Unlock()
}

// ActiveAds returns ads whose flag is set and whose date window contains now.
func (s *Service) ActiveAds() []models.Advertisement {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []models.Advertisement
	for _, ad := range s.ads {
		if !ad.Active {
			continue
		}
		if !ad.StartDate.IsZero() && now.Before(ad.StartDate) {
			continue
		}
		if !ad.EndDate.IsZero() && now.After(ad.EndDate) {
			continue
		}
		active = append(active, ad)
	}
	return active
}

// AdsByPlacement filters active ads to those targeting the placement.
func (s *Service) AdsByPlacement(placement string) []models.Advertisement {
	var matched []models.Advertisement
	for _, ad := range s.ActiveAds() {
		for _, p := range ad.PlacementIDs {
			if p == placement {
				matched = append(matched, ad)
				break
			}
		}
	}
	return matched
}

var priorityRank = map[models.AdPriority]int{
	models.AdPriorityHigh:   0,
	models.AdPriorityMedium: 1,
	models.AdPriorityLow:    2,
}

// SelectByPriority picks the highest-priority ad for the placement, breaking
// ties randomly so equal sponsors rotate.
func (s *Service) SelectByPriority(placement string) *models.Advertisement {
	candidates := s.AdsByPlacement(placement)
	if len(candidates) == 0 {
		return nil
	}

	best := priorityRank[models.AdPriorityLow] + 1
	for _, ad := range candidates {
		if r, ok := priorityRank[ad.Priority]; ok && r < best {
			best = r
		}
	}

	var tier []models.Advertisement
	for _, ad := range candidates {
		if priorityRank[ad.Priority] == best {
			tier = append(tier, ad)
		}
	}
	if len(tier) == 0 {
		tier = candidates
	}

	ad := tier[rand.Intn(len(tier))]
	return &ad
}

// SelectRandom picks uniformly among the placement's active ads.
func (s *Service) SelectRandom(placement string) *models.Advertisement {
	candidates := s.AdsByPlacement(placement)
	if len(candidates) == 0 {
		return nil
	}
	ad := candidates[rand.Intn(len(candidates))]
	return &ad
}

// RecordImpression bumps the impression counter for the ad.
func (s *Service) RecordImpression(adID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryLocked(adID).Impressions++
	s.recomputeLocked(adID)
}

// RecordClick bumps the click counter for the ad.
func (s *Service) RecordClick(adID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryLocked(adID).Clicks++
	s.recomputeLocked(adID)
}

func (s *Service) entryLocked(adID string) *models.AdAnalytic {
	if a, ok := s.analytics[adID]; ok {
		return a
	}
	a := &models.AdAnalytic{AdID: adID}
	s.analytics[adID] = a
	return a
}

func (s *Service) recomputeLocked(adID string) {
	a := s.analytics[adID]
	if a.Impressions > 0 {
		a.CTR = float64(a.Clicks) / float64(a.Impressions) * 100
	}
	a.Timestamp = time.Now()
}

// Analytics returns the current counters for one ad.
func (s *Service) Analytics(adID string) (models.AdAnalytic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analytics[adID]
	if !ok {
		return models.AdAnalytic{}, ErrAdNotFound
	}
	return *a, nil
}

// Flush upserts all in-memory counters to the analytics table.
func (s *Service) Flush() error {
	if s.db == nil {
		return nil
	}

	s.mu.RLock()
	rows := make([]models.AdAnalytic, 0, len(s.analytics))
	for _, a := range s.analytics {
		rows = append(rows, *a)
	}
	s.mu.RUnlock()

	if len(rows) == 0 {
		return nil
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ad_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"impressions", "clicks", "ctr", "timestamp"}),
	}).Create(&rows).Error
}

// Reset clears the in-memory counters, typically after a successful Flush.
func (s *Service) Reset() {
	s.mu.Lock()
	s.analytics = make(map[string]*models.AdAnalytic)
	s.mu.Unlock()
}
