package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/utils"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService reads and writes user_profiles, keeping a per-wallet copy in
// the local store so profiles survive a database outage.
type ProfileService struct {
	db    *gorm.DB
	local *localstore.Store
}

func NewProfileService(db *gorm.DB, local *localstore.Store) *ProfileService {
	return &ProfileService{db: db, local: local}
}

// Get returns the wallet's profile, falling back to the local cached copy
// when the database is missing or the row is gone.
func (s *ProfileService) Get(wallet string) (*models.UserProfile, error) {
	if s.db != nil {
		var profile models.UserProfile
		err := s.db.First(&profile, "wallet_address = ?", wallet).Error
		if err == nil {
			s.local.Set(localstore.ProfileKey(wallet), profile)
			return &profile, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Err(err).Msg("Profile read failed, trying local copy")
		}
	}

	var cached models.UserProfile
	ok, err := s.local.Get(localstore.ProfileKey(wallet), &cached)
	if err != nil || !ok {
		return nil, ErrProfileNotFound
	}
	return &cached, nil
}

// Upsert creates the profile on first connect and refreshes the username on
// later ones. Missing usernames get a masked form of the address.
func (s *ProfileService) Upsert(wallet, username string) (*models.UserProfile, error) {
	if username == "" {
		username = utils.MaskAddress(wallet)
	}

	profile := models.UserProfile{
		WalletAddress: wallet,
		Username:      username,
	}

	if s.db != nil {
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
		}).Create(&profile).Error
		if err != nil {
			return nil, err
		}
		// Re-read so defaults and owned cosmetics come back populated.
		if err := s.db.First(&profile, "wallet_address = ?", wallet).Error; err != nil {
			return nil, err
		}
	}

	s.local.Set(localstore.ProfileKey(wallet), profile)
	return &profile, nil
}

// ProfileUpdate carries the editable fields. Nil means unchanged.
type ProfileUpdate struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	PhotoURL *string `json:"photo_url"`
}

// Update applies the edit and returns the fresh profile.
func (s *ProfileService) Update(wallet string, update ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.Get(wallet)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		if !utils.ValidateUsername(*update.Username) {
			return nil, errors.New("username must be 3-30 letters, digits, _ or -")
		}
		profile.Username = *update.Username
	}
	if update.Bio != nil {
		profile.Bio = utils.TruncateString(*update.Bio, 280)
	}
	if update.PhotoURL != nil {
		profile.PhotoURL = *update.PhotoURL
	}

	return s.persist(profile)
}

// SelectAvatar sets the active avatar. Only free or owned avatars can be
// worn.
func (s *ProfileService) SelectAvatar(wallet, emoji string) (*models.UserProfile, error) {
	profile, err := s.Get(wallet)
	if err != nil {
		return nil, err
	}

	if !avatarIsFree(emoji) && !contains(profile.PurchasedAvatars, emoji) {
		return nil, errors.New("avatar not owned")
	}

	profile.Avatar = emoji
	s.local.Set(localstore.KeySelectedAvatar, emoji)
	return s.persist(profile)
}

// SelectFrame sets the active frame, same ownership rule as avatars.
func (s *ProfileService) SelectFrame(wallet, frameID string) (*models.UserProfile, error) {
	profile, err := s.Get(wallet)
	if err != nil {
		return nil, err
	}

	if !frameIsFree(frameID) && !contains(profile.PurchasedFrames, frameID) {
		return nil, errors.New("frame not owned")
	}

	profile.SelectedFrame = frameID
	s.local.Set(localstore.KeySelectedFrame, frameID)
	return s.persist(profile)
}

func (s *ProfileService) persist(profile *models.UserProfile) (*models.UserProfile, error) {
	if s.db != nil {
		if err := s.db.Save(profile).Error; err != nil {
			return nil, err
		}
	}
	s.local.Set(localstore.ProfileKey(profile.WalletAddress), *profile)
	return profile, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
