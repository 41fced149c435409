package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/models"
	"github.com/ismailsvc/stellar-bomb-backend/internal/stellar"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/utils"
)

var (
	ErrItemNotFound   = errors.New("shop item not found")
	ErrItemFree       = errors.New("free items cannot be purchased")
	ErrAlreadyOwned   = errors.New("item already owned")
	ErrPaymentInvalid = errors.New("payment could not be verified")
)

// AvatarItem is a purchasable avatar. Cost is in XLM; zero-cost avatars are
// available to everyone without a purchase.
type AvatarItem struct {
	Emoji       string  `json:"emoji"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// FrameItem is a purchasable avatar frame.
type FrameItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Animation   string  `json:"animation"`
}

var AvatarCatalog = []AvatarItem{
	{Emoji: "👨‍💻", Name: "Hacker Adam", Description: "Kod çözen özgüven sahibi", Cost: 0},
	{Emoji: "👩‍💻", Name: "Hacker Kız", Description: "Programlama tutkunu", Cost: 0},
	{Emoji: "🧑‍💻", Name: "Dev", Description: "Geliştirici ruhu", Cost: 0.5},
	{Emoji: "🐱", Name: "Tekno Kedi", Description: "Tıkıl tıkıl hızlı çözüm", Cost: 1},
	{Emoji: "🐶", Name: "Oyuncu Köpek", Description: "Sadık ve hızlı", Cost: 1},
	{Emoji: "🦊", Name: "Kırmızı Tilki", Description: "Zekâ ve hile ustası", Cost: 2},
	{Emoji: "🦁", Name: "Şampiyonlar Aslanı", Description: "Leaderboard kraliçesi", Cost: 5},
	{Emoji: "🐸", Name: "Hızlı Kurbağa", Description: "Her zıplayışta ilerleme", Cost: 1.5},
	{Emoji: "🦾", Name: "Siber Kollu", Description: "Geleceğin oyuncusu", Cost: 3},
	{Emoji: "👽", Name: "Uzaylı Zeka", Description: "Başka dünyadan yetenekli", Cost: 10},
}

var FrameCatalog = []FrameItem{
	{ID: "frame-none", Name: "Çerçevesiz", Description: "Standart avatar", Cost: 0, Animation: "none"},
	{ID: "frame-heart", Name: "Kalp Aşkı", Description: "Pembe kalp desenli çerçeve", Cost: 1.5, Animation: "heart-pulse"},
	{ID: "frame-wave", Name: "Dalga Derya", Description: "Mavi dalgalı çerçeve", Cost: 2, Animation: "wave-flow"},
	{ID: "frame-feather", Name: "Altın Kanat", Description: "Altın tüy desenli çerçeve", Cost: 2, Animation: "feather-drift"},
	{ID: "frame-stars", Name: "Yıldız Gökyüzü", Description: "Mor yıldız parıltılı çerçeve", Cost: 2.5, Animation: "stars-twinkle"},
	{ID: "frame-thorns", Name: "Gül Dikenleri", Description: "Kırmızı gül ve dikenli", Cost: 2.5, Animation: "thorns-shine"},
	{ID: "frame-crown", Name: "Kraliyet Taçı", Description: "Altın taç ve mücevher", Cost: 3, Animation: "crown-gleam"},
}

func avatarByEmoji(emoji string) *AvatarItem {
	for i := range AvatarCatalog {
		if AvatarCatalog[i].Emoji == emoji {
			return &AvatarCatalog[i]
		}
	}
	return nil
}

func frameByID(id string) *FrameItem {
	for i := range FrameCatalog {
		if FrameCatalog[i].ID == id {
			return &FrameCatalog[i]
		}
	}
	return nil
}

func avatarIsFree(emoji string) bool {
	item := avatarByEmoji(emoji)
	return item != nil && item.Cost == 0
}

func frameIsFree(id string) bool {
	item := frameByID(id)
	return item != nil && item.Cost == 0
}

// ShopService records cosmetic purchases. Payments are signed and submitted
// by the player's wallet; the service verifies the transaction on Horizon and
// writes the receipt plus ownership.
type ShopService struct {
	db      *gorm.DB
	local   *localstore.Store
	wallet  stellar.Wallet
	profile *ProfileService
}

func NewShopService(db *gorm.DB, local *localstore.Store, wallet stellar.Wallet, profile *ProfileService) *ShopService {
	return &ShopService{db: db, local: local, wallet: wallet, profile: profile}
}

// PurchaseAvatar verifies the payment and grants the avatar.
func (s *ShopService) PurchaseAvatar(ctx context.Context, wallet, emoji, transactionID string) (*models.UserProfile, error) {
	item := avatarByEmoji(emoji)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Cost == 0 {
		return nil, ErrItemFree
	}

	profile, err := s.profile.Get(wallet)
	if err != nil {
		return nil, err
	}
	if contains(profile.PurchasedAvatars, emoji) {
		return nil, ErrAlreadyOwned
	}

	if err := s.verifyPayment(ctx, transactionID); err != nil {
		return nil, err
	}

	receipt := models.AvatarPurchase{
		ID:            utils.GenerateID(),
		WalletAddress: wallet,
		AvatarEmoji:   emoji,
		Cost:          item.Cost,
		TransactionID: transactionID,
	}
	if s.db != nil {
		if err := s.db.Create(&receipt).Error; err != nil {
			return nil, fmt.Errorf("failed to record purchase: %w", err)
		}
	}

	profile.PurchasedAvatars = append(profile.PurchasedAvatars, emoji)
	profile.Avatar = emoji
	s.local.Set(localstore.KeySelectedAvatar, emoji)

	logger.Info().
		Str("wallet", utils.MaskAddress(wallet)).
		Str("avatar", emoji).
		Float64("cost", item.Cost).
		Msg("Avatar purchased")

	return s.profile.persist(profile)
}

// PurchaseFrame verifies the payment and grants the frame.
func (s *ShopService) PurchaseFrame(ctx context.Context, wallet, frameID, transactionID string) (*models.UserProfile, error) {
	item := frameByID(frameID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Cost == 0 {
		return nil, ErrItemFree
	}

	profile, err := s.profile.Get(wallet)
	if err != nil {
		return nil, err
	}
	if contains(profile.PurchasedFrames, frameID) {
		return nil, ErrAlreadyOwned
	}

	if err := s.verifyPayment(ctx, transactionID); err != nil {
		return nil, err
	}

	receipt := models.FramePurchase{
		ID:            utils.GenerateID(),
		WalletAddress: wallet,
		FrameID:       frameID,
		Cost:          item.Cost,
		TransactionID: transactionID,
	}
	if s.db != nil {
		if err := s.db.Create(&receipt).Error; err != nil {
			return nil, fmt.Errorf("failed to record purchase: %w", err)
		}
	}

	profile.PurchasedFrames = append(profile.PurchasedFrames, frameID)
	profile.SelectedFrame = frameID
	s.local.Set(localstore.KeySelectedFrame, frameID)

	logger.Info().
		Str("wallet", utils.MaskAddress(wallet)).
		Str("frame", frameID).
		Float64("cost", item.Cost).
		Msg("Frame purchased")

	return s.profile.persist(profile)
}

func (s *ShopService) verifyPayment(ctx context.Context, transactionID string) error {
	if s.wallet == nil {
		return nil
	}

	ok, err := s.wallet.VerifyPayment(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("payment verification failed: %w", err)
	}
	if !ok {
		return ErrPaymentInvalid
	}
	return nil
}

// Purchases lists both receipt types for a wallet.
func (s *ShopService) Purchases(wallet string) ([]models.AvatarPurchase, []models.FramePurchase, error) {
	if s.db == nil {
		return nil, nil, nil
	}

	var avatars []models.AvatarPurchase
	if err := s.db.Where("wallet_address = ?", wallet).Order("created_at DESC").Find(&avatars).Error; err != nil {
		return nil, nil, err
	}

	var frames []models.FramePurchase
	if err := s.db.Where("wallet_address = ?", wallet).Order("created_at DESC").Find(&frames).Error; err != nil {
		return nil, nil, err
	}

	return avatars, frames, nil
}
