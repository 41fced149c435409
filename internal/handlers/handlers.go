package handlers

import (
	"github.com/ismailsvc/stellar-bomb-backend/internal/ads"
	"github.com/ismailsvc/stellar-bomb-backend/internal/game"
	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/multiplayer"
	"github.com/ismailsvc/stellar-bomb-backend/internal/services"
	"github.com/ismailsvc/stellar-bomb-backend/internal/session"
	"github.com/ismailsvc/stellar-bomb-backend/internal/stellar"
)

// Package-level collaborators, wired once at startup.
var (
	gameManager *game.Manager
	sessions    *session.Manager
	matches     *multiplayer.Service
	leaderboard *services.LeaderboardService
	profiles    *services.ProfileService
	shop        *services.ShopService
	adService   *ads.Service
	wallet      stellar.Wallet
	local       *localstore.Store
)

// Deps bundles everything the handler layer needs.
type Deps struct {
	Game        *game.Manager
	Sessions    *session.Manager
	Matches     *multiplayer.Service
	Leaderboard *services.LeaderboardService
	Profiles    *services.ProfileService
	Shop        *services.ShopService
	Ads         *ads.Service
	Wallet      stellar.Wallet
	Local       *localstore.Store
}

func Init(d Deps) {
	gameManager = d.Game
	sessions = d.Sessions
	matches = d.Matches
	leaderboard = d.Leaderboard
	profiles = d.Profiles
	shop = d.Shop
	adService = d.Ads
	wallet = d.Wallet
	local = d.Local
}
