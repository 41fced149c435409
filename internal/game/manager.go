package game

import (
	"sync"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
)

// Manager hands out one Session per wallet so concurrent requests for the
// same player share round state. Anonymous players (empty wallet) share the
// "" session; their results never touch durable stats.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	gen    Generator
	stats  *StatsStore
	local  *localstore.Store
	remote RemoteScores
}

func NewManager(gen Generator, local *localstore.Store, remote RemoteScores) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		gen:      gen,
		stats:    NewStatsStore(local),
		local:    local,
		remote:   remote,
	}
}

// Session returns the live session for the wallet, creating one if needed.
// The username is captured on first use and refreshed on later calls.
func (m *Manager) Session(wallet, username string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[wallet]; ok {
		if username != "" {
			s.mu.Lock()
			s.username = username
			s.mu.Unlock()
		}
		return s
	}

	s := NewSession(wallet, username, m.gen, m.stats, m.local, m.remote)
	m.sessions[wallet] = s
	return s
}

// Close tears down the wallet's session, stopping its countdown.
func (m *Manager) Close(wallet string) {
	m.mu.Lock()
	s, ok := m.sessions[wallet]
	delete(m.sessions, wallet)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}

func (m *Manager) Stats() *StatsStore {
	return m.stats
}
