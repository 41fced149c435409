package session

import (
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/internal/localstore"
	"github.com/ismailsvc/stellar-bomb-backend/internal/stellar"
	"github.com/ismailsvc/stellar-bomb-backend/pkg/logger"
)

// Validity is how long a login survives without reconnecting the wallet.
const Validity = 7 * 24 * time.Hour

// Record is the locally persisted login session.
type Record struct {
	Wallet        string `json:"wallet"`
	Username      string `json:"username,omitempty"`
	CreatedAt     int64  `json:"createdAt"` // unix millis
	ChainToken    string `json:"chainToken,omitempty"`
	ChainVerified bool   `json:"chainVerified"`
}

func (r Record) ExpiresAt() time.Time {
	return time.UnixMilli(r.CreatedAt).Add(Validity)
}

// Manager persists the login session locally and mirrors it to the Soroban
// ledger best-effort. The local record is authoritative: a failed or absent
// chain mirror never invalidates a login.
type Manager struct {
	store  *localstore.Store
	ledger *stellar.SorobanLedger
}

func NewManager(store *localstore.Store, ledger *stellar.SorobanLedger) *Manager {
	return &Manager{store: store, ledger: ledger}
}

// Save writes the local record immediately, then attempts the chain mirror.
// Mirror failure is logged and swallowed; the session stays local-only.
func (m *Manager) Save(wallet, username string) Record {
	rec := Record{
		Wallet:    wallet,
		Username:  username,
		CreatedAt: time.Now().UnixMilli(),
	}
	m.store.Set(localstore.KeySession, rec)

	token, err := m.ledger.SaveSession(wallet, Validity)
	if err != nil {
		logger.Warn().Err(err).Msg("Chain session mirror failed, keeping local-only session")
		return rec
	}
	if token != "" {
		rec.ChainToken = token
		rec.ChainVerified = true
		m.store.Set(localstore.KeySession, rec)
	}
	return rec
}

// Get returns the current session, or nil after clearing an expired one.
func (m *Manager) Get() *Record {
	var rec Record
	ok, err := m.store.Get(localstore.KeySession, &rec)
	if err != nil || !ok || rec.Wallet == "" {
		return nil
	}

	if time.Now().After(rec.ExpiresAt()) {
		m.store.Delete(localstore.KeySession)
		return nil
	}
	return &rec
}

// HasActiveSession reports whether a non-expired session exists.
func (m *Manager) HasActiveSession() bool {
	return m.Get() != nil
}

// VerifyWithBlockchain cross-checks the record against the chain mirror. A
// session that never got a chain token is trivially verified.
func (m *Manager) VerifyWithBlockchain(rec Record) bool {
	if rec.ChainToken == "" {
		return true
	}

	chain, err := m.ledger.VerifySession(rec.Wallet, rec.ChainToken)
	if err != nil {
		logger.Warn().Err(err).Msg("Chain session verification failed")
		return false
	}
	// An unconfigured ledger cannot contradict the local record.
	if chain == nil && m.ledger != nil && m.ledger.ContractID == "" {
		return true
	}
	return chain != nil && chain.Valid
}

// Extend resets the validity window of the current session.
func (m *Manager) Extend() *Record {
	rec := m.Get()
	if rec == nil {
		return nil
	}
	return m.saveExisting(*rec)
}

func (m *Manager) saveExisting(rec Record) *Record {
	rec.CreatedAt = time.Now().UnixMilli()
	m.store.Set(localstore.KeySession, rec)
	return &rec
}

// Clear removes the session locally and on-chain.
func (m *Manager) Clear() {
	rec := m.Get()
	m.store.Delete(localstore.KeySession)
	if rec != nil && m.ledger.ClearSession(rec.Wallet) {
		logger.Debug().Msg("Chain session cleared")
	}
}
