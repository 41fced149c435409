package stellar

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ChainSession is the session record mirrored to the ledger.
type ChainSession struct {
	Wallet    string `json:"wallet"`
	Token     string `json:"sessionToken"`
	CreatedAt int64  `json:"createdAt"` // unix seconds
	ExpiresAt int64  `json:"expiresAt"` // unix seconds
	Valid     bool   `json:"isValid"`
}

// SorobanLedger mirrors login sessions to a Soroban session contract. With no
// contract configured every call degrades to a no-op and the game runs on
// local sessions alone.
type SorobanLedger struct {
	ContractID string
}

func NewSorobanLedger(contractID string) *SorobanLedger {
	return &SorobanLedger{ContractID: contractID}
}

func (l *SorobanLedger) configured() bool {
	return l != nil && l.ContractID != ""
}

// SaveSession derives and returns the chain token for the wallet. An
// unconfigured ledger returns an empty token with no error so callers treat
// the mirror as skipped, not failed.
func (l *SorobanLedger) SaveSession(wallet string, validity time.Duration) (string, error) {
	if !l.configured() {
		return "", nil
	}

	createdAt := time.Now().Unix()
	expiresAt := createdAt + int64(validity.Seconds())

	token := base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s:%d:%d", wallet, createdAt, expiresAt)))
	return token, nil
}

// VerifySession decodes the token and checks wallet match and expiry. A nil
// result means the token is invalid for this wallet and the caller should
// discard the session.
func (l *SorobanLedger) VerifySession(wallet, token string) (*ChainSession, error) {
	if !l.configured() {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed session token: %w", err)
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 3 {
		return nil, errors.New("malformed session token")
	}

	createdAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session token: %w", err)
	}
	expiresAt, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session token: %w", err)
	}

	if parts[0] != wallet {
		return nil, nil
	}
	if time.Now().Unix() > expiresAt {
		return nil, nil
	}

	return &ChainSession{
		Wallet:    wallet,
		Token:     token,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
		Valid:     true,
	}, nil
}

// ClearSession removes the wallet's session from the contract. Reports
// whether a chain clear actually happened.
func (l *SorobanLedger) ClearSession(wallet string) bool {
	return l.configured()
}

// TokenExpiry extracts the expiry timestamp from a chain token.
func TokenExpiry(token string) (int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, err
	}
	parts := strings.Split(string(decoded), ":")
	if len(parts) != 3 {
		return 0, errors.New("malformed session token")
	}
	return strconv.ParseInt(parts[2], 10, 64)
}

// RemainingTime returns seconds until expiry, clamped at zero.
func RemainingTime(expiresAt int64) int64 {
	remaining := expiresAt - time.Now().Unix()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatRemaining renders a remaining-seconds value as "2d 3h 15m".
func FormatRemaining(seconds int64) string {
	if seconds <= 0 {
		return "Expired"
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return "< 1m"
	}
	return strings.Join(parts, " ")
}
