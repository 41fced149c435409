package stellar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ismailsvc/stellar-bomb-backend/pkg/utils"
)

const DefaultHorizonURL = "https://horizon-testnet.stellar.org"

var ErrAccountNotFound = errors.New("stellar account not found")

// Wallet is the chain collaborator the shop and profile flows depend on.
// Signing stays on the player's side (browser extension), so the server only
// reads: balances before a purchase, transaction status after one.
type Wallet interface {
	GetBalance(ctx context.Context, address string) (string, error)
	VerifyPayment(ctx context.Context, transactionID string) (bool, error)
}

// HorizonClient implements Wallet against the Horizon REST API.
type HorizonClient struct {
	BaseURL string

	httpClient *http.Client
}

func NewHorizonClient(baseURL string) *HorizonClient {
	if baseURL == "" {
		baseURL = DefaultHorizonURL
	}
	return &HorizonClient{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HorizonClient) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrAccountNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("horizon request failed with status: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// GetBalance returns the native XLM balance as a decimal string. Unfunded or
// missing accounts read as "0", matching how the game treats a fresh wallet.
func (h *HorizonClient) GetBalance(ctx context.Context, address string) (string, error) {
	if !utils.IsWalletAddress(address) {
		return "", fmt.Errorf("invalid stellar address: %s", utils.MaskAddress(address))
	}

	var account struct {
		Balances []struct {
			AssetType string `json:"asset_type"`
			Balance   string `json:"balance"`
		} `json:"balances"`
	}
	if err := h.get(ctx, "/accounts/"+address, &account); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "0", nil
		}
		return "", err
	}

	for _, b := range account.Balances {
		if b.AssetType == "native" {
			return b.Balance, nil
		}
	}
	return "0", nil
}

// VerifyPayment reports whether the transaction exists on the ledger and
// succeeded. Used to validate purchase receipts submitted by the client.
func (h *HorizonClient) VerifyPayment(ctx context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return false, errors.New("empty transaction id")
	}

	var tx struct {
		Successful bool `json:"successful"`
	}
	if err := h.get(ctx, "/transactions/"+transactionID, &tx); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return tx.Successful, nil
}
