// Package custodial submits funding transactions through an embedded
// custodial wallet API instead of a locally held key. The custodial
// system exposes a smart-account address for display and a distinct
// signing sub-account; submissions must target the latter.
package custodial

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/lendfriend/lendfund/internal/application/ports"
	"github.com/lendfriend/lendfund/internal/infrastructure/evm"
)

// Fixed gas ceilings for the two funding mutations. The custodial API
// does not estimate gas, so the limits are set explicitly per call.
const (
	ApproveGasLimit    = 100_000
	ContributeGasLimit = 200_000
)

// Config holds the custodial API connection settings.
type Config struct {
	// BaseURL of the custodial API, e.g. https://api.wallet.example.com.
	BaseURL string
	// APIKey authenticates requests.
	APIKey string
	// Network tag the API expects, e.g. "base" or "base-sepolia".
	Network string
	// ChainID of the target chain.
	ChainID int64
	// SmartAccount is the display address owning the signing sub-account.
	SmartAccount string
	// HTTPTimeout bounds each API request. Defaults to 30s.
	HTTPTimeout time.Duration
}

// Signer implements ports.Signer against the custodial API.
type Signer struct {
	cfg        Config
	httpClient *http.Client

	subAccountID string
}

// NewSigner creates a custodial Signer. The signing sub-account is
// resolved lazily on first submission and cached for the session.
func NewSigner(cfg Config) (*Signer, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("custodial API base URL is required")
	}
	if cfg.SmartAccount == "" {
		return nil, fmt.Errorf("smart account address is required")
	}
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Signer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Address returns the display smart-account address.
func (s *Signer) Address() string {
	return s.cfg.SmartAccount
}

// SubmitApproval submits approve(spender, amount) on the token contract.
func (s *Signer) SubmitApproval(ctx context.Context, token, spender string, amount *big.Int) (string, error) {
	data, err := evm.PackApprove(spender, amount)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, token, data, ApproveGasLimit)
}

// SubmitContribution submits contribute(amount) on the loan contract.
func (s *Signer) SubmitContribution(ctx context.Context, loan string, amount *big.Int) (string, error) {
	data, err := evm.PackContribute(amount)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, loan, data, ContributeGasLimit)
}

// subAccountsResponse is the API's sub-account listing.
type subAccountsResponse struct {
	SubAccounts []struct {
		ID      string `json:"id"`
		Address string `json:"address"`
		Purpose string `json:"purpose"`
	} `json:"subAccounts"`
}

// resolveSubAccount finds the signing sub-account behind the display
// smart account. Submission cannot proceed without it.
func (s *Signer) resolveSubAccount(ctx context.Context) (string, error) {
	if s.subAccountID != "" {
		return s.subAccountID, nil
	}

	url := fmt.Sprintf("%s/v1/accounts/%s/sub-accounts", s.cfg.BaseURL, s.cfg.SmartAccount)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create sub-account request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("list sub-accounts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("list sub-accounts: unexpected status %d", resp.StatusCode)
	}

	var listing subAccountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return "", fmt.Errorf("decode sub-account listing: %w", err)
	}

	for _, sub := range listing.SubAccounts {
		if sub.Purpose == "sign" {
			s.subAccountID = sub.ID
			return sub.ID, nil
		}
	}
	return "", fmt.Errorf("no signing sub-account found for smart account %s", s.cfg.SmartAccount)
}

// txRequest is the transaction submission payload.
type txRequest struct {
	Network      string  `json:"network"`
	SubAccountID string  `json:"subAccountId"`
	Transaction  txInner `json:"transaction"`
}

type txInner struct {
	To      string `json:"to"`
	Data    string `json:"data"`
	Value   string `json:"value"`
	Gas     uint64 `json:"gas"`
	ChainID int64  `json:"chainId"`
	Type    string `json:"type"`
}

type txResponse struct {
	TransactionHash string `json:"transactionHash"`
	Error           *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *Signer) submit(ctx context.Context, to string, data []byte, gas uint64) (string, error) {
	subAccount, err := s.resolveSubAccount(ctx)
	if err != nil {
		return "", err
	}

	payload := txRequest{
		Network:      s.cfg.Network,
		SubAccountID: subAccount,
		Transaction: txInner{
			To:      to,
			Data:    "0x" + hex.EncodeToString(data),
			Value:   "0",
			Gas:     gas,
			ChainID: s.cfg.ChainID,
			Type:    "eip1559",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal transaction: %w", err)
	}

	url := s.cfg.BaseURL + "/v1/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create transaction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit transaction: %w", err)
	}
	defer resp.Body.Close()

	var result txResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode transaction response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("custodial API rejected transaction: %s", result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("submit transaction: unexpected status %d", resp.StatusCode)
	}
	if result.TransactionHash == "" {
		return "", fmt.Errorf("custodial API returned no transaction hash")
	}
	return result.TransactionHash, nil
}

// Ensure Signer implements ports.Signer.
var _ ports.Signer = (*Signer)(nil)
