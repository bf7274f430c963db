package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lendfriend/lendfund/internal/application/ports"
)

// Gas ceilings used when the node cannot estimate, matching the fixed
// limits the custodial path always uses.
const (
	approveGasFallback    = 100_000
	contributeGasFallback = 200_000
)

// ExternalSigner implements ports.Signer with a locally held ECDSA key:
// build, sign, and broadcast through the connected RPC endpoint.
type ExternalSigner struct {
	client *Client
	key    *ecdsa.PrivateKey
	from   common.Address
}

// NewExternalSigner creates a signer from a hex-encoded private key.
func NewExternalSigner(client *Client, privateKeyHex string) (*ExternalSigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &ExternalSigner{
		client: client,
		key:    key,
		from:   crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the funder's account address.
func (s *ExternalSigner) Address() string {
	return s.from.Hex()
}

// SubmitApproval submits approve(spender, amount) on the token contract.
func (s *ExternalSigner) SubmitApproval(ctx context.Context, token, spender string, amount *big.Int) (string, error) {
	data, err := PackApprove(spender, amount)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, common.HexToAddress(token), data, approveGasFallback)
}

// SubmitContribution submits contribute(amount) on the loan contract.
func (s *ExternalSigner) SubmitContribution(ctx context.Context, loan string, amount *big.Int) (string, error) {
	data, err := PackContribute(amount)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, common.HexToAddress(loan), data, contributeGasFallback)
}

func (s *ExternalSigner) submit(ctx context.Context, to common.Address, data []byte, gasFallback uint64) (string, error) {
	eth := s.client.Eth()
	if eth == nil {
		return "", fmt.Errorf("client not connected")
	}

	nonce, err := eth.PendingNonceAt(ctx, s.from)
	if err != nil {
		return "", fmt.Errorf("failed to get pending nonce: %w", err)
	}

	gasPrice, err := eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get suggested gas price: %w", err)
	}

	gasLimit, err := eth.EstimateGas(ctx, ethereum.CallMsg{
		From:     s.from,
		To:       &to,
		GasPrice: gasPrice,
		Data:     data,
	})
	if err != nil {
		gasLimit = gasFallback
	}

	tx := types.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, data)

	signer := types.LatestSignerForChainID(s.client.ChainID())
	signedTx, err := types.SignTx(tx, signer, s.key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	if err := eth.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	return signedTx.Hash().Hex(), nil
}

// Ensure ExternalSigner implements ports.Signer.
var _ ports.Signer = (*ExternalSigner)(nil)
