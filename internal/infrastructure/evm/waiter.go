package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/lendfriend/lendfund/internal/application/ports"
	"github.com/lendfriend/lendfund/internal/domain/funding"
	"github.com/lendfriend/lendfund/internal/output"
)

// pollInterval is how often the waiter asks for a receipt.
const pollInterval = 2 * time.Second

// Waiter implements ports.ReceiptWaiter by polling for the transaction
// receipt until inclusion or timeout. On a reverted transaction it runs
// a best-effort diagnosis: replay the call against the prior block to
// recover the revert reason and map it onto the user-facing taxonomy.
// Diagnostic failures never make the error worse than a generic revert.
type Waiter struct {
	client   *Client
	logger   *output.Logger
	interval time.Duration
}

// NewWaiter creates a new Waiter.
func NewWaiter(client *Client, logger *output.Logger) *Waiter {
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &Waiter{client: client, logger: logger, interval: pollInterval}
}

// Wait polls until the transaction is mined, then inspects its status.
// One poll-to-completion cycle; no automatic retry.
func (w *Waiter) Wait(ctx context.Context, txHash string, timeout time.Duration) (*ports.Receipt, error) {
	eth := w.client.Eth()
	if eth == nil {
		return nil, fmt.Errorf("client not connected")
	}

	hash := common.HexToHash(txHash)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, &funding.TimeoutError{TxHash: txHash}
		case <-ticker.C:
			receipt, err := eth.TransactionReceipt(ctx, hash)
			if err != nil {
				// Not yet mined, keep polling.
				continue
			}

			if receipt.Status != types.ReceiptStatusSuccessful {
				return nil, w.diagnoseRevert(ctx, hash, receipt)
			}

			return &ports.Receipt{
				TxHash:      receipt.TxHash.Hex(),
				BlockNumber: receipt.BlockNumber.Int64(),
				GasUsed:     receipt.GasUsed,
				Success:     true,
			}, nil
		}
	}
}

// diagnoseRevert re-fetches the reverted transaction and replays it as
// an eth_call pinned at the block before inclusion, hoping the node
// reproduces the revert and surfaces its reason.
func (w *Waiter) diagnoseRevert(ctx context.Context, hash common.Hash, receipt *types.Receipt) error {
	eth := w.client.Eth()

	tx, _, err := eth.TransactionByHash(ctx, hash)
	if err != nil {
		w.logger.Debug("revert diagnosis: could not refetch tx %s: %v", hash.Hex(), err)
		return &funding.RevertedError{}
	}

	chainID := w.client.ChainID()
	if chainID == nil {
		chainID = tx.ChainId()
	}
	from, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	if err != nil {
		w.logger.Debug("revert diagnosis: could not recover sender: %v", err)
		return &funding.RevertedError{}
	}

	msg := ethereum.CallMsg{
		From:     from,
		To:       tx.To(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice(),
		Value:    tx.Value(),
		Data:     tx.Data(),
	}
	prior := new(big.Int).Sub(receipt.BlockNumber, big.NewInt(1))

	result, callErr := eth.CallContract(ctx, msg, prior)
	reason := ""
	if callErr != nil {
		reason = revertReasonFromError(callErr)
	} else if len(result) > 0 {
		if unpacked, uerr := abi.UnpackRevert(result); uerr == nil {
			reason = unpacked
		}
	}
	if reason == "" {
		return &funding.RevertedError{}
	}
	w.logger.Debug("revert reason for %s: %s", hash.Hex(), reason)
	return MapRevertReason(reason)
}

// revertReasonFromError strips the node's "execution reverted:" prefix
// from a simulation error, if present.
func revertReasonFromError(err error) string {
	msg := err.Error()
	const marker = "execution reverted"
	idx := strings.Index(strings.ToLower(msg), marker)
	if idx < 0 {
		return ""
	}
	reason := msg[idx+len(marker):]
	return strings.TrimSpace(strings.TrimPrefix(reason, ":"))
}

// MapRevertReason converts a recovered revert reason onto the
// user-facing error taxonomy. Unrecognized reasons surface the generic
// on-chain failure, keeping the raw reason for debug output only.
func MapRevertReason(reason string) error {
	lower := strings.ToLower(reason)
	switch {
	case strings.Contains(lower, "allowance"),
		strings.Contains(lower, "transfer amount exceeds"),
		strings.Contains(lower, "transfer failed"):
		return &funding.TransferFailedError{}
	case strings.Contains(lower, "goal"),
		strings.Contains(lower, "exceeds remaining"),
		strings.Contains(lower, "fully funded"):
		return &funding.ExceedsRemainingError{}
	case strings.Contains(lower, "not active"),
		strings.Contains(lower, "fundraising closed"),
		strings.Contains(lower, "closed"):
		return &funding.FundraisingClosedError{}
	default:
		return &funding.RevertedError{Reason: reason}
	}
}

// Ensure Waiter implements ports.ReceiptWaiter.
var _ ports.ReceiptWaiter = (*Waiter)(nil)
