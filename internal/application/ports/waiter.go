package ports

import (
	"context"
	"time"
)

// Receipt is the outcome of a mined transaction.
type Receipt struct {
	TxHash      string
	BlockNumber int64
	GasUsed     uint64
	// Success is true only when the transaction was included with a
	// success status. A reverted transaction is never a success.
	Success bool
}

// ReceiptWaiter polls the chain until a submitted transaction is mined
// or the timeout elapses. One poll-to-completion cycle per call, no
// automatic retry. On a reverted transaction implementations return a
// funding domain error carrying the best recoverable revert reason; on
// timeout they return funding.TimeoutError.
type ReceiptWaiter interface {
	Wait(ctx context.Context, txHash string, timeout time.Duration) (*Receipt, error)
}
