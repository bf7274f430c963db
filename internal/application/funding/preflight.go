// Package funding orchestrates the approve-then-contribute funding
// sequence against a loan contract.
package funding

import (
	"context"
	"math/big"

	"github.com/lendfriend/lendfund/internal/application/ports"
	domain "github.com/lendfriend/lendfund/internal/domain/funding"
	"github.com/lendfriend/lendfund/internal/output"
)

// PreflightChecker re-reads live chain state immediately before a
// funding attempt submits anything, to avoid sending doomed
// transactions. It is read-only and advisory: concurrent funders can
// still race, and the loan contract remains the sole arbiter.
type PreflightChecker struct {
	ledger ports.LedgerReader
	logger *output.Logger
}

// NewPreflightChecker creates a new PreflightChecker.
func NewPreflightChecker(ledger ports.LedgerReader, logger *output.Logger) *PreflightChecker {
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &PreflightChecker{ledger: ledger, logger: logger}
}

// Check validates that funder can contribute amount to loan, in order:
// live balance covers the amount, the loan is not already fully funded,
// the amount fits the remaining need, and fundraising is still active.
// A failed read is logged and its checks skipped; the flow proceeds
// optimistically and the downstream transaction fails safely if state
// was stale.
func (c *PreflightChecker) Check(ctx context.Context, funder, loan string, amount *big.Int) error {
	balance, err := c.ledger.Balance(ctx, funder)
	if err != nil {
		c.logger.Warn("could not read balance, proceeding without balance check: %v", err)
	} else if balance.Cmp(amount) < 0 {
		return &domain.InsufficientBalanceError{Required: amount, Available: balance}
	}

	snap, err := c.ledger.LoanSnapshot(ctx, loan)
	if err != nil {
		c.logger.Warn("could not read loan state, proceeding without loan checks: %v", err)
		return nil
	}

	if snap.IsFullyFunded() {
		return &domain.AlreadyFundedError{}
	}
	if new(big.Int).Add(snap.TotalFunded, amount).Cmp(snap.Principal) > 0 {
		return &domain.ExceedsRemainingError{Remaining: snap.Remaining()}
	}
	if !snap.FundraisingActive {
		return &domain.FundraisingClosedError{}
	}
	return nil
}
