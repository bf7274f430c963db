// Package ports defines the interfaces the funding application depends
// on, implemented by the infrastructure layer.
package ports

import (
	"context"
	"math/big"

	"github.com/lendfriend/lendfund/internal/domain/funding"
)

// LedgerReader performs read-only queries against the chain: token
// balances, spending allowances, and loan funding state. All queries
// hit the live chain; nothing is cached.
type LedgerReader interface {
	// Balance returns the token balance of an account in smallest units.
	Balance(ctx context.Context, account string) (*big.Int, error)

	// Allowance returns how much the spender may pull from the owner.
	Allowance(ctx context.Context, owner, spender string) (*big.Int, error)

	// LoanSnapshot reads the loan's funding state in one pass.
	LoanSnapshot(ctx context.Context, loan string) (*funding.LoanSnapshot, error)
}
