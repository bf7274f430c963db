package ports

import (
	"context"
	"math/big"
)

// Signer submits the two funding mutations and abstracts over the two
// wallet backends (externally connected key vs. embedded custodial
// account). Implementations must never swallow a submission failure;
// every error propagates to the caller.
type Signer interface {
	// Address returns the funder's account address as seen on-chain.
	Address() string

	// SubmitApproval authorizes the spender to pull exactly amount from
	// the funder's token balance. Returns the transaction hash.
	SubmitApproval(ctx context.Context, token, spender string, amount *big.Int) (string, error)

	// SubmitContribution transfers exactly amount into the loan
	// contract, crediting the funder. Returns the transaction hash.
	SubmitContribution(ctx context.Context, loan string, amount *big.Int) (string, error)
}
