package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/lendfriend/lendfund/internal/application/ports"
	"github.com/lendfriend/lendfund/internal/domain/funding"
)

// Reader implements ports.LedgerReader with eth_call view queries
// against the stablecoin and loan contracts.
type Reader struct {
	client *Client
	token  common.Address
}

// NewReader creates a Reader for the given ERC-20 token address.
func NewReader(client *Client, token string) *Reader {
	return &Reader{
		client: client,
		token:  common.HexToAddress(token),
	}
}

// Balance returns the token balance of an account in smallest units.
func (r *Reader) Balance(ctx context.Context, account string) (*big.Int, error) {
	out, err := r.call(ctx, r.token, erc20ABI, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Allowance returns how much the spender may pull from the owner.
func (r *Reader) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	out, err := r.call(ctx, r.token, erc20ABI, "allowance",
		common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// LoanSnapshot reads totalFunded, principal, and fundraisingActive from
// the loan contract. The three reads are sequential view calls against
// the same endpoint; no snapshot-level atomicity is attempted.
func (r *Reader) LoanSnapshot(ctx context.Context, loan string) (*funding.LoanSnapshot, error) {
	addr := common.HexToAddress(loan)

	funded, err := r.call(ctx, addr, loanABI, "totalFunded")
	if err != nil {
		return nil, err
	}
	principal, err := r.call(ctx, addr, loanABI, "principal")
	if err != nil {
		return nil, err
	}
	active, err := r.call(ctx, addr, loanABI, "fundraisingActive")
	if err != nil {
		return nil, err
	}

	return &funding.LoanSnapshot{
		TotalFunded:       funded[0].(*big.Int),
		Principal:         principal[0].(*big.Int),
		FundraisingActive: active[0].(bool),
	}, nil
}

func (r *Reader) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	eth := r.client.Eth()
	if eth == nil {
		return nil, fmt.Errorf("client not connected")
	}

	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	raw, err := eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	out, err := contract.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("call %s: empty result", method)
	}
	return out, nil
}

// Ensure Reader implements ports.LedgerReader.
var _ ports.LedgerReader = (*Reader)(nil)
