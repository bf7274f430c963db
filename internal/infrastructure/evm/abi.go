package evm

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ABI surfaces of the two contracts the funding flow touches: the
// ERC-20 stablecoin (balanceOf, allowance, approve) and the loan
// contract (contribute plus its funding-state views).

const erc20ABIJSON = `[
  {"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

const loanABIJSON = `[
  {"inputs":[{"name":"amount","type":"uint256"}],"name":"contribute","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[],"name":"totalFunded","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"principal","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"fundraisingActive","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

var (
	erc20ABI = mustParseABI(erc20ABIJSON)
	loanABI  = mustParseABI(loanABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded ABI: %v", err))
	}
	return parsed
}

// PackApprove encodes the calldata for approve(spender, amount).
func PackApprove(spender string, amount *big.Int) ([]byte, error) {
	data, err := erc20ABI.Pack("approve", common.HexToAddress(spender), amount)
	if err != nil {
		return nil, fmt.Errorf("pack approve: %w", err)
	}
	return data, nil
}

// PackContribute encodes the calldata for contribute(amount).
func PackContribute(amount *big.Int) ([]byte, error) {
	data, err := loanABI.Pack("contribute", amount)
	if err != nil {
		return nil, fmt.Errorf("pack contribute: %w", err)
	}
	return data, nil
}
