// Package funding provides domain entities for loan funding attempts.
package funding

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// TokenDecimals is the number of decimal places of the funding token
// (USDC). All on-chain amounts are integers in units of 10^-6 USDC.
const TokenDecimals = 6

// TokenSymbol is the display symbol of the funding token.
const TokenSymbol = "USDC"

var unitScale = sdkmath.NewInt(1_000_000)

// Amount is a contribution amount in the token's smallest unit.
// The zero value is an invalid amount; construct via ParseAmount or
// AmountFromUnits.
type Amount struct {
	units sdkmath.Int
}

// ParseAmount converts a user-entered decimal string ("50", "12.50")
// into an Amount. It rejects malformed input, non-positive values, and
// precision beyond the token's six decimal places.
func ParseAmount(s string) (Amount, error) {
	dec, err := sdkmath.LegacyNewDecFromStr(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !dec.IsPositive() {
		return Amount{}, fmt.Errorf("amount must be greater than zero, got %s", s)
	}
	scaled := dec.MulInt(unitScale)
	if !scaled.IsInteger() {
		return Amount{}, fmt.Errorf("amount %s has more than %d decimal places", s, TokenDecimals)
	}
	return Amount{units: scaled.TruncateInt()}, nil
}

// AmountFromUnits constructs an Amount from raw token units.
func AmountFromUnits(units *big.Int) Amount {
	if units == nil {
		return Amount{units: sdkmath.ZeroInt()}
	}
	return Amount{units: sdkmath.NewIntFromBigInt(units)}
}

// Units returns the amount as a big.Int in token smallest units.
func (a Amount) Units() *big.Int {
	if a.units.IsNil() {
		return big.NewInt(0)
	}
	return a.units.BigInt()
}

// IsPositive reports whether the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return !a.units.IsNil() && a.units.IsPositive()
}

// String formats the amount for display, e.g. "20.00 USDC".
func (a Amount) String() string {
	return FormatUnits(a.Units())
}

// FormatUnits renders raw token units as a two-decimal display string
// with the token symbol, e.g. 20_000000 -> "20.00 USDC".
func FormatUnits(units *big.Int) string {
	if units == nil {
		units = big.NewInt(0)
	}
	neg := units.Sign() < 0
	abs := new(big.Int).Abs(units)
	whole, frac := new(big.Int).DivMod(abs, unitScale.BigInt(), new(big.Int))
	// Two display decimals, truncated.
	cents := new(big.Int).Div(frac, big.NewInt(10_000))
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%02d %s", sign, whole.String(), cents.Int64(), TokenSymbol)
}
