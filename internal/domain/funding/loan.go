package funding

import "math/big"

// LoanSnapshot is the funding-relevant on-chain state of a loan, read
// fresh at the start of an attempt and never cached across steps.
type LoanSnapshot struct {
	TotalFunded       *big.Int
	Principal         *big.Int
	FundraisingActive bool
}

// Remaining returns how much funding the loan still needs. Never
// negative; a fully (or over-) funded loan has zero remaining.
func (s *LoanSnapshot) Remaining() *big.Int {
	rem := new(big.Int).Sub(s.Principal, s.TotalFunded)
	if rem.Sign() < 0 {
		return big.NewInt(0)
	}
	return rem
}

// IsFullyFunded reports whether the loan has reached its principal.
func (s *LoanSnapshot) IsFullyFunded() bool {
	return s.TotalFunded.Cmp(s.Principal) >= 0
}

// ProgressPercent returns funding progress as a percentage, capped at 100.
func (s *LoanSnapshot) ProgressPercent() float64 {
	if s.Principal == nil || s.Principal.Sign() == 0 {
		return 0
	}
	funded, _ := new(big.Float).SetInt(s.TotalFunded).Float64()
	principal, _ := new(big.Float).SetInt(s.Principal).Float64()
	pct := funded / principal * 100
	if pct > 100 {
		return 100
	}
	return pct
}
