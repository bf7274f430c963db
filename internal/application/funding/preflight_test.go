package funding

import (
	"context"
	"errors"
	"math/big"
	"testing"

	domain "github.com/lendfriend/lendfund/internal/domain/funding"
)

const testFunder = "0xF00d000000000000000000000000000000000001"

func TestPreflightCheck(t *testing.T) {
	tests := []struct {
		name        string
		balance     int64
		totalFunded int64
		principal   int64
		active      bool
		amount      int64
		wantErr     error
	}{
		{
			name:    "all checks pass",
			balance: 100_000000, totalFunded: 0, principal: 1000_000000, active: true,
			amount: 50_000000,
		},
		{
			name:    "amount equal to balance passes",
			balance: 50_000000, totalFunded: 0, principal: 1000_000000, active: true,
			amount: 50_000000,
		},
		{
			name:    "amount exactly fills remaining",
			balance: 100_000000, totalFunded: 950_000000, principal: 1000_000000, active: true,
			amount: 50_000000,
		},
		{
			name:    "insufficient balance",
			balance: 20_000000, totalFunded: 0, principal: 1000_000000, active: true,
			amount: 50_000000, wantErr: &domain.InsufficientBalanceError{},
		},
		{
			name:    "already funded",
			balance: 100_000000, totalFunded: 1000_000000, principal: 1000_000000, active: true,
			amount: 50_000000, wantErr: &domain.AlreadyFundedError{},
		},
		{
			name:    "exceeds remaining",
			balance: 100_000000, totalFunded: 980_000000, principal: 1000_000000, active: true,
			amount: 50_000000, wantErr: &domain.ExceedsRemainingError{},
		},
		{
			name:    "fundraising closed",
			balance: 100_000000, totalFunded: 0, principal: 1000_000000, active: false,
			amount: 50_000000, wantErr: &domain.FundraisingClosedError{},
		},
		{
			// Balance check comes first, even when later checks would
			// also fail.
			name:    "balance check ordered before loan checks",
			balance: 20_000000, totalFunded: 1000_000000, principal: 1000_000000, active: false,
			amount: 50_000000, wantErr: &domain.InsufficientBalanceError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &mockLedger{
				balance: big.NewInt(tt.balance),
				snap: &domain.LoanSnapshot{
					TotalFunded:       big.NewInt(tt.totalFunded),
					Principal:         big.NewInt(tt.principal),
					FundraisingActive: tt.active,
				},
			}
			checker := NewPreflightChecker(ledger, nil)

			err := checker.Check(context.Background(), testFunder, testLoan, big.NewInt(tt.amount))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Check: unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Check: expected error, got nil")
			}
			switch tt.wantErr.(type) {
			case *domain.InsufficientBalanceError:
				var want *domain.InsufficientBalanceError
				if !errors.As(err, &want) {
					t.Fatalf("want InsufficientBalanceError, got %v", err)
				}
			case *domain.AlreadyFundedError:
				var want *domain.AlreadyFundedError
				if !errors.As(err, &want) {
					t.Fatalf("want AlreadyFundedError, got %v", err)
				}
			case *domain.ExceedsRemainingError:
				var want *domain.ExceedsRemainingError
				if !errors.As(err, &want) {
					t.Fatalf("want ExceedsRemainingError, got %v", err)
				}
			case *domain.FundraisingClosedError:
				var want *domain.FundraisingClosedError
				if !errors.As(err, &want) {
					t.Fatalf("want FundraisingClosedError, got %v", err)
				}
			}
		})
	}
}

func TestPreflightExceedsRemainingReportsExact(t *testing.T) {
	ledger := &mockLedger{
		balance: big.NewInt(100_000000),
		snap: &domain.LoanSnapshot{
			TotalFunded:       big.NewInt(980_000000),
			Principal:         big.NewInt(1000_000000),
			FundraisingActive: true,
		},
	}
	checker := NewPreflightChecker(ledger, nil)

	err := checker.Check(context.Background(), testFunder, testLoan, big.NewInt(50_000000))
	var exceeds *domain.ExceedsRemainingError
	if !errors.As(err, &exceeds) {
		t.Fatalf("want ExceedsRemainingError, got %v", err)
	}
	if exceeds.Remaining.Int64() != 20_000000 {
		t.Errorf("remaining = %d, want 20000000", exceeds.Remaining.Int64())
	}
}

func TestPreflightProceedsOnReadErrors(t *testing.T) {
	ledger := &mockLedger{
		balanceErr: errors.New("rpc unreachable"),
		snapErr:    errors.New("rpc unreachable"),
	}
	checker := NewPreflightChecker(ledger, nil)

	if err := checker.Check(context.Background(), testFunder, testLoan, big.NewInt(50_000000)); err != nil {
		t.Fatalf("read failures must not fail the check: %v", err)
	}
}

func TestPreflightBalanceReadErrorSkipsOnlyBalanceCheck(t *testing.T) {
	ledger := &mockLedger{
		balanceErr: errors.New("rpc unreachable"),
		snap: &domain.LoanSnapshot{
			TotalFunded:       big.NewInt(0),
			Principal:         big.NewInt(1000_000000),
			FundraisingActive: false,
		},
	}
	checker := NewPreflightChecker(ledger, nil)

	err := checker.Check(context.Background(), testFunder, testLoan, big.NewInt(50_000000))
	var closed *domain.FundraisingClosedError
	if !errors.As(err, &closed) {
		t.Fatalf("loan checks still apply when only the balance read fails, got %v", err)
	}
}
