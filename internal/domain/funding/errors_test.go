package funding

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/lendfriend/lendfund/internal/domain/common"
)

func TestParseWalletError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "user rejected",
			err:  errors.New("MetaMask Tx Signature: User rejected the request"),
			want: &CancelledError{},
		},
		{
			name: "user denied",
			err:  errors.New("user denied transaction signature"),
			want: &CancelledError{},
		},
		{
			name: "context canceled",
			err:  fmt.Errorf("submit: %w", errors.New("context canceled")),
			want: &CancelledError{},
		},
		{
			name: "insufficient funds",
			err:  errors.New("insufficient funds for gas * price + value"),
			want: &InsufficientBalanceError{},
		},
		{
			name: "allowance mismatch",
			err:  errors.New("ERC20: transfer amount exceeds allowance"),
			want: &TransferFailedError{},
		},
		{
			name: "execution reverted",
			err:  errors.New("execution reverted"),
			want: &RevertedError{Reason: "execution reverted"},
		},
		{
			name: "unknown",
			err:  errors.New("something odd happened"),
			want: &RevertedError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWalletError(tt.err)
			if fmt.Sprintf("%T", got) != fmt.Sprintf("%T", tt.want) {
				t.Errorf("ParseWalletError(%v) = %T, want %T", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseWalletErrorPassthrough(t *testing.T) {
	typed := &ExceedsRemainingError{Remaining: big.NewInt(20_000000)}
	if got := ParseWalletError(typed); got != typed {
		t.Errorf("typed errors must pass through unchanged, got %v", got)
	}
	if got := ParseWalletError(nil); got != nil {
		t.Errorf("nil must pass through, got %v", got)
	}
}

func TestErrorsAreUserFacing(t *testing.T) {
	cases := []error{
		&InsufficientBalanceError{Required: big.NewInt(50_000000), Available: big.NewInt(20_000000)},
		&AlreadyFundedError{},
		&ExceedsRemainingError{Remaining: big.NewInt(20_000000)},
		&FundraisingClosedError{},
		&CancelledError{},
		&TransferFailedError{},
		&RevertedError{},
		&TimeoutError{TxHash: "0xabc"},
	}

	for _, err := range cases {
		if msg := common.GetUserMessage(err); msg == "" || msg == err.Error() {
			t.Errorf("%T should carry a distinct user message", err)
		}
		if !common.ShouldSilenceUsage(err) {
			t.Errorf("%T should silence usage output", err)
		}
		if common.GetRecoveryHint(err) == "" {
			t.Errorf("%T should carry a recovery hint", err)
		}
	}
}

func TestExceedsRemainingMessageCitesAmount(t *testing.T) {
	err := &ExceedsRemainingError{Remaining: big.NewInt(20_000000)}
	if !strings.Contains(err.UserMessage(), "20.00 USDC") {
		t.Errorf("message should cite remaining amount, got %q", err.UserMessage())
	}
}

func TestInsufficientBalanceMessageCitesAmounts(t *testing.T) {
	err := &InsufficientBalanceError{Required: big.NewInt(50_000000), Available: big.NewInt(20_000000)}
	msg := err.UserMessage()
	if !strings.Contains(msg, "50.00 USDC") || !strings.Contains(msg, "20.00 USDC") {
		t.Errorf("message should cite required and available amounts, got %q", msg)
	}
}
