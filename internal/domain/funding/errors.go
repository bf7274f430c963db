package funding

import (
	"fmt"
	"math/big"
	"strings"
)

// The errors below are the full set a funding attempt can surface to a
// user. Each one knows how to present itself (UserMessage) and how the
// user can recover (RecoveryHint); all of them silence CLI usage output
// because the command itself was well-formed.

// InsufficientBalanceError is returned when the user's live token
// balance cannot cover the requested contribution.
type InsufficientBalanceError struct {
	Required  *big.Int
	Available *big.Int
}

func (e *InsufficientBalanceError) Error() string {
	if e.Required == nil {
		return "insufficient balance"
	}
	return fmt.Sprintf("insufficient balance: need %s, have %s",
		FormatUnits(e.Required), FormatUnits(e.Available))
}

func (e *InsufficientBalanceError) UserMessage() string {
	if e.Required == nil {
		return "Your wallet does not hold enough funds for this transaction."
	}
	return fmt.Sprintf("You need %s but your wallet only holds %s.",
		FormatUnits(e.Required), FormatUnits(e.Available))
}

func (e *InsufficientBalanceError) RecoveryHint() string {
	return "Add funds to your wallet, then try again."
}

func (e *InsufficientBalanceError) ShouldSilenceUsage() bool { return true }

// AlreadyFundedError is returned when the loan has already reached its
// principal before this attempt started.
type AlreadyFundedError struct{}

func (e *AlreadyFundedError) Error() string {
	return "loan is already fully funded"
}

func (e *AlreadyFundedError) UserMessage() string {
	return "This loan has already been fully funded."
}

func (e *AlreadyFundedError) RecoveryHint() string {
	return "Refresh the loan state to see the latest totals."
}

func (e *AlreadyFundedError) ShouldSilenceUsage() bool { return true }

// ExceedsRemainingError is returned when the requested amount is larger
// than what the loan still needs. Remaining may be nil when the error
// was recovered from an on-chain revert rather than a pre-flight read.
type ExceedsRemainingError struct {
	Remaining *big.Int
}

func (e *ExceedsRemainingError) Error() string {
	if e.Remaining == nil {
		return "contribution exceeds the loan's remaining funding need"
	}
	return fmt.Sprintf("contribution exceeds remaining funding need of %s", FormatUnits(e.Remaining))
}

func (e *ExceedsRemainingError) UserMessage() string {
	if e.Remaining == nil {
		return "This contribution would exceed the loan's funding goal."
	}
	return fmt.Sprintf("Only %s is still needed for this loan.", FormatUnits(e.Remaining))
}

func (e *ExceedsRemainingError) RecoveryHint() string {
	return "Try a smaller amount, or refresh to see the latest totals."
}

func (e *ExceedsRemainingError) ShouldSilenceUsage() bool { return true }

// FundraisingClosedError is returned when the loan no longer accepts
// contributions.
type FundraisingClosedError struct{}

func (e *FundraisingClosedError) Error() string {
	return "fundraising is closed for this loan"
}

func (e *FundraisingClosedError) UserMessage() string {
	return "Fundraising is no longer active for this loan."
}

func (e *FundraisingClosedError) RecoveryHint() string {
	return "Refresh the loan state; it may have closed while you were deciding."
}

func (e *FundraisingClosedError) ShouldSilenceUsage() bool { return true }

// CancelledError is returned when the wallet reported that the user
// rejected the signing request.
type CancelledError struct{}

func (e *CancelledError) Error() string {
	return "transaction cancelled by user"
}

func (e *CancelledError) UserMessage() string {
	return "Transaction cancelled."
}

func (e *CancelledError) RecoveryHint() string {
	return "Run the command again when you are ready to sign."
}

func (e *CancelledError) ShouldSilenceUsage() bool { return true }

// TransferFailedError is returned when the token transfer inside the
// contribution reverted, typically an allowance or balance mismatch at
// execution time.
type TransferFailedError struct{}

func (e *TransferFailedError) Error() string {
	return "token transfer failed on-chain"
}

func (e *TransferFailedError) UserMessage() string {
	return "The token transfer failed. Your balance or approval may have changed since the attempt started."
}

func (e *TransferFailedError) RecoveryHint() string {
	return "Check your balance and try again."
}

func (e *TransferFailedError) ShouldSilenceUsage() bool { return true }

// RevertedError is the generic on-chain failure: the transaction was
// included but reverted for a reason this code does not recognize.
type RevertedError struct {
	Reason string
}

func (e *RevertedError) Error() string {
	if e.Reason == "" {
		return "transaction reverted on-chain"
	}
	return "transaction reverted on-chain: " + e.Reason
}

func (e *RevertedError) UserMessage() string {
	return "The transaction failed on-chain."
}

func (e *RevertedError) RecoveryHint() string {
	return "Try again; if it keeps failing, refresh the loan state."
}

func (e *RevertedError) ShouldSilenceUsage() bool { return true }

// TimeoutError is returned when a submitted transaction was not mined
// within the receipt wait window. The transaction may still confirm
// later, out of band.
type TimeoutError struct {
	TxHash string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for transaction %s", e.TxHash)
}

func (e *TimeoutError) UserMessage() string {
	return "The transaction was not confirmed in time. It may still go through."
}

func (e *TimeoutError) RecoveryHint() string {
	return "Check the transaction on a block explorer before retrying."
}

func (e *TimeoutError) ShouldSilenceUsage() bool { return true }

// ParseWalletError maps a lower-level submission or signing error onto
// the user-facing taxonomy. Errors already in the taxonomy pass through
// unchanged; everything else is classified by pattern-matching on the
// error text, falling back to a generic RevertedError.
func ParseWalletError(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *InsufficientBalanceError, *AlreadyFundedError, *ExceedsRemainingError,
		*FundraisingClosedError, *CancelledError, *TransferFailedError,
		*RevertedError, *TimeoutError:
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "user rejected"),
		strings.Contains(msg, "user denied"),
		strings.Contains(msg, "rejected the request"),
		strings.Contains(msg, "context canceled"):
		return &CancelledError{}
	case strings.Contains(msg, "insufficient funds"),
		strings.Contains(msg, "insufficient balance"):
		return &InsufficientBalanceError{}
	case strings.Contains(msg, "transfer amount exceeds"),
		strings.Contains(msg, "transferfrom failed"),
		strings.Contains(msg, "insufficient allowance"):
		return &TransferFailedError{}
	case strings.Contains(msg, "execution reverted"),
		strings.Contains(msg, "gas required exceeds"),
		strings.Contains(msg, "always failing transaction"):
		return &RevertedError{Reason: err.Error()}
	default:
		return &RevertedError{}
	}
}
