package funding

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one funding attempt: a user, a loan, an amount, and the
// step the attempt is currently in. The ID ties together the log lines
// and transaction hashes the attempt produces.
type Attempt struct {
	ID          string
	LoanAddress string
	Funder      string
	Amount      Amount
	Step        Step
	Message     string
	ApproveTx   string
	ContribTx   string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// NewAttempt creates an attempt in the input step.
func NewAttempt(loan, funder string, amount Amount) *Attempt {
	return &Attempt{
		ID:          uuid.NewString(),
		LoanAddress: loan,
		Funder:      funder,
		Amount:      amount,
		Step:        StepInput,
		StartedAt:   time.Now(),
	}
}

// Advance transitions the attempt to the target step, enforcing the
// step machine's transition rules.
func (a *Attempt) Advance(target Step) error {
	if !a.Step.CanTransitionTo(target) {
		return &InvalidTransitionError{From: a.Step, To: target}
	}
	a.Step = target
	if target.IsTerminal() {
		a.FinishedAt = time.Now()
	}
	return nil
}

// Fail moves the attempt to the error step and records the message
// shown to the user. Failure is reachable from any in-flight step.
func (a *Attempt) Fail(message string) {
	a.Step = StepError
	a.Message = message
	a.FinishedAt = time.Now()
}

// Reset returns a failed or completed attempt to the input step so a
// fresh attempt can start, clearing all residual step state.
func (a *Attempt) Reset() error {
	if !a.Step.CanTransitionTo(StepInput) {
		return &InvalidTransitionError{From: a.Step, To: StepInput}
	}
	a.Step = StepInput
	a.Message = ""
	a.ApproveTx = ""
	a.ContribTx = ""
	a.FinishedAt = time.Time{}
	return nil
}
