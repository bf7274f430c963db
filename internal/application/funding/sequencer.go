package funding

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lendfriend/lendfund/internal/application/ports"
	"github.com/lendfriend/lendfund/internal/domain/common"
	domain "github.com/lendfriend/lendfund/internal/domain/funding"
	"github.com/lendfriend/lendfund/internal/output"
)

// DefaultReceiptTimeout bounds each receipt wait. A transaction not
// mined within this window is treated as failed, even though it may
// still confirm later out of band.
const DefaultReceiptTimeout = 60 * time.Second

// ErrAttemptInFlight is returned when Fund is called while another
// attempt is already running on the same sequencer.
var ErrAttemptInFlight = errors.New("a funding attempt is already in flight")

// ErrNotReset is returned when Fund is called after a terminal attempt
// without an intervening Reset.
var ErrNotReset = errors.New("previous attempt finished; call Reset before starting a new one")

// Sequencer drives a funding attempt through its steps: pre-flight
// checks, an exact-amount approval when the current allowance does not
// cover the contribution, and the contribution itself, waiting for each
// transaction's receipt before moving on. One attempt at a time.
type Sequencer struct {
	ledger    ports.LedgerReader
	signer    ports.Signer
	waiter    ports.ReceiptWaiter
	preflight *PreflightChecker
	logger    *output.Logger

	token   string
	timeout time.Duration

	mu      sync.Mutex
	running bool
	attempt *domain.Attempt
	onStep  func(domain.Step)
}

// NewSequencer creates a Sequencer funding through the given token.
func NewSequencer(ledger ports.LedgerReader, signer ports.Signer, waiter ports.ReceiptWaiter, token string, logger *output.Logger) *Sequencer {
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &Sequencer{
		ledger:    ledger,
		signer:    signer,
		waiter:    waiter,
		preflight: NewPreflightChecker(ledger, logger),
		logger:    logger,
		token:     token,
		timeout:   DefaultReceiptTimeout,
	}
}

// SetReceiptTimeout overrides the per-receipt wait window.
func (s *Sequencer) SetReceiptTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// SetStepObserver registers a callback invoked on every step change,
// letting the caller render per-step progress. Must be set before Fund.
func (s *Sequencer) SetStepObserver(fn func(domain.Step)) {
	s.onStep = fn
}

func (s *Sequencer) notify(step domain.Step) {
	if s.onStep != nil {
		s.onStep(step)
	}
}

// Step returns the current step. A sequencer with no attempt yet is in
// the input step.
func (s *Sequencer) Step() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt == nil {
		return domain.StepInput
	}
	return s.attempt.Step
}

// Attempt returns the current attempt, or nil before the first Fund.
func (s *Sequencer) Attempt() *domain.Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Reset returns the sequencer to the input step after a terminal
// attempt, clearing all residual step state. It is the only recovery
// transition out of the error step.
func (s *Sequencer) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAttemptInFlight
	}
	if s.attempt == nil {
		return nil
	}
	if err := s.attempt.Reset(); err != nil {
		return err
	}
	s.attempt = nil
	return nil
}

// Fund runs one complete funding attempt for amount against loan. It
// always starts with the pre-flight checker, then branches on the live
// allowance: sufficient allowance goes straight to the contribution,
// anything less approves exactly the requested amount first and chains
// into the contribution on confirmed success. The returned attempt
// carries the transaction hashes and terminal step.
func (s *Sequencer) Fund(ctx context.Context, loan string, amount domain.Amount) (*domain.Attempt, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrAttemptInFlight
	}
	if s.attempt != nil && s.attempt.Step != domain.StepInput {
		s.mu.Unlock()
		return s.attempt, ErrNotReset
	}
	attempt := domain.NewAttempt(loan, s.signer.Address(), amount)
	s.attempt = attempt
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Debug("funding attempt %s: %s to loan %s", attempt.ID, amount, loan)

	units := amount.Units()
	if err := s.preflight.Check(ctx, attempt.Funder, loan, units); err != nil {
		return attempt, s.fail(attempt, err)
	}

	allowance, err := s.ledger.Allowance(ctx, attempt.Funder, loan)
	if err != nil {
		// Treated as zero so the approval below covers the full amount.
		s.logger.Warn("could not read allowance, assuming none: %v", err)
		allowance = nil
	}

	if allowance == nil || allowance.Cmp(units) < 0 {
		if err := attempt.Advance(domain.StepApprove); err != nil {
			return attempt, s.fail(attempt, err)
		}
		s.notify(domain.StepApprove)
		s.logger.Debug("attempt %s: approving %s", attempt.ID, amount)
		hash, err := s.signer.SubmitApproval(ctx, s.token, loan, units)
		if err != nil {
			return attempt, s.fail(attempt, err)
		}
		attempt.ApproveTx = hash
		if _, err := s.waiter.Wait(ctx, hash, s.timeout); err != nil {
			return attempt, s.fail(attempt, err)
		}
		s.logger.Debug("attempt %s: approval confirmed (%s)", attempt.ID, hash)
	}

	if err := attempt.Advance(domain.StepContribute); err != nil {
		return attempt, s.fail(attempt, err)
	}
	s.notify(domain.StepContribute)
	s.logger.Debug("attempt %s: contributing %s", attempt.ID, amount)
	hash, err := s.signer.SubmitContribution(ctx, loan, units)
	if err != nil {
		return attempt, s.fail(attempt, err)
	}
	attempt.ContribTx = hash
	if _, err := s.waiter.Wait(ctx, hash, s.timeout); err != nil {
		return attempt, s.fail(attempt, err)
	}

	if err := attempt.Advance(domain.StepSuccess); err != nil {
		return attempt, s.fail(attempt, err)
	}
	s.notify(domain.StepSuccess)
	s.logger.Debug("attempt %s: confirmed (%s)", attempt.ID, hash)
	return attempt, nil
}

// fail maps err onto the user-facing taxonomy, moves the attempt to the
// error step with the display message, and returns the mapped error.
func (s *Sequencer) fail(attempt *domain.Attempt, err error) error {
	mapped := domain.ParseWalletError(err)
	attempt.Fail(common.GetUserMessage(mapped))
	s.notify(domain.StepError)
	return mapped
}
