package funding

import "testing"

func TestStepTransitions(t *testing.T) {
	tests := []struct {
		from    Step
		to      Step
		allowed bool
	}{
		{StepInput, StepApprove, true},
		{StepInput, StepContribute, true},
		{StepInput, StepSuccess, false},
		{StepInput, StepError, false},
		{StepApprove, StepContribute, true},
		{StepApprove, StepError, true},
		{StepApprove, StepSuccess, false},
		{StepApprove, StepInput, false},
		{StepContribute, StepSuccess, true},
		{StepContribute, StepError, true},
		{StepContribute, StepApprove, false},
		{StepError, StepInput, true},
		{StepError, StepApprove, false},
		{StepError, StepContribute, false},
		{StepSuccess, StepInput, true},
		{StepSuccess, StepContribute, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestStepIsValid(t *testing.T) {
	for _, s := range []Step{StepInput, StepApprove, StepContribute, StepSuccess, StepError} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Step("bogus").IsValid() {
		t.Error("bogus step should be invalid")
	}
}

func TestAttemptLifecycle(t *testing.T) {
	amount, _ := ParseAmount("50")
	attempt := NewAttempt("0xloan", "0xfunder", amount)

	if attempt.Step != StepInput {
		t.Fatalf("new attempt should start in input, got %s", attempt.Step)
	}
	if attempt.ID == "" {
		t.Fatal("attempt should have an ID")
	}

	if err := attempt.Advance(StepApprove); err != nil {
		t.Fatalf("input -> approve: %v", err)
	}
	if err := attempt.Advance(StepContribute); err != nil {
		t.Fatalf("approve -> contribute: %v", err)
	}
	if err := attempt.Advance(StepSuccess); err != nil {
		t.Fatalf("contribute -> success: %v", err)
	}
	if attempt.FinishedAt.IsZero() {
		t.Error("terminal attempt should record finish time")
	}

	if err := attempt.Advance(StepContribute); err == nil {
		t.Error("success -> contribute should be rejected")
	}
}

func TestAttemptFailAndReset(t *testing.T) {
	amount, _ := ParseAmount("50")
	attempt := NewAttempt("0xloan", "0xfunder", amount)

	if err := attempt.Advance(StepApprove); err != nil {
		t.Fatalf("input -> approve: %v", err)
	}
	attempt.ApproveTx = "0xabc"
	attempt.Fail("something went wrong")

	if attempt.Step != StepError {
		t.Fatalf("failed attempt should be in error, got %s", attempt.Step)
	}
	if attempt.Message != "something went wrong" {
		t.Errorf("unexpected message %q", attempt.Message)
	}

	if err := attempt.Reset(); err != nil {
		t.Fatalf("error -> input reset: %v", err)
	}
	if attempt.Step != StepInput {
		t.Errorf("reset attempt should be in input, got %s", attempt.Step)
	}
	if attempt.Message != "" || attempt.ApproveTx != "" || attempt.ContribTx != "" {
		t.Error("reset should clear residual step state")
	}
}

func TestAttemptResetFromInFlight(t *testing.T) {
	amount, _ := ParseAmount("50")
	attempt := NewAttempt("0xloan", "0xfunder", amount)
	if err := attempt.Advance(StepApprove); err != nil {
		t.Fatalf("input -> approve: %v", err)
	}
	if err := attempt.Reset(); err == nil {
		t.Error("reset from approve should be rejected")
	}
}
