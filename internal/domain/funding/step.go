package funding

// Step represents the current state of a funding attempt.
type Step string

const (
	StepInput      Step = "input"
	StepApprove    Step = "approve"
	StepContribute Step = "contribute"
	StepSuccess    Step = "success"
	StepError      Step = "error"
)

// IsValid checks if the step is valid.
func (s Step) IsValid() bool {
	switch s {
	case StepInput, StepApprove, StepContribute, StepSuccess, StepError:
		return true
	}
	return false
}

// CanTransitionTo checks if a transition to the target step is allowed.
// Input is the sole re-entrant state: a new attempt may only start from
// it, and error recovers to it before anything else can happen.
func (s Step) CanTransitionTo(target Step) bool {
	switch s {
	case StepInput:
		return target == StepApprove || target == StepContribute
	case StepApprove:
		return target == StepContribute || target == StepError
	case StepContribute:
		return target == StepSuccess || target == StepError
	case StepSuccess:
		return target == StepInput
	case StepError:
		return target == StepInput
	}
	return false
}

// IsTerminal reports whether the step ends an attempt.
func (s Step) IsTerminal() bool {
	return s == StepSuccess || s == StepError
}

// String returns the string representation.
func (s Step) String() string {
	return string(s)
}

// InvalidTransitionError is returned when a step transition is not allowed.
type InvalidTransitionError struct {
	From Step
	To   Step
}

func (e *InvalidTransitionError) Error() string {
	return "invalid funding step transition from " + string(e.From) + " to " + string(e.To)
}
