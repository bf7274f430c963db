// Package common provides shared domain types and error behaviors.
package common

// SilenceUsageError is implemented by errors that should NOT trigger
// CLI usage information. Operational failures (RPC unreachable, a
// transaction reverting) mean the user's command syntax was fine.
type SilenceUsageError interface {
	error
	ShouldSilenceUsage() bool
}

// UserFacingError is implemented by errors that carry a message meant
// to be shown to the user verbatim, without technical detail.
type UserFacingError interface {
	error
	UserMessage() string
}

// RecoverableError is implemented by errors that suggest a recovery
// action. The presentation layer renders the hint after the message.
type RecoverableError interface {
	error
	RecoveryHint() string
}

// ShouldSilenceUsage checks if an error should silence CLI usage output.
func ShouldSilenceUsage(err error) bool {
	if err == nil {
		return false
	}
	if sue, ok := err.(SilenceUsageError); ok {
		return sue.ShouldSilenceUsage()
	}
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return ShouldSilenceUsage(unwrapper.Unwrap())
	}
	return false
}

// GetUserMessage extracts a user-friendly message from an error.
// Falls back to the standard Error() message.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	if ufe, ok := err.(UserFacingError); ok {
		return ufe.UserMessage()
	}
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		if msg := GetUserMessage(unwrapper.Unwrap()); msg != "" {
			return msg
		}
	}
	return err.Error()
}

// GetRecoveryHint extracts a recovery hint from an error, or "".
func GetRecoveryHint(err error) string {
	if err == nil {
		return ""
	}
	if re, ok := err.(RecoverableError); ok {
		return re.RecoveryHint()
	}
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return GetRecoveryHint(unwrapper.Unwrap())
	}
	return ""
}
