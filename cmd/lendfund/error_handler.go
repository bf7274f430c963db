package main

import (
	"github.com/spf13/cobra"

	"github.com/lendfriend/lendfund/internal/domain/common"
	"github.com/lendfriend/lendfund/internal/output"
)

// handleCommandError renders an error for the user: the user-facing
// message when the error carries one, followed by a recovery hint.
// Errors from well-formed commands never print usage text.
func handleCommandError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	if common.ShouldSilenceUsage(err) {
		cmd.SilenceUsage = true
	}

	logger := output.DefaultLogger
	logger.Error("%s", common.GetUserMessage(err))

	if hint := common.GetRecoveryHint(err); hint != "" {
		logger.Println("\nHint: %s", hint)
	}
	return err
}
