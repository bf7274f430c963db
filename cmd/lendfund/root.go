package main

import (
	"github.com/spf13/cobra"

	"github.com/lendfriend/lendfund/internal/output"
)

var (
	flagConfig  string
	flagNetwork string
	flagVerbose bool
	flagNoColor bool
	flagJSON    bool
)

// NewRootCmd creates the lendfund root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lendfund",
		Short: "Fund LendFriend loans from the command line",
		Long: `lendfund drives contributions to LendFriend loan contracts on Base.

A funding attempt runs pre-flight checks against live chain state, submits
an exact-amount token approval when the current allowance does not cover
the contribution, and then submits the contribution itself, waiting for
each transaction to confirm.

Examples:
  # Contribute 50 USDC to a loan
  lendfund fund 0xLoanAddress 50

  # Dry-run the pre-flight checks only
  lendfund preflight 0xLoanAddress 50

  # Show a loan's funding progress
  lendfund status 0xLoanAddress`,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.DefaultLogger.SetVerbose(flagVerbose)
			output.DefaultLogger.SetNoColor(flagNoColor)
			output.DefaultLogger.SetJSONMode(flagJSON)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "lendfund.yaml", "path to the config file")
	cmd.PersistentFlags().StringVar(&flagNetwork, "chain", "", "network to target (default from config)")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug output")
	cmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output results as JSON")

	cmd.AddCommand(
		NewFundCmd(),
		NewPreflightCmd(),
		NewStatusCmd(),
		NewBalanceCmd(),
		NewUseCmd(),
		NewVersionCmd(),
	)
	return cmd
}
