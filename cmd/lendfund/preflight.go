package main

import (
	"github.com/spf13/cobra"

	appfunding "github.com/lendfriend/lendfund/internal/application/funding"
	domain "github.com/lendfriend/lendfund/internal/domain/funding"
)

// NewPreflightCmd creates the preflight command.
func NewPreflightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preflight <loan-address> <amount>",
		Short: "Dry-run the pre-flight checks for a contribution",
		Long: `Run the pre-flight checks a funding attempt would run, without
submitting anything: live balance covers the amount, the loan is not
already funded, the amount fits the remaining need, and fundraising is
still active.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(cmd, runPreflight(cmd, args))
		},
	}
}

func runPreflight(cmd *cobra.Command, args []string) error {
	loan := args[0]
	amount, err := domain.ParseAmount(args[1])
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	checker := appfunding.NewPreflightChecker(a.reader, a.logger)
	if err := checker.Check(cmd.Context(), a.signer.Address(), loan, amount.Units()); err != nil {
		return err
	}

	a.logger.Success("Pre-flight checks passed: %s can be contributed to %s", amount, loan)
	return nil
}
