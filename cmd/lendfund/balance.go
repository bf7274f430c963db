package main

import (
	"github.com/spf13/cobra"

	domain "github.com/lendfriend/lendfund/internal/domain/funding"
)

// NewBalanceCmd creates the balance command.
func NewBalanceCmd() *cobra.Command {
	var loan string

	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Show a wallet's token balance",
		Long: `Show the USDC balance of an address. With no argument, the
configured wallet's address is used. With --loan, also shows the
spending allowance granted to that loan contract.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(cmd, runBalance(cmd, args, loan))
		},
	}

	cmd.Flags().StringVar(&loan, "loan", "", "also show the allowance granted to this loan contract")
	return cmd
}

func runBalance(cmd *cobra.Command, args []string, loan string) error {
	needSigner := len(args) == 0
	a, err := newApp(cmd.Context(), needSigner)
	if err != nil {
		return err
	}
	defer a.Close()

	address := ""
	if needSigner {
		address = a.signer.Address()
	} else {
		address = args[0]
	}

	balance, err := a.reader.Balance(cmd.Context(), address)
	if err != nil {
		return err
	}
	a.logger.Info("Balance of %s: %s", address, domain.FormatUnits(balance))

	if loan != "" {
		allowance, err := a.reader.Allowance(cmd.Context(), address, loan)
		if err != nil {
			return err
		}
		a.logger.Info("Allowance for %s: %s", loan, domain.FormatUnits(allowance))
	}
	return nil
}
