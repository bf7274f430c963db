package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	domain "github.com/lendfriend/lendfund/internal/domain/funding"
)

// StatusResult is the JSON output for the status command.
type StatusResult struct {
	Loan              string  `json:"loan"`
	Network           string  `json:"network"`
	TotalFunded       string  `json:"total_funded"`
	Principal         string  `json:"principal"`
	Remaining         string  `json:"remaining"`
	ProgressPercent   float64 `json:"progress_percent"`
	FundraisingActive bool    `json:"fundraising_active"`
}

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <loan-address>",
		Short: "Show a loan's funding progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(cmd, runStatus(cmd, args))
		},
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	loan := args[0]

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.reader.LoanSnapshot(cmd.Context(), loan)
	if err != nil {
		return err
	}

	if flagJSON {
		result := StatusResult{
			Loan:              loan,
			Network:           a.networkName,
			TotalFunded:       domain.FormatUnits(snap.TotalFunded),
			Principal:         domain.FormatUnits(snap.Principal),
			Remaining:         domain.FormatUnits(snap.Remaining()),
			ProgressPercent:   snap.ProgressPercent(),
			FundraisingActive: snap.FundraisingActive,
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	logger := a.logger
	logger.Info("Loan %s on %s", loan, a.networkName)
	logger.Info("  Funded:    %s of %s (%.1f%%)",
		domain.FormatUnits(snap.TotalFunded), domain.FormatUnits(snap.Principal), snap.ProgressPercent())
	logger.Info("  Remaining: %s", domain.FormatUnits(snap.Remaining()))
	if snap.FundraisingActive {
		logger.Info("  Fundraising: active")
	} else {
		logger.Info("  Fundraising: closed")
	}
	return nil
}
