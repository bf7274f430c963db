package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	appfunding "github.com/lendfriend/lendfund/internal/application/funding"
	domain "github.com/lendfriend/lendfund/internal/domain/funding"
	"github.com/lendfriend/lendfund/internal/output"
)

// FundResult is the JSON output for the fund command.
type FundResult struct {
	AttemptID    string `json:"attempt_id"`
	Loan         string `json:"loan"`
	Amount       string `json:"amount"`
	Step         string `json:"step"`
	ApproveTx    string `json:"approve_tx,omitempty"`
	ContributeTx string `json:"contribute_tx,omitempty"`
}

// presetAmounts mirror the quick-select contribution buttons of the
// LendFriend funding form.
var presetAmounts = []string{"25", "50", "100", "250"}

// NewFundCmd creates the fund command.
func NewFundCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "fund <loan-address> [amount]",
		Short: "Contribute to a loan",
		Long: `Contribute USDC to a loan contract.

Runs pre-flight checks against live chain state, approves the exact
contribution amount if the current allowance does not cover it, then
submits the contribution and waits for confirmation. When the amount is
omitted, a preset picker is shown.

Examples:
  # Contribute 50 USDC
  lendfund fund 0xLoanAddress 50

  # Skip the confirmation prompt
  lendfund fund 0xLoanAddress 50 --yes`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(cmd, runFund(cmd, args, yes))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runFund(cmd *cobra.Command, args []string, yes bool) error {
	loan := args[0]

	amountStr := ""
	if len(args) == 2 {
		amountStr = args[1]
	} else {
		picker := promptui.Select{
			Label: "Contribution amount (USDC)",
			Items: presetAmounts,
		}
		_, picked, err := picker.Run()
		if err != nil {
			return &domain.CancelledError{}
		}
		amountStr = picked
	}

	amount, err := domain.ParseAmount(amountStr)
	if err != nil {
		return err
	}

	if !yes {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Fund %s to loan %s", amount, loan),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			return &domain.CancelledError{}
		}
	}

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.logger
	logger.Info("Funding %s to loan %s on %s as %s", amount, loan, a.networkName, a.signer.Address())

	seq := appfunding.NewSequencer(a.reader, a.signer, a.waiter, a.network.Token, logger)
	if a.cfg.ReceiptTimeout > 0 {
		seq.SetReceiptTimeout(a.cfg.ReceiptTimeout)
	}
	// The stage total depends on whether the allowance already covers
	// the amount, which is only known once the first step is observed.
	var progress *output.Progress
	stage := func(total int, description string) {
		if progress == nil {
			progress = output.NewProgress(total)
			progress.SetJSONMode(flagJSON)
		}
		progress.Stage(description)
	}
	seq.SetStepObserver(func(step domain.Step) {
		switch step {
		case domain.StepApprove:
			stage(2, fmt.Sprintf("Approving %s", amount))
		case domain.StepContribute:
			stage(1, fmt.Sprintf("Contributing %s", amount))
		case domain.StepSuccess:
			progress.Done(fmt.Sprintf("Contributed %s to loan %s", amount, loan))
		}
	})

	attempt, err := seq.Fund(cmd.Context(), loan, amount)
	if err != nil {
		if attempt != nil && attempt.ApproveTx != "" {
			logger.Tx("Approval tx", attempt.ApproveTx)
		}
		if attempt != nil && attempt.ContribTx != "" {
			logger.Tx("Contribution tx", attempt.ContribTx)
		}
		return err
	}

	if attempt.ApproveTx != "" {
		logger.Tx("Approval tx", attempt.ApproveTx)
	}
	logger.Tx("Contribution tx", attempt.ContribTx)

	if flagJSON {
		result := FundResult{
			AttemptID:    attempt.ID,
			Loan:         attempt.LoanAddress,
			Amount:       attempt.Amount.String(),
			Step:         attempt.Step.String(),
			ApproveTx:    attempt.ApproveTx,
			ContributeTx: attempt.ContribTx,
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
	}
	return nil
}
