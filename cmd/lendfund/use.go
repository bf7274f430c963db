package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lendfriend/lendfund/internal/config"
	"github.com/lendfriend/lendfund/internal/output"
)

// NewUseCmd creates the use command, which persists the active network
// and wallet mode for subsequent commands.
func NewUseCmd() *cobra.Command {
	var wallet string

	cmd := &cobra.Command{
		Use:   "use <network>",
		Short: "Select the default network (and optionally wallet mode)",
		Long: `Persist the network to use for subsequent commands, e.g.:

  lendfund use base-sepolia
  lendfund use base --wallet custodial`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(cmd, runUse(args[0], wallet))
		},
	}

	cmd.Flags().StringVar(&wallet, "wallet", "", "wallet mode: external or custodial")
	return cmd
}

func runUse(network, wallet string) error {
	cfg, err := config.NewLoader().Load(flagConfig)
	if err != nil {
		return err
	}
	if _, ok := cfg.Networks[network]; !ok {
		return fmt.Errorf("unknown network %q", network)
	}
	if wallet != "" && !config.WalletMode(wallet).IsValid() {
		return fmt.Errorf("invalid wallet mode %q", wallet)
	}

	path, err := config.DefaultContextPath()
	if err != nil {
		return err
	}
	cliCtx, err := config.LoadContext(path)
	if err != nil {
		return err
	}
	cliCtx.Network = network
	if wallet != "" {
		cliCtx.Wallet = wallet
	}
	if err := cliCtx.Save(path); err != nil {
		return err
	}

	output.DefaultLogger.Success("Now using network %s", network)
	if wallet != "" {
		output.DefaultLogger.Success("Wallet mode set to %s", wallet)
	}
	return nil
}
