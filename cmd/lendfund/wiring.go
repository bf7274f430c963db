package main

import (
	"context"
	"fmt"

	"github.com/lendfriend/lendfund/internal/application/ports"
	"github.com/lendfriend/lendfund/internal/config"
	"github.com/lendfriend/lendfund/internal/infrastructure/custodial"
	"github.com/lendfriend/lendfund/internal/infrastructure/evm"
	"github.com/lendfriend/lendfund/internal/output"
)

// app bundles the wired components a command needs.
type app struct {
	cfg         *config.Config
	networkName string
	network     config.Network
	client      *evm.Client
	reader      *evm.Reader
	waiter      *evm.Waiter
	signer      ports.Signer
	logger      *output.Logger
}

// loadConfig loads the YAML config, persisted CLI context, and env.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().Load(flagConfig)
	if err != nil {
		return nil, err
	}
	ctxPath, err := config.DefaultContextPath()
	if err == nil {
		if cliCtx, cerr := config.LoadContext(ctxPath); cerr == nil {
			cliCtx.Apply(cfg)
		}
	}
	return cfg, nil
}

// newApp wires the ledger reader, receipt waiter, and (when needed) the
// signer for the selected network.
func newApp(ctx context.Context, needSigner bool) (*app, error) {
	logger := output.DefaultLogger

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	networkName := flagNetwork
	if networkName == "" {
		networkName = cfg.DefaultNetwork
	}
	network, err := cfg.NetworkByName(networkName)
	if err != nil {
		return nil, err
	}
	if cfg.RPCURLFromEnv && networkName != cfg.DefaultNetwork {
		logger.Warn("%s overrides only the default network (%s); ignored for %s",
			config.EnvRPCURL, cfg.DefaultNetwork, networkName)
	}

	client := evm.NewClient(network.RPCURL)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	if id := client.ChainID(); id != nil && id.Int64() != network.ChainID {
		logger.Warn("RPC endpoint reports chain ID %d, config expects %d", id.Int64(), network.ChainID)
	}

	a := &app{
		cfg:         cfg,
		networkName: networkName,
		network:     network,
		client:      client,
		reader:      evm.NewReader(client, network.Token),
		waiter:      evm.NewWaiter(client, logger),
		logger:      logger,
	}

	if needSigner {
		a.signer, err = newSigner(cfg, networkName, network, client)
		if err != nil {
			client.Close()
			return nil, err
		}
	}
	return a, nil
}

// newSigner selects the wallet backend once, per the configured mode.
func newSigner(cfg *config.Config, networkName string, network config.Network, client *evm.Client) (ports.Signer, error) {
	switch cfg.Wallet {
	case config.WalletExternal:
		if cfg.PrivateKey == "" {
			return nil, fmt.Errorf("external wallet selected but %s is not set", config.EnvPrivateKey)
		}
		return evm.NewExternalSigner(client, cfg.PrivateKey)
	case config.WalletCustodial:
		if network.CustodialAPI == "" {
			return nil, fmt.Errorf("custodial wallet selected but network %q has no custodial_api", networkName)
		}
		return custodial.NewSigner(custodial.Config{
			BaseURL:      network.CustodialAPI,
			APIKey:       cfg.CustodialKey,
			Network:      networkName,
			ChainID:      network.ChainID,
			SmartAccount: cfg.SmartAccount,
		})
	default:
		return nil, fmt.Errorf("unknown wallet mode %q", cfg.Wallet)
	}
}

// Close releases the app's RPC connection.
func (a *app) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
