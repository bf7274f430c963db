// Package config loads and validates lendfund configuration: the YAML
// network catalog, environment overrides, and the persisted CLI context.
package config

import (
	"fmt"
	"time"
)

// WalletMode selects which signing backend drives submissions.
type WalletMode string

const (
	WalletExternal  WalletMode = "external"
	WalletCustodial WalletMode = "custodial"
)

// IsValid checks if the wallet mode is valid.
func (m WalletMode) IsValid() bool {
	return m == WalletExternal || m == WalletCustodial
}

// Network describes one chain the funder can target.
type Network struct {
	ChainID      int64  `yaml:"chain_id"`
	RPCURL       string `yaml:"rpc_url"`
	Token        string `yaml:"token"`
	CustodialAPI string `yaml:"custodial_api,omitempty"`
}

// Config is the full lendfund configuration.
type Config struct {
	DefaultNetwork string             `yaml:"default_network"`
	Wallet         WalletMode         `yaml:"wallet"`
	ReceiptTimeout time.Duration      `yaml:"receipt_timeout"`
	Networks       map[string]Network `yaml:"networks"`

	// Secrets, environment-only, never read from the YAML file.
	PrivateKey   string `yaml:"-"`
	CustodialKey string `yaml:"-"`
	SmartAccount string `yaml:"-"`

	// RPCURLFromEnv records that the default network's endpoint was
	// replaced from the environment, so callers can flag the override
	// as inert when a different network is selected.
	RPCURLFromEnv bool `yaml:"-"`
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if len(c.Networks) == 0 {
		return &ValidationError{Field: "networks", Message: "at least one network is required"}
	}
	if c.DefaultNetwork == "" {
		return &ValidationError{Field: "default_network", Message: "required"}
	}
	if _, ok := c.Networks[c.DefaultNetwork]; !ok {
		return &ValidationError{Field: "default_network", Message: fmt.Sprintf("unknown network %q", c.DefaultNetwork)}
	}
	if !c.Wallet.IsValid() {
		return &ValidationError{Field: "wallet", Message: fmt.Sprintf("must be %q or %q", WalletExternal, WalletCustodial)}
	}
	for name, net := range c.Networks {
		if net.ChainID == 0 {
			return &ValidationError{Field: "networks." + name + ".chain_id", Message: "required"}
		}
		if net.RPCURL == "" {
			return &ValidationError{Field: "networks." + name + ".rpc_url", Message: "required"}
		}
		if net.Token == "" {
			return &ValidationError{Field: "networks." + name + ".token", Message: "required"}
		}
	}
	if c.ReceiptTimeout < 0 {
		return &ValidationError{Field: "receipt_timeout", Message: "must not be negative"}
	}
	return nil
}

// NetworkByName returns the named network, or the default when name is
// empty.
func (c *Config) NetworkByName(name string) (Network, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	net, ok := c.Networks[name]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
	return net, nil
}

// Default returns the built-in configuration targeting Base Sepolia,
// used when no config file exists.
func Default() *Config {
	return &Config{
		DefaultNetwork: "base-sepolia",
		Wallet:         WalletExternal,
		ReceiptTimeout: 60 * time.Second,
		Networks: map[string]Network{
			"base": {
				ChainID: 8453,
				RPCURL:  "https://mainnet.base.org",
				Token:   "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
			},
			"base-sepolia": {
				ChainID: 84532,
				RPCURL:  "https://sepolia.base.org",
				Token:   "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
			},
		},
	}
}
