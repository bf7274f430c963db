package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names. Secrets only ever come from the
// environment (optionally via a .env file), never from the YAML file.
const (
	EnvRPCURL       = "LENDFUND_RPC_URL"
	EnvPrivateKey   = "LENDFUND_PRIVATE_KEY"
	EnvCustodialKey = "LENDFUND_CDP_API_KEY"
	EnvSmartAccount = "LENDFUND_SMART_ACCOUNT"
)

// Loader loads lendfund configuration from a YAML file plus the
// environment.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the config file at path, falling back to the built-in
// defaults when the file does not exist, then applies environment
// overrides and validates. A .env file in the working directory is
// loaded first, best effort.
func (l *Loader) Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("failed to open config file: %w", err)
		default:
			defer f.Close()
			cfg, err = l.LoadReader(f, path)
			if err != nil {
				return nil, err
			}
		}
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadReader decodes a config document from a reader.
func (l *Loader) LoadReader(r io.Reader, source string) (*Config, error) {
	var raw struct {
		DefaultNetwork string             `yaml:"default_network"`
		Wallet         string             `yaml:"wallet"`
		ReceiptTimeout string             `yaml:"receipt_timeout"`
		Networks       map[string]Network `yaml:"networks"`
	}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", source, err)
	}

	cfg := Default()
	if raw.DefaultNetwork != "" {
		cfg.DefaultNetwork = raw.DefaultNetwork
	}
	if raw.Wallet != "" {
		cfg.Wallet = WalletMode(raw.Wallet)
	}
	if raw.ReceiptTimeout != "" {
		d, err := time.ParseDuration(raw.ReceiptTimeout)
		if err != nil {
			return nil, &ValidationError{Field: "receipt_timeout", Message: err.Error()}
		}
		cfg.ReceiptTimeout = d
	}
	if len(raw.Networks) > 0 {
		cfg.Networks = raw.Networks
	}
	return cfg, nil
}

// applyEnv overlays environment values onto the config. A custom RPC
// URL replaces the endpoint of the default network only.
func (l *Loader) applyEnv(cfg *Config) {
	if rpc := os.Getenv(EnvRPCURL); rpc != "" {
		if net, ok := cfg.Networks[cfg.DefaultNetwork]; ok {
			net.RPCURL = rpc
			cfg.Networks[cfg.DefaultNetwork] = net
			cfg.RPCURLFromEnv = true
		}
	}
	cfg.PrivateKey = os.Getenv(EnvPrivateKey)
	cfg.CustodialKey = os.Getenv(EnvCustodialKey)
	cfg.SmartAccount = os.Getenv(EnvSmartAccount)
}
