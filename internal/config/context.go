package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Context is the small persisted CLI state: which network and wallet
// mode the user last selected with `lendfund use`. It overrides the
// YAML config's defaults.
type Context struct {
	Network string `toml:"network"`
	Wallet  string `toml:"wallet,omitempty"`
}

// DefaultContextPath returns ~/.lendfund/context.toml.
func DefaultContextPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".lendfund", "context.toml"), nil
}

// LoadContext reads the context file. A missing file yields an empty
// context, not an error.
func LoadContext(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Context{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var ctx Context
	if err := toml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("failed to parse context file %s: %w", path, err)
	}
	return &ctx, nil
}

// Save writes the context file, creating its directory if needed.
func (c *Context) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create context directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode context: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write context file: %w", err)
	}
	return nil
}

// Apply overlays the persisted context onto a loaded config.
func (c *Context) Apply(cfg *Config) {
	if c.Network != "" {
		if _, ok := cfg.Networks[c.Network]; ok {
			cfg.DefaultNetwork = c.Network
		}
	}
	if c.Wallet != "" && WalletMode(c.Wallet).IsValid() {
		cfg.Wallet = WalletMode(c.Wallet)
	}
}
