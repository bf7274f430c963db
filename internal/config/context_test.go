package config

import (
	"path/filepath"
	"testing"
)

func TestContextSaveLoadApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lendfund", "context.toml")

	ctx := &Context{Network: "base", Wallet: "custodial"}
	if err := ctx.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadContext(path)
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if loaded.Network != "base" || loaded.Wallet != "custodial" {
		t.Fatalf("loaded = %+v", loaded)
	}

	cfg := Default()
	loaded.Apply(cfg)
	if cfg.DefaultNetwork != "base" {
		t.Errorf("DefaultNetwork = %q, want base", cfg.DefaultNetwork)
	}
	if cfg.Wallet != WalletCustodial {
		t.Errorf("Wallet = %q, want custodial", cfg.Wallet)
	}
}

func TestLoadContextMissingFile(t *testing.T) {
	ctx, err := LoadContext(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing context file should not error: %v", err)
	}
	if ctx.Network != "" {
		t.Errorf("missing file should yield empty context, got %+v", ctx)
	}
}

func TestContextApplyIgnoresUnknownValues(t *testing.T) {
	cfg := Default()
	before := cfg.DefaultNetwork

	ctx := &Context{Network: "optimism", Wallet: "paper"}
	ctx.Apply(cfg)

	if cfg.DefaultNetwork != before {
		t.Errorf("unknown network must not be applied, got %q", cfg.DefaultNetwork)
	}
	if cfg.Wallet != WalletExternal {
		t.Errorf("invalid wallet mode must not be applied, got %q", cfg.Wallet)
	}
}
