package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nunet/go-nunet/constants"
)

func TestInitConfig(t *testing.T) {
	repo := t.TempDir()
	content := `
[DMS]
Host = "localhost:9999"
UseTLS = false

[LEDGER]
Network = "preprod"
`
	if err := os.WriteFile(filepath.Join(repo, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := InitConfig(repo); err != nil {
		t.Fatal(err)
	}

	cfg := GetConfig()
	if cfg.DMS.Host != "localhost:9999" {
		t.Errorf("Host = %q", cfg.DMS.Host)
	}
	if cfg.LEDGER.Network != "preprod" {
		t.Errorf("Network = %q", cfg.LEDGER.Network)
	}
	if cfg.LEDGER.ScriptAddress != constants.ScriptAddress {
		t.Errorf("ScriptAddress should default to the contract address, got %q", cfg.LEDGER.ScriptAddress)
	}
}

func TestInitConfigScriptAddressOverride(t *testing.T) {
	repo := t.TempDir()
	content := `
[DMS]
Host = "localhost:9999"

[LEDGER]
Network = "preprod"
ScriptAddress = "addr_test1custom"
`
	if err := os.WriteFile(filepath.Join(repo, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := InitConfig(repo); err != nil {
		t.Fatal(err)
	}
	if got := GetConfig().LEDGER.ScriptAddress; got != "addr_test1custom" {
		t.Errorf("ScriptAddress = %q", got)
	}
}

func TestInitConfigMissingFile(t *testing.T) {
	if err := InitConfig(t.TempDir()); err == nil {
		t.Fatal("missing config file should fail")
	}
}
