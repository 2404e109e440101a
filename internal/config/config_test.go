package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_Home(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvDebug, "1")

	cfg, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := map[string]string{
		"VaultPath":    filepath.Join(dir, ".data"),
		"MetaPath":     filepath.Join(dir, ".data.meta"),
		"TransferPath": filepath.Join(dir, "data_exported"),
		"KeyPath":      filepath.Join(dir, "data_exported.key"),
	}
	got := map[string]string{
		"VaultPath":    cfg.VaultPath,
		"MetaPath":     cfg.MetaPath,
		"TransferPath": cfg.TransferPath,
		"KeyPath":      cfg.KeyPath,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %s, want %s", k, got[k], v)
		}
	}
	if !cfg.Debug {
		t.Error("Debug should be enabled by PASSKEEP_DEBUG")
	}
}

func TestResolve_ExecutableDir(t *testing.T) {
	t.Setenv(EnvHome, "")

	cfg, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable failed: %v", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if cfg.Dir != filepath.Dir(exe) {
		t.Errorf("Dir = %s, want %s", cfg.Dir, filepath.Dir(exe))
	}
}

func TestPassphraseFromEnv(t *testing.T) {
	t.Setenv(EnvPassphrase, "")
	if _, ok := PassphraseFromEnv(); ok {
		t.Error("empty variable must not count as a passphrase")
	}

	t.Setenv(EnvPassphrase, "s3cret")
	pass, ok := PassphraseFromEnv()
	if !ok || pass != "s3cret" {
		t.Errorf("PassphraseFromEnv() = %q, %v", pass, ok)
	}
}
