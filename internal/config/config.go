// Package config resolves where the vault and its transfer files live.
//
// The vault directory is PASSKEEP_HOME when set, otherwise the directory
// holding the running executable. Core packages never look these up
// themselves; they receive the resolved paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	VaultFile    = ".data"
	TransferFile = "data_exported"
	KeyExt       = ".key"
	MetaExt      = ".meta"

	EnvHome       = "PASSKEEP_HOME"
	EnvPassphrase = "PASSKEEP_PASSPHRASE"
	EnvDebug      = "PASSKEEP_DEBUG"
)

// Config holds resolved paths and switches for one invocation
type Config struct {
	Dir          string
	VaultPath    string
	MetaPath     string
	TransferPath string // default artifact for export/import
	KeyPath      string // default private key for key-pair transfers
	Debug        bool
}

// New builds a Config rooted at dir
func New(dir string) Config {
	vaultPath := filepath.Join(dir, VaultFile)
	transferPath := filepath.Join(dir, TransferFile)
	return Config{
		Dir:          dir,
		VaultPath:    vaultPath,
		MetaPath:     vaultPath + MetaExt,
		TransferPath: transferPath,
		KeyPath:      transferPath + KeyExt,
	}
}

// Resolve builds the Config from the environment
func Resolve() (Config, error) {
	dir := os.Getenv(EnvHome)
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return Config{}, fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Dir(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve vault directory: %w", err)
	}

	cfg := New(abs)
	cfg.Debug = os.Getenv(EnvDebug) != ""
	return cfg, nil
}

// PassphraseFromEnv returns the transfer passphrase from PASSKEEP_PASSPHRASE
func PassphraseFromEnv() (string, bool) {
	pass := os.Getenv(EnvPassphrase)
	return pass, pass != ""
}
