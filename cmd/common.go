package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/passkeep/internal/config"
	"github.com/illarion/passkeep/internal/core"
	"github.com/illarion/passkeep/internal/crypto"
	"github.com/illarion/passkeep/internal/keyring"
	"github.com/illarion/passkeep/internal/logger"
	"github.com/illarion/passkeep/internal/prompt"
	"github.com/illarion/passkeep/internal/security"
	"github.com/illarion/passkeep/internal/strategy"
	"github.com/illarion/passkeep/internal/transfer"
	"github.com/illarion/passkeep/internal/vault"
)

// Log is the diagnostics logger, configured by main from -v and -debug
var Log logger.Logger

// terminal is shared so buffered stdin is never split between readers
var terminal = prompt.NewTerminal()

// OpenVault resolves the config and opens the vault, exiting on error.
// PASSKEEP_DEBUG switches on debug logging here. The caller must Close it.
func OpenVault() *core.Vault {
	cfg, err := config.Resolve()
	if err != nil {
		HandleError(err)
	}
	if cfg.Debug {
		Log.Debug = true
	}
	Log.Debugf("vault: %s", cfg.VaultPath)

	v, err := core.Open(cfg)
	if err != nil {
		HandleError(err)
	}
	v.Log = Log
	return v
}

// FlushOrExit saves the vault, exiting on error
func FlushOrExit(v *core.Vault) {
	if err := v.Flush(); err != nil {
		HandleError(err)
	}
	Log.Debugf("saved %d entries", v.Len())
}

// readSecret returns args[i] if present, otherwise prompts with confirmation
func readSecret(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	secret, err := terminal.AskPassword(true)
	if err != nil {
		HandleError(err)
	}
	return secret
}

// passphraseSource supplies the transfer passphrase from, in order,
// PASSKEEP_PASSPHRASE, the OS keyring and the terminal
type passphraseSource struct {
	vaultID  string
	terminal strategy.PassphraseSource
}

func (p passphraseSource) AskPassword(confirm bool) (string, error) {
	if pass, ok := config.PassphraseFromEnv(); ok {
		Log.Debugf("passphrase from %s", config.EnvPassphrase)
		return pass, nil
	}

	if p.vaultID != "" {
		if pass, err := keyring.GetPassphrase(p.vaultID); err == nil {
			Log.Debugf("passphrase from keyring")
			return pass, nil
		}
	}

	return p.terminal.AskPassword(confirm)
}

func passphraseStrategy(v *core.Vault) strategy.Strategy {
	return strategy.Passphrase{
		Source: passphraseSource{vaultID: v.VaultID(), terminal: terminal},
	}
}

// errorMessage maps an error to the message shown to the user
func errorMessage(err error) string {
	var persistErr *strategy.KeyPersistError
	var loadErr *strategy.KeyLoadError
	var exportErr *transfer.ExportError
	var importErr *transfer.ImportError

	switch {
	case errors.Is(err, core.ErrNoSuchKey):
		return "No passwords for that key"
	case errors.Is(err, core.ErrKeyExists):
		return "Password for the given key already exists"
	case errors.Is(err, prompt.ErrInputFailed):
		return "Could not read the input"
	case errors.Is(err, prompt.ErrPasswordMismatch):
		return "Password mismatch"
	case errors.Is(err, strategy.ErrEmptyPassphrase):
		return "Passphrase must not be empty"
	case errors.Is(err, crypto.ErrPlaintextTooLarge):
		return fmt.Sprintf("Failed to encrypt data: vault too large for key-pair export (limit %d bytes)", crypto.MaxOAEPPlaintext)
	case errors.As(err, &persistErr):
		return fmt.Sprintf("Could not write to %q", persistErr.Path)
	case errors.As(err, &loadErr):
		return fmt.Sprintf("Could not read from %q", loadErr.Path)
	case errors.As(err, &exportErr):
		if exportErr.Stage == transfer.StageWrite {
			return fmt.Sprintf("Could not write to %q", exportErr.Path)
		}
		return "Failed to encrypt data"
	case errors.As(err, &importErr):
		switch importErr.Stage {
		case transfer.StageRead:
			return fmt.Sprintf("Could not read from %q", importErr.Path)
		case transfer.StageDecode:
			return "Invalid import file"
		default:
			return "Failed to decrypt file"
		}
	case errors.Is(err, vault.ErrCorrupt):
		return fmt.Sprintf("Vault file is damaged: %s", err)
	case errors.Is(err, security.ErrPathOverlap), errors.Is(err, security.ErrIsDirectory):
		return fmt.Sprintf("Invalid transfer path: %s", err)
	default:
		return err.Error()
	}
}

// HandleError prints the user-facing message for err and exits
func HandleError(err error) {
	Log.Debugf("%v", err)
	Log.Errorf("%s", errorMessage(err))
	os.Exit(1)
}

// usageError prints a usage line and exits
func usageError(usage string) {
	fmt.Fprintf(os.Stderr, "Usage: passkeep %s\n", usage)
	os.Exit(1)
}
