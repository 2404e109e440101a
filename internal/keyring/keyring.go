// Package keyring caches the transfer passphrase in the OS keyring.
// Entries are keyed by the vault ID kept in the metadata sidecar, so two
// vaults on one machine never share a cached passphrase.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "passkeep"

// ErrNotFound is returned when no passphrase is cached for a vault
var ErrNotFound = keyring.ErrNotFound

// SavePassphrase stores a passphrase in the OS keyring
func SavePassphrase(vaultID string, passphrase string) error {
	return keyring.Set(serviceName, vaultID, passphrase)
}

// GetPassphrase retrieves a passphrase from the OS keyring
func GetPassphrase(vaultID string) (string, error) {
	return keyring.Get(serviceName, vaultID)
}

// DeletePassphrase removes a passphrase from the OS keyring.
// Deleting a missing entry is not an error.
func DeletePassphrase(vaultID string) error {
	err := keyring.Delete(serviceName, vaultID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasPassphrase checks if a passphrase is stored in the keyring
func HasPassphrase(vaultID string) bool {
	_, err := keyring.Get(serviceName, vaultID)
	return err == nil
}
