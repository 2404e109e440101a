package core

import (
	"errors"
	"fmt"

	"github.com/illarion/passkeep/internal/config"
	"github.com/illarion/passkeep/internal/logger"
	"github.com/illarion/passkeep/internal/storage"
	"github.com/illarion/passkeep/internal/vault"
)

var (
	ErrKeyExists = errors.New("password for the given key already exists")
	ErrNoSuchKey = errors.New("no passwords for that key")
)

// Vault is one open session on the vault file and its metadata
type Vault struct {
	// Log receives warnings about bookkeeping that does not fail an operation
	Log logger.Logger

	cfg     config.Config
	store   vault.Store
	db      *storage.Storage
	vaultID string
}

// Open loads the vault file (empty if absent) and its metadata sidecar
func Open(cfg config.Config) (*Vault, error) {
	store, err := vault.Load(cfg.VaultPath)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.MetaPath)
	if err != nil {
		return nil, err
	}

	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	vaultID, err := db.GetOrCreateVaultID()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Vault{
		cfg:     cfg,
		store:   store,
		db:      db,
		vaultID: vaultID,
	}, nil
}

// Close releases the metadata database without saving
func (v *Vault) Close() error {
	return v.db.Close()
}

// Flush writes the store to the vault file
func (v *Vault) Flush() error {
	if err := vault.Save(v.cfg.VaultPath, v.store); err != nil {
		return err
	}
	return v.db.UpdateModified()
}

// Config returns the paths this vault was opened with
func (v *Vault) Config() config.Config {
	return v.cfg
}

// VaultID returns the identifier used for the keyring entry
func (v *Vault) VaultID() string {
	return v.vaultID
}

// Summary returns the metadata shown by status
func (v *Vault) Summary() (*storage.Summary, error) {
	return v.db.Summary()
}

// Len returns the number of entries
func (v *Vault) Len() int {
	return len(v.store)
}

// Keys returns all keys in sorted order
func (v *Vault) Keys() []string {
	return v.store.Keys()
}

// Get returns the secret stored under key
func (v *Vault) Get(key string) (string, error) {
	secret, ok := v.store[key]
	if !ok {
		return "", ErrNoSuchKey
	}
	return secret, nil
}

func validate(key, secret string) error {
	if err := vault.ValidateKey(key); err != nil {
		return err
	}
	return vault.ValidateSecret(secret)
}

// Add stores a new key
func (v *Vault) Add(key, secret string) error {
	if err := validate(key, secret); err != nil {
		return err
	}
	if _, ok := v.store[key]; ok {
		return ErrKeyExists
	}
	v.store[key] = secret
	return nil
}

// Update replaces the secret of an existing key
func (v *Vault) Update(key, secret string) error {
	if err := validate(key, secret); err != nil {
		return err
	}
	if _, ok := v.store[key]; !ok {
		return ErrNoSuchKey
	}
	v.store[key] = secret
	return nil
}

// Remove deletes a key
func (v *Vault) Remove(key string) error {
	if _, ok := v.store[key]; !ok {
		return ErrNoSuchKey
	}
	delete(v.store, key)
	return nil
}

// Rename moves a secret to a new key. The new key must not exist.
func (v *Vault) Rename(oldKey, newKey string) error {
	if err := vault.ValidateKey(newKey); err != nil {
		return err
	}
	secret, ok := v.store[oldKey]
	if !ok {
		return ErrNoSuchKey
	}
	if oldKey == newKey {
		return nil
	}
	if _, ok := v.store[newKey]; ok {
		return ErrKeyExists
	}
	delete(v.store, oldKey)
	v.store[newKey] = secret
	return nil
}

// Clear removes every entry
func (v *Vault) Clear() {
	v.store.Reset()
}
