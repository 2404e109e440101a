package core

import (
	"github.com/illarion/passkeep/internal/merge"
	"github.com/illarion/passkeep/internal/vault"
)

// MultiAdd stores one secret under every key. Keys that already exist are
// collisions and go through the merge resolver like an import would.
func (v *Vault) MultiAdd(keys []string, secret string, op merge.Operator) (*merge.Result, error) {
	extension := vault.New()
	for _, key := range keys {
		if err := validate(key, secret); err != nil {
			return nil, err
		}
		extension[key] = secret
	}

	return merge.Resolve(v.store, extension, op)
}

// MultiRemove deletes every existing key and returns the ones not found
func (v *Vault) MultiRemove(keys []string) (missing []string) {
	for _, key := range keys {
		if err := v.Remove(key); err != nil {
			missing = append(missing, key)
		}
	}
	return missing
}

// MultiUpdate sets secret on every existing key and returns the ones not
// found. Nothing changes when the secret is invalid.
func (v *Vault) MultiUpdate(keys []string, secret string) (missing []string, err error) {
	if err := vault.ValidateSecret(secret); err != nil {
		return nil, err
	}

	for _, key := range keys {
		if _, ok := v.store[key]; !ok {
			missing = append(missing, key)
			continue
		}
		v.store[key] = secret
	}
	return missing, nil
}
