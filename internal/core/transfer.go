package core

import (
	"github.com/illarion/passkeep/internal/merge"
	"github.com/illarion/passkeep/internal/security"
	"github.com/illarion/passkeep/internal/storage"
	"github.com/illarion/passkeep/internal/strategy"
	"github.com/illarion/passkeep/internal/transfer"
	"github.com/illarion/passkeep/internal/vault"
)

// checkPaths validates the files a transfer through s would touch
func (v *Vault) checkPaths(artifact string, s strategy.Strategy) (security.TransferPaths, error) {
	paths := security.TransferPaths{Vault: v.cfg.VaultPath, Artifact: artifact}
	if kp, ok := s.(strategy.KeyPair); ok {
		paths.Key = kp.KeyPath
	}
	return paths.Validate()
}

// Export writes the store to dest encrypted with s.
// With clearAfter set the store is emptied; the caller flushes.
func (v *Vault) Export(dest string, s strategy.Strategy, clearAfter bool) error {
	paths, err := v.checkPaths(dest, s)
	if err != nil {
		return err
	}

	entries := len(v.store)
	if err := transfer.Export(v.store, paths.Artifact, s, clearAfter); err != nil {
		return err
	}

	rec := storage.NewTransferRecord(storage.DirectionExport, paths.Artifact, s.Name(), entries)
	rec.KeyPath = paths.Key
	rec.Cleared = clearAfter
	v.recordTransfer(rec)
	return nil
}

// Import reads src with s and folds it into the store. With replace set
// the store is replaced wholesale and op is never asked; otherwise
// collisions go to op. An aborted import leaves the store unchanged.
func (v *Vault) Import(src string, s strategy.Strategy, op merge.Operator, replace bool) (*merge.Result, error) {
	paths, err := v.checkPaths(src, s)
	if err != nil {
		return nil, err
	}

	incoming, err := transfer.Import(paths.Artifact, s)
	if err != nil {
		return nil, err
	}
	entries := len(incoming)

	var result *merge.Result
	if replace {
		result = replaceAll(v.store, incoming)
	} else {
		result, err = merge.Resolve(v.store, incoming, op)
		if err != nil {
			return nil, err
		}
	}

	if result.Outcome == merge.OutcomeAborted {
		return result, nil
	}

	rec := storage.NewTransferRecord(storage.DirectionImport, paths.Artifact, s.Name(), entries)
	rec.KeyPath = paths.Key
	rec.Cleared = replace
	rec.Outcome = result.Outcome.String()
	v.recordTransfer(rec)
	return result, nil
}

// recordTransfer stores rec in the metadata sidecar. The artifact is
// already written or merged, so a failure is only a warning.
func (v *Vault) recordTransfer(rec *storage.TransferRecord) {
	if err := v.db.RecordTransfer(rec); err != nil {
		v.Log.Warnf("could not record %s in metadata: %v", rec.Direction, err)
	}
}

// replaceAll makes resident an exact copy of incoming and empties incoming
func replaceAll(resident, incoming vault.Store) *merge.Result {
	defer incoming.Reset()

	result := &merge.Result{
		Outcome:    merge.OutcomeIncomingWins,
		Collisions: merge.Collisions(resident, incoming),
	}
	for _, key := range incoming.Keys() {
		old, ok := resident[key]
		switch {
		case !ok:
			result.Added = append(result.Added, key)
		case old != incoming[key]:
			result.Replaced = append(result.Replaced, key)
		}
	}

	resident.Reset()
	for key, value := range incoming {
		resident[key] = value
	}
	return result
}
