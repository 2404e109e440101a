// Package core provides the passkeep vault session and its commands.
//
// A Vault is opened from a resolved config, mutated in memory and written
// back with Flush. Nothing touches disk until Flush, so a failed command
// leaves the vault file as it was.
//
// Core operations include:
//   - Add/Update/Remove/Rename/Clear: single-key edits
//   - MultiAdd/MultiRemove/MultiUpdate: one secret or one action for many keys
//   - Export/Import: encrypted transfer with collision resolution on import
//
// Import resolves collisions through a merge.Operator: keep resident
// values, take incoming values, choose per key, or abort.
package core
