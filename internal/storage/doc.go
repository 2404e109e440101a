// Package storage keeps vault metadata in a BBolt database next to the
// vault file (".data.meta").
//
// Database structure uses two buckets:
//   - config: format version, vault ID, created/modified timestamps
//   - transfers: the most recent export and import (path, strategy, time)
//
// No secrets are ever written here. The vault ID keys the OS keyring entry
// that caches the transfer passphrase; status reads everything else.
package storage
