// Package transfer moves a vault between machines: Export encodes and
// encrypts the resident store into an artifact file, Import reads an
// artifact back into a candidate store.
//
// Neither operation merges anything. Import never touches the resident
// store; Export only empties it when asked to and the artifact was written.
package transfer

import (
	"fmt"
	"os"

	"github.com/illarion/passkeep/internal/crypto"
	"github.com/illarion/passkeep/internal/strategy"
	"github.com/illarion/passkeep/internal/vault"
)

// Stage identifies the pipeline step that failed
type Stage int

const (
	StageEncrypt Stage = iota
	StageWrite
	StageRead
	StageDecrypt
	StageDecode
)

func (s Stage) String() string {
	switch s {
	case StageEncrypt:
		return "encrypt"
	case StageWrite:
		return "write"
	case StageRead:
		return "read"
	case StageDecrypt:
		return "decrypt"
	case StageDecode:
		return "decode"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ExportError reports a failed export
type ExportError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed at %s: %v", e.Path, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// ImportError reports a failed import
type ImportError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import from %s failed at %s: %v", e.Path, e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Export encrypts store with s and writes the artifact to dest.
// With clearAfter set, store is emptied once the artifact is on disk.
func Export(store vault.Store, dest string, s strategy.Strategy, clearAfter bool) error {
	plaintext := vault.Encode(store)
	defer crypto.ClearBytes(plaintext)

	artifact, err := s.Encrypt(plaintext)
	if err != nil {
		return &ExportError{Stage: StageEncrypt, Path: dest, Err: err}
	}

	if err := os.WriteFile(dest, artifact, vault.FilePermSecure); err != nil {
		return &ExportError{Stage: StageWrite, Path: dest, Err: err}
	}

	if clearAfter {
		store.Reset()
	}
	return nil
}

// Import reads the artifact at src, decrypts it with s and decodes it into
// a candidate store
func Import(src string, s strategy.Strategy) (vault.Store, error) {
	artifact, err := os.ReadFile(src)
	if err != nil {
		return nil, &ImportError{Stage: StageRead, Path: src, Err: err}
	}

	plaintext, err := s.Decrypt(artifact)
	if err != nil {
		return nil, &ImportError{Stage: StageDecrypt, Path: src, Err: err}
	}
	defer crypto.ClearBytes(plaintext)

	store, err := vault.Decode(plaintext)
	if err != nil {
		return nil, &ImportError{Stage: StageDecode, Path: src, Err: err}
	}
	return store, nil
}
