// Package strategy turns an encoded vault into a protected transfer artifact
// and back.
//
// There are exactly two strategies: Passphrase (authenticated symmetric
// encryption under a passphrase-derived key) and KeyPair (RSA-OAEP under a
// key pair generated per export, with the private key written to a separate
// file). The Strategy interface is sealed to those two.
package strategy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	"github.com/illarion/passkeep/internal/crypto"
	"github.com/illarion/passkeep/internal/vault"
)

var (
	// ErrEncryption covers every cryptographic failure: wrong passphrase,
	// damaged or mismatched artifact, oversized plaintext, key generation.
	ErrEncryption = errors.New("failed to encrypt/decrypt data")

	ErrEmptyPassphrase = errors.New("empty passphrase")
)

// Strategy encrypts and decrypts transfer artifacts
type Strategy interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
	Name() string

	sealed()
}

// KeyPersistError reports that the private key of a key-pair export could
// not be written
type KeyPersistError struct {
	Path string
	Err  error
}

func (e *KeyPersistError) Error() string {
	return fmt.Sprintf("could not write to %q: %v", e.Path, e.Err)
}

func (e *KeyPersistError) Unwrap() error { return e.Err }

// KeyLoadError reports that the private key of a key-pair import could not
// be read or parsed
type KeyLoadError struct {
	Path string
	Err  error
}

func (e *KeyLoadError) Error() string {
	return fmt.Sprintf("could not read from %q: %v", e.Path, e.Err)
}

func (e *KeyLoadError) Unwrap() error { return e.Err }

// PassphraseSource supplies the passphrase. With confirm set it must return
// an error when two independently entered values disagree.
type PassphraseSource interface {
	AskPassword(confirm bool) (string, error)
}

// Passphrase encrypts with AES-256-GCM under a PBKDF2-derived key
type Passphrase struct {
	Source     PassphraseSource
	Iterations int // 0 means crypto.DefaultIters
}

func (Passphrase) sealed() {}

func (Passphrase) Name() string { return "passphrase" }

func (p Passphrase) passphrase(confirm bool) ([]byte, error) {
	pass, err := p.Source.AskPassword(confirm)
	if err != nil {
		return nil, err
	}
	if pass == "" {
		return nil, ErrEmptyPassphrase
	}
	return []byte(pass), nil
}

// Encrypt asks for a confirmed passphrase and seals plaintext under it
func (p Passphrase) Encrypt(plaintext []byte) ([]byte, error) {
	pass, err := p.passphrase(true)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(pass)

	artifact, err := crypto.Seal(pass, plaintext, p.Iterations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return artifact, nil
}

// Decrypt asks for the passphrase once and opens the artifact.
// A wrong passphrase and a damaged artifact fail the same way.
func (p Passphrase) Decrypt(ciphertext []byte) ([]byte, error) {
	pass, err := p.passphrase(false)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(pass)

	plaintext, err := crypto.Open(pass, ciphertext, p.Iterations)
	if err != nil {
		return nil, ErrEncryption
	}
	return plaintext, nil
}

// KeyPair encrypts under a fresh RSA key pair and keeps the private key in
// a separate file. Plaintext is limited to crypto.MaxOAEPPlaintext bytes.
type KeyPair struct {
	KeyPath string
}

func (KeyPair) sealed() {}

func (KeyPair) Name() string { return "key pair" }

// Encrypt generates a new key pair, encrypts plaintext under its public
// half and writes the private half to KeyPath
func (k KeyPair) Encrypt(plaintext []byte) ([]byte, error) {
	if len(plaintext) > crypto.MaxOAEPPlaintext {
		return nil, fmt.Errorf("%w: %w (%d bytes, limit %d)",
			ErrEncryption, crypto.ErrPlaintextTooLarge, len(plaintext), crypto.MaxOAEPPlaintext)
	}

	kp, err := crypto.GenerateKeyPair(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	ciphertext, err := kp.EncryptOAEP(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	pemKey := kp.MarshalPrivateKey()
	defer crypto.ClearBytes(pemKey)

	if err := os.WriteFile(k.KeyPath, pemKey, vault.FilePermSecure); err != nil {
		return nil, &KeyPersistError{Path: k.KeyPath, Err: err}
	}

	return ciphertext, nil
}

// Decrypt loads the private key from KeyPath and decrypts ciphertext.
// A key from a different export fails with ErrEncryption.
func (k KeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	data, err := os.ReadFile(k.KeyPath)
	if err != nil {
		return nil, &KeyLoadError{Path: k.KeyPath, Err: err}
	}
	defer crypto.ClearBytes(data)

	kp, err := crypto.ParsePrivateKey(data)
	if err != nil {
		return nil, &KeyLoadError{Path: k.KeyPath, Err: err}
	}

	plaintext, err := kp.DecryptOAEP(ciphertext)
	if err != nil {
		return nil, ErrEncryption
	}
	return plaintext, nil
}
