package strategy

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/illarion/passkeep/internal/crypto"
	"github.com/illarion/passkeep/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIters = 1000

// fixedSource returns the same passphrase for every prompt and records
// whether confirmation was requested
type fixedSource struct {
	pass     string
	err      error
	confirms []bool
}

func (f *fixedSource) AskPassword(confirm bool) (string, error) {
	f.confirms = append(f.confirms, confirm)
	return f.pass, f.err
}

func TestPassphrase_RoundTrip(t *testing.T) {
	src := &fixedSource{pass: "correct horse"}
	s := Passphrase{Source: src, Iterations: testIters}

	payload := []byte("mail\x00hunter2\nbank\x001234\n")
	artifact, err := s.Encrypt(payload)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(artifact, []byte("hunter2")))

	got, err := s.Decrypt(artifact)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	assert.Equal(t, []bool{true, false}, src.confirms, "encrypt confirms, decrypt does not")
}

func TestPassphrase_WrongPassphrase(t *testing.T) {
	artifact, err := Passphrase{Source: &fixedSource{pass: "right"}, Iterations: testIters}.Encrypt([]byte("data"))
	require.NoError(t, err)

	_, err = Passphrase{Source: &fixedSource{pass: "wrong"}, Iterations: testIters}.Decrypt(artifact)
	assert.ErrorIs(t, err, ErrEncryption)
}

func TestPassphrase_TamperDetection(t *testing.T) {
	s := Passphrase{Source: &fixedSource{pass: "pw"}, Iterations: testIters}
	artifact, err := s.Encrypt([]byte("a\x001\n"))
	require.NoError(t, err)

	for i := range artifact {
		for bit := 0; bit < 8; bit += 3 {
			tampered := append([]byte(nil), artifact...)
			tampered[i] ^= 1 << bit

			_, err := s.Decrypt(tampered)
			require.ErrorIs(t, err, ErrEncryption, "byte %d bit %d", i, bit)
		}
	}
}

func TestPassphrase_SourceErrors(t *testing.T) {
	sourceErr := errors.New("password mismatch")
	s := Passphrase{Source: &fixedSource{err: sourceErr}, Iterations: testIters}

	_, err := s.Encrypt([]byte("data"))
	assert.ErrorIs(t, err, sourceErr)
	assert.NotErrorIs(t, err, ErrEncryption)

	_, err = s.Decrypt([]byte("data"))
	assert.ErrorIs(t, err, sourceErr)
}

func TestPassphrase_EmptyPassphrase(t *testing.T) {
	s := Passphrase{Source: &fixedSource{pass: ""}, Iterations: testIters}
	_, err := s.Encrypt([]byte("data"))
	assert.ErrorIs(t, err, ErrEmptyPassphrase)
}

func TestKeyPair_RoundTrip(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "export.key")
	s := KeyPair{KeyPath: keyPath}

	payload := []byte("mail\x00hunter2\n")
	ciphertext, err := s.Encrypt(payload)
	require.NoError(t, err)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(vault.FilePermSecure), info.Mode().Perm())

	got, err := s.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestKeyPair_FreshKeyPerExport(t *testing.T) {
	dir := t.TempDir()
	first := KeyPair{KeyPath: filepath.Join(dir, "first.key")}
	second := KeyPair{KeyPath: filepath.Join(dir, "second.key")}

	c1, err := first.Encrypt([]byte("a\x001\n"))
	require.NoError(t, err)
	_, err = second.Encrypt([]byte("a\x001\n"))
	require.NoError(t, err)

	k1, err := os.ReadFile(first.KeyPath)
	require.NoError(t, err)
	k2, err := os.ReadFile(second.KeyPath)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	// Swapped capsule halves fail as a generic encryption error
	_, err = second.Decrypt(c1)
	assert.ErrorIs(t, err, ErrEncryption)
}

func TestKeyPair_TooLarge(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "export.key")
	s := KeyPair{KeyPath: keyPath}

	_, err := s.Encrypt(make([]byte, crypto.MaxOAEPPlaintext+1))
	assert.ErrorIs(t, err, ErrEncryption)
	assert.ErrorIs(t, err, crypto.ErrPlaintextTooLarge)

	_, statErr := os.Stat(keyPath)
	assert.True(t, os.IsNotExist(statErr), "no key is written for a rejected payload")
}

func TestKeyPair_PersistError(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "missing-dir", "export.key")

	_, err := KeyPair{KeyPath: keyPath}.Encrypt([]byte("data"))

	var persistErr *KeyPersistError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, keyPath, persistErr.Path)
	assert.NotErrorIs(t, err, ErrEncryption)
}

func TestKeyPair_LoadError(t *testing.T) {
	dir := t.TempDir()

	var loadErr *KeyLoadError
	_, err := KeyPair{KeyPath: filepath.Join(dir, "absent.key")}.Decrypt([]byte("data"))
	require.ErrorAs(t, err, &loadErr)

	bad := filepath.Join(dir, "bad.key")
	require.NoError(t, os.WriteFile(bad, []byte("not a key"), 0600))
	_, err = KeyPair{KeyPath: bad}.Decrypt([]byte("data"))
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, crypto.ErrInvalidPrivateKey)
}
