package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize     = 32     // Salt size in bytes
	KeySize      = 32     // AES-256 key size
	NonceSize    = 12     // GCM nonce size
	TagSize      = 16     // GCM authentication tag size
	DefaultIters = 210000 // Default PBKDF2 iterations (OWASP minimum)
)

var (
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrAuthFailed        = errors.New("authentication failed")
)

// KDF handles key derivation from passphrases
type KDF struct {
	Salt       []byte
	Iterations int
}

// NewKDF creates a new KDF with a random salt
func NewKDF(iterations int) (*KDF, error) {
	salt, err := GenerateRandom(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	if iterations <= 0 {
		iterations = DefaultIters
	}

	return &KDF{
		Salt:       salt,
		Iterations: iterations,
	}, nil
}

// DeriveKey derives an encryption key from a passphrase
func (k *KDF) DeriveKey(passphrase []byte) []byte {
	return pbkdf2.Key(passphrase, k.Salt, k.Iterations, KeySize, sha256.New)
}

// Encryptor provides authenticated encryption
type Encryptor struct {
	key []byte
}

// NewEncryptor creates a new encryptor with the given key
func NewEncryptor(key []byte) *Encryptor {
	return &Encryptor{
		key: key,
	}
}

func (e *Encryptor) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt encrypts plaintext using AES-256-GCM.
// additional is authenticated but not encrypted; it may be nil.
func (e *Encryptor) Encrypt(plaintext, additional []byte) ([]byte, error) {
	gcm, err := e.gcm()
	if err != nil {
		return nil, err
	}

	nonce, err := GenerateRandom(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Prepend nonce to ciphertext
	return gcm.Seal(nonce, nonce, plaintext, additional), nil
}

// Decrypt decrypts ciphertext produced by Encrypt
func (e *Encryptor) Decrypt(ciphertext, additional []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize+TagSize {
		return nil, ErrInvalidCiphertext
	}

	gcm, err := e.gcm()
	if err != nil {
		return nil, err
	}

	nonce := ciphertext[:NonceSize]
	plaintext, err := gcm.Open(nil, nonce, ciphertext[NonceSize:], additional)
	if err != nil {
		return nil, ErrAuthFailed
	}

	return plaintext, nil
}

// Destroy clears the encryptor's key from memory
func (e *Encryptor) Destroy() {
	ClearBytes(e.key)
}

// Seal encrypts plaintext under a key derived from passphrase and returns a
// self-contained artifact: salt || nonce || ciphertext || tag.
// The salt is bound as additional data so it cannot be swapped.
func Seal(passphrase, plaintext []byte, iterations int) ([]byte, error) {
	kdf, err := NewKDF(iterations)
	if err != nil {
		return nil, err
	}

	enc := NewEncryptor(kdf.DeriveKey(passphrase))
	defer enc.Destroy()

	sealed, err := enc.Encrypt(plaintext, kdf.Salt)
	if err != nil {
		return nil, err
	}

	artifact := make([]byte, 0, SaltSize+len(sealed))
	artifact = append(artifact, kdf.Salt...)
	return append(artifact, sealed...), nil
}

// Open reverses Seal. A wrong passphrase and a damaged artifact both
// return ErrAuthFailed or ErrInvalidCiphertext; they are not told apart.
func Open(passphrase, artifact []byte, iterations int) ([]byte, error) {
	if len(artifact) < SaltSize+NonceSize+TagSize {
		return nil, ErrInvalidCiphertext
	}
	if iterations <= 0 {
		iterations = DefaultIters
	}

	kdf := &KDF{
		Salt:       artifact[:SaltSize],
		Iterations: iterations,
	}

	enc := NewEncryptor(kdf.DeriveKey(passphrase))
	defer enc.Destroy()

	return enc.Decrypt(artifact[SaltSize:], kdf.Salt)
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
