package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
)

const (
	RSABits        = 2048
	privateKeyType = "RSA PRIVATE KEY"

	// MaxOAEPPlaintext is the largest message RSA-OAEP-SHA256 can carry
	// under a RSABits modulus: k - 2*hLen - 2.
	MaxOAEPPlaintext = RSABits/8 - 2*sha256.Size - 2
)

var (
	ErrPlaintextTooLarge = errors.New("plaintext exceeds key capacity")
	ErrInvalidPrivateKey = errors.New("invalid or unsupported private key format")
)

// KeyPair is a one-time RSA key pair
type KeyPair struct {
	key *rsa.PrivateKey
}

// GenerateKeyPair creates a fresh RSABits key pair from random
func GenerateKeyPair(random io.Reader) (*KeyPair, error) {
	key, err := rsa.GenerateKey(random, RSABits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}
	return &KeyPair{key: key}, nil
}

// Capacity returns the largest plaintext EncryptOAEP accepts for this key
func (kp *KeyPair) Capacity() int {
	return kp.key.Size() - 2*sha256.Size - 2
}

// EncryptOAEP encrypts plaintext under the public half.
// Oversized input fails with ErrPlaintextTooLarge instead of being truncated.
func (kp *KeyPair) EncryptOAEP(plaintext []byte) ([]byte, error) {
	if len(plaintext) > kp.Capacity() {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrPlaintextTooLarge, len(plaintext), kp.Capacity())
	}
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, &kp.key.PublicKey, plaintext, nil)
}

// DecryptOAEP decrypts ciphertext with the private half
func (kp *KeyPair) DecryptOAEP(ciphertext []byte) ([]byte, error) {
	plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, kp.key, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// MarshalPrivateKey encodes the private key as a PKCS#1 PEM block
func (kp *KeyPair) MarshalPrivateKey() []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  privateKeyType,
		Bytes: x509.MarshalPKCS1PrivateKey(kp.key),
	})
}

// ParsePrivateKey loads a key pair from a PKCS#1 PEM block
func ParsePrivateKey(data []byte) (*KeyPair, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != privateKeyType {
		return nil, ErrInvalidPrivateKey
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return &KeyPair{key: key}, nil
}
