// Package crypto provides the cryptographic primitives behind vault transfers.
//
// Passphrase artifacts use AES-256-GCM with:
//   - 32-byte key derived from the passphrase via PBKDF2-HMAC-SHA256
//   - 32-byte random salt and 12-byte random nonce, both stored in the artifact
//   - Authenticated encryption: any modified byte makes Open fail
//
// Artifact layout: salt(32) || nonce(12) || ciphertext || tag(16).
// The artifact carries no variant tag and no KDF parameters.
//
// Key-pair artifacts use RSA-OAEP with SHA-256 under a freshly generated
// 2048-bit key. The private key is exported as a PKCS#1 PEM block.
// OAEP limits a single message to MaxOAEPPlaintext bytes.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Encryptor.Destroy() when done with encryption operations
package crypto
