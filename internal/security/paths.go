// Package security validates the file paths a transfer touches before any
// secret is written or read.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrEmptyPath   = errors.New("empty path not allowed")
	ErrIsDirectory = errors.New("path is a directory")
	ErrPathOverlap = errors.New("paths must differ")
)

// TransferPaths are the files involved in one export or import
type TransferPaths struct {
	Vault    string // the resident vault file
	Artifact string // encrypted transfer file
	Key      string // private key file, empty for passphrase transfers
}

// Normalize returns an absolute, cleaned form of userPath.
// Relative paths are resolved against the current directory.
func Normalize(userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}

	abs, err := filepath.Abs(userPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return filepath.Clean(abs), nil
}

// Validate normalizes every path and rejects directories and overlaps.
// A transfer that writes its artifact over the vault or its key over the
// artifact would destroy the data it is moving.
func (p TransferPaths) Validate() (TransferPaths, error) {
	var out TransferPaths
	var err error

	if out.Vault, err = Normalize(p.Vault); err != nil {
		return out, fmt.Errorf("vault: %w", err)
	}
	if out.Artifact, err = Normalize(p.Artifact); err != nil {
		return out, fmt.Errorf("transfer file: %w", err)
	}
	if p.Key != "" {
		if out.Key, err = Normalize(p.Key); err != nil {
			return out, fmt.Errorf("key file: %w", err)
		}
	}

	for _, path := range []string{out.Artifact, out.Key} {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return out, fmt.Errorf("%w: %s", ErrIsDirectory, path)
		}
	}

	if out.Artifact == out.Vault {
		return out, fmt.Errorf("%w: transfer file is the vault %s", ErrPathOverlap, out.Vault)
	}
	if out.Key != "" && (out.Key == out.Vault || out.Key == out.Artifact) {
		return out, fmt.Errorf("%w: key file %s", ErrPathOverlap, out.Key)
	}

	return out, nil
}
