package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTransferPaths_Validate(t *testing.T) {
	tmpDir := t.TempDir()
	vault := filepath.Join(tmpDir, ".data")
	artifact := filepath.Join(tmpDir, "data_exported")
	key := artifact + ".key"

	subdir := filepath.Join(tmpDir, "subdir")
	if err := os.Mkdir(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		paths   TransferPaths
		errType error
	}{
		{"passphrase transfer", TransferPaths{Vault: vault, Artifact: artifact}, nil},
		{"key pair transfer", TransferPaths{Vault: vault, Artifact: artifact, Key: key}, nil},
		{"dot segments", TransferPaths{Vault: vault, Artifact: filepath.Join(tmpDir, "a", "..", "out")}, nil},

		{"empty vault", TransferPaths{Artifact: artifact}, ErrEmptyPath},
		{"empty artifact", TransferPaths{Vault: vault}, ErrEmptyPath},
		{"artifact is directory", TransferPaths{Vault: vault, Artifact: subdir}, ErrIsDirectory},
		{"key is directory", TransferPaths{Vault: vault, Artifact: artifact, Key: subdir}, ErrIsDirectory},
		{"artifact over vault", TransferPaths{Vault: vault, Artifact: vault}, ErrPathOverlap},
		{"artifact over vault after clean", TransferPaths{Vault: vault, Artifact: filepath.Join(tmpDir, ".", ".data")}, ErrPathOverlap},
		{"key over artifact", TransferPaths{Vault: vault, Artifact: artifact, Key: artifact}, ErrPathOverlap},
		{"key over vault", TransferPaths{Vault: vault, Artifact: artifact, Key: vault}, ErrPathOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.paths.Validate()

			if tt.errType != nil {
				if !errors.Is(err, tt.errType) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.errType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if !filepath.IsAbs(got.Vault) || !filepath.IsAbs(got.Artifact) {
				t.Errorf("Validate() should return absolute paths, got %+v", got)
			}
			if tt.paths.Key == "" && got.Key != "" {
				t.Errorf("Validate() invented a key path: %q", got.Key)
			}
		})
	}
}

func TestNormalize_Relative(t *testing.T) {
	got, err := Normalize("data_exported")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	wd, _ := os.Getwd()
	if want := filepath.Join(wd, "data_exported"); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}
