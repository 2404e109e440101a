package storage

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/illarion/passkeep/internal/crypto"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket    = []byte("config")    // Version, vault ID, timestamps
	TransfersBucket = []byte("transfers") // Last export / import records
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigVaultID  = []byte("vault_id")
)

// Transfer keys
var (
	LastExport = []byte("last_export")
	LastImport = []byte("last_import")
)

const openTimeout = time.Second

// Storage provides BBolt-based metadata storage for a vault
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a metadata database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure if it does not exist yet.
// Calling it on an initialized database is a no-op.
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, TransfersBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}

		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// UpdateModified updates the last modified timestamp
func (s *Storage) UpdateModified() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		modified, _ := time.Now().MarshalBinary()
		return config.Put(ConfigModified, modified)
	})
}

func getTime(config *bolt.Bucket, key []byte) (time.Time, error) {
	var t time.Time
	data := config.Get(key)
	if data == nil {
		return t, fmt.Errorf("%s not found", key)
	}
	return t, t.UnmarshalBinary(data)
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b, err := crypto.GenerateRandom(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// RecordTransfer stores rec as the latest transfer in its direction
func (s *Storage) RecordTransfer(rec *TransferRecord) error {
	var key []byte
	switch rec.Direction {
	case DirectionExport:
		key = LastExport
	case DirectionImport:
		key = LastImport
	default:
		return fmt.Errorf("unknown transfer direction %q", rec.Direction)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		transfers := tx.Bucket(TransfersBucket)
		if transfers == nil {
			return fmt.Errorf("transfers bucket not found")
		}
		return transfers.Put(key, data)
	})
}

// Summary collects all metadata in one read transaction
func (s *Storage) Summary() (*Summary, error) {
	sum := &Summary{}
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		sum.VaultID = string(config.Get(ConfigVaultID))

		var err error
		if sum.Created, err = getTime(config, ConfigCreated); err != nil {
			return err
		}
		if sum.Modified, err = getTime(config, ConfigModified); err != nil {
			return err
		}

		transfers := tx.Bucket(TransfersBucket)
		if transfers == nil {
			return nil
		}
		for key, dst := range map[string]**TransferRecord{
			string(LastExport): &sum.LastExport,
			string(LastImport): &sum.LastImport,
		} {
			data := transfers.Get([]byte(key))
			if data == nil {
				continue
			}
			rec := &TransferRecord{}
			if err := json.Unmarshal(data, rec); err != nil {
				return err
			}
			*dst = rec
		}
		return nil
	})
	return sum, err
}
