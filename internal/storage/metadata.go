package storage

import (
	"time"
)

// Transfer directions recorded in the transfers bucket
const (
	DirectionExport = "export"
	DirectionImport = "import"
)

// TransferRecord describes one completed export or import
type TransferRecord struct {
	Direction string    `json:"direction"`
	Path      string    `json:"path"`
	KeyPath   string    `json:"keyPath,omitempty"`
	Strategy  string    `json:"strategy"`
	Entries   int       `json:"entries"`
	Cleared   bool      `json:"cleared,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Time      time.Time `json:"time"`
}

// NewTransferRecord creates a record stamped with the current time
func NewTransferRecord(direction, path, strategy string, entries int) *TransferRecord {
	return &TransferRecord{
		Direction: direction,
		Path:      path,
		Strategy:  strategy,
		Entries:   entries,
		Time:      time.Now(),
	}
}

// Summary holds everything status shows about a vault
type Summary struct {
	VaultID    string
	Created    time.Time
	Modified   time.Time
	LastExport *TransferRecord
	LastImport *TransferRecord
}
