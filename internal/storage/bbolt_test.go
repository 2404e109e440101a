package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), ".data.meta")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	return db
}

func summary(t *testing.T, db *Storage) *Summary {
	t.Helper()
	sum, err := db.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	return sum
}

func TestInitialize(t *testing.T) {
	db := openTest(t)

	sum := summary(t, db)
	if sum.Created.IsZero() || sum.Modified.IsZero() {
		t.Error("Initialize should stamp created and modified times")
	}
	if !sum.Created.Equal(sum.Modified) {
		t.Errorf("Fresh database: created %v != modified %v", sum.Created, sum.Modified)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	db := openTest(t)
	created := summary(t, db).Created

	time.Sleep(10 * time.Millisecond)
	if err := db.Initialize(); err != nil {
		t.Fatalf("Second Initialize failed: %v", err)
	}

	if again := summary(t, db).Created; !created.Equal(again) {
		t.Errorf("Created time changed on re-initialize: %v -> %v", created, again)
	}
}

func TestSummary_Uninitialized(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), ".data.meta"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Summary(); err == nil {
		t.Error("Summary of an uninitialized database should fail")
	}
}

func TestUpdateModified(t *testing.T) {
	db := openTest(t)
	before := summary(t, db).Modified

	time.Sleep(10 * time.Millisecond)
	if err := db.UpdateModified(); err != nil {
		t.Fatalf("Failed to update modified time: %v", err)
	}

	after := summary(t, db)
	if !after.Modified.After(before) {
		t.Errorf("Modified time should advance: %v -> %v", before, after.Modified)
	}
	if after.Created.After(before) {
		t.Error("UpdateModified should not touch the created time")
	}
}

func TestVaultID(t *testing.T) {
	db := openTest(t)

	if _, err := db.GetVaultID(); err == nil {
		t.Error("Fresh database should have no vault ID")
	}

	id, err := db.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to create vault ID: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("Vault ID should be 32 hex chars, got %q", id)
	}

	again, err := db.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to get vault ID: %v", err)
	}
	if again != id {
		t.Errorf("Vault ID changed: %s -> %s", id, again)
	}
	if got := summary(t, db).VaultID; got != id {
		t.Errorf("Summary vault ID = %q, want %q", got, id)
	}
}

func TestTransferRecords(t *testing.T) {
	db := openTest(t)

	if sum := summary(t, db); sum.LastExport != nil || sum.LastImport != nil {
		t.Fatalf("Expected no transfer records, got %+v", sum)
	}

	export := NewTransferRecord(DirectionExport, "/tmp/data_exported", "key pair", 3)
	export.KeyPath = "/tmp/data_exported.key"
	export.Cleared = true
	if err := db.RecordTransfer(export); err != nil {
		t.Fatalf("RecordTransfer failed: %v", err)
	}

	imp := NewTransferRecord(DirectionImport, "/tmp/in", "passphrase", 5)
	imp.Outcome = "resolved per key"
	if err := db.RecordTransfer(imp); err != nil {
		t.Fatalf("RecordTransfer failed: %v", err)
	}

	sum := summary(t, db)
	if sum.LastExport == nil || sum.LastExport.KeyPath != "/tmp/data_exported.key" || !sum.LastExport.Cleared {
		t.Errorf("Unexpected last export: %+v", sum.LastExport)
	}
	if sum.LastImport == nil || sum.LastImport.Entries != 5 || sum.LastImport.Outcome != "resolved per key" {
		t.Errorf("Unexpected last import: %+v", sum.LastImport)
	}
	if sum.VaultID != "" {
		t.Errorf("No vault ID was created, got %q", sum.VaultID)
	}
}

func TestRecordTransfer_UnknownDirection(t *testing.T) {
	db := openTest(t)

	if err := db.RecordTransfer(&TransferRecord{Direction: "sideways"}); err == nil {
		t.Error("Expected error for unknown direction")
	}
}
