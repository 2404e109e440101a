package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/illarion/passkeep/internal/git"
	"github.com/illarion/passkeep/internal/keyring"
	"github.com/illarion/passkeep/internal/storage"
)

// Status shows the vault location, entry count and transfer history
func Status() {
	v := OpenVault()
	defer v.Close()

	cfg := v.Config()
	sum, err := v.Summary()
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Vault:    %s\n", cfg.VaultPath)
	if _, err := os.Stat(cfg.VaultPath); os.IsNotExist(err) {
		fmt.Println("          (not created yet)")
	}
	fmt.Printf("Entries:  %d\n", v.Len())
	fmt.Printf("Created:  %s\n", sum.Created.Format(time.RFC3339))
	fmt.Printf("Modified: %s\n", sum.Modified.Format(time.RFC3339))

	fmt.Println()
	printTransfer("Last export", sum.LastExport)
	printTransfer("Last import", sum.LastImport)

	if keyring.HasPassphrase(sum.VaultID) {
		fmt.Println("\nPassphrase: stored in keyring")
	} else {
		fmt.Println("\nPassphrase: not stored")
	}

	fmt.Print(git.FormatLeakStatus(git.CheckLeaks(cfg.VaultPath, cfg.KeyPath)))
}

func printTransfer(label string, rec *storage.TransferRecord) {
	if rec == nil {
		fmt.Printf("%s: never\n", label)
		return
	}

	fmt.Printf("%s: %s (%d entries, %s)\n", label, rec.Time.Format(time.RFC3339), rec.Entries, rec.Strategy)
	fmt.Printf("   file: %s\n", rec.Path)
	if rec.KeyPath != "" {
		fmt.Printf("   key:  %s\n", rec.KeyPath)
	}
	if rec.Outcome != "" {
		fmt.Printf("   outcome: %s\n", rec.Outcome)
	}
	if rec.Cleared {
		fmt.Println("   vault cleared")
	}
}
