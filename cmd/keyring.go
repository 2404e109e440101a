package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/passkeep/internal/keyring"
)

// KeyringSave stores the transfer passphrase in the OS keyring
func KeyringSave() {
	v := OpenVault()
	defer v.Close()

	passphrase, err := terminal.AskPassword(true)
	if err != nil {
		HandleError(err)
	}
	if passphrase == "" {
		fmt.Fprintln(os.Stderr, "Error: passphrase must not be empty")
		os.Exit(1)
	}

	if err := keyring.SavePassphrase(v.VaultID(), passphrase); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Passphrase saved to keyring")
}

// KeyringDelete removes the transfer passphrase from the OS keyring
func KeyringDelete() {
	v := OpenVault()
	defer v.Close()

	if !keyring.HasPassphrase(v.VaultID()) {
		fmt.Println("No passphrase stored in keyring")
		return
	}

	if err := keyring.DeletePassphrase(v.VaultID()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete from keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Passphrase removed from keyring")
}

// KeyringStatus checks if a passphrase is stored in the keyring
func KeyringStatus() {
	v := OpenVault()
	defer v.Close()

	if keyring.HasPassphrase(v.VaultID()) {
		fmt.Println("Passphrase: stored in keyring")
	} else {
		fmt.Println("Passphrase: not stored")
	}
}
