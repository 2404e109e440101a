package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// Copy puts the secret stored under key on the clipboard
func Copy(key string) {
	v := OpenVault()
	defer v.Close()

	secret, err := v.Get(key)
	if err != nil {
		HandleError(err)
	}

	if err := clipboard.WriteAll(secret); err != nil {
		HandleError(fmt.Errorf("failed to write clipboard: %w", err))
	}
	fmt.Printf("Copied %q to clipboard\n", key)
}

// Paste stores the clipboard contents under a new key
func Paste(key string) {
	secret, err := clipboard.ReadAll()
	if err != nil {
		HandleError(fmt.Errorf("failed to read clipboard: %w", err))
	}
	secret = strings.TrimRight(secret, "\r\n")

	v := OpenVault()
	defer v.Close()

	if err := v.Add(key, secret); err != nil {
		HandleError(err)
	}
	FlushOrExit(v)
	fmt.Printf("Added %q from clipboard\n", key)
}
