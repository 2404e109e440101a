package cmd

import (
	"fmt"
	"strings"
)

// MultiAdd stores one secret under several keys. Existing keys go through
// the interactive collision menu.
func MultiAdd(keys []string) {
	if len(keys) == 0 {
		usageError("madd <key> [key...]")
	}

	v := OpenVault()
	defer v.Close()

	secret := readSecret(nil, 0)
	result, err := v.MultiAdd(keys, secret, terminal)
	if err != nil {
		HandleError(err)
	}
	if printResult(result) {
		FlushOrExit(v)
	}
}

// MultiRemove deletes several keys after one confirmation
func MultiRemove(keys []string, yes bool) {
	if len(keys) == 0 {
		usageError("mrm <key> [key...]")
	}

	v := OpenVault()
	defer v.Close()

	if !yes {
		ok, err := terminal.Confirm(fmt.Sprintf("Remove %s?", strings.Join(keys, ", ")))
		if err != nil {
			HandleError(err)
		}
		if !ok {
			fmt.Println("Cancelled")
			return
		}
	}

	for _, key := range v.MultiRemove(keys) {
		Log.Warnf("%q: No passwords for that key", key)
	}
	FlushOrExit(v)
}

// MultiUpdate sets one new secret on several existing keys
func MultiUpdate(keys []string) {
	if len(keys) == 0 {
		usageError("mupd <key> [key...]")
	}

	v := OpenVault()
	defer v.Close()

	missing, err := v.MultiUpdate(keys, readSecret(nil, 0))
	if err != nil {
		HandleError(err)
	}
	for _, key := range missing {
		Log.Warnf("%q: No passwords for that key", key)
	}
	FlushOrExit(v)
}
