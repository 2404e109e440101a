package cmd

import "fmt"

// Add stores a new secret, prompting for it when not given
func Add(args []string) {
	if len(args) < 1 {
		usageError("add <key> [secret]")
	}

	v := OpenVault()
	defer v.Close()

	if err := v.Add(args[0], readSecret(args, 1)); err != nil {
		HandleError(err)
	}
	FlushOrExit(v)
	Log.Infof("added %q", args[0])
}

// Update replaces the secret of an existing key
func Update(args []string) {
	if len(args) < 1 {
		usageError("update <key> [secret]")
	}

	v := OpenVault()
	defer v.Close()

	if _, err := v.Get(args[0]); err != nil {
		HandleError(err)
	}
	if err := v.Update(args[0], readSecret(args, 1)); err != nil {
		HandleError(err)
	}
	FlushOrExit(v)
	Log.Infof("updated %q", args[0])
}

// Remove deletes a key after confirmation
func Remove(key string, yes bool) {
	v := OpenVault()
	defer v.Close()

	if _, err := v.Get(key); err != nil {
		HandleError(err)
	}

	if !yes {
		ok, err := terminal.Confirm(fmt.Sprintf("Remove %q?", key))
		if err != nil {
			HandleError(err)
		}
		if !ok {
			fmt.Println("Cancelled")
			return
		}
	}

	if err := v.Remove(key); err != nil {
		HandleError(err)
	}
	FlushOrExit(v)
	Log.Infof("removed %q", key)
}

// List prints every key in sorted order
func List() {
	v := OpenVault()
	defer v.Close()

	for _, key := range v.Keys() {
		fmt.Println(key)
	}
	Log.Infof("%d entries", v.Len())
}

// Show prints the secret stored under key
func Show(key string) {
	v := OpenVault()
	defer v.Close()

	secret, err := v.Get(key)
	if err != nil {
		HandleError(err)
	}
	fmt.Println(secret)
}

// Rename moves a secret to a new key
func Rename(oldKey, newKey string) {
	v := OpenVault()
	defer v.Close()

	if err := v.Rename(oldKey, newKey); err != nil {
		HandleError(err)
	}
	FlushOrExit(v)
	Log.Infof("renamed %q to %q", oldKey, newKey)
}

// Clear empties the vault after confirmation
func Clear(yes bool) {
	v := OpenVault()
	defer v.Close()

	if v.Len() == 0 {
		fmt.Println("Vault is already empty")
		return
	}

	if !yes {
		ok, err := terminal.Confirm(fmt.Sprintf("Remove all %d entries?", v.Len()))
		if err != nil {
			HandleError(err)
		}
		if !ok {
			fmt.Println("Cancelled")
			return
		}
	}

	v.Clear()
	FlushOrExit(v)
	Log.Infof("vault cleared")
}
