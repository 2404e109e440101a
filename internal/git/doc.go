// Package git checks whether passkeep's plaintext files could leak through
// a git work tree.
//
// Checks performed for the vault file and exported private keys:
//   - Whether the file is tracked by git (should not be)
//   - Whether the file is matched by .gitignore (should be)
//
// The checks only warn. A directory outside any repository passes.
package git
