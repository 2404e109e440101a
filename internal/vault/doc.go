// Package vault holds the in-memory credential store and its on-disk encoding.
//
// The vault file is a sequence of records, one per entry:
//
//	key \x00 secret \n
//
// There is no header and no version tag. Decoding is strict: a single
// malformed line fails the whole load, so a truncated or hostile file can
// never inject or drop entries silently.
//
// Keys and secrets must not contain NUL or newline, otherwise the encoding
// becomes ambiguous. ValidateKey and ValidateSecret enforce that at every
// point where user input enters the store.
package vault
