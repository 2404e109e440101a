package vault

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	Separator = '\x00'
	Newline   = '\n'
)

var (
	ErrCorrupt       = errors.New("invalid file")
	ErrInvalidKey    = errors.New("invalid key")
	ErrInvalidSecret = errors.New("invalid secret")
)

// Store maps keys to secrets
type Store map[string]string

// New returns an empty store
func New() Store {
	return make(Store)
}

// Keys returns all keys in sorted order
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy of the store
func (s Store) Clone() Store {
	c := make(Store, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Equal reports whether both stores hold the same key/value set
func (s Store) Equal(other Store) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Reset removes every entry in place
func (s Store) Reset() {
	for k := range s {
		delete(s, k)
	}
}

// ValidateKey rejects keys that would break the record encoding
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if strings.ContainsRune(key, Separator) || strings.ContainsRune(key, Newline) {
		return fmt.Errorf("%w: %q contains a NUL or newline", ErrInvalidKey, key)
	}
	return nil
}

// ValidateSecret rejects secrets that would break the record encoding
func ValidateSecret(secret string) error {
	if strings.ContainsRune(secret, Separator) || strings.ContainsRune(secret, Newline) {
		return fmt.Errorf("%w: contains a NUL or newline", ErrInvalidSecret)
	}
	return nil
}

// Encode serializes the store, one record per entry.
// Records are written in key order so repeated saves produce identical files.
func Encode(s Store) []byte {
	var buf bytes.Buffer
	for _, k := range s.Keys() {
		buf.WriteString(k)
		buf.WriteByte(Separator)
		buf.WriteString(s[k])
		buf.WriteByte(Newline)
	}
	return buf.Bytes()
}

// Decode parses encoded records into a new store.
// Empty lines are skipped. Any other line that does not split into exactly
// a key and a secret fails the whole decode; no partial store is returned.
func Decode(data []byte) (Store, error) {
	s := New()
	for i, line := range bytes.Split(data, []byte{Newline}) {
		if len(line) == 0 {
			continue
		}
		fields := bytes.Split(line, []byte{Separator})
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrCorrupt, i+1, len(fields))
		}
		if len(fields[0]) == 0 {
			return nil, fmt.Errorf("%w: line %d has an empty key", ErrCorrupt, i+1)
		}
		s[string(fields[0])] = string(fields[1])
	}
	return s, nil
}
