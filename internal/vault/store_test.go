package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		store Store
	}{
		{name: "empty", store: Store{}},
		{name: "single entry", store: Store{"mail": "hunter2"}},
		{name: "empty secret", store: Store{"blank": ""}},
		{
			name: "many entries",
			store: Store{
				"github":      "ghp_123",
				"bank":        "p@ss w0rd!",
				"unicode":     "пароль 密码",
				"tabs\tspace": "a\tb c",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(Encode(tt.store))
			require.NoError(t, err)
			assert.True(t, tt.store.Equal(decoded), "got %v, want %v", decoded, tt.store)
		})
	}
}

func TestEncode_Format(t *testing.T) {
	got := Encode(Store{"a": "1"})
	assert.Equal(t, []byte("a\x001\n"), got)
}

func TestDecode_SkipsEmptyLines(t *testing.T) {
	s, err := Decode([]byte("\n\na\x001\n\n\nb\x002\n"))
	require.NoError(t, err)
	assert.Equal(t, Store{"a": "1", "b": "2"}, s)
}

func TestDecode_MissingTrailingNewline(t *testing.T) {
	s, err := Decode([]byte("a\x001"))
	require.NoError(t, err)
	assert.Equal(t, Store{"a": "1"}, s)
}

func TestDecode_Corruption(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no separator", data: "a\x001\nbroken\n"},
		{name: "too many separators", data: "a\x001\x002\n"},
		{name: "empty key", data: "\x00secret\n"},
		{name: "corrupt first line", data: "garbage\na\x001\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorrupt))
			assert.Nil(t, s, "no partial store may be returned")
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, ValidateKey("mail"))
	assert.ErrorIs(t, ValidateKey(""), ErrInvalidKey)
	assert.ErrorIs(t, ValidateKey("a\x00b"), ErrInvalidKey)
	assert.ErrorIs(t, ValidateKey("a\nb"), ErrInvalidKey)

	assert.NoError(t, ValidateSecret(""))
	assert.NoError(t, ValidateSecret("p@ss"))
	assert.ErrorIs(t, ValidateSecret("a\x00b"), ErrInvalidSecret)
	assert.ErrorIs(t, ValidateSecret("a\nb"), ErrInvalidSecret)
}

func TestStore_Helpers(t *testing.T) {
	s := Store{"b": "2", "a": "1", "c": "3"}
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())

	c := s.Clone()
	c["a"] = "changed"
	assert.Equal(t, "1", s["a"], "clone must not alias")
	assert.False(t, s.Equal(c))

	s.Reset()
	assert.Empty(t, s)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".data")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, s, "missing file loads as empty store")

	want := Store{"mail": "hunter2", "bank": "1234"}
	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePermSecure), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".data")
	require.NoError(t, os.WriteFile(path, []byte("broken line\n"), 0600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}
