// Copyright (c) 2024 Wiregram Authors

package keys_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiregram/wiregram/internal/keys"
)

func TestStoreMatch(t *testing.T) {
	key := testPrivateKey(t).Public()
	store := keys.NewStore(key)

	found, err := store.Match([]int64{999, key.Fingerprint()})
	require.NoError(t, err)
	assert.Equal(t, key.Fingerprint(), found.Fingerprint())
}

func TestStoreMatchPrefersServerOrder(t *testing.T) {
	first, err := keys.Generate(2048)
	require.NoError(t, err)
	second := testPrivateKey(t)

	store := keys.NewStore(first.Public(), second.Public())

	// the server lists second's fingerprint before first's
	found, err := store.Match([]int64{second.Public().Fingerprint(), first.Public().Fingerprint()})
	require.NoError(t, err)
	assert.Equal(t, second.Public().Fingerprint(), found.Fingerprint())
}

func TestStoreMatchNotFound(t *testing.T) {
	store := keys.NewStore(testPrivateKey(t).Public())

	_, err := store.Match([]int64{123456789})
	require.Error(t, err)
}

func TestStoreMatchEmptyFingerprints(t *testing.T) {
	store := keys.NewStore(testPrivateKey(t).Public())

	_, err := store.Match(nil)
	require.Error(t, err)
}

func TestStoreDrop(t *testing.T) {
	store := keys.NewStore(testPrivateKey(t).Public())
	require.Equal(t, 1, store.Len())

	store.Drop()
	assert.Equal(t, 0, store.Len())
}

func TestStoreLoadFile(t *testing.T) {
	public := testPrivateKey(t).Public()

	path := filepath.Join(t.TempDir(), "keys.pem")
	require.NoError(t, os.WriteFile(path, public.ToPEM(), 0o600))

	store := keys.NewStore()
	require.NoError(t, store.LoadFile(path))
	require.Equal(t, 1, store.Len())

	found, err := store.Match([]int64{public.Fingerprint()})
	require.NoError(t, err)
	assert.Equal(t, public.Fingerprint(), found.Fingerprint())
}

func TestStoreLoadFileMissing(t *testing.T) {
	store := keys.NewStore()
	err := store.LoadFile(filepath.Join(t.TempDir(), "nope.pem"))
	assert.Error(t, err)
}

func TestReadFromFileMultipleKeys(t *testing.T) {
	first, err := keys.Generate(2048)
	require.NoError(t, err)
	second := testPrivateKey(t).Public()

	data := append(first.Public().ToPEM(), second.ToPEM()...)
	path := filepath.Join(t.TempDir(), "keys.pem")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := keys.ReadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, first.Public().Fingerprint(), loaded[0].Fingerprint())
	assert.Equal(t, second.Fingerprint(), loaded[1].Fingerprint())
}

func TestReadFromFileGarbageBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pem")
	garbage := "-----BEGIN RSA PUBLIC KEY-----\nZ2FyYmFnZQ==\n-----END RSA PUBLIC KEY-----\n"
	require.NoError(t, os.WriteFile(path, []byte(garbage), 0o600))

	_, err := keys.ReadFromFile(path)
	assert.Error(t, err)
}
