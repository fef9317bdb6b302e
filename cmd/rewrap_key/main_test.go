package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/crypto"
	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
	"github.com/AlexZinkM/bitmark-wallet/internal/vault"
)

func newVault(t *testing.T) (*vault.Vault, *keystore.FileStore) {
	t.Helper()
	root := t.TempDir()
	pass := []byte("pass")
	ks, err := keystore.OpenFileStore(filepath.Join(root, "ks.json"), pass,
		keystore.WithKDFParams(crypto.KDFParams{N: 1 << 10, R: 8, P: 1}))
	require.NoError(t, err)
	v, err := vault.New(filepath.Join(root, "vault"), ks, auth.TerminalFactory{
		Verifier: ks,
		Options: []auth.TerminalOption{
			auth.WithPasswordReader(func() ([]byte, error) { return []byte("pass"), nil }),
			auth.WithOutput(io.Discard),
		},
	})
	require.NoError(t, err)
	return v, ks
}

func TestRewrap(t *testing.T) {
	ctx := context.Background()
	v, ks := newVault(t)
	entropy := bytes.Repeat([]byte{0x42}, 16)

	oldSpec := spec("old", true, time.Minute)
	newSpec := spec("new", true, -1)
	require.NoError(t, v.Save(ctx, "account", oldSpec, entropy))

	require.NoError(t, rewrap(ctx, v, "account", oldSpec, newSpec, io.Discard))

	ok, err := ks.Contains("old")
	require.NoError(t, err)
	assert.False(t, ok)
	info, err := ks.Info("new")
	require.NoError(t, err)
	assert.True(t, info.Policy.PerUse())

	got, err := v.Get(ctx, "account", newSpec)
	require.NoError(t, err)
	assert.Equal(t, entropy, got)
}

func TestRewrapMissingAccount(t *testing.T) {
	v, _ := newVault(t)
	err := rewrap(context.Background(), v, "account", spec("old", false, 0), spec("new", false, 0), io.Discard)
	assert.Error(t, err)
}
