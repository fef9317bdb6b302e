package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastKDF keeps tests quick; production uses DefaultKDFParams.
var fastKDF = KDFParams{N: 1 << 10, R: 8, P: 1}

func TestSealOpen(t *testing.T) {
	secret := []byte("wrapping key material")

	sealed, err := Seal(secret, []byte("correct horse"), fastKDF)
	require.NoError(t, err)
	assert.Equal(t, fastKDF, sealed.KDF)
	assert.NotContains(t, sealed.CipherText, string(secret))

	got, err := Open(sealed, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	_, err = Open(sealed, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestSealFreshSaltAndNonce(t *testing.T) {
	a, err := Seal([]byte("x"), []byte("pw"), fastKDF)
	require.NoError(t, err)
	b, err := Seal([]byte("x"), []byte("pw"), fastKDF)
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Nonce, b.Nonce)
}

func TestEmptyPassword(t *testing.T) {
	_, err := Seal([]byte("x"), nil, fastKDF)
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = Open(&Sealed{}, nil)
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestOpenMalformed(t *testing.T) {
	sealed, err := Seal([]byte("x"), []byte("pw"), fastKDF)
	require.NoError(t, err)

	bad := *sealed
	bad.Salt = "%%%"
	_, err = Open(&bad, []byte("pw"))
	assert.ErrorContains(t, err, "failed to decode salt")

	bad = *sealed
	bad.Nonce = "AAAA"
	_, err = Open(&bad, []byte("pw"))
	assert.ErrorContains(t, err, "invalid nonce length")
}

func TestNewGCMKeySize(t *testing.T) {
	_, err := NewGCM(make([]byte, 32))
	assert.NoError(t, err)

	_, err = NewGCM(make([]byte, 7))
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestReadFileMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte{0xEF, 0xBB, 0xBF}, 0600))
	_, err = ReadFile(empty)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "f"), []byte("x"))
	assert.ErrorContains(t, err, "failed to create temp file")
}
