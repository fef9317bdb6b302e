package keystore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/bitmark-wallet/internal/crypto"
)

var (
	testPassphrase = []byte("device passphrase")
	testKDF        = crypto.KDFParams{N: 1 << 10, R: 8, P: 1}
	testStart      = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
)

func newTestStore(t *testing.T) (*FileStore, *clock.TestClock, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keystore.json")
	clk := clock.NewTestClock(testStart)
	s, err := OpenFileStore(path, testPassphrase, WithClock(clk), WithKDFParams(testKDF))
	require.NoError(t, err)
	return s, clk, path
}

func roundTrip(t *testing.T, s *FileStore, alias string, plaintext []byte) []byte {
	t.Helper()
	enc, err := s.NewCipher(alias, Encrypt, nil)
	require.NoError(t, err)
	ct, err := enc.DoFinal(plaintext)
	require.NoError(t, err)

	dec, err := s.NewCipher(alias, Decrypt, enc.IV())
	require.NoError(t, err)
	out, err := dec.DoFinal(ct)
	require.NoError(t, err)
	return out
}

func TestGenerateAndUseUnprotectedKey(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.Generate("plain", Policy{}))
	assert.ErrorIs(t, s.Generate("plain", Policy{}), ErrKeyExists)

	ok, err := s.Contains("plain")
	require.NoError(t, err)
	assert.True(t, ok)

	info, err := s.Info("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", info.Alias)
	assert.False(t, info.InsideSecureHardware)
	assert.Equal(t, testStart, info.CreatedAt)

	assert.Equal(t, []byte("secret"), roundTrip(t, s, "plain", []byte("secret")))
}

func TestTimeBoundKeyNeedsAuthentication(t *testing.T) {
	s, clk, _ := newTestStore(t)
	require.NoError(t, s.Generate("timed", Policy{AuthenticationRequired: true, ValidityDuration: time.Minute}))

	_, err := s.NewCipher("timed", Encrypt, nil)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)

	assert.ErrorIs(t, s.VerifyCredential([]byte("wrong")), ErrCredentialMismatch)
	_, err = s.NewCipher("timed", Encrypt, nil)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)

	require.NoError(t, s.VerifyCredential(testPassphrase))
	assert.Equal(t, []byte("x"), roundTrip(t, s, "timed", []byte("x")))

	clk.SetTime(testStart.Add(59 * time.Second))
	_, err = s.NewCipher("timed", Encrypt, nil)
	assert.NoError(t, err)

	clk.SetTime(testStart.Add(time.Minute))
	_, err = s.NewCipher("timed", Encrypt, nil)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)

	require.NoError(t, s.VerifyCredential(testPassphrase))
	s.Lock()
	_, err = s.NewCipher("timed", Encrypt, nil)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
}

func TestPerUseKeyNeedsAuthorization(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Generate("per-use", Policy{AuthenticationRequired: true, ValidityDuration: -1}))

	info, err := s.Info("per-use")
	require.NoError(t, err)
	assert.True(t, info.Policy.PerUse())

	enc, err := s.NewCipher("per-use", Encrypt, nil)
	require.NoError(t, err)

	_, err = enc.DoFinal([]byte("x"))
	assert.ErrorIs(t, err, ErrKeyNotAuthorized)

	assert.ErrorIs(t, s.AuthorizeCipher(enc, []byte("wrong")), ErrCredentialMismatch)
	require.NoError(t, s.AuthorizeCipher(enc, testPassphrase))
	ct, err := enc.DoFinal([]byte("x"))
	require.NoError(t, err)

	dec, err := s.NewCipher("per-use", Decrypt, enc.IV())
	require.NoError(t, err)
	_, err = dec.DoFinal(ct)
	assert.ErrorIs(t, err, ErrKeyNotAuthorized)

	require.NoError(t, s.AuthorizeCipher(dec, testPassphrase))
	out, err := dec.DoFinal(ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), out)

	// Authorization covers a single operation.
	_, err = dec.DoFinal(ct)
	assert.ErrorIs(t, err, ErrKeyNotAuthorized)
}

func TestAuthorizeForeignCipher(t *testing.T) {
	s, _, _ := newTestStore(t)
	assert.Error(t, s.AuthorizeCipher(nil, testPassphrase))
}

func TestCipherArguments(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Generate("k", Policy{}))

	_, err := s.NewCipher("missing", Encrypt, nil)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = s.NewCipher("k", Encrypt, make([]byte, 12))
	assert.Error(t, err)

	_, err = s.NewCipher("k", Decrypt, make([]byte, 8))
	assert.Error(t, err)

	_, err = s.NewCipher("k", Mode(9), nil)
	assert.Error(t, err)

	enc, err := s.NewCipher("k", Encrypt, nil)
	require.NoError(t, err)
	assert.Equal(t, Encrypt, enc.Mode())
	assert.Len(t, enc.IV(), crypto.NonceLen)
	_, err = enc.DoFinal([]byte("a"))
	require.NoError(t, err)
	_, err = enc.DoFinal([]byte("b"))
	assert.Error(t, err, "encrypt cipher must not reuse its IV")
}

func TestSpentCipherDropsKey(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Generate("k", Policy{}))
	require.NoError(t, s.Generate("per-use", Policy{AuthenticationRequired: true, ValidityDuration: -1}))

	enc, err := s.NewCipher("k", Encrypt, nil)
	require.NoError(t, err)
	ct, err := enc.DoFinal([]byte("a"))
	require.NoError(t, err)
	gc := enc.(*gcmCipher)
	assert.True(t, gc.sealed)
	assert.Nil(t, gc.key)

	// A decrypt cipher without per-use authorization stays usable.
	dec, err := s.NewCipher("k", Decrypt, enc.IV())
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		out, err := dec.DoFinal(ct)
		require.NoError(t, err)
		assert.Equal(t, []byte("a"), out)
	}
	assert.NotEmpty(t, dec.(*gcmCipher).key)

	perUse, err := s.NewCipher("per-use", Encrypt, nil)
	require.NoError(t, err)
	require.NoError(t, s.AuthorizeCipher(perUse, testPassphrase))
	ct, err = perUse.DoFinal([]byte("b"))
	require.NoError(t, err)

	dec, err = s.NewCipher("per-use", Decrypt, perUse.IV())
	require.NoError(t, err)
	require.NoError(t, s.AuthorizeCipher(dec, testPassphrase))
	keyCopy := dec.(*gcmCipher).key
	_, err = dec.DoFinal(ct)
	require.NoError(t, err)
	assert.Nil(t, dec.(*gcmCipher).key)
	assert.Equal(t, make([]byte, len(keyCopy)), keyCopy, "key bytes must be wiped")

	// Authorizing again does not revive a spent cipher.
	require.NoError(t, s.AuthorizeCipher(dec, testPassphrase))
	_, err = dec.DoFinal(ct)
	assert.EqualError(t, err, "cipher already used")
}

func TestDecryptWithOtherAliasFails(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Generate("a", Policy{}))
	require.NoError(t, s.Generate("b", Policy{}))

	enc, err := s.NewCipher("a", Encrypt, nil)
	require.NoError(t, err)
	ct, err := enc.DoFinal([]byte("x"))
	require.NoError(t, err)

	dec, err := s.NewCipher("b", Decrypt, enc.IV())
	require.NoError(t, err)
	_, err = dec.DoFinal(ct)
	assert.Error(t, err)
}

func TestPersistence(t *testing.T) {
	s, _, path := newTestStore(t)
	require.NoError(t, s.Generate("k", Policy{AuthenticationRequired: true, ValidityDuration: time.Hour, HardwareBacked: true}))

	enc, err := s.NewCipher("k", Encrypt, nil)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	require.NoError(t, s.VerifyCredential(testPassphrase))
	enc, err = s.NewCipher("k", Encrypt, nil)
	require.NoError(t, err)
	ct, err := enc.DoFinal([]byte("persisted"))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "persisted")

	clk := clock.NewTestClock(testStart)
	reopened, err := OpenFileStore(path, testPassphrase, WithClock(clk), WithKDFParams(testKDF))
	require.NoError(t, err)

	info, err := reopened.Info("k")
	require.NoError(t, err)
	assert.Equal(t, Policy{AuthenticationRequired: true, ValidityDuration: time.Hour, HardwareBacked: true}, info.Policy)

	// Authentication is not persisted.
	_, err = reopened.NewCipher("k", Decrypt, enc.IV())
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)

	require.NoError(t, reopened.VerifyCredential(testPassphrase))
	dec, err := reopened.NewCipher("k", Decrypt, enc.IV())
	require.NoError(t, err)
	out, err := dec.DoFinal(ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), out)

	_, err = OpenFileStore(path, []byte("wrong"), WithKDFParams(testKDF))
	assert.ErrorIs(t, err, ErrCredentialMismatch)
}

func TestOpenCorruptedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := OpenFileStore(path, testPassphrase)
	assert.ErrorIs(t, err, ErrStoreCorrupted)

	require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"store":{}}`), 0600))
	_, err = OpenFileStore(path, testPassphrase)
	assert.ErrorIs(t, err, ErrStoreCorrupted)

	_, err = OpenFileStore(path, nil)
	assert.ErrorIs(t, err, crypto.ErrEmptyPassword)
}

func TestDelete(t *testing.T) {
	s, _, path := newTestStore(t)
	require.NoError(t, s.Generate("k", Policy{}))
	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k"))

	ok, err := s.Contains("k")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Info("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	reopened, err := OpenFileStore(path, testPassphrase, WithKDFParams(testKDF))
	require.NoError(t, err)
	ok, err = reopened.Contains("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateRollsBackWhenPersistFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "keystore.json")
	s, err := OpenFileStore(path, testPassphrase, WithKDFParams(testKDF))
	require.NoError(t, err)

	err = s.Generate("k", Policy{})
	assert.ErrorIs(t, err, ErrStorePersist)

	ok, err := s.Contains("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateOrGet(t *testing.T) {
	s, _, _ := newTestStore(t)

	info, created, err := GenerateOrGet(s, "k", Policy{AuthenticationRequired: true, ValidityDuration: time.Minute})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, time.Minute, info.Policy.ValidityDuration)

	// The existing key keeps its policy.
	info, created, err = GenerateOrGet(s, "k", Policy{})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, info.Policy.AuthenticationRequired)
}

func TestClose(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Generate("k", Policy{}))
	require.NoError(t, s.Close())

	ok, err := s.Contains("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPolicyPerUse(t *testing.T) {
	assert.False(t, Policy{}.PerUse())
	assert.False(t, Policy{AuthenticationRequired: true, ValidityDuration: time.Second}.PerUse())
	assert.True(t, Policy{AuthenticationRequired: true}.PerUse())
	assert.True(t, Policy{AuthenticationRequired: true, ValidityDuration: -1}.PerUse())
}
