package seed

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
)

func TestVersionInference(t *testing.T) {
	twelve, err := FromRawCore(make([]byte, 16), Testnet)
	require.NoError(t, err)
	assert.Equal(t, Twelve, twelve.Version())
	_, ok := twelve.Network()
	assert.False(t, ok)

	words, err := twelve.Phrase(mnemonic.English)
	require.NoError(t, err)
	assert.Len(t, words, 12)

	core := bytes.Repeat([]byte{0xab}, 27)
	tf, err := FromRawCore(core, Testnet)
	require.NoError(t, err)
	assert.Equal(t, TwentyFour, tf.Version())
	n, ok := tf.Network()
	require.True(t, ok)
	assert.Equal(t, Testnet, n)
	assert.Equal(t, append([]byte{0x01}, core...), tf.Entropy())

	words, err = tf.Phrase(mnemonic.English)
	require.NoError(t, err)
	assert.Len(t, words, 24)
}

func TestFromRawCoreRejects(t *testing.T) {
	for _, n := range []int{0, 15, 17, 26, 29, 32} {
		_, err := FromRawCore(make([]byte, n), Livenet)
		assert.ErrorIs(t, err, common.ErrInvalidArgument, "len=%d", n)
	}
	_, err := FromRawCore(make([]byte, 27), Network(0x07))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	withNetwork := make([]byte, 28)
	withNetwork[0] = 0x07
	_, err = FromRawCore(withNetwork, Testnet)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestFromRawCoreWithNetworkByte(t *testing.T) {
	raw := make([]byte, 28)
	raw[0] = byte(Testnet)
	for i := 1; i < len(raw); i++ {
		raw[i] = byte(i)
	}

	// The leading byte wins over the network argument.
	s, err := FromRawCore(raw, Livenet)
	require.NoError(t, err)
	assert.Equal(t, TwentyFour, s.Version())
	n, ok := s.Network()
	require.True(t, ok)
	assert.Equal(t, Testnet, n)
	assert.Equal(t, raw[1:], s.Core())
	assert.Equal(t, raw, s.Entropy())
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []Version{Twelve, TwentyFour} {
		for _, lang := range mnemonic.Languages() {
			s, err := GenerateRandom(v, Testnet)
			require.NoError(t, err)

			words, err := s.Phrase(lang)
			require.NoError(t, err)
			assert.Len(t, words, v.WordCount())

			back, err := FromMnemonic(words)
			require.NoError(t, err)
			assert.Equal(t, s.Core(), back.Core())
			assert.Equal(t, s.Version(), back.Version())

			wantNet, wantOK := s.Network()
			gotNet, gotOK := back.Network()
			assert.Equal(t, wantOK, gotOK)
			assert.Equal(t, wantNet, gotNet)
		}
	}
}

func TestFromMnemonicZeroEntropy(t *testing.T) {
	s, err := FromMnemonic(mnemonic.Split(strings.Repeat("abandon ", 11) + "about"))
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), s.Core())
	assert.Equal(t, Twelve, s.Version())
}

func TestFromMnemonicTwentyFour(t *testing.T) {
	phrase := "absurd amount liar amount expire adjust cage candy arch gather drum bullet " +
		"absurd math era live bid rhythm alien crouch say cluster badge arrow"
	s, err := FromMnemonic(mnemonic.Split(phrase))
	require.NoError(t, err)

	want := make([]byte, 27)
	for i := range want {
		want[i] = byte(i + 1)
	}
	assert.Equal(t, want, s.Core())
	n, ok := s.Network()
	require.True(t, ok)
	assert.Equal(t, Testnet, n)
}

func TestFromMnemonicUnsupportedLanguage(t *testing.T) {
	_, err := FromMnemonic(strings.Fields("hola mundo"))
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.EqualError(t, err, "unsupported language")
}

func TestFromMnemonicUnknownNetwork(t *testing.T) {
	entropy := append([]byte{0x05}, make([]byte, 27)...)
	words, err := mnemonic.Encode(entropy, mnemonic.English)
	require.NoError(t, err)

	_, err = FromMnemonic(words)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestCoreIsCopied(t *testing.T) {
	core := make([]byte, 16)
	s, err := FromRawCore(core, Livenet)
	require.NoError(t, err)

	core[0] = 0xff
	assert.Equal(t, byte(0), s.Core()[0])

	got := s.Core()
	got[1] = 0xff
	assert.Equal(t, byte(0), s.Core()[1])
}

func TestGenerateReaderFailure(t *testing.T) {
	_, err := generate(failingReader{}, TwentyFour, Livenet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate seed")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source closed")
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork("Testnet")
	require.NoError(t, err)
	assert.Equal(t, Testnet, n)

	n, err = ParseNetwork("livenet")
	require.NoError(t, err)
	assert.Equal(t, Livenet, n)

	_, err = ParseNetwork("devnet")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}
