package mnemonic

import (
	"bytes"
	"crypto/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
)

func sequence(start byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		name    string
		entropy []byte
		lang    Language
		phrase  string
	}{
		{
			name:    "zero entropy",
			entropy: make([]byte, 16),
			lang:    English,
			phrase:  strings.Repeat("abandon ", 11) + "about",
		},
		{
			name:    "0x7f entropy",
			entropy: bytes.Repeat([]byte{0x7f}, 16),
			lang:    English,
			phrase:  "legal winner thank year wave sausage worth useful legal winner thank yellow",
		},
		{
			name:    "counting entropy",
			entropy: sequence(0, 16),
			lang:    English,
			phrase:  "abandon amount liar amount expire adjust cage candy arch gather drum buyer",
		},
		{
			name:    "network byte and 27 byte core",
			entropy: append([]byte{0x01}, sequence(1, 27)...),
			lang:    English,
			phrase: "absurd amount liar amount expire adjust cage candy arch gather drum bullet " +
				"absurd math era live bid rhythm alien crouch say cluster badge arrow",
		},
		{
			name:    "zero entropy chinese",
			entropy: make([]byte, 16),
			lang:    ChineseTraditional,
			phrase:  strings.Repeat("的 ", 11) + "在",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := Encode(tt.entropy, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.phrase, Join(words))

			entropy, err := Decode(Split(tt.phrase), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.entropy, entropy)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, lang := range Languages() {
		for _, v := range []Variant{Twelve, TwentyFour} {
			for i := 0; i < 50; i++ {
				entropy := make([]byte, v.EntropyLen)
				_, err := rand.Read(entropy)
				require.NoError(t, err)

				words, err := Encode(entropy, lang)
				require.NoError(t, err)
				require.Len(t, words, v.WordCount)

				decoded, err := Decode(words, lang)
				require.NoError(t, err)
				require.Equal(t, entropy, decoded, "lang=%s words=%d", lang, v.WordCount)
			}
		}
	}
}

func TestTwelveWordsMatchBIP39(t *testing.T) {
	for i := 0; i < 20; i++ {
		entropy := make([]byte, 16)
		_, err := rand.Read(entropy)
		require.NoError(t, err)

		want, err := bip39.NewMnemonic(entropy)
		require.NoError(t, err)

		words, err := Encode(entropy, English)
		require.NoError(t, err)
		assert.Equal(t, want, Join(words))

		back, err := bip39.EntropyFromMnemonic(Join(words))
		require.NoError(t, err)
		assert.Equal(t, entropy, back)
	}
}

func TestEncodeRejectsLength(t *testing.T) {
	for _, n := range []int{0, 15, 17, 27, 32, 33} {
		_, err := Encode(make([]byte, n), English)
		assert.ErrorIs(t, err, common.ErrInvalidArgument, "len=%d", n)
	}
}

func TestDecodeRejects(t *testing.T) {
	valid, err := Encode(make([]byte, 16), English)
	require.NoError(t, err)

	t.Run("word count", func(t *testing.T) {
		_, err := Decode(valid[:11], English)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})

	t.Run("unknown word", func(t *testing.T) {
		words := append([]string{}, valid...)
		words[4] = "bitmark"
		_, err := Decode(words, English)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})

	t.Run("mixed dictionaries", func(t *testing.T) {
		words := append([]string{}, valid...)
		words[5] = "的"
		_, err := Decode(words, English)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})
}

// flipChecksumBit flips bit b of the last word's dictionary index.
func flipChecksumBit(t *testing.T, words []string, lang Language, b int) []string {
	t.Helper()
	d, err := loadDictionary(lang)
	require.NoError(t, err)

	idx, ok := d.lookup(words[len(words)-1])
	require.True(t, ok)

	out := append([]string{}, words...)
	out[len(out)-1] = d.words[idx^(1<<b)]
	return out
}

func TestChecksumBitFlip(t *testing.T) {
	for _, v := range []Variant{Twelve, TwentyFour} {
		entropy := make([]byte, v.EntropyLen)
		_, err := rand.Read(entropy)
		require.NoError(t, err)

		words, err := Encode(entropy, English)
		require.NoError(t, err)

		// Only the checksum bits of the last word are covered: flipping an
		// entropy bit may collide with a short checksum.
		bits := v.ChecksumBits()
		if bits > bitsPerWord {
			bits = bitsPerWord
		}
		for b := 0; b < bits; b++ {
			_, err := Decode(flipChecksumBit(t, words, English, b), English)
			assert.ErrorIs(t, err, common.ErrInvalidArgument, "words=%d bit=%d", v.WordCount, b)
		}
	}
}

func TestDetect(t *testing.T) {
	lang, err := Detect("abandon")
	require.NoError(t, err)
	assert.Equal(t, English, lang)

	lang, err = Detect("的")
	require.NoError(t, err)
	assert.Equal(t, ChineseTraditional, lang)

	_, err = Detect("bitmark")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.EqualError(t, err, "unsupported language")
}

func TestDecodePhrase(t *testing.T) {
	entropy, lang, err := DecodePhrase(Split(strings.Repeat("的 ", 11) + "在"))
	require.NoError(t, err)
	assert.Equal(t, ChineseTraditional, lang)
	assert.Equal(t, make([]byte, 16), entropy)

	_, _, err = DecodePhrase(nil)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage("zh-TW")
	require.NoError(t, err)
	assert.Equal(t, ChineseTraditional, l)

	_, err = ParseLanguage("fr")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestDictionaryConcurrentLoad(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, l := range Languages() {
				words, err := Words(l)
				assert.NoError(t, err)
				assert.Len(t, words, DictionarySize)
			}
		}()
	}
	wg.Wait()
}
