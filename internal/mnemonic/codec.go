// Package mnemonic converts entropy to recovery phrases and back.
//
// Entropy bits are packed MSB-first into 11-bit dictionary indices. The bits
// left over after the entropy are filled from the head of SHA-256(entropy),
// so every phrase carries a checksum:
//
//	12 words = 16 bytes of entropy +  4 checksum bits
//	24 words = 28 bytes of entropy + 40 checksum bits
package mnemonic

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
)

const bitsPerWord = 11

// masks[n] keeps the lowest n bits of the decode accumulator.
var masks = [bitsPerWord]uint32{0, 1, 3, 7, 15, 31, 63, 127, 255, 511, 1023}

// Variant pairs an entropy length with its phrase length.
type Variant struct {
	EntropyLen int
	WordCount  int
}

var (
	Twelve     = Variant{EntropyLen: 16, WordCount: 12}
	TwentyFour = Variant{EntropyLen: 28, WordCount: 24}
)

// ChecksumBits is the number of trailing checksum bits the phrase carries.
func (v Variant) ChecksumBits() int {
	return v.WordCount*bitsPerWord - v.EntropyLen*8
}

// VariantForEntropy returns the variant for an entropy length.
func VariantForEntropy(n int) (Variant, error) {
	switch n {
	case Twelve.EntropyLen:
		return Twelve, nil
	case TwentyFour.EntropyLen:
		return TwentyFour, nil
	}
	return Variant{}, &common.ValidationError{Message: fmt.Sprintf("invalid entropy length %d", n)}
}

// VariantForWords returns the variant for a phrase length.
func VariantForWords(n int) (Variant, error) {
	switch n {
	case Twelve.WordCount:
		return Twelve, nil
	case TwentyFour.WordCount:
		return TwentyFour, nil
	}
	return Variant{}, &common.ValidationError{Message: fmt.Sprintf("invalid phrase length %d", n)}
}

// Encode converts entropy into words from the dictionary of lang.
func Encode(entropy []byte, lang Language) ([]string, error) {
	v, err := VariantForEntropy(len(entropy))
	if err != nil {
		return nil, err
	}
	d, err := loadDictionary(lang)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(entropy)
	stream := common.Concat(entropy, sum[:(v.ChecksumBits()+7)/8])

	words := make([]string, 0, v.WordCount)
	for i := 0; i < v.WordCount; i++ {
		words = append(words, d.words[readBits(stream, i*bitsPerWord, bitsPerWord)])
	}
	return words, nil
}

// readBits reads n bits MSB-first starting at bit offset off.
func readBits(b []byte, off, n int) int {
	v := 0
	for i := off; i < off+n; i++ {
		bit := (b[i/8] >> (7 - uint(i%8))) & 1
		v = v<<1 | int(bit)
	}
	return v
}

// Decode converts words from the dictionary of lang back into entropy and
// verifies the checksum.
func Decode(words []string, lang Language) ([]byte, error) {
	v, err := VariantForWords(len(words))
	if err != nil {
		return nil, err
	}
	d, err := loadDictionary(lang)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, (v.WordCount*bitsPerWord)/8)
	var acc uint32
	pending := 0
	for _, w := range words {
		idx, ok := d.lookup(w)
		if !ok {
			return nil, &common.ValidationError{Message: fmt.Sprintf("word %q is not in the %s dictionary", w, lang)}
		}
		acc = acc<<bitsPerWord | uint32(idx)
		pending += bitsPerWord
		for pending >= 8 {
			pending -= 8
			out = append(out, byte(acc>>uint(pending)))
			acc &= masks[pending]
		}
	}

	if len(out) < v.EntropyLen {
		return nil, &common.ValidationError{Message: "invalid entropy length"}
	}
	entropy := out[:v.EntropyLen]
	tail := out[v.EntropyLen:]

	sum := sha256.Sum256(entropy)
	valid := bytes.Equal(tail, sum[:len(tail)])
	if pending > 0 {
		valid = valid && acc == uint32(sum[len(tail)]>>uint(8-pending))
	}
	if !valid {
		return nil, &common.ValidationError{Message: "invalid checksum"}
	}

	result := make([]byte, v.EntropyLen)
	copy(result, entropy)
	clear(out)
	return result, nil
}

// DecodePhrase detects the language from the first word and decodes.
func DecodePhrase(words []string) ([]byte, Language, error) {
	if len(words) == 0 {
		return nil, 0, &common.ValidationError{Message: "empty phrase"}
	}
	lang, err := Detect(words[0])
	if err != nil {
		return nil, 0, err
	}
	entropy, err := Decode(words, lang)
	if err != nil {
		return nil, 0, err
	}
	return entropy, lang, nil
}

// Split breaks a phrase string into its words.
func Split(phrase string) []string {
	return strings.Fields(phrase)
}

// Join renders words as a single space separated phrase.
func Join(words []string) string {
	return strings.Join(words, " ")
}
