// Package seed models versioned key seeds and their recovery phrases.
package seed

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
)

// Seed is immutable once constructed. Accessors return copies.
type Seed struct {
	core    []byte
	version Version
	network Network
}

// GenerateRandom creates a fresh seed from crypto/rand. The network is only
// recorded for TwentyFour seeds.
func GenerateRandom(version Version, network Network) (*Seed, error) {
	return generate(rand.Reader, version, network)
}

func generate(r io.Reader, version Version, network Network) (*Seed, error) {
	if version != Twelve && version != TwentyFour {
		return nil, &common.ValidationError{Message: fmt.Sprintf("unsupported seed version %d", version)}
	}
	core := make([]byte, version.CoreLen())
	if _, err := io.ReadFull(r, core); err != nil {
		return nil, fmt.Errorf("failed to generate seed: %w", err)
	}
	defer clear(core)
	return FromRawCore(core, network)
}

// FromRawCore builds a seed from caller supplied key material. The version is
// inferred from the length: 16 bytes is a Twelve seed without network, 27
// bytes is a TwentyFour seed on network, and 28 bytes is a TwentyFour seed
// whose first byte is its network.
func FromRawCore(core []byte, network Network) (*Seed, error) {
	var version Version
	switch len(core) {
	case twentyFourCoreLen + 1:
		return FromRawCore(core[1:], Network(core[0]))
	case twelveCoreLen:
		version = Twelve
		network = Livenet
	case twentyFourCoreLen:
		version = TwentyFour
		if err := common.CheckValid(network.Valid(), "invalid network"); err != nil {
			return nil, err
		}
	default:
		return nil, &common.ValidationError{Message: fmt.Sprintf("invalid core length %d", len(core))}
	}
	return &Seed{
		core:    append([]byte(nil), core...),
		version: version,
		network: network,
	}, nil
}

// FromEntropy builds a seed from encoded entropy: 16 bytes, or 28 bytes whose
// first byte is the network.
func FromEntropy(entropy []byte) (*Seed, error) {
	if _, err := mnemonic.VariantForEntropy(len(entropy)); err != nil {
		return nil, err
	}
	if len(entropy) == twelveCoreLen {
		return FromRawCore(entropy, Livenet)
	}
	return FromRawCore(entropy[1:], Network(entropy[0]))
}

// FromMnemonic detects the phrase language and decodes the seed.
func FromMnemonic(words []string) (*Seed, error) {
	entropy, _, err := mnemonic.DecodePhrase(words)
	if err != nil {
		return nil, err
	}
	defer clear(entropy)
	return FromEntropy(entropy)
}

// Core returns a copy of the key material.
func (s *Seed) Core() []byte {
	return append([]byte(nil), s.core...)
}

func (s *Seed) Version() Version {
	return s.version
}

// Network returns the seed network. ok is false for Twelve seeds, which do not
// carry one.
func (s *Seed) Network() (n Network, ok bool) {
	if !s.version.HasNetwork() {
		return 0, false
	}
	return s.network, true
}

// Entropy returns the bytes the recovery phrase encodes.
func (s *Seed) Entropy() []byte {
	if s.version.HasNetwork() {
		return common.Concat([]byte{byte(s.network)}, s.core)
	}
	return s.Core()
}

// Phrase encodes the seed as a recovery phrase in lang.
func (s *Seed) Phrase(lang mnemonic.Language) ([]string, error) {
	entropy := s.Entropy()
	defer clear(entropy)
	return mnemonic.Encode(entropy, lang)
}

// Destroy wipes the key material.
func (s *Seed) Destroy() {
	clear(s.core)
}
