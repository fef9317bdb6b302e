// Package keys derives ed25519 signing keys from seeds and encodes account
// numbers.
package keys

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/sha3"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

const (
	SeedSize       = ed25519.SeedSize
	PrivateKeySize = ed25519.PrivateKeySize
	PublicKeySize  = ed25519.PublicKeySize
	SignatureSize  = ed25519.SignatureSize
)

// KeyPair holds an ed25519 private key; the public key is its last 32 bytes.
type KeyPair struct {
	private solana.PrivateKey
}

// DeriveFrom returns the keypair for s. The same seed always yields the same
// keypair: the 32-byte ed25519 seed is SHA3-256 of the seed core.
func DeriveFrom(s *seed.Seed) (*KeyPair, error) {
	core := s.Core()
	defer clear(core)

	material := sha3.Sum256(core)
	defer clear(material[:])
	return FromSeed(material[:])
}

// FromSeed expands a 32-byte ed25519 seed.
func FromSeed(b []byte) (*KeyPair, error) {
	if err := common.CheckValid(len(b) == SeedSize, fmt.Sprintf("invalid seed length %d", len(b))); err != nil {
		return nil, err
	}
	return &KeyPair{private: solana.PrivateKey(ed25519.NewKeyFromSeed(b))}, nil
}

// FromPrivateKey recovers the keypair of a 64-byte private key. The public key
// is recomputed from the seed half and must match the trailing half.
func FromPrivateKey(b []byte) (*KeyPair, error) {
	if err := common.CheckValid(len(b) == PrivateKeySize, fmt.Sprintf("invalid private key length %d", len(b))); err != nil {
		return nil, err
	}
	if _, err := solana.ValidatePrivateKey(b); err != nil {
		return nil, &common.ValidationError{Message: "invalid private key: " + err.Error()}
	}

	kp, err := FromSeed(b[:SeedSize])
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(kp.private[SeedSize:], b[SeedSize:]) {
		kp.Destroy()
		return nil, &common.ValidationError{Message: "private key does not match its public key"}
	}
	return kp, nil
}

// PublicKey returns a copy of the 32-byte public key.
func (k *KeyPair) PublicKey() []byte {
	return k.private.PublicKey().Bytes()
}

// PrivateKey returns a copy of the 64-byte private key. The caller should
// clear it after use.
func (k *KeyPair) PrivateKey() []byte {
	return append([]byte(nil), k.private...)
}

// Sign returns the deterministic ed25519 signature of message.
func (k *KeyPair) Sign(message []byte) ([]byte, error) {
	sig, err := k.private.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return sig[:], nil
}

// Address returns the account number of the public key on network.
func (k *KeyPair) Address(network seed.Network) (*Address, error) {
	return NewAddress(k.PublicKey(), network)
}

// Destroy wipes the private key.
func (k *KeyPair) Destroy() {
	clear(k.private)
}

// Verify checks sig over message against a 32-byte public key.
func Verify(publicKey, message, sig []byte) (bool, error) {
	if err := common.FirstInvalid(
		common.CheckValid(len(publicKey) == PublicKeySize, "invalid public key length"),
		common.CheckValid(len(sig) == SignatureSize, "invalid signature length"),
	); err != nil {
		return false, err
	}
	pub := solana.PublicKeyFromBytes(publicKey)
	return pub.Verify(message, solana.SignatureFromBytes(sig)), nil
}
