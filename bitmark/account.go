// Package bitmark is the account facade the CLI and the local signer API use:
// it ties a seed to its signing keys, exports recovery phrases and keeps the
// account in the key vault.
package bitmark

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keys"
	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

// Account is a seed with the keypair derived from it. Call Destroy when done.
type Account struct {
	seed    *seed.Seed
	keys    *keys.KeyPair
	address *keys.Address
}

// NewAccount creates a random account. TwentyFour seeds record network;
// Twelve seeds use it only for the account number.
func NewAccount(version seed.Version, network seed.Network) (*Account, error) {
	s, err := seed.GenerateRandom(version, network)
	if err != nil {
		return nil, err
	}
	return FromSeed(s, network)
}

// RecoverAccount restores an account from a recovery phrase in any supported
// language. network is the fallback for 12-word phrases.
func RecoverAccount(phrase string, network seed.Network) (*Account, error) {
	s, err := seed.FromMnemonic(mnemonic.Split(phrase))
	if err != nil {
		return nil, err
	}
	return FromSeed(s, network)
}

// FromEntropy restores an account from the bytes a recovery phrase encodes.
func FromEntropy(entropy []byte, network seed.Network) (*Account, error) {
	s, err := seed.FromEntropy(entropy)
	if err != nil {
		return nil, err
	}
	return FromSeed(s, network)
}

// FromSeed takes ownership of s. A network carried by the seed wins over the
// fallback.
func FromSeed(s *seed.Seed, fallback seed.Network) (*Account, error) {
	network := fallback
	if n, ok := s.Network(); ok {
		network = n
	}
	if err := common.CheckValid(network.Valid(), "invalid network"); err != nil {
		return nil, err
	}

	kp, err := keys.DeriveFrom(s)
	if err != nil {
		return nil, err
	}
	address, err := kp.Address(network)
	if err != nil {
		kp.Destroy()
		return nil, err
	}
	return &Account{seed: s, keys: kp, address: address}, nil
}

// Address returns the account number.
func (a *Account) Address() *keys.Address {
	return a.address
}

// AccountNumber returns the base58 account number.
func (a *Account) AccountNumber() string {
	return a.address.String()
}

func (a *Account) Network() seed.Network {
	return a.address.Network()
}

func (a *Account) Version() seed.Version {
	return a.seed.Version()
}

// Phrase returns the recovery phrase in lang.
func (a *Account) Phrase(lang mnemonic.Language) ([]string, error) {
	return a.seed.Phrase(lang)
}

// Entropy returns the bytes the recovery phrase encodes. The caller should
// clear it after use.
func (a *Account) Entropy() []byte {
	return a.seed.Entropy()
}

// Sign signs message with the account key.
func (a *Account) Sign(message []byte) ([]byte, error) {
	return a.keys.Sign(message)
}

// PublicKey returns the ed25519 public key.
func (a *Account) PublicKey() []byte {
	return a.keys.PublicKey()
}

// QRCode returns the account number as a base64 PNG QR code.
func (a *Account) QRCode() (string, error) {
	return generateQRCode(a.AccountNumber())
}

// Destroy wipes the seed and the private key.
func (a *Account) Destroy() {
	a.keys.Destroy()
	a.seed.Destroy()
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
