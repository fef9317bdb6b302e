// Package crypto seals secrets under a passphrase with scrypt and AES-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local keystore
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) - optimal balance:
	//   - Works on phones (4-16GB RAM) and desktops alike
	//   - Brute-force attacks remain extremely expensive
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	NonceLen     = 12
)

// KDFParams are the scrypt cost parameters stored next to every sealed blob,
// so a blob can be opened after the defaults change.
type KDFParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// DefaultKDFParams returns the production scrypt cost.
func DefaultKDFParams() KDFParams {
	return KDFParams{N: scryptN, R: scryptR, P: scryptP}
}

// Sealed is the serialized form of a secret sealed under a passphrase.
type Sealed struct {
	KDF        KDFParams `json:"kdf"`
	Salt       string    `json:"salt"`
	Nonce      string    `json:"nonce"`
	CipherText string    `json:"cipherText"`
}

// Seal encrypts plaintext under a key derived from password.
// password must be []byte for security (caller should zero it after use)
func Seal(plaintext, password []byte, params KDFParams) (*Sealed, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, NonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key) // wipe derived key from memory

	aesGCM, err := NewGCM(key)
	if err != nil {
		return nil, err
	}

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &Sealed{
		KDF:        params,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// NewGCM returns AES-GCM with the standard 12-byte nonce for a 16, 24 or
// 32-byte key.
func NewGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
