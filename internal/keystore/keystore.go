// Package keystore holds symmetric wrapping keys behind an authentication
// policy and hands out ciphers bound to them.
package keystore

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUserNotAuthenticated is returned by NewCipher when a time-bound key
	// is used outside its validity window. A successful device challenge makes
	// the next NewCipher call succeed.
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	// ErrKeyNotAuthorized is returned by DoFinal on a per-use cipher that no
	// authenticator has authorized.
	ErrKeyNotAuthorized = errors.New("cipher not authorized")
	ErrKeyNotFound      = errors.New("key not found")
	ErrKeyExists        = errors.New("key already exists")
	// ErrCredentialMismatch is returned when a device credential is wrong.
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrStoreCorrupted     = errors.New("keystore corrupted")
	ErrStorePersist       = errors.New("failed to persist keystore")
)

// Mode selects the direction of a cipher.
type Mode int

const (
	Encrypt Mode = iota + 1
	Decrypt
)

func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Policy is the authentication policy a wrapping key is generated with.
type Policy struct {
	AuthenticationRequired bool
	// ValidityDuration is how long a device challenge unlocks the key. Zero or
	// negative means every use must be authorized individually.
	ValidityDuration time.Duration
	// HardwareBacked asks for secure hardware where the store has it.
	HardwareBacked bool
}

// PerUse reports whether each cipher must be authorized individually.
func (p Policy) PerUse() bool {
	return p.AuthenticationRequired && p.ValidityDuration <= 0
}

// KeyInfo describes the live properties of a stored key.
type KeyInfo struct {
	Alias                string
	Policy               Policy
	InsideSecureHardware bool
	CreatedAt            time.Time
}

// Cipher is one encrypt or decrypt operation bound to a wrapping key.
type Cipher interface {
	Mode() Mode
	// IV is generated for Encrypt and supplied by the caller for Decrypt.
	IV() []byte
	DoFinal(data []byte) ([]byte, error)
}

// Store is the secure keystore the vault keeps its wrapping keys in.
type Store interface {
	Contains(alias string) (bool, error)
	Generate(alias string, policy Policy) error
	Info(alias string) (*KeyInfo, error)
	NewCipher(alias string, mode Mode, iv []byte) (Cipher, error)
	Delete(alias string) error
}

// GenerateOrGet returns the key under alias, generating it with policy when
// it does not exist yet. An existing key keeps its original policy.
func GenerateOrGet(s Store, alias string, policy Policy) (info *KeyInfo, created bool, err error) {
	exists, err := s.Contains(alias)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		err := s.Generate(alias, policy)
		switch {
		case err == nil:
			created = true
		case !errors.Is(err, ErrKeyExists):
			return nil, false, err
		}
	}
	info, err = s.Info(alias)
	if err != nil {
		return nil, false, err
	}
	return info, created, nil
}
