package params

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
)

// Signer produces deterministic signatures. *keys.KeyPair implements it.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() []byte
}

// Record is implemented by every signable record.
type Record interface {
	Sign(signer Signer) error
	ToCanonicalJSON() ([]byte, error)
}

// ExtraInfo is free-form data sent alongside offers and grants.
type ExtraInfo map[string]any

func (e ExtraInfo) orEmpty() map[string]any {
	if e == nil {
		return map[string]any{}
	}
	return e
}

// signature is the slot every single-payload record signs into. Signing again
// overwrites the previous value.
type signature struct {
	value []byte
}

func (s *signature) sign(signer Signer, payload []byte) error {
	if signer == nil {
		return &common.ValidationError{Message: "signer is required"}
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return fmt.Errorf("failed to sign record: %w", err)
	}
	s.value = sig
	return nil
}

// Signature returns a copy of the signature, nil before signing.
func (s *signature) Signature() []byte {
	if len(s.value) == 0 {
		return nil
	}
	return append([]byte(nil), s.value...)
}

// IsSigned reports whether Sign has succeeded at least once.
func (s *signature) IsSigned() bool {
	return len(s.value) > 0
}

func (s *signature) hex() (string, error) {
	if !s.IsSigned() {
		return "", common.NotSigned()
	}
	return hex.EncodeToString(s.value), nil
}

func marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return raw, nil
}
