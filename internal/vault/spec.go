package vault

import (
	"time"

	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
)

// AuthenticationSpec is the authentication policy of one wrapping key plus
// the text of its challenge. It is a value: a spec reflecting the live key is
// derived with WithKeyInfo instead of editing the caller's copy.
type AuthenticationSpec struct {
	KeyAlias               string
	AuthenticationRequired bool
	// ValidityDuration is how long a challenge unlocks the key. Zero or
	// negative means every use is challenged.
	ValidityDuration time.Duration
	Title            string
	Description      string
}

// WillInvalidateInTimeFrame reports whether authentication lasts for a
// window rather than a single use.
func (s AuthenticationSpec) WillInvalidateInTimeFrame() bool {
	return s.ValidityDuration > 0
}

// WithKeyInfo returns a copy carrying the policy the key actually has.
func (s AuthenticationSpec) WithKeyInfo(info *keystore.KeyInfo) AuthenticationSpec {
	s.AuthenticationRequired = info.Policy.AuthenticationRequired
	s.ValidityDuration = info.Policy.ValidityDuration
	return s
}

func (s AuthenticationSpec) validate() error {
	return common.CheckValid(validAlias(s.KeyAlias), "invalid key alias")
}

func (s AuthenticationSpec) policy() keystore.Policy {
	return keystore.Policy{
		AuthenticationRequired: s.AuthenticationRequired,
		ValidityDuration:       s.ValidityDuration,
		HardwareBacked:         true,
	}
}

func (s AuthenticationSpec) prompt() auth.Prompt {
	return auth.Prompt{Title: s.Title, Description: s.Description}
}
