// Package auth presents user authentication challenges and reports the
// outcome through a callback.
package auth

import (
	"context"

	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
)

// Type names a family of authenticators.
type Type string

const (
	Device      Type = "device"
	Biometric   Type = "biometric"
	Fingerprint Type = "fingerprint"
)

// Callback receives exactly one outcome per Authenticate call.
type Callback interface {
	// OnSucceeded hands back the cipher passed to Authenticate, now usable.
	// It is nil when Authenticate was called without a cipher.
	OnSucceeded(c keystore.Cipher)
	OnFailed()
	OnCancelled()
	OnError(message string)
}

// Authenticator challenges the user. Without a cipher a success opens the
// keystore validity window; with a cipher a success authorizes that cipher.
// Implementations may call back on any goroutine.
type Authenticator interface {
	Authenticate(ctx context.Context, c keystore.Cipher, cb Callback)
}

// Prompt is the text shown with a challenge.
type Prompt struct {
	Title       string
	Description string
}

// Factory builds the authenticators the vault picks from.
type Factory interface {
	Device(p Prompt) Authenticator
	Biometric(p Prompt) Authenticator
	Fingerprint(p Prompt) Authenticator
	// BiometricPromptAvailable reports whether Biometric can be used or the
	// vault has to fall back to Fingerprint.
	BiometricPromptAvailable() bool
}

// CallbackFuncs adapts plain functions to Callback. Nil fields are ignored.
type CallbackFuncs struct {
	Succeeded func(c keystore.Cipher)
	Failed    func()
	Cancelled func()
	Errored   func(message string)
}

func (f CallbackFuncs) OnSucceeded(c keystore.Cipher) {
	if f.Succeeded != nil {
		f.Succeeded(c)
	}
}

func (f CallbackFuncs) OnFailed() {
	if f.Failed != nil {
		f.Failed()
	}
}

func (f CallbackFuncs) OnCancelled() {
	if f.Cancelled != nil {
		f.Cancelled()
	}
}

func (f CallbackFuncs) OnError(message string) {
	if f.Errored != nil {
		f.Errored(message)
	}
}
