package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
)

// CredentialVerifier checks the device credential. keystore.FileStore
// implements it.
type CredentialVerifier interface {
	VerifyCredential(secret []byte) error
	AuthorizeCipher(c keystore.Cipher, secret []byte) error
}

// PasswordReader reads one secret without echo.
type PasswordReader func() ([]byte, error)

// Terminal asks for the device passphrase on the controlling terminal.
// An empty answer or end of input cancels the challenge.
type Terminal struct {
	prompt   Prompt
	verifier CredentialVerifier
	read     PasswordReader
	out      io.Writer
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithPasswordReader replaces the stdin reader.
func WithPasswordReader(r PasswordReader) TerminalOption {
	return func(t *Terminal) { t.read = r }
}

// WithOutput replaces stderr as the prompt destination.
func WithOutput(w io.Writer) TerminalOption {
	return func(t *Terminal) { t.out = w }
}

func NewTerminal(p Prompt, v CredentialVerifier, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		prompt:   p,
		verifier: v,
		read:     readStdinPassword,
		out:      os.Stderr,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func readStdinPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to authenticate")
	}
	return term.ReadPassword(fd)
}

func (t *Terminal) Authenticate(ctx context.Context, c keystore.Cipher, cb Callback) {
	if err := ctx.Err(); err != nil {
		cb.OnCancelled()
		return
	}

	if t.prompt.Title != "" {
		fmt.Fprintln(t.out, t.prompt.Title)
	}
	if t.prompt.Description != "" {
		fmt.Fprintln(t.out, t.prompt.Description)
	}
	fmt.Fprint(t.out, "Enter device passphrase: ")
	secret, err := t.read()
	fmt.Fprintln(t.out)
	defer clear(secret)

	switch {
	case errors.Is(err, io.EOF):
		cb.OnCancelled()
		return
	case err != nil:
		cb.OnError(err.Error())
		return
	case len(secret) == 0:
		cb.OnCancelled()
		return
	}

	if c == nil {
		err = t.verifier.VerifyCredential(secret)
	} else {
		err = t.verifier.AuthorizeCipher(c, secret)
	}
	switch {
	case errors.Is(err, keystore.ErrCredentialMismatch):
		cb.OnFailed()
	case err != nil:
		cb.OnError(err.Error())
	default:
		cb.OnSucceeded(c)
	}
}

// TerminalFactory serves every authenticator type from the terminal, since a
// terminal has no biometric sensor.
type TerminalFactory struct {
	Verifier CredentialVerifier
	Options  []TerminalOption
}

func (f TerminalFactory) Device(p Prompt) Authenticator {
	return NewTerminal(p, f.Verifier, f.Options...)
}

func (f TerminalFactory) Biometric(p Prompt) Authenticator {
	return NewTerminal(p, f.Verifier, f.Options...)
}

func (f TerminalFactory) Fingerprint(p Prompt) Authenticator {
	return NewTerminal(p, f.Verifier, f.Options...)
}

func (f TerminalFactory) BiometricPromptAvailable() bool {
	return false
}
