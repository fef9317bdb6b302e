package auth

import (
	"context"
	"sync"

	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
)

type outcome struct {
	cipher keystore.Cipher
	err    error
}

// Await runs one challenge and blocks until its first outcome or until ctx is
// done. Later callbacks from a misbehaving authenticator are dropped.
func Await(ctx context.Context, a Authenticator, c keystore.Cipher) (keystore.Cipher, error) {
	done := make(chan outcome, 1)
	var once sync.Once
	resolve := func(o outcome) {
		once.Do(func() { done <- o })
	}

	cb := CallbackFuncs{
		Succeeded: func(c keystore.Cipher) { resolve(outcome{cipher: c}) },
		Failed:    func() { resolve(outcome{err: ErrAuthenticationFailed}) },
		Cancelled: func() { resolve(outcome{err: ErrAuthenticationCancelled}) },
		Errored:   func(message string) { resolve(outcome{err: &Error{Message: message}}) },
	}
	go a.Authenticate(ctx, c, cb)

	select {
	case o := <-done:
		return o.cipher, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
