package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
)

// errNoCipher is reported when a challenge succeeds without handing back the
// cipher it was given.
var errNoCipher = errors.New("authenticator returned no cipher")

type state int

const (
	stateIdle state = iota
	stateAttempting
	stateNeedsAuth
	stateChallenging
	stateSucceeded
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAttempting:
		return "attempting"
	case stateNeedsAuth:
		return "needs_auth"
	case stateChallenging:
		return "challenging"
	case stateSucceeded:
		return "succeeded"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// operation drives one crypto operation on one alias:
//
//	idle -> attempting -> succeeded
//	                   -> needs_auth -> challenging -> succeeded | failed
//
// challenging is entered at most once.
type operation struct {
	name       string
	alias      string
	spec       AuthenticationSpec
	factory    auth.Factory
	state      state
	challenged bool

	// perUse selects the biometric challenge with the cipher itself.
	perUse    bool
	newCipher func() (keystore.Cipher, error)
	finish    func(c keystore.Cipher) error

	logger zerolog.Logger
}

func newOperation(name, alias string, spec AuthenticationSpec, factory auth.Factory) *operation {
	return &operation{
		name:    name,
		alias:   alias,
		spec:    spec,
		factory: factory,
		logger: log.With().
			Str("op", name).
			Str("alias", alias).
			Str("key_alias", spec.KeyAlias).
			Logger(),
	}
}

func (op *operation) transition(to state) {
	op.logger.Debug().Stringer("from", op.state).Stringer("state", to).Msg("vault transition")
	op.state = to
}

// run makes the first attempt and decides whether a challenge is needed.
func (op *operation) run(ctx context.Context) error {
	op.transition(stateAttempting)

	c, err := op.newCipher()
	if isUserNotAuthenticated(err) {
		op.transition(stateNeedsAuth)
		return op.challenge(ctx, op.factory.Device(op.spec.prompt()), auth.Device, nil, op.retry)
	}
	if err != nil {
		return op.fail(err)
	}

	if op.perUse {
		op.transition(stateNeedsAuth)
		a, typ := op.biometric()
		return op.challenge(ctx, a, typ, c, op.complete)
	}
	return op.complete(c)
}

// challenge presents a to the user and hands the resulting cipher to next.
func (op *operation) challenge(ctx context.Context, a auth.Authenticator, typ auth.Type, c keystore.Cipher, next func(keystore.Cipher) error) error {
	if op.challenged {
		return op.fail(fmt.Errorf("%s already challenged: %w", op.name, common.ErrIllegalState))
	}
	op.challenged = true
	op.transition(stateChallenging)

	if a == nil {
		return op.fail(&auth.RequiredError{Type: typ})
	}
	authed, err := auth.Await(ctx, a, c)
	if err != nil {
		return op.fail(err)
	}
	if c != nil && authed == nil {
		return op.fail(&common.UnexpectedError{Op: op.name, Err: errNoCipher})
	}
	return next(authed)
}

// retry follows a device challenge: the earlier cipher was refused, so a
// fresh one is created and used exactly once.
func (op *operation) retry(keystore.Cipher) error {
	c, err := op.newCipher()
	if err != nil {
		return op.fail(err)
	}
	return op.complete(c)
}

func (op *operation) complete(c keystore.Cipher) error {
	if err := op.finish(c); err != nil {
		return op.fail(err)
	}
	op.transition(stateSucceeded)
	return nil
}

func (op *operation) fail(err error) error {
	op.transition(stateFailed)
	err = classify(op.name, err)
	op.logger.Warn().Err(err).Msg("vault operation failed")
	return err
}

func (op *operation) biometric() (auth.Authenticator, auth.Type) {
	if op.factory.BiometricPromptAvailable() {
		return op.factory.Biometric(op.spec.prompt()), auth.Biometric
	}
	return op.factory.Fingerprint(op.spec.prompt()), auth.Fingerprint
}
