// Package vault stores raw private keys encrypted under a wrapping key from
// the secure keystore. Using a key that requires authentication runs one
// challenge through an auth.Authenticator and retries once.
//
// Operations on the same alias must be serialized by the caller; the vault
// does not lock per alias.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
)

// Vault keeps one encrypted key file per alias in dir.
type Vault struct {
	dir            string
	store          keystore.Store
	authenticators auth.Factory
}

// New creates dir if needed.
func New(dir string, store keystore.Store, authenticators auth.Factory) (*Vault, error) {
	if err := common.FirstInvalid(
		common.CheckValid(dir != "", "vault directory is required"),
		common.CheckValid(store != nil, "keystore is required"),
		common.CheckValid(authenticators != nil, "authenticator factory is required"),
	); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}
	return &Vault{dir: dir, store: store, authenticators: authenticators}, nil
}

// Save encrypts key under the wrapping key of spec, generating the wrapping
// key with spec's policy if it does not exist, and stores it under alias.
func (v *Vault) Save(ctx context.Context, alias string, spec AuthenticationSpec, key []byte) error {
	if err := common.FirstInvalid(
		common.CheckValid(validAlias(alias), "invalid alias"),
		spec.validate(),
		common.CheckValid(len(key) > 0, "key is empty"),
	); err != nil {
		return err
	}

	info, created, err := keystore.GenerateOrGet(v.store, spec.KeyAlias, spec.policy())
	if err != nil {
		return classify("save", err)
	}
	live := spec.WithKeyInfo(info)
	log.Debug().
		Str("key_alias", spec.KeyAlias).
		Bool("created", created).
		Bool("authentication_required", live.AuthenticationRequired).
		Dur("validity", live.ValidityDuration).
		Msg("wrapping key ready")

	op := newOperation("save", alias, live, v.authenticators)
	// The caller's window decides here, not the live key's.
	op.perUse = live.AuthenticationRequired && !spec.WillInvalidateInTimeFrame()
	op.newCipher = func() (keystore.Cipher, error) {
		return v.store.NewCipher(spec.KeyAlias, keystore.Encrypt, nil)
	}
	op.finish = func(c keystore.Cipher) error {
		ct, err := c.DoFinal(key)
		if err != nil {
			return err
		}
		return v.writeEntry(&Entry{Alias: alias, CipherText: ct, IV: c.IV()})
	}
	return op.run(ctx)
}

// Get decrypts the key stored under alias. The caller should clear the
// returned slice after use.
func (v *Vault) Get(ctx context.Context, alias string, spec AuthenticationSpec) ([]byte, error) {
	if err := common.FirstInvalid(
		common.CheckValid(validAlias(alias), "invalid alias"),
		spec.validate(),
	); err != nil {
		return nil, err
	}

	exists, err := v.store.Contains(spec.KeyAlias)
	if err != nil {
		return nil, classify("get", err)
	}
	if !exists {
		return nil, &common.ValidationError{Message: "encryption key alias does not exist"}
	}
	info, err := v.store.Info(spec.KeyAlias)
	if err != nil {
		return nil, classify("get", err)
	}
	live := spec.WithKeyInfo(info)

	entry, err := v.readEntry(alias)
	if err != nil {
		return nil, classify("get", err)
	}

	var key []byte
	op := newOperation("get", alias, live, v.authenticators)
	op.perUse = live.AuthenticationRequired && !live.WillInvalidateInTimeFrame()
	op.newCipher = func() (keystore.Cipher, error) {
		return v.store.NewCipher(spec.KeyAlias, keystore.Decrypt, entry.IV)
	}
	op.finish = func(c keystore.Cipher) error {
		out, err := c.DoFinal(entry.CipherText)
		if err != nil {
			return err
		}
		key = out
		return nil
	}
	if err := op.run(ctx); err != nil {
		return nil, err
	}
	return key, nil
}

// Remove always runs a device challenge, then deletes the wrapping key and
// the encrypted key file.
func (v *Vault) Remove(ctx context.Context, alias string, spec AuthenticationSpec) error {
	if err := common.FirstInvalid(
		common.CheckValid(validAlias(alias), "invalid alias"),
		spec.validate(),
	); err != nil {
		return err
	}

	op := newOperation("remove", alias, spec, v.authenticators)
	op.transition(stateNeedsAuth)
	return op.challenge(ctx, v.authenticators.Device(spec.prompt()), auth.Device, nil, func(keystore.Cipher) error {
		if err := v.store.Delete(spec.KeyAlias); err != nil {
			return op.fail(err)
		}
		if err := v.deleteEntry(alias); err != nil {
			return op.fail(err)
		}
		op.transition(stateSucceeded)
		return nil
	})
}

// Contains reports whether an encrypted key is stored under alias. It does
// not touch the keystore and needs no authentication.
func (v *Vault) Contains(alias string) (bool, error) {
	if !validAlias(alias) {
		return false, &common.ValidationError{Message: "invalid alias"}
	}
	_, err := v.readEntry(alias)
	if errors.Is(err, ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, classify("contains", err)
	}
	return true, nil
}
