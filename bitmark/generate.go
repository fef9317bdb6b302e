package bitmark

import (
	"context"
	"errors"

	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

// AccountExistsError is an error when an account is already saved
type AccountExistsError struct {
	Alias string
}

func (e *AccountExistsError) Error() string {
	return "account already exists: " + e.Alias
}

// IsAccountExistsError checks if error is AccountExistsError
func IsAccountExistsError(err error) bool {
	var ae *AccountExistsError
	return errors.As(err, &ae)
}

// Generated describes a freshly saved account. Phrase is shown once so the
// user can write it down.
type Generated struct {
	AccountNumber string
	Network       seed.Network
	Phrase        []string
	QRCode        string
}

// GenerateAccount creates a random account and saves it. It refuses to
// overwrite a saved account.
func GenerateAccount(ctx context.Context, store *Store, version seed.Version, network seed.Network, lang mnemonic.Language) (*Generated, error) {
	a, err := NewAccount(version, network)
	if err != nil {
		return nil, err
	}
	defer a.Destroy()
	return persist(ctx, store, a, lang)
}

// ImportAccount recovers an account from phrase and saves it. It refuses to
// overwrite a saved account.
func ImportAccount(ctx context.Context, store *Store, phrase string, network seed.Network, lang mnemonic.Language) (*Generated, error) {
	a, err := RecoverAccount(phrase, network)
	if err != nil {
		return nil, err
	}
	defer a.Destroy()
	return persist(ctx, store, a, lang)
}

func persist(ctx context.Context, store *Store, a *Account, lang mnemonic.Language) (*Generated, error) {
	exists, err := store.Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &AccountExistsError{Alias: store.Alias()}
	}

	phrase, err := a.Phrase(lang)
	if err != nil {
		return nil, err
	}
	qr, err := a.QRCode()
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, a); err != nil {
		return nil, err
	}
	return &Generated{
		AccountNumber: a.AccountNumber(),
		Network:       a.Network(),
		Phrase:        phrase,
		QRCode:        qr,
	}, nil
}
