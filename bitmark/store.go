package bitmark

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
	"github.com/AlexZinkM/bitmark-wallet/internal/vault"
)

// Store keeps one account in the key vault. The vault entry holds the seed
// entropy, so the recovery phrase can be exported again after loading.
type Store struct {
	vault *vault.Vault
	alias string
	spec  vault.AuthenticationSpec
}

// NewStore binds an account alias to a wrapping key spec.
func NewStore(v *vault.Vault, alias string, spec vault.AuthenticationSpec) *Store {
	return &Store{vault: v, alias: alias, spec: spec}
}

// Alias returns the vault alias of the account.
func (s *Store) Alias() string {
	return s.alias
}

// Exists reports whether an account is saved. It needs no authentication.
func (s *Store) Exists() (bool, error) {
	return s.vault.Contains(s.alias)
}

// Save encrypts the account seed into the vault, replacing any saved one.
func (s *Store) Save(ctx context.Context, a *Account) error {
	entropy := a.Entropy()
	defer clear(entropy)

	if err := s.vault.Save(ctx, s.alias, s.spec, entropy); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// Load decrypts the saved account. fallback is the network of a 12-word seed.
func (s *Store) Load(ctx context.Context, fallback seed.Network) (*Account, error) {
	entropy, err := s.vault.Get(ctx, s.alias, s.spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	defer clear(entropy)
	return FromEntropy(entropy, fallback)
}

// Remove deletes the saved account together with its wrapping key.
func (s *Store) Remove(ctx context.Context) error {
	if err := s.vault.Remove(ctx, s.alias, s.spec); err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}
	return nil
}
