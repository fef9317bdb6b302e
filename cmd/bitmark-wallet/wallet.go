package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/bitmark-wallet/bitmark"
	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/config"
	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
	"github.com/AlexZinkM/bitmark-wallet/internal/vault"
)

// wallet is everything a command needs once the keystore is open.
type wallet struct {
	cfg      *config.Config
	keystore *keystore.FileStore
	store    *bitmark.Store
}

// openWallet loads the configuration, prompts for the keystore passphrase and
// opens the vault. Interactive commands challenge on the terminal; the server
// answers challenges with the passphrase entered at start-up.
func openWallet(interactive bool) (*wallet, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	cfg := config.Get()
	if err := config.ConfigureLogger(cfg.LogLevel, cfg.LogPretty); err != nil {
		return nil, err
	}
	if err := config.PromptForPassword(); err != nil {
		return nil, err
	}

	passphrase, err := config.GetPassphraseBytes()
	if err != nil {
		return nil, err
	}
	defer clear(passphrase)

	ks, err := keystore.OpenFileStore(cfg.KeystorePath, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore: %w", err)
	}

	factory := auth.TerminalFactory{Verifier: ks}
	if !interactive {
		factory.Options = []auth.TerminalOption{
			auth.WithPasswordReader(config.GetPassphraseBytes),
			auth.WithOutput(io.Discard),
		}
	}
	v, err := vault.New(cfg.VaultDir, ks, factory)
	if err != nil {
		_ = ks.Close()
		return nil, err
	}

	log.Debug().
		Str("vault_dir", cfg.VaultDir).
		Str("network", cfg.Network).
		Bool("interactive", interactive).
		Msg("wallet opened")

	return &wallet{
		cfg:      cfg,
		keystore: ks,
		store:    bitmark.NewStore(v, cfg.AccountAlias, authSpec(cfg, cfg.WrappingKeyAlias)),
	}, nil
}

func authSpec(cfg *config.Config, keyAlias string) vault.AuthenticationSpec {
	return vault.AuthenticationSpec{
		KeyAlias:               keyAlias,
		AuthenticationRequired: cfg.AuthRequired,
		ValidityDuration:       cfg.AuthValidity(),
		Title:                  "Unlock Bitmark account",
		Description:            "Your account key is encrypted in the local vault",
	}
}

func (w *wallet) Close() error {
	w.keystore.Lock()
	return w.keystore.Close()
}
