// One-off: move the saved account under a new wrapping key, for example to
// change its authentication policy. The account alias stays the same.
// Usage: go run ./cmd/rewrap_key --new-key-alias bitmark-wrapping-key-2 --auth-validity 60
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/config"
	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
	"github.com/AlexZinkM/bitmark-wallet/internal/vault"
)

var rootCmd = &cobra.Command{
	Use:          "rewrap_key",
	Short:        "Re-encrypt the saved account under a new wrapping key",
	Args:         cobra.NoArgs,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().String("new-key-alias", "", "keystore alias of the new wrapping key")
	rootCmd.Flags().Int("auth-validity", 0, "validity window of the new key in seconds, -1 for every use, 0 keeps AUTH_VALIDITY_SECONDS")
	rootCmd.Flags().Bool("no-auth", false, "new key does not require authentication")
	_ = rootCmd.MarkFlagRequired("new-key-alias")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()
	if err := config.ConfigureLogger(cfg.LogLevel, cfg.LogPretty); err != nil {
		return err
	}

	newAlias, _ := cmd.Flags().GetString("new-key-alias")
	if newAlias == cfg.WrappingKeyAlias {
		return fmt.Errorf("new key alias must differ from %s", cfg.WrappingKeyAlias)
	}
	oldSpec := spec(cfg.WrappingKeyAlias, cfg.AuthRequired, cfg.AuthValidity())
	newSpec := oldSpec
	newSpec.KeyAlias = newAlias
	if noAuth, _ := cmd.Flags().GetBool("no-auth"); noAuth {
		newSpec.AuthenticationRequired = false
	}
	if secs, _ := cmd.Flags().GetInt("auth-validity"); secs != 0 {
		newSpec.ValidityDuration = time.Duration(secs) * time.Second
		if secs < 0 {
			newSpec.ValidityDuration = -1
		}
	}

	if err := config.PromptForPassword(); err != nil {
		return err
	}
	passphrase, err := config.GetPassphraseBytes()
	if err != nil {
		return err
	}
	defer clear(passphrase)

	ks, err := keystore.OpenFileStore(cfg.KeystorePath, passphrase)
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	defer ks.Close()

	v, err := vault.New(cfg.VaultDir, ks, auth.TerminalFactory{Verifier: ks})
	if err != nil {
		return err
	}
	return rewrap(cmd.Context(), v, cfg.AccountAlias, oldSpec, newSpec, cmd.ErrOrStderr())
}

func spec(keyAlias string, required bool, validity time.Duration) vault.AuthenticationSpec {
	return vault.AuthenticationSpec{
		KeyAlias:               keyAlias,
		AuthenticationRequired: required,
		ValidityDuration:       validity,
		Title:                  "Re-encrypt Bitmark account",
		Description:            "The account key moves to a new wrapping key",
	}
}

// rewrap reads the key, removes the old entry with its wrapping key and saves
// the key under the new one. If saving fails the key is put back under a
// fresh old wrapping key; if that fails too the recovery phrase is printed so
// nothing is lost.
func rewrap(ctx context.Context, v *vault.Vault, alias string, oldSpec, newSpec vault.AuthenticationSpec, out io.Writer) error {
	key, err := v.Get(ctx, alias, oldSpec)
	if err != nil {
		return fmt.Errorf("failed to read account: %w", err)
	}
	defer clear(key)

	if err := v.Remove(ctx, alias, oldSpec); err != nil {
		return fmt.Errorf("failed to remove old entry: %w", err)
	}

	saveErr := v.Save(ctx, alias, newSpec, key)
	if saveErr == nil {
		log.Info().Str("alias", alias).Str("key_alias", newSpec.KeyAlias).Msg("account re-encrypted")
		return nil
	}
	log.Error().Err(saveErr).Str("key_alias", newSpec.KeyAlias).Msg("failed to save under new key, restoring")

	if err := v.Save(ctx, alias, oldSpec, key); err == nil {
		return fmt.Errorf("account restored under %s: %w", oldSpec.KeyAlias, saveErr)
	}

	s, err := seed.FromEntropy(key)
	if err != nil {
		return fmt.Errorf("account key lost: %w", saveErr)
	}
	defer s.Destroy()
	words, err := s.Phrase(mnemonic.English)
	if err != nil {
		return fmt.Errorf("account key lost: %w", saveErr)
	}
	fmt.Fprintln(out, "Could not save the account. Recover it later with this phrase:")
	fmt.Fprintln(out, "  "+mnemonic.Join(words))
	return saveErr
}
