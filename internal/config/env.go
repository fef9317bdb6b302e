package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

// Config contains all configuration parameters for the application.
// Note: the keystore passphrase is prompted at runtime and stored in memory - use GetPassphraseBytes()
type Config struct {
	Port                string `envconfig:"PORT" default:"8080"`
	Network             string `envconfig:"BITMARK_NETWORK" default:"testnet"`
	MnemonicLanguage    string `envconfig:"MNEMONIC_LANGUAGE" default:"en"`
	VaultDir            string `envconfig:"VAULT_DIR" required:"true"`
	KeystorePath        string `envconfig:"KEYSTORE_PATH" required:"true"`
	AccountAlias        string `envconfig:"ACCOUNT_ALIAS" default:"bitmark-account"`
	WrappingKeyAlias    string `envconfig:"WRAPPING_KEY_ALIAS" default:"bitmark-wrapping-key"`
	AuthRequired        bool   `envconfig:"AUTH_REQUIRED" default:"true"`
	AuthValiditySeconds int    `envconfig:"AUTH_VALIDITY_SECONDS" default:"300"`
	LogLevel            string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty           bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Validate checks the values envconfig cannot check by itself.
func (c *Config) Validate() error {
	if _, err := seed.ParseNetwork(c.Network); err != nil {
		return fmt.Errorf("BITMARK_NETWORK: %w", err)
	}
	if _, err := mnemonic.ParseLanguage(c.MnemonicLanguage); err != nil {
		return fmt.Errorf("MNEMONIC_LANGUAGE: %w", err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.AccountAlias == "" || c.WrappingKeyAlias == "" {
		return errors.New("ACCOUNT_ALIAS and WRAPPING_KEY_ALIAS cannot be empty")
	}
	return nil
}

// AuthValidity converts AUTH_VALIDITY_SECONDS; a non-positive value means
// every use of the key is authenticated.
func (c *Config) AuthValidity() time.Duration {
	if c.AuthValiditySeconds <= 0 {
		return -1
	}
	return time.Duration(c.AuthValiditySeconds) * time.Second
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and validates a configuration without touching the global one.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetNetwork returns the parsed bitmark network
func GetNetwork() seed.Network {
	n, _ := seed.ParseNetwork(Get().Network)
	return n
}

// GetLanguage returns the parsed mnemonic language
func GetLanguage() mnemonic.Language {
	l, _ := mnemonic.ParseLanguage(Get().MnemonicLanguage)
	return l
}

// GetVaultDir returns the directory of encrypted keys
func GetVaultDir() string {
	return Get().VaultDir
}

// GetKeystorePath returns path to the keystore file
func GetKeystorePath() string {
	return Get().KeystorePath
}

// ConfigureLogger sets the global zerolog level and output.
func ConfigureLogger(level string, pretty bool) error {
	return configureLogger(os.Stderr, level, pretty)
}

func configureLogger(w io.Writer, level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

var passphraseBytes []byte

// PromptForPassword prompts the user for the keystore passphrase in the terminal.
// The passphrase is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter keystore passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	defer clear(raw)
	return SetPassphrase(raw)
}

// SetPassphrase stores a copy of p as the in-memory passphrase.
func SetPassphrase(p []byte) error {
	if len(p) == 0 {
		return errors.New("passphrase cannot be empty")
	}
	clear(passphraseBytes)
	passphraseBytes = make([]byte, len(p))
	copy(passphraseBytes, p)
	return nil
}

// GetPassphraseBytes returns the passphrase stored in memory (from PromptForPassword).
// Returns an error if the passphrase was not set.
// Caller must zero the returned slice after use for security.
func GetPassphraseBytes() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}
