package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("VAULT_DIR", t.TempDir())
	t.Setenv("KEYSTORE_PATH", "/tmp/keystore.json")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "testnet", c.Network)
	assert.Equal(t, "bitmark-account", c.AccountAlias)
	assert.Equal(t, "bitmark-wrapping-key", c.WrappingKeyAlias)
	assert.True(t, c.AuthRequired)
	assert.Equal(t, 5*time.Minute, c.AuthValidity())
}

func TestLoadRequiresPaths(t *testing.T) {
	// t.Setenv restores the variables after the test; unset them for it.
	t.Setenv("VAULT_DIR", "")
	t.Setenv("KEYSTORE_PATH", "")
	require.NoError(t, os.Unsetenv("VAULT_DIR"))
	require.NoError(t, os.Unsetenv("KEYSTORE_PATH"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"network", "BITMARK_NETWORK", "regtest"},
		{"language", "MNEMONIC_LANGUAGE", "fr"},
		{"log level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateAliases(t *testing.T) {
	setRequired(t)
	c, err := Load()
	require.NoError(t, err)

	c.AccountAlias = ""
	assert.Error(t, c.Validate())
}

func TestGlobalGetters(t *testing.T) {
	setRequired(t)
	t.Setenv("BITMARK_NETWORK", "livenet")
	t.Setenv("MNEMONIC_LANGUAGE", "zh-tw")
	t.Setenv("AUTH_VALIDITY_SECONDS", "-1")

	require.NoError(t, Init())
	assert.Equal(t, seed.Livenet, GetNetwork())
	assert.Equal(t, mnemonic.ChineseTraditional, GetLanguage())
	assert.Equal(t, "/tmp/keystore.json", GetKeystorePath())
	assert.Equal(t, time.Duration(-1), Get().AuthValidity())
}

func TestPassphrase(t *testing.T) {
	assert.Error(t, SetPassphrase(nil))
	require.NoError(t, SetPassphrase([]byte("secret")))

	p, err := GetPassphraseBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), p)

	// The caller clearing its copy leaves the stored one intact.
	clear(p)
	p, err = GetPassphraseBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), p)
}

func TestConfigureLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	require.NoError(t, configureLogger(&buf, "WARN", false))
	log.Info().Msg("hidden")
	log.Warn().Str("alias", "a").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"alias":"a"`)

	assert.Error(t, configureLogger(&buf, "loud", false))
}
