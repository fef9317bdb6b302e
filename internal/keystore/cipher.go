package keystore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/bitmark-wallet/internal/crypto"
)

// gcmCipher runs AES-256-GCM with the key alias as associated data. A per-use
// cipher is good for one DoFinal after it was authorized. An encrypt cipher is
// good for one DoFinal since its IV must not be reused. A spent cipher drops
// its key.
type gcmCipher struct {
	mu         sync.Mutex
	alias      string
	mode       Mode
	iv         []byte
	key        []byte
	perUse     bool
	authorized bool
	sealed     bool
}

func (c *gcmCipher) Mode() Mode {
	return c.mode
}

func (c *gcmCipher) IV() []byte {
	return append([]byte(nil), c.iv...)
}

func (c *gcmCipher) authorize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authorized = true
}

func (c *gcmCipher) DoFinal(data []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.authorized {
		return nil, ErrKeyNotAuthorized
	}
	if c.sealed {
		return nil, errors.New("cipher already used")
	}
	if c.perUse {
		c.authorized = false
	}
	if c.perUse || c.mode == Encrypt {
		defer c.spend()
	}

	aead, err := crypto.NewGCM(c.key)
	if err != nil {
		return nil, err
	}
	switch c.mode {
	case Encrypt:
		return aead.Seal(nil, c.iv, data, []byte(c.alias)), nil
	case Decrypt:
		out, err := aead.Open(nil, c.iv, data, []byte(c.alias))
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt with %s: %w", c.alias, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported cipher mode %s", c.mode)
	}
}

// spend seals the cipher and wipes its copy of the wrapping key.
func (c *gcmCipher) spend() {
	c.sealed = true
	clear(c.key)
	c.key = nil
}
