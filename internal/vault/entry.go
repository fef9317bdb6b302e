package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/AlexZinkM/bitmark-wallet/internal/crypto"
)

const (
	entryExt       = ".key"
	entrySeparator = "/"
)

// ErrEntryNotFound is returned when no encrypted key is stored for an alias.
var ErrEntryNotFound = errors.New("encrypted key not found")

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]{0,127}$`)

func validAlias(alias string) bool {
	return aliasPattern.MatchString(alias)
}

// Entry is the encrypted key stored for one alias.
type Entry struct {
	Alias      string
	CipherText []byte
	IV         []byte
}

// MarshalText renders BASE58(ciphertext) + "/" + BASE58(iv).
func (e *Entry) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(e.CipherText) + entrySeparator + base58.Encode(e.IV)), nil
}

// UnmarshalText parses the stored form. The alias is not part of it.
func (e *Entry) UnmarshalText(text []byte) error {
	parts := strings.Split(strings.TrimSpace(string(text)), entrySeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return errors.New("malformed encrypted key")
	}
	ct, err := base58.Decode(parts[0])
	if err != nil {
		return fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	iv, err := base58.Decode(parts[1])
	if err != nil {
		return fmt.Errorf("failed to decode iv: %w", err)
	}
	e.CipherText, e.IV = ct, iv
	return nil
}

func (v *Vault) entryPath(alias string) string {
	return filepath.Join(v.dir, alias+entryExt)
}

func (v *Vault) readEntry(alias string) (*Entry, error) {
	data, err := crypto.ReadFile(v.entryPath(alias))
	if errors.Is(err, crypto.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, alias)
	}
	if err != nil {
		return nil, err
	}
	e := &Entry{Alias: alias}
	if err := e.UnmarshalText(data); err != nil {
		return nil, err
	}
	return e, nil
}

func (v *Vault) writeEntry(e *Entry) error {
	data, err := e.MarshalText()
	if err != nil {
		return err
	}
	return crypto.WriteFileAtomic(v.entryPath(e.Alias), data)
}

func (v *Vault) deleteEntry(alias string) error {
	err := os.Remove(v.entryPath(alias))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete encrypted key: %w", err)
	}
	return nil
}
