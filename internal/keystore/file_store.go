package keystore

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/bitmark-wallet/internal/crypto"
)

const (
	fileStoreVersion = 1
	wrappingKeyLen   = 32
)

// FileStore is a software keystore. Wrapping keys live in one file sealed
// under the device passphrase; the same passphrase is the device credential
// that authenticates the user. Authentication state is kept in memory only.
type FileStore struct {
	mu                sync.RWMutex
	path              string
	passphrase        []byte
	kdf               crypto.KDFParams
	clock             clock.Clock
	keys              map[string]*storedKey
	lastAuthenticated time.Time
}

type storedKey struct {
	Key                    []byte        `json:"key"`
	AuthenticationRequired bool          `json:"authenticationRequired"`
	ValidityDuration       time.Duration `json:"validityDuration"`
	HardwareBacked         bool          `json:"hardwareBacked"`
	CreatedAt              time.Time     `json:"createdAt"`
}

func (k *storedKey) policy() Policy {
	return Policy{
		AuthenticationRequired: k.AuthenticationRequired,
		ValidityDuration:       k.ValidityDuration,
		HardwareBacked:         k.HardwareBacked,
	}
}

type storeFile struct {
	Version int            `json:"version"`
	Store   *crypto.Sealed `json:"store"`
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock replaces the wall clock used for validity windows.
func WithClock(c clock.Clock) Option {
	return func(s *FileStore) { s.clock = c }
}

// WithKDFParams replaces the scrypt cost used when the store is written.
func WithKDFParams(p crypto.KDFParams) Option {
	return func(s *FileStore) { s.kdf = p }
}

// OpenFileStore loads the store at path, or starts an empty one when the file
// does not exist. A wrong passphrase returns ErrCredentialMismatch.
func OpenFileStore(path string, passphrase []byte, opts ...Option) (*FileStore, error) {
	if len(passphrase) == 0 {
		return nil, crypto.ErrEmptyPassword
	}
	s := &FileStore{
		path:       path,
		passphrase: append([]byte(nil), passphrase...),
		kdf:        crypto.DefaultKDFParams(),
		clock:      clock.NewDefaultClock(),
		keys:       make(map[string]*storedKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := crypto.ReadFile(s.path)
	if errors.Is(err, crypto.ErrFileNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
	}
	if f.Version > fileStoreVersion || f.Store == nil {
		return fmt.Errorf("%w: unsupported version %d", ErrStoreCorrupted, f.Version)
	}

	plaintext, err := crypto.Open(f.Store, s.passphrase)
	if errors.Is(err, crypto.ErrInvalidPassword) {
		return ErrCredentialMismatch
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
	}
	defer clear(plaintext)

	if err := json.Unmarshal(plaintext, &s.keys); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
	}
	if s.keys == nil {
		s.keys = make(map[string]*storedKey)
	}
	return nil
}

// persistLocked seals and writes every key. Must be called with write lock held.
func (s *FileStore) persistLocked() error {
	plaintext, err := json.Marshal(s.keys)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStorePersist, err)
	}
	defer clear(plaintext)

	sealed, err := crypto.Seal(plaintext, s.passphrase, s.kdf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorePersist, err)
	}
	data, err := json.MarshalIndent(storeFile{Version: fileStoreVersion, Store: sealed}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStorePersist, err)
	}
	if err := crypto.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorePersist, err)
	}
	return nil
}

func (s *FileStore) Contains(alias string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[alias]
	return ok, nil
}

// Generate creates a random AES-256 wrapping key. Secure hardware is not
// available to a software store, so HardwareBacked is recorded but unmet.
func (s *FileStore) Generate(alias string, policy Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[alias]; ok {
		return ErrKeyExists
	}

	key := make([]byte, wrappingKeyLen)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate wrapping key: %w", err)
	}
	if policy.HardwareBacked {
		log.Debug().Str("key_alias", alias).Msg("secure hardware unavailable, using software key")
	}

	s.keys[alias] = &storedKey{
		Key:                    key,
		AuthenticationRequired: policy.AuthenticationRequired,
		ValidityDuration:       policy.ValidityDuration,
		HardwareBacked:         policy.HardwareBacked,
		CreatedAt:              s.clock.Now().UTC(),
	}
	if err := s.persistLocked(); err != nil {
		delete(s.keys, alias)
		clear(key)
		return err
	}
	return nil
}

func (s *FileStore) Info(alias string) (*KeyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.keys[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, alias)
	}
	return &KeyInfo{
		Alias:     alias,
		Policy:    k.policy(),
		CreatedAt: k.CreatedAt,
	}, nil
}

// Delete removes alias. Deleting a missing key is not an error.
func (s *FileStore) Delete(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.keys[alias]
	if !ok {
		return nil
	}
	delete(s.keys, alias)
	if err := s.persistLocked(); err != nil {
		s.keys[alias] = k
		return err
	}
	clear(k.Key)
	return nil
}

// NewCipher binds a cipher to alias. Encrypt generates a fresh IV and must be
// called with a nil iv; Decrypt requires the IV the data was sealed with.
func (s *FileStore) NewCipher(alias string, mode Mode, iv []byte) (Cipher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.keys[alias]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, alias)
	}

	policy := k.policy()
	if policy.AuthenticationRequired && !policy.PerUse() && !s.authenticatedWithinLocked(policy.ValidityDuration) {
		return nil, ErrUserNotAuthenticated
	}

	switch mode {
	case Encrypt:
		if iv != nil {
			return nil, errors.New("encrypt cipher generates its own IV")
		}
		iv = make([]byte, crypto.NonceLen)
		if _, err := rand.Read(iv); err != nil {
			return nil, fmt.Errorf("failed to generate IV: %w", err)
		}
	case Decrypt:
		if len(iv) != crypto.NonceLen {
			return nil, fmt.Errorf("invalid IV length %d", len(iv))
		}
		iv = append([]byte(nil), iv...)
	default:
		return nil, fmt.Errorf("unsupported cipher mode %s", mode)
	}

	return &gcmCipher{
		alias:      alias,
		mode:       mode,
		iv:         iv,
		key:        append([]byte(nil), k.Key...),
		perUse:     policy.PerUse(),
		authorized: !policy.PerUse(),
	}, nil
}

func (s *FileStore) authenticatedWithinLocked(validity time.Duration) bool {
	if s.lastAuthenticated.IsZero() {
		return false
	}
	return s.clock.Now().Before(s.lastAuthenticated.Add(validity))
}

// VerifyCredential checks the device credential and, on success, opens the
// validity window of every time-bound key.
func (s *FileStore) VerifyCredential(secret []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if subtle.ConstantTimeCompare(secret, s.passphrase) != 1 {
		return ErrCredentialMismatch
	}
	s.lastAuthenticated = s.clock.Now()
	return nil
}

// AuthorizeCipher verifies the credential and authorizes one operation of a
// per-use cipher created by this store.
func (s *FileStore) AuthorizeCipher(c Cipher, secret []byte) error {
	gc, ok := c.(*gcmCipher)
	if !ok {
		return fmt.Errorf("cipher %T does not belong to this store", c)
	}
	if err := s.VerifyCredential(secret); err != nil {
		return err
	}
	gc.authorize()
	return nil
}

// Lock forgets the last successful authentication.
func (s *FileStore) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAuthenticated = time.Time{}
}

// Close wipes key material held in memory.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.keys {
		clear(k.Key)
	}
	clear(s.passphrase)
	s.keys = map[string]*storedKey{}
	return nil
}
