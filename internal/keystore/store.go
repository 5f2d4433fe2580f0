// Package keystore persists the single device master key in a local bbolt
// database and fronts it with a process-wide single-slot cache.
//
// The store is the exclusive owner of the key: the remote sync server never
// sees it, and deleting it is a true, irreversible key deletion: every
// previously encrypted record becomes permanently undecryptable afterwards.
package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
)

const (
	// masterKeyRecordID is the fixed, well-known identifier of the sole key record.
	masterKeyRecordID = "master"
)

// keysBucket is the bbolt bucket holding the key record.
var keysBucket = []byte("keys")

// keyRecord is the persisted representation of the master key.
type keyRecord struct {
	ID        string    `json:"id"`
	KeyData   string    `json:"keyData"`
	CreatedAt time.Time `json:"createdAt"`
	LastUsed  time.Time `json:"lastUsed"`
}

// cacheState tracks the single-slot cache explicitly, so "never looked" and
// "looked and found nothing" are distinct states rather than a nil sentinel.
type cacheState int

const (
	cacheNotLoaded cacheState = iota
	cacheAbsent
	cachePresent
)

// Store provides create/read/delete access to the device master key.
//
// Reads vastly outnumber writes; a mutex around the single-slot cache is all
// the coordination the store needs, since only one process touches its own
// local key file.
type Store struct {
	db     *bbolt.DB
	logger *slog.Logger

	mu     sync.Mutex
	state  cacheState
	cached *cryptoDomain.MasterKey
}

// Open opens (creating if necessary) the key store database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create key store directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open key store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keysBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create keys bucket: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database and clears the cache.
func (s *Store) Close() error {
	s.InvalidateCache()
	return s.db.Close()
}

// Initialize generates a fresh cryptographically random 256-bit master key,
// persists it as the sole key for this device, and returns it.
//
// Any prior key is overwritten; callers must not call this carelessly, as it
// orphans previously encrypted data.
func (s *Store) Initialize() (*cryptoDomain.MasterKey, error) {
	raw, err := generateKeyMaterial()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := &cryptoDomain.MasterKey{
		ID:        masterKeyRecordID,
		Key:       raw,
		CreatedAt: now,
		LastUsed:  now,
	}

	if err := s.persist(key); err != nil {
		return nil, err
	}

	s.setCached(key)
	s.logger.Info("master key initialized", slog.String("key_id", key.ID))
	return key, nil
}

// Get reads the persisted master key, refreshing its lastUsed timestamp.
// Returns ErrKeyUnavailable when no key has been set up on this device,
// distinct from ErrAuthenticationFailed, which means "key present but wrong".
func (s *Store) Get() (*cryptoDomain.MasterKey, error) {
	var record *keyRecord

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(keysBucket)
		data := bucket.Get([]byte(masterKeyRecordID))
		if data == nil {
			return nil
		}

		var rec keyRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to decode key record: %w", err)
		}

		rec.LastUsed = time.Now().UTC()
		updated, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("failed to encode key record: %w", err)
		}
		if err := bucket.Put([]byte(masterKeyRecordID), updated); err != nil {
			return fmt.Errorf("failed to update key record: %w", err)
		}

		record = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, cryptoDomain.ErrKeyUnavailable
	}

	return record.toMasterKey()
}

// GetCached is the memory-cached variant of Get. The first call populates the
// cache (including the absent case, so repeated calls do not re-hit storage)
// and the cache stays valid until InvalidateCache, Initialize, Import, or
// Delete changes it.
func (s *Store) GetCached() (*cryptoDomain.MasterKey, error) {
	s.mu.Lock()
	switch s.state {
	case cachePresent:
		key := s.cached
		s.mu.Unlock()
		return key, nil
	case cacheAbsent:
		s.mu.Unlock()
		return nil, cryptoDomain.ErrKeyUnavailable
	}
	s.mu.Unlock()

	key, err := s.Get()
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrKeyUnavailable) {
			s.mu.Lock()
			s.state = cacheAbsent
			s.cached = nil
			s.mu.Unlock()
		}
		return nil, err
	}

	s.setCached(key)
	return key, nil
}

// Delete irreversibly removes the persisted master key and clears the cache.
// This is a destructive, user-confirmed-only operation with no soft delete and
// no grace period: true key deletion is the intended security property.
func (s *Store) Delete() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(keysBucket).Delete([]byte(masterKeyRecordID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key record: %w", err)
	}

	s.mu.Lock()
	if s.cached != nil {
		cryptoDomain.Zero(s.cached.Key)
	}
	s.state = cacheAbsent
	s.cached = nil
	s.mu.Unlock()

	s.logger.Warn("master key deleted; previously encrypted records are unrecoverable")
	return nil
}

// InvalidateCache drops the in-memory key slot. Called on logout so a
// subsequent GetCached observes storage again.
func (s *Store) InvalidateCache() {
	s.mu.Lock()
	s.state = cacheNotLoaded
	s.cached = nil
	s.mu.Unlock()
}

// Export returns the lossless textual serialization of the key material.
func (s *Store) Export(key *cryptoDomain.MasterKey) string {
	return key.Export()
}

// Import validates an exported key string, installs it as the device master
// key, and returns it. Malformed input is rejected with ErrInvalidKeyFormat
// before anything is written, so a bad import never replaces a good key.
func (s *Store) Import(exported string) (*cryptoDomain.MasterKey, error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(exported)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKeyFormat, err)
	}
	if len(raw) != cryptoDomain.KeySize {
		cryptoDomain.Zero(raw)
		return nil, fmt.Errorf(
			"%w: key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeyFormat,
			cryptoDomain.KeySize,
			len(raw),
		)
	}

	now := time.Now().UTC()
	key := &cryptoDomain.MasterKey{
		ID:        masterKeyRecordID,
		Key:       raw,
		CreatedAt: now,
		LastUsed:  now,
	}

	if err := s.persist(key); err != nil {
		return nil, err
	}

	s.setCached(key)
	s.logger.Info("master key imported", slog.String("key_id", key.ID))
	return key, nil
}

// persist writes the key record, overwriting any existing one.
func (s *Store) persist(key *cryptoDomain.MasterKey) error {
	record := keyRecord{
		ID:        key.ID,
		KeyData:   base64.StdEncoding.EncodeToString(key.Key),
		CreatedAt: key.CreatedAt,
		LastUsed:  key.LastUsed,
	}

	data, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("failed to encode key record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(keysBucket).Put([]byte(masterKeyRecordID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to persist key record: %w", err)
	}

	return nil
}

// setCached installs key as the present cache slot.
func (s *Store) setCached(key *cryptoDomain.MasterKey) {
	s.mu.Lock()
	s.state = cachePresent
	s.cached = key
	s.mu.Unlock()
}

// generateKeyMaterial returns 32 fresh cryptographically random bytes.
func generateKeyMaterial() ([]byte, error) {
	raw := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate key material: %w", err)
	}
	return raw, nil
}

// toMasterKey decodes a persisted record into the domain key.
func (r *keyRecord) toMasterKey() (*cryptoDomain.MasterKey, error) {
	raw, err := base64.StdEncoding.DecodeString(r.KeyData)
	if err != nil {
		return nil, fmt.Errorf("%w: stored key data is corrupted: %v", cryptoDomain.ErrInvalidKeyFormat, err)
	}

	key := &cryptoDomain.MasterKey{
		ID:        r.ID,
		Key:       raw,
		CreatedAt: r.CreatedAt,
		LastUsed:  r.LastUsed,
	}
	if !key.Valid() {
		cryptoDomain.Zero(key.Key)
		return nil, fmt.Errorf("%w: stored key has wrong size", cryptoDomain.ErrInvalidKeySize)
	}

	return key, nil
}
