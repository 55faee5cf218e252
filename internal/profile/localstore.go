package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/finbuzz/finbuzz/internal/common"
)

// Durable local KV keys.
const (
	localKeyProfile  = "userProfile"
	localKeyDarkMode = "darkMode"
)

// LocalStore is a small durable key-value file, the server-side analogue of
// the browser's local storage. Writes rewrite the whole file; the dataset
// is a handful of keys.
type LocalStore struct {
	path string
	mu   sync.Mutex
}

// NewLocalStore creates a local store at dir/localstore.json.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create local store dir: %w", err)
	}
	return &LocalStore{path: filepath.Join(dir, "localstore.json")}, nil
}

func (s *LocalStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local store: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt file degrades to empty rather than blocking sign-in.
		return make(map[string]json.RawMessage), nil
	}
	return entries, nil
}

func (s *LocalStore) save(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal local store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	return nil
}

// Set stores value under key.
func (s *LocalStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}
	entries[key] = raw
	return s.save(entries)
}

// Get unmarshals the value under key into out, or common.ErrNotFound.
func (s *LocalStore) Get(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	raw, ok := entries[key]
	if !ok {
		return fmt.Errorf("local key %q: %w", key, common.ErrNotFound)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal %q: %w", key, err)
	}
	return nil
}

// Delete removes key if present.
func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	delete(entries, key)
	return s.save(entries)
}
