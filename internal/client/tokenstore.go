package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/01moynul/marketpro-admin/internal/models"
)

// StorageKey is the key the login is persisted under.
const StorageKey = "authUser"

// StoredAuth is what survives between runs: the last user and their token.
type StoredAuth struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// TokenStore persists the login. Load reports ok=false when nothing is stored.
type TokenStore interface {
	Load() (StoredAuth, bool, error)
	Save(StoredAuth) error
	Clear() error
}

// FileStore keeps the login in a small JSON file, readable only by the owner.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath is <user config dir>/marketpro/auth.json.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "marketpro", "auth.json"), nil
}

func (f *FileStore) Load() (StoredAuth, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return StoredAuth{}, false, nil
	}
	if err != nil {
		return StoredAuth{}, false, fmt.Errorf("read %s: %w", f.path, err)
	}

	var doc map[string]StoredAuth
	if err := json.Unmarshal(data, &doc); err != nil {
		return StoredAuth{}, false, fmt.Errorf("decode %s: %w", f.path, err)
	}
	a, ok := doc[StorageKey]
	if !ok || a.Token == "" {
		return StoredAuth{}, false, nil
	}
	return a, true, nil
}

func (f *FileStore) Save(a StoredAuth) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(map[string]StoredAuth{StorageKey: a}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(f.path), err)
	}

	// Write then rename so a crash never leaves half a file behind.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}
	return nil
}

// MemoryStore keeps the login in memory only.
type MemoryStore struct {
	mu   sync.Mutex
	auth *StoredAuth
}

func (m *MemoryStore) Load() (StoredAuth, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.auth == nil {
		return StoredAuth{}, false, nil
	}
	return *m.auth, true, nil
}

func (m *MemoryStore) Save(a StoredAuth) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = &a
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = nil
	return nil
}
