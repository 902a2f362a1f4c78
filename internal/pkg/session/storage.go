package session

import (
	"encoding/json"
	"os"
	"sync"
)

// Storage keys are fixed; both tokens are always written and cleared
// together, never independently.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// TokenStorage is the durable client-side store for the token pair
type TokenStorage interface {
	Load() (accessToken, refreshToken string, err error)
	Save(accessToken, refreshToken string) error
	Clear() error
}

// MemoryStorage is an in-process TokenStorage, used in tests and by
// callers without a durable location
type MemoryStorage struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh, nil
}

func (m *MemoryStorage) Save(accessToken, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = accessToken
	m.refresh = refreshToken
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	return nil
}

// FileStorage persists the token pair as a small JSON file keyed with
// the fixed storage keys
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a file-backed storage at path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load() (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", err
	}

	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return "", "", err
	}
	return kv[KeyAccessToken], kv[KeyRefreshToken], nil
}

func (f *FileStorage) Save(accessToken, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(map[string]string{
		KeyAccessToken:  accessToken,
		KeyRefreshToken: refreshToken,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileStorage) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
