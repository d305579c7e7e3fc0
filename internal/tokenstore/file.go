package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Credentials is the on-disk session document
type Credentials struct {
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// codec transforms the serialized document before it touches disk
type codec interface {
	seal(plain []byte) ([]byte, error)
	open(sealed []byte) ([]byte, error)
}

// plainCodec writes the document as-is
type plainCodec struct{}

func (plainCodec) seal(plain []byte) ([]byte, error)  { return plain, nil }
func (plainCodec) open(sealed []byte) ([]byte, error) { return sealed, nil }

// FileStore persists tokens in a single owner-only file
type FileStore struct {
	mu    sync.Mutex
	path  string
	codec codec
}

// NewFileStore creates a store backed by a plain JSON file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, codec: plainCodec{}}
}

func (f *FileStore) GetAccessToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	creds, err := f.load()
	if err != nil {
		return "", err
	}
	return creds.AccessToken, nil
}

func (f *FileStore) GetRefreshToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	creds, err := f.load()
	if err != nil {
		return "", err
	}
	return creds.RefreshToken, nil
}

func (f *FileStore) SetAccessToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// An unreadable file still holds the refresh token, so it is never overwritten here
	creds, err := f.load()
	if err != nil {
		return err
	}
	creds.AccessToken = token
	return f.save(creds)
}

func (f *FileStore) SetSession(access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(&Credentials{AccessToken: access, RefreshToken: refresh})
}

// Clear removes the credentials file
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// load reads the document; a missing file is an empty session
func (f *FileStore) load() (*Credentials, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{}, nil
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	plain, err := f.codec.open(data)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(plain, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return &creds, nil
}

func (f *FileStore) save(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	creds.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	sealed, err := f.codec.seal(data)
	if err != nil {
		return err
	}

	// Write to a sibling and rename so a crash never leaves half a file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}
