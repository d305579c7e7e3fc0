package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/devilmonastery/warehouse/internal/client"
	"github.com/devilmonastery/warehouse/internal/config"
)

// exerciseStore runs the behaviour every TokenStore must share
func exerciseStore(t *testing.T, store client.TokenStore) {
	t.Helper()

	access, err := store.GetAccessToken()
	if err != nil || access != "" {
		t.Fatalf("empty store GetAccessToken() = %q, %v; want empty, nil", access, err)
	}
	refresh, err := store.GetRefreshToken()
	if err != nil || refresh != "" {
		t.Fatalf("empty store GetRefreshToken() = %q, %v; want empty, nil", refresh, err)
	}

	if err := store.SetSession("tok1", "ref1"); err != nil {
		t.Fatalf("SetSession() error = %v", err)
	}
	assertTokens(t, store, "tok1", "ref1")

	if err := store.SetAccessToken("tok2"); err != nil {
		t.Fatalf("SetAccessToken() error = %v", err)
	}
	assertTokens(t, store, "tok2", "ref1")

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	assertTokens(t, store, "", "")

	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func assertTokens(t *testing.T, store client.TokenStore, wantAccess, wantRefresh string) {
	t.Helper()
	access, err := store.GetAccessToken()
	if err != nil {
		t.Fatalf("GetAccessToken() error = %v", err)
	}
	refresh, err := store.GetRefreshToken()
	if err != nil {
		t.Fatalf("GetRefreshToken() error = %v", err)
	}
	if access != wantAccess || refresh != wantRefresh {
		t.Errorf("tokens = (%q, %q), want (%q, %q)", access, refresh, wantAccess, wantRefresh)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials-development.json")
	store := NewFileStore(path)
	exerciseStore(t, store)

	if err := store.SetSession("tok1", "ref1"); err != nil {
		t.Fatalf("SetSession() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credentials mode = %o, want 600", perm)
	}

	// A second store on the same path sees the persisted session
	assertTokens(t, NewFileStore(path), "tok1", "ref1")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)

	if _, err := store.GetAccessToken(); err == nil {
		t.Error("GetAccessToken() error = nil for corrupt file")
	}
	if err := store.SetAccessToken("tok1"); err == nil {
		t.Error("SetAccessToken() error = nil for corrupt file")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "{not json" {
		t.Errorf("corrupt file was overwritten with %q", raw)
	}
}

func TestEncryptedFileStore(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := NewEncryptedFileStore(path, key)
	if err != nil {
		t.Fatalf("NewEncryptedFileStore() error = %v", err)
	}
	exerciseStore(t, store)

	if err := store.SetSession("tok1", "ref1"); err != nil {
		t.Fatalf("SetSession() error = %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if containsAny(string(raw), "tok1", "ref1", "access_token") {
		t.Error("encrypted file contains plaintext")
	}

	otherKey, _ := GenerateKey()
	wrong, err := NewEncryptedFileStore(path, otherKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wrong.GetAccessToken(); err != ErrDecrypt {
		t.Errorf("wrong key GetAccessToken() error = %v, want ErrDecrypt", err)
	}
	if err := wrong.SetAccessToken("tok2"); err != ErrDecrypt {
		t.Errorf("wrong key SetAccessToken() error = %v, want ErrDecrypt", err)
	}
	// The refresh token survives a write attempt with the wrong key
	assertTokens(t, store, "tok1", "ref1")

	raw[len(raw)-1] ^= 0xff
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetRefreshToken(); err != ErrDecrypt {
		t.Errorf("tampered GetRefreshToken() error = %v, want ErrDecrypt", err)
	}
}

func TestNewEncryptedFileStore_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "not base64", key: "%%%"},
		{name: "too short", key: "c2hvcnQ="},
		{name: "empty", key: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEncryptedFileStore("unused", tt.key); err == nil {
				t.Error("NewEncryptedFileStore() error = nil, want error")
			}
		})
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	key, _ := GenerateKey()

	tests := []struct {
		name    string
		session config.SessionConfig
		want    string
		wantErr bool
	}{
		{name: "memory", session: config.SessionConfig{Store: KindMemory}, want: "*tokenstore.MemoryStore"},
		{name: "file", session: config.SessionConfig{Store: KindFile, Path: filepath.Join(dir, "a.json")}, want: "*tokenstore.FileStore"},
		{name: "encrypted", session: config.SessionConfig{Store: KindEncrypted, Path: filepath.Join(dir, "b.enc"), EncryptionKey: key}, want: "*tokenstore.FileStore"},
		{name: "encrypted without key", session: config.SessionConfig{Store: KindEncrypted, Path: filepath.Join(dir, "c.enc")}, wantErr: true},
		{name: "unknown", session: config.SessionConfig{Store: "s3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: config.EnvDevelopment, Session: tt.session}
			store, err := New(context.Background(), cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := typeName(store); got != tt.want {
				t.Errorf("New() type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := DefaultPath(config.EnvProduction)
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	want := filepath.Join(home, ".config", "warehouse", "credentials-production.json")
	if got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
