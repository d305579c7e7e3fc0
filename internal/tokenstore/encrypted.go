package tokenstore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// ErrDecrypt is returned when the credentials file cannot be opened with the configured key
var ErrDecrypt = errors.New("credentials could not be decrypted; wrong key or tampered file")

// secretboxCodec seals the document as nonce || secretbox(plain)
type secretboxCodec struct {
	key [keySize]byte
}

func (c *secretboxCodec) seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &c.key), nil
}

func (c *secretboxCodec) open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// NewEncryptedFileStore creates a file store whose contents are sealed with
// NaCl secretbox. key is the base64 encoding of 32 random bytes.
func NewEncryptedFileStore(path, key string) (*FileStore, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("invalid encryption key: want %d bytes, got %d", keySize, len(raw))
	}

	c := &secretboxCodec{}
	copy(c.key[:], raw)
	return &FileStore{path: path, codec: c}, nil
}

// GenerateKey returns a new random key suitable for session.encryption_key
func GenerateKey() (string, error) {
	var key [keySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key[:]), nil
}
