package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	sealVersion = "v1"
	sealInfo    = "passvault/entry/"
)

var (
	ErrEmptyKey      = errors.New("encryption key is empty")
	ErrMalformedSeal = errors.New("malformed sealed value")
)

// Sealer encrypts entry secrets at rest with AES-256-GCM. Each owner gets
// its own key derived from the master key, and the owner id is bound as
// additional data so a sealed value cannot be moved between accounts.
type Sealer struct {
	master []byte
}

func NewSealer(masterKey []byte) (*Sealer, error) {
	if len(masterKey) == 0 {
		return nil, ErrEmptyKey
	}
	k := make([]byte, len(masterKey))
	copy(k, masterKey)
	return &Sealer{master: k}, nil
}

func (s *Sealer) aead(ownerID string) (cipher.AEAD, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, s.master, nil, []byte(sealInfo+ownerID))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal returns v1:<base64 nonce>:<base64 ciphertext>.
func (s *Sealer) Seal(ownerID, plaintext string) (string, error) {
	gcm, err := s.aead(ownerID)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}

	ct := gcm.Seal(nil, nonce, []byte(plaintext), []byte(ownerID))

	b64 := base64.StdEncoding
	return sealVersion + ":" + b64.EncodeToString(nonce) + ":" + b64.EncodeToString(ct), nil
}

// Open reverses Seal for the same owner.
func (s *Sealer) Open(ownerID, sealed string) (string, error) {
	parts := strings.Split(sealed, ":")
	if len(parts) != 3 || parts[0] != sealVersion {
		return "", ErrMalformedSeal
	}

	nonce, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrMalformedSeal
	}
	ct, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", ErrMalformedSeal
	}

	gcm, err := s.aead(ownerID)
	if err != nil {
		return "", err
	}
	if len(nonce) != gcm.NonceSize() {
		return "", ErrMalformedSeal
	}

	pt, err := gcm.Open(nil, nonce, ct, []byte(ownerID))
	if err != nil {
		return "", fmt.Errorf("open sealed value: %w", err)
	}
	return string(pt), nil
}
