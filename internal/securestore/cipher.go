package securestore

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/scrypt"
)

// SecretKey is the passphrase every entry is encrypted under.
type SecretKey string

const (
	envelopeMagic = "ERD1"
	saltSize      = 16
	keySize       = 32

	// DefaultKDFCost is the scrypt N parameter used when no cost is configured.
	DefaultKDFCost = 1 << 15
	scryptR        = 8
	scryptP        = 1

	defaultKeyCacheSize = 16
)

// ErrMalformed is returned when a stored value is not a well-formed envelope
// or fails authentication.
var ErrMalformed = errors.New("securestore: malformed envelope")

// envelopeCipher seals values as base64(magic | salt | nonce | ciphertext).
type envelopeCipher struct {
	passphrase []byte
	cost       int
	salt       []byte
	random     io.Reader
	keys       *lru.Cache[string, cipher.AEAD]
}

func newEnvelopeCipher(secret SecretKey, cost, cacheSize int, random io.Reader) (*envelopeCipher, error) {
	if secret == "" {
		return nil, errors.New("securestore: secret key required")
	}
	if cost < 2 || cost&(cost-1) != 0 {
		return nil, fmt.Errorf("securestore: kdf cost must be a power of two > 1, got %d", cost)
	}
	keys, err := lru.New[string, cipher.AEAD](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("securestore: key cache: %w", err)
	}
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, fmt.Errorf("securestore: generate salt: %w", err)
	}
	return &envelopeCipher{
		passphrase: []byte(secret),
		cost:       cost,
		salt:       salt,
		random:     random,
		keys:       keys,
	}, nil
}

func (c *envelopeCipher) aead(salt []byte) (cipher.AEAD, error) {
	if a, ok := c.keys.Get(string(salt)); ok {
		return a, nil
	}
	key, err := scrypt.Key(c.passphrase, salt, c.cost, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	a, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	c.keys.Add(string(salt), a)
	return a, nil
}

// Seal encrypts plaintext and returns the base64 envelope.
func (c *envelopeCipher) Seal(plaintext []byte) ([]byte, error) {
	a, err := c.aead(c.salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, a.NonceSize())
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	raw := make([]byte, 0, len(envelopeMagic)+saltSize+len(nonce)+len(plaintext)+a.Overhead())
	raw = append(raw, envelopeMagic...)
	raw = append(raw, c.salt...)
	raw = append(raw, nonce...)
	raw = a.Seal(raw, nonce, plaintext, nil)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// Open decodes and decrypts an envelope produced by Seal, possibly by a
// cipher with a different salt.
func (c *envelopeCipher) Open(envelope []byte) ([]byte, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(envelope)))
	n, err := base64.StdEncoding.Decode(raw, bytes.TrimSpace(envelope))
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrMalformed, err)
	}
	raw = raw[:n]
	if !bytes.HasPrefix(raw, []byte(envelopeMagic)) {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformed)
	}
	raw = raw[len(envelopeMagic):]
	if len(raw) < saltSize {
		return nil, fmt.Errorf("%w: truncated salt", ErrMalformed)
	}
	salt, rest := raw[:saltSize], raw[saltSize:]
	a, err := c.aead(salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < a.NonceSize()+a.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrMalformed)
	}
	nonce, sealed := rest[:a.NonceSize()], rest[a.NonceSize():]
	plaintext, err := a.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return plaintext, nil
}
