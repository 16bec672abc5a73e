// Package securestore layers authenticated encryption and JSON encoding over a
// plaintext kv.Medium. Unreadable entries are treated as absent and deleted.
package securestore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"erdash/internal/kv"

	"github.com/rs/zerolog"
)

// Store is an encrypted key-value store of JSON documents.
type Store struct {
	medium  kv.Medium
	cipher  *envelopeCipher
	log     zerolog.Logger
	metrics *Metrics
}

type settings struct {
	log       zerolog.Logger
	metrics   *Metrics
	cost      int
	cacheSize int
	random    io.Reader
}

// Option configures a Store.
type Option func(*settings)

// WithLogger sets the logger used for write failures and discarded entries.
func WithLogger(l zerolog.Logger) Option { return func(s *settings) { s.log = l } }

// WithMetrics records operation counters on m.
func WithMetrics(m *Metrics) Option { return func(s *settings) { s.metrics = m } }

// WithKDFCost sets the scrypt N parameter. It must be a power of two.
func WithKDFCost(n int) Option { return func(s *settings) { s.cost = n } }

// WithKeyCacheSize bounds the number of derived keys kept in memory.
func WithKeyCacheSize(n int) Option { return func(s *settings) { s.cacheSize = n } }

// WithRandom replaces the source of salts and nonces.
func WithRandom(r io.Reader) Option { return func(s *settings) { s.random = r } }

// New returns a Store writing envelopes sealed under secret to medium.
func New(medium kv.Medium, secret SecretKey, opts ...Option) (*Store, error) {
	if medium == nil {
		return nil, errors.New("securestore: medium required")
	}
	cfg := settings{
		log:       zerolog.Nop(),
		cost:      DefaultKDFCost,
		cacheSize: defaultKeyCacheSize,
		random:    rand.Reader,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c, err := newEnvelopeCipher(secret, cfg.cost, cfg.cacheSize, cfg.random)
	if err != nil {
		return nil, err
	}
	return &Store{
		medium:  medium,
		cipher:  c,
		log:     cfg.log.With().Str("component", "securestore").Logger(),
		metrics: cfg.metrics,
	}, nil
}

// Medium returns the underlying plaintext medium.
func (s *Store) Medium() kv.Medium { return s.medium }

// Put serializes value, encrypts it and writes it under key. On any failure
// the key is removed so it never holds a stale value.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return s.failPut(ctx, &StorageError{Kind: KindEncode, Key: key, Err: fmt.Errorf("serialize: %w", err)})
	}
	envelope, err := s.cipher.Seal(plaintext)
	if err != nil {
		return s.failPut(ctx, &StorageError{Kind: KindEncode, Key: key, Err: fmt.Errorf("encrypt: %w", err)})
	}
	if err := s.medium.Set(ctx, key, envelope); err != nil {
		return s.failPut(ctx, &StorageError{Kind: KindMedium, Key: key, Err: err})
	}
	s.metrics.observe(opPut, resultOK)
	return nil
}

func (s *Store) failPut(ctx context.Context, serr *StorageError) error {
	s.metrics.observe(opPut, resultError)
	s.log.Error().Err(serr.Err).Str("key", serr.Key).Stringer("kind", serr.Kind).Msg("write failed, removing entry")
	if _, err := s.medium.Delete(ctx, serr.Key); err != nil {
		s.log.Warn().Err(err).Str("key", serr.Key).Msg("remove after failed write")
	}
	return serr
}

// Load decrypts the entry under key into dest. It returns nil or a
// *StorageError. A corrupt entry is deleted before Load returns.
func (s *Store) Load(ctx context.Context, key string, dest any) error {
	envelope, err := s.medium.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		s.metrics.observe(opGet, resultNotFound)
		return &StorageError{Kind: KindNotFound, Key: key, Err: err}
	}
	if err != nil {
		s.metrics.observe(opGet, resultError)
		return &StorageError{Kind: KindMedium, Key: key, Err: err}
	}
	plaintext, err := s.cipher.Open(envelope)
	if err == nil {
		err = json.Unmarshal(plaintext, dest)
	}
	if err != nil {
		return s.discard(ctx, key, err)
	}
	s.metrics.observe(opGet, resultOK)
	return nil
}

func (s *Store) discard(ctx context.Context, key string, cause error) error {
	s.metrics.observe(opGet, resultCorrupt)
	s.metrics.corrupt()
	s.log.Warn().Err(cause).Str("key", key).Msg("discarding unreadable entry")
	if _, err := s.medium.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("remove unreadable entry")
	}
	return &StorageError{Kind: KindCorrupt, Key: key, Err: cause}
}

// Get is Load with every failure reported as absence.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	return s.Load(ctx, key, dest) == nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.medium.Delete(ctx, key); err != nil {
		s.metrics.observe(opRemove, resultError)
		return &StorageError{Kind: KindMedium, Key: key, Err: err}
	}
	s.metrics.observe(opRemove, resultOK)
	return nil
}

// ClearAll erases the whole medium, including entries this store did not write.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.medium.Clear(ctx); err != nil {
		s.metrics.observe(opClear, resultError)
		return &StorageError{Kind: KindMedium, Err: err}
	}
	s.metrics.observe(opClear, resultOK)
	return nil
}
