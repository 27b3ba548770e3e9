package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/launcher-core/internal/ports"
)

// Store reads from primary, then fallback. A successful write to primary
// removes the fallback copy; a failed one lands in fallback instead.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	validate func(string) error
	logger   *slog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

type Option func(*Store)

// WithValidator rejects values that fail validate, so Get moves on to the
// next backend as if the read had failed.
func WithValidator(validate func(string) error) Option {
	return func(s *Store) { s.validate = validate }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, opts ...Option) *Store {
	store, err := NewStoreChecked(primary, fallback, opts...)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore, opts ...Option) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	store := &Store{primary: primary, fallback: fallback, logger: slog.Default()}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		if cleanupErr := s.fallback.Delete(ctx, key); cleanupErr != nil {
			s.logger.Warn("failed to remove fallback secret after primary write", "key", key, "error", cleanupErr)
		}
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	s.logger.Debug("primary secret backend rejected write, using fallback", "key", key, "error", err)
	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.get(ctx, s.primary, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.get(ctx, s.fallback, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	case fallbackErr == nil:
		return fmt.Errorf("primary backend delete failed: %w", err)
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

func (s *Store) get(ctx context.Context, store ports.SecretStore, key string) (string, error) {
	value, err := store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if s.validate != nil {
		if err := s.validate(value); err != nil {
			return "", fmt.Errorf("invalid secret %q: %w", key, err)
		}
	}
	return value, nil
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
