package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/launcher-core/internal/domain"
	"github.com/bnema/launcher-core/internal/fsutil"
	"github.com/bnema/launcher-core/internal/ports"
)

// Store keeps each secret verbatim in its own owner-only file under root.
// Values are written byte for byte, so binary material such as raw keys
// round-trips unchanged.
type Store struct {
	root   string
	suffix string
	mu     sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

type Option func(*Store)

// WithSuffix appends suffix to every key's file name, so key "Credentials"
// lives in "Credentials.key" with WithSuffix(".key").
func WithSuffix(suffix string) Option {
	return func(s *Store) { s.suffix = suffix }
}

func NewStore(root string, opts ...Option) *Store {
	store := &Store{root: filepath.Clean(root)}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Path returns the file that holds key.
func (s *Store) Path(key string) (string, error) {
	return s.pathForKey(key)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fsutil.WriteFileAtomic(path, []byte(value), fsutil.PrivateFileMode); err != nil {
		return fmt.Errorf("write file secret %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("read file secret %q: %w", key, err)
	}

	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file secret %q: %w", key, err)
	}

	return nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return filepath.Join(s.root, cleaned+s.suffix), nil
}
