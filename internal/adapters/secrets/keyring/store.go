package keyring

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/bnema/launcher-core/internal/domain"
	"github.com/bnema/launcher-core/internal/ports"
	gokeyring "github.com/zalando/go-keyring"
)

// DefaultService is the OS secret-store service name the registry key is
// filed under.
const DefaultService = "Launcher Encrypted Registry"

// Store keeps secrets in the platform keychain (Secret Service, macOS
// Keychain, Windows Credential Manager). Values are hex encoded because the
// keychains hold text.
type Store struct {
	service string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := gokeyring.Set(s.service, key, hex.EncodeToString([]byte(value))); err != nil {
		return fmt.Errorf("keyring put %q/%q: %w", s.service, key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	encoded, err := gokeyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", fmt.Errorf("keyring secret %q/%q: %w", s.service, key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("keyring get %q/%q: %w", s.service, key, err)
	}

	value, err := hex.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode keyring secret %q/%q: %w", s.service, key, err)
	}

	return string(value), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := gokeyring.Delete(s.service, key)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %q/%q: %w", s.service, key, err)
	}

	return nil
}
