package encrypted

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/bnema/launcher-core/internal/adapters/secrets/chain"
	"github.com/bnema/launcher-core/internal/adapters/secrets/file"
	"github.com/bnema/launcher-core/internal/ports"
)

const keyFileSuffix = ".key"

// newKeyStore chains the OS secret store with a key file beside the
// registry. Keys read back with the wrong length count as missing.
func newKeyStore(osStore ports.SecretStore, registryPath string, logger *slog.Logger) ports.SecretStore {
	keyFile := file.NewStore(filepath.Dir(registryPath), file.WithSuffix(keyFileSuffix))
	return chain.NewStore(osStore, keyFile, chain.WithValidator(validateKey), chain.WithLogger(logger))
}

func validateKey(value string) error {
	if len(value) != KeySize {
		return fmt.Errorf("registry key must be %d bytes, got %d", KeySize, len(value))
	}
	return nil
}

// establishKey loads the registry key or generates a new one, then writes
// it back so it ends up in the OS store whenever that store is usable.
func establishKey(ctx context.Context, keys ports.SecretStore, name string, logger *slog.Logger) ([]byte, error) {
	var key []byte
	value, err := keys.Get(ctx, name)
	switch {
	case err == nil:
		key = []byte(value)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		logger.Info("no usable registry key found, generating a new one", "error", err)
		key, err = newKey()
		if err != nil {
			return nil, err
		}
	}

	if err := keys.Put(ctx, name, string(key)); err != nil {
		wipe(key)
		return nil, fmt.Errorf("persist registry key: %w", err)
	}

	return key, nil
}
