// Package encrypted persists accounts in a single file sealed with
// ChaCha20-Poly1305. The key lives in the OS secret store, or in a key file
// beside the registry when no secret store is usable.
package encrypted

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/launcher-core/internal/domain"
	"github.com/bnema/launcher-core/internal/fsutil"
	"github.com/bnema/launcher-core/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

var (
	ErrRegistryClosed     = errors.New("registry is closed")
	ErrUnsupportedVersion = errors.New("unsupported registry schema version")
)

// Status records how the registry contents were obtained when it was opened.
type Status int

const (
	// StatusCreated means no registry file existed.
	StatusCreated Status = iota
	// StatusDecrypted means the existing file was read successfully.
	StatusDecrypted
	// StatusOverwritten means the existing file could not be decrypted or
	// parsed and was replaced by an empty registry.
	StatusOverwritten
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusDecrypted:
		return "decrypted"
	case StatusOverwritten:
		return "overwritten"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type Options struct {
	// Path of the encrypted registry file. The key file, when needed, is
	// written beside it as <name>.key.
	Path string
	// SecretStore is the OS secret store that should hold the key.
	SecretStore ports.SecretStore
	Logger      *slog.Logger
}

type Registry struct {
	path   string
	status Status
	logger *slog.Logger

	mu       sync.RWMutex
	key      []byte
	accounts []domain.Account
	closed   bool
}

var _ ports.AccountRegistry = (*Registry)(nil)

// Open loads the registry at opts.Path, creating it if needed. An existing
// file that cannot be decrypted is replaced with an empty registry and the
// returned Registry reports StatusOverwritten.
func Open(ctx context.Context, opts Options) (*Registry, error) {
	if opts.SecretStore == nil {
		return nil, errors.New("registry secret store is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path, err := normalizePath(opts.Path)
	if err != nil {
		return nil, err
	}
	logger = logger.With("component", "registry", "path", path)

	if err := os.MkdirAll(filepath.Dir(path), fsutil.PrivateDirMode); err != nil {
		return nil, fmt.Errorf("create registry directory: %w", err)
	}

	keys := newKeyStore(opts.SecretStore, path, logger)
	key, err := establishKey(ctx, keys, keyName(path), logger)
	if err != nil {
		return nil, err
	}

	r := &Registry{path: path, key: key, logger: logger}
	if err := r.load(); err != nil {
		wipe(key)
		return nil, err
	}

	r.mu.Lock()
	err = r.flushLocked()
	r.mu.Unlock()
	if err != nil {
		wipe(key)
		return nil, err
	}

	logger.Debug("registry opened", "status", r.status.String(), "accounts", len(r.accounts))
	return r, nil
}

func (r *Registry) Status() Status {
	return r.status
}

func (r *Registry) Path() string {
	return r.path
}

// Accounts returns a copy of every stored account.
func (r *Registry) Accounts(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	out := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account.Clone())
	}
	return out, nil
}

func (r *Registry) Get(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return domain.Account{}, ErrRegistryClosed
	}

	index := r.indexOf(id)
	if index < 0 {
		return domain.Account{}, fmt.Errorf("account %q: %w", id, domain.ErrAccountNotFound)
	}
	return r.accounts[index].Clone(), nil
}

// Insert adds account, replacing a stored account with the same ID, and
// persists the registry. If persisting fails the in-memory change is kept
// and the error returned.
func (r *Registry) Insert(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := account.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	if index := r.indexOf(account.ID); index >= 0 {
		r.accounts[index] = account.Clone()
	} else {
		r.accounts = append(r.accounts, account.Clone())
	}

	return r.flushLocked()
}

// Update applies fn to the stored account with the given ID and persists
// the result. fn must not change the ID.
func (r *Registry) Update(ctx context.Context, id domain.AccountID, fn func(*domain.Account) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	index := r.indexOf(id)
	if index < 0 {
		return fmt.Errorf("account %q: %w", id, domain.ErrAccountNotFound)
	}

	updated := r.accounts[index].Clone()
	if err := fn(&updated); err != nil {
		return err
	}
	if updated.ID != id {
		return fmt.Errorf("%w: update changed id %q to %q", domain.ErrInvalidAccount, id, updated.ID)
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	r.accounts[index] = updated
	return r.flushLocked()
}

func (r *Registry) Remove(ctx context.Context, id domain.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	index := r.indexOf(id)
	if index < 0 {
		return fmt.Errorf("account %q: %w", id, domain.ErrAccountNotFound)
	}
	r.accounts = append(r.accounts[:index], r.accounts[index+1:]...)

	return r.flushLocked()
}

// Close zeroes the key held in memory. Later calls fail with
// ErrRegistryClosed.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	wipe(r.key)
	r.key = nil
	r.accounts = nil
	r.closed = true
	return nil
}

func (r *Registry) indexOf(id domain.AccountID) int {
	for i, account := range r.accounts {
		if account.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Info("no registry found, creating a new one")
			r.status = StatusCreated
			return nil
		}
		return fmt.Errorf("read registry: %w", err)
	}

	accounts, err := r.decode(data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedVersion) {
			return err
		}
		r.logger.Warn("registry could not be read, replacing it with an empty one", "error", err)
		r.status = StatusOverwritten
		return nil
	}

	r.accounts = accounts
	r.status = StatusDecrypted
	return nil
}

func (r *Registry) decode(data []byte) ([]domain.Account, error) {
	plaintext, err := open(r.key, data)
	if err != nil {
		return nil, err
	}
	defer wipe(plaintext)

	var file fileSchema
	if err := toml.Unmarshal(plaintext, &file); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, stored := range file.Accounts {
		account, err := fromSchema(stored)
		if err != nil {
			return nil, fmt.Errorf("decode registry: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// flushLocked seals the current accounts and replaces the registry file.
// Callers hold r.mu for writing.
func (r *Registry) flushLocked() error {
	file := fileSchema{Accounts: make([]accountSchema, 0, len(r.accounts))}
	file.applyDefaults()
	for _, account := range r.accounts {
		file.Accounts = append(file.Accounts, toSchema(account))
	}

	plaintext, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	defer wipe(plaintext)

	sealed, err := seal(r.key, plaintext)
	if err != nil {
		return fmt.Errorf("encrypt registry: %w", err)
	}

	if err := fsutil.WriteFileAtomic(r.path, sealed, fsutil.PrivateFileMode); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

func normalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("registry path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve registry path: %w", err)
	}
	return filepath.Clean(absPath), nil
}

// keyName is the registry file name without its extension; the key is
// filed under it in the secret store.
func keyName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
