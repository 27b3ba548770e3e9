package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	authadapter "github.com/bnema/launcher-core/internal/adapters/auth"
	accountsrender "github.com/bnema/launcher-core/internal/adapters/render/accounts"
	"github.com/bnema/launcher-core/internal/adapters/repo/encrypted"
	keyringstore "github.com/bnema/launcher-core/internal/adapters/secrets/keyring"
	passstore "github.com/bnema/launcher-core/internal/adapters/secrets/pass"
	"github.com/bnema/launcher-core/internal/adapters/transport"
	"github.com/bnema/launcher-core/internal/application"
	"github.com/bnema/launcher-core/internal/config"
	"github.com/bnema/launcher-core/internal/logging"
	"github.com/bnema/launcher-core/internal/ports"
	"github.com/bnema/launcher-core/internal/version"
)

const registryResetWarning = "warning: stored accounts could not be decrypted; please log in again"

type app struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *transport.Client
	registry *encrypted.Registry
	service  *application.Service
	renderer func([]application.AccountView, accountsrender.RenderOptions) (string, error)
	now      func() time.Time
}

// wireOptions overrides parts of the wiring. Tests use it to point the
// Microsoft flow at a local server and to skip retry delays.
type wireOptions struct {
	endpoints *authadapter.Endpoints
	backoff   func(attempt int) time.Duration
}

type wireOption func(*wireOptions)

func withEndpoints(endpoints authadapter.Endpoints) wireOption {
	return func(o *wireOptions) { o.endpoints = &endpoints }
}

func withBackoff(backoff func(attempt int) time.Duration) wireOption {
	return func(o *wireOptions) { o.backoff = backoff }
}

// appState wires the application the first time a command needs it, so
// commands such as version never open the registry or the keychain.
type appState struct {
	opts wireOptions
	once sync.Once
	app  *app
	err  error
}

func newAppState(opts ...wireOption) *appState {
	s := &appState{}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

func (s *appState) get(cmd *cobra.Command) (*app, error) {
	s.once.Do(func() {
		s.app, s.err = wireApp(cmd.Context(), s.opts, cmd.ErrOrStderr())
	})
	return s.app, s.err
}

func (s *appState) close() {
	if s.app != nil {
		s.app.close()
	}
}

func wireApp(ctx context.Context, opts wireOptions, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", config.LogLevelKey, err)
	}
	logger := logging.Setup("launcher", version.Version, cfg.Log.Format, level, stderr)

	client, err := transport.New(transport.Options{
		Interval:    cfg.Net.Interval,
		MailboxSize: cfg.Net.Mailbox,
		Timeout:     cfg.Net.Timeout,
		ProxyURL:    cfg.Net.Proxy,
		UserAgent:   cfg.Net.UserAgent,
		Backoff:     opts.backoff,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire request client: %w", err)
	}

	registry, err := encrypted.Open(ctx, encrypted.Options{
		Path:        cfg.RegistryPath,
		SecretStore: newSecretStore(cfg.Secrets.Backend),
		Logger:      logger,
	})
	if err != nil {
		client.Destroy()
		return nil, fmt.Errorf("open credential registry: %w", err)
	}
	if registry.Status() == encrypted.StatusOverwritten {
		_, _ = fmt.Fprintln(stderr, registryResetWarning)
	}

	endpoints := authadapter.DefaultEndpoints()
	if opts.endpoints != nil {
		endpoints = *opts.endpoints
	}
	authenticator, err := authadapter.NewAuthenticator(
		authadapter.NewMicrosoft(client,
			authadapter.WithEndpoints(endpoints),
			authadapter.WithLogger(logger),
		),
		authadapter.NewOffline(nil, logger),
	)
	if err != nil {
		_ = registry.Close()
		client.Destroy()
		return nil, fmt.Errorf("wire authenticator: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		registry: registry,
		service: application.NewService(registry, authenticator, ports.SystemClock{},
			application.WithRefreshSkew(cfg.RefreshSkew),
			application.WithLogger(logger),
		),
		renderer: accountsrender.Render,
		now:      time.Now,
	}, nil
}

func newSecretStore(backend string) ports.SecretStore {
	if backend == config.BackendPass {
		return passstore.NewStore(passstore.DefaultPrefix)
	}
	return keyringstore.NewStore(keyringstore.DefaultService)
}

func (a *app) close() {
	if err := a.registry.Close(); err != nil && !errors.Is(err, encrypted.ErrRegistryClosed) {
		logging.LogError(a.logger, "close registry", err)
	}
	a.client.Destroy()
}
