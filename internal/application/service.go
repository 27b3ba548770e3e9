package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/launcher-core/internal/domain"
	"github.com/bnema/launcher-core/internal/ports"
)

// DefaultRefreshSkew refreshes tokens that expire within this window.
const DefaultRefreshSkew = 5 * time.Minute

type Service struct {
	registry    ports.AccountRegistry
	auth        ports.Authenticator
	clock       ports.Clock
	refreshSkew time.Duration
	logger      *slog.Logger
}

type Option func(*Service)

func WithRefreshSkew(skew time.Duration) Option {
	return func(s *Service) {
		if skew >= 0 {
			s.refreshSkew = skew
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(registry ports.AccountRegistry, auth ports.Authenticator, clock ports.Clock, opts ...Option) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Service{
		registry:    registry,
		auth:        auth,
		clock:       clock,
		refreshSkew: DefaultRefreshSkew,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) LoginURL() string {
	return s.auth.LoginURL()
}

// Login completes the Microsoft flow for an authorization code or redirect
// URL and stores the resulting account.
func (s *Service) Login(ctx context.Context, codeOrRedirect string) (domain.Account, error) {
	return s.login(ctx, domain.AccountKindMicrosoft, codeOrRedirect)
}

func (s *Service) LoginOffline(ctx context.Context, username string) (domain.Account, error) {
	return s.login(ctx, domain.AccountKindOffline, username)
}

func (s *Service) login(ctx context.Context, kind domain.AccountKind, input string) (domain.Account, error) {
	account, err := s.auth.Authenticate(ctx, kind, input)
	if err != nil {
		return domain.Account{}, fmt.Errorf("authenticate %s account: %w", kind, err)
	}
	if err := account.Validate(); err != nil {
		return domain.Account{}, fmt.Errorf("validate %s account: %w", kind, err)
	}
	if err := s.registry.Insert(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("store %s account: %w", kind, err)
	}

	s.logger.InfoContext(ctx, "account stored",
		"account_id", string(account.ID),
		"kind", string(kind),
		"has_profile", account.HasProfile,
	)
	return account, nil
}

func (s *Service) Accounts(ctx context.Context) ([]AccountView, error) {
	accounts, err := s.registry.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	now := s.clock.Now()
	views := make([]AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, viewFromAccount(account, now))
	}
	return views, nil
}

func (s *Service) Remove(ctx context.Context, id domain.AccountID) error {
	if err := s.registry.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove account %s: %w", id, err)
	}
	return nil
}

// Refresh renews one stored account. Tokens that are not about to expire are
// left alone unless force is set.
func (s *Service) Refresh(ctx context.Context, id domain.AccountID, force bool) (RefreshResult, error) {
	account, err := s.registry.Get(ctx, id)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("get account by id: %w", err)
	}
	return s.refresh(ctx, account, force)
}

// RefreshAll refreshes every stored account in turn. A failing account does
// not stop the others; the failures are joined into the returned error.
func (s *Service) RefreshAll(ctx context.Context, force bool) ([]RefreshResult, error) {
	accounts, err := s.registry.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	results := make([]RefreshResult, 0, len(accounts))
	var errs []error
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := s.refresh(ctx, account, force)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

func (s *Service) refresh(ctx context.Context, account domain.Account, force bool) (RefreshResult, error) {
	result := RefreshResult{Account: account, PreviousID: account.ID}
	if !force && !account.ExpiringSoon(s.clock.Now(), s.refreshSkew) {
		s.logger.DebugContext(ctx, "token still fresh, skipping refresh", "account_id", string(account.ID))
		return result, nil
	}

	refreshed, err := s.auth.Refresh(ctx, account)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("refresh account %s: %w", account.ID, err)
	}
	if err := refreshed.Validate(); err != nil {
		return RefreshResult{}, fmt.Errorf("validate refreshed account %s: %w", account.ID, err)
	}
	if refreshed.ID == account.ID {
		err = s.registry.Update(ctx, account.ID, func(stored *domain.Account) error {
			*stored = refreshed.Clone()
			return nil
		})
		if err != nil {
			err = fmt.Errorf("store refreshed account %s: %w", account.ID, err)
		}
	} else {
		err = s.rekey(ctx, account, refreshed)
	}
	if err != nil {
		return RefreshResult{}, err
	}

	result.Account = refreshed
	result.Refreshed = true
	return result, nil
}

// rekey moves a placeholder account to the ID its profile reported. The old
// entry is put back when the new one cannot be stored.
func (s *Service) rekey(ctx context.Context, previous, refreshed domain.Account) error {
	if err := s.registry.Remove(ctx, previous.ID); err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("remove superseded account %s: %w", previous.ID, err)
	}
	if err := s.registry.Insert(ctx, refreshed); err != nil {
		if restoreErr := s.registry.Insert(ctx, previous); restoreErr != nil {
			s.logger.ErrorContext(ctx, "restore superseded account failed", "account_id", string(previous.ID), "error", restoreErr)
		}
		return fmt.Errorf("store refreshed account %s: %w", refreshed.ID, err)
	}
	return nil
}
