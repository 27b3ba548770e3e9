package auth

import (
	"context"
	"fmt"

	"github.com/bnema/launcher-core/internal/domain"
	"github.com/bnema/launcher-core/internal/ports"
)

var _ ports.Authenticator = (*Authenticator)(nil)

// Authenticator routes each call to the flow matching the account kind.
type Authenticator struct {
	microsoft *Microsoft
	offline   *Offline
	loginURL  string
}

func NewAuthenticator(microsoft *Microsoft, offline *Offline) (*Authenticator, error) {
	if microsoft == nil || offline == nil {
		return nil, fmt.Errorf("new authenticator: microsoft and offline flows are required")
	}
	loginURL, err := microsoft.LoginURL()
	if err != nil {
		return nil, fmt.Errorf("build login url: %w", err)
	}
	return &Authenticator{microsoft: microsoft, offline: offline, loginURL: loginURL}, nil
}

func (a *Authenticator) LoginURL() string {
	return a.loginURL
}

func (a *Authenticator) Authenticate(ctx context.Context, kind domain.AccountKind, input string) (domain.Account, error) {
	switch kind {
	case domain.AccountKindMicrosoft:
		return a.microsoft.Authenticate(ctx, input)
	case domain.AccountKindOffline:
		return a.offline.Authenticate(ctx, input)
	default:
		return domain.Account{}, fmt.Errorf("authenticate: unsupported account kind %q", kind)
	}
}

func (a *Authenticator) Refresh(ctx context.Context, account domain.Account) (domain.Account, error) {
	switch account.Credentials.(type) {
	case domain.MicrosoftCredentials:
		return a.microsoft.Refresh(ctx, account)
	case domain.OfflineCredentials:
		return a.offline.Refresh(ctx, account)
	default:
		return domain.Account{}, fmt.Errorf("refresh account %s: %w", account.ID, domain.ErrInvalidAccount)
	}
}
