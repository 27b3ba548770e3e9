package ports

import (
	"context"

	"github.com/bnema/launcher-core/internal/domain"
)

type Authenticator interface {
	LoginURL() string
	Authenticate(ctx context.Context, kind domain.AccountKind, input string) (domain.Account, error)
	Refresh(ctx context.Context, account domain.Account) (domain.Account, error)
}
