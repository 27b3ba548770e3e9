package ports

import (
	"context"

	"github.com/bnema/launcher-core/internal/domain"
)

type AccountRegistry interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
	Get(ctx context.Context, id domain.AccountID) (domain.Account, error)
	// Insert stores the account, replacing any entry with the same ID, and
	// persists the registry before returning.
	Insert(ctx context.Context, account domain.Account) error
	Remove(ctx context.Context, id domain.AccountID) error
	// Update applies fn to the stored account in place. fn must keep the ID.
	Update(ctx context.Context, id domain.AccountID, fn func(*domain.Account) error) error
}
