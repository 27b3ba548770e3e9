package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/bnema/launcher-core/internal/domain"
)

// OfflineToken is the game token handed to offline accounts.
const OfflineToken = "offline"

var ErrMissingUsername = errors.New("offline username is required")

// Offline creates local-only accounts. It never touches the network.
type Offline struct {
	newID  func() string
	logger *slog.Logger
}

func NewOffline(newID func() string, logger *slog.Logger) *Offline {
	if newID == nil {
		newID = uuid.NewString
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Offline{newID: newID, logger: logger}
}

func (o *Offline) Authenticate(ctx context.Context, username string) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Account{}, ErrMissingUsername
	}

	o.logger.DebugContext(ctx, "authorizing offline account", "username", username)
	return domain.Account{
		ID:          domain.AccountID(o.newID()),
		Username:    username,
		HasProfile:  true,
		Token:       OfflineToken,
		Credentials: domain.OfflineCredentials{},
	}, nil
}

func (o *Offline) Refresh(ctx context.Context, account domain.Account) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}
	if _, ok := account.Credentials.(domain.OfflineCredentials); !ok {
		return domain.Account{}, &domain.WrongAccountTypeError{Expected: domain.AccountKindOffline, Got: account.Kind()}
	}

	o.logger.DebugContext(ctx, "refreshing offline account", "username", account.Username)
	return account, nil
}
