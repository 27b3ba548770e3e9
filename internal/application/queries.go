package application

import (
	"time"

	"github.com/bnema/launcher-core/internal/domain"
)

// AccountView is the read model handed to renderers. It never carries
// provider or game tokens.
type AccountView struct {
	ID         domain.AccountID
	Username   string
	Kind       domain.AccountKind
	HasProfile bool
	Expires    *time.Time
	Expired    bool
}

type RefreshResult struct {
	Account    domain.Account
	PreviousID domain.AccountID
	// Refreshed is false when the token was still fresh and force was not set.
	Refreshed bool
}

func viewFromAccount(account domain.Account, now time.Time) AccountView {
	view := AccountView{
		ID:         account.ID,
		Username:   account.Username,
		Kind:       account.Kind(),
		HasProfile: account.HasProfile,
	}
	if account.Expires != nil {
		expires := *account.Expires
		view.Expires = &expires
		view.Expired = !expires.After(now)
	}
	return view
}
