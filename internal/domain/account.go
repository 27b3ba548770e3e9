package domain

import (
	"fmt"
	"strings"
	"time"
)

type AccountID string

// Account is a stored player identity together with the credentials needed
// to renew it.
type Account struct {
	ID          AccountID
	Username    string
	HasProfile  bool
	Token       string
	Expires     *time.Time
	Credentials Credentials
}

func (a Account) Kind() AccountKind {
	if a.Credentials == nil {
		return ""
	}
	return a.Credentials.Kind()
}

// ExpiringSoon reports whether the game token expires within skew of now.
// Accounts without an expiry never expire.
func (a Account) ExpiringSoon(now time.Time, skew time.Duration) bool {
	if a.Expires == nil {
		return false
	}
	return !a.Expires.After(now.Add(skew))
}

func (a Account) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidAccount)
	}
	switch creds := a.Credentials.(type) {
	case MicrosoftCredentials:
		if creds.Refresh == "" {
			return fmt.Errorf("%w: refresh token is required", ErrInvalidAccount)
		}
	case OfflineCredentials:
	default:
		return fmt.Errorf("%w: unknown credentials", ErrInvalidAccount)
	}
	return nil
}

// Clone returns a copy that shares no mutable state with a.
func (a Account) Clone() Account {
	if a.Expires != nil {
		expires := *a.Expires
		a.Expires = &expires
	}
	return a
}
