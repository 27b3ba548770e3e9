package encrypted

import (
	"fmt"
	"time"

	"github.com/bnema/launcher-core/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("%w: version %d (current %d)", ErrUnsupportedVersion, s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID          string            `toml:"id"`
	Username    string            `toml:"username"`
	HasProfile  bool              `toml:"has_profile"`
	Token       string            `toml:"token"`
	Expires     string            `toml:"expires,omitempty"`
	Credentials credentialsSchema `toml:"credentials"`
}

type credentialsSchema struct {
	Kind    string `toml:"kind"`
	Access  string `toml:"access,omitempty"`
	Refresh string `toml:"refresh,omitempty"`
}

func toSchema(account domain.Account) accountSchema {
	out := accountSchema{
		ID:         string(account.ID),
		Username:   account.Username,
		HasProfile: account.HasProfile,
		Token:      account.Token,
	}
	if account.Expires != nil {
		out.Expires = account.Expires.UTC().Format(time.RFC3339Nano)
	}

	switch creds := account.Credentials.(type) {
	case domain.MicrosoftCredentials:
		out.Credentials = credentialsSchema{Kind: string(domain.AccountKindMicrosoft), Access: creds.Access, Refresh: creds.Refresh}
	case domain.OfflineCredentials:
		out.Credentials = credentialsSchema{Kind: string(domain.AccountKindOffline)}
	}

	return out
}

func fromSchema(account accountSchema) (domain.Account, error) {
	out := domain.Account{
		ID:         domain.AccountID(account.ID),
		Username:   account.Username,
		HasProfile: account.HasProfile,
		Token:      account.Token,
	}

	if account.Expires != "" {
		expires, err := time.Parse(time.RFC3339Nano, account.Expires)
		if err != nil {
			return domain.Account{}, fmt.Errorf("account %q: parse expiry: %w", account.ID, err)
		}
		out.Expires = &expires
	}

	kind, ok := domain.ParseAccountKind(account.Credentials.Kind)
	if !ok {
		return domain.Account{}, fmt.Errorf("account %q: unknown credentials kind %q", account.ID, account.Credentials.Kind)
	}
	switch kind {
	case domain.AccountKindMicrosoft:
		out.Credentials = domain.MicrosoftCredentials{Access: account.Credentials.Access, Refresh: account.Credentials.Refresh}
	case domain.AccountKindOffline:
		out.Credentials = domain.OfflineCredentials{}
	}

	return out, nil
}
