package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/launcher-core/internal/domain"
	"github.com/bnema/launcher-core/internal/logging"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *fakeProvider) {
	t.Helper()

	provider, endpoints := newFakeProvider(t)
	authenticator, err := NewAuthenticator(
		newTestMicrosoft(t, endpoints),
		NewOffline(func() string { return "offline-id" }, logging.Discard()),
	)
	require.NoError(t, err)
	return authenticator, provider
}

func TestAuthenticatorLoginURLPointsAtAuthorizeEndpoint(t *testing.T) {
	t.Parallel()

	authenticator, _ := newTestAuthenticator(t)
	assert.Contains(t, authenticator.LoginURL(), "/authorize?")
	assert.Contains(t, authenticator.LoginURL(), "client_id="+ClientID)
}

func TestAuthenticatorDispatchesByKind(t *testing.T) {
	t.Parallel()

	authenticator, provider := newTestAuthenticator(t)

	offline, err := authenticator.Authenticate(context.Background(), domain.AccountKindOffline, "Steve")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountKindOffline, offline.Kind())
	assert.Empty(t, provider.tokenForms())

	microsoft, err := authenticator.Authenticate(context.Background(), domain.AccountKindMicrosoft, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountKindMicrosoft, microsoft.Kind())
	assert.Len(t, provider.tokenForms(), 1)

	_, err = authenticator.Authenticate(context.Background(), domain.AccountKind("mojang"), "Steve")
	require.Error(t, err)
}

func TestAuthenticatorRefreshDispatchesByCredentials(t *testing.T) {
	t.Parallel()

	authenticator, provider := newTestAuthenticator(t)

	offline := domain.Account{ID: "offline-id", Username: "Steve", Token: OfflineToken, Credentials: domain.OfflineCredentials{}}
	refreshed, err := authenticator.Refresh(context.Background(), offline)
	require.NoError(t, err)
	assert.Equal(t, offline, refreshed)
	assert.Empty(t, provider.tokenForms())

	_, err = authenticator.Refresh(context.Background(), domain.Account{
		ID:          "ms-id",
		Credentials: domain.MicrosoftCredentials{Access: "a", Refresh: "r"},
	})
	require.NoError(t, err)
	assert.Equal(t, "refresh_token", provider.tokenForms()[0].Get("grant_type"))

	_, err = authenticator.Refresh(context.Background(), domain.Account{ID: "broken"})
	require.ErrorIs(t, err, domain.ErrInvalidAccount)
}
