package accounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/launcher-core/internal/application"
	"github.com/bnema/launcher-core/internal/domain"
)

func TestRenderMicrosoftAccount(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	expires := now.Add(13 * time.Hour)

	output, err := Render([]application.AccountView{
		{
			ID:         "0f3c5a1e9b2d4c7f",
			Username:   "Steve",
			Kind:       domain.AccountKindMicrosoft,
			HasProfile: true,
			Expires:    &expires,
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 1")
	assert.Contains(t, output, "Steve (0f3c5a1e9b2d4c7f)")
	assert.Contains(t, output, "type: microsoft")
	assert.Contains(t, output, "profile: yes")
	assert.Contains(t, output, "expires in 13 hours (00:00)")
	assert.Contains(t, output, "[")
	assert.NotContains(t, output, "[expired]")
}

func TestRenderMarksExpiredToken(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	expires := now.Add(-time.Hour)

	output, err := Render([]application.AccountView{
		{
			ID:       "placeholder",
			Username: "Player",
			Kind:     domain.AccountKindMicrosoft,
			Expires:  &expires,
			Expired:  true,
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "[expired]")
	assert.Contains(t, output, "launcher refresh")
	assert.Contains(t, output, "profile: no (placeholder identity)")
}

func TestRenderOfflineAndMultiDayAccounts(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	expires := now.Add(4 * 24 * time.Hour)

	output, err := Render([]application.AccountView{
		{ID: "offline-id", Username: "Alex", Kind: domain.AccountKindOffline, HasProfile: true},
		{ID: "ms-id", Username: "Steve", Kind: domain.AccountKindMicrosoft, HasProfile: true, Expires: &expires},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "type: offline")
	assert.Contains(t, output, "never expires")
	assert.Contains(t, output, "expires in 4 days (11:00 on 18 Feb)")
}

func TestRenderWithoutNowShowsAbsoluteExpiry(t *testing.T) {
	expires := time.Date(2026, 2, 15, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.AccountView{
		{ID: "ms-id", Username: "Steve", Kind: domain.AccountKindMicrosoft, Expires: &expires},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "expires 2026-02-15T11:00:00Z")
}

func TestRenderEmptyRegistry(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 0")
	assert.Contains(t, output, "No accounts stored")
}
