package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/bnema/launcher-core/internal/adapters/transport"
	"github.com/bnema/launcher-core/internal/domain"
	"github.com/bnema/launcher-core/internal/ports"
)

const (
	maxTokenResponseBytes = 1 << 20

	// PlaceholderUsername names accounts whose game profile could not be read.
	PlaceholderUsername = "Player"
)

const (
	stageTokenExchange = "token_exchange"
	stageTokenRefresh  = "token_refresh"
	stageXBL           = "xbl"
	stageXSTS          = "xsts"
	stageGameLogin     = "game_login"
	stageProfile       = "profile"
)

type Microsoft struct {
	client    ports.Requester
	endpoints Endpoints
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

type MicrosoftOption func(*Microsoft)

func WithEndpoints(endpoints Endpoints) MicrosoftOption {
	return func(m *Microsoft) {
		m.endpoints = endpoints
	}
}

func WithClock(clock ports.Clock) MicrosoftOption {
	return func(m *Microsoft) {
		if clock != nil {
			m.now = clock.Now
		}
	}
}

func WithIDGenerator(newID func() string) MicrosoftOption {
	return func(m *Microsoft) {
		if newID != nil {
			m.newID = newID
		}
	}
}

func WithLogger(logger *slog.Logger) MicrosoftOption {
	return func(m *Microsoft) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewMicrosoft(client ports.Requester, opts ...MicrosoftOption) *Microsoft {
	m := &Microsoft{
		client:    client,
		endpoints: DefaultEndpoints(),
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Microsoft) LoginURL() (string, error) {
	return BuildLoginURL(m.endpoints)
}

// Authenticate runs the full sign-in chain for an authorization code (or the
// redirect URL carrying one).
func (m *Microsoft) Authenticate(ctx context.Context, input string) (domain.Account, error) {
	code, err := ExtractCode(input)
	if err != nil {
		return domain.Account{}, err
	}

	m.logger.DebugContext(ctx, "exchanging authorization code")
	tokens, err := m.requestTokens(ctx, stageTokenExchange, url.Values{
		"client_id":    {ClientID},
		"code":         {code},
		"grant_type":   {"authorization_code"},
		"redirect_uri": {m.endpoints.Redirect},
		"scope":        {Scope},
	})
	if err != nil {
		return domain.Account{}, err
	}

	return m.finish(ctx, tokens, domain.AccountID(m.newID()), PlaceholderUsername)
}

// Refresh trades the stored refresh token for a new token chain. The account
// keeps its ID and username unless the profile can be read.
func (m *Microsoft) Refresh(ctx context.Context, account domain.Account) (domain.Account, error) {
	creds, ok := account.Credentials.(domain.MicrosoftCredentials)
	if !ok {
		return domain.Account{}, &domain.WrongAccountTypeError{Expected: domain.AccountKindMicrosoft, Got: account.Kind()}
	}
	if strings.TrimSpace(creds.Refresh) == "" {
		return domain.Account{}, fmt.Errorf("refresh account %s: %w", account.ID, domain.ErrReauthenticationRequired)
	}

	m.logger.DebugContext(ctx, "refreshing microsoft account", "account_id", string(account.ID))
	tokens, err := m.requestTokens(ctx, stageTokenRefresh, url.Values{
		"client_id":     {ClientID},
		"grant_type":    {"refresh_token"},
		"refresh_token": {creds.Refresh},
		"scope":         {Scope},
	})
	if err != nil {
		return domain.Account{}, err
	}

	return m.finish(ctx, tokens, account.ID, account.Username)
}

func (m *Microsoft) finish(ctx context.Context, tokens tokenResponse, fallbackID domain.AccountID, fallbackName string) (domain.Account, error) {
	xbl, err := m.xboxToken(ctx, tokens.AccessToken)
	if err != nil {
		return domain.Account{}, err
	}
	xsts, uhs, err := m.xstsToken(ctx, xbl)
	if err != nil {
		return domain.Account{}, err
	}
	game, err := m.gameToken(ctx, uhs, xsts)
	if err != nil {
		return domain.Account{}, err
	}

	expires := m.now().Add(time.Duration(game.ExpiresIn) * time.Second)
	account := domain.Account{
		ID:       fallbackID,
		Username: fallbackName,
		Token:    game.AccessToken,
		Expires:  &expires,
		Credentials: domain.MicrosoftCredentials{
			Access:  tokens.AccessToken,
			Refresh: tokens.RefreshToken,
		},
	}

	profile, err := m.profile(ctx, game.AccessToken)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Account{}, ctxErr
		}
		m.logger.WarnContext(ctx, "game profile unavailable, keeping placeholder identity",
			"account_id", string(fallbackID),
			"error", err,
		)
		return account, nil
	}

	account.ID = domain.AccountID(profile.ID)
	account.Username = profile.Name
	account.HasProfile = true
	return account, nil
}

func (m *Microsoft) requestTokens(ctx context.Context, stage string, form url.Values) (tokenResponse, error) {
	resp, err := m.client.PostForm(ctx, m.endpoints.Token, form)
	if err != nil {
		if stage == stageTokenRefresh && isRejectedGrant(err) {
			err = fmt.Errorf("%w: %w", domain.ErrReauthenticationRequired, err)
		}
		return tokenResponse{}, stageError(stage, err)
	}

	var tokens tokenResponse
	if err := decodeJSON(resp, &tokens); err != nil {
		return tokenResponse{}, stageError(stage, err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return tokenResponse{}, stageError(stage, fmt.Errorf("%w: token response missing required fields", domain.ErrDecoding))
	}

	return tokens, nil
}

func (m *Microsoft) xboxToken(ctx context.Context, accessToken string) (string, error) {
	resp, err := m.client.PostJSON(ctx, m.endpoints.XBL, newXboxAuthRequest(accessToken))
	if err != nil {
		return "", stageError(stageXBL, err)
	}

	var out xboxTokenResponse
	if err := decodeJSON(resp, &out); err != nil {
		return "", stageError(stageXBL, err)
	}
	if out.Token == "" {
		return "", stageError(stageXBL, fmt.Errorf("%w: xbox live response missing token", domain.ErrDecoding))
	}

	return out.Token, nil
}

func (m *Microsoft) xstsToken(ctx context.Context, xblToken string) (token, uhs string, err error) {
	resp, err := m.client.PostJSON(ctx, m.endpoints.XSTS, newXSTSRequest(xblToken))
	if err != nil {
		return "", "", stageError(stageXSTS, err)
	}

	var out xboxTokenResponse
	if err := decodeJSON(resp, &out); err != nil {
		return "", "", stageError(stageXSTS, err)
	}
	if out.Token == "" {
		return "", "", stageError(stageXSTS, fmt.Errorf("%w: xsts response missing token", domain.ErrDecoding))
	}
	uhs, err = out.userHash()
	if err != nil {
		return "", "", stageError(stageXSTS, err)
	}

	return out.Token, uhs, nil
}

func (m *Microsoft) gameToken(ctx context.Context, uhs, xstsToken string) (gameTokenResponse, error) {
	resp, err := m.client.PostJSON(ctx, m.endpoints.GameLogin, newGameLoginRequest(uhs, xstsToken))
	if err != nil {
		return gameTokenResponse{}, stageError(stageGameLogin, err)
	}

	var out gameTokenResponse
	if err := decodeJSON(resp, &out); err != nil {
		return gameTokenResponse{}, stageError(stageGameLogin, err)
	}
	if out.AccessToken == "" {
		return gameTokenResponse{}, stageError(stageGameLogin, fmt.Errorf("%w: game login response missing access token", domain.ErrDecoding))
	}

	return out, nil
}

func (m *Microsoft) profile(ctx context.Context, gameToken string) (profileResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoints.Profile, nil)
	if err != nil {
		return profileResponse{}, stageError(stageProfile, fmt.Errorf("create profile request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+gameToken)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Execute(ctx, req)
	if err != nil {
		return profileResponse{}, stageError(stageProfile, err)
	}

	var out profileResponse
	if err := decodeJSON(resp, &out); err != nil {
		return profileResponse{}, stageError(stageProfile, err)
	}
	if out.ID == "" || out.Name == "" {
		return profileResponse{}, stageError(stageProfile, fmt.Errorf("%w: profile response missing id or name", domain.ErrDecoding))
	}

	return out, nil
}

func decodeJSON(resp *http.Response, v any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxTokenResponseBytes))
		_ = resp.Body.Close()
	}()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxTokenResponseBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecoding, err)
	}
	return nil
}

func isRejectedGrant(err error) bool {
	code := transport.StatusCode(err)
	return code == http.StatusBadRequest || code == http.StatusUnauthorized
}

func stageError(stage string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return oops.
		In("auth").
		Code("AUTH_"+strings.ToUpper(stage)+"_FAILED").
		With("stage", stage).
		Wrapf(err, "microsoft %s", strings.ReplaceAll(stage, "_", " "))
}
