package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/launcher-core/internal/adapters/transport"
	"github.com/bnema/launcher-core/internal/logging"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

// fakeProvider plays the identity provider, Xbox services and the game API.
type fakeProvider struct {
	t *testing.T

	mu       sync.Mutex
	forms    []url.Values
	xblBody  map[string]any
	xstsBody map[string]any
	xtoken   string
	bearer   string

	tokenStatus   int
	xstsResponse  string
	gameStatus    int
	profileStatus int
}

func newFakeProvider(t *testing.T) (*fakeProvider, Endpoints) {
	t.Helper()

	p := &fakeProvider{
		t:             t,
		tokenStatus:   http.StatusOK,
		gameStatus:    http.StatusOK,
		profileStatus: http.StatusOK,
		xstsResponse:  `{"Token":"xsts-token","DisplayClaims":{"xui":[{"uhs":"user-hash"}]}}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", p.token)
	mux.HandleFunc("/xbl", p.xbl)
	mux.HandleFunc("/xsts", p.xsts)
	mux.HandleFunc("/game", p.game)
	mux.HandleFunc("/profile", p.profile)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return p, Endpoints{
		Authorize: server.URL + "/authorize",
		Redirect:  server.URL + "/redirect",
		Token:     server.URL + "/token",
		XBL:       server.URL + "/xbl",
		XSTS:      server.URL + "/xsts",
		GameLogin: server.URL + "/game",
		Profile:   server.URL + "/profile",
	}
}

func (p *fakeProvider) token(w http.ResponseWriter, r *http.Request) {
	if !assert.NoError(p.t, r.ParseForm()) {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	p.mu.Lock()
	p.forms = append(p.forms, r.PostForm)
	status := p.tokenStatus
	p.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, `{"error":"invalid_grant"}`, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"access_token":"ms-access","refresh_token":"ms-refresh","expires_in":3600}`)
}

func (p *fakeProvider) xbl(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	assert.NoError(p.t, json.NewDecoder(r.Body).Decode(&body))
	p.mu.Lock()
	p.xblBody = body
	p.mu.Unlock()

	_, _ = io.WriteString(w, `{"Token":"xbl-token","DisplayClaims":{"xui":[{"uhs":"user-hash"}]}}`)
}

func (p *fakeProvider) xsts(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	assert.NoError(p.t, json.NewDecoder(r.Body).Decode(&body))
	p.mu.Lock()
	p.xstsBody = body
	response := p.xstsResponse
	p.mu.Unlock()

	_, _ = io.WriteString(w, response)
}

func (p *fakeProvider) game(w http.ResponseWriter, r *http.Request) {
	var body gameLoginRequest
	assert.NoError(p.t, json.NewDecoder(r.Body).Decode(&body))
	p.mu.Lock()
	p.xtoken = body.XToken
	status := p.gameStatus
	p.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, "unavailable", status)
		return
	}
	_, _ = io.WriteString(w, `{"access_token":"game-token","expires_in":86400}`)
}

func (p *fakeProvider) profile(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.bearer = r.Header.Get("Authorization")
	status := p.profileStatus
	p.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, `{"error":"NOT_FOUND"}`, status)
		return
	}
	_, _ = io.WriteString(w, `{"id":"0f3c5a1e9b2d4c7f8a6e1d2c3b4a5f60","name":"Steve"}`)
}

func (p *fakeProvider) setTokenStatus(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokenStatus = status
}

func (p *fakeProvider) setXSTSResponse(body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.xstsResponse = body
}

func (p *fakeProvider) setGameStatus(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameStatus = status
}

func (p *fakeProvider) setProfileStatus(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profileStatus = status
}

func (p *fakeProvider) tokenForms() []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]url.Values(nil), p.forms...)
}

func newTransportClient(t *testing.T) *transport.Client {
	t.Helper()

	client, err := transport.New(transport.Options{
		Interval: time.Millisecond,
		Backoff:  func(int) time.Duration { return 0 },
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Destroy() })
	return client
}

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestMicrosoft(t *testing.T, endpoints Endpoints) *Microsoft {
	t.Helper()

	return NewMicrosoft(newTransportClient(t),
		WithEndpoints(endpoints),
		WithClock(fixedClock{at: testNow}),
		WithIDGenerator(func() string { return "generated-id" }),
		WithLogger(logging.Discard()),
	)
}
