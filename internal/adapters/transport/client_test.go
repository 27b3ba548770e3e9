package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type backoffRecorder struct {
	mu       sync.Mutex
	attempts []int
}

func (r *backoffRecorder) backoff(attempt int) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
	return 0
}

func (r *backoffRecorder) recorded() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.attempts...)
}

func newTestClient(t *testing.T, rt http.RoundTripper) (*Client, *backoffRecorder) {
	t.Helper()

	recorder := &backoffRecorder{}
	client, err := New(Options{
		Interval:   time.Millisecond,
		HTTPClient: &http.Client{Transport: rt},
		Backoff:    recorder.backoff,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Destroy() })
	return client, recorder
}

func textResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func TestDefaultBackoffSchedule(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Duration(0), DefaultBackoff(0))
	assert.Equal(t, 2*time.Second, DefaultBackoff(1))
	assert.Equal(t, 8*time.Second, DefaultBackoff(2))
}

func TestClientExecuteRetriesNetworkFailures(t *testing.T) {
	t.Parallel()

	var calls int
	client, recorder := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection reset by peer")
		}
		return textResponse(req, http.StatusOK, "ok"), nil
	}))

	resp, err := client.Get(context.Background(), "https://api.example.com/resource")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, recorder.recorded())
}

func TestClientExecuteGivesUpAfterThreeAttempts(t *testing.T) {
	t.Parallel()

	var calls int
	client, recorder := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("dial tcp: connection refused")
	}))

	_, err := client.Get(context.Background(), "https://api.example.com/resource")
	require.Error(t, err)

	var exhausted *AttemptsExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, MaxAttempts, exhausted.Attempts)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, recorder.recorded())
}

func TestClientExecuteDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls int
	client, recorder := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return textResponse(req, http.StatusBadRequest, `{"error":"invalid_grant"}`), nil
	}))

	_, err := client.Get(context.Background(), "https://api.example.com/resource?code=secret")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "invalid_grant")
	assert.NotContains(t, err.Error(), "secret")
	assert.Equal(t, 1, calls)
	assert.Empty(t, recorder.recorded())
}

func TestClientExecuteRetriesTransientStatuses(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			var calls int
			client, _ := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
				calls++
				return textResponse(req, status, ""), nil
			}))

			_, err := client.Get(context.Background(), "https://api.example.com/resource")

			var exhausted *AttemptsExhaustedError
			require.ErrorAs(t, err, &exhausted)
			assert.Equal(t, status, StatusCode(err))
			assert.Equal(t, 3, calls)
		})
	}
}

func TestClientExecuteRejectsNonReplayableBody(t *testing.T) {
	t.Parallel()

	var calls int
	client, _ := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return textResponse(req, http.StatusOK, ""), nil
	}))

	req, err := http.NewRequest(http.MethodPost, "https://api.example.com/upload", nil)
	require.NoError(t, err)
	req.Body = io.NopCloser(strings.NewReader("stream"))

	_, err = client.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrRequestCloneFail)
	assert.Zero(t, calls)
}

func TestClientPostJSONReplaysBodyOnRetry(t *testing.T) {
	t.Parallel()

	var bodies []string
	client, _ := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		payload, err := io.ReadAll(req.Body)
		assert.NoError(t, err)
		bodies = append(bodies, string(payload))
		if len(bodies) == 1 {
			return textResponse(req, http.StatusBadGateway, ""), nil
		}
		return textResponse(req, http.StatusOK, "{}"), nil
	}))

	resp, err := client.PostJSON(context.Background(), "https://api.example.com/json", map[string]string{"platform": "PC_LAUNCHER"})
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, []string{`{"platform":"PC_LAUNCHER"}`, `{"platform":"PC_LAUNCHER"}`}, bodies)
}

func TestClientPostFormEncodesValues(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		assert.NoError(t, req.ParseForm())
		assert.Equal(t, "authorization_code", req.PostForm.Get("grant_type"))
		assert.Equal(t, "code-123", req.PostForm.Get("code"))
		return textResponse(req, http.StatusOK, ""), nil
	}))

	resp, err := client.PostForm(context.Background(), "https://api.example.com/token", url.Values{
		"grant_type": {"authorization_code"},
		"code":       {"code-123"},
	})
	require.NoError(t, err)
	_ = resp.Body.Close()
}

func TestClientSetsDefaultUserAgent(t *testing.T) {
	t.Parallel()

	var agents []string
	client, _ := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		agents = append(agents, req.Header.Get("User-Agent"))
		return textResponse(req, http.StatusOK, ""), nil
	}))

	resp, err := client.Get(context.Background(), "https://api.example.com/a")
	require.NoError(t, err)
	_ = resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/b", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom/1.0")
	resp, err = client.Execute(context.Background(), req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, []string{DefaultUserAgent, "custom/1.0"}, agents)
}

func TestClientReturnsContextErrorWithoutRetrying(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		<-req.Context().Done()
		return nil, req.Context().Err()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "https://api.example.com/slow")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueueSpacesDispatchesByInterval(t *testing.T) {
	t.Parallel()

	const interval = 40 * time.Millisecond

	var (
		mu    sync.Mutex
		times []time.Time
	)
	client, err := New(Options{
		Interval: interval,
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
			return textResponse(req, http.StatusOK, ""), nil
		})},
	})
	require.NoError(t, err)
	defer client.Destroy()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(context.Background(), "https://api.example.com/paced")
			if assert.NoError(t, err) {
				_ = resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, times, 4)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i].Sub(times[i-1]), interval-5*time.Millisecond)
	}
}

func TestClientDestroyStopsWorker(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	client, err := New(Options{
		Interval: time.Millisecond,
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return textResponse(req, http.StatusOK, ""), nil
		})},
	})
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "https://api.example.com/")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.True(t, client.Destroy())
	assert.False(t, client.Destroy())

	_, err = client.Get(context.Background(), "https://api.example.com/")
	require.ErrorIs(t, err, ErrQueueShutDown)
}

func TestClientDestroyDrainsQueuedJobs(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	release := make(chan struct{})
	started := make(chan struct{}, 3)
	client, err := New(Options{
		Interval: time.Millisecond,
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			started <- struct{}{}
			<-release
			return textResponse(req, http.StatusOK, ""), nil
		})},
	})
	require.NoError(t, err)

	errs := make(chan error, 3)
	for range 3 {
		go func() {
			resp, err := client.Get(context.Background(), "https://api.example.com/queued")
			if err == nil {
				_ = resp.Body.Close()
			}
			errs <- err
		}()
	}

	<-started
	require.Eventually(t, func() bool {
		client.mu.RLock()
		defer client.mu.RUnlock()
		return len(client.queue.jobs) == 2
	}, time.Second, time.Millisecond)

	destroyed := make(chan bool, 1)
	go func() { destroyed <- client.Destroy() }()
	require.Eventually(t, func() bool {
		client.mu.RLock()
		defer client.mu.RUnlock()
		return client.queue == nil
	}, time.Second, time.Millisecond)

	close(release)
	for range 3 {
		require.NoError(t, <-errs)
	}
	assert.True(t, <-destroyed)
}

func TestNewRejectsUnsupportedProxy(t *testing.T) {
	t.Parallel()

	_, err := New(Options{ProxyURL: "ftp://proxy.example.com:21"})
	require.ErrorIs(t, err, ErrInvalidProxy)

	_, err = New(Options{ProxyURL: "socks5://"})
	require.ErrorIs(t, err, ErrInvalidProxy)
}

func TestNewAcceptsSocksProxy(t *testing.T) {
	t.Parallel()

	client, err := New(Options{ProxyURL: "socks5://127.0.0.1:1080"})
	require.NoError(t, err)
	assert.True(t, client.Destroy())
}
