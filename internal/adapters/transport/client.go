package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sethvargo/go-retry"
)

const (
	MaxAttempts      = 3
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// DefaultBackoff waits attempt²×2s before the given zero-based attempt:
// 0s, 2s, 8s.
func DefaultBackoff(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * 2 * time.Second
}

type Options struct {
	Interval    time.Duration
	MailboxSize int
	Timeout     time.Duration
	ProxyURL    string
	UserAgent   string
	// HTTPClient replaces the client built from Timeout and ProxyURL.
	HTTPClient *http.Client
	Backoff    func(attempt int) time.Duration
	Logger     *slog.Logger
}

// Client is a rate-limited HTTP client. Every request from every caller is
// funnelled through a single queue worker that paces dispatches.
type Client struct {
	mu      sync.RWMutex
	queue   *queue
	backoff func(attempt int) time.Duration
	logger  *slog.Logger
}

func New(opts Options) (*Client, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MailboxSize <= 0 {
		opts.MailboxSize = DefaultMailboxSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Backoff == nil {
		opts.Backoff = DefaultBackoff
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = newHTTPClient(opts.Timeout, opts.ProxyURL)
		if err != nil {
			return nil, err
		}
	}

	logger := opts.Logger.With("component", "transport")
	return &Client{
		queue:   newQueue(httpClient, opts.Interval, opts.MailboxSize, opts.UserAgent, logger),
		backoff: opts.Backoff,
		logger:  logger,
	}, nil
}

// Execute sends req through the queue, retrying transient failures. The
// request is cloned for every attempt, so a body must be replayable through
// GetBody.
func (c *Client) Execute(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	err := c.retry(ctx, func(ctx context.Context, _ int) error {
		clone, err := cloneRequest(ctx, req)
		if err != nil {
			return err
		}
		resp, err = c.submit(ctx, clone)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.Execute(ctx, req)
}

func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.Execute(ctx, req)
}

func (c *Client) PostJSON(ctx context.Context, rawURL string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.Execute(ctx, req)
}

// Destroy closes the mailbox and waits for the worker to finish the jobs
// already queued. It reports false if the client was already destroyed.
func (c *Client) Destroy() bool {
	c.mu.Lock()
	q := c.queue
	if q == nil {
		c.mu.Unlock()
		return false
	}
	c.queue = nil
	close(q.jobs)
	c.mu.Unlock()

	<-q.done
	return true
}

// submit enqueues a single attempt and waits for its result.
func (c *Client) submit(ctx context.Context, req *http.Request) (*http.Response, error) {
	reply := make(chan result, 1)
	j := job{id: ulid.Make(), req: req, reply: reply}

	c.mu.RLock()
	if c.queue == nil {
		c.mu.RUnlock()
		return nil, ErrQueueShutDown
	}
	select {
	case c.queue.jobs <- j:
	case <-ctx.Done():
		c.mu.RUnlock()
		return nil, ctx.Err()
	}
	c.mu.RUnlock()

	return await(ctx, reply)
}

// retry runs fn up to MaxAttempts times. fn receives the zero-based attempt
// number; transient errors are retried after c.backoff(attempt).
func (c *Client) retry(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	var (
		attempt   int
		delay     time.Duration
		last      error
		exhausted bool
	)

	backoff := retry.WithMaxRetries(MaxAttempts-1, retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		current := attempt
		err := fn(ctx, current)
		attempt++
		if err == nil || !IsRetryable(err) {
			return err
		}
		last = err
		if attempt >= MaxAttempts {
			exhausted = true
		} else {
			delay = c.backoff(attempt)
			c.logger.Debug("retrying request", "attempt", attempt+1, "delay", delay, "error", err)
		}
		return retry.RetryableError(err)
	})
	if exhausted {
		return &AttemptsExhaustedError{Attempts: attempt, Last: last}
	}
	return err
}

func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	clone := req.Clone(ctx)
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, ErrRequestCloneFail
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestCloneFail, err)
	}
	clone.Body = body
	return clone, nil
}
