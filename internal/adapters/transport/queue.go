package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	DefaultInterval    = time.Second
	DefaultMailboxSize = 20
)

type job struct {
	id    ulid.ULID
	req   *http.Request
	reply chan<- result
}

type result struct {
	resp *http.Response
	err  error
}

// queue owns the HTTP client and dispatches jobs one at a time, no faster
// than one per interval. It stops once jobs is closed and drained.
type queue struct {
	http      *http.Client
	interval  time.Duration
	userAgent string
	jobs      chan job
	done      chan struct{}
	logger    *slog.Logger
}

func newQueue(httpClient *http.Client, interval time.Duration, mailbox int, userAgent string, logger *slog.Logger) *queue {
	q := &queue{
		http:      httpClient,
		interval:  interval,
		userAgent: userAgent,
		jobs:      make(chan job, mailbox),
		done:      make(chan struct{}),
		logger:    logger,
	}
	go q.run()
	return q
}

func (q *queue) run() {
	defer close(q.done)
	q.logger.Debug("request queue started", "interval", q.interval, "mailbox", cap(q.jobs))

	var next time.Time
	for j := range q.jobs {
		if wait := time.Until(next); wait > 0 {
			time.Sleep(wait)
		}
		next = time.Now().Add(q.interval)
		j.reply <- q.dispatch(j)
	}

	q.logger.Debug("request queue mailbox closed, worker exiting")
}

func (q *queue) dispatch(j job) result {
	req := j.req
	if q.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", q.userAgent)
	}

	logger := q.logger.With("job_id", j.id.String(), "method", req.Method, "url", redactURL(req.URL))
	logger.Debug("dispatching request")

	resp, err := q.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return result{err: ctxErr}
		}
		logger.Debug("request failed", "error", err)
		return result{err: &NetworkError{Method: req.Method, URL: redactURL(req.URL), Err: err}}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		drainAndClose(resp.Body)
		logger.Debug("request rejected", "status", resp.StatusCode)
		return result{err: &StatusError{
			Method:     req.Method,
			URL:        redactURL(req.URL),
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}}
	}

	logger.Debug("request completed", "status", resp.StatusCode)
	return result{resp: resp}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}

// redactURL drops the query string and any user info so tokens and codes
// never reach the logs.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.User = nil
	clean.RawQuery = ""
	clean.Fragment = ""
	return clean.String()
}

// await returns the job result, or ctx's error if the caller stops waiting
// first. A late response is closed so its connection is released.
func await(ctx context.Context, reply <-chan result) (*http.Response, error) {
	select {
	case r := <-reply:
		return r.resp, r.err
	case <-ctx.Done():
		go func() {
			if r := <-reply; r.resp != nil {
				drainAndClose(r.resp.Body)
			}
		}()
		return nil, ctx.Err()
	}
}
