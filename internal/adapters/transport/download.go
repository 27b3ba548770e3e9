package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Download streams rawURL into dst. See DownloadFrom.
func (c *Client) Download(ctx context.Context, rawURL string, dst io.Writer) (int64, error) {
	return c.DownloadFrom(ctx, rawURL, dst, 0)
}

// DownloadFrom streams rawURL into dst, assuming the first offset bytes are
// already present. Every attempt asks for the remainder with a Range header
// and a body cut short is retried from the last byte written, so dst never
// sees a byte twice. It returns the number of bytes written to dst by this
// call. On success dst is flushed, or synced when it has no Flush method.
func (c *Client) DownloadFrom(ctx context.Context, rawURL string, dst io.Writer, offset int64) (int64, error) {
	if offset < 0 {
		return 0, fmt.Errorf("download offset must not be negative, got %d", offset)
	}

	position := offset
	err := c.retry(ctx, func(ctx context.Context, attempt int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("create download request: %w", err)
		}
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", position))

		resp, err := c.submit(ctx, req)
		if err != nil {
			if position > 0 && StatusCode(err) == http.StatusRequestedRangeNotSatisfiable {
				c.logger.Debug("range not satisfiable, download already complete", "offset", position)
				return nil
			}
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		skip, err := bytesToSkip(resp, position)
		if err != nil {
			return err
		}
		if skip > 0 {
			if _, err := io.CopyN(io.Discard, resp.Body, skip); err != nil {
				return &NetworkError{Method: req.Method, URL: redactURL(req.URL), Err: err}
			}
		}

		n, err := copyBody(dst, resp.Body)
		position += n
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			var netErr *NetworkError
			if errors.As(err, &netErr) {
				netErr.Method, netErr.URL = req.Method, redactURL(req.URL)
				c.logger.Debug("download interrupted", "attempt", attempt+1, "offset", position, "error", netErr.Err)
			}
			return err
		}
		return nil
	})
	written := position - offset
	if err != nil {
		return written, err
	}

	if err := flushWriter(dst); err != nil {
		return written, fmt.Errorf("flush download destination: %w", err)
	}
	return written, nil
}

// bytesToSkip returns how many leading body bytes the caller already has.
// A 206 is positioned by its Content-Range; anything else starts at zero.
func bytesToSkip(resp *http.Response, position int64) (int64, error) {
	if resp.StatusCode != http.StatusPartialContent {
		return position, nil
	}
	start, err := parseContentRangeStart(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, err
	}
	if start > position {
		return 0, fmt.Errorf("%w: starts at %d, have %d bytes", ErrUnexpectedRange, start, position)
	}
	return position - start, nil
}

// parseContentRangeStart reads the first byte position of a
// "bytes <start>-<end>/<size>" header.
func parseContentRangeStart(header string) (int64, error) {
	spec, ok := strings.CutPrefix(strings.TrimSpace(header), "bytes ")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedRange, header)
	}
	startText, _, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedRange, header)
	}
	start, err := strconv.ParseInt(strings.TrimSpace(startText), 10, 64)
	if err != nil || start < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedRange, header)
	}
	return start, nil
}

// copyBody copies src into dst. Read failures come back as *NetworkError so
// they are retried; write failures are returned as-is and end the download.
func copyBody(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32<<10)
	var written int64
	for {
		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			written += int64(nw)
			if writeErr != nil {
				return written, fmt.Errorf("write download destination: %w", writeErr)
			}
			if nw != nr {
				return written, fmt.Errorf("write download destination: %w", io.ErrShortWrite)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, &NetworkError{Err: readErr}
		}
	}
}

func flushWriter(dst io.Writer) error {
	switch w := dst.(type) {
	case interface{ Flush() error }:
		return w.Flush()
	case interface{ Sync() error }:
		return w.Sync()
	default:
		return nil
	}
}
