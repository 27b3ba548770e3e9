package ports

import (
	"context"
	"net/http"
	"net/url"
)

// Requester sends HTTP requests on behalf of the auth flows. Non-2xx
// responses are reported as errors.
type Requester interface {
	Execute(ctx context.Context, req *http.Request) (*http.Response, error)
	PostForm(ctx context.Context, rawURL string, form url.Values) (*http.Response, error)
	PostJSON(ctx context.Context, rawURL string, body any) (*http.Response, error)
}
