package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMissingCode         = errors.New("missing authorization code")
	ErrAuthorizationDenied = errors.New("authorization denied")
)

// BuildLoginURL returns the page the user opens to sign in. After consent the
// browser lands on endpoints.Redirect with a code query parameter.
func BuildLoginURL(endpoints Endpoints) (string, error) {
	if endpoints.Authorize == "" {
		return "", errors.New("authorize url is required")
	}
	if endpoints.Redirect == "" {
		return "", errors.New("redirect uri is required")
	}

	parsed, err := url.Parse(endpoints.Authorize)
	if err != nil {
		return "", fmt.Errorf("parse authorize url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("authorize url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("authorize url host is required")
	}

	q := parsed.Query()
	q.Set("client_id", ClientID)
	q.Set("prompt", "select_account")
	q.Set("redirect_uri", endpoints.Redirect)
	q.Set("response_type", "code")
	q.Set("scope", Scope)
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

// ExtractCode accepts either the bare authorization code or the full redirect
// URL the browser ended on.
func ExtractCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrMissingCode
	}
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return input, nil
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parse redirect url: %w", err)
	}

	q := parsed.Query()
	if oauthError := q.Get("error"); oauthError != "" {
		if description := q.Get("error_description"); description != "" {
			return "", fmt.Errorf("%w: %s: %s", ErrAuthorizationDenied, oauthError, description)
		}
		return "", fmt.Errorf("%w: %s", ErrAuthorizationDenied, oauthError)
	}

	code := q.Get("code")
	if code == "" {
		return "", ErrMissingCode
	}

	return code, nil
}
