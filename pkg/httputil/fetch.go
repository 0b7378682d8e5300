package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/matzehuels/degrees/pkg/errors"
)

const (
	// httpTimeout bounds a single download attempt.
	httpTimeout = 2 * time.Minute

	// MaxBodyBytes caps the size of a downloaded edge list.
	MaxBodyBytes = 1 << 30
)

// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
var ErrNetwork = errors.New("network error")

// NewHTTPClient creates an HTTP client with the download timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// IsRemote reports whether path is an http or https URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Fetch downloads url and returns the response body. A nil client uses
// [NewHTTPClient]. Transient failures are retried with [RetryWithBackoff].
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = NewHTTPClient()
	}

	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = get(ctx, client, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "bad url %s", url)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	if len(data) > MaxBodyBytes {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "%s: body exceeds %d bytes", url, MaxBodyBytes)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.ErrCodeFileNotFound, "%s: not found", url)
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
