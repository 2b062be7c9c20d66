package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/i474232898/weather-screen/internal/common"
)

var (
	// ErrNoAPIKey is returned when a client is used without its API key.
	ErrNoAPIKey = errors.New("api key is not configured")
	// ErrUnexpectedStatus wraps every non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	errNoHTTPClient     = errors.New("http client not configured")
)

// StatusError carries the status and a body excerpt of a failed call.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// maxBody bounds what we read from a single response.
const maxBody = 4 << 20

// doGet executes one GET request bound to ctx. There are no retries; a
// transport error or non-2xx status is returned as-is to the caller.
func doGet(ctx context.Context, client *http.Client, u string) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: common.FirstLine(string(body), 200)}
	}
	return body, nil
}
