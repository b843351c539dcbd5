package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"
)

// ErrNotFound reports a resource that does not exist upstream. Unlike
// transient failures it is permanent, so the executor surfaces it to the
// caller immediately instead of retrying.
var ErrNotFound = errors.New("resource not found")

// maxBackoff caps the exponential backoff between retries.
const maxBackoff = time.Minute

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	KindTransport ErrorKind = iota // connection error or timeout
	KindUpstream                   // non-success HTTP status
	KindRead                       // response body could not be consumed
	KindDecode                     // payload did not match the expected shape
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUpstream:
		return "upstream"
	case KindRead:
		return "read"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError represents a failed call against the Battle.net API.
type APIError struct {
	Kind       ErrorKind
	StatusCode int // set for KindUpstream
	Task       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("battle.net api error (%s, status %d) downloading %s: %v", e.Kind, e.StatusCode, e.Task, e.Err)
	}
	return fmt.Sprintf("battle.net api error (%s) downloading %s: %v", e.Kind, e.Task, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure should trigger a retry. Decode
// failures count as transient: the bulk auction payloads are regenerated
// between polls, so a payload that fails to decode now may decode on the
// next attempt.
func (e *APIError) Retryable() bool {
	if e.Kind == KindUpstream {
		return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
	}
	return true
}

// doRequest performs a single GET against rawURL: acquire a rate-limit
// permit, issue the request, read the body, and apply the optional field
// repair. The caller decodes.
func (c *Client) doRequest(ctx context.Context, rawURL, task string, repair *fieldRepair) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("acquire request permit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Task: task, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindRead, Task: task, Err: err}
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &APIError{Kind: KindUpstream, StatusCode: resp.StatusCode, Task: task, Err: ErrNotFound}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Kind: KindUpstream, StatusCode: resp.StatusCode, Task: task, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	if repair != nil {
		body = repair.apply(body)
	}

	return body, nil
}

// doWithRetry fetches rawURL and decodes the payload into result,
// retrying transient failures with exponential backoff and jitter.
// Permanent failures (not-found, other non-retryable statuses) surface
// immediately. With maxRetries < 0 the loop has no ceiling.
func (c *Client) doWithRetry(ctx context.Context, rawURL, task string, repair *fieldRepair, result any) error {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; c.maxRetries < 0 || attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Warn("retrying request",
				"task", task,
				"attempt", attempt,
				"backoff", jitter,
				"err", lastErr,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(jitter):
			}

			if backoff < maxBackoff {
				backoff *= 2
			}
		}

		body, err := c.doRequest(ctx, rawURL, task, repair)
		if err == nil {
			if err := json.Unmarshal(body, result); err != nil {
				lastErr = &APIError{Kind: KindDecode, Task: task, Err: err}
				continue
			}
			return nil
		}

		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() {
			return err
		}
	}

	return fmt.Errorf("max retries exceeded for %s: %w", task, lastErr)
}

// get performs a GET with retries and decodes the JSON payload into
// result. task is a human-readable label used in diagnostics.
func (c *Client) get(ctx context.Context, rawURL, task string, result any) error {
	return c.doWithRetry(ctx, rawURL, task, nil, result)
}
