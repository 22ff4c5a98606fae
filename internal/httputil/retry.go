// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP session and retry helpers shared by
// the registry clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

// maxRetryAfter caps a server-supplied Retry-After so one registry cannot
// park a call past its timeout budget.
const maxRetryAfter = 5 * time.Second

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests). The wait is the server's Retry-After when given in seconds
// (capped at 5s), otherwise RetryBaseDelay doubled per attempt.
//
// maxRetries <= 0 sends the request exactly once. On each 429 the response
// body is drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last 429 response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		backoff := retryDelay(resp, attempt)

		// Drain and close the body before retrying.
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// retryDelay picks the wait before the next attempt.
func retryDelay(resp *http.Response, attempt int) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			return min(time.Duration(secs)*time.Second, maxRetryAfter)
		}
	}
	return RetryBaseDelay << attempt
}
