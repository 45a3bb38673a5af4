package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"
)

const defaultMaxRetries = 4

type retryPolicy struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	maxRetries      uint64 // 0 means bounded by maxElapsedTime only
}

func newRetryPolicy(initial, maxElapsed time.Duration) retryPolicy {
	if initial <= 0 {
		initial = time.Second
	}

	if maxElapsed <= 0 {
		maxElapsed = time.Minute
	}

	return retryPolicy{
		initialInterval: initial,
		maxInterval:     10 * initial,
		maxElapsedTime:  maxElapsed,
		maxRetries:      defaultMaxRetries,
	}
}

// runs op with exponential backoff until it succeeds or returns a permanent
// error. gives up when the retry count or elapsed budget runs out, or ctx is done.
func (p retryPolicy) do(ctx context.Context, op func() error) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.initialInterval
	expo.MaxInterval = p.maxInterval
	expo.MaxElapsedTime = p.maxElapsedTime

	var b backoff.BackOff = expo
	if p.maxRetries > 0 {
		b = backoff.WithMaxRetries(b, p.maxRetries)
	}

	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

func permanent(err error) error {
	return backoff.Permanent(err)
}

// the model answered but said nothing; asking again rarely helps
func emptyReply(model string) error {
	return permanent(fmt.Errorf("%w from %s", ErrEmptyReply, model))
}

// marks client errors as permanent; rate limits and server errors stay retryable
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return permanent(err)
	}

	code := statusCode(err)
	if code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout {
		return permanent(err)
	}

	return err
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}

	return 0
}
