package request

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const redactedValue = "REDACTED"

// TransientError reports a request that still failed after the
// configured number of attempts: a timeout, a connection failure or a
// non-2xx status. Callers may downgrade it to a soft "not found"
// outcome; every other error kind must propagate.
type TransientError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a TransientError
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Executor performs HTTP calls with a bounded number of attempts,
// linear backoff and a per-attempt timeout. There is no deadline
// across the whole attempt sequence, only per individual attempt.
type Executor struct {
	client      *resty.Client
	maxAttempts int
}

// NewExecutor creates an executor. maxAttempts values below 1 are
// treated as 1; the wait before attempt n+1 is retryDelay * n.
func NewExecutor(timeout time.Duration, maxAttempts int, retryDelay time.Duration, logger *zap.Logger) *Executor {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Resty clamps the SetRetryAfter result into
	// [RetryWaitTime, RetryMaxWaitTime]; widen the window so the
	// linear schedule survives any configured delay and attempt count.
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(maxAttempts - 1).
		SetRetryWaitTime(retryDelay).
		SetRetryMaxWaitTime(retryDelay * time.Duration(maxAttempts)).
		SetRetryAfter(func(c *resty.Client, resp *resty.Response) (time.Duration, error) {
			attempt := 1
			if resp != nil && resp.Request != nil {
				attempt = resp.Request.Attempt
			}
			return retryDelay * time.Duration(attempt), nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && !resp.IsSuccess()
		})

	// Attempt logging is advisory only: it must never alter returned
	// values or control flow.
	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("api request",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Any("params", sanitizeParams(req.QueryParam)),
		)
		return nil
	})
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("api response",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("latency", resp.Time()),
			zap.Int("bytes", len(resp.Body())),
		)
		return nil
	})
	client.AddRetryHook(func(resp *resty.Response, err error) {
		attempt := 0
		if resp != nil && resp.Request != nil {
			attempt = resp.Request.Attempt
		}
		logger.Warn("attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err),
		)
	})

	return &Executor{
		client:      client,
		maxAttempts: maxAttempts,
	}
}

// Get performs a GET with the given query parameters and returns the
// response body. Transport failures and non-2xx statuses surface as a
// single TransientError naming the operation and the attempt count.
func (e *Executor) Get(ctx context.Context, op, rawURL string, params map[string]string) ([]byte, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(rawURL)

	attempts := e.maxAttempts
	if resp != nil && resp.Request != nil && resp.Request.Attempt > 0 {
		attempts = resp.Request.Attempt
	}

	if err != nil {
		return nil, &TransientError{Op: op, Attempts: attempts, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &TransientError{
			Op:       op,
			Attempts: attempts,
			Err:      fmt.Errorf("unexpected status %d %s", resp.StatusCode(), resp.Status()),
		}
	}

	return resp.Body(), nil
}

func sanitizeParams(params url.Values) map[string]string {
	sanitized := make(map[string]string, len(params))
	for key := range params {
		if key == "appid" {
			sanitized[key] = redactedValue
			continue
		}
		sanitized[key] = params.Get(key)
	}
	return sanitized
}
