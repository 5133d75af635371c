package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExecutor(maxAttempts int) *Executor {
	return NewExecutor(time.Second, maxAttempts, time.Millisecond, zap.NewNop())
}

func TestExecutor_SucceedsOnThirdAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := newTestExecutor(3).Get(context.Background(), "flaky_op", server.URL, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestExecutor_FailsAfterAllAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestExecutor(3).Get(context.Background(), "doomed_op", server.URL, nil)

	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "doomed_op", te.Op)
	assert.Equal(t, 3, te.Attempts)
	assert.Contains(t, err.Error(), "doomed_op")
	assert.Contains(t, err.Error(), "3 attempts")
}

func TestExecutor_LinearBackoffSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping multi-second backoff test in short mode")
	}

	var mu sync.Mutex
	var arrivals []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	// A delay above 1s makes the second wait (delay*2) exceed resty's
	// default 2s retry ceiling, which must not truncate the schedule.
	delay := 1100 * time.Millisecond
	_, err := NewExecutor(time.Second, 3, delay, zap.NewNop()).
		Get(context.Background(), "slow_retry_op", server.URL, nil)

	require.Error(t, err)
	require.Len(t, arrivals, 3)

	firstGap := arrivals[1].Sub(arrivals[0])
	secondGap := arrivals[2].Sub(arrivals[1])
	assert.GreaterOrEqual(t, firstGap, delay)
	assert.Less(t, firstGap, 2*delay)
	assert.GreaterOrEqual(t, secondGap, 2*delay)
	assert.Less(t, secondGap, 3*delay)
}

func TestExecutor_ConnectionRefused(t *testing.T) {
	// Grab an address with no listener behind it
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := newTestExecutor(2).Get(context.Background(), "dead_op", addr, nil)

	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestExecutor_SingleAttemptNoRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestExecutor(1).Get(context.Background(), "one_shot", server.URL, nil)

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestExecutor_SendsQueryParams(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestExecutor(3).Get(context.Background(), "query_op", server.URL, map[string]string{
		"q":     "London,GB",
		"appid": "secret-key",
		"limit": "5",
	})

	require.NoError(t, err)
	assert.Equal(t, "London,GB", gotQuery.Get("q"))
	assert.Equal(t, "secret-key", gotQuery.Get("appid"))
	assert.Equal(t, "5", gotQuery.Get("limit"))
}

func TestSanitizeParams_RedactsAPIKey(t *testing.T) {
	params := url.Values{}
	params.Set("q", "London")
	params.Set("appid", "secret-key")

	sanitized := sanitizeParams(params)

	assert.Equal(t, "London", sanitized["q"])
	assert.Equal(t, redactedValue, sanitized["appid"])
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&TransientError{Op: "op", Attempts: 3}))
	assert.False(t, IsTransient(context.Canceled))
	assert.False(t, IsTransient(nil))
}
