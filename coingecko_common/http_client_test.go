package coingecko_common

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_coingecko_common "github.com/status-im/coin-tracker/coingecko_common/mocks"
	"github.com/status-im/coin-tracker/interfaces"
)

type recordingHandler struct {
	mu       sync.Mutex
	statuses []string
}

func (h *recordingHandler) OnRequest(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHandler) OnLatency(time.Duration) {}

func newRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

func TestHTTPClient_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"bitcoin"}]`))
	}))
	defer server.Close()

	handler := &recordingHandler{}
	client := NewHTTPClient(DefaultClientOptions(), handler, nil)

	body, _, err := client.ExecuteRequest(newRequest(t, server.URL))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"bitcoin"}]`, string(body))
	assert.Equal(t, []string{StatusSuccess}, handler.statuses)
}

func TestHTTPClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantKind   interfaces.ErrorKind
		wantLabel  string
	}{
		{"unauthorized", http.StatusUnauthorized, interfaces.ErrorKindAuth, StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests, interfaces.ErrorKindRateLimited, StatusRateLimited},
		{"internal error", http.StatusInternalServerError, interfaces.ErrorKindServer, StatusServerError},
		{"bad gateway", http.StatusBadGateway, interfaces.ErrorKindServer, StatusServerError},
		{"not found", http.StatusNotFound, interfaces.ErrorKindUnknown, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			}))
			defer server.Close()

			handler := &recordingHandler{}
			client := NewHTTPClient(DefaultClientOptions(), handler, nil)

			body, _, err := client.ExecuteRequest(newRequest(t, server.URL))
			assert.Nil(t, body)

			var fetchErr *interfaces.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, tt.wantKind, fetchErr.Kind)
			assert.Equal(t, tt.statusCode, fetchErr.StatusCode)
			assert.Equal(t, []string{tt.wantLabel}, handler.statuses)
			// Single attempt, no retries
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	opts := DefaultClientOptions()
	opts.RequestTimeout = 50 * time.Millisecond
	handler := &recordingHandler{}
	client := NewHTTPClient(opts, handler, nil)

	_, _, err := client.ExecuteRequest(newRequest(t, server.URL))
	assert.Equal(t, interfaces.ErrorKindNetwork, interfaces.ClassifyError(err))
	assert.Equal(t, []string{StatusNetwork}, handler.statuses)
}

func TestHTTPClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewHTTPClient(DefaultClientOptions(), nil, nil)
	_, _, err := client.ExecuteRequest(newRequest(t, url))
	assert.Equal(t, interfaces.ErrorKindNetwork, interfaces.ClassifyError(err))
}

func TestHTTPClient_RateLimiterIsConsulted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	limiter := mock_coingecko_common.NewMockIRateLimiter(ctrl)
	limiter.EXPECT().Wait(gomock.Any()).Return(nil)

	client := NewHTTPClient(DefaultClientOptions(), nil, limiter)
	_, _, err := client.ExecuteRequest(newRequest(t, server.URL))
	assert.NoError(t, err)
}

func TestHTTPClient_RateLimiterFailure(t *testing.T) {
	var requested atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested.Store(true)
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	limiter := mock_coingecko_common.NewMockIRateLimiter(ctrl)
	limiter.EXPECT().Wait(gomock.Any()).Return(errors.New("would exceed context deadline"))

	handler := &recordingHandler{}
	client := NewHTTPClient(DefaultClientOptions(), handler, limiter)
	_, _, err := client.ExecuteRequest(newRequest(t, server.URL))

	assert.ErrorContains(t, err, "rate limiter wait failed")
	assert.False(t, requested.Load())
	assert.Equal(t, []string{StatusError}, handler.statuses)
}
