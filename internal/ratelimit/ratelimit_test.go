package ratelimit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"roomgate/internal/ratelimit"
	"roomgate/internal/ratelimit/bucket"
	"roomgate/pkg/platform/middleware/metadata"
)

type MiddlewareSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *MiddlewareSuite) wrap(store ratelimit.Store, limit int) http.Handler {
	limited := ratelimit.Middleware(store, limit, time.Minute, s.logger)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)
	// Metadata runs first in the server's chain so the limiter sees client IPs.
	return metadata.RequestMetadata(limited)
}

func (s *MiddlewareSuite) request(handler http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/rooms/token", nil)
	req.RemoteAddr = ip + ":54321"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func (s *MiddlewareSuite) TestEnforcesLimitPerIP() {
	handler := s.wrap(bucket.NewInMemory(), 2)

	s.Equal(http.StatusOK, s.request(handler, "10.0.0.1").Code)
	s.Equal(http.StatusOK, s.request(handler, "10.0.0.1").Code)

	rec := s.request(handler, "10.0.0.1")
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("2", rec.Header().Get("X-RateLimit-Limit"))
	s.Equal("0", rec.Header().Get("X-RateLimit-Remaining"))
	s.JSONEq(`{"error":"rate limit exceeded"}`, rec.Body.String())

	// A different client is unaffected.
	s.Equal(http.StatusOK, s.request(handler, "10.0.0.2").Code)
}

func (s *MiddlewareSuite) TestZeroLimitDisablesEnforcement() {
	handler := s.wrap(bucket.NewInMemory(), 0)

	for i := 0; i < 10; i++ {
		s.Equal(http.StatusOK, s.request(handler, "10.0.0.1").Code)
	}
}

func (s *MiddlewareSuite) TestFailsOpenOnStoreError() {
	handler := s.wrap(failingStore{}, 2)

	rec := s.request(handler, "10.0.0.1")
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Header().Get("X-RateLimit-Limit"))
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*ratelimit.Result, error) {
	return nil, errors.New("redis: connection refused")
}
