package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bnema/dockcmd/internal/boundaries/out/mocks"
)

func TestRateLimit_NilLimitersPassThrough(t *testing.T) {
	rec := serve(newTestEcho(nil, nil, RateLimit(nil, nil)), "203.0.113.1:1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_GlobalRejects(t *testing.T) {
	global := mocks.NewMockRateLimiter(t)
	global.On("Allow", mock.Anything, "global").Return(false).Once()
	perIP := mocks.NewMockRateLimiter(t)

	rec := serve(newTestEcho(nil, nil, RateLimit(global, perIP)), "203.0.113.1:1", "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	perIP.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything)
}

func TestRateLimit_PerIPKey(t *testing.T) {
	global := mocks.NewMockRateLimiter(t)
	global.On("Allow", mock.Anything, "global").Return(true).Twice()
	perIP := mocks.NewMockRateLimiter(t)
	perIP.On("Allow", mock.Anything, "ip:203.0.113.1").Return(true).Once()
	perIP.On("Allow", mock.Anything, "ip:203.0.113.2").Return(false).Once()

	e := newTestEcho(nil, nil, RateLimit(global, perIP))

	assert.Equal(t, http.StatusOK, serve(e, "203.0.113.1:1", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, "203.0.113.2:1", "").Code)
}
