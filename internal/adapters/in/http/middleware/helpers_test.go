package middleware

import (
	"bytes"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockcmd/internal/logging"
)

func mustNets(t *testing.T, entries ...string) []*net.IPNet {
	t.Helper()
	nets, invalid := ParseTrustedProxies(entries)
	require.Empty(t, invalid)
	return nets
}

func newTestEcho(trusted []*net.IPNet, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = IPExtractor(trusted)
	if h == nil {
		h = func(c echo.Context) error { return c.String(http.StatusOK, c.RealIP()) }
	}
	e.GET("/", h, mw...)
	return e
}

func serve(e *echo.Echo, remoteAddr, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set(echo.HeaderXForwardedFor, xff)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func jsonLogger(buf *bytes.Buffer) logging.Logger {
	return logging.NewWithWriter(logging.Config{Level: "debug", Format: "json"}, buf)
}
