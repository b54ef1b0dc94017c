package middleware

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bnema/dockcmd/internal/adapters/dto"
	"github.com/bnema/dockcmd/internal/logging"
)

// localhostNets contains IPv4 and IPv6 loopback ranges that are always allowed.
var localhostNets, _ = ParseTrustedProxies([]string{"127.0.0.0/8", "::1"})

// CIDRAllowlist restricts access to the given ranges. Loopback is always
// allowed. An empty allowlist lets all traffic through.
func CIDRAllowlist(allowed []*net.IPNet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if len(allowed) == 0 {
			return next
		}
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ContainsIP(ip, localhostNets) || ContainsIP(ip, allowed) {
				return next(c)
			}

			log := logging.FromCtx(c.Request().Context())
			log.Warn().
				Str(logging.FieldLayer, "adapter").
				Str(logging.FieldAdapter, "http").
				Str(logging.FieldMethod, c.Request().Method).
				Str(logging.FieldPath, c.Request().URL.Path).
				Str(logging.FieldClientIP, ip).
				Msg("access denied by CIDR allowlist")

			return c.JSON(http.StatusForbidden, dto.NewError(dto.KindForbidden, "Forbidden"))
		}
	}
}
