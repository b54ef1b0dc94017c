// Package middleware provides echo middleware for the HTTP adapter.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bnema/dockcmd/internal/adapters/dto"
	"github.com/bnema/dockcmd/internal/logging"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = echo.HeaderXRequestID

// RequestID reuses the caller's X-Request-ID or generates a UUID.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: HeaderRequestID,
	})
}

// RequestLogger attaches log, tagged with the request ID, to the request
// context for downstream handlers, then logs the request once it completes.
// RequestID must run first.
func RequestLogger(log logging.Logger) echo.MiddlewareFunc {
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(HeaderRequestID)
			reqLog := logging.Logger{Logger: log.With().Str(logging.FieldRequestID, requestID).Logger()}
			ctx := logging.WithCtx(c.Request().Context(), reqLog)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}

	access := echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURIPath:   true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Warn()
			}
			if v.Error != nil {
				event = event.Err(v.Error)
			}
			event.
				Str(logging.FieldLayer, "adapter").
				Str(logging.FieldAdapter, "http").
				Str(logging.FieldRequestID, v.RequestID).
				Str(logging.FieldMethod, v.Method).
				Str(logging.FieldPath, v.URIPath).
				Str(logging.FieldClientIP, v.RemoteIP).
				Str("user_agent", v.UserAgent).
				Int(logging.FieldStatus, v.Status).
				Dur(logging.FieldDuration, v.Latency).
				Msg("HTTP request")
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return access(attach(next))
	}
}

// Recover turns a panic into a 500 JSON response and logs it.
func Recover(log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str(logging.FieldLayer, "adapter").
						Str(logging.FieldAdapter, "http").
						Str(logging.FieldMethod, c.Request().Method).
						Str(logging.FieldPath, c.Request().URL.Path).
						Str("panic", fmt.Sprint(r)).
						Msg("panic recovered")
					err = c.JSON(http.StatusInternalServerError, dto.NewError(dto.KindInternal, "Internal Server Error"))
				}
			}()
			return next(c)
		}
	}
}
