package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bnema/dockcmd/internal/adapters/dto"
	"github.com/bnema/dockcmd/internal/logging"
)

// ErrorHandler renders errors that escape handlers, such as unknown routes
// or oversized bodies, in the API error format.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}

	kind := dto.KindInternal
	switch {
	case status == http.StatusNotFound:
		kind = dto.KindNotFound
	case status == http.StatusForbidden:
		kind = dto.KindForbidden
	case status == http.StatusTooManyRequests:
		kind = dto.KindRateLimited
	case status < http.StatusInternalServerError:
		kind = dto.KindBadRequest
	default:
		log := logging.FromCtx(c.Request().Context())
		log.Error().Err(err).Msg("unhandled error")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, dto.NewError(kind, message))
	}
	if writeErr != nil {
		log := logging.FromCtx(c.Request().Context())
		log.Warn().Err(writeErr).Msg("failed to write error response")
	}
}
