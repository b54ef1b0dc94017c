// Package api implements the HTTP adapter for command analysis and execution.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bnema/dockcmd/internal/adapters/dto"
	"github.com/bnema/dockcmd/internal/boundaries/in"
	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/internal/logging"
)

// EngineProbe reports the version of the container engine.
type EngineProbe interface {
	Version(ctx context.Context) (string, error)
}

// Handler implements the HTTP handler for the command API.
type Handler struct {
	analyzer in.CommandAnalyzer
	executor in.CommandExecutor
	engine   EngineProbe
}

// NewHandler creates a new API handler. executor and engine may be nil when
// the engine is disabled; the execute route is then not registered.
func NewHandler(analyzer in.CommandAnalyzer, executor in.CommandExecutor, engine EngineProbe) *Handler {
	return &Handler{analyzer: analyzer, executor: executor, engine: engine}
}

// RegisterRoutes registers the API routes on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.health)

	g := e.Group("/api/commands")
	g.GET("", h.vocabulary)
	g.POST("/analyze", h.analyze)
	if h.executor != nil {
		g.POST("/execute", h.execute)
	}
}

func (h *Handler) analyze(c echo.Context) error {
	ctx := handlerCtx(c, "analyze")

	raw, ok := bindCommand(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewError(dto.KindBadRequest, "invalid request body"))
	}

	analysis, err := h.analyzer.Analyze(ctx, raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, analysis)
}

func (h *Handler) execute(c echo.Context) error {
	ctx := handlerCtx(c, "execute")

	raw, ok := bindCommand(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewError(dto.KindBadRequest, "invalid request body"))
	}

	result, err := h.executor.Execute(ctx, raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) vocabulary(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.VocabularyResponse{Commands: h.analyzer.Vocabulary()})
}

func (h *Handler) health(c echo.Context) error {
	resp := dto.HealthResponse{Status: "ok"}
	if h.engine == nil {
		return c.JSON(http.StatusOK, resp)
	}

	version, err := h.engine.Version(c.Request().Context())
	if err != nil {
		log := logging.FromCtx(c.Request().Context())
		log.Warn().Err(err).Msg("engine health check failed")
		resp.Status = "degraded"
		resp.Engine = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	resp.Engine = "ok"
	resp.EngineVersion = version
	return c.JSON(http.StatusOK, resp)
}

func handlerCtx(c echo.Context, action string) context.Context {
	ctx := logging.CtxWithFields(c.Request().Context(), map[string]any{
		logging.FieldLayer:   "adapter",
		logging.FieldAdapter: "http",
		logging.FieldHandler: "api",
		logging.FieldAction:  action,
	})
	c.SetRequest(c.Request().WithContext(ctx))
	return ctx
}

// bindCommand reads the command from the JSON body. Blank commands are left
// to the analyzer, which rejects them as EmptyCommand.
func bindCommand(c echo.Context) (string, bool) {
	var req dto.CommandRequest
	if err := c.Bind(&req); err != nil {
		return "", false
	}
	return req.Command, true
}

func writeError(c echo.Context, err error) error {
	if ae, ok := domain.AsAnalysisError(err); ok {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.ErrorBody{
			Kind:     string(ae.Kind),
			Message:  ae.Error(),
			Token:    ae.Token,
			Flag:     ae.Flag,
			Position: positionPtr(ae.Position),
		}})
	}

	log := logging.FromCtx(c.Request().Context())
	switch {
	case errors.Is(err, domain.ErrEngineFailure):
		log.Warn().Err(err).Msg("engine request failed")
		kind := dto.KindEngineFailure
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrNotFound) {
			kind = dto.KindNotFound
			status = http.StatusNotFound
		}
		return c.JSON(status, dto.NewError(kind, err.Error()))
	case errors.Is(err, domain.ErrInvalidFormat):
		log.Info().Err(err).Msg("format template rejected")
		return c.JSON(http.StatusUnprocessableEntity, dto.NewError(dto.KindInvalidFormat, err.Error()))
	case errors.Is(err, domain.ErrUnsupportedTarget):
		log.Error().Err(err).Msg("no engine route for command")
		return c.JSON(http.StatusNotImplemented, dto.NewError(dto.KindInternal, err.Error()))
	default:
		log.Error().Err(err).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, dto.NewError(dto.KindInternal, "Internal Server Error"))
	}
}

func positionPtr(pos int) *int {
	if pos == domain.NoPosition {
		return nil
	}
	return &pos
}
