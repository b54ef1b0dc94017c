package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bnema/dockcmd/internal/adapters/in/http/api"
	"github.com/bnema/dockcmd/internal/adapters/in/http/middleware"
	"github.com/bnema/dockcmd/internal/adapters/out/ratelimit"
	"github.com/bnema/dockcmd/internal/boundaries/out"
	"github.com/bnema/dockcmd/internal/logging"
)

// Run starts the HTTP server and blocks until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func Run(ctx context.Context, configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, cleanup, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx = logging.WithCtx(ctx, log)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := NewServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close engine client")
		}
	}()

	limiters, err := newRateLimiters(cfg, log)
	if err != nil {
		return err
	}
	limiters.startSweepers(ctx, cfg)

	e := newServer(cfg, svc, limiters, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("address", cfg.Address()).
			Bool("engine", cfg.Engine.Enabled).
			Msg("dockcmd server starting")
		if err := e.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return log.WrapErr(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// newServer builds the echo server with its middleware and routes.
func newServer(cfg Config, svc *Services, limiters rateLimiters, log logging.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	trusted, _ := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	allowed, _ := middleware.ParseTrustedProxies(cfg.API.AllowedCIDRs)
	e.IPExtractor = middleware.IPExtractor(trusted)
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recover(log),
		middleware.SecurityHeaders(),
		middleware.CIDRAllowlist(allowed),
		middleware.RateLimit(limiters.global, limiters.perIP),
		echomw.BodyLimit(cfg.Server.BodyLimit),
	)

	var handler *api.Handler
	if svc.Executor != nil {
		handler = api.NewHandler(svc.Analyzer, svc.Executor, svc.Runtime)
	} else {
		handler = api.NewHandler(svc.Analyzer, nil, nil)
	}
	handler.RegisterRoutes(e)

	return e
}

type rateLimiters struct {
	global out.RateLimiter
	perIP  out.RateLimiter
}

func newRateLimiters(cfg Config, log logging.Logger) (rateLimiters, error) {
	rl := cfg.API.RateLimit
	if !rl.Enabled {
		return rateLimiters{}, nil
	}

	global, err := ratelimit.NewStore(ratelimit.Config{
		Backend: rl.Backend,
		RPS:     rl.GlobalRPS,
		Burst:   rl.Burst,
	}, log)
	if err != nil {
		return rateLimiters{}, fmt.Errorf("failed to create global rate limiter: %w", err)
	}

	perIP, err := ratelimit.NewStore(ratelimit.Config{
		Backend: rl.Backend,
		RPS:     rl.PerIPRPS,
		Burst:   rl.Burst,
		IdleTTL: rl.IdleTTL,
	}, log)
	if err != nil {
		return rateLimiters{}, fmt.Errorf("failed to create per-IP rate limiter: %w", err)
	}

	return rateLimiters{global: global, perIP: perIP}, nil
}

// startSweepers evicts idle per-IP limiters until ctx ends.
func (l rateLimiters) startSweepers(ctx context.Context, cfg Config) {
	if store, ok := l.perIP.(*ratelimit.MemoryStore); ok && cfg.API.RateLimit.SweepInterval > 0 {
		go store.Run(ctx, cfg.API.RateLimit.SweepInterval)
	}
}
