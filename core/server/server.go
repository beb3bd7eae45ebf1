package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hr-dashboard-api/core/cache"
	"hr-dashboard-api/core/config"
	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/core/middleware"
	"hr-dashboard-api/core/ratelimit"
	"hr-dashboard-api/modules/calendar"
	"hr-dashboard-api/modules/calendar/gateway"
	"hr-dashboard-api/modules/notification"
	"hr-dashboard-api/modules/oneonone"
	"hr-dashboard-api/modules/profile"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
)

func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	redisCache, err := cache.InitRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var shared cache.Cache
	if redisCache != nil {
		shared = redisCache
		defer redisCache.Close()
	}

	limiter := newRateLimiter(ctx, cfg.RateLimit, shared)
	mw := middleware.NewMiddleware(limiter, cfg.Security.AllowedOrigins)

	e := echo.New()
	e.HideBanner = true
	if len(cfg.Security.AllowedOrigins) > 0 {
		e.Pre(echo.WrapMiddleware(newCORS(cfg.Security.AllowedOrigins).Handler))
	}
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("HTTP:Panic", "path", c.Path(), "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(mw.RequestLogger())
	e.Use(mw.RateLimit())
	e.Use(mw.OriginGuard())

	e.GET("/health", func(c echo.Context) error {
		if err := db.SQLx().PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	loc := cfg.App.Location()
	gw := gateway.NewClient(cfg.GoogleAPI,
		gateway.WithHolidayMatcher(gateway.NewKeywordMatcher(cfg.Holiday.Keywords...)),
		gateway.WithLocation(loc),
	)
	if !gw.IsConnected() {
		logger.Warn("Server:GoogleCalendar:NotConnected", "reason", "GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or GOOGLE_REFRESH_TOKEN missing")
	}

	private := e.Group("/api/v1/private")
	profiles := profile.Init(private, db, mw)
	notifications := notification.Init(private, db, mw)
	calendar.Init(private, db, gw, loc, mw)
	oneonone.Init(private, db, gw, profiles, notifications, loc, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Start", "addr", addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server:Shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newRateLimiter prefers the shared Redis counter and falls back to a per-instance map.
func newRateLimiter(ctx context.Context, cfg config.RateLimitConfig, c cache.Cache) ratelimit.Store {
	opts := ratelimit.Options{
		Limit:  cfg.MaxRequests,
		Window: time.Duration(cfg.WindowSecs) * time.Second,
	}
	if opts.Limit <= 0 {
		opts.Limit = constants.RateLimitMaxRequests
	}
	if opts.Window <= 0 {
		opts.Window = constants.RateLimitWindow
	}

	if c != nil {
		logger.Info("Server:RateLimit:Redis", "limit", opts.Limit, "window", opts.Window)
		return ratelimit.NewRedisStore(c, opts)
	}

	store := ratelimit.NewMemoryStore(opts)
	store.StartSweeper(ctx, constants.RateLimitSweepInterval)
	logger.Info("Server:RateLimit:Memory", "limit", opts.Limit, "window", opts.Window)
	return store
}

// newCORS lets the dashboard frontend call the API from its own origin. Without
// configured origins no CORS headers are sent and only same-origin calls work.
func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, constants.HeaderRequestID},
		ExposedHeaders: []string{constants.HeaderRequestID, "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         600,
	})
}
