// ABOUTME: Assembles the check-in API server from configuration
// ABOUTME: Wires store, caches, upstream, services, scheduler and router, and runs them

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/cache"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/config"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/handlers"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/scheduler"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/services"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/store"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg      *config.Config
	store    *store.Store
	validity *cache.Cache[bool]
	daily    *scheduler.Scheduler
	handler  http.Handler
}

// New opens the database and wires every component. Call Close when done.
func New(cfg *config.Config) (*Server, error) {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	validity := cache.New[bool](cfg.CacheTTL)
	upstream := services.NewUpstream(services.UpstreamConfig{
		LotteryURL:  cfg.LotteryURL,
		UserInfoURL: cfg.UserInfoURL,
		TopupURL:    cfg.TopupURL,
		LoginURL:    cfg.LoginURL,
		Timeout:     cfg.UpstreamTimeout,
	})
	tokens := services.NewTokenService(st, upstream, validity)
	sign := services.NewSignService(st, upstream)
	schedule := services.NewScheduleService(st)

	daily := scheduler.New(schedule, func(ctx context.Context, at time.Time) {
		if _, err := sign.Sign(ctx, models.TriggerScheduled); err != nil {
			zap.L().Error("scheduled check-in failed", zap.Error(err))
		}
		if err := schedule.MarkRun(ctx, at); err != nil {
			zap.L().Error("failed to record scheduled run", zap.Error(err))
		}
	})
	schedule.WithReloader(daily)

	h := handlers.NewHandler(tokens, sign, schedule, st)

	return &Server{
		cfg:      cfg,
		store:    st,
		validity: validity,
		daily:    daily,
		handler: h.Router(handlers.RouterOptions{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimit:      cfg.RateLimitEnabled,
			DefaultPerMin:  cfg.RateLimitDefault,
			WritePerMin:    cfg.RateLimitWrite,
		}),
	}, nil
}

// Handler returns the routed API
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Scheduler returns the daily runner
func (s *Server) Scheduler() *scheduler.Scheduler {
	return s.daily
}

// Run starts the scheduler and serves HTTP until ctx is cancelled or the listener fails
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("starting bohe-sign server",
		zap.String("addr", srv.Addr),
		zap.String("db", s.cfg.DatabasePath),
		zap.Bool("token_refresh", s.cfg.LoginURL != ""),
		zap.Bool("rate_limit", s.cfg.RateLimitEnabled),
	)
	if s.cfg.LoginURL == "" {
		zap.L().Warn("LOGIN_URL not set, token refresh is disabled")
	}

	s.daily.Start(ctx)
	defer s.daily.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close stops the scheduler and the cache janitor and closes the database
func (s *Server) Close() error {
	s.daily.Stop()
	s.validity.Stop()
	return s.store.Close()
}
