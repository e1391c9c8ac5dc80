package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/nflstats/internal/adapters/http/api"
	"github.com/okian/nflstats/internal/adapters/http/swagger"
	"github.com/okian/nflstats/internal/adapters/schedule"
	app "github.com/okian/nflstats/internal/app"
	"github.com/okian/nflstats/internal/config"
	"github.com/okian/nflstats/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	// Config comes first so the logger can honour its format.
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "nflstats exited", logger.Error(err))
		os.Exit(1)
	}
}

// newService builds the stats service from cfg.
func newService(cfg *config.Config, l logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(l),
		app.WithPlaysPath(cfg.PlaysPath),
		app.WithPlaysTable(cfg.PlaysTable),
		app.WithSchedule(schedule.NewFileProvider(cfg.SchedulePath, schedule.WithSQLTable(cfg.ScheduleTable))),
		app.WithDedupe(cfg.Dedupe, cfg.DedupeSize),
		app.WithTouchdownLimit(cfg.TouchdownLimit),
	)
}

// newHandler registers every API route on a fresh mux.
func newHandler(svc *app.Service) http.Handler {
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)
	swagger.Register(mux)
	return mux
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Named("main")

	svc := newService(cfg, logger.Named("service"))
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	go reloadOnHangup(ctx, svc, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// reloadOnHangup re-reads the play table on SIGHUP until ctx is done.
func reloadOnHangup(ctx context.Context, svc *app.Service, log logger.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			log.Info(ctx, "reloading plays")
			if err := svc.Reload(ctx); err != nil {
				log.Warn(ctx, "reload failed; keeping previous plays", logger.Error(err))
			}
		}
	}
}
