package entrypoint

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database"
	"github.com/Pvt25072004/devops-lab-cicd/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App is everything the server process owns.
type App struct {
	Handler  http.Handler
	DB       *database.Database
	Recovery *scheduler.StoreRecovery
	Log      *zap.Logger
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down within
// the configured timeout.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server", zap.Duration("timeout", timeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// Stop background jobs before the listener
		if onShutdown != nil {
			onShutdown(shutdownCtx)
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func Run(cfg *config.Config, version string) {
	if !cfg.Global.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := InitializeApp(ctx, cfg)
	if err != nil {
		// the logger is not built yet
		zap.NewExample().Fatal("failed to initialize application", zap.Error(err))
	}
	defer cleanup()

	log := app.Log
	log.Info("starting BookVault",
		zap.String("version", version),
		zap.String("environment", cfg.Global.Environment),
		zap.String("driver", cfg.Database.Driver),
		zap.Bool("database_ready", app.DB.Ready()))

	if err := app.Recovery.Start(ctx); err != nil {
		log.Error("store recovery disabled", zap.Error(err))
	}

	err = Serve(ctx, app.Handler, cfg, log, func(context.Context) {
		app.Recovery.Stop()
	})
	if err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return
	}
	log.Info("server exiting")
}
