package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database"
	http_controllers "github.com/Pvt25072004/devops-lab-cicd/internal/http"
	"github.com/Pvt25072004/devops-lab-cicd/internal/logger"
	"github.com/Pvt25072004/devops-lab-cicd/internal/scheduler"
	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func()) {
	log := logger.NewLogger(cfg.Log, "bookvault")
	return log, func() { _ = log.Sync() }
}

func provideDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*database.Database, func()) {
	db := database.NewDatabase(ctx, cfg, log.Named("database"))
	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
}

func provideBookService(repo services.BookRepository, log *zap.Logger) *services.BookService {
	return services.NewBookService(repo, log.Named("books"))
}

func provideRouterConfig(cfg *config.Config, books services.BookManager, log *zap.Logger) (http_controllers.RouterConfig, error) {
	secret, err := csrfSecret(cfg.CSRF.Secret)
	if err != nil {
		return http_controllers.RouterConfig{}, err
	}
	if cfg.CSRF.Secret == "" {
		log.Warn("CSRF_SECRET is not set, using a random key; forms rendered before a restart will be rejected")
	}

	return http_controllers.RouterConfig{
		Books:            books,
		Logger:           log,
		Environment:      cfg.Global.Environment,
		ExposeErrors:     cfg.Global.ExposeErrors,
		TemplatesPath:    cfg.UI.TemplatesPath,
		StaticPath:       cfg.UI.StaticPath,
		RateLimitRPS:     cfg.RateLimit.RPS,
		RateLimitBurst:   cfg.RateLimit.Burst,
		CORSAllowOrigins: cfg.CORS.AllowOrigins,
		EnableSwagger:    true,
		CSRFSecret:       secret,
		SecureCookies:    cfg.CSRF.SecureCookies,
	}, nil
}

// csrfSecret decodes a hex key, falls back to the raw bytes, and generates a
// random key when none is configured.
func csrfSecret(configured string) ([]byte, error) {
	if configured == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
		}
		return secret, nil
	}
	if secret, err := hex.DecodeString(configured); err == nil {
		return secret, nil
	}
	return []byte(configured), nil
}

func provideStoreRecovery(db *database.Database, cfg *config.Config, log *zap.Logger) *scheduler.StoreRecovery {
	return scheduler.NewStoreRecovery(db, cfg.Database.ReconnectSchedule, log.Named("scheduler"))
}
