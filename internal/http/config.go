package http

import (
	"go.uber.org/zap"

	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books  services.BookManager
	Logger *zap.Logger

	// Environment name reported by /health
	Environment string
	// Include error details in 500 responses
	ExposeErrors bool

	// UI paths, empty means the embedded assets
	TemplatesPath string
	StaticPath    string

	// Per-client limit on /api, disabled when RateLimitRPS is 0
	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowOrigins []string

	// CSRF protection of the /books forms, disabled when CSRFSecret is empty
	CSRFSecret    []byte
	SecureCookies bool

	// Serve the Swagger UI at /swagger
	EnableSwagger bool
}
