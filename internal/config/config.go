package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Pvt25072004/devops-lab-cicd/internal/logger"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		RateLimit
		CORS
		CSRF
		Log logger.Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		Environment              string
		ShutdownTimeoutInSeconds int
		// Only an explicit APP_ENV=development exposes error details,
		// the defaulted environment name does not.
		ExposeErrors bool
	}
	Database struct {
		Driver            string // sqlite or mysql
		Path              string // sqlite file
		DSN               string // mysql DSN
		MaxOpenConns      int
		MaxIdleConns      int
		ConnMaxLifetime   time.Duration
		ReconnectSchedule string // Cron format, "@every 30s" by default
	}
	UI struct {
		TemplatesPath string // Empty means use the embedded templates
		StaticPath    string
	}
	RateLimit struct {
		RPS   float64 // Requests per second per client on /api, 0 disables
		Burst int
	}
	CORS struct {
		AllowOrigins []string
	}
	CSRF struct {
		Secret        string // Hex or raw key, generated at startup when empty
		SecureCookies bool
	}
)

func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

func (g Global) IsDevelopment() bool {
	return g.Environment == EnvDevelopment
}

func (r RateLimit) Enabled() bool {
	return r.RPS > 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NewConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3001)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("app_env", EnvDevelopment)
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", DefaultMySQLDSN)
	v.SetDefault("database_max_open_conns", 10)
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_conn_max_lifetime", "30m")
	v.SetDefault("database_reconnect_schedule", "@every 30s")

	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", logger.FormatJSON)

	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("cors_allow_origins", "*")
	v.SetDefault("csrf_secret", "")
	v.SetDefault("csrf_secure_cookies", false)

	explicitEnv, _ := os.LookupEnv("APP_ENV")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			Environment:              v.GetString("APP_ENV"),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ExposeErrors:             explicitEnv == EnvDevelopment,
		},
		Database: Database{
			Driver:            strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:              v.GetString("DATABASE_PATH"),
			DSN:               v.GetString("DATABASE_DSN"),
			MaxOpenConns:      v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:      v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime:   v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
			ReconnectSchedule: v.GetString("DATABASE_RECONNECT_SCHEDULE"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		RateLimit: RateLimit{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORS{
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		CSRF: CSRF{
			Secret:        v.GetString("CSRF_SECRET"),
			SecureCookies: v.GetBool("CSRF_SECURE_COOKIES"),
		},
		Log: logger.Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
