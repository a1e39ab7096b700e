package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database/migrations"
)

// ErrUnavailable is returned while the store could not be opened or migrated.
var ErrUnavailable = errors.New("database is unavailable")

// Database owns the gorm handle. It starts degraded when the store cannot be
// reached and can be connected later by calling Connect again.
type Database struct {
	cfg config.Database
	log *zap.Logger
	dev bool

	// open replaces Open, nil outside tests
	open func(ctx context.Context) (*gorm.DB, error)

	mu      sync.RWMutex
	db      *gorm.DB
	lastErr error
}

// NewDatabase tries to open and migrate the store once. A failure is logged
// and leaves the handle degraded; it is never fatal.
func NewDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) *Database {
	d := &Database{
		cfg: cfg.Database,
		log: log,
		dev: cfg.Global.IsDevelopment(),
	}
	if err := d.Connect(ctx); err != nil {
		log.Error("database initialization failed, continuing in degraded mode",
			zap.String("driver", d.cfg.Driver), zap.Error(err))
	}
	return d
}

// Wrap builds a ready Database around an already opened gorm handle.
// Migrations are not applied.
func Wrap(db *gorm.DB, log *zap.Logger) *Database {
	return &Database{db: db, log: log}
}

// Connect opens and migrates the store unless it is already connected.
// The lock is only taken to install the handle, so Conn keeps failing fast
// while an attempt is dialing. When two attempts succeed the later handle
// is closed.
func (d *Database) Connect(ctx context.Context) error {
	if d.Ready() {
		return nil
	}

	db, err := d.openHandle(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		if d.db == nil {
			d.lastErr = err
		}
		return err
	}
	if d.db != nil {
		closeHandle(db)
		return nil
	}
	d.db = db
	d.lastErr = nil
	d.log.Info("database ready", zap.String("driver", d.cfg.Driver))
	return nil
}

func (d *Database) openHandle(ctx context.Context) (*gorm.DB, error) {
	if d.open != nil {
		return d.open(ctx)
	}
	return Open(ctx, d.cfg, d.log, d.dev)
}

func closeHandle(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Conn returns the gorm handle bound to ctx, or ErrUnavailable when degraded.
func (d *Database) Conn(ctx context.Context) (*gorm.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		if d.lastErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, d.lastErr)
		}
		return nil, ErrUnavailable
	}
	return d.db.WithContext(ctx), nil
}

// Ready reports whether the store is connected.
func (d *Database) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db != nil
}

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return sqlDB.Close()
}

// gormLogger routes gorm warnings to zap in development and silences it otherwise.
func gormLogger(log *zap.Logger, verbose bool) gormlogger.Interface {
	if !verbose {
		return gormlogger.Discard
	}
	return gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects with the configured driver, applies the pool settings and
// runs the pending migrations.
func Open(ctx context.Context, cfg config.Database, log *zap.Logger, verbose bool) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger(log, verbose)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, sqlDB, cfg.Driver, log); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case config.DriverMySQL:
		// the first round trip is the ping, which honours the context
		return mysql.New(mysql.Config{DSN: cfg.DSN, SkipInitializeWithVersion: true}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN adds a busy timeout so concurrent writers wait instead of failing.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

var migrateMu sync.Mutex

// Migrate applies the embedded goose migrations for driver.
func Migrate(ctx context.Context, sqlDB *sql.DB, driver string, log *zap.Logger) error {
	if driver == "" {
		driver = config.DriverSQLite
	}
	if log == nil {
		log = zap.NewNop()
	}
	dialect := driver
	if driver == config.DriverSQLite {
		dialect = "sqlite3"
	}

	// goose keeps its settings in package globals
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&gooseLogger{log: log.Named("migrations").Sugar()})
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, driver)
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l *gooseLogger) Fatal(v ...interface{}) { l.log.Fatal(v...) }

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf(strings.TrimSpace(format), v...)
}

func (l *gooseLogger) Print(v ...interface{}) { l.log.Info(v...) }

func (l *gooseLogger) Println(v ...interface{}) { l.log.Info(v...) }

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(strings.TrimSpace(format), v...)
}
