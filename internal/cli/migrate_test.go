package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
)

func TestMigrateCommand_ParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd := NewMigrateCommand()
		require.NoError(t, cmd.ParseFlags(nil))

		assert.Equal(t, config.DriverSQLite, cmd.Driver)
		assert.Equal(t, config.DefaultDatabasePath, cmd.DatabasePath)
		assert.Equal(t, 30*time.Second, cmd.Timeout)
	})

	t.Run("mysql", func(t *testing.T) {
		cmd := NewMigrateCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-driver", "mysql", "-dsn", "u:p@tcp(db:3306)/books"}))

		assert.Equal(t, config.DriverMySQL, cmd.Driver)
		assert.Equal(t, "u:p@tcp(db:3306)/books", cmd.DSN)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cmd := NewMigrateCommand()
		err := cmd.ParseFlags([]string{"-driver", "postgres"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported driver")
	})
}

func TestMigrateCommand_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	var out bytes.Buffer
	cmd := NewMigrateCommand()
	cmd.out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-db", path}))

	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Migrations applied")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable("books"))
	assert.True(t, db.Migrator().HasColumn("books", "published_year"))

	// Running again is a no-op
	require.NoError(t, cmd.Run())
}

func TestMigrateCommand_RunUnreachable(t *testing.T) {
	cmd := NewMigrateCommand()
	cmd.out = &bytes.Buffer{}
	require.NoError(t, cmd.ParseFlags([]string{"-db", filepath.Join(t.TempDir(), "missing", "books.db")}))

	assert.Error(t, cmd.Run())
}
