package config

const (
	// DefaultDatabasePath is the sqlite file used when DATABASE_PATH is unset.
	DefaultDatabasePath = "./bookvault.db"

	DefaultMySQLDSN = "bookvault:bookvault@tcp(127.0.0.1:3306)/bookvault?charset=utf8mb4&parseTime=True&loc=UTC"

	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)
