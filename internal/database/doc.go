// Package database owns the connection to the relational store.
//
// # Lifecycle
//
// NewDatabase is called once at startup. When the store cannot be opened or
// migrated the service keeps running in degraded mode: Conn returns
// ErrUnavailable and every repository call surfaces it as a storage error.
// Connect may be called again at any time (the scheduler does so on a cron
// schedule) and is a no-op once the store is ready.
//
//	db := database.NewDatabase(ctx, cfg, log)
//	defer db.Close()
//
//	repo := books.NewRepository(db)
//	book, found, err := repo.FindByID(ctx, 42)
//
// # Migrations
//
// Schema changes are goose migrations embedded per driver under
// migrations/sqlite and migrations/mysql. They run on every successful
// Connect and from the "migrate" command.
package database
