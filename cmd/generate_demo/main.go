// Command generate_demo creates a demo database with public domain books.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database/books"
	"github.com/Pvt25072004/devops-lab-cicd/internal/logger"
	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log := logger.NewLogger(logger.Log{Level: "info", Format: logger.FormatConsole}, "generate_demo")
	defer func() { _ = log.Sync() }()

	log.Info("generating demo database", zap.String("path", *dbPath))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := openFresh(ctx, *dbPath, log)
	if err != nil {
		log.Fatal("demo database is unavailable", zap.Error(err))
	}
	defer db.Close()

	svc := services.NewBookService(books.NewRepository(db), log)
	saved := seed(ctx, svc, publicDomainBooks(), log)

	log.Info("demo database generated", zap.Int("books", saved))
}

// openFresh replaces any previous demo database at path, creating its
// directory when needed.
func openFresh(ctx context.Context, path string, log *zap.Logger) (*database.Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &config.Config{
		Global:   config.Global{Environment: config.EnvProduction},
		Database: config.Database{Driver: config.DriverSQLite, Path: path},
	}
	db := database.NewDatabase(ctx, cfg, log)
	if _, err := db.Conn(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// seed creates every book through the service so the demo data passes the
// same validation as user input. Failures are logged and skipped.
func seed(ctx context.Context, svc services.BookManager, inputs []map[string]any, log *zap.Logger) int {
	saved := 0
	for _, input := range inputs {
		book, err := svc.CreateBook(ctx, input)
		if err != nil {
			log.Warn("failed to save book", zap.Any("title", input["title"]), zap.Error(err))
			continue
		}
		log.Info("saved", zap.Uint("id", book.ID), zap.String("title", book.Title), zap.String("author", book.Author))
		saved++
	}
	return saved
}

// Ancient works have no published_year, it cannot be negative.
func publicDomainBooks() []map[string]any {
	return []map[string]any{
		{
			"title":       "Meditations",
			"author":      "Marcus Aurelius",
			"genre":       "Philosophy",
			"description": "Private notes on Stoic philosophy written by a Roman emperor.",
		},
		{
			"title":       "Letters from a Stoic",
			"author":      "Seneca",
			"genre":       "Philosophy",
			"description": "Moral letters addressed to Lucilius.",
		},
		{
			"title":          "On the Origin of Species",
			"author":         "Charles Darwin",
			"published_year": 1859,
			"genre":          "Science",
			"description":    "The foundational work of evolutionary biology.",
			"isbn":           "978-0451529060",
		},
		{
			"title":          "Pride and Prejudice",
			"author":         "Jane Austen",
			"published_year": 1813,
			"genre":          "Fiction",
			"description":    "A novel of manners following Elizabeth Bennet.",
			"isbn":           "978-0141439518",
		},
		{
			"title":          "War and Peace",
			"author":         "Leo Tolstoy",
			"published_year": 1869,
			"genre":          "Fiction",
			"isbn":           "978-1400079988",
		},
		{
			"title":          "Crime and Punishment",
			"author":         "Fyodor Dostoevsky",
			"published_year": 1866,
			"genre":          "Fiction",
			"isbn":           "978-0143058144",
		},
		{
			"title":  "The Republic",
			"author": "Plato",
			"genre":  "Philosophy",
		},
		{
			"title":  "The Art of War",
			"author": "Sun Tzu",
			"genre":  "Strategy",
		},
		{
			"title":          "Frankenstein",
			"author":         "Mary Shelley",
			"published_year": 1818,
			"genre":          "Fiction",
			"description":    "Victor Frankenstein and the creature he brings to life.",
		},
		{
			"title":          "The Picture of Dorian Gray",
			"author":         "Oscar Wilde",
			"published_year": 1890,
			"genre":          "Fiction",
		},
	}
}
