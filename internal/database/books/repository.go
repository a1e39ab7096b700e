// Package books provides the persistence operations for the books table.
//
// This package implements the BookRepository interface defined in
// internal/services/interfaces.go.
//
//	var _ services.BookRepository = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, found, err := repo.FindByID(ctx, 123)
//
// Every failure of the underlying store, including a degraded handle, is
// returned as *apperr.StorageError. Missing rows are reported through the
// boolean result, never as errors.
package books

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Pvt25072004/devops-lab-cicd/internal/apperr"
	"github.com/Pvt25072004/devops-lab-cicd/internal/entities"
)

// Store hands out a gorm handle bound to the request context.
type Store interface {
	Conn(ctx context.Context) (*gorm.DB, error)
}

// Repository handles all book database operations.
type Repository struct {
	store Store
	now   func() time.Time
}

// NewRepository creates a new books repository.
func NewRepository(store Store) *Repository {
	return &Repository{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Insert stores a new book. The id and both timestamps are assigned here.
func (r *Repository) Insert(ctx context.Context, fields entities.BookFields) (entities.Book, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return entities.Book{}, apperr.Storage("insert", err)
	}

	book := fields.NewBook()
	now := r.now()
	book.CreatedAt = now
	book.UpdatedAt = now

	if err := db.Create(&book).Error; err != nil {
		return entities.Book{}, apperr.Storage("insert", err)
	}
	return book, nil
}

// FindAll returns every book in insertion order. The slice is never nil.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Book, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return nil, apperr.Storage("find all", err)
	}

	books := make([]entities.Book, 0)
	if err := db.Order("id ASC").Find(&books).Error; err != nil {
		return nil, apperr.Storage("find all", err)
	}
	return books, nil
}

// FindByID retrieves a book. found is false when no row has that id.
func (r *Repository) FindByID(ctx context.Context, id uint) (entities.Book, bool, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return entities.Book{}, false, apperr.Storage("find by id", err)
	}
	return r.findByID(db, id, "find by id")
}

func (r *Repository) findByID(db *gorm.DB, id uint, op string) (entities.Book, bool, error) {
	var book entities.Book
	err := db.Where("id = ?", id).Take(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Book{}, false, nil
	}
	if err != nil {
		return entities.Book{}, false, apperr.Storage(op, err)
	}
	return book, true, nil
}

// Update merges the supplied fields into an existing book and refreshes
// updated_at. Nothing is created when the id does not exist.
func (r *Repository) Update(ctx context.Context, id uint, fields entities.BookFields) (entities.Book, bool, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return entities.Book{}, false, apperr.Storage("update", err)
	}

	cols := fields.Columns()
	cols[entities.ColumnUpdatedAt] = r.now()

	err = db.Model(&entities.Book{}).Where("id = ?", id).Updates(cols).Error
	if err != nil {
		return entities.Book{}, false, apperr.Storage("update", err)
	}

	// Affected row counts are unreliable on MySQL when values do not change,
	// so existence is decided by reading the row back.
	return r.findByID(db, id, "update")
}

// Remove hard-deletes a book. It reports false when nothing was removed.
func (r *Repository) Remove(ctx context.Context, id uint) (bool, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return false, apperr.Storage("remove", err)
	}

	result := db.Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return false, apperr.Storage("remove", result.Error)
	}
	return result.RowsAffected > 0, nil
}
