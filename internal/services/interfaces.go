package services

import (
	"context"

	"github.com/Pvt25072004/devops-lab-cicd/internal/entities"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . BookRepository

// BookRepository is the data-access contract for books.
// A false found result means the row does not exist and is not an error;
// store failures are returned as *apperr.StorageError.
type BookRepository interface {
	Insert(ctx context.Context, fields Fields) (entities.Book, error)
	FindAll(ctx context.Context) ([]entities.Book, error)
	FindByID(ctx context.Context, id uint) (book entities.Book, found bool, err error)
	Update(ctx context.Context, id uint, fields Fields) (book entities.Book, found bool, err error)
	Remove(ctx context.Context, id uint) (removed bool, err error)
}

// BookManager is the use-case surface shared by the JSON API and the web pages.
// Ids are the raw path segments; anything that is not a positive integer is
// reported as apperr.ErrNotFound.
type BookManager interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id string) (entities.Book, error)
	CreateBook(ctx context.Context, raw map[string]any) (entities.Book, error)
	UpdateBook(ctx context.Context, id string, raw map[string]any) (entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}
