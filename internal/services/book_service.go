package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/Pvt25072004/devops-lab-cicd/internal/apperr"
	"github.com/Pvt25072004/devops-lab-cicd/internal/entities"
)

// BookService runs validation and delegates persistence to the repository.
// It holds no state of its own and is safe for concurrent use.
type BookService struct {
	repo BookRepository
	log  *zap.Logger
}

func NewBookService(repo BookRepository, log *zap.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

// ParseID converts a path segment to a book id. Non-numeric, zero and
// negative values are reported as apperr.ErrNotFound.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, apperr.ErrNotFound
	}
	return uint(id), nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.storageFailure("list books", err)
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, rawID string) (entities.Book, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return entities.Book{}, err
	}

	book, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return entities.Book{}, s.storageFailure("get book", err, zap.Uint("id", id))
	}
	if !found {
		return entities.Book{}, apperr.ErrNotFound
	}
	return book, nil
}

func (s *BookService) CreateBook(ctx context.Context, raw map[string]any) (entities.Book, error) {
	fields, err := ValidateBook(raw, ModeCreate)
	if err != nil {
		return entities.Book{}, err
	}

	book, err := s.repo.Insert(ctx, fields)
	if err != nil {
		return entities.Book{}, s.storageFailure("create book", err)
	}
	s.log.Info("book created", zap.Uint("id", book.ID))
	return book, nil
}

// UpdateBook applies a partial update. An unknown id is checked before the
// input, so a bad id always yields apperr.ErrNotFound.
func (s *BookService) UpdateBook(ctx context.Context, rawID string, raw map[string]any) (entities.Book, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return entities.Book{}, err
	}

	fields, err := ValidateBook(raw, ModeUpdate)
	if err != nil {
		return entities.Book{}, err
	}

	book, found, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return entities.Book{}, s.storageFailure("update book", err, zap.Uint("id", id))
	}
	if !found {
		return entities.Book{}, apperr.ErrNotFound
	}
	s.log.Info("book updated", zap.Uint("id", id))
	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return s.storageFailure("delete book", err, zap.Uint("id", id))
	}
	if !removed {
		return apperr.ErrNotFound
	}
	s.log.Info("book deleted", zap.Uint("id", id))
	return nil
}

// storageFailure logs the failure with its stack and makes sure the caller
// receives a StorageError.
func (s *BookService) storageFailure(op string, err error, fields ...zap.Field) error {
	err = apperr.Storage(op, err)
	s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	return err
}
