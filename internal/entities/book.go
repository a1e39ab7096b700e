package entities

import "time"

// Book is the only catalog entity. It maps to a row in the books table.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Author        string    `gorm:"size:255;not null" json:"author"`
	PublishedYear *int      `json:"published_year"`
	Genre         string    `gorm:"size:100" json:"genre"`
	Description   string    `gorm:"type:text" json:"description"`
	ISBN          string    `gorm:"column:isbn;size:32" json:"isbn"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Column names of the books table, used for partial updates.
const (
	ColumnTitle         = "title"
	ColumnAuthor        = "author"
	ColumnPublishedYear = "published_year"
	ColumnGenre         = "genre"
	ColumnDescription   = "description"
	ColumnISBN          = "isbn"
	ColumnUpdatedAt     = "updated_at"
)

// OptionalInt distinguishes a value that was not supplied from one that was
// supplied as null. Value is nil for null.
type OptionalInt struct {
	Set   bool
	Value *int
}

// BookFields holds validated input for a create or a partial update. A nil
// string pointer means the field was not supplied.
type BookFields struct {
	Title         *string
	Author        *string
	PublishedYear OptionalInt
	Genre         *string
	Description   *string
	ISBN          *string
}

// NewBook builds a row from create input. Absent optional strings become "".
func (f BookFields) NewBook() Book {
	book := Book{
		Title:       deref(f.Title),
		Author:      deref(f.Author),
		Genre:       deref(f.Genre),
		Description: deref(f.Description),
		ISBN:        deref(f.ISBN),
	}
	if f.PublishedYear.Set {
		book.PublishedYear = f.PublishedYear.Value
	}
	return book
}

// Columns returns only the supplied fields keyed by column name.
func (f BookFields) Columns() map[string]any {
	cols := make(map[string]any, 6)
	if f.Title != nil {
		cols[ColumnTitle] = *f.Title
	}
	if f.Author != nil {
		cols[ColumnAuthor] = *f.Author
	}
	if f.PublishedYear.Set {
		if f.PublishedYear.Value == nil {
			cols[ColumnPublishedYear] = nil
		} else {
			cols[ColumnPublishedYear] = *f.PublishedYear.Value
		}
	}
	if f.Genre != nil {
		cols[ColumnGenre] = *f.Genre
	}
	if f.Description != nil {
		cols[ColumnDescription] = *f.Description
	}
	if f.ISBN != nil {
		cols[ColumnISBN] = *f.ISBN
	}
	return cols
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
