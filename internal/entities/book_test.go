package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBookFields_NewBook(t *testing.T) {
	f := BookFields{
		Title:         strPtr("Dune"),
		Author:        strPtr("Frank Herbert"),
		PublishedYear: OptionalInt{Set: true, Value: intPtr(1965)},
	}

	book := f.NewBook()

	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, 1965, *book.PublishedYear)
	assert.Empty(t, book.Genre)
	assert.Empty(t, book.Description)
	assert.Empty(t, book.ISBN)
	assert.Zero(t, book.ID)
}

func TestBookFields_NewBookWithoutYear(t *testing.T) {
	book := BookFields{Title: strPtr("T"), Author: strPtr("A")}.NewBook()
	assert.Nil(t, book.PublishedYear)
}

func TestBookFields_Columns(t *testing.T) {
	t.Run("only supplied fields", func(t *testing.T) {
		cols := BookFields{Genre: strPtr("Sci-Fi")}.Columns()
		assert.Equal(t, map[string]any{ColumnGenre: "Sci-Fi"}, cols)
	})

	t.Run("null year clears the column", func(t *testing.T) {
		cols := BookFields{PublishedYear: OptionalInt{Set: true}}.Columns()
		v, ok := cols[ColumnPublishedYear]
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BookFields{}.Columns())
	})
}
