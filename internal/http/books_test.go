package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duneJSON = `{"title":"Dune","author":"Frank Herbert","published_year":1965,"genre":"Sci-Fi"}`

func TestBooksAPI_CreateAndGet(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doJSON(h, "POST", "/api/books", duneJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	created := decodeBook(t, w)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Dune", created.Title)
	require.NotNil(t, created.PublishedYear)
	assert.Equal(t, 1965, *created.PublishedYear)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	w = doJSON(h, "GET", fmt.Sprintf("/api/books/%d", created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBook(t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, "Sci-Fi", got.Genre)
	assert.Equal(t, "", got.ISBN)
}

func TestBooksAPI_List(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doJSON(h, "GET", "/api/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())

	for _, title := range []string{"First", "Second"} {
		w = doJSON(h, "POST", "/api/books", fmt.Sprintf(`{"title":%q,"author":"A"}`, title))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(h, "GET", "/api/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"First"`)
	assert.Less(t, strings.Index(w.Body.String(), "First"), strings.Index(w.Body.String(), "Second"))
}

func TestBooksAPI_CreateValidation(t *testing.T) {
	h := setupTestServer(t, "production")

	t.Run("missing required fields", func(t *testing.T) {
		w := doJSON(h, "POST", "/api/books", `{"genre":"Sci-Fi"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Validation failed", env.Message)
		errs := decodeFieldErrors(t, env)
		require.Len(t, errs, 2)
		assert.Equal(t, "title", errs[0].Field)
		assert.Equal(t, "author", errs[1].Field)
	})

	t.Run("non-integer year", func(t *testing.T) {
		w := doJSON(h, "POST", "/api/books", `{"title":"T","author":"A","published_year":"soon"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeFieldErrors(t, decodeEnvelope(t, w))
		require.Len(t, errs, 1)
		assert.Equal(t, "published_year", errs[0].Field)
	})

	t.Run("body is not an object", func(t *testing.T) {
		w := doJSON(h, "POST", "/api/books", `["Dune"]`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decodeFieldErrors(t, decodeEnvelope(t, w))
		require.Len(t, errs, 1)
		assert.Equal(t, "body", errs[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := doJSON(h, "POST", "/api/books", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("nothing was stored", func(t *testing.T) {
		w := doJSON(h, "GET", "/api/books", "")
		assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
	})
}

func TestBooksAPI_CreateFromForm(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doForm(h, "POST", "/api/books", "title=Emma&author=Jane+Austen&published_year=1815")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	book := decodeBook(t, w)
	assert.Equal(t, "Emma", book.Title)
	assert.Equal(t, 1815, *book.PublishedYear)
}

func TestBooksAPI_GetNotFound(t *testing.T) {
	h := setupTestServer(t, "production")

	for _, path := range []string{"/api/books/999", "/api/books/abc", "/api/books/0", "/api/books/-1"} {
		t.Run(path, func(t *testing.T) {
			w := doJSON(h, "GET", path, "")
			require.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"success":false,"message":"Book not found"}`, w.Body.String())
		})
	}
}

func TestBooksAPI_Update(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doJSON(h, "POST", "/api/books", duneJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBook(t, w)
	path := fmt.Sprintf("/api/books/%d", created.ID)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		w := doJSON(h, "PUT", path, `{"genre":"Science Fiction"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		updated := decodeBook(t, w)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Science Fiction", updated.Genre)
		assert.Equal(t, "Dune", updated.Title)
		assert.Equal(t, 1965, *updated.PublishedYear)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		w := doJSON(h, "PUT", path, `{"title":""}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(h, "GET", path, "")
		assert.Equal(t, "Dune", decodeBook(t, w).Title)
	})

	t.Run("null year clears it", func(t *testing.T) {
		w := doJSON(h, "PATCH", path, `{"published_year":null}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decodeBook(t, w).PublishedYear)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(h, "PUT", "/api/books/999", `{"title":"Ghost"}`)
		require.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(h, "GET", "/api/books/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := doJSON(h, "PUT", "/api/books/abc", `{"title":""}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBooksAPI_Delete(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doJSON(h, "POST", "/api/books", duneJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	path := fmt.Sprintf("/api/books/%d", decodeBook(t, w).ID)

	w = doJSON(h, "DELETE", path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Book deleted successfully"}`, w.Body.String())

	w = doJSON(h, "GET", path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(h, "DELETE", path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Book not found"}`, w.Body.String())
}

func TestBooksAPI_DegradedStore(t *testing.T) {
	t.Run("development exposes the error", func(t *testing.T) {
		h := setupDegradedServer(t, "development")

		w := doJSON(h, "GET", "/api/books", "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Internal server error", env.Message)
		assert.Contains(t, env.Error, "database is unavailable")
	})

	t.Run("production hides it", func(t *testing.T) {
		h := setupDegradedServer(t, "production")

		w := doJSON(h, "POST", "/api/books", duneJSON)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, w.Body.String())
	})

	t.Run("validation still answers 400", func(t *testing.T) {
		h := setupDegradedServer(t, "production")

		w := doJSON(h, "POST", "/api/books", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("health stays OK", func(t *testing.T) {
		h := setupDegradedServer(t, "production")

		w := doJSON(h, "GET", "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"OK"`)
	})
}

func TestRouter_NoRoute(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doJSON(h, "GET", "/api/unknown", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, w.Body.String())
}
