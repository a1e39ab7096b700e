package http

import (
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createViaForm posts the new-book form and returns the redirect target.
func createViaForm(t *testing.T, h http.Handler, form string) string {
	t.Helper()
	w := doForm(h, "POST", "/books", form)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	return w.Header().Get("Location")
}

func TestUI_HomePage(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doRequest(h, "GET", "/?success=Welcome+back", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to BookVault")
	assert.Contains(t, w.Body.String(), "Welcome back")
}

func TestUI_CreateFlow(t *testing.T) {
	h := setupTestServer(t, "production")

	location := createViaForm(t, h, "title=Dune&author=Frank+Herbert&published_year=1965&genre=Sci-Fi")

	u, err := url.Parse(location)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Path, "/books/"))
	assert.Equal(t, "Book created successfully", u.Query().Get("success"))

	w := doRequest(h, "GET", location, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "Frank Herbert")
	assert.Contains(t, body, "1965")
	assert.Contains(t, body, "Book created successfully")

	w = doRequest(h, "GET", "/books", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")
}

func TestUI_CreateValidationRerendersForm(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doForm(h, "POST", "/books", "title=&author=Jane+Austen&published_year=abc")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `value="Jane Austen"`)
	assert.Contains(t, body, `value="abc"`)
	assert.Contains(t, body, "Title is required")
	assert.Contains(t, body, "Published year must be an integer")

	w = doRequest(h, "GET", "/books", "", "")
	assert.Contains(t, w.Body.String(), "No books yet")
}

func TestUI_NewAndEditPages(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doRequest(h, "GET", "/books/new", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/books"`)

	location := createViaForm(t, h, "title=Emma&author=Jane+Austen")
	u, _ := url.Parse(location)

	w = doRequest(h, "GET", u.Path+"/edit", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="Emma"`)
	assert.Contains(t, body, `name="_method" value="PUT"`)
}

func TestUI_UpdateViaMethodOverride(t *testing.T) {
	h := setupTestServer(t, "production")

	location := createViaForm(t, h, "title=Emma&author=Jane+Austen&published_year=1815")
	u, _ := url.Parse(location)

	t.Run("hidden form field", func(t *testing.T) {
		w := doForm(h, "POST", u.Path, "_method=PUT&title=Emma+(Annotated)&author=Jane+Austen&published_year=")
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		assert.Equal(t, u.Path+"?success=Book+updated+successfully", w.Header().Get("Location"))

		w = doRequest(h, "GET", u.Path, "", "")
		assert.Contains(t, w.Body.String(), "Emma (Annotated)")
		assert.NotContains(t, w.Body.String(), "1815")
	})

	t.Run("validation failure keeps the submitted values", func(t *testing.T) {
		w := doForm(h, "POST", u.Path+"?_method=PUT", "title=&author=Someone+Else")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `value="Someone Else"`)
		assert.Contains(t, w.Body.String(), "Title is required")
	})

	t.Run("unknown book redirects with an error", func(t *testing.T) {
		w := doForm(h, "POST", "/books/999?_method=PUT", "title=Ghost&author=Nobody")
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/books?error=Book+not+found", w.Header().Get("Location"))
	})
}

func TestUI_DeleteViaMethodOverride(t *testing.T) {
	h := setupTestServer(t, "production")

	location := createViaForm(t, h, "title=Emma&author=Jane+Austen")
	u, _ := url.Parse(location)

	w := doForm(h, "POST", u.Path+"?_method=DELETE", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books?success=Book+deleted+successfully", w.Header().Get("Location"))

	w = doRequest(h, "GET", u.Path, "", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books?error=Book+not+found", w.Header().Get("Location"))
}

func TestUI_NotFoundRedirects(t *testing.T) {
	h := setupTestServer(t, "production")

	for _, path := range []string{"/books/999", "/books/abc", "/books/999/edit"} {
		t.Run(path, func(t *testing.T) {
			w := doRequest(h, "GET", path, "", "")
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/books?error=Book+not+found", w.Header().Get("Location"))
		})
	}

	w := doRequest(h, "GET", "/books?error=Book+not+found", "", "")
	assert.Contains(t, w.Body.String(), "Book not found")
}

func TestUI_DegradedStoreRendersErrorPage(t *testing.T) {
	t.Run("development shows the detail", func(t *testing.T) {
		h := setupDegradedServer(t, "development")

		w := doRequest(h, "GET", "/books", "", "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
		assert.Contains(t, w.Body.String(), "database is unavailable")
	})

	t.Run("production hides it", func(t *testing.T) {
		h := setupDegradedServer(t, "production")

		w := doForm(h, "POST", "/books", "title=Dune&author=Frank+Herbert")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database is unavailable")
	})
}

func TestUI_StaticAssets(t *testing.T) {
	h := setupTestServer(t, "production")

	w := doRequest(h, "GET", "/static/css/style.css", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".container")
}

func TestUI_MalformedFormRerenders(t *testing.T) {
	h := setupTestServer(t, "production")

	t.Run("create", func(t *testing.T) {
		w := doForm(h, "POST", "/books", "title=%zz&author=Someone")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Form could not be parsed")
		assert.Contains(t, w.Body.String(), `action="/books"`)
	})

	t.Run("update", func(t *testing.T) {
		u, err := url.Parse(createViaForm(t, h, "title=Emma&author=Jane+Austen"))
		require.NoError(t, err)

		w := doForm(h, "POST", u.Path+"?_method=PUT", "title=%zz")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Form could not be parsed")
		assert.Contains(t, w.Body.String(), `value="Emma"`)
	})
}

var csrfFieldPattern = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

// formToken loads page and returns the rendered token with the cookie it
// is bound to.
func formToken(t *testing.T, h http.Handler, page string) (string, []*http.Cookie) {
	t.Helper()
	w := doRequest(h, "GET", page, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	m := csrfFieldPattern.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2, "token field missing on %s", page)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return html.UnescapeString(m[1]), cookies
}

func postForm(h http.Handler, target, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestUI_CSRFProtection(t *testing.T) {
	withCSRF := func(rc *RouterConfig) {
		rc.CSRFSecret = []byte("0123456789abcdef0123456789abcdef")
	}
	h := setupServerAt(t, "production", filepath.Join(t.TempDir(), "books.db"), withCSRF)

	t.Run("post without a token is rejected", func(t *testing.T) {
		w := doForm(h, "POST", "/books", "title=Dune&author=Frank+Herbert")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(h, "GET", "/api/books", "")
		assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
	})

	t.Run("post with a token from the page", func(t *testing.T) {
		token, cookies := formToken(t, h, "/books/new")

		form := url.Values{"title": {"Dune"}, "author": {"Frank Herbert"}, CSRFFieldName: {token}}
		w := postForm(h, "/books", form.Encode(), cookies)
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		assert.Contains(t, w.Header().Get("Location"), "success=Book+created+successfully")
	})

	t.Run("delete through the override keeps the token", func(t *testing.T) {
		token, cookies := formToken(t, h, "/books")

		form := url.Values{"title": {"Emma"}, "author": {"Jane Austen"}, CSRFFieldName: {token}}
		w := postForm(h, "/books", form.Encode(), cookies)
		require.Equal(t, http.StatusFound, w.Code)
		u, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)

		del := url.Values{CSRFFieldName: {token}}
		w = postForm(h, u.Path+"?_method=DELETE", del.Encode(), cookies)
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		assert.Equal(t, "/books?success=Book+deleted+successfully", w.Header().Get("Location"))
	})

	t.Run("the api is not protected", func(t *testing.T) {
		w := doJSON(h, "POST", "/api/books", `{"title":"Ulysses","author":"James Joyce"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
