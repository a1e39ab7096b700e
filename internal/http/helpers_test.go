package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database/books"
	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

// setupTestServer wires the full stack on a fresh sqlite file.
func setupTestServer(t *testing.T, env string) http.Handler {
	t.Helper()
	return setupServerAt(t, env, filepath.Join(t.TempDir(), "books.db"))
}

// setupDegradedServer wires the stack on a store that cannot be opened.
func setupDegradedServer(t *testing.T, env string) http.Handler {
	t.Helper()
	return setupServerAt(t, env, filepath.Join(t.TempDir(), "missing", "dir", "books.db"))
}

func setupServerAt(t *testing.T, env, path string, opts ...func(*RouterConfig)) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Global:   config.Global{Environment: env},
		Database: config.Database{Driver: config.DriverSQLite, Path: path},
	}
	db := database.NewDatabase(context.Background(), cfg, zap.NewNop())
	t.Cleanup(func() { db.Close() })

	svc := services.NewBookService(books.NewRepository(db), zap.NewNop())
	rc := RouterConfig{
		Books:            svc,
		Logger:           zap.NewNop(),
		Environment:      env,
		ExposeErrors:     env == "development",
		CORSAllowOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(&rc)
	}
	handler, err := NewHandler(rc)
	require.NoError(t, err)
	return handler
}

func doRequest(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func doJSON(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	return doRequest(h, method, target, "application/json", body)
}

func doForm(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	return doRequest(h, method, target, "application/x-www-form-urlencoded", body)
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  []json.RawMessage `json:"errors"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type bookJSON struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear *int   `json:"published_year"`
	Genre         string `json:"genre"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeBook(t *testing.T, w *httptest.ResponseRecorder) bookJSON {
	t.Helper()
	env := decodeEnvelope(t, w)
	var book bookJSON
	require.NoError(t, json.Unmarshal(env.Data, &book))
	return book
}

func decodeFieldErrors(t *testing.T, env envelope) []fieldError {
	t.Helper()
	out := make([]fieldError, 0, len(env.Errors))
	for _, raw := range env.Errors {
		var fe fieldError
		require.NoError(t, json.Unmarshal(raw, &fe))
		out = append(out, fe)
	}
	return out
}
