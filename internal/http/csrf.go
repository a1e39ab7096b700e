package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const (
	// CSRFFieldName is the hidden form field carrying the token.
	CSRFFieldName = "gorilla.csrf.Token"
	// CSRFTokenHeader is accepted instead of the form field.
	CSRFTokenHeader = "X-CSRF-Token"

	contextKeyCSRFToken = "csrf_token"
)

// CSRFMiddleware protects the HTML form routes. The token lives in its own
// signed cookie, safe methods pass and only receive a fresh token.
// With secure unset the requests are treated as plain HTTP, so the
// Referer check that gorilla/csrf applies to HTTPS is skipped.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.RequestHeader(CSRFTokenHeader),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if !secure {
			c.Request = csrf.PlaintextHTTPRequest(c.Request)
		}

		passed := false
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(contextKeyCSRFToken, csrf.Token(r))
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)

		// the error handler has already answered
		if !passed {
			c.Abort()
		}
	}
}

// csrfErrorHandler sends form submissions back where they came from with an
// error flash, or answers 403 when there is no Referer.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	if referer := r.Referer(); referer != "" {
		sep := "?"
		if strings.Contains(referer, "?") {
			sep = "&"
		}
		http.Redirect(w, r, referer+sep+"error=Form+expired.+Please+try+again.", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Form expired</title></head>
<body>
<h1>Form expired</h1>
<p>The form submission was invalid or has expired.</p>
<p><a href="/books">Back to the books</a></p>
</body>
</html>`))
}

func csrfToken(c *gin.Context) string {
	return c.GetString(contextKeyCSRFToken)
}
