package http

import (
	"context"
	"net/http"
	"strings"
)

const (
	methodOverrideField  = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

var overridableMethods = map[string]struct{}{
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

type formParseErrorKey struct{}

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes. It has to wrap the engine because gin picks the route by
// method before any middleware runs.
//
// The method is taken from the X-HTTP-Method-Override header, the _method
// query parameter or the _method form field, in that order.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			r = parseFormBody(r)
			if method, ok := overrideMethod(r); ok {
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

// parseFormBody reads a urlencoded body while the method is still POST:
// net/http ignores the body of a DELETE, and the form carries the CSRF token.
// A parse failure is kept on the context for the handler to report.
func parseFormBody(r *http.Request) *http.Request {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return r
	}
	if err := r.ParseForm(); err != nil {
		return r.WithContext(context.WithValue(r.Context(), formParseErrorKey{}, err))
	}
	return r
}

func formParseError(r *http.Request) error {
	err, _ := r.Context().Value(formParseErrorKey{}).(error)
	return err
}

func overrideMethod(r *http.Request) (string, bool) {
	candidate := r.Header.Get(methodOverrideHeader)
	if candidate == "" {
		candidate = r.URL.Query().Get(methodOverrideField)
	}
	if candidate == "" && r.PostForm != nil {
		candidate = r.PostForm.Get(methodOverrideField)
	}

	method := strings.ToUpper(strings.TrimSpace(candidate))
	if _, ok := overridableMethods[method]; !ok {
		return "", false
	}
	return method, true
}
