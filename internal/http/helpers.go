package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Pvt25072004/devops-lab-cicd/internal/apperr"
)

// --- Response Types ---

// Envelope is the wrapper used by every JSON API response.
type Envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

const (
	msgBookNotFound     = "Book not found"
	msgValidationFailed = "Validation failed"
	msgInternalError    = "Internal server error"
	msgRouteNotFound    = "Route not found"
	msgBookCreated      = "Book created successfully"
	msgBookUpdated      = "Book updated successfully"
	msgBookDeleted      = "Book deleted successfully"
)

// maxBodyBytes bounds the request bodies accepted by the book endpoints.
const maxBodyBytes = 1 << 20

// --- Response Helpers ---

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: status < http.StatusBadRequest, Message: message})
}

func respondValidation(c *gin.Context, verr *apperr.ValidationError) {
	c.JSON(http.StatusBadRequest, Envelope{Message: msgValidationFailed, Errors: verr.Fields})
}

// respondInternalError sends the 500 envelope. The error detail is only
// exposed when exposeDetail is set.
func respondInternalError(c *gin.Context, err error, exposeDetail bool) {
	body := Envelope{Message: msgInternalError}
	if exposeDetail && err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// --- Request Parsing ---

func isFormRequest(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return true
	}
	return false
}

// formFields collects the submitted form values. Only keys present in the
// form appear in the result, so partial updates stay partial.
func formFields(c *gin.Context) (map[string]any, error) {
	if err := formParseError(c.Request); err != nil {
		return nil, err
	}
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}

	raw := make(map[string]any, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if key == methodOverrideField || key == CSRFFieldName || len(values) == 0 {
			continue
		}
		raw[key] = values[0]
	}
	return raw, nil
}

// jsonFields decodes a JSON object body. Numbers are kept as json.Number so
// that integer checks happen in the validator.
func jsonFields(c *gin.Context) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, bodyError("could not be read")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, bodyError("must be valid JSON")
	}
	raw, ok := payload.(map[string]any)
	if !ok {
		return nil, bodyError("must be a JSON object")
	}
	return raw, nil
}

// requestFields reads book input from either a form or a JSON body.
func requestFields(c *gin.Context) (map[string]any, error) {
	if isFormRequest(c) {
		raw, err := formFields(c)
		if err != nil {
			return nil, bodyError("could not be parsed")
		}
		return raw, nil
	}
	return jsonFields(c)
}

func bodyError(message string) *apperr.ValidationError {
	return &apperr.ValidationError{Fields: []apperr.FieldError{{Field: "body", Message: message}}}
}

// withQuery appends a single flash parameter to a redirect target.
func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}
