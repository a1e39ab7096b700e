package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Pvt25072004/devops-lab-cicd/internal/apperr"
	"github.com/Pvt25072004/devops-lab-cicd/internal/entities"
)

// Mode selects the rules applied by ValidateBook.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// Fields is validated book input.
type Fields = entities.BookFields

const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldPublishedYear = "published_year"
	FieldGenre         = "genre"
	FieldDescription   = "description"
	FieldISBN          = "isbn"
)

const (
	maxTitleLen  = 255
	maxAuthorLen = 255
	maxGenreLen  = 100
	maxISBNLen   = 32
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// notfuture accepts years up to next year
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(maxYear())
	})
	return v
}

func maxYear() int {
	return time.Now().Year() + 1
}

// ValidateBook checks raw input for a create or an update and converts it to
// Fields. Unknown keys are ignored. On failure the error is an
// *apperr.ValidationError listing fields in a fixed order: title, author,
// published_year, genre, description, isbn.
func ValidateBook(raw map[string]any, mode Mode) (Fields, error) {
	var fields Fields
	verr := &apperr.ValidationError{}

	fields.Title = requiredString(raw, FieldTitle, maxTitleLen, mode, verr)
	fields.Author = requiredString(raw, FieldAuthor, maxAuthorLen, mode, verr)
	fields.PublishedYear = publishedYear(raw, mode, verr)
	fields.Genre = optionalString(raw, FieldGenre, maxGenreLen, verr)
	fields.Description = optionalString(raw, FieldDescription, 0, verr)
	fields.ISBN = optionalString(raw, FieldISBN, maxISBNLen, verr)

	if !verr.Empty() {
		return Fields{}, verr
	}
	return fields, nil
}

func requiredString(raw map[string]any, key string, limit int, mode Mode, verr *apperr.ValidationError) *string {
	v, present := raw[key]
	if !present {
		if mode == ModeCreate {
			verr.Add(key, "is required")
		}
		return nil
	}
	if v == nil {
		verr.Add(key, "is required")
		return nil
	}

	s, ok := asString(v)
	if !ok {
		verr.Add(key, "must be a string")
		return nil
	}
	s = strings.TrimSpace(s)
	if err := validate.Var(s, fmt.Sprintf("required,max=%d", limit)); err != nil {
		verr.Add(key, message(err))
		return nil
	}
	return &s
}

func optionalString(raw map[string]any, key string, limit int, verr *apperr.ValidationError) *string {
	v, present := raw[key]
	if !present {
		return nil
	}

	var s string
	if v != nil {
		var ok bool
		if s, ok = asString(v); !ok {
			verr.Add(key, "must be a string")
			return nil
		}
	}
	if limit > 0 {
		if err := validate.Var(s, fmt.Sprintf("max=%d", limit)); err != nil {
			verr.Add(key, message(err))
			return nil
		}
	}
	return &s
}

// publishedYear accepts JSON numbers and decimal strings. null and blank
// strings mean "no year": ignored on create, clearing the value on update.
func publishedYear(raw map[string]any, mode Mode, verr *apperr.ValidationError) entities.OptionalInt {
	v, present := raw[FieldPublishedYear]
	if !present {
		return entities.OptionalInt{}
	}

	year, blank, ok := asInt(v)
	if !ok {
		verr.Add(FieldPublishedYear, "must be an integer")
		return entities.OptionalInt{}
	}
	if blank {
		if mode == ModeUpdate {
			return entities.OptionalInt{Set: true}
		}
		return entities.OptionalInt{}
	}

	if err := validate.Var(year, "gte=0,notfuture"); err != nil {
		verr.Add(FieldPublishedYear, message(err))
		return entities.OptionalInt{}
	}
	return entities.OptionalInt{Set: true, Value: &year}
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

func asInt(v any) (n int, blank, ok bool) {
	switch t := v.(type) {
	case nil:
		return 0, true, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, true, true
		}
		n, err := strconv.Atoi(s)
		return n, false, err == nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return fromInt64(i)
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false, false
		}
		return fromFloat(f)
	case float64:
		return fromFloat(t)
	case int:
		return t, false, true
	case int64:
		return fromInt64(t)
	default:
		return 0, false, false
	}
}

func fromInt64(i int64) (int, bool, bool) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false, false
	}
	return int(i), false, true
}

func fromFloat(f float64) (int, bool, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false, false
	}
	return int(f), false, true
}

func message(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "is invalid"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte", "notfuture":
		return fmt.Sprintf("must be between 0 and %d", maxYear())
	default:
		return "is invalid"
	}
}
