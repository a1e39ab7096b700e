package apperr

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.True(t, verr.Empty())

	verr.Add("title", "is required")
	verr.Add("title", "must be a string")
	verr.Add("published_year", "must be an integer")

	assert.False(t, verr.Empty())
	assert.Len(t, verr.Fields, 2)
	assert.True(t, verr.Has("title"))
	assert.False(t, verr.Has("isbn"))
	assert.Equal(t, "is required", verr.ByField()["title"])
	assert.Equal(t, "validation failed: title is required; published_year must be an integer", verr.Error())

	wrapped := fmt.Errorf("create: %w", verr)
	got, ok := AsValidation(wrapped)
	require.True(t, ok)
	assert.Same(t, verr, got)
}

func TestStorage(t *testing.T) {
	assert.NoError(t, Storage("insert", nil))

	cause := errors.New("database is locked")
	err := Storage("insert", cause)

	assert.True(t, IsStorage(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "storage: insert: database is locked", err.Error())

	// already wrapped errors keep their original operation
	again := Storage("update", err)
	assert.Same(t, err, again)

	_, ok := AsValidation(err)
	assert.False(t, ok)
	assert.False(t, IsStorage(ErrNotFound))
}
