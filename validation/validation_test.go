package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Street string `json:"street" validate:"required"`
}

type sample struct {
	Email   string    `json:"email" validate:"required,email"`
	Items   []int     `json:"items" validate:"required,min=1"`
	Count   int       `json:"count" validate:"min=1"`
	Address *address  `json:"address" validate:"required"`
	Hidden  string    `json:"-"`
	Tags    []address `json:"tags" validate:"dive"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{
		Email:   "not-an-email",
		Items:   []int{},
		Address: &address{},
		Tags:    []address{{Street: "x"}, {}},
	})

	var verr *Error
	require.True(t, errors.As(err, &verr))

	assert.Contains(t, verr.Fields, FieldError{Field: "email", Message: "must be a valid email"})
	assert.Contains(t, verr.Fields, FieldError{Field: "items", Message: "must contain at least 1 item(s)"})
	assert.Contains(t, verr.Fields, FieldError{Field: "count", Message: "must be at least 1"})
	assert.Contains(t, verr.Fields, FieldError{Field: "address.street", Message: "is required"})
	assert.Contains(t, verr.Fields, FieldError{Field: "tags[1].street", Message: "is required"})
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{
		Email:   "jane@example.com",
		Items:   []int{1},
		Count:   2,
		Address: &address{Street: "Main"},
	})
	assert.NoError(t, err)
}

func TestError_MessageAggregatesFields(t *testing.T) {
	e := (&Error{}).Add("a", "is required").Add("b", "must be a valid email")
	assert.Equal(t, "validation failed: a: is required; b: must be a valid email", e.Error())
}

func TestError_OrNil(t *testing.T) {
	assert.NoError(t, (&Error{}).OrNil())

	var nilErr *Error
	assert.NoError(t, nilErr.OrNil())

	assert.Error(t, (&Error{}).Add("x", "bad").OrNil())
}
