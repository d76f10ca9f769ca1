package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := OKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	msg := "something went wrong"
	resp := Error(msg)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, msg, resp.Error)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Name string `validate:"required,alphanum"`
		Age  string `validate:"numeric"`
	}

	v := validator.New()
	ts := TestStruct{
		Name: "!!!",
		Age:  "twenty",
	}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.NotEmpty(t, resp.Error)

	assert.Contains(t, resp.Error, "field Name can contain only numbers and letters")
	assert.Contains(t, resp.Error, "field Age can contain only numbers")
}

func TestValidationError_Required(t *testing.T) {
	type TestStruct struct {
		Title string `validate:"required"`
	}

	v := validator.New()
	err := v.Struct(TestStruct{})
	assert.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, "field Title is a required field", resp.Error)
}
