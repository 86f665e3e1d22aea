package dto

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Credit int    `validate:"required,gt=0"`
	Grade  string `validate:"omitempty,oneof=AA BA"`
}

func TestHandleValidationErrorPerField(t *testing.T) {
	err := validator.New().Struct(sample{Credit: 0, Grade: "ZZ"})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	fields, ok := detail.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "credit", fields[0].Field)
	assert.Equal(t, "credit is required", fields[0].Message)
	assert.Equal(t, "grade must be one of: AA BA", fields[1].Message)
}

func TestHandleValidationErrorSyntax(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{bad"), &v)

	detail := HandleValidationError(err)

	assert.Equal(t, "Invalid JSON", detail.Message)
}

func TestUpdateRequestsToPatch(t *testing.T) {
	credit := 5
	patch := (&UpdateGradeRequest{Credit: &credit}).ToPatch()
	assert.Equal(t, 5, *patch.Credit)
	assert.Nil(t, patch.Grade)

	assert.True(t, (&UpdateStudentRequest{}).ToPatch().Empty())
}
