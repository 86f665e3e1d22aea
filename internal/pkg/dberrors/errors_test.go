package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "students_tc_no_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, IsDuplicateConstraintError(wrapped, "students_tc_no_key"))
	assert.False(t, IsDuplicateConstraintError(wrapped, "students_student_no_key"))
	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
