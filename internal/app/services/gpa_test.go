package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/pkg/apperrors"
)

func letter(s string) *string { return &s }

func TestCalculateGPAExcludesUngraded(t *testing.T) {
	grades := []*models.Grade{
		{Grade: letter("AA"), Credit: 4},
		{Grade: letter("BB"), Credit: 3},
		{Grade: nil, Credit: 2},
	}

	assert.Equal(t, 3.57, CalculateGPA(grades))
}

func TestCalculateGPAUnknownSymbolIgnored(t *testing.T) {
	grades := []*models.Grade{
		{Grade: letter("BA"), Credit: 2},
		{Grade: letter("XX"), Credit: 10},
		{Grade: letter(""), Credit: 10},
	}

	assert.Equal(t, 3.5, CalculateGPA(grades))
}

func TestCalculateGPANoCredits(t *testing.T) {
	assert.Equal(t, 0.0, CalculateGPA(nil))
	assert.Equal(t, 0.0, CalculateGPA([]*models.Grade{{Credit: 5}}))
}

func TestCalculateGPAFailingGradeCountsCredits(t *testing.T) {
	grades := []*models.Grade{
		{Grade: letter("AA"), Credit: 3},
		{Grade: letter("FF"), Credit: 3},
	}

	assert.Equal(t, 2.0, CalculateGPA(grades))
}

func TestCalculateGPAHalfRoundsToEven(t *testing.T) {
	// 17 points over 8 credits is exactly 2.125
	grades := []*models.Grade{
		{Grade: letter("AA"), Credit: 2},
		{Grade: letter("CB"), Credit: 2},
		{Grade: letter("DD"), Credit: 4},
	}

	assert.Equal(t, 2.12, CalculateGPA(grades))
}

func TestCalculateGPAIdempotent(t *testing.T) {
	grades := []*models.Grade{
		{Grade: letter("CB"), Credit: 3},
		{Grade: letter("DC"), Credit: 2},
		{Grade: letter("AA"), Credit: 5},
	}

	first := CalculateGPA(grades)
	assert.Equal(t, first, CalculateGPA(grades))
}

func TestAbsencePercentage(t *testing.T) {
	pct, err := AbsencePercentage(56, 52)
	require.NoError(t, err)
	assert.Equal(t, 7.14, pct)

	pct, err = AbsencePercentage(40, 40)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	// 29 of 32 hours missed is exactly 90.625
	pct, err = AbsencePercentage(32, 3)
	require.NoError(t, err)
	assert.Equal(t, 90.62, pct)

	_, err = AbsencePercentage(0, 0)
	assert.ErrorIs(t, err, apperrors.ErrZeroTotalHours)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = AbsencePercentage(10, 11)
	assert.ErrorIs(t, err, apperrors.ErrAttendedExceeds)
}
