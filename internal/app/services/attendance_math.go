package services

import (
	"github.com/yigit/atauni/internal/pkg/apperrors"
	"github.com/yigit/atauni/internal/pkg/helpers"
)

// AbsencePercentage returns the share of missed hours, rounded to two decimals.
func AbsencePercentage(totalHours, attendedHours int) (float64, error) {
	if totalHours <= 0 {
		return 0, apperrors.ErrZeroTotalHours
	}
	if attendedHours < 0 {
		return 0, apperrors.NewValidationError("attended hours cannot be negative")
	}
	if attendedHours > totalHours {
		return 0, apperrors.ErrAttendedExceeds
	}
	missed := float64(totalHours-attendedHours) / float64(totalHours) * 100
	return helpers.Round2(missed), nil
}
