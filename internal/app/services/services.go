// Package services holds the business rules of the student records backend.
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/yigit/atauni/internal/pkg/helpers"
)

// Clock returns the current time; services take one so tests can pin the date.
type Clock func() time.Time

func utcNow() time.Time {
	return helpers.NowUTC()
}

func newID() string {
	return uuid.NewString()
}
