// Package memory provides in-process implementations of the repository interfaces.
// They enforce the same unique constraints as the Postgres schema.
package memory

import (
	"sync"

	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/repositories"
)

// Store holds every collection behind one lock
type Store struct {
	mu         sync.RWMutex
	users      []*models.User
	students   []*models.Student
	grades     []*models.Grade
	attendance []*models.Attendance
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Repositories returns repository views over the store
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:       &UserRepository{store: s},
		StudentRepository:    &StudentRepository{store: s},
		GradeRepository:      &GradeRepository{store: s},
		AttendanceRepository: &AttendanceRepository{store: s},
	}
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
