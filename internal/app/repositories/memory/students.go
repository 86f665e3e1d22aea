package memory

import (
	"context"
	"strconv"
	"strings"

	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/pkg/apperrors"
)

// StudentRepository is the in-memory student repository
type StudentRepository struct {
	store *Store
}

func cloneStudent(s *models.Student) *models.Student {
	c := *s
	if s.ApprovedAt != nil {
		t := *s.ApprovedAt
		c.ApprovedAt = &t
	}
	c.ApprovedBy = copyStringPtr(s.ApprovedBy)
	return &c
}

func (r *StudentRepository) Create(_ context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.students {
		if existing.TCNo == student.TCNo {
			return apperrors.ErrTCNoExists
		}
		if existing.StudentNo == student.StudentNo {
			return repositories.ErrStudentNoTaken
		}
	}
	r.store.students = append(r.store.students, cloneStudent(student))
	return nil
}

func (r *StudentRepository) find(match func(*models.Student) bool) (*models.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.students {
		if match(s) {
			return cloneStudent(s), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *StudentRepository) GetByID(_ context.Context, id string) (*models.Student, error) {
	return r.find(func(s *models.Student) bool { return s.ID == id })
}

func (r *StudentRepository) GetByStudentNo(_ context.Context, studentNo string) (*models.Student, error) {
	return r.find(func(s *models.Student) bool { return s.StudentNo == studentNo })
}

func (r *StudentRepository) GetByTCNo(_ context.Context, tcNo string) (*models.Student, error) {
	return r.find(func(s *models.Student) bool { return s.TCNo == tcNo })
}

// List returns students newest first
func (r *StudentRepository) List(_ context.Context) ([]*models.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	students := make([]*models.Student, 0, len(r.store.students))
	for i := len(r.store.students) - 1; i >= 0; i-- {
		students = append(students, cloneStudent(r.store.students[i]))
	}
	return students, nil
}

func (r *StudentRepository) CountByStudentNoPrefix(_ context.Context, prefix string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, s := range r.store.students {
		if strings.HasPrefix(s.StudentNo, prefix) {
			count++
		}
	}
	return count, nil
}

func (r *StudentRepository) MaxStudentNoSequence(_ context.Context, prefix string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	highest := 0
	for _, s := range r.store.students {
		if !strings.HasPrefix(s.StudentNo, prefix) {
			continue
		}
		if seq, err := strconv.Atoi(s.StudentNo[len(prefix):]); err == nil && seq > highest {
			highest = seq
		}
	}
	return highest, nil
}

// Update replaces the mutable fields; identifiers, password, gpa and created_at are kept.
func (r *StudentRepository) Update(_ context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.students {
		if existing.ID != student.ID {
			continue
		}
		updated := cloneStudent(student)
		updated.StudentNo = existing.StudentNo
		updated.TCNo = existing.TCNo
		updated.Password = existing.Password
		updated.GPA = existing.GPA
		updated.CreatedAt = existing.CreatedAt
		r.store.students[i] = updated
		return nil
	}
	return apperrors.ErrStudentNotFound
}

func (r *StudentRepository) UpdateGPA(_ context.Context, id string, gpa float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, s := range r.store.students {
		if s.ID == id {
			s.GPA = gpa
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (r *StudentRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, s := range r.store.students {
		if s.ID == id {
			r.store.students = append(r.store.students[:i], r.store.students[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}
