package memory

import (
	"context"

	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/pkg/apperrors"
)

// GradeRepository is the in-memory grade entry repository
type GradeRepository struct {
	store *Store
}

func cloneGrade(g *models.Grade) *models.Grade {
	c := *g
	c.Midterm = copyFloatPtr(g.Midterm)
	c.Final = copyFloatPtr(g.Final)
	c.Grade = copyStringPtr(g.Grade)
	return &c
}

func (r *GradeRepository) Create(_ context.Context, grade *models.Grade) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.grades = append(r.store.grades, cloneGrade(grade))
	return nil
}

func (r *GradeRepository) GetByID(_ context.Context, id string) (*models.Grade, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, g := range r.store.grades {
		if g.ID == id {
			return cloneGrade(g), nil
		}
	}
	return nil, apperrors.ErrGradeNotFound
}

func (r *GradeRepository) ListByStudent(_ context.Context, studentID string) ([]*models.Grade, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	grades := []*models.Grade{}
	for _, g := range r.store.grades {
		if g.StudentID == studentID {
			grades = append(grades, cloneGrade(g))
		}
	}
	return grades, nil
}

// Update replaces the entry; the owning student and created_at are kept.
func (r *GradeRepository) Update(_ context.Context, grade *models.Grade) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.grades {
		if existing.ID == grade.ID {
			updated := cloneGrade(grade)
			updated.StudentID = existing.StudentID
			updated.CreatedAt = existing.CreatedAt
			r.store.grades[i] = updated
			return nil
		}
	}
	return apperrors.ErrGradeNotFound
}

func (r *GradeRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, g := range r.store.grades {
		if g.ID == id {
			r.store.grades = append(r.store.grades[:i], r.store.grades[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrGradeNotFound
}

func (r *GradeRepository) DeleteByStudent(_ context.Context, studentID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.grades[:0]
	var removed int64
	for _, g := range r.store.grades {
		if g.StudentID == studentID {
			removed++
			continue
		}
		kept = append(kept, g)
	}
	r.store.grades = kept
	return removed, nil
}
