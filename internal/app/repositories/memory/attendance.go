package memory

import (
	"context"

	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/pkg/apperrors"
)

// AttendanceRepository is the in-memory attendance entry repository
type AttendanceRepository struct {
	store *Store
}

func cloneAttendance(a *models.Attendance) *models.Attendance {
	c := *a
	return &c
}

func (r *AttendanceRepository) Create(_ context.Context, attendance *models.Attendance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.attendance = append(r.store.attendance, cloneAttendance(attendance))
	return nil
}

func (r *AttendanceRepository) GetByID(_ context.Context, id string) (*models.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.attendance {
		if a.ID == id {
			return cloneAttendance(a), nil
		}
	}
	return nil, apperrors.ErrAttendanceNotFound
}

func (r *AttendanceRepository) ListByStudent(_ context.Context, studentID string) ([]*models.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := []*models.Attendance{}
	for _, a := range r.store.attendance {
		if a.StudentID == studentID {
			entries = append(entries, cloneAttendance(a))
		}
	}
	return entries, nil
}

func (r *AttendanceRepository) Update(_ context.Context, attendance *models.Attendance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.attendance {
		if existing.ID == attendance.ID {
			updated := cloneAttendance(attendance)
			updated.StudentID = existing.StudentID
			updated.CreatedAt = existing.CreatedAt
			r.store.attendance[i] = updated
			return nil
		}
	}
	return apperrors.ErrAttendanceNotFound
}

func (r *AttendanceRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, a := range r.store.attendance {
		if a.ID == id {
			r.store.attendance = append(r.store.attendance[:i], r.store.attendance[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAttendanceNotFound
}

func (r *AttendanceRepository) DeleteByStudent(_ context.Context, studentID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.attendance[:0]
	var removed int64
	for _, a := range r.store.attendance {
		if a.StudentID == studentID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.store.attendance = kept
	return removed, nil
}
