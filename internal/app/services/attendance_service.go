package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/app/repositories"
)

// AttendanceService defines the attendance ledger operations
type AttendanceService interface {
	Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*models.Attendance, error)
	Update(ctx context.Context, id string, patch models.AttendancePatch) (*models.Attendance, error)
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]*models.Attendance, error)
}

type attendanceServiceImpl struct {
	attendanceRepo repositories.IAttendanceRepository
	studentRepo    repositories.IStudentRepository
	now            Clock
	logger         zerolog.Logger
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	attendanceRepo repositories.IAttendanceRepository,
	studentRepo repositories.IStudentRepository,
	now Clock,
	logger zerolog.Logger,
) AttendanceService {
	if now == nil {
		now = utcNow
	}
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		now:            now,
		logger:         logger,
	}
}

func (s *attendanceServiceImpl) Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*models.Attendance, error) {
	pct, err := AbsencePercentage(req.TotalHours, req.AttendedHours)
	if err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	entry := &models.Attendance{
		ID:                newID(),
		StudentID:         req.StudentID,
		CourseName:        req.CourseName,
		TotalHours:        req.TotalHours,
		AttendedHours:     req.AttendedHours,
		AbsencePercentage: pct,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.attendanceRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update merges the patch and recomputes the absence percentage from the merged hours
func (s *attendanceServiceImpl) Update(ctx context.Context, id string, patch models.AttendancePatch) (*models.Attendance, error) {
	entry, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(entry)
	pct, err := AbsencePercentage(entry.TotalHours, entry.AttendedHours)
	if err != nil {
		return nil, err
	}
	entry.AbsencePercentage = pct

	if err := s.attendanceRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("attendanceID", id).Float64("absence", pct).Msg("Attendance updated")
	return entry, nil
}

func (s *attendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}

func (s *attendanceServiceImpl) ListByStudent(ctx context.Context, studentID string) ([]*models.Attendance, error) {
	return s.attendanceRepo.ListByStudent(ctx, studentID)
}
