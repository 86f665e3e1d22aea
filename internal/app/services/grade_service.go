package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/pkg/apperrors"
)

// GradeService defines the grade ledger operations. Every mutation recalculates
// the owning student's gpa before it returns.
type GradeService interface {
	Create(ctx context.Context, req *dto.CreateGradeRequest) (*models.Grade, error)
	Update(ctx context.Context, id string, patch models.GradePatch) (*models.Grade, error)
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]*models.Grade, error)
	RecalculateGPA(ctx context.Context, studentID string) (float64, error)
}

type gradeServiceImpl struct {
	gradeRepo   repositories.IGradeRepository
	studentRepo repositories.IStudentRepository
	now         Clock
	logger      zerolog.Logger
}

// NewGradeService creates a new grade service instance
func NewGradeService(
	gradeRepo repositories.IGradeRepository,
	studentRepo repositories.IStudentRepository,
	now Clock,
	logger zerolog.Logger,
) GradeService {
	if now == nil {
		now = utcNow
	}
	return &gradeServiceImpl{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
		now:         now,
		logger:      logger,
	}
}

func validateGrade(g *models.Grade) error {
	if g.Credit <= 0 {
		return apperrors.NewValidationError("credit must be a positive integer")
	}
	if g.Grade != nil {
		if _, ok := GradePoints[*g.Grade]; !ok {
			return apperrors.NewValidationError(fmt.Sprintf("unknown letter grade %q", *g.Grade))
		}
	}
	return nil
}

func (s *gradeServiceImpl) Create(ctx context.Context, req *dto.CreateGradeRequest) (*models.Grade, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		ID:         newID(),
		StudentID:  req.StudentID,
		CourseName: req.CourseName,
		CourseCode: req.CourseCode,
		Credit:     req.Credit,
		Midterm:    req.Midterm,
		Final:      req.Final,
		Grade:      req.Grade,
		Semester:   req.Semester,
		CreatedAt:  s.now().UTC(),
	}
	if err := validateGrade(grade); err != nil {
		return nil, err
	}

	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}
	if _, err := s.RecalculateGPA(ctx, grade.StudentID); err != nil {
		return nil, err
	}
	return grade, nil
}

// Update merges the patch onto the stored entry and recalculates for the stored owner
func (s *gradeServiceImpl) Update(ctx context.Context, id string, patch models.GradePatch) (*models.Grade, error) {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(grade)
	if err := validateGrade(grade); err != nil {
		return nil, err
	}

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}
	if _, err := s.RecalculateGPA(ctx, grade.StudentID); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *gradeServiceImpl) Delete(ctx context.Context, id string) error {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gradeRepo.Delete(ctx, id); err != nil {
		return err
	}
	_, err = s.RecalculateGPA(ctx, grade.StudentID)
	return err
}

func (s *gradeServiceImpl) ListByStudent(ctx context.Context, studentID string) ([]*models.Grade, error) {
	return s.gradeRepo.ListByStudent(ctx, studentID)
}

// RecalculateGPA recomputes the gpa from every grade of the student and stores it.
// Read-then-write is not atomic; concurrent mutations for one student settle on the last write.
func (s *gradeServiceImpl) RecalculateGPA(ctx context.Context, studentID string) (float64, error) {
	grades, err := s.gradeRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load grades for gpa: %w", err)
	}

	gpa := CalculateGPA(grades)
	if err := s.studentRepo.UpdateGPA(ctx, studentID, gpa); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			// orphaned grades, nothing to store
			s.logger.Warn().Str("studentID", studentID).Msg("GPA recalculated for a missing student")
			return gpa, nil
		}
		return 0, fmt.Errorf("failed to store gpa: %w", err)
	}

	s.logger.Debug().Str("studentID", studentID).Float64("gpa", gpa).Msg("GPA recalculated")
	return gpa, nil
}
