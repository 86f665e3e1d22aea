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
	"github.com/yigit/atauni/internal/pkg/auth"
)

// StudentService defines the student directory operations
type StudentService interface {
	Register(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error)
	Login(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentAuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Approve(ctx context.Context, id string, approvedBy string) error
	Reject(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// StudentOptions tunes the student directory
type StudentOptions struct {
	// StrictApproval only allows pending -> approved and pending -> rejected
	StrictApproval bool
	// NumberAttempts bounds the student number allocation retries
	NumberAttempts int
}

type studentServiceImpl struct {
	studentRepo    repositories.IStudentRepository
	gradeRepo      repositories.IGradeRepository
	attendanceRepo repositories.IAttendanceRepository
	hasher         *auth.PasswordHasher
	jwtService     *auth.JWTService
	opts           StudentOptions
	now            Clock
	logger         zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	gradeRepo repositories.IGradeRepository,
	attendanceRepo repositories.IAttendanceRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	opts StudentOptions,
	now Clock,
	logger zerolog.Logger,
) StudentService {
	if opts.NumberAttempts < 1 {
		opts.NumberAttempts = 1
	}
	if now == nil {
		now = utcNow
	}
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		gradeRepo:      gradeRepo,
		attendanceRepo: attendanceRepo,
		hasher:         hasher,
		jwtService:     jwtService,
		opts:           opts,
		now:            now,
		logger:         logger,
	}
}

// StudentNumber formats a student number as {year}{4-digit sequence}
func StudentNumber(year, seq int) string {
	return fmt.Sprintf("%04d%04d", year, seq)
}

// Register creates a pending student with a freshly allocated student number
func (s *studentServiceImpl) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error) {
	if _, err := s.studentRepo.GetByTCNo(ctx, req.TCNo); err == nil {
		return nil, apperrors.ErrTCNoExists
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, fmt.Errorf("failed to check tc number: %w", err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	// the number carries the server's local year
	year := s.now().Local().Year()
	prefix := fmt.Sprintf("%04d", year)
	count, err := s.studentRepo.CountByStudentNoPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	student := &models.Student{
		ID:         newID(),
		TCNo:       req.TCNo,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		ClassLevel: req.ClassLevel,
		Password:   hashed,
		Status:     models.StatusPending,
		GPA:        0,
		CreatedAt:  now,
	}

	// First try count+1. On a collision continue after the highest number in use,
	// which also covers gaps left by deleted students.
	seq := count + 1
	for attempt := 0; attempt < s.opts.NumberAttempts; attempt++ {
		student.StudentNo = StudentNumber(year, seq)
		err = s.studentRepo.Create(ctx, student)
		if err == nil {
			s.logger.Info().Str("studentNo", student.StudentNo).Str("studentID", student.ID).Msg("Student registered")
			return student, nil
		}
		if !errors.Is(err, repositories.ErrStudentNoTaken) {
			return nil, err
		}
		s.logger.Warn().Str("studentNo", student.StudentNo).Int("attempt", attempt+1).Msg("Student number collision, retrying")

		highest, err := s.studentRepo.MaxStudentNoSequence(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to read highest student number: %w", err)
		}
		seq = max(seq, highest) + 1
	}

	return nil, apperrors.NewConflictError(fmt.Sprintf("could not allocate a student number after %d attempts", s.opts.NumberAttempts))
}

var errStudentCredentials = &apperrors.CustomError{
	Err:     apperrors.ErrInvalidCredentials,
	Message: "invalid student number or password",
}

// Login verifies the credentials of an approved student and issues a student token.
// The approval state is checked before the password.
func (s *studentServiceImpl) Login(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentAuthResponse, error) {
	student, err := s.studentRepo.GetByStudentNo(ctx, req.StudentNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, errStudentCredentials
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	if !student.CanLogin() {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrAccountNotApproved,
			Message: "your account has not been approved yet",
			Details: map[string]interface{}{"status": student.Status},
		}
	}

	if !s.hasher.Check(student.Password, req.Password) {
		return nil, errStudentCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(student.StudentNo, auth.TokenTypeStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.StudentAuthResponse{
		TokenResponse: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresIn:   expiresIn,
		},
		Student: student,
	}, nil
}

func (s *studentServiceImpl) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

func (s *studentServiceImpl) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.List(ctx)
}

// checkTransition enforces the strict state machine when it is enabled
func (s *studentServiceImpl) checkTransition(from, to models.StudentStatus) error {
	if !s.opts.StrictApproval {
		return nil
	}
	if from != models.StatusPending || to == models.StatusPending {
		return &apperrors.CustomError{
			Err:     apperrors.ErrInvalidStatus,
			Message: fmt.Sprintf("cannot change status from %s to %s", from, to),
		}
	}
	return nil
}

// Approve marks the student approved and stamps the approval time and actor.
// Without strict approval an already decided student is overwritten.
func (s *studentServiceImpl) Approve(ctx context.Context, id string, approvedBy string) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkTransition(student.Status, models.StatusApproved); err != nil {
		return err
	}

	now := s.now().UTC()
	student.Status = models.StatusApproved
	student.ApprovedAt = &now
	student.ApprovedBy = &approvedBy

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return err
	}
	s.logger.Info().Str("studentID", id).Str("approvedBy", approvedBy).Msg("Student approved")
	return nil
}

// Reject marks the student rejected; a previous approval stamp is kept.
func (s *studentServiceImpl) Reject(ctx context.Context, id string) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkTransition(student.Status, models.StatusRejected); err != nil {
		return err
	}

	student.Status = models.StatusRejected
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return err
	}
	s.logger.Info().Str("studentID", id).Msg("Student rejected")
	return nil
}

// Update applies the set fields of patch; gpa and identifiers are not patchable.
func (s *studentServiceImpl) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return student, nil
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", *patch.Status))
		}
		if *patch.Status != student.Status {
			if err := s.checkTransition(student.Status, *patch.Status); err != nil {
				return nil, err
			}
		}
	}

	patch.Apply(student)
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

// Delete removes the student together with its grade and attendance entries
func (s *studentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	grades, err := s.gradeRepo.DeleteByStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete grades of student %s: %w", id, err)
	}
	attendance, err := s.attendanceRepo.DeleteByStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance of student %s: %w", id, err)
	}

	s.logger.Info().
		Str("studentID", id).
		Int64("grades", grades).
		Int64("attendance", attendance).
		Msg("Student deleted")
	return nil
}
