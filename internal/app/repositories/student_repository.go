package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	"github.com/yigit/atauni/internal/pkg/dberrors"
	"github.com/yigit/atauni/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "student_no", "tc_no", "first_name", "last_name", "email", "phone", "department",
	"class_level", "password", "status", "gpa", "created_at", "approved_at", "approved_by",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanStudent(row rowScanner) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.StudentNo, &s.TCNo, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Department,
		&s.ClassLevel, &s.Password, &s.Status, &s.GPA, &s.CreatedAt, &s.ApprovedAt, &s.ApprovedBy,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new student. A student_no collision yields ErrStudentNoTaken,
// a tc_no collision yields apperrors.ErrTCNoExists.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(s.ID, s.StudentNo, s.TCNo, s.FirstName, s.LastName, s.Email, s.Phone, s.Department,
			s.ClassLevel, s.Password, s.Status, s.GPA, s.CreatedAt, s.ApprovedAt, s.ApprovedBy).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, ConstraintStudentsTCNo):
			return apperrors.ErrTCNoExists
		case dberrors.IsDuplicateConstraintError(err, ConstraintStudentsStudentNo):
			return ErrStudentNoTaken
		}
		logger.Error().Err(err).Str("studentNo", s.StudentNo).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return s, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByStudentNo retrieves a student by student number
func (r *StudentRepository) GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"student_no": studentNo})
}

// GetByTCNo retrieves a student by national id
func (r *StudentRepository) GetByTCNo(ctx context.Context, tcNo string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"tc_no": tcNo})
}

// List retrieves all students, newest first
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// CountByStudentNoPrefix counts students whose number starts with prefix
func (r *StudentRepository) CountByStudentNoPrefix(ctx context.Context, prefix string) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("students").
		Where(squirrel.Like{"student_no": prefix + "%"}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("prefix", prefix).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// MaxStudentNoSequence returns the highest numeric suffix of student numbers starting with prefix
func (r *StudentRepository) MaxStudentNoSequence(ctx context.Context, prefix string) (int, error) {
	sql, args, err := r.sb.Select(maxSequenceColumn(prefix)).
		From("students").
		Where(squirrel.Like{"student_no": prefix + "%"}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building max student number SQL")
		return 0, fmt.Errorf("failed to build max student number query: %w", err)
	}

	var highest int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&highest); err != nil {
		logger.Error().Err(err).Str("prefix", prefix).Msg("Error reading highest student number")
		return 0, fmt.Errorf("error reading highest student number: %w", err)
	}
	return highest, nil
}

func maxSequenceColumn(prefix string) string {
	return fmt.Sprintf("COALESCE(MAX(CAST(SUBSTRING(student_no FROM %d) AS INTEGER)), 0)", len(prefix)+1)
}

// Update writes all mutable columns of the student
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"first_name":  s.FirstName,
			"last_name":   s.LastName,
			"email":       s.Email,
			"phone":       s.Phone,
			"department":  s.Department,
			"class_level": s.ClassLevel,
			"status":      s.Status,
			"approved_at": s.ApprovedAt,
			"approved_by": s.ApprovedBy,
		}).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	return r.exec(ctx, sql, args, s.ID, "update")
}

// UpdateGPA stores a recalculated gpa
func (r *StudentRepository) UpdateGPA(ctx context.Context, id string, gpa float64) error {
	sql, args, err := r.sb.Update("students").
		Set("gpa", gpa).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update gpa SQL")
		return fmt.Errorf("failed to build update gpa query: %w", err)
	}

	return r.exec(ctx, sql, args, id, "update gpa")
}

// Delete removes a student by ID. Dependent rows are removed by the caller.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	return r.exec(ctx, sql, args, id, "delete")
}

func (r *StudentRepository) exec(ctx context.Context, sql string, args []interface{}, id, op string) error {
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", id).Str("op", op).Msg("Error executing student query")
		return fmt.Errorf("error executing student %s: %w", op, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
