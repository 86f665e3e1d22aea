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
	"github.com/yigit/atauni/internal/pkg/logger"
)

var gradeColumns = []string{
	"id", "student_id", "course_name", "course_code", "credit", "midterm", "final", "grade", "semester", "created_at",
}

// GradeRepository handles grade entry database operations
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanGrade(row rowScanner) (*models.Grade, error) {
	g := &models.Grade{}
	err := row.Scan(&g.ID, &g.StudentID, &g.CourseName, &g.CourseCode, &g.Credit,
		&g.Midterm, &g.Final, &g.Grade, &g.Semester, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Create inserts a grade entry
func (r *GradeRepository) Create(ctx context.Context, g *models.Grade) error {
	sql, args, err := r.sb.Insert("student_grades").
		Columns(gradeColumns...).
		Values(g.ID, g.StudentID, g.CourseName, g.CourseCode, g.Credit, g.Midterm, g.Final, g.Grade, g.Semester, g.CreatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create grade SQL")
		return fmt.Errorf("failed to build create grade query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("studentID", g.StudentID).Msg("Error executing create grade query")
		return fmt.Errorf("error creating grade: %w", err)
	}
	return nil
}

// GetByID retrieves a grade entry by ID
func (r *GradeRepository) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("student_grades").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get grade SQL")
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	g, err := scanGrade(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		logger.Error().Err(err).Str("gradeID", id).Msg("Error scanning grade row")
		return nil, fmt.Errorf("error getting grade: %w", err)
	}
	return g, nil
}

// ListByStudent retrieves every grade entry of a student in insertion order
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("student_grades").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list grades SQL")
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error executing list grades query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// Update writes all mutable columns of the grade entry
func (r *GradeRepository) Update(ctx context.Context, g *models.Grade) error {
	sql, args, err := r.sb.Update("student_grades").
		SetMap(map[string]interface{}{
			"course_name": g.CourseName,
			"course_code": g.CourseCode,
			"credit":      g.Credit,
			"midterm":     g.Midterm,
			"final":       g.Final,
			"grade":       g.Grade,
			"semester":    g.Semester,
		}).
		Where(squirrel.Eq{"id": g.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update grade SQL")
		return fmt.Errorf("failed to build update grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("gradeID", g.ID).Msg("Error executing update grade query")
		return fmt.Errorf("error updating grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// Delete removes a grade entry by ID
func (r *GradeRepository) Delete(ctx context.Context, id string) error {
	n, err := r.deleteWhere(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// DeleteByStudent removes every grade entry of a student and reports how many were removed
func (r *GradeRepository) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	return r.deleteWhere(ctx, squirrel.Eq{"student_id": studentID})
}

func (r *GradeRepository) deleteWhere(ctx context.Context, where squirrel.Eq) (int64, error) {
	sql, args, err := r.sb.Delete("student_grades").Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete grade SQL")
		return 0, fmt.Errorf("failed to build delete grade query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete grade query")
		return 0, fmt.Errorf("error deleting grades: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
