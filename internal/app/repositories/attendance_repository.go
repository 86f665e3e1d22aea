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

var attendanceColumns = []string{
	"id", "student_id", "course_name", "total_hours", "attended_hours", "absence_percentage", "created_at",
}

// AttendanceRepository handles attendance entry database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanAttendance(row rowScanner) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := row.Scan(&a.ID, &a.StudentID, &a.CourseName, &a.TotalHours, &a.AttendedHours, &a.AbsencePercentage, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an attendance entry
func (r *AttendanceRepository) Create(ctx context.Context, a *models.Attendance) error {
	sql, args, err := r.sb.Insert("student_attendance").
		Columns(attendanceColumns...).
		Values(a.ID, a.StudentID, a.CourseName, a.TotalHours, a.AttendedHours, a.AbsencePercentage, a.CreatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create attendance SQL")
		return fmt.Errorf("failed to build create attendance query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("studentID", a.StudentID).Msg("Error executing create attendance query")
		return fmt.Errorf("error creating attendance: %w", err)
	}
	return nil
}

// GetByID retrieves an attendance entry by ID
func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns...).
		From("student_attendance").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attendance SQL")
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	a, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		logger.Error().Err(err).Str("attendanceID", id).Msg("Error scanning attendance row")
		return nil, fmt.Errorf("error getting attendance: %w", err)
	}
	return a, nil
}

// ListByStudent retrieves every attendance entry of a student in insertion order
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns...).
		From("student_attendance").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list attendance SQL")
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error executing list attendance query")
		return nil, fmt.Errorf("error querying attendance: %w", err)
	}
	defer rows.Close()

	entries := []*models.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// Update writes all mutable columns of the attendance entry
func (r *AttendanceRepository) Update(ctx context.Context, a *models.Attendance) error {
	sql, args, err := r.sb.Update("student_attendance").
		SetMap(map[string]interface{}{
			"course_name":        a.CourseName,
			"total_hours":        a.TotalHours,
			"attended_hours":     a.AttendedHours,
			"absence_percentage": a.AbsencePercentage,
		}).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update attendance SQL")
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("attendanceID", a.ID).Msg("Error executing update attendance query")
		return fmt.Errorf("error updating attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// Delete removes an attendance entry by ID
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	n, err := r.deleteWhere(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// DeleteByStudent removes every attendance entry of a student
func (r *AttendanceRepository) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	return r.deleteWhere(ctx, squirrel.Eq{"student_id": studentID})
}

func (r *AttendanceRepository) deleteWhere(ctx context.Context, where squirrel.Eq) (int64, error) {
	sql, args, err := r.sb.Delete("student_attendance").Where(where).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete attendance SQL")
		return 0, fmt.Errorf("failed to build delete attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete attendance query")
		return 0, fmt.Errorf("error deleting attendance: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
