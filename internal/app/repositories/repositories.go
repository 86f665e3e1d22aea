package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/atauni/internal/app/models"
)

// ErrStudentNoTaken is returned when a generated student number collides with an existing one.
// Callers retry with the next sequence.
var ErrStudentNoTaken = errors.New("student number already taken")

// Unique constraint names as created by the migrations
const (
	ConstraintUsersUsername     = "users_username_key"
	ConstraintUsersEmail        = "users_email_key"
	ConstraintStudentsStudentNo = "students_student_no_key"
	ConstraintStudentsTCNo      = "students_tc_no_key"
)

// IUserRepository defines the interface for staff user persistence
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByLogin matches either the username or the email address
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// IStudentRepository defines the interface for student persistence
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error)
	GetByTCNo(ctx context.Context, tcNo string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	// CountByStudentNoPrefix counts students whose number starts with prefix
	CountByStudentNoPrefix(ctx context.Context, prefix string) (int, error)
	// MaxStudentNoSequence returns the highest sequence in use after prefix, 0 when none
	MaxStudentNoSequence(ctx context.Context, prefix string) (int, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateGPA(ctx context.Context, id string, gpa float64) error
	Delete(ctx context.Context, id string) error
}

// IGradeRepository defines the interface for grade entry persistence
type IGradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id string) (*models.Grade, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id string) error
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

// IAttendanceRepository defines the interface for attendance entry persistence
type IAttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByID(ctx context.Context, id string) (*models.Attendance, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Attendance, error)
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id string) error
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       IUserRepository
	StudentRepository    IStudentRepository
	GradeRepository      IGradeRepository
	AttendanceRepository IAttendanceRepository
}

// NewRepositories initializes the Postgres backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		GradeRepository:      NewGradeRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}
