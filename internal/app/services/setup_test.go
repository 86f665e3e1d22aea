package services

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/app/repositories/memory"
	"github.com/yigit/atauni/internal/pkg/auth"
)

var fixedNow = time.Date(2025, 9, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	repos      *repositories.Repositories
	hasher     *auth.PasswordHasher
	jwt        *auth.JWTService
	students   StudentService
	grades     GradeService
	attendance AttendanceService
	users      UserService
	auth       AuthService
}

func newFixture(t *testing.T, opts StudentOptions) *fixture {
	t.Helper()
	log := zerolog.New(io.Discard)
	repos := memory.NewStore().Repositories()
	hasher := auth.NewPasswordHasher(4)
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "test", AccessTokenExp: 168 * time.Hour, TokenIssuer: "test"})
	clock := func() time.Time { return fixedNow }
	if opts.NumberAttempts == 0 {
		opts.NumberAttempts = 5
	}

	return &fixture{
		repos:      repos,
		hasher:     hasher,
		jwt:        jwt,
		students:   NewStudentService(repos.StudentRepository, repos.GradeRepository, repos.AttendanceRepository, hasher, jwt, opts, clock, log),
		grades:     NewGradeService(repos.GradeRepository, repos.StudentRepository, clock, log),
		attendance: NewAttendanceService(repos.AttendanceRepository, repos.StudentRepository, clock, log),
		users:      NewUserService(repos.UserRepository, hasher, "admin", clock, log),
		auth:       NewAuthService(repos.UserRepository, hasher, jwt, log),
	}
}

func registerRequest(tcNo string) *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		TCNo:       tcNo,
		FirstName:  "Ayşe",
		LastName:   "Yılmaz",
		Email:      "ayse@ogr.atauni.edu.tr",
		Phone:      "05550000000",
		Department: "Bilgisayar Programcılığı",
		ClassLevel: "1",
		Password:   "123456",
	}
}
