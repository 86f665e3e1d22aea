// Package bootstrap wires configuration, storage, services and HTTP handlers together.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/atauni/internal/app/auth"
	appControllers "github.com/yigit/atauni/internal/app/controllers"
	appMigrations "github.com/yigit/atauni/internal/app/migrations"
	appRepos "github.com/yigit/atauni/internal/app/repositories"
	"github.com/yigit/atauni/internal/app/repositories/memory"
	appRoutes "github.com/yigit/atauni/internal/app/routes"
	appServices "github.com/yigit/atauni/internal/app/services"
	"github.com/yigit/atauni/internal/config"
	"github.com/yigit/atauni/internal/db"
	appMiddleware "github.com/yigit/atauni/internal/middleware"
	pkgAuth "github.com/yigit/atauni/internal/pkg/auth"
	"github.com/yigit/atauni/internal/pkg/helpers"
	"github.com/yigit/atauni/internal/pkg/logger"
	"github.com/yigit/atauni/internal/pkg/weather"
	"github.com/yigit/atauni/internal/seed"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Database *db.PostgresDB // nil with the memory driver

	JWTService   *pkgAuth.JWTService
	Hasher       *pkgAuth.PasswordHasher
	AuthzService *appAuth.AuthorizationService

	AuthService       appServices.AuthService
	UserService       appServices.UserService
	StudentService    appServices.StudentService
	GradeService      appServices.GradeService
	AttendanceService appServices.AttendanceService
	WeatherService    appServices.WeatherService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	format := strings.ToLower(cfg.Logging.Format)
	lgr := logger.Configure(logger.Config{
		Level:   level,
		Pretty:  format == "console" || format == "text",
		Service: "atauni",
	})

	lgr.Info().Str("logLevel", string(level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store, applies migrations for Postgres and seeds the default admin.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	var (
		repos    *appRepos.Repositories
		database *db.PostgresDB
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store, data is lost on restart")
		repos = memory.NewStore().Repositories()
	default:
		lgr.Info().Msg("Establishing database connection...")
		var err error
		database, err = db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		if err := runMigrations(ctx, cfg, database, lgr); err != nil {
			database.Close()
			return nil, nil, err
		}
		repos = appRepos.NewRepositories(database.Pool)
	}

	hasher := pkgAuth.NewPasswordHasher(cfg.Security.BcryptCost)
	if _, err := seed.CreateDefaultAdmin(ctx, repos.UserRepository, hasher, seed.Admin{
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		FullName: cfg.Seed.AdminFullName,
	}, lgr); err != nil {
		// Startup goes on; the admin can be created on the next boot
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return repos, database, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	dir := cfg.Database.MigrationsDir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		lgr.Error().Str("path", dir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	lgr.Info().Str("path", dir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database, lgr)
	if err := migrator.MigrateFromDirectory(ctx, dir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes services, controllers and middleware over repos.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Database: database, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 168*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Security.BcryptCost)
	deps.AuthzService = appAuth.NewAuthorizationService(deps.JWTService, repos.UserRepository, repos.StudentRepository)

	deps.AuthService = appServices.NewAuthService(repos.UserRepository, deps.Hasher, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(repos.UserRepository, deps.Hasher, cfg.Seed.AdminUsername, nil, lgr)
	deps.StudentService = appServices.NewStudentService(
		repos.StudentRepository,
		repos.GradeRepository,
		repos.AttendanceRepository,
		deps.Hasher,
		deps.JWTService,
		appServices.StudentOptions{
			StrictApproval: cfg.Students.StrictApproval,
			NumberAttempts: cfg.Students.NumberGenAttempts,
		},
		nil,
		lgr,
	)
	deps.GradeService = appServices.NewGradeService(repos.GradeRepository, repos.StudentRepository, nil, lgr)
	deps.AttendanceService = appServices.NewAttendanceService(repos.AttendanceRepository, repos.StudentRepository, nil, lgr)

	weatherClient := weather.NewClient(weather.Config{
		ForecastURL:    cfg.Weather.ForecastURL,
		GeocodeURL:     cfg.Weather.GeocodeURL,
		Timeout:        helpers.ParseDuration(cfg.Weather.Timeout, 10*time.Second),
		GeocodeTimeout: helpers.ParseDuration(cfg.Weather.GeocodeTimeout, 5*time.Second),
	})
	deps.WeatherService = appServices.NewWeatherService(weatherClient, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthzService)

	var pinger appControllers.Pinger
	if database != nil {
		pinger = database
	}
	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.AuthService, lgr),
		User:    appControllers.NewUserController(deps.UserService, lgr),
		Student: appControllers.NewStudentController(deps.StudentService, lgr),
		Record:  appControllers.NewRecordController(deps.GradeService, deps.AttendanceService, lgr),
		Weather: appControllers.NewWeatherController(deps.WeatherService, lgr),
		Health:  appControllers.NewHealthController(pinger, Version, lgr),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		deps.Logger.Info().Msg("Setting Gin mode to release")
	}

	appMiddleware.RegisterJSONTagNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(deps.Logger))
	router.Use(appMiddleware.CORS(cfg.Server.CORSOrigins))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
