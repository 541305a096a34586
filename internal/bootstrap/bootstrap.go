package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	appControllers "github.com/yigit/coachcenter/internal/app/controllers"
	appMigrations "github.com/yigit/coachcenter/internal/app/migrations"
	appRepos "github.com/yigit/coachcenter/internal/app/repositories"
	appRoutes "github.com/yigit/coachcenter/internal/app/routes"
	appServices "github.com/yigit/coachcenter/internal/app/services"
	"github.com/yigit/coachcenter/internal/config"
	"github.com/yigit/coachcenter/internal/db"
	appMiddleware "github.com/yigit/coachcenter/internal/middleware"
	pkgAuth "github.com/yigit/coachcenter/internal/pkg/auth"
	"github.com/yigit/coachcenter/internal/pkg/filestorage"
	"github.com/yigit/coachcenter/internal/pkg/geolocation"
	"github.com/yigit/coachcenter/internal/pkg/helpers"
	"github.com/yigit/coachcenter/internal/pkg/logger"
	"github.com/yigit/coachcenter/internal/seed"
)

// UploadsURLPrefix is where the local upload directory is served.
const UploadsURLPrefix = "/uploads"

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	PdfService          appServices.PdfService
	CourseService       appServices.CourseService
	ClassSubjectService appServices.ClassSubjectService

	AuthController         *appControllers.AuthController
	PdfController          *appControllers.PdfController
	CourseController       *appControllers.CourseController
	ClassSubjectController *appControllers.ClassSubjectController
	SystemController       *appControllers.SystemController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	StagingStorage *filestorage.LocalStorage
	// RemoteStorage is nil when no Drive credentials are configured.
	RemoteStorage filestorage.RemoteStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logConfig := logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format)
	logger.Configure(logConfig)

	logger.Info().Str("logLevel", string(logConfig.Level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	logger.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	logger.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, UploadsURLPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.StagingStorage, err = filestorage.NewStagingStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize staging storage: %w", err)
	}

	if cfg.DriveConfigured() {
		driveStorage, err := filestorage.NewDriveStorage(ctx, filestorage.DriveConfig{
			CredentialsFile: cfg.Drive.CredentialsFile,
			CredentialsJSON: cfg.Drive.CredentialsJSON,
			FolderID:        cfg.Drive.FolderID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize drive storage: %w", err)
		}
		deps.RemoteStorage = driveStorage
		logger.Info().Str("folderID", cfg.Drive.FolderID).Msg("Google Drive storage enabled")
	} else {
		logger.Warn().Msg("Google Drive credentials not configured, /haha/upload will fail")
	}

	deps.JWTService, err = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExpiry: cfg.TokenLifetime(),
		TokenIssuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	deps.AuthService = appServices.NewAuthService(deps.Repos.AdminRepository, deps.JWTService, cfg.Auth.BcryptCost)
	deps.PdfService = appServices.NewPdfService(deps.Repos.PdfRepository, deps.FileStorage, deps.StagingStorage, deps.RemoteStorage, cfg.Server.MaxUploadMB<<20)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.ClassSubjectRepository, deps.Repos.PdfRepository)
	deps.ClassSubjectService = appServices.NewClassSubjectService(deps.Repos.ClassSubjectRepository, deps.Repos.CourseRepository, deps.Repos.PdfRepository)

	if err := seed.CreateDefaultAdmin(ctx, cfg, deps.AuthService); err != nil {
		logger.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.AdminRepository)

	locator := geolocation.NewClient(cfg.Geolocation.Endpoint, helpers.ParseDuration(cfg.Geolocation.Timeout, 5*time.Second))

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.PdfController = appControllers.NewPdfController(deps.PdfService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.ClassSubjectController = appControllers.NewClassSubjectController(deps.ClassSubjectService)
	deps.SystemController = appControllers.NewSystemController(locator, database)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info().Msg("Setting Gin mode to debug")
	}

	router := NewEngine(cfg)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.PdfController,
		deps.CourseController,
		deps.ClassSubjectController,
		deps.SystemController,
		deps.AuthMiddleware,
	)

	return router
}

// NewEngine builds a gin engine with the shared middleware stack and no routes.
func NewEngine(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(appMiddleware.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Multipart bodies above this size spill to temporary files.
	router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	return router
}
