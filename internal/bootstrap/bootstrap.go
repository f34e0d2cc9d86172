package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mergington/activities/internal/app/controllers"
	appRepos "github.com/mergington/activities/internal/app/repositories"
	appRoutes "github.com/mergington/activities/internal/app/routes"
	appServices "github.com/mergington/activities/internal/app/services"
	"github.com/mergington/activities/internal/config"
	"github.com/mergington/activities/internal/db"
	appMiddleware "github.com/mergington/activities/internal/middleware"
	"github.com/mergington/activities/internal/pkg/logger"
	"github.com/mergington/activities/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService            appServices.UserService
	ActivityService        appServices.ActivityService
	RegistrationService    appServices.RegistrationService
	UserController         *appControllers.UserController
	ActivityController     *appControllers.ActivityController
	RegistrationController *appControllers.RegistrationController
	Repos                  *appRepos.Repositories
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, ensures the schema and
// loads the default roster when the database is empty.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Ensuring database schema...")
	if err := database.EnsureSchema(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Database schema setup error")
		database.Close()
		return nil, fmt.Errorf("database schema setup failed: %w", err)
	}
	lgr.Info().Msg("Database schema is up to date.")

	// Seeding is all-or-nothing; a partially loaded roster would be worse
	// than an empty database, so a seed failure aborts startup.
	if cfg.Seed.Enabled {
		if err := seed.RunOnce(context.Background(), database, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed default data")
			database.Close()
			return nil, fmt.Errorf("database seeding failed: %w", err)
		}
	} else {
		lgr.Info().Msg("Seeding disabled by configuration, skipping.")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.RegistrationRepository,
		lgr,
	)
	deps.ActivityService = appServices.NewActivityService(
		deps.Repos.ActivityRepository,
		deps.Repos.RegistrationRepository,
		lgr,
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.RegistrationRepository,
		deps.Repos.UserRepository,
		deps.Repos.ActivityRepository,
		lgr,
	)

	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.ActivityController = appControllers.NewActivityController(deps.ActivityService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.ActivityController,
		deps.RegistrationController,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
