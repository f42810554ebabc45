package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/exports"
	"resume-tailor/internal/generation"
	"resume-tailor/internal/history"
	"resume-tailor/internal/llm/registry"
	"resume-tailor/internal/profiles"
	"resume-tailor/internal/settings"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/server"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/storage/db"
	"resume-tailor/internal/shared/storage/object"
	localstore "resume-tailor/internal/shared/storage/object/local"
	s3store "resume-tailor/internal/shared/storage/object/s3"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ProfilesService   *profiles.Service
	SettingsService   *settings.Service
	HistoryService    *history.Service
	GenerationService *generation.Service
	ExportService     *exports.Service
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		DB:                sqlDB,
		ProfileHandler:    profiles.NewHandler(app.ProfilesService),
		SettingsHandler:   settings.NewHandler(app.SettingsService),
		HistoryHandler:    history.NewHandler(app.HistoryService),
		GenerationHandler: generation.NewHandler(app.GenerationService, app.HistoryService),
		ExportHandler:     exports.NewHandler(app.ExportService),
		RateLimiter:       middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var (
		profileRepo  profiles.Repo
		settingsRepo settings.Repo
		historyRepo  history.Repo
	)
	if app.DB != nil {
		profileRepo = &profiles.PGRepo{DB: app.DB}
		settingsRepo = &settings.PGRepo{DB: app.DB}
		historyRepo = &history.PGRepo{DB: app.DB}
	} else {
		profileRepo = profiles.NewMemoryRepo()
		settingsRepo = settings.NewMemoryRepo()
		historyRepo = history.NewMemoryRepo()
	}

	app.ProfilesService = profiles.NewService(profileRepo)
	app.SettingsService = settings.NewService(settingsRepo)
	app.HistoryService = history.NewService(historyRepo)
	app.ExportService = &exports.Service{Resumes: app.HistoryService, Cache: app.Store}
	app.HistoryService.OnDelete = app.ExportService.Purge

	app.GenerationService = &generation.Service{
		Profiles:     app.ProfilesService,
		Settings:     app.SettingsService,
		Clients:      registry.FromConfig(app.Config),
		Timeout:      app.Config.GenerationTimeout,
		Achievements: app.Config.AchievementsPerRole,
	}
}
