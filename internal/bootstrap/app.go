package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/company"
	"kyc-backend/internal/files"
	"kyc-backend/internal/llm"
	"kyc-backend/internal/llm/gemini"
	"kyc-backend/internal/shared/config"
	"kyc-backend/internal/shared/server"
	"kyc-backend/internal/shared/storage/db"
	"kyc-backend/internal/shared/storage/object"
	localstore "kyc-backend/internal/shared/storage/object/local"
	s3store "kyc-backend/internal/shared/storage/object/s3"
	"kyc-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Summarizer     llm.Summarizer
	UsersRepo      users.Repo
	FilesRepo      files.Repo
	CompanyRepo    company.Repo
	UsersService   *users.Service
	CompanyService *company.Service
	UsersHandler   *users.Handler
	CompanyHandler *company.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	summarizer, err := buildSummarizer(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Store:      store,
		Summarizer: summarizer,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		UsersHandler:   app.UsersHandler,
		CompanyHandler: app.CompanyHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
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

func buildSummarizer(cfg config.Config) (llm.Summarizer, error) {
	if cfg.LLMProvider != "gemini" || strings.TrimSpace(cfg.GoogleAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: no LLM configured; summarization disabled")
			return llm.Placeholder{}, nil
		}
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	return gemini.NewClient(cfg.GoogleAPIKey, cfg.LLMModel)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.FilesRepo = &files.PGRepo{DB: app.DB}
		app.CompanyRepo = &company.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.FilesRepo = files.NewMemoryRepo()
		app.CompanyRepo = company.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.CompanyService = &company.Service{
		Store:      app.Store,
		Files:      app.FilesRepo,
		Repo:       app.CompanyRepo,
		Summarizer: app.Summarizer,
	}

	app.UsersHandler = users.NewHandler(app.UsersService, app.Config.CookieSecure)
	app.CompanyHandler = company.NewHandler(app.CompanyService)
}
