package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"pdfqa-backend/internal/documents"
	"pdfqa-backend/internal/extract"
	"pdfqa-backend/internal/llm"
	"pdfqa-backend/internal/llm/anthropic"
	"pdfqa-backend/internal/questions"
	"pdfqa-backend/internal/shared/config"
	"pdfqa-backend/internal/shared/server"
	"pdfqa-backend/internal/shared/storage/db"
	"pdfqa-backend/internal/shared/storage/files"
)

// App holds shared dependencies, exported so tests can reach them.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sqlx.DB
	Files            *files.Dir
	LLM              llm.Client
	DocumentsRepo    documents.Repo
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
	QuestionsService *questions.Service
	QuestionsHandler *questions.Handler
}

// Build prepares all dependencies and wires the router. The LLM client is
// constructed here and handed to the questions service as an explicit
// dependency.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := files.NewDir(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	database, repo, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := buildLLM(cfg)

	docSvc := &documents.Service{
		Repo:      repo,
		Files:     store,
		Extractor: extract.PDF{},
	}
	docHandler := documents.NewHandler(docSvc)

	askSvc := &questions.Service{
		DocRepo: repo,
		LLM:     client,
	}
	askHandler := questions.NewHandler(askSvc)

	app := &App{
		Config:           cfg,
		DB:               database,
		Files:            store,
		LLM:              client,
		DocumentsRepo:    repo,
		DocumentsService: docSvc,
		DocumentsHandler: docHandler,
		QuestionsService: askSvc,
		QuestionsHandler: askHandler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		DocumentsHandler: docHandler,
		QuestionsHandler: askHandler,
	})

	return app, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// buildRepo opens the configured SQLite database. The in-memory repository is
// used only when DB_PATH is explicitly empty; a database that fails to open or
// migrate is a startup error, never a silent downgrade to ephemeral storage.
func buildRepo(ctx context.Context, cfg config.Config) (*sqlx.DB, documents.Repo, error) {
	if strings.TrimSpace(cfg.DBPath) == "" {
		log.Printf("bootstrap: DB_PATH empty; using in-memory repository")
		return nil, documents.NewMemoryRepo(), nil
	}

	database, err := db.Connect(ctx, cfg.DBPath, db.DefaultOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.DBResetOnStart {
		if err := db.Reset(ctx, database); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("reset database: %w", err)
		}
	}
	if err := db.RunMigrations(ctx, database); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return database, &documents.SQLiteRepo{DB: database}, nil
}

func buildLLM(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
		log.Printf("bootstrap: ANTHROPIC_API_KEY empty; answer generation disabled")
		return nil
	}
	client, err := anthropic.NewClient(
		cfg.AnthropicAPIKey,
		cfg.AnthropicModel,
		cfg.AnswerMaxTokens,
		time.Duration(cfg.UpstreamTimeoutSecs)*time.Second,
	)
	if err != nil {
		log.Printf("bootstrap: anthropic client unavailable: %v", err)
		return nil
	}
	return client
}
