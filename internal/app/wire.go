//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/wire"

	"clinic-scribe/internal/api/server"
	v1routes "clinic-scribe/internal/api/v1/routes"
	"clinic-scribe/internal/api/v1/services"
	"clinic-scribe/internal/app/api"
	"clinic-scribe/internal/app/api/openai"
	"clinic-scribe/internal/app/api/openai/chat"
	"clinic-scribe/internal/app/api/provider"
	"clinic-scribe/internal/app/cache"
	"clinic-scribe/internal/app/repository"
	"clinic-scribe/internal/app/repository/pg"
	"clinic-scribe/internal/app/repository/sqlite"
	"clinic-scribe/internal/config"
)

func provideLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// provideClinicDAO selects the database backend via DB_BACKEND. The default
// is a local sqlite file under data/; set DB_BACKEND=postgres and
// DATABASE_URL for a shared database.
func provideClinicDAO() repository.ClinicDAO {
	if os.Getenv("DB_BACKEND") == "postgres" {
		connStr := os.Getenv("DATABASE_URL")
		if connStr == "" {
			log.Fatal("DATABASE_URL environment variable must be set when DB_BACKEND=postgres")
		}
		dao, err := pg.NewPostgresDB(connStr)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v\n", err)
		}
		return dao
	}

	projectRoot, err := config.GetProjectRoot()
	if err != nil {
		log.Fatalf("Failed to get project root: %v\n", err)
	}

	dbPath := filepath.Join(projectRoot, "data", "clinic.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v\n", err)
	}

	dao, err := sqlite.NewSQLiteDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to open sqlite database: %v\n", err)
	}
	return dao
}

// provideTranscriber builds the configured transcription provider. A nil
// transcriber is allowed; the transcription endpoint reports 503 until one
// is configured.
func provideTranscriber(logger *slog.Logger) api.Transcriber {
	cfgPath := "configs/providers.yaml"
	if projectRoot, err := config.GetProjectRoot(); err == nil {
		cfgPath = filepath.Join(projectRoot, "configs", "providers.yaml")
	}

	cfg, err := provider.LoadConfig(cfgPath)
	if err != nil {
		logger.Warn("Invalid provider configuration, transcription disabled", "error", err)
		return nil
	}

	transcriber, err := provider.Build(cfg)
	if err != nil {
		logger.Warn("Transcription provider unavailable", "provider", cfg.DefaultProvider, "error", err)
		return nil
	}
	return transcriber
}

// provideSummarizer builds the chat completion client used for encounter
// summaries. Returns nil when no API key is configured.
func provideSummarizer(logger *slog.Logger) chat.Summarizer {
	key, err := config.GetOpenAIKey()
	if err != nil {
		log.Fatalf("Invalid OPENAI_API_KEY: %v\n", err)
	}
	if key == "" {
		logger.Warn("OPENAI_API_KEY not set, encounter summaries disabled")
		return nil
	}
	return chat.NewClient(openai.GetClient(), chat.DefaultModel)
}

func provideCache(logger *slog.Logger) *cache.Cache {
	c, err := cache.NewFromEnv(context.Background())
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
		return nil
	}
	return c
}

func provideStorage(logger *slog.Logger) services.StorageService {
	storage, err := services.NewMinioStorageServiceFromEnv()
	if err != nil {
		logger.Warn("Object storage unavailable, recordings will not be archived", "error", err)
		return nil
	}
	return storage
}

func provideServiceContainer(
	dao repository.ClinicDAO,
	transcriber api.Transcriber,
	summarizer chat.Summarizer,
	c *cache.Cache,
	storage services.StorageService,
	cfg config.ServerConfig,
	logger *slog.Logger,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		PatientService:       services.NewPatientService(dao),
		AppointmentService:   services.NewAppointmentService(dao, c, cfg.ClinicOffset, logger),
		TranscriptionService: services.NewTranscriptionService(transcriber, dao, storage, logger),
		EncounterService:     services.NewEncounterService(summarizer, dao, logger),
		EmailService:         services.NewLogEmailService(logger),
	}
}

// InitializeServer assembles the API server with all of its dependencies.
func InitializeServer() *server.Server {
	wire.Build(
		provideLogger,
		provideClinicDAO,
		provideTranscriber,
		provideSummarizer,
		provideCache,
		provideStorage,
		provideServiceContainer,
		config.GetServerConfig,
		server.NewServer,
	)
	return &server.Server{}
}

// InitializeDAO builds just the database layer for CLI commands that do not
// need the full server.
func InitializeDAO() repository.ClinicDAO {
	wire.Build(provideClinicDAO)
	return nil
}
