package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/miuye256/restaurant-chatbot-backend/internal/config"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/catalog"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/crontab"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/repository"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/transaction"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/inference"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB      *gorm.DB
	Catalog *catalog.Cache
	Logger  zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	catalogCache *catalog.Cache,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:      db,
		Catalog: catalogCache,
		Logger:  logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Reasoning engine client
	inference.NewCompletionClient,
	inference.NewChatOptions,

	// Catalog snapshot cache
	catalog.NewCache,

	// Logger
	logger.GetLogger,

	// Crontab for catalog refresh
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
