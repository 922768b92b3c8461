package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"github.com/miuye256/restaurant-chatbot-backend/internal/config"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/catalog"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/logger"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

const (
	DefaultCatalogRefreshInterval = 10              // in minutes
	CronJobTimeout                = 1 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab    *crontab.Crontab
	catalog *catalog.Cache
}

func NewCrontab(catalogCache *catalog.Cache) *Crontab {
	return &Crontab{
		ctab:    crontab.New(),
		catalog: catalogCache,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// warm the catalog snapshot on server start
	c.refreshCatalog(ctx)

	cfg := config.GetGlobal()
	if cfg != nil && cfg.CatalogRefreshEnabled {
		interval := cfg.CatalogRefreshMinutes
		if interval <= 0 {
			interval = DefaultCatalogRefreshInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.refreshCatalog(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add catalog refresh job")
		}
		log.Info().Msgf("Catalog refresh scheduled: every %d minute(s)", interval)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) refreshCatalog(ctx context.Context) {
	log := logger.GetLogger()
	if err := c.catalog.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh catalog snapshot")
	}
}
