package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/miuye256/restaurant-chatbot-backend/internal/config"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/catalog"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/logger"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/idgen"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

type DataInitializer struct {
	menuRepo menu.Repository
	catalog  *catalog.Cache
}

// Install seeds the menu catalog from configuration and warms the snapshot
// cache. Items are upserted by name, so restarting against the same seed data
// updates in place.
func (d *DataInitializer) Install(ctx context.Context) error {
	cfg := config.GetGlobal()
	log := logger.GetLogger()

	if cfg.Seed == nil || len(cfg.Seed.Menu) == 0 {
		return nil
	}

	for i := range cfg.Seed.Menu {
		entry := cfg.Seed.Menu[i]
		item, err := d.seedItem(ctx, entry)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to seed menu item %q", entry.Name))
		}
		log.Debug().Str("name", item.Name).Msg("seeded menu item")
	}
	log.Info().Int("items", len(cfg.Seed.Menu)).Msg("menu catalog seeded")

	return d.catalog.Refresh(ctx)
}

func (d *DataInitializer) seedItem(ctx context.Context, entry config.SeedMenuItem) (*menu.Item, error) {
	publicID, err := idgen.GenerateSecureID("menu", 16)
	if err != nil {
		return nil, err
	}

	var nutrition menu.NutritionFacts
	if len(entry.Nutrition) > 0 {
		nutrition = make(menu.NutritionFacts, len(entry.Nutrition))
		for fact, raw := range entry.Nutrition {
			value, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("nutrition fact %q: %w", fact, err)
			}
			nutrition[fact] = value
		}
	}

	item := &menu.Item{
		PublicID:    publicID,
		Name:        entry.Name,
		Ingredients: entry.Ingredients,
		Allergens:   entry.Allergens,
		Halal:       entry.Halal,
		Nutrition:   nutrition,
	}
	if err := d.menuRepo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
