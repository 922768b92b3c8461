package menurepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/dbschema"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/transaction"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

type MenuGormRepository struct {
	db *transaction.Database
}

var _ menu.Repository = (*MenuGormRepository)(nil)

func NewMenuGormRepository(db *transaction.Database) menu.Repository {
	return &MenuGormRepository{db}
}

// ListItems implements menu.Repository. Items come back in name order so
// catalog listings are stable across calls.
func (repo *MenuGormRepository) ListItems(ctx context.Context) ([]*menu.Item, error) {
	var models []*dbschema.MenuItem
	err := repo.db.GetTx(ctx).WithContext(ctx).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list menu items")
	}

	items := make([]*menu.Item, 0, len(models))
	for _, m := range models {
		item, err := m.EtoD()
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to decode menu item")
		}
		items = append(items, item)
	}
	return items, nil
}

// FindByName implements menu.Repository.
func (repo *MenuGormRepository) FindByName(ctx context.Context, name string) (*menu.Item, error) {
	var model dbschema.MenuItem
	err := repo.db.GetTx(ctx).WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "menu item not found", err, "a3b4c5d6-e7f8-4a9b-8c0d-1e2f3a4b5c6d")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find menu item by name")
	}

	item, err := model.EtoD()
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to decode menu item")
	}
	return item, nil
}

// Upsert implements menu.Repository. Items are keyed by name; seeding the same
// catalog twice updates in place instead of duplicating rows.
func (repo *MenuGormRepository) Upsert(ctx context.Context, item *menu.Item) error {
	model := dbschema.NewSchemaMenuItem(item)
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"ingredients", "allergens", "halal", "nutrition", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to upsert menu item")
	}
	item.ID = model.ID
	return nil
}
