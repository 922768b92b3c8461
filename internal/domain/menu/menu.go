package menu

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// NutritionFacts maps a nutrient key (calories, protein, fat, carbohydrate,
// salt_equivalent) to its amount. Optional; an empty map means unknown.
type NutritionFacts map[string]decimal.Decimal

// Item is one catalog record. The name is the catalog key; PublicID is a
// secondary generated identifier. The pipeline only ever reads items; mutation
// happens through seeding and external administration.
type Item struct {
	ID          uint           `json:"-"`
	PublicID    string         `json:"id"`
	Name        string         `json:"name"`
	Ingredients string         `json:"ingredients"`
	Allergens   string         `json:"allergies"`
	Halal       bool           `json:"is_halal"`
	Nutrition   NutritionFacts `json:"nutrition,omitempty"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// Repository is the durable catalog store. Names are unique within the catalog.
type Repository interface {
	ListItems(ctx context.Context) ([]*Item, error)
	FindByName(ctx context.Context, name string) (*Item, error)
	Upsert(ctx context.Context, item *Item) error
}
