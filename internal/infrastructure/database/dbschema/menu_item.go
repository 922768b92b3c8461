package dbschema

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(MenuItem{})
}

// MenuItem represents the database schema for catalog items
type MenuItem struct {
	BaseModel
	PublicID    string            `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name        string            `gorm:"type:varchar(128);uniqueIndex;not null"`
	Ingredients string            `gorm:"type:text;not null"`
	Allergens   string            `gorm:"type:text;not null"`
	Halal       bool              `gorm:"not null;default:false"`
	Nutrition   datatypes.JSONMap `gorm:"type:jsonb"`
}

// NewSchemaMenuItem creates a database schema from a domain item
func NewSchemaMenuItem(item *menu.Item) *MenuItem {
	var nutrition datatypes.JSONMap
	if item.Nutrition != nil {
		nutrition = make(datatypes.JSONMap, len(item.Nutrition))
		for k, v := range item.Nutrition {
			// Stored as strings so precision survives the jsonb round-trip.
			nutrition[k] = v.String()
		}
	}
	return &MenuItem{
		BaseModel: BaseModel{
			ID:        item.ID,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		},
		PublicID:    item.PublicID,
		Name:        item.Name,
		Ingredients: item.Ingredients,
		Allergens:   item.Allergens,
		Halal:       item.Halal,
		Nutrition:   nutrition,
	}
}

// EtoD converts database schema to domain item (Entity to Domain)
func (m *MenuItem) EtoD() (*menu.Item, error) {
	var nutrition menu.NutritionFacts
	if m.Nutrition != nil {
		nutrition = make(menu.NutritionFacts, len(m.Nutrition))
		for k, raw := range m.Nutrition {
			var (
				value decimal.Decimal
				err   error
			)
			switch v := raw.(type) {
			case string:
				value, err = decimal.NewFromString(v)
			case float64:
				value = decimal.NewFromFloat(v)
			default:
				err = fmt.Errorf("unsupported nutrition value type %T", raw)
			}
			if err != nil {
				return nil, fmt.Errorf("nutrition fact %q: %w", k, err)
			}
			nutrition[k] = value
		}
	}
	return &menu.Item{
		ID:          m.ID,
		PublicID:    m.PublicID,
		Name:        m.Name,
		Ingredients: m.Ingredients,
		Allergens:   m.Allergens,
		Halal:       m.Halal,
		Nutrition:   nutrition,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
