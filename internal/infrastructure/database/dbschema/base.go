package dbschema

import "time"

// BaseModel carries the surrogate key and timestamps shared by all entities.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
