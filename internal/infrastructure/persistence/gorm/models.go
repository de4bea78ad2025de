// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
)

// SavedRecipeModel represents the GORM model for a recipe saved by an owner
type SavedRecipeModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	Owner    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_saved_owner_recipe;index:idx_saved_owner_position,priority:1"`
	RecipeID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_saved_owner_recipe"`
	// Position orders an owner's saved recipes by insertion
	Position int64 `gorm:"not null;index:idx_saved_owner_position,priority:2"`

	// Denormalized for listing without decoding the payload
	Name     string `gorm:"type:varchar(255)"`
	Category string `gorm:"type:varchar(100)"`
	Area     string `gorm:"type:varchar(100)"`

	Payload   RecipePayload `gorm:"type:json;not null"`
	CreatedAt time.Time
}

// ProfileModel represents the GORM model for an owner's last quiz answers
type ProfileModel struct {
	Owner     string `gorm:"type:varchar(128);primaryKey"`
	Budget    string `gorm:"type:varchar(20);not null"`
	Dietary   string `gorm:"type:varchar(20);not null"`
	Skill     string `gorm:"type:varchar(20);not null"`
	Time      string `gorm:"type:varchar(20);not null"`
	Cuisine   string `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipePayload stores a full recipe as a JSON column
type RecipePayload recipe.Recipe

// Scan implements the sql.Scanner interface
func (p *RecipePayload) Scan(value interface{}) error {
	if value == nil {
		*p = RecipePayload{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*recipe.Recipe)(p))
	case string:
		return json.Unmarshal([]byte(v), (*recipe.Recipe)(p))
	default:
		return fmt.Errorf("cannot scan %T into RecipePayload", value)
	}
}

// Value implements the driver.Valuer interface
func (p RecipePayload) Value() (driver.Value, error) {
	data, err := json.Marshal(recipe.Recipe(p))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// BeforeCreate hook for SavedRecipeModel
func (s *SavedRecipeModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (SavedRecipeModel) TableName() string {
	return "saved_recipes"
}

func (ProfileModel) TableName() string {
	return "preference_profiles"
}

// Models lists every model for auto-migration
func Models() []interface{} {
	return []interface{}{
		&SavedRecipeModel{},
		&ProfileModel{},
	}
}

// Migrate creates or updates the tables for every model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
