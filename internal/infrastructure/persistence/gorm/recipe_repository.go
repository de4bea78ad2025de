// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
)

// SavedRecipeRepository implements the saved recipe repository interface using GORM
type SavedRecipeRepository struct {
	db *gorm.DB
}

// NewSavedRecipeRepository creates a new saved recipe repository
func NewSavedRecipeRepository(db *gorm.DB) outbound.SavedRecipeRepository {
	return &SavedRecipeRepository{db: db}
}

// Add saves r for owner unless it is already saved
func (r *SavedRecipeRepository) Add(ctx context.Context, owner string, rec *recipe.Recipe) (bool, error) {
	added := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&SavedRecipeModel{}).
			Where("owner = ? AND recipe_id = ?", owner, rec.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		var last int64
		if err := tx.Model(&SavedRecipeModel{}).
			Where("owner = ?", owner).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error; err != nil {
			return err
		}

		if err := tx.Create(SavedRecipeToModel(owner, rec, last+1)).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return added, nil
}

// Remove deletes one saved recipe
func (r *SavedRecipeRepository) Remove(ctx context.Context, owner, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("owner = ? AND recipe_id = ?", owner, recipeID).
		Delete(&SavedRecipeModel{}).Error
}

// Exists reports whether owner saved recipeID
func (r *SavedRecipeRepository) Exists(ctx context.Context, owner, recipeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SavedRecipeModel{}).
		Where("owner = ? AND recipe_id = ?", owner, recipeID).
		Count(&count).Error
	return count > 0, err
}

// List returns owner's saved recipes, oldest first
func (r *SavedRecipeRepository) List(ctx context.Context, owner string) ([]*recipe.Recipe, error) {
	var models []SavedRecipeModel
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("position ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, nil
}

// Clear deletes all of owner's saved recipes
func (r *SavedRecipeRepository) Clear(ctx context.Context, owner string) error {
	return r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Delete(&SavedRecipeModel{}).Error
}
