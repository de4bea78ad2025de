// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
)

// SavedRecipeToModel converts a domain recipe saved by owner to a GORM model
func SavedRecipeToModel(owner string, r *recipe.Recipe, position int64) *SavedRecipeModel {
	return &SavedRecipeModel{
		Owner:    owner,
		RecipeID: r.ID,
		Position: position,
		Name:     r.Name,
		Category: r.Category,
		Area:     r.Area,
		Payload:  RecipePayload(*r.Clone()),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *SavedRecipeModel) *recipe.Recipe {
	r := recipe.Recipe(m.Payload)
	return &r
}

// ProfileToModel converts a domain profile to a GORM model
func ProfileToModel(owner string, p preference.Profile) *ProfileModel {
	return &ProfileModel{
		Owner:   owner,
		Budget:  string(p.Budget),
		Dietary: string(p.Dietary),
		Skill:   string(p.Skill),
		Time:    string(p.Time),
		Cuisine: p.Cuisine,
	}
}

// ModelToProfile converts a GORM model to a domain profile
func ModelToProfile(m *ProfileModel) *preference.Profile {
	return &preference.Profile{
		Budget:  preference.Budget(m.Budget),
		Dietary: preference.Dietary(m.Dietary),
		Skill:   preference.Skill(m.Skill),
		Time:    preference.Time(m.Time),
		Cuisine: m.Cuisine,
	}
}
