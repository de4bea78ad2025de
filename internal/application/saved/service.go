// Package saved provides the application layer for an owner's saved recipes
// and remembered quiz answers
package saved

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/inbound"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
	"github.com/alchemorsel/matchmaker/pkg/errors"
)

// DefaultOwner is used when a caller does not identify itself
const DefaultOwner = "default"

// SavedService implements the saved recipe and profile use cases
type SavedService struct {
	recipes  outbound.SavedRecipeRepository
	profiles outbound.ProfileRepository
	logger   *zap.Logger
}

// NewSavedService creates a new saved service
func NewSavedService(
	recipes outbound.SavedRecipeRepository,
	profiles outbound.ProfileRepository,
	logger *zap.Logger,
) inbound.SavedService {
	return &SavedService{
		recipes:  recipes,
		profiles: profiles,
		logger:   logger.Named("saved-service"),
	}
}

// SaveRecipe stores r for owner; it reports false when r was already saved
func (s *SavedService) SaveRecipe(ctx context.Context, owner string, r *recipe.Recipe) (bool, error) {
	if r == nil || strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.Name) == "" {
		return false, errors.NewValidationError("recipe id and name are required")
	}

	added, err := s.recipes.Add(ctx, ownerOrDefault(owner), r)
	if err != nil {
		return false, errors.NewDatabaseError("save recipe", err)
	}

	s.logger.Info("Recipe saved",
		zap.String("owner", ownerOrDefault(owner)),
		zap.String("recipe_id", r.ID),
		zap.Bool("added", added),
	)
	return added, nil
}

// RemoveRecipe deletes a saved recipe; removing an unsaved id is not an error
func (s *SavedService) RemoveRecipe(ctx context.Context, owner, recipeID string) error {
	if err := s.recipes.Remove(ctx, ownerOrDefault(owner), recipeID); err != nil {
		return errors.NewDatabaseError("remove saved recipe", err)
	}
	return nil
}

// IsSaved reports whether owner has saved recipeID
func (s *SavedService) IsSaved(ctx context.Context, owner, recipeID string) (bool, error) {
	exists, err := s.recipes.Exists(ctx, ownerOrDefault(owner), recipeID)
	if err != nil {
		return false, errors.NewDatabaseError("check saved recipe", err)
	}
	return exists, nil
}

// ListSaved returns owner's saved recipes in the order they were saved
func (s *SavedService) ListSaved(ctx context.Context, owner string) ([]*recipe.Recipe, error) {
	recipes, err := s.recipes.List(ctx, ownerOrDefault(owner))
	if err != nil {
		return nil, errors.NewDatabaseError("list saved recipes", err)
	}
	if recipes == nil {
		recipes = []*recipe.Recipe{}
	}
	return recipes, nil
}

// ClearSaved removes every saved recipe of owner
func (s *SavedService) ClearSaved(ctx context.Context, owner string) error {
	if err := s.recipes.Clear(ctx, ownerOrDefault(owner)); err != nil {
		return errors.NewDatabaseError("clear saved recipes", err)
	}
	s.logger.Info("Saved recipes cleared", zap.String("owner", ownerOrDefault(owner)))
	return nil
}

// SaveProfile remembers owner's quiz answers
func (s *SavedService) SaveProfile(ctx context.Context, owner string, p preference.Profile) error {
	if err := p.Validate(); err != nil {
		return errors.NewInvalidProfileError(err)
	}
	if err := s.profiles.Save(ctx, ownerOrDefault(owner), p); err != nil {
		return errors.NewDatabaseError("save profile", err)
	}
	return nil
}

// GetProfile returns owner's remembered answers, or nil when there are none
func (s *SavedService) GetProfile(ctx context.Context, owner string) (*preference.Profile, error) {
	p, err := s.profiles.Find(ctx, ownerOrDefault(owner))
	if err != nil {
		return nil, errors.NewDatabaseError("load profile", err)
	}
	return p, nil
}

// ClearProfile forgets owner's quiz answers
func (s *SavedService) ClearProfile(ctx context.Context, owner string) error {
	if err := s.profiles.Delete(ctx, ownerOrDefault(owner)); err != nil {
		return errors.NewDatabaseError("clear profile", err)
	}
	return nil
}

func ownerOrDefault(owner string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return DefaultOwner
	}
	return owner
}
