package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/inbound"
)

// MockMatchService provides a mock implementation of inbound.MatchService
type MockMatchService struct {
	mock.Mock
}

// FindMatches records the call
func (m *MockMatchService) FindMatches(ctx context.Context, cmd inbound.FindMatchesCommand) (*inbound.MatchList, error) {
	args := m.Called(ctx, cmd)
	list, _ := args.Get(0).(*inbound.MatchList)
	return list, args.Error(1)
}

// GetRecipe records the call
func (m *MockMatchService) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recipe.Recipe)
	return r, args.Error(1)
}

// SearchRecipes records the call
func (m *MockMatchService) SearchRecipes(ctx context.Context, term string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, term)
	recipes, _ := args.Get(0).([]*recipe.Recipe)
	return recipes, args.Error(1)
}

// MockSavedService provides a mock implementation of inbound.SavedService
type MockSavedService struct {
	mock.Mock
}

// SaveRecipe records the call
func (m *MockSavedService) SaveRecipe(ctx context.Context, owner string, r *recipe.Recipe) (bool, error) {
	args := m.Called(ctx, owner, r)
	return args.Bool(0), args.Error(1)
}

// RemoveRecipe records the call
func (m *MockSavedService) RemoveRecipe(ctx context.Context, owner, recipeID string) error {
	return m.Called(ctx, owner, recipeID).Error(0)
}

// IsSaved records the call
func (m *MockSavedService) IsSaved(ctx context.Context, owner, recipeID string) (bool, error) {
	args := m.Called(ctx, owner, recipeID)
	return args.Bool(0), args.Error(1)
}

// ListSaved records the call
func (m *MockSavedService) ListSaved(ctx context.Context, owner string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, owner)
	recipes, _ := args.Get(0).([]*recipe.Recipe)
	return recipes, args.Error(1)
}

// ClearSaved records the call
func (m *MockSavedService) ClearSaved(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}

// SaveProfile records the call
func (m *MockSavedService) SaveProfile(ctx context.Context, owner string, p preference.Profile) error {
	return m.Called(ctx, owner, p).Error(0)
}

// GetProfile records the call
func (m *MockSavedService) GetProfile(ctx context.Context, owner string) (*preference.Profile, error) {
	args := m.Called(ctx, owner)
	p, _ := args.Get(0).(*preference.Profile)
	return p, args.Error(1)
}

// ClearProfile records the call
func (m *MockSavedService) ClearProfile(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}
