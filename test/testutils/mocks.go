// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockCatalogSource provides a mock implementation of CatalogSource
type MockCatalogSource struct {
	mock.Mock
}

// FilterByCategory returns the summaries configured for category
func (m *MockCatalogSource) FilterByCategory(ctx context.Context, category string) ([]recipe.CatalogSummary, error) {
	args := m.Called(ctx, category)
	summaries, _ := args.Get(0).([]recipe.CatalogSummary)
	return summaries, args.Error(1)
}

// FilterByArea returns the summaries configured for area
func (m *MockCatalogSource) FilterByArea(ctx context.Context, area string) ([]recipe.CatalogSummary, error) {
	args := m.Called(ctx, area)
	summaries, _ := args.Get(0).([]recipe.CatalogSummary)
	return summaries, args.Error(1)
}

// Search returns the records configured for term
func (m *MockCatalogSource) Search(ctx context.Context, term string) ([]recipe.RawCatalogRecord, error) {
	args := m.Called(ctx, term)
	records, _ := args.Get(0).([]recipe.RawCatalogRecord)
	return records, args.Error(1)
}

// Lookup returns the record configured for id
func (m *MockCatalogSource) Lookup(ctx context.Context, id string) (*recipe.RawCatalogRecord, error) {
	args := m.Called(ctx, id)
	raw, _ := args.Get(0).(*recipe.RawCatalogRecord)
	return raw, args.Error(1)
}

// Random returns the next configured random record
func (m *MockCatalogSource) Random(ctx context.Context) (*recipe.RawCatalogRecord, error) {
	args := m.Called(ctx)
	raw, _ := args.Get(0).(*recipe.RawCatalogRecord)
	return raw, args.Error(1)
}

// MockCacheRepository provides an in-memory CacheRepository whose calls
// are also recorded on the embedded mock. Expectations are optional; when
// none are set the map behaviour is used.
type MockCacheRepository struct {
	mock.Mock
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMockCacheRepository creates a new mock cache repository
func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) expects(method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}

// Get returns the stored value or outbound.ErrCacheMiss
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if m.expects("Get") {
		args := m.Called(ctx, key)
		value, _ := args.Get(0).([]byte)
		return value, args.Error(1)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, outbound.ErrCacheMiss
	}
	return value, nil
}

// Set stores a value; the ttl is ignored
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.expects("Set") {
		return m.Called(ctx, key, value, ttl).Error(0)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes a value
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Exists reports whether a value is stored
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

// Keys returns the stored keys
func (m *MockCacheRepository) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// MockSavedRecipeRepository provides a mock implementation of SavedRecipeRepository
type MockSavedRecipeRepository struct {
	mock.Mock
}

// Add records the call
func (m *MockSavedRecipeRepository) Add(ctx context.Context, owner string, r *recipe.Recipe) (bool, error) {
	args := m.Called(ctx, owner, r)
	return args.Bool(0), args.Error(1)
}

// Remove records the call
func (m *MockSavedRecipeRepository) Remove(ctx context.Context, owner, recipeID string) error {
	return m.Called(ctx, owner, recipeID).Error(0)
}

// Exists records the call
func (m *MockSavedRecipeRepository) Exists(ctx context.Context, owner, recipeID string) (bool, error) {
	args := m.Called(ctx, owner, recipeID)
	return args.Bool(0), args.Error(1)
}

// List records the call
func (m *MockSavedRecipeRepository) List(ctx context.Context, owner string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, owner)
	recipes, _ := args.Get(0).([]*recipe.Recipe)
	return recipes, args.Error(1)
}

// Clear records the call
func (m *MockSavedRecipeRepository) Clear(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}

// MockProfileRepository provides a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// Save records the call
func (m *MockProfileRepository) Save(ctx context.Context, owner string, p preference.Profile) error {
	return m.Called(ctx, owner, p).Error(0)
}

// Find records the call
func (m *MockProfileRepository) Find(ctx context.Context, owner string) (*preference.Profile, error) {
	args := m.Called(ctx, owner)
	p, _ := args.Get(0).(*preference.Profile)
	return p, args.Error(1)
}

// Delete records the call
func (m *MockProfileRepository) Delete(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}

// RecordingMetrics is a MatchMetrics that keeps what it was given
type RecordingMetrics struct {
	mu          sync.Mutex
	Outcomes    []string
	Scores      []int
	CacheHits   int
	CacheMisses int
}

// RecordMatchRequest keeps the outcome
func (r *RecordingMetrics) RecordMatchRequest(outcome string, candidates int, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outcomes = append(r.Outcomes, outcome)
}

// RecordMatchScore keeps the score
func (r *RecordingMetrics) RecordMatchScore(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Scores = append(r.Scores, score)
}

// RecordCacheLookup counts hits and misses
func (r *RecordingMetrics) RecordCacheLookup(cache string, hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hit {
		r.CacheHits++
	} else {
		r.CacheMisses++
	}
}
