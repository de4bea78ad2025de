package matching_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	appmatching "github.com/alchemorsel/matchmaker/internal/application/matching"
	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/inbound"
	"github.com/alchemorsel/matchmaker/pkg/errors"
	"github.com/alchemorsel/matchmaker/test/testutils"
)

type MatchServiceTestSuite struct {
	suite.Suite
	catalog *testutils.MockCatalogSource
	cache   *testutils.MockCacheRepository
	metrics *testutils.RecordingMetrics
	service inbound.MatchService
	ctx     context.Context
}

func (s *MatchServiceTestSuite) SetupTest() {
	s.catalog = new(testutils.MockCatalogSource)
	s.cache = testutils.NewMockCacheRepository()
	s.metrics = &testutils.RecordingMetrics{}
	s.ctx = context.Background()
	s.service = appmatching.NewMatchService(s.catalog, s.cache, s.metrics, appmatching.Config{
		MaxCandidates:       15,
		RandomFallbackCount: 3,
		LookupConcurrency:   4,
		DefaultLimit:        8,
		MaxLimit:            20,
		CacheTTL:            time.Minute,
	}, zap.NewNop())
}

func (s *MatchServiceTestSuite) TearDownTest() {
	s.catalog.AssertExpectations(s.T())
}

// record builds a catalog record with the given shape.
func record(id string, ingredients, steps int) *recipe.RawCatalogRecord {
	return testutils.NewSeededRawRecordBuilder(1).
		WithID(id).
		WithName("Recipe " + id).
		WithIngredientCount(ingredients).
		WithStepCount(steps).
		BuildPtr()
}

func summary(id string) recipe.CatalogSummary {
	return recipe.CatalogSummary{ID: id, Name: "Recipe " + id}
}

func (s *MatchServiceTestSuite) TestFindMatches_BroadSearchWhenNoRestrictions() {
	// Arrange
	s.catalog.On("Search", mock.Anything, "").Return([]recipe.RawCatalogRecord{
		*record("slow", 12, 11),
		*record("quick", 5, 4),
		*record("medium", 7, 4),
	}, nil)

	// Act
	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: testutils.BeginnerProfile()})

	// Assert
	s.Require().NoError(err)
	s.Equal("search=", list.Query)
	s.Equal(3, list.Candidates)
	s.Require().Len(list.Matches, 3)
	s.Equal("quick", list.Matches[0].ID)
	s.Equal(90, list.Matches[0].MatchScore)
	s.Equal("Best Match", list.Matches[0].Badge())
	s.Equal("medium", list.Matches[1].ID)
	s.Equal("slow", list.Matches[2].ID)
	s.Equal([]string{"ok"}, s.metrics.Outcomes)
	s.Len(s.metrics.Scores, 3)
}

func (s *MatchServiceTestSuite) TestFindMatches_VegetarianUsesCategoryAndKeepsSummaryOrder() {
	p := testutils.BeginnerProfile()
	p.Dietary = preference.DietaryVegetarian
	p.Cuisine = "Italian"

	s.catalog.On("FilterByCategory", mock.Anything, "Vegetarian").
		Return([]recipe.CatalogSummary{summary("1"), summary("2"), summary("3")}, nil)
	s.catalog.On("Lookup", mock.Anything, "1").Return(record("1", 5, 4), nil)
	s.catalog.On("Lookup", mock.Anything, "2").Return(record("2", 5, 4), nil)
	s.catalog.On("Lookup", mock.Anything, "3").Return(record("3", 5, 4), nil)

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: p})

	s.Require().NoError(err)
	s.Equal("category=Vegetarian", list.Query)
	s.Require().Len(list.Matches, 3)
	// Equal scores keep the catalog's order.
	s.Equal("1", list.Matches[0].ID)
	s.Equal("2", list.Matches[1].ID)
	s.Equal("3", list.Matches[2].ID)
	s.Contains(list.Matches[0].MatchReasons, "25kr fits your budget")
}

func (s *MatchServiceTestSuite) TestFindMatches_VeganUsesVeganCategory() {
	p := testutils.BeginnerProfile()
	p.Dietary = preference.DietaryVegan

	s.catalog.On("FilterByCategory", mock.Anything, "Vegan").
		Return([]recipe.CatalogSummary{summary("v")}, nil)
	s.catalog.On("Lookup", mock.Anything, "v").Return(record("v", 3, 2), nil)

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: p})

	s.Require().NoError(err)
	s.Len(list.Matches, 1)
}

func (s *MatchServiceTestSuite) TestFindMatches_CuisineUsesAreaFilter() {
	p := testutils.BeginnerProfile()
	p.Cuisine = "Indian"

	s.catalog.On("FilterByArea", mock.Anything, "Indian").
		Return([]recipe.CatalogSummary{summary("i")}, nil)
	s.catalog.On("Lookup", mock.Anything, "i").Return(record("i", 3, 2), nil)

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: p})

	s.Require().NoError(err)
	s.Equal("area=Indian", list.Query)
	s.Len(list.Matches, 1)
}

func (s *MatchServiceTestSuite) TestFindMatches_TruncatesSummariesToMaxCandidates() {
	p := testutils.BeginnerProfile()
	p.Cuisine = "Italian"

	summaries := make([]recipe.CatalogSummary, 20)
	for i := range summaries {
		id := fmt.Sprintf("%02d", i)
		summaries[i] = summary(id)
		if i < 15 {
			s.catalog.On("Lookup", mock.Anything, id).Return(record(id, 5, 4), nil).Once()
		}
	}
	s.catalog.On("FilterByArea", mock.Anything, "Italian").Return(summaries, nil)

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: p, Limit: 20})

	s.Require().NoError(err)
	s.Equal(15, list.Candidates)
	s.Len(list.Matches, 15)
	s.catalog.AssertNumberOfCalls(s.T(), "Lookup", 15)
}

func (s *MatchServiceTestSuite) TestFindMatches_SkipsFailedMissingAndMalformedLookups() {
	p := testutils.BeginnerProfile()
	p.Cuisine = "Chinese"

	s.catalog.On("FilterByArea", mock.Anything, "Chinese").Return([]recipe.CatalogSummary{
		summary("ok"), summary("boom"), summary("gone"), summary("bad"),
	}, nil)
	s.catalog.On("Lookup", mock.Anything, "ok").Return(record("ok", 5, 4), nil)
	s.catalog.On("Lookup", mock.Anything, "boom").Return(nil, fmt.Errorf("connection reset"))
	s.catalog.On("Lookup", mock.Anything, "gone").Return(nil, nil)
	malformed := record("bad", 5, 4)
	malformed.Name = ""
	s.catalog.On("Lookup", mock.Anything, "bad").Return(malformed, nil)

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: p})

	s.Require().NoError(err)
	s.Equal(1, list.Candidates)
	s.Require().Len(list.Matches, 1)
	s.Equal("ok", list.Matches[0].ID)
}

func (s *MatchServiceTestSuite) TestFindMatches_RandomFallbackWhenQueryEmpty() {
	p := testutils.BeginnerProfile()
	p.Cuisine = "Atlantean"

	s.catalog.On("FilterByArea", mock.Anything, "Atlantean").Return(nil, nil)
	s.catalog.On("Random", mock.Anything).Return(record("r1", 5, 4), nil).Once()
	s.catalog.On("Random", mock.Anything).Return(record("r1", 5, 4), nil).Once()
	s.catalog.On("Random", mock.Anything).Return(record("r2", 5, 4), nil).Once()

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: p})

	s.Require().NoError(err)
	s.Equal(2, list.Candidates, "repeated random picks collapse")
}

func (s *MatchServiceTestSuite) TestFindMatches_CachesCandidatesPerQuery() {
	s.catalog.On("Search", mock.Anything, "").
		Return([]recipe.RawCatalogRecord{*record("c1", 5, 4)}, nil).Once()

	first, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: testutils.BeginnerProfile()})
	s.Require().NoError(err)
	second, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: testutils.BeginnerProfile()})
	s.Require().NoError(err)

	s.Equal(first.Matches, second.Matches)
	s.Equal(1, s.metrics.CacheHits)
	s.Contains(s.cache.Keys(), "candidates:search:")
}

func (s *MatchServiceTestSuite) TestFindMatches_LimitDefaultsAndCaps() {
	records := make([]recipe.RawCatalogRecord, 12)
	for i := range records {
		records[i] = *record(fmt.Sprintf("r%d", i), 5, 4)
	}
	s.catalog.On("Search", mock.Anything, "").Return(records, nil)

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: testutils.BeginnerProfile()})
	s.Require().NoError(err)
	s.Len(list.Matches, 8)

	list, err = s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: testutils.BeginnerProfile(), Limit: 3})
	s.Require().NoError(err)
	s.Len(list.Matches, 3)
}

func (s *MatchServiceTestSuite) TestFindMatches_InvalidProfile() {
	p := testutils.BeginnerProfile()
	p.Time = "forever"

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: p})

	s.Nil(list)
	s.True(errors.Is(err, errors.CodeInvalidProfile))
	s.ErrorIs(err, preference.ErrInvalidProfile)
	s.Equal([]string{"invalid_profile"}, s.metrics.Outcomes)
}

func (s *MatchServiceTestSuite) TestFindMatches_CatalogFailure() {
	s.catalog.On("Search", mock.Anything, "").Return(nil, fmt.Errorf("catalog down"))

	list, err := s.service.FindMatches(s.ctx, inbound.FindMatchesCommand{Profile: testutils.BeginnerProfile()})

	s.Nil(list)
	s.True(errors.Is(err, errors.CodeExternalServiceError))
	s.Equal([]string{"catalog_error"}, s.metrics.Outcomes)
}

func (s *MatchServiceTestSuite) TestGetRecipe() {
	s.catalog.On("Lookup", mock.Anything, "52772").Return(record("52772", 5, 4), nil).Once()

	r, err := s.service.GetRecipe(s.ctx, "52772")
	s.Require().NoError(err)
	s.True(r.IsEstimated())
	s.Equal(25, r.Cost())

	// Second read is served from cache.
	again, err := s.service.GetRecipe(s.ctx, "52772")
	s.Require().NoError(err)
	s.Equal(r, again)
}

func (s *MatchServiceTestSuite) TestGetRecipe_NotFound() {
	s.catalog.On("Lookup", mock.Anything, "0").Return(nil, nil)

	_, err := s.service.GetRecipe(s.ctx, "0")

	s.True(errors.Is(err, errors.CodeRecipeNotFound))
}

func (s *MatchServiceTestSuite) TestGetRecipe_Malformed() {
	bad := record("1", 5, 4)
	bad.Name = "  "
	s.catalog.On("Lookup", mock.Anything, "1").Return(bad, nil)

	_, err := s.service.GetRecipe(s.ctx, "1")

	s.True(errors.Is(err, errors.CodeMalformedRecord))
	s.ErrorIs(err, recipe.ErrMalformedRecord)
}

func (s *MatchServiceTestSuite) TestSearchRecipes() {
	s.catalog.On("Search", mock.Anything, "pie").Return([]recipe.RawCatalogRecord{
		*record("p1", 5, 4),
		{ID: "p2"},
	}, nil)

	recipes, err := s.service.SearchRecipes(s.ctx, "pie")

	s.Require().NoError(err)
	s.Require().Len(recipes, 1)
	s.Equal("p1", recipes[0].ID)
	s.True(recipes[0].IsEstimated())
}

func TestMatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MatchServiceTestSuite))
}
