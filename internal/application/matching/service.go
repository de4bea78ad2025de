// Package matching provides the application layer for recipe matching
// This implements the MatchService use cases defined in the inbound ports
package matching

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alchemorsel/matchmaker/internal/domain/matching"
	"github.com/alchemorsel/matchmaker/internal/domain/preference"
	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/inbound"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
	"github.com/alchemorsel/matchmaker/pkg/errors"
)

const tracerName = "github.com/alchemorsel/matchmaker/internal/application/matching"

// Config tunes candidate retrieval and result sizes
type Config struct {
	MaxCandidates       int
	RandomFallbackCount int
	LookupConcurrency   int
	DefaultLimit        int
	MaxLimit            int
	CacheTTL            time.Duration
}

// MatchService implements the matching use cases
type MatchService struct {
	catalog outbound.CatalogSource
	cache   outbound.CacheRepository
	metrics outbound.MatchMetrics
	tracer  trace.Tracer
	config  Config
	logger  *zap.Logger
}

// NewMatchService creates a new match service
func NewMatchService(
	catalog outbound.CatalogSource,
	cache outbound.CacheRepository,
	metrics outbound.MatchMetrics,
	config Config,
	logger *zap.Logger,
) inbound.MatchService {
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = matching.DefaultLimit
	}
	if config.MaxLimit < config.DefaultLimit {
		config.MaxLimit = config.DefaultLimit
	}
	if config.LookupConcurrency <= 0 {
		config.LookupConcurrency = 1
	}

	return &MatchService{
		catalog: catalog,
		cache:   cache,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		config:  config,
		logger:  logger.Named("match-service"),
	}
}

// FindMatches retrieves candidates for the profile from the catalog and
// returns them ranked
func (s *MatchService) FindMatches(ctx context.Context, cmd inbound.FindMatchesCommand) (*inbound.MatchList, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "MatchService.FindMatches")
	defer span.End()

	if err := cmd.Profile.Validate(); err != nil {
		s.metrics.RecordMatchRequest("invalid_profile", 0, time.Since(start))
		span.SetStatus(codes.Error, "invalid profile")
		return nil, errors.NewInvalidProfileError(err)
	}

	query := selectQuery(cmd.Profile)
	span.SetAttributes(attribute.String("match.query", query.String()))

	candidates, err := s.candidates(ctx, query)
	if err != nil {
		s.logger.Error("Failed to retrieve candidates",
			zap.String("query", query.String()),
			zap.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		s.metrics.RecordMatchRequest("catalog_error", 0, time.Since(start))
		return nil, errors.NewExternalServiceError("recipe catalog", err)
	}

	results, err := matching.Rank(candidates, cmd.Profile, s.limit(cmd.Limit))
	if err != nil {
		return nil, errors.NewInvalidProfileError(err)
	}
	for _, r := range results {
		s.metrics.RecordMatchScore(r.MatchScore)
	}

	outcome := "ok"
	if len(results) == 0 {
		outcome = "empty"
	}
	s.metrics.RecordMatchRequest(outcome, len(candidates), time.Since(start))
	span.SetAttributes(
		attribute.Int("match.candidates", len(candidates)),
		attribute.Int("match.results", len(results)),
	)

	s.logger.Info("Matches ranked",
		zap.String("query", query.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)),
	)

	return &inbound.MatchList{
		Matches:    results,
		Candidates: len(candidates),
		Query:      query.String(),
	}, nil
}

// GetRecipe returns one estimated recipe by catalog id
func (s *MatchService) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	ctx, span := s.tracer.Start(ctx, "MatchService.GetRecipe", trace.WithAttributes(attribute.String("recipe.id", id)))
	defer span.End()

	key := "recipe:" + id
	if cached, ok := s.cachedRecipes(ctx, key); ok && len(cached) == 1 {
		r := cached[0]
		r.Estimate()
		return r, nil
	}

	raw, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewExternalServiceError("recipe catalog", err)
	}
	if raw == nil {
		return nil, errors.NewRecipeNotFoundError(id)
	}

	r, err := recipe.Normalize(*raw)
	if err != nil {
		s.logger.Warn("Catalog returned malformed record", zap.String("recipe_id", id), zap.Error(err))
		return nil, errors.NewMalformedRecordError(err)
	}
	s.storeRecipes(ctx, key, []*recipe.Recipe{r})

	r.Estimate()
	return r, nil
}

// SearchRecipes returns estimated recipes whose name matches term
func (s *MatchService) SearchRecipes(ctx context.Context, term string) ([]*recipe.Recipe, error) {
	ctx, span := s.tracer.Start(ctx, "MatchService.SearchRecipes")
	defer span.End()

	records, err := s.catalog.Search(ctx, term)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewExternalServiceError("recipe catalog", err)
	}

	recipes := s.normalizeAll(records)
	for _, r := range recipes {
		r.Estimate()
	}
	return recipes, nil
}

func (s *MatchService) limit(requested int) int {
	switch {
	case requested <= 0:
		return s.config.DefaultLimit
	case requested > s.config.MaxLimit:
		return s.config.MaxLimit
	default:
		return requested
	}
}

// candidates returns normalized, unestimated candidates for q, from cache
// when possible.
func (s *MatchService) candidates(ctx context.Context, q candidateQuery) ([]*recipe.Recipe, error) {
	key := q.cacheKey()
	if cached, ok := s.cachedRecipes(ctx, key); ok {
		return cached, nil
	}

	records, err := s.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	recipes := s.normalizeAll(records)
	if len(recipes) > 0 {
		s.storeRecipes(ctx, key, recipes)
	}
	return recipes, nil
}

func (s *MatchService) fetch(ctx context.Context, q candidateQuery) ([]recipe.RawCatalogRecord, error) {
	if q.kind == querySearch {
		records, err := s.catalog.Search(ctx, q.value)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return s.randomRecords(ctx)
		}
		if len(records) > s.config.MaxCandidates {
			records = records[:s.config.MaxCandidates]
		}
		return records, nil
	}

	var (
		summaries []recipe.CatalogSummary
		err       error
	)
	if q.kind == queryCategory {
		summaries, err = s.catalog.FilterByCategory(ctx, q.value)
	} else {
		summaries, err = s.catalog.FilterByArea(ctx, q.value)
	}
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return s.randomRecords(ctx)
	}
	if len(summaries) > s.config.MaxCandidates {
		summaries = summaries[:s.config.MaxCandidates]
	}
	return s.lookupAll(ctx, summaries)
}

// lookupAll resolves summaries to full records, keeping summary order.
// Failed or missing lookups are skipped.
func (s *MatchService) lookupAll(ctx context.Context, summaries []recipe.CatalogSummary) ([]recipe.RawCatalogRecord, error) {
	slots := make([]*recipe.RawCatalogRecord, len(summaries))

	var g errgroup.Group
	g.SetLimit(s.config.LookupConcurrency)
	for i, summary := range summaries {
		i, summary := i, summary
		g.Go(func() error {
			raw, err := s.catalog.Lookup(ctx, summary.ID)
			if err != nil {
				s.logger.Warn("Skipping candidate after lookup failure",
					zap.String("recipe_id", summary.ID),
					zap.Error(err),
				)
				return nil
			}
			if raw == nil {
				s.logger.Debug("Skipping candidate missing from catalog", zap.String("recipe_id", summary.ID))
				return nil
			}
			slots[i] = raw
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return compact(slots), nil
}

// randomRecords samples RandomFallbackCount records, dropping failures and
// repeats.
func (s *MatchService) randomRecords(ctx context.Context) ([]recipe.RawCatalogRecord, error) {
	s.logger.Info("Catalog query returned nothing, sampling random recipes",
		zap.Int("count", s.config.RandomFallbackCount),
	)

	slots := make([]*recipe.RawCatalogRecord, s.config.RandomFallbackCount)

	var g errgroup.Group
	g.SetLimit(s.config.LookupConcurrency)
	for i := range slots {
		i := i
		g.Go(func() error {
			raw, err := s.catalog.Random(ctx)
			if err != nil {
				s.logger.Warn("Random recipe fetch failed", zap.Error(err))
				return nil
			}
			slots[i] = raw
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(slots))
	records := make([]recipe.RawCatalogRecord, 0, len(slots))
	for _, raw := range compact(slots) {
		if seen[raw.ID] {
			continue
		}
		seen[raw.ID] = true
		records = append(records, raw)
	}
	return records, nil
}

func (s *MatchService) normalizeAll(records []recipe.RawCatalogRecord) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(records))
	for _, raw := range records {
		r, err := recipe.Normalize(raw)
		if err != nil {
			s.logger.Warn("Skipping malformed catalog record", zap.String("recipe_id", raw.ID), zap.Error(err))
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes
}

func (s *MatchService) cachedRecipes(ctx context.Context, key string) ([]*recipe.Recipe, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.RecordCacheLookup("recipes", false)
		return nil, false
	}

	var recipes []*recipe.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		s.metrics.RecordCacheLookup("recipes", false)
		return nil, false
	}
	s.metrics.RecordCacheLookup("recipes", true)
	return recipes, true
}

func (s *MatchService) storeRecipes(ctx context.Context, key string, recipes []*recipe.Recipe) {
	data, err := json.Marshal(recipes)
	if err != nil {
		s.logger.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.config.CacheTTL); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func compact(slots []*recipe.RawCatalogRecord) []recipe.RawCatalogRecord {
	records := make([]recipe.RawCatalogRecord, 0, len(slots))
	for _, raw := range slots {
		if raw != nil {
			records = append(records, *raw)
		}
	}
	return records
}

type queryKind string

const (
	queryCategory queryKind = "category"
	queryArea     queryKind = "area"
	querySearch   queryKind = "search"
)

// candidateQuery is the single catalog query a profile maps to.
type candidateQuery struct {
	kind  queryKind
	value string
}

// selectQuery picks the query by priority: dietary restriction, then
// cuisine, then a broad search.
func selectQuery(p preference.Profile) candidateQuery {
	switch {
	case p.Dietary == preference.DietaryVegetarian:
		return candidateQuery{kind: queryCategory, value: "Vegetarian"}
	case p.Dietary == preference.DietaryVegan:
		return candidateQuery{kind: queryCategory, value: "Vegan"}
	case !p.AnyCuisine():
		return candidateQuery{kind: queryArea, value: p.Cuisine}
	default:
		return candidateQuery{kind: querySearch}
	}
}

func (q candidateQuery) String() string {
	return string(q.kind) + "=" + q.value
}

func (q candidateQuery) cacheKey() string {
	return "candidates:" + string(q.kind) + ":" + strings.ToLower(q.value)
}
