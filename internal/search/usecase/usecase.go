package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/config"
	"github.com/rentiva/discovery-service/internal/analytics"
	"github.com/rentiva/discovery-service/internal/cache"
	"github.com/rentiva/discovery-service/internal/metrics"
	"github.com/rentiva/discovery-service/internal/model"
	"github.com/rentiva/discovery-service/internal/search"
	"github.com/rentiva/discovery-service/internal/search/dto"
	"github.com/rentiva/discovery-service/internal/search/predicate"
)

// ResultCache is the slice of the cache layer the engine needs.
type ResultCache interface {
	Get(ctx context.Context, key string) (*dto.SearchResult, bool)
	Set(ctx context.Context, key string, res *dto.SearchResult)
}

// EventProducer publishes search activity for downstream analytics.
type EventProducer interface {
	SearchPerformed(ctx context.Context, ev *analytics.SearchEvent) error
}

type searchUseCase struct {
	repo   search.Repository
	cache  ResultCache
	events EventProducer
	cfg    config.SearchConfig
	logger *zap.Logger
}

// NewSearchUseCase wires the discovery engine. cache and events may be nil;
// the engine then runs uncached and silent.
func NewSearchUseCase(repo search.Repository, c ResultCache, events EventProducer, cfg config.SearchConfig, log *zap.Logger) search.UseCase {
	return &searchUseCase{
		repo:   repo,
		cache:  c,
		events: events,
		cfg:    cfg,
		logger: log,
	}
}

func (uc *searchUseCase) Search(ctx context.Context, input *dto.SearchInput) (*dto.SearchResult, error) {
	start := time.Now()
	input.Normalize(uc.cfg.DefaultPageSize, uc.cfg.MaxPageSize)

	vec, err := uc.requestVector(input)
	if err != nil {
		return nil, err
	}

	key := ""
	if uc.cache != nil {
		if key, err = cache.Key(input); err == nil {
			if res, ok := uc.cache.Get(ctx, key); ok {
				metrics.CacheHit()
				return res, nil
			}
			metrics.CacheMiss()
		}
	}

	plan := predicate.Build(input)

	var (
		total    int
		relaxed  bool
		products []model.Product
	)
	if plan.Relaxable {
		total, relaxed, products, err = uc.runWithFallback(ctx, input, plan, vec)
	} else {
		total, products, err = uc.runParallel(ctx, input, plan, vec)
	}
	if err != nil {
		return nil, err
	}

	var related []model.RelatedCategory
	if !input.HasCategoryFilter() {
		related, err = uc.repo.RelatedCategories(ctx, plan.Strict.WithoutEquals(predicate.FieldCategory), uc.cfg.RelatedCategories)
		if err != nil {
			// Suggestions are an affordance; a failed aggregation must not
			// sink the page itself.
			uc.logger.Warn("related category aggregation failed", zap.Error(err))
			related = nil
		}
	}

	result := assemble(products, total, input.Page, input.Limit, relaxed, related)

	if uc.cache != nil && key != "" {
		uc.cache.Set(ctx, key, result)
	}

	elapsed := time.Since(start)
	metrics.ObserveSearch(searchMode(vec, plan.Tokens), relaxed, elapsed)
	go uc.emitSearchEvent(context.Background(), input, result, elapsed)

	return result, nil
}

// runWithFallback executes the strict count first; a zero result re-runs
// count and data against the relaxed set. One fallback only: a relaxed
// zero is the final answer.
func (uc *searchUseCase) runWithFallback(
	ctx context.Context, input *dto.SearchInput, plan predicate.Plan, vec *pgvector.Vector,
) (int, bool, []model.Product, error) {
	pred := plan.Strict
	relaxed := false

	total, err := uc.repo.Count(ctx, pred)
	if err != nil {
		return 0, false, nil, wrapQueryErr(err)
	}

	if total == 0 {
		pred = plan.Relaxed
		relaxed = true
		if total, err = uc.repo.Count(ctx, pred); err != nil {
			return 0, false, nil, wrapQueryErr(err)
		}
	}

	if total == 0 {
		return 0, relaxed, nil, nil
	}

	products, err := uc.repo.Find(ctx, uc.catalogQuery(input, pred, plan.Tokens, vec))
	if err != nil {
		return 0, false, nil, wrapQueryErr(err)
	}
	return total, relaxed, products, nil
}

// runParallel issues the count and data queries concurrently. Only valid
// when no relaxable filter is present, since the count can then never
// change the data query's predicate set.
func (uc *searchUseCase) runParallel(
	ctx context.Context, input *dto.SearchInput, plan predicate.Plan, vec *pgvector.Vector,
) (int, []model.Product, error) {
	type countResult struct {
		n   int
		err error
	}
	countCh := make(chan countResult, 1)
	go func() {
		n, err := uc.repo.Count(ctx, plan.Strict)
		countCh <- countResult{n, err}
	}()

	products, findErr := uc.repo.Find(ctx, uc.catalogQuery(input, plan.Strict, plan.Tokens, vec))
	count := <-countCh

	if findErr != nil {
		return 0, nil, wrapQueryErr(findErr)
	}
	if count.err != nil {
		return 0, nil, wrapQueryErr(count.err)
	}
	return count.n, products, nil
}

// wrapQueryErr tags store failures with ErrQuery. Validation errors pass
// through untouched: the repository rejects unknown sort keys with an
// ErrValidation-wrapped error, and flattening it here would turn a client
// typo into a 500.
func wrapQueryErr(err error) error {
	if errors.Is(err, search.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", search.ErrQuery, err)
}

func (uc *searchUseCase) catalogQuery(
	input *dto.SearchInput, pred predicate.Set, tokens []string, vec *pgvector.Vector,
) *search.CatalogQuery {
	return &search.CatalogQuery{
		Pred:      pred,
		Tokens:    tokens,
		Vector:    vec,
		Geo:       input.Location,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Page:      input.Page,
		Limit:     input.Limit,
	}
}

// requestVector validates dimensionality before any query is issued.
func (uc *searchUseCase) requestVector(input *dto.SearchInput) (*pgvector.Vector, error) {
	if len(input.TextEmbedding) == 0 {
		return nil, nil
	}
	if len(input.TextEmbedding) != uc.cfg.EmbeddingDim {
		return nil, fmt.Errorf("%w: got %d dimensions, want %d",
			search.ErrVectorDimMismatch, len(input.TextEmbedding), uc.cfg.EmbeddingDim)
	}
	v := pgvector.NewVector(input.TextEmbedding)
	return &v, nil
}

func searchMode(vec *pgvector.Vector, tokens []string) string {
	switch {
	case vec != nil:
		return "semantic"
	case len(tokens) > 0:
		return "lexical"
	default:
		return "browse"
	}
}

func (uc *searchUseCase) emitSearchEvent(ctx context.Context, input *dto.SearchInput, res *dto.SearchResult, elapsed time.Duration) {
	if uc.events == nil {
		return
	}
	ev := &analytics.SearchEvent{
		EventID:    uuid.New().String(),
		Query:      input.Query,
		CategoryID: input.CategoryID,
		SortBy:     input.SortBy,
		Page:       res.Page,
		Limit:      res.Limit,
		HasVector:  len(input.TextEmbedding) > 0,
		Total:      res.Total,
		Relaxed:    res.Relaxed,
		DurationMs: elapsed.Milliseconds(),
		Timestamp:  time.Now(),
	}
	if err := uc.events.SearchPerformed(ctx, ev); err != nil {
		uc.logger.Error("failed to publish search event", zap.Error(err))
	}
}
