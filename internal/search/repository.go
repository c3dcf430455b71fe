package search

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/rentiva/discovery-service/internal/model"
	"github.com/rentiva/discovery-service/internal/search/dto"
	"github.com/rentiva/discovery-service/internal/search/predicate"
)

// CatalogQuery is the compiled data-query input: the predicate set in
// force plus everything needed to resolve the ORDER BY clause.
type CatalogQuery struct {
	Pred      predicate.Set
	Tokens    []string
	Vector    *pgvector.Vector
	Geo       *dto.GeoFilter
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type Repository interface {
	// Count returns the number of distinct products matching the predicate
	// set. Image joins must not multiply the count.
	Count(ctx context.Context, pred predicate.Set) (int, error)

	// Find returns one page of scored products with category name and
	// ordered image arrays attached.
	Find(ctx context.Context, q *CatalogQuery) ([]model.Product, error)

	// RelatedCategories aggregates match counts per category under the
	// given predicate set, best-matched first.
	RelatedCategories(ctx context.Context, pred predicate.Set, limit int) ([]model.RelatedCategory, error)
}
