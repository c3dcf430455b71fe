package search

import (
	"context"

	"github.com/rentiva/discovery-service/internal/search/dto"
)

type UseCase interface {
	// Search runs the full discovery flow: plan predicates, count, fall
	// back to the relaxed set when strict filtering strands the query,
	// fetch the page and assemble the envelope with related categories.
	Search(ctx context.Context, input *dto.SearchInput) (*dto.SearchResult, error)
}
