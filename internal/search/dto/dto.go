package dto

import (
	"github.com/rentiva/discovery-service/internal/model"
)

// SearchResult is the paginated discovery response envelope.
// RelatedCategories ride alongside the page as refinement suggestions;
// Relaxed marks a recall-preserving fallback response, in which price and
// geo bounds are no longer guaranteed.
type SearchResult struct {
	Data              []model.Product         `json:"data"`
	Page              int                     `json:"page"`
	Limit             int                     `json:"limit"`
	Total             int                     `json:"total"`
	TotalPages        int                     `json:"totalPages"`
	HasNext           bool                    `json:"hasNext"`
	HasPrev           bool                    `json:"hasPrev"`
	Relaxed           bool                    `json:"relaxed"`
	RelatedCategories []model.RelatedCategory `json:"relatedCategories,omitempty"`
}
