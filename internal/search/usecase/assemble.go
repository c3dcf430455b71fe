package usecase

import (
	"github.com/rentiva/discovery-service/internal/model"
	"github.com/rentiva/discovery-service/internal/search/dto"
)

// assemble builds the response envelope: page slice, ceil-division page
// count, navigation flags and the related-category suggestions.
func assemble(products []model.Product, total, page, limit int, relaxed bool, related []model.RelatedCategory) *dto.SearchResult {
	if products == nil {
		products = []model.Product{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &dto.SearchResult{
		Data:              products,
		Page:              page,
		Limit:             limit,
		Total:             total,
		TotalPages:        totalPages,
		HasNext:           page*limit < total,
		HasPrev:           page > 1,
		Relaxed:           relaxed,
		RelatedCategories: related,
	}
}
