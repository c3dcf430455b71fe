package category

import (
	"context"

	"github.com/rentiva/discovery-service/internal/category/dto"
	"github.com/rentiva/discovery-service/internal/model"
)

type UseCase interface {
	GetCategory(ctx context.Context, idOrSlug string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
}
