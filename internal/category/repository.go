package category

import (
	"context"

	"github.com/rentiva/discovery-service/internal/category/dto"
	"github.com/rentiva/discovery-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
}
