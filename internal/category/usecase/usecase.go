package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/category"
	"github.com/rentiva/discovery-service/internal/category/dto"
	"github.com/rentiva/discovery-service/internal/model"
)

type categoryUseCase struct {
	repo   category.Repository
	logger *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, log *zap.Logger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

// GetCategory resolves either a category id or a slug; UUIDs go to the
// id lookup, everything else is treated as a slug.
func (uc *categoryUseCase) GetCategory(ctx context.Context, idOrSlug string) (*model.Category, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return uc.repo.FindByID(ctx, idOrSlug)
	}
	return uc.repo.FindBySlug(ctx, idOrSlug)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, filters)
}
