package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/model"
	"github.com/rentiva/discovery-service/internal/product"
)

type productUseCase struct {
	repo   product.Repository
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		logger: log,
	}
}

// GetProduct returns a single listing. Every successful fetch bumps the
// view counter asynchronously, which in turn feeds the ranking's
// popularity term.
func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	go uc.recordView(context.Background(), p.ID)

	return p, nil
}

func (uc *productUseCase) recordView(ctx context.Context, id string) {
	if err := uc.repo.IncrementViewCount(ctx, id); err != nil {
		uc.logger.Warn("failed to increment view count", zap.String("product_id", id), zap.Error(err))
	}
}
