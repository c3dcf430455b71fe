package product

import (
	"context"

	"github.com/rentiva/discovery-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	IncrementViewCount(ctx context.Context, id string) error
}
