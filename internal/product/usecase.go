package product

import (
	"context"

	"github.com/rentiva/discovery-service/internal/model"
)

type UseCase interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}
