package catalog

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
)

// Repository reads the catalog collections owned by other back-office modules.
type Repository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListStores(ctx context.Context) ([]model.Store, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	FindProduct(ctx context.Context, id model.ProductID) (*model.Product, error)
}
