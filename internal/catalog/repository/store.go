package repository

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
)

type StoreRepository struct {
	store recordstore.Store
}

func NewStoreRepository(store recordstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (r *StoreRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	return recordstore.Load[model.Product](ctx, r.store, recordstore.CollectionProducts)
}

func (r *StoreRepository) ListStores(ctx context.Context) ([]model.Store, error) {
	return recordstore.Load[model.Store](ctx, r.store, recordstore.CollectionStores)
}

func (r *StoreRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	return recordstore.Load[model.User](ctx, r.store, recordstore.CollectionUsers)
}

func (r *StoreRepository) FindProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}
