package repository

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
)

// StoreRepository keeps orders in the "orders" collection. Every mutation
// reads the whole collection and writes it back.
type StoreRepository struct {
	store recordstore.Store
}

func NewStoreRepository(store recordstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (r *StoreRepository) load(ctx context.Context) ([]model.Order, error) {
	return recordstore.Load[model.Order](ctx, r.store, recordstore.CollectionOrders)
}

func (r *StoreRepository) save(ctx context.Context, orders []model.Order) error {
	return recordstore.Save(ctx, r.store, recordstore.CollectionOrders, orders)
}

func (r *StoreRepository) Create(ctx context.Context, o *model.Order) error {
	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(orders, *o))
}

func (r *StoreRepository) FindByID(ctx context.Context, id model.OrderID) (*model.Order, error) {
	orders, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, nil // Not found; caller decides whether that is an error
}

func (r *StoreRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	orders, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(orders))
	for i := range orders {
		if f.Match(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out, nil
}

func (r *StoreRepository) Update(ctx context.Context, o *model.Order) error {
	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = *o
			return r.save(ctx, orders)
		}
	}
	return apperror.NotFound("updateOrder", "order", string(o.ID))
}

func (r *StoreRepository) Delete(ctx context.Context, id model.OrderID) error {
	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			return r.save(ctx, append(orders[:i], orders[i+1:]...))
		}
	}
	return apperror.NotFound("deleteOrder", "order", string(id))
}
