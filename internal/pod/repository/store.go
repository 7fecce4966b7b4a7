package repository

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
)

// StoreRepository keeps PODs in the "pods" collection.
type StoreRepository struct {
	store recordstore.Store
}

func NewStoreRepository(store recordstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (r *StoreRepository) load(ctx context.Context) ([]model.POD, error) {
	return recordstore.Load[model.POD](ctx, r.store, recordstore.CollectionPODs)
}

func (r *StoreRepository) save(ctx context.Context, pods []model.POD) error {
	return recordstore.Save(ctx, r.store, recordstore.CollectionPODs, pods)
}

func (r *StoreRepository) Create(ctx context.Context, p *model.POD) error {
	pods, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(pods, *p))
}

func (r *StoreRepository) FindByID(ctx context.Context, id model.PODID) (*model.POD, error) {
	pods, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pods {
		if pods[i].ID == id {
			return &pods[i], nil
		}
	}
	return nil, nil
}

func (r *StoreRepository) FindByInvoiceID(ctx context.Context, invoiceID model.InvoiceID) (*model.POD, error) {
	if invoiceID == "" {
		return nil, nil
	}
	pods, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pods {
		if pods[i].InvoiceID == invoiceID {
			return &pods[i], nil
		}
	}
	return nil, nil
}

func (r *StoreRepository) FindAll(ctx context.Context, f *dto.PODFilters) ([]model.POD, error) {
	pods, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.POD, 0, len(pods))
	for i := range pods {
		if f.Match(&pods[i]) {
			out = append(out, pods[i])
		}
	}
	return out, nil
}

func (r *StoreRepository) Update(ctx context.Context, p *model.POD) error {
	pods, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range pods {
		if pods[i].ID == p.ID {
			pods[i] = *p
			return r.save(ctx, pods)
		}
	}
	return apperror.NotFound("updatePOD", "pod", string(p.ID))
}

func (r *StoreRepository) Delete(ctx context.Context, id model.PODID) error {
	pods, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range pods {
		if pods[i].ID == id {
			return r.save(ctx, append(pods[:i], pods[i+1:]...))
		}
	}
	return apperror.NotFound("deletePOD", "pod", string(id))
}
