package repository

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
)

// StoreRepository keeps invoices in the "invoices" collection. Every
// mutation reads the whole collection and writes it back.
type StoreRepository struct {
	store recordstore.Store
}

func NewStoreRepository(store recordstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (r *StoreRepository) load(ctx context.Context) ([]model.Invoice, error) {
	return recordstore.Load[model.Invoice](ctx, r.store, recordstore.CollectionInvoices)
}

func (r *StoreRepository) save(ctx context.Context, invoices []model.Invoice) error {
	return recordstore.Save(ctx, r.store, recordstore.CollectionInvoices, invoices)
}

func (r *StoreRepository) Create(ctx context.Context, inv *model.Invoice) error {
	invoices, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(invoices, *inv))
}

func (r *StoreRepository) FindByID(ctx context.Context, id model.InvoiceID) (*model.Invoice, error) {
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, nil
}

// FindByOrderID returns the invoice referencing orderID. Manual invoices
// (empty order id) never match.
func (r *StoreRepository) FindByOrderID(ctx context.Context, orderID model.OrderID) (*model.Invoice, error) {
	if orderID == "" {
		return nil, nil
	}
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].OrderID == orderID {
			return &invoices[i], nil
		}
	}
	return nil, nil
}

// FindByPODID returns every invoice whose POD reference names podID.
func (r *StoreRepository) FindByPODID(ctx context.Context, podID model.PODID) ([]model.Invoice, error) {
	if podID == "" {
		return nil, nil
	}
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Invoice
	for _, inv := range invoices {
		if inv.PODID == podID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *StoreRepository) FindAll(ctx context.Context, f *dto.InvoiceFilters) ([]model.Invoice, error) {
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Invoice, 0, len(invoices))
	for i := range invoices {
		if f.Match(&invoices[i]) {
			out = append(out, invoices[i])
		}
	}
	return out, nil
}

func (r *StoreRepository) Update(ctx context.Context, inv *model.Invoice) error {
	invoices, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == inv.ID {
			invoices[i] = *inv
			return r.save(ctx, invoices)
		}
	}
	return apperror.NotFound("updateInvoice", "invoice", string(inv.ID))
}

func (r *StoreRepository) Delete(ctx context.Context, id model.InvoiceID) error {
	invoices, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return r.save(ctx, append(invoices[:i], invoices[i+1:]...))
		}
	}
	return apperror.NotFound("deleteInvoice", "invoice", string(id))
}
