package catalog

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
)

// Lookup is an in-memory snapshot of the catalog used to join display names.
type Lookup struct {
	products map[model.ProductID]model.Product
	stores   map[model.StoreID]model.Store
	users    map[model.UserID]model.User
}

func NewLookup(products []model.Product, stores []model.Store, users []model.User) *Lookup {
	l := &Lookup{
		products: make(map[model.ProductID]model.Product, len(products)),
		stores:   make(map[model.StoreID]model.Store, len(stores)),
		users:    make(map[model.UserID]model.User, len(users)),
	}
	for _, p := range products {
		l.products[p.ID] = p
	}
	for _, s := range stores {
		l.stores[s.ID] = s
	}
	for _, u := range users {
		l.users[u.ID] = u
	}
	return l
}

// LoadLookup snapshots all three catalog collections.
func LoadLookup(ctx context.Context, repo Repository) (*Lookup, error) {
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	stores, err := repo.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}
	users, err := repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return NewLookup(products, stores, users), nil
}

func (l *Lookup) ProductName(id model.ProductID) string { return l.products[id].Name }
func (l *Lookup) ProductCategory(id model.ProductID) string {
	return l.products[id].Category
}
func (l *Lookup) StoreName(id model.StoreID) string { return l.stores[id].Name }
func (l *Lookup) StoreCity(id model.StoreID) string { return l.stores[id].City }
func (l *Lookup) UserName(id model.UserID) string   { return l.users[id].Name }

type OrderItemView struct {
	model.OrderItem
	ProductName string `json:"product_name"`
}

type OrderView struct {
	model.Order
	StoreName       string          `json:"store_name"`
	StoreCity       string          `json:"store_city"`
	SalespersonName string          `json:"salesperson_name"`
	Items           []OrderItemView `json:"items"`
}

type InvoiceView struct {
	model.Invoice
	StoreName     string `json:"store_name"`
	SellerName    string `json:"seller_name"`
	CreatedByName string `json:"created_by_name"`
}

type PODView struct {
	model.POD
	StoreName       string `json:"store_name"`
	SalespersonName string `json:"salesperson_name"`
	UploadedByName  string `json:"uploaded_by_name"`
	ValidatedByName string `json:"validated_by_name,omitempty"`
}

func EnrichOrder(o model.Order, l *Lookup) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{OrderItem: item, ProductName: l.ProductName(item.ProductID)}
	}
	return OrderView{
		Order:           o,
		StoreName:       l.StoreName(o.StoreID),
		StoreCity:       l.StoreCity(o.StoreID),
		SalespersonName: l.UserName(o.SalespersonID),
		Items:           items,
	}
}

// EnrichInvoice fills missing item names from the catalog; names captured at
// issue time win over current catalog names.
func EnrichInvoice(inv model.Invoice, l *Lookup) InvoiceView {
	items := make([]model.InvoiceItem, len(inv.Items))
	for i, item := range inv.Items {
		if item.ProductName == "" {
			item.ProductName = l.ProductName(item.ProductID)
		}
		if item.Category == "" {
			item.Category = l.ProductCategory(item.ProductID)
		}
		items[i] = item
	}
	inv.Items = items
	return InvoiceView{
		Invoice:       inv,
		StoreName:     l.StoreName(inv.StoreID),
		SellerName:    l.UserName(inv.SellerID),
		CreatedByName: l.UserName(inv.CreatedBy),
	}
}

func EnrichPOD(p model.POD, l *Lookup) PODView {
	v := PODView{
		POD:             p,
		StoreName:       l.StoreName(p.StoreID),
		SalespersonName: l.UserName(p.SalespersonID),
		UploadedByName:  l.UserName(p.UploadedBy),
	}
	if p.ValidatedBy != "" {
		v.ValidatedByName = l.UserName(p.ValidatedBy)
	}
	return v
}
