package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderSetItemsTotals(t *testing.T) {
	var o Order
	o.SetItems([]OrderItem{
		{ProductID: "p1", Quantity: 5, UnitPrice: dec("25.90")},
		{ProductID: "p2", Quantity: 3, UnitPrice: dec("38.67"), Status: ItemStatusPartial},
	})

	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].Subtotal.Equal(dec("129.50")))
	assert.True(t, o.Items[1].Subtotal.Equal(dec("116.01")))
	assert.Equal(t, ItemStatusPending, o.Items[0].Status)
	assert.Equal(t, ItemStatusPartial, o.Items[1].Status)
	assert.True(t, o.Subtotal.Equal(dec("245.51")))
	assert.True(t, o.Total.Equal(o.Subtotal))
}

func TestInvoiceFromOrderDerivation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order := Order{ID: "o1", StoreID: "s1", SalespersonID: "u1"}
	order.SetItems([]OrderItem{
		{ProductID: "p1", Quantity: 5, UnitPrice: dec("25.90")},
		{ProductID: "p2", Quantity: 3, UnitPrice: dec("38.67")},
	})

	inv := InvoiceFromOrder(order, "admin", GenerationAutomatic, now)

	assert.Equal(t, OrderID("o1"), inv.OrderID)
	assert.Equal(t, StoreID("s1"), inv.StoreID)
	assert.Equal(t, UserID("u1"), inv.SellerID)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Equal(t, GenerationAutomatic, inv.GenerationType)
	assert.True(t, inv.Subtotal.Equal(dec("245.51")))
	assert.True(t, inv.Taxes.Equal(dec("51.56")))
	assert.True(t, inv.Total.Equal(dec("297.07")))
	assert.Equal(t, now.AddDate(0, 0, 30), inv.DueDate)
	assert.Empty(t, inv.PODID)
}

func TestTaxesRounding(t *testing.T) {
	cases := []struct {
		subtotal string
		want     string
	}{
		{"0", "0"},
		{"100", "21"},
		{"10.05", "2.11"},
		{"245.51", "51.56"},
	}
	for _, tc := range cases {
		t.Run(tc.subtotal, func(t *testing.T) {
			assert.True(t, Taxes(dec(tc.subtotal)).Equal(dec(tc.want)), "got %s", Taxes(dec(tc.subtotal)))
		})
	}
}

func TestNumberFormats(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Regexp(t, regexp.MustCompile(`^PO-1700000000123-\d{3}$`), NewPONumber(now))
	assert.Regexp(t, regexp.MustCompile(`^INV-1700000000123-\d{3}$`), NewInvoiceNumber(now))
	assert.NotEqual(t, NewOrderID(), NewOrderID())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, OrderStatusCompleted.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, InvoiceStatusCancelled.Valid())
	assert.False(t, InvoiceStatus("").Valid())
	assert.True(t, InvoiceStatusSent.Pending())
	assert.False(t, InvoiceStatusPaid.Pending())
	assert.False(t, GenerationType("auto").Valid())
	assert.True(t, PODStatusPending.Valid())
}

func TestPODIsOrphan(t *testing.T) {
	assert.True(t, POD{}.IsOrphan())
	assert.False(t, POD{OrderID: "o1"}.IsOrphan())
	assert.False(t, POD{InvoiceID: "i1"}.IsOrphan())
}
