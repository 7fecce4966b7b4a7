package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat rate applied when an invoice is issued. Orders carry no tax.
var TaxRate = decimal.RequireFromString("0.21")

const InvoiceDueDays = 30

func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Taxes rounds to cents, half away from zero.
func Taxes(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

func DueDate(issueDate time.Time) time.Time {
	return issueDate.AddDate(0, 0, InvoiceDueDays)
}
