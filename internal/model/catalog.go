package model

import "github.com/shopspring/decimal"

// Product, Store and User are read-only catalog records owned by other
// back-office modules. The fulfillment core only joins them for display.
type Product struct {
	ID        ProductID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	BasePrice decimal.Decimal `json:"base_price"`
	IsActive  bool            `json:"is_active"`
}

type Store struct {
	ID      StoreID `json:"id"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Address string  `json:"address"`
}

type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
