package entities

import "github.com/shopspring/decimal"

// Product is a catalog entry (ProductMaster on the backend)
type Product struct {
	ProductID    int             `json:"product_id,omitempty"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit,omitempty"` // backend default PCS
	UnitPrice    decimal.Decimal `json:"unit_price"`
	IsActive     bool            `json:"is_active"`
	CurrentStock decimal.Decimal `json:"current_stock,omitzero"` // read-only, computed from movements
	CreatedAt    Timestamp       `json:"created_at,omitzero"`
	UpdatedAt    Timestamp       `json:"updated_at,omitzero"`
}

// StockMovement is one line of a product's movement history
type StockMovement struct {
	TransactionID   int             `json:"transaction_id"`
	TransactionCode string          `json:"transaction_code"`
	TransactionType TransactionType `json:"transaction_type"`
	TransactionDate Timestamp       `json:"transaction_date"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}
