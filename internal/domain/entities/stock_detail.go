package entities

import "github.com/shopspring/decimal"

// StockDetail is one product line within a transaction
type StockDetail struct {
	DetailID     int             `json:"detail_id,omitempty"`
	Transaction  int             `json:"transaction,omitempty"`
	Product      int             `json:"product"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductCode  string          `json:"product_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price,omitzero"` // computed by the backend
	BatchNumber  string          `json:"batch_number"`
	ExpiryDate   Date            `json:"expiry_date"`
	Notes        string          `json:"notes"`
	MovementType TransactionType `json:"movement_type,omitempty"`
	CreatedAt    Timestamp       `json:"created_at,omitzero"`
	UpdatedAt    Timestamp       `json:"updated_at,omitzero"`
}
