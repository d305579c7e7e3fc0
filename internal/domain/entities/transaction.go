package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of stock movement a transaction records
type TransactionType string

const (
	TransactionIn     TransactionType = "IN"
	TransactionOut    TransactionType = "OUT"
	TransactionAdjust TransactionType = "ADJUST"
)

// TransactionTypes lists the accepted values in display order
var TransactionTypes = []TransactionType{TransactionIn, TransactionOut, TransactionAdjust}

// Valid reports whether t is one of IN, OUT or ADJUST
func (t TransactionType) Valid() bool {
	for _, v := range TransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParseTransactionType accepts any case
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("transaction type must be one of IN, OUT, ADJUST; got %q", s)
	}
	return t, nil
}

// Transaction is a stock transaction header (StockMain on the backend)
type Transaction struct {
	TransactionID          int             `json:"transaction_id,omitempty"`
	TransactionCode        string          `json:"transaction_code,omitempty"`
	TransactionType        TransactionType `json:"transaction_type"`
	TransactionTypeDisplay string          `json:"transaction_type_display,omitempty"`
	TransactionDate        Timestamp       `json:"transaction_date,omitzero"`
	ReferenceNumber        string          `json:"reference_number"`
	SupplierCustomer       string          `json:"supplier_customer"`
	Notes                  string          `json:"notes"`
	TotalAmount            decimal.Decimal `json:"total_amount"`
	CreatedBy              string          `json:"created_by"`
	Details                []StockDetail   `json:"details,omitempty"`
	DetailsCount           int             `json:"details_count,omitempty"`
	CreatedAt              Timestamp       `json:"created_at,omitzero"`
	UpdatedAt              Timestamp       `json:"updated_at,omitzero"`
}
