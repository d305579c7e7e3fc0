package services

import (
	"github.com/shopspring/decimal"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
)

func productFixture() *entities.Product {
	return &entities.Product{
		ProductCode: "HAM-01",
		ProductName: "Hammer",
		Category:    "Tools",
		Unit:        "PCS",
		UnitPrice:   decimal.RequireFromString("12.50"),
		IsActive:    true,
	}
}

func stockDetailFixture() *entities.StockDetail {
	expiry, _ := entities.ParseDate("2027-06-30")
	return &entities.StockDetail{
		Transaction: 8,
		Product:     3,
		Quantity:    decimal.NewFromInt(4),
		UnitPrice:   decimal.RequireFromString("2.25"),
		ExpiryDate:  expiry,
	}
}
