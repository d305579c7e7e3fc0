package entities

import "github.com/shopspring/decimal"

// InventoryItem is one row of the inventory summary report
type InventoryItem struct {
	ProductID        int             `json:"product_id"`
	ProductCode      string          `json:"product_code"`
	ProductName      string          `json:"product_name"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalValue       decimal.Decimal `json:"total_value"`
	LastMovementDate Timestamp       `json:"last_movement_date"`
	IsLowStock       bool            `json:"is_low_stock"`
}

// DashboardStats is the aggregate snapshot shown on the dashboard
type DashboardStats struct {
	TotalProducts      int             `json:"total_products"`
	TodayTransactions  int             `json:"today_transactions"`
	TotalStockValue    decimal.Decimal `json:"total_stock_value"`
	LowStockProducts   int             `json:"low_stock_products"`
	RecentTransactions int             `json:"recent_transactions"`
	TodayMovements     int             `json:"today_movements"`
}
