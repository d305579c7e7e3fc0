package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
)

// Sort keys accepted by the inventory summary
const (
	SortByProductName  = "product_name"
	SortByProductCode  = "product_code"
	SortByCurrentStock = "current_stock"
	SortByTotalValue   = "total_value"
)

// InventoryFilter narrows and orders the inventory summary
type InventoryFilter struct {
	Category     string
	LowStockOnly bool
	SortBy       string
	Reverse      bool
	Page         int // 1-based page of a paginated summary; 0 lets the backend choose
}

func (f InventoryFilter) query() *query {
	q := &query{}
	q.add("category", f.Category)
	q.addFlag("low_stock_only", f.LowStockOnly)
	q.add("sort_by", f.SortBy)
	q.addFlag("reverse", f.Reverse)
	q.addID("page", f.Page)
	return q
}

// ReportService reads the backend's aggregate reports
type ReportService struct {
	api APIClient
}

// NewReportService creates a new report service
func NewReportService(api APIClient) *ReportService {
	return &ReportService{api: api}
}

// InventorySummary returns per-product stock levels and values
func (s *ReportService) InventorySummary(ctx context.Context, filter InventoryFilter) (*entities.Page[entities.InventoryItem], error) {
	var page entities.Page[entities.InventoryItem]
	path := filter.query().path(s.api.Endpoints().InventorySummary)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to get inventory summary: %w", err)
	}
	return &page, nil
}

// DashboardStats returns the dashboard snapshot
func (s *ReportService) DashboardStats(ctx context.Context) (*entities.DashboardStats, error) {
	var stats entities.DashboardStats
	if err := s.api.Do(ctx, http.MethodGet, s.api.Endpoints().DashboardStats, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}
