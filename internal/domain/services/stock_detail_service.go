package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
)

// StockDetailFilter narrows a stock detail listing
type StockDetailFilter struct {
	Product      int
	Transaction  int
	MovementType entities.TransactionType
}

func (f StockDetailFilter) query() *query {
	q := &query{}
	q.addID("product_id", f.Product)
	q.addID("transaction_id", f.Transaction)
	q.add("movement_type", string(f.MovementType))
	return q
}

// StockDetailService manages individual transaction lines
type StockDetailService struct {
	api APIClient
}

// NewStockDetailService creates a new stock detail service
func NewStockDetailService(api APIClient) *StockDetailService {
	return &StockDetailService{api: api}
}

// List returns stock details matching filter
func (s *StockDetailService) List(ctx context.Context, filter StockDetailFilter) (*entities.Page[entities.StockDetail], error) {
	var page entities.Page[entities.StockDetail]
	path := filter.query().path(s.api.Endpoints().StockDetails)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list stock details: %w", err)
	}
	return &page, nil
}

// Get returns one stock detail
func (s *StockDetailService) Get(ctx context.Context, id int) (*entities.StockDetail, error) {
	var detail entities.StockDetail
	if err := s.api.Do(ctx, http.MethodGet, detailPath(s.api.Endpoints().StockDetails, id), nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get stock detail %d: %w", id, err)
	}
	return &detail, nil
}

// Create adds a stock detail to an existing transaction
func (s *StockDetailService) Create(ctx context.Context, detail *entities.StockDetail) (*entities.StockDetail, error) {
	var created entities.StockDetail
	if err := s.api.Do(ctx, http.MethodPost, s.api.Endpoints().StockDetails, detail, &created); err != nil {
		return nil, fmt.Errorf("failed to create stock detail: %w", err)
	}
	return &created, nil
}

// Update replaces a stock detail
func (s *StockDetailService) Update(ctx context.Context, id int, detail *entities.StockDetail) (*entities.StockDetail, error) {
	var updated entities.StockDetail
	if err := s.api.Do(ctx, http.MethodPut, detailPath(s.api.Endpoints().StockDetails, id), detail, &updated); err != nil {
		return nil, fmt.Errorf("failed to update stock detail %d: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a stock detail
func (s *StockDetailService) Delete(ctx context.Context, id int) error {
	if err := s.api.Do(ctx, http.MethodDelete, detailPath(s.api.Endpoints().StockDetails, id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete stock detail %d: %w", id, err)
	}
	return nil
}
