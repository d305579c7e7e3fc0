package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
)

// ProductFilter narrows a product listing. Fields are sent in declaration order.
type ProductFilter struct {
	Category string
	IsActive *bool
	Search   string
}

func (f ProductFilter) query() *query {
	q := &query{}
	q.add("category", f.Category)
	q.addBool("is_active", f.IsActive)
	q.add("search", f.Search)
	return q
}

// MovementFilter bounds a product's movement history
type MovementFilter struct {
	StartDate string
	EndDate   string
}

func (f MovementFilter) query() *query {
	q := &query{}
	q.add("start_date", f.StartDate)
	q.add("end_date", f.EndDate)
	return q
}

// ProductService manages the product catalog
type ProductService struct {
	api APIClient
}

// NewProductService creates a new product service
func NewProductService(api APIClient) *ProductService {
	return &ProductService{api: api}
}

// List returns products matching filter
func (s *ProductService) List(ctx context.Context, filter ProductFilter) (*entities.Page[entities.Product], error) {
	var page entities.Page[entities.Product]
	path := filter.query().path(s.api.Endpoints().Products)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return &page, nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id int) (*entities.Product, error) {
	var product entities.Product
	if err := s.api.Do(ctx, http.MethodGet, detailPath(s.api.Endpoints().Products, id), nil, &product); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create adds a product
func (s *ProductService) Create(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	var created entities.Product
	if err := s.api.Do(ctx, http.MethodPost, s.api.Endpoints().Products, product, &created); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

// Update replaces a product
func (s *ProductService) Update(ctx context.Context, id int, product *entities.Product) (*entities.Product, error) {
	var updated entities.Product
	if err := s.api.Do(ctx, http.MethodPut, detailPath(s.api.Endpoints().Products, id), product, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.api.Do(ctx, http.MethodDelete, detailPath(s.api.Endpoints().Products, id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// StockMovements returns the movement history of a product, newest first
func (s *ProductService) StockMovements(ctx context.Context, id int, filter MovementFilter) (*entities.Page[entities.StockMovement], error) {
	var page entities.Page[entities.StockMovement]
	path := filter.query().path(actionPath(s.api.Endpoints().Products, id, "stock_movements"))
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to get stock movements for product %d: %w", id, err)
	}
	return &page, nil
}
