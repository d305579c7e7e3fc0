package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
)

// TransactionFilter narrows a transaction listing. Fields are sent in declaration order.
type TransactionFilter struct {
	TransactionType entities.TransactionType
	StartDate       string
	EndDate         string
	Search          string
}

func (f TransactionFilter) query() *query {
	q := &query{}
	q.add("transaction_type", string(f.TransactionType))
	q.add("start_date", f.StartDate)
	q.add("end_date", f.EndDate)
	q.add("search", f.Search)
	return q
}

// TransactionService manages stock transactions
type TransactionService struct {
	api APIClient
}

// NewTransactionService creates a new transaction service
func NewTransactionService(api APIClient) *TransactionService {
	return &TransactionService{api: api}
}

// List returns transactions matching filter
func (s *TransactionService) List(ctx context.Context, filter TransactionFilter) (*entities.Page[entities.Transaction], error) {
	var page entities.Page[entities.Transaction]
	path := filter.query().path(s.api.Endpoints().Transactions)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &page, nil
}

// Get returns a transaction with its details
func (s *TransactionService) Get(ctx context.Context, id int) (*entities.Transaction, error) {
	var tx entities.Transaction
	if err := s.api.Do(ctx, http.MethodGet, detailPath(s.api.Endpoints().Transactions, id), nil, &tx); err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return &tx, nil
}

// Create records a transaction together with its nested details
func (s *TransactionService) Create(ctx context.Context, tx *entities.Transaction) (*entities.Transaction, error) {
	var created entities.Transaction
	if err := s.api.Do(ctx, http.MethodPost, s.api.Endpoints().Transactions, tx, &created); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &created, nil
}

// Update replaces a transaction
func (s *TransactionService) Update(ctx context.Context, id int, tx *entities.Transaction) (*entities.Transaction, error) {
	var updated entities.Transaction
	if err := s.api.Do(ctx, http.MethodPut, detailPath(s.api.Endpoints().Transactions, id), tx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a transaction
func (s *TransactionService) Delete(ctx context.Context, id int) error {
	if err := s.api.Do(ctx, http.MethodDelete, detailPath(s.api.Endpoints().Transactions, id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

// Details returns the stock detail lines of a transaction
func (s *TransactionService) Details(ctx context.Context, id int) (*entities.Page[entities.StockDetail], error) {
	var page entities.Page[entities.StockDetail]
	if err := s.api.Do(ctx, http.MethodGet, actionPath(s.api.Endpoints().Transactions, id, "details"), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to get details for transaction %d: %w", id, err)
	}
	return &page, nil
}
