package services

import (
	"context"
	"strconv"

	"github.com/devilmonastery/warehouse/internal/client"
	"github.com/devilmonastery/warehouse/internal/config"
)

// APIClient is the slice of *client.Client the services depend on
type APIClient interface {
	Do(ctx context.Context, method, endpoint string, body, out any) error
	Endpoints() config.Endpoints
	Tokens() client.TokenStore
}

// Services bundles one service per backend resource
type Services struct {
	Auth         *AuthService
	Products     *ProductService
	Transactions *TransactionService
	StockDetails *StockDetailService
	Reports      *ReportService
}

// New creates every service on top of api
func New(api APIClient) *Services {
	return &Services{
		Auth:         NewAuthService(api),
		Products:     NewProductService(api),
		Transactions: NewTransactionService(api),
		StockDetails: NewStockDetailService(api),
		Reports:      NewReportService(api),
	}
}

// detailPath returns "<collection><id>/", e.g. /products/42/
func detailPath(collection string, id int) string {
	return collection + strconv.Itoa(id) + "/"
}

// actionPath returns "<collection><id>/<action>/", e.g. /products/42/stock_movements/
func actionPath(collection string, id int, action string) string {
	return detailPath(collection, id) + action + "/"
}
