package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend API Metrics
var (
	// APICalls tracks calls to the warehouse backend
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_api_calls_total",
			Help: "Total warehouse API calls by method, route (normalized path), and status code",
		},
		[]string{"method", "route", "status_code"},
	)

	// APIDuration tracks backend API latency
	APIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:                            "warehouse_api_duration_ms",
			Help:                            "Warehouse API call duration in milliseconds",
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: 1 * time.Hour,
		},
		[]string{"method", "route"},
	)

	// APIErrors tracks backend API errors
	APIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_api_errors_total",
			Help: "Total warehouse API errors by route and error type",
		},
		[]string{"route", "error_type"},
	)
)

// Session Metrics
var (
	// TokenRefreshes tracks refresh attempts by result (success, failure, no_refresh_token)
	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_token_refreshes_total",
			Help: "Total access token refresh attempts by result",
		},
		[]string{"result"},
	)

	// RequestRetries tracks requests reissued after a successful refresh
	RequestRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warehouse_request_retries_total",
			Help: "Total requests reissued with a refreshed access token",
		},
	)
)

// Inventory Metrics (populated by the monitor command)
var (
	// InventoryProducts tracks active products
	InventoryProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warehouse_inventory_products",
			Help: "Number of active products",
		},
	)

	// InventoryLowStockProducts tracks products below the backend's low stock threshold
	InventoryLowStockProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warehouse_inventory_low_stock_products",
			Help: "Number of active products flagged as low stock",
		},
	)

	// InventoryStockValue tracks total stock value
	InventoryStockValue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warehouse_inventory_stock_value",
			Help: "Total value of stock on hand",
		},
	)

	// InventoryTransactions tracks transaction counts by window (today, recent)
	InventoryTransactions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "warehouse_inventory_transactions",
			Help: "Stock transactions by window (today, last 7 days)",
		},
		[]string{"window"},
	)

	// InventoryMovementsToday tracks stock movement lines posted today
	InventoryMovementsToday = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warehouse_inventory_movements_today",
			Help: "Stock movement lines posted today",
		},
	)

	// LowStockLevel tracks current stock of each low stock product
	LowStockLevel = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "warehouse_low_stock_level",
			Help: "Current stock of products flagged as low stock",
		},
		[]string{"product_code"},
	)

	// MonitorPolls tracks monitor poll cycles by status
	MonitorPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_monitor_polls_total",
			Help: "Total monitor poll cycles by status",
		},
		[]string{"status"},
	)
)
