package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/domain/services"
	"github.com/devilmonastery/warehouse/internal/pkg/logger"
	"github.com/devilmonastery/warehouse/internal/pkg/metrics"
)

func newMonitorCommand() *cobra.Command {
	var (
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Poll inventory statistics and export them as Prometheus metrics",
		Long: `Poll the dashboard and low stock report on an interval and serve the results,
together with API client metrics, on /metrics. /healthz reports whether the last
poll succeeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}
			cliCtx := getCliContext(cmd)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			mon := newMonitor(cliCtx.Services, interval, slog.Default().With("component", "monitor"))
			return mon.run(ctx, metricsAddr)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Polling interval")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9464", "Address to serve /metrics and /healthz on")

	return cmd
}

type monitor struct {
	services *services.Services
	interval time.Duration
	logger   *slog.Logger

	mu          sync.RWMutex
	lastSuccess time.Time
	lastErr     error
}

func newMonitor(svc *services.Services, interval time.Duration, log *slog.Logger) *monitor {
	return &monitor{services: svc, interval: interval, logger: log}
}

func (m *monitor) router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", m.handleHealth).Methods(http.MethodGet)
	return r
}

func (m *monitor) run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		m.logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Shutting down monitor")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return fmt.Errorf("metrics server failed: %w", err)
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

// poll refreshes every inventory gauge from the backend
func (m *monitor) poll(ctx context.Context) {
	start := time.Now()
	err := m.collect(ctx)

	m.mu.Lock()
	m.lastErr = err
	if err == nil {
		m.lastSuccess = time.Now()
	}
	m.mu.Unlock()

	if err != nil {
		metrics.MonitorPolls.WithLabelValues("failure").Inc()
		logger.WithDuration(m.logger, time.Since(start)).Warn("Inventory poll failed", "error", err)
		return
	}
	metrics.MonitorPolls.WithLabelValues("success").Inc()
	logger.WithDuration(m.logger, time.Since(start)).Debug("Inventory poll complete")
}

func (m *monitor) collect(ctx context.Context) error {
	stats, err := m.services.Reports.DashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("dashboard stats: %w", err)
	}

	metrics.InventoryProducts.Set(float64(stats.TotalProducts))
	metrics.InventoryLowStockProducts.Set(float64(stats.LowStockProducts))
	metrics.InventoryStockValue.Set(stats.TotalStockValue.InexactFloat64())
	metrics.InventoryTransactions.WithLabelValues("today").Set(float64(stats.TodayTransactions))
	metrics.InventoryTransactions.WithLabelValues("7d").Set(float64(stats.RecentTransactions))
	metrics.InventoryMovementsToday.Set(float64(stats.TodayMovements))

	low, err := m.lowStockItems(ctx)
	if err != nil {
		return err
	}

	// Products that recovered drop out of the series
	metrics.LowStockLevel.Reset()
	for _, item := range low {
		metrics.LowStockLevel.WithLabelValues(item.ProductCode).Set(item.CurrentStock.InexactFloat64())
	}
	return nil
}

// maxLowStockPages caps how far a single poll follows a paginated summary
const maxLowStockPages = 100

// lowStockItems collects every page of the low stock summary
func (m *monitor) lowStockItems(ctx context.Context) ([]entities.InventoryItem, error) {
	var items []entities.InventoryItem
	filter := services.InventoryFilter{LowStockOnly: true}
	for page := 1; ; page++ {
		if page > 1 {
			filter.Page = page
		}
		res, err := m.services.Reports.InventorySummary(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("low stock summary page %d: %w", page, err)
		}
		items = append(items, res.Results...)
		if !res.HasMore() {
			return items, nil
		}
		if page == maxLowStockPages {
			m.logger.Warn("Low stock summary truncated", "pages", page)
			return items, nil
		}
	}
}

// healthy reports whether a poll succeeded within two intervals
func (m *monitor) healthy(now time.Time) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.lastSuccess.IsZero() && now.Sub(m.lastSuccess) <= 2*m.interval
}

func (m *monitor) handleHealth(w http.ResponseWriter, r *http.Request) {
	if m.healthy(time.Now()) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
		return
	}

	m.mu.RLock()
	lastErr := m.lastErr
	m.mu.RUnlock()

	w.WriteHeader(http.StatusServiceUnavailable)
	if lastErr != nil {
		fmt.Fprintf(w, "last poll failed: %v\n", lastErr)
		return
	}
	fmt.Fprintln(w, "no successful poll yet")
}
