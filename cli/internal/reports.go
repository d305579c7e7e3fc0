package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/domain/services"
)

func newInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory reports",
	}
	cmd.AddCommand(newInventorySummaryCommand())
	return cmd
}

func newInventorySummaryCommand() *cobra.Command {
	var (
		category string
		lowStock bool
		sortBy   string
		reverse  bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Stock level and value per product",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			switch sortBy {
			case "", services.SortByProductName, services.SortByProductCode, services.SortByCurrentStock, services.SortByTotalValue:
			default:
				return fmt.Errorf("--sort-by must be one of %s, %s, %s, %s",
					services.SortByProductName, services.SortByProductCode, services.SortByCurrentStock, services.SortByTotalValue)
			}

			page, err := cliCtx.Services.Reports.InventorySummary(cmd.Context(), services.InventoryFilter{
				Category:     category,
				LowStockOnly: lowStock,
				SortBy:       sortBy,
				Reverse:      reverse,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, page, func() string {
				return inventoryTable(page.Results)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only products in this category")
	cmd.Flags().BoolVar(&lowStock, "low-stock", false, "Only products flagged as low stock")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort key (product_name, product_code, current_stock, total_value)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Reverse the sort order")

	return cmd
}

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			stats, err := cliCtx.Services.Reports.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, stats, func() string {
				return dashboardTable(stats)
			})
		},
	}
}

func inventoryTable(items []entities.InventoryItem) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		low := ""
		if item.IsLowStock {
			low = "⚠ low"
		}
		rows = append(rows, []string{
			item.ProductCode,
			item.ProductName,
			item.Category,
			formatDecimal(item.CurrentStock) + " " + item.Unit,
			formatDecimal(item.UnitPrice),
			formatDecimal(item.TotalValue),
			item.LastMovementDate.String(),
			low,
		})
	}
	return markdownTable("Inventory summary",
		[]string{"Code", "Product", "Category", "Stock", "Unit price", "Value", "Last movement", ""}, rows)
}

func dashboardTable(stats *entities.DashboardStats) string {
	return markdownFields("Dashboard", [][2]string{
		{"Active products", strconv.Itoa(stats.TotalProducts)},
		{"Low stock products", strconv.Itoa(stats.LowStockProducts)},
		{"Total stock value", formatDecimal(stats.TotalStockValue)},
		{"Transactions today", strconv.Itoa(stats.TodayTransactions)},
		{"Transactions (7 days)", strconv.Itoa(stats.RecentTransactions)},
		{"Movements today", strconv.Itoa(stats.TodayMovements)},
	})
}
