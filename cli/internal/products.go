package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/domain/services"
)

func newProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage the product catalog",
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsGetCommand())
	cmd.AddCommand(newProductsCreateCommand())
	cmd.AddCommand(newProductsUpdateCommand())
	cmd.AddCommand(newProductsDeleteCommand())
	cmd.AddCommand(newProductsMovementsCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	var (
		category string
		active   string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			isActive, err := parseTriState("active", active)
			if err != nil {
				return err
			}

			page, err := cliCtx.Services.Products.List(cmd.Context(), services.ProductFilter{
				Category: category,
				IsActive: isActive,
				Search:   search,
			})
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), cliCtx.Output, page, func() string {
				return productsTable(page.Results)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only products in this category")
	cmd.Flags().StringVar(&active, "active", "", "Filter by status (true or false)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search code, name and description")

	return cmd
}

func newProductsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PRODUCT_ID",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			product, err := cliCtx.Services.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, product, func() string {
				return productDetail(product)
			})
		},
	}
}

func newProductsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product from a JSON payload",
		Long: `Create a product. The payload uses the API field names, e.g.

  {"product_code": "HAM-01", "product_name": "Hammer", "category": "Tools",
   "unit": "PCS", "unit_price": "12.50", "is_active": true}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			var product entities.Product
			if err := readPayload(file, cmd.InOrStdin(), &product); err != nil {
				return err
			}

			created, err := cliCtx.Services.Products.Create(cmd.Context(), &product)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, created, func() string {
				return productDetail(created)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON payload file, - for stdin")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newProductsUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update PRODUCT_ID",
		Short: "Replace a product with a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			var product entities.Product
			if err := readPayload(file, cmd.InOrStdin(), &product); err != nil {
				return err
			}

			updated, err := cliCtx.Services.Products.Update(cmd.Context(), id, &product)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, updated, func() string {
				return productDetail(updated)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON payload file, - for stdin")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newProductsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PRODUCT_ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := getCliContext(cmd).Services.Products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Product %d deleted\n", id)
			return nil
		},
	}
}

func newProductsMovementsCommand() *cobra.Command {
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "movements PRODUCT_ID",
		Short: "Show the stock movement history of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			from, to, err := resolveDateRange(cliCtx, startDate, endDate)
			if err != nil {
				return err
			}

			page, err := cliCtx.Services.Products.StockMovements(cmd.Context(), id, services.MovementFilter{
				StartDate: from,
				EndDate:   to,
			})
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), cliCtx.Output, page, func() string {
				rows := make([][]string, 0, len(page.Results))
				for _, m := range page.Results {
					rows = append(rows, []string{
						m.TransactionDate.String(),
						m.TransactionCode,
						string(m.TransactionType),
						formatDecimal(m.Quantity),
						formatDecimal(m.UnitPrice),
						formatDecimal(m.TotalPrice),
						m.ReferenceNumber,
					})
				}
				return markdownTable(fmt.Sprintf("Stock movements for product %d", id),
					[]string{"Date", "Transaction", "Type", "Quantity", "Unit price", "Total", "Reference"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Earliest transaction date (YYYY-MM-DD, today, yesterday or -Nd)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Latest transaction date (YYYY-MM-DD, today, yesterday or -Nd)")

	return cmd
}

func productsTable(products []entities.Product) string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ProductID),
			p.ProductCode,
			p.ProductName,
			p.Category,
			p.Unit,
			formatDecimal(p.UnitPrice),
			formatDecimal(p.CurrentStock),
			formatBool(p.IsActive),
		})
	}
	return markdownTable("Products", []string{"ID", "Code", "Name", "Category", "Unit", "Unit price", "Stock", "Active"}, rows)
}

func productDetail(p *entities.Product) string {
	return markdownFields(p.ProductName, [][2]string{
		{"ID", strconv.Itoa(p.ProductID)},
		{"Code", p.ProductCode},
		{"Description", p.Description},
		{"Category", p.Category},
		{"Unit", p.Unit},
		{"Unit price", formatDecimal(p.UnitPrice)},
		{"Current stock", formatDecimal(p.CurrentStock)},
		{"Active", formatBool(p.IsActive)},
		{"Created", p.CreatedAt.String()},
		{"Updated", p.UpdatedAt.String()},
	})
}
