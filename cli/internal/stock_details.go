package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/domain/services"
)

func newStockDetailsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stock-details",
		Aliases: []string{"stock-detail", "lines"},
		Short:   "Manage individual transaction lines",
	}

	cmd.AddCommand(newStockDetailsListCommand())
	cmd.AddCommand(newStockDetailsGetCommand())
	cmd.AddCommand(newStockDetailsCreateCommand())
	cmd.AddCommand(newStockDetailsUpdateCommand())
	cmd.AddCommand(newStockDetailsDeleteCommand())

	return cmd
}

func newStockDetailsListCommand() *cobra.Command {
	var (
		product      int
		transaction  int
		movementType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stock details",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			parsedType, err := parseOptionalType(movementType)
			if err != nil {
				return err
			}

			page, err := cliCtx.Services.StockDetails.List(cmd.Context(), services.StockDetailFilter{
				Product:      product,
				Transaction:  transaction,
				MovementType: parsedType,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, page, func() string {
				return stockDetailsTable("Stock details", page.Results)
			})
		},
	}

	cmd.Flags().IntVar(&product, "product", 0, "Only lines for this product id")
	cmd.Flags().IntVar(&transaction, "transaction", 0, "Only lines of this transaction id")
	cmd.Flags().StringVar(&movementType, "movement-type", "", "Movement type (IN, OUT, ADJUST)")

	return cmd
}

func newStockDetailsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DETAIL_ID",
		Short: "Show a stock detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			detail, err := cliCtx.Services.StockDetails.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, detail, func() string {
				return stockDetailsTable(fmt.Sprintf("Stock detail %d", id), []entities.StockDetail{*detail})
			})
		},
	}
}

func newStockDetailsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a line to a transaction from a JSON payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			var detail entities.StockDetail
			if err := readPayload(file, cmd.InOrStdin(), &detail); err != nil {
				return err
			}

			created, err := cliCtx.Services.StockDetails.Create(cmd.Context(), &detail)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, created, func() string {
				return stockDetailsTable("Created", []entities.StockDetail{*created})
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON payload file, - for stdin")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newStockDetailsUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update DETAIL_ID",
		Short: "Replace a stock detail with a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			var detail entities.StockDetail
			if err := readPayload(file, cmd.InOrStdin(), &detail); err != nil {
				return err
			}

			updated, err := cliCtx.Services.StockDetails.Update(cmd.Context(), id, &detail)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, updated, func() string {
				return stockDetailsTable("Updated", []entities.StockDetail{*updated})
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON payload file, - for stdin")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newStockDetailsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DETAIL_ID",
		Short: "Delete a stock detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := getCliContext(cmd).Services.StockDetails.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Stock detail %d deleted\n", id)
			return nil
		},
	}
}

func stockDetailsTable(title string, details []entities.StockDetail) string {
	rows := make([][]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, []string{
			strconv.Itoa(d.DetailID),
			strconv.Itoa(d.Transaction),
			d.ProductCode,
			d.ProductName,
			string(d.MovementType),
			formatDecimal(d.Quantity),
			formatDecimal(d.UnitPrice),
			formatDecimal(d.TotalPrice),
			d.BatchNumber,
			d.ExpiryDate.String(),
		})
	}
	return markdownTable(title,
		[]string{"ID", "Transaction", "Code", "Product", "Movement", "Quantity", "Unit price", "Total", "Batch", "Expiry"}, rows)
}
