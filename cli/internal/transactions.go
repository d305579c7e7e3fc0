package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/domain/services"
)

func newTransactionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"transaction", "tx"},
		Short:   "Record and inspect stock transactions",
	}

	cmd.AddCommand(newTransactionsListCommand())
	cmd.AddCommand(newTransactionsGetCommand())
	cmd.AddCommand(newTransactionsCreateCommand())
	cmd.AddCommand(newTransactionsUpdateCommand())
	cmd.AddCommand(newTransactionsDeleteCommand())
	cmd.AddCommand(newTransactionsDetailsCommand())

	return cmd
}

func newTransactionsListCommand() *cobra.Command {
	var txType, startDate, endDate, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			parsedType, err := parseOptionalType(txType)
			if err != nil {
				return err
			}
			from, to, err := resolveDateRange(cliCtx, startDate, endDate)
			if err != nil {
				return err
			}

			page, err := cliCtx.Services.Transactions.List(cmd.Context(), services.TransactionFilter{
				TransactionType: parsedType,
				StartDate:       from,
				EndDate:         to,
				Search:          search,
			})
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), cliCtx.Output, page, func() string {
				return transactionsTable(page.Results)
			})
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "", "Transaction type (IN, OUT, ADJUST)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Earliest transaction date (YYYY-MM-DD, today, yesterday or -Nd)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Latest transaction date (YYYY-MM-DD, today, yesterday or -Nd)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search code, reference and supplier/customer")

	return cmd
}

func newTransactionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TRANSACTION_ID",
		Short: "Show a transaction and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			tx, err := cliCtx.Services.Transactions.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, tx, func() string {
				return transactionDetail(tx)
			})
		},
	}
}

func newTransactionsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a transaction from a JSON payload",
		Long: `Record a transaction with its product lines, e.g.

  {"transaction_type": "IN", "reference_number": "PO-1001", "supplier_customer": "Acme",
   "total_amount": "125.00",
   "details": [{"product": 3, "quantity": "10", "unit_price": "12.50"}]}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			var tx entities.Transaction
			if err := readPayload(file, cmd.InOrStdin(), &tx); err != nil {
				return err
			}
			if !tx.TransactionType.Valid() {
				return fmt.Errorf("transaction_type must be one of IN, OUT, ADJUST; got %q", tx.TransactionType)
			}

			created, err := cliCtx.Services.Transactions.Create(cmd.Context(), &tx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, created, func() string {
				return transactionDetail(created)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON payload file, - for stdin")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newTransactionsUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update TRANSACTION_ID",
		Short: "Replace a transaction with a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			var tx entities.Transaction
			if err := readPayload(file, cmd.InOrStdin(), &tx); err != nil {
				return err
			}

			updated, err := cliCtx.Services.Transactions.Update(cmd.Context(), id, &tx)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, updated, func() string {
				return transactionDetail(updated)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON payload file, - for stdin")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newTransactionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TRANSACTION_ID",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := getCliContext(cmd).Services.Transactions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Transaction %d deleted\n", id)
			return nil
		},
	}
}

func newTransactionsDetailsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "details TRANSACTION_ID",
		Short: "List the product lines of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cliCtx := getCliContext(cmd)

			page, err := cliCtx.Services.Transactions.Details(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cliCtx.Output, page, func() string {
				return stockDetailsTable(fmt.Sprintf("Lines of transaction %d", id), page.Results)
			})
		},
	}
}

func transactionsTable(txs []entities.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			strconv.Itoa(tx.TransactionID),
			tx.TransactionCode,
			string(tx.TransactionType),
			tx.TransactionDate.String(),
			tx.ReferenceNumber,
			tx.SupplierCustomer,
			formatDecimal(tx.TotalAmount),
			strconv.Itoa(tx.DetailsCount),
		})
	}
	return markdownTable("Transactions", []string{"ID", "Code", "Type", "Date", "Reference", "Supplier/Customer", "Total", "Lines"}, rows)
}

func transactionDetail(tx *entities.Transaction) string {
	typeLabel := tx.TransactionTypeDisplay
	if typeLabel == "" {
		typeLabel = string(tx.TransactionType)
	}
	out := markdownFields("Transaction "+tx.TransactionCode, [][2]string{
		{"ID", strconv.Itoa(tx.TransactionID)},
		{"Type", typeLabel},
		{"Date", tx.TransactionDate.String()},
		{"Reference", tx.ReferenceNumber},
		{"Supplier/Customer", tx.SupplierCustomer},
		{"Total amount", formatDecimal(tx.TotalAmount)},
		{"Created by", tx.CreatedBy},
		{"Notes", tx.Notes},
	})
	if len(tx.Details) > 0 {
		out += "\n" + stockDetailsTable("Lines", tx.Details)
	}
	return out
}
