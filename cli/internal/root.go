package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/devilmonastery/warehouse/internal/client"
	"github.com/devilmonastery/warehouse/internal/config"
	"github.com/devilmonastery/warehouse/internal/domain/services"
	"github.com/devilmonastery/warehouse/internal/pkg/logger"
	"github.com/devilmonastery/warehouse/internal/tokenstore"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const cliContextKey contextKey = "cliContext"

// Output formats accepted by --output
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// CliContext holds shared CLI context
type CliContext struct {
	Config   *config.Config
	Client   *client.Client
	Tokens   client.TokenStore
	Services *services.Services
	Logger   *slog.Logger
	Output   string
}

// Global flags
var (
	configPath    string
	apiURL        string
	outputFormat  string
	logLevel      string
	logFile       string
	logToStderr   bool
	alsoLogStderr bool
	logFormat     string
)

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	var ctx CliContext

	rootCmd := &cobra.Command{
		Use:           "warehouse",
		Short:         "CLI for the warehouse inventory API",
		Long:          `A command line interface for managing products, stock transactions and inventory reports via the warehouse REST API.`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors (main.go handles it)
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if apiURL != "" {
				cfg.API.URL = apiURL
			}

			// Setup logging once the config can supply defaults
			if err := setupLogging(cfg, cmd.Name()); err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}

			switch outputFormat {
			case OutputTable, OutputJSON:
			default:
				return fmt.Errorf("unknown output format %q (want %s or %s)", outputFormat, OutputTable, OutputJSON)
			}

			ctx.Config = cfg
			ctx.Output = outputFormat
			ctx.Logger = logger.WithCommand(slog.Default().With("component", "cli"), cmd.CommandPath())
			ctx.Logger.Debug("CLI started",
				"api_url", cfg.API.URL,
				"environment", cfg.Environment)

			// Config commands never talk to the backend
			if !isConfigCommand(cmd) {
				if err := connect(cmd.Context(), &ctx); err != nil {
					return err
				}
			}

			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, &ctx))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// Release redis connections
			if closer, ok := ctx.Tokens.(io.Closer); ok {
				return closer.Close()
			}
			return nil
		},
	}

	rootCmd.AddCommand(newAuthCommand())
	rootCmd.AddCommand(newProductsCommand())
	rootCmd.AddCommand(newTransactionsCommand())
	rootCmd.AddCommand(newStockDetailsCommand())
	rootCmd.AddCommand(newInventoryCommand())
	rootCmd.AddCommand(newDashboardCommand())
	rootCmd.AddCommand(newMonitorCommand())
	rootCmd.AddCommand(newConfigCommand())

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default: $WAREHOUSE_CONFIG, ./warehouse.yaml, ~/.config/warehouse/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"API base URL, overrides config and $WAREHOUSE_API_URL")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", OutputTable,
		"Output format (table, json)")

	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error); defaults to debug in development, warn otherwise")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Log file path, or auto for a per-command file (if specified, logs to file instead of stderr)")
	rootCmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false,
		"Log to stderr (default behavior unless --log-file specified)")
	rootCmd.PersistentFlags().BoolVar(&alsoLogStderr, "alsologtostderr", false,
		"Log to both file and stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Log format (text, json)")

	return rootCmd
}

// connect builds the token store, API client and services
func connect(ctx context.Context, cliCtx *CliContext) error {
	tokens, err := tokenstore.New(ctx, cliCtx.Config)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	apiClient, err := client.NewClient(cliCtx.Config, tokens,
		client.WithLogger(slog.Default().With("component", "api-client")))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	cliCtx.Tokens = tokens
	cliCtx.Client = apiClient
	cliCtx.Services = services.New(apiClient)
	return nil
}

// setupLogging configures the global logger from CLI flags, falling back to the config.
// A log file of "auto" resolves to a per-command file under the user config dir.
func setupLogging(cfg *config.Config, command string) error {
	level := logLevel
	if level == "" {
		level = cfg.LogLevel()
	}
	file := logFile
	if file == "" {
		file = cfg.Logging.File
	}
	if file == "auto" {
		file = logger.GetDefaultLogFile(command)
	}
	format := logFormat
	if format == "" {
		format = cfg.Logging.Format
	}

	globalLogger, err := logger.SetupLogger(logger.Config{
		Level:         logger.ParseLevel(level),
		LogFile:       file,
		LogToStderr:   logToStderr || file == "",
		AlsoLogStderr: alsoLogStderr,
		Format:        format,
	})
	if err != nil {
		return err
	}

	// Set as default logger
	slog.SetDefault(globalLogger)
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// getCliContext extracts the CLI context from the command context
func getCliContext(cmd *cobra.Command) *CliContext {
	return cmd.Context().Value(cliContextKey).(*CliContext)
}
