package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"bankist/app"
	"bankist/config"
	"bankist/store"
)

var (
	configPath string
	logLevel   string

	// Loaded once per invocation by rootCmd's PersistentPreRunE.
	cfg    config.Config
	logger *log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bankist",
	Short: "A single-user banking ledger",
	Long: `bankist runs a small in-memory bank: a fixed set of accounts seeded from
configuration, a single session, and the transfer, loan, sort and close
operations on the logged-in account.

Use "repl" for an interactive session, "serve" for the JSON API, or "demo"
for a scripted walk-through.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		logger, err = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file merged over the built-in configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "bankist",
		ReportTimestamp: true,
	}), nil
}

// newLedger builds a service over fresh in-memory stores and seeds it with
// the configured accounts.
func newLedger(c config.Config, l *log.Logger) (*app.LedgerService, error) {
	accounts, err := c.BootstrapAccounts()
	if err != nil {
		return nil, err
	}
	service := app.NewLedgerService(store.NewInMemoryAccountStore(), store.NewInMemoryEventStore(), app.SystemClock{}, l)
	if err := service.Seed(accounts); err != nil {
		return nil, err
	}
	return service, nil
}
