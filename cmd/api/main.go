package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/logging"
)

var (
	// logLevel overrides LOG_LEVEL when set.
	logLevel string

	cfg    *config.AppConfig
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront shop: HTML pages, JSON API and admin tooling",
	Long: `storefront serves the shop pages and the JSON API behind them.

Configuration comes from the environment; a .env file in the working
directory is loaded first when present.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			c.LogLevel = logLevel
		}
		cfg = c
		logger = logging.New(os.Stdout, cfg.LogLevel, cfg.Location())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
}

// @title Storefront API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
