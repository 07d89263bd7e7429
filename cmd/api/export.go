package main

import (
	"bufio"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront/internal/database"
	"storefront/internal/repository/postgres"
	"storefront/internal/service"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export-products",
	Short: "Write the product catalogue to an XLSX workbook",
	Example: `  storefront export-products --out products.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.NewPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		// Exporting never touches images.
		products := service.NewProductService(
			postgres.NewProductPostgres(db),
			postgres.NewSubcategoryPostgres(db),
			nil,
			logger,
		)

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		w := bufio.NewWriter(f)
		if err := products.Export(ctx, w); err != nil {
			_ = f.Close()
			return err
		}
		if err := w.Flush(); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", exportOut, err)
		}

		logger.WithFields(log.Fields{"event": "products_exported", "file": exportOut}).Info("export written")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "products.xlsx", "output file")
}
