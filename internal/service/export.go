package service

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"storefront/internal/model"
)

// ExportSheet is the worksheet name of product exports.
const ExportSheet = "Products List"

var exportHeader = []any{"ID", "Name", "Price", "Description", "Brand", "Rating", "Quantity", "Subcategory"}

func (s *productService) Export(ctx context.Context, w io.Writer) error {
	items, err := s.products.All(ctx)
	if err != nil {
		return err
	}
	if err := WriteProductsXLSX(items, w); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{"event": "products_exported", "rows": len(items)}).Info("products exported")
	return nil
}

// WriteProductsXLSX writes items as a single-sheet workbook with a header row.
func WriteProductsXLSX(items []model.Product, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, p := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{p.ID, p.Name, p.Price, p.Description, p.Brand, p.Rating, p.Quantity, p.SubcategoryName}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
