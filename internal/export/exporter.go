package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/produktlister/backend/internal/domain"
)

const sheetName = "Export"

// Exporter writes product records into a timestamped xlsx workbook on disk.
type Exporter struct {
	dir    string
	prefix string
	logger *slog.Logger
}

// NewExporter creates an exporter writing into dir with the given filename prefix
func NewExporter(dir, prefix string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		dir:    dir,
		prefix: prefix,
		logger: logger,
	}
}

// Export writes one workbook with a header row and one row per record, failed
// records included. It returns the full path and the bare filename of the
// finished file. The workbook is written to a temp name first and renamed
// into place so readers never see a partial file.
func (e *Exporter) Export(products []*domain.ProductRecord) (string, string, error) {
	if len(products) == 0 {
		return "", "", domain.ErrEmptyExport
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", "", fmt.Errorf("renaming sheet: %w", err)
	}

	headerRow := make([]interface{}, len(Headers))
	for i, h := range Headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return "", "", fmt.Errorf("writing header row: %w", err)
	}

	for i, rec := range products {
		row := make([]interface{}, len(Headers))
		for j, h := range Headers {
			row[j] = ResolveColumn(h, rec)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", "", fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", "", fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	fileName := fmt.Sprintf("%s_%s.xlsx", e.prefix, time.Now().Format("20060102_150405"))
	filePath := filepath.Join(e.dir, fileName)
	tmpPath := filepath.Join(e.dir, "."+fileName+".tmp")

	if err := f.SaveAs(tmpPath); err != nil {
		return "", "", fmt.Errorf("saving workbook: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return "", "", fmt.Errorf("finalizing workbook: %w", err)
	}

	e.logger.Info("export written", "file", filePath, "rows", len(products))
	return filePath, fileName, nil
}
