package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"logistics-insight/internal/core/logger"
	"logistics-insight/internal/features/ingest/domain"
	shipments "logistics-insight/internal/features/shipments/domain"
	shipmentports "logistics-insight/internal/features/shipments/ports"

	"go.uber.org/zap"
)

// ImportService orchestrates whole-file dataset imports: parse, normalize,
// and atomically replace the current dataset.
type ImportService struct {
	repo shipmentports.ShipmentRepository
}

// NewImportService creates a new ImportService.
func NewImportService(repo shipmentports.ShipmentRepository) *ImportService {
	return &ImportService{
		repo: repo,
	}
}

// Import parses raw CSV bytes and replaces the current dataset with the
// normalized records. The previous dataset stays untouched when parsing
// yields nothing or the storage replace fails.
func (s *ImportService) Import(ctx context.Context, raw []byte) domain.ImportResult {
	records, err := parseCSV(raw)
	if err != nil {
		logger.Get().Error("CSV import failed", zap.Error(err))
		return domain.ImportResult{
			Success: false,
			Message: fmt.Sprintf("import failed: %v", err),
		}
	}

	if len(records) == 0 {
		return domain.ImportResult{
			Success: false,
			Message: "no data records could be processed",
		}
	}

	if err := s.repo.ReplaceAll(ctx, records); err != nil {
		logger.Get().Error("Dataset replace failed", zap.Error(err))
		return domain.ImportResult{
			Success: false,
			Message: fmt.Sprintf("import failed: %v", err),
		}
	}

	logger.Get().Info("CSV import completed", zap.Int("count", len(records)))
	return domain.ImportResult{
		Success: true,
		Message: fmt.Sprintf("successfully imported %d shipment records", len(records)),
		Count:   len(records),
	}
}

// parseCSV reads delimited rows with a header line into normalized shipment
// records. Column order is irrelevant, unknown columns are ignored and
// missing columns fall back to defaults during normalization.
func parseCSV(raw []byte) ([]shipments.Shipment, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	records := make([]shipments.Shipment, 0, 64)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// One malformed row must not abort the whole import.
			logger.Get().Warn("Skipping malformed CSV row",
				zap.Int("line", line),
				zap.Error(err),
			)
			if len(record) == 0 {
				continue
			}
		}

		row := make(domain.RawRow, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		records = append(records, domain.Normalize(row))
	}

	return records, nil
}
