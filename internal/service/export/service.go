// Package export turns consumption records into downloadable CSV and
// spreadsheet rows. Formatting only; retrieval stays with the ledger.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/domain/models"
	"github.com/sahilk27/wattwise/internal/repository/sheets"
)

const sheetRange = "Consumption!A:J"

// ErrNotConfigured reports that no spreadsheet destination is set up.
var ErrNotConfigured = errors.New("spreadsheet export is not configured")

var header = []string{
	"Date", "Day of Week", "Lights", "Fans", "TVs",
	"Air Conditioners", "Refrigerators", "Washing Machines",
	"Total Energy (kWh)", "Estimated Cost",
}

// Service renders export formats. The sheets exporter is optional.
type Service struct {
	exporter sheets.Exporter
	logger   *zap.Logger
}

// NewService wires an export service; pass a nil exporter to disable the
// spreadsheet destination.
func NewService(exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{exporter: exporter, logger: logger}
}

func row(rec models.ConsumptionRecord) []string {
	return []string{
		rec.Date,
		rec.DayOfWeek,
		strconv.Itoa(rec.Appliances.Lights),
		strconv.Itoa(rec.Appliances.Fans),
		strconv.Itoa(rec.Appliances.TVs),
		strconv.Itoa(rec.Appliances.AirConditioners),
		strconv.Itoa(rec.Appliances.Refrigerators),
		strconv.Itoa(rec.Appliances.WashingMachines),
		strconv.FormatFloat(rec.TotalEnergyKWh, 'f', 2, 64),
		strconv.FormatFloat(rec.EstimatedCost, 'f', 2, 64),
	}
}

// WriteCSV streams the records as CSV with a header row.
func (s *Service) WriteCSV(w io.Writer, records []models.ConsumptionRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.Date, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// PushToSheet appends the records (with a header row when the slice is
// non-empty) to the configured spreadsheet.
func (s *Service) PushToSheet(ctx context.Context, records []models.ConsumptionRecord) error {
	if s.exporter == nil {
		return ErrNotConfigured
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(records)+1)
	hdr := make([]interface{}, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	rows = append(rows, hdr)

	for _, rec := range records {
		cells := row(rec)
		out := make([]interface{}, len(cells))
		for i, c := range cells {
			out[i] = c
		}
		rows = append(rows, out)
	}

	if err := s.exporter.AppendRows(ctx, sheetRange, rows); err != nil {
		return fmt.Errorf("push consumption rows: %w", err)
	}

	s.logger.Info("consumption records exported to sheet", zap.Int("records", len(records)))
	return nil
}
