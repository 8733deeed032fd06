package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/service/export"
	"github.com/sahilk27/wattwise/internal/service/ledger"
)

// The export window covers a full year of daily records.
const exportWindowDays = 365

// ExportHandler streams CSV downloads and pushes spreadsheet exports.
type ExportHandler struct {
	ledger *ledger.Service
	export *export.Service
	logger *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(ledgerSvc *ledger.Service, exportSvc *export.Service, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{ledger: ledgerSvc, export: exportSvc, logger: logger}
}

// CSV streams the user's records as a CSV attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	username := usernameFrom(c)

	records, err := h.ledger.GetRange(c.Request.Context(), username, exportWindowDays)
	if err != nil {
		h.logger.Error("failed to load records for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load consumption data"})
		return
	}

	filename := fmt.Sprintf("energy_data_%s_%s.csv", username, time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.export.WriteCSV(c.Writer, records); err != nil {
		h.logger.Error("failed streaming csv export", zap.Error(err))
	}
}

// Sheets appends the user's records to the configured spreadsheet.
func (h *ExportHandler) Sheets(c *gin.Context) {
	records, err := h.ledger.GetRange(c.Request.Context(), usernameFrom(c), exportWindowDays)
	if err != nil {
		h.logger.Error("failed to load records for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load consumption data"})
		return
	}

	err = h.export.PushToSheet(c.Request.Context(), records)
	if errors.Is(err, export.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet export is not configured"})
		return
	}
	if err != nil {
		h.logger.Error("failed pushing records to sheet", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export to spreadsheet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exported": len(records)})
}
