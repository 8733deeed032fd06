package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/domain/models"
	"github.com/sahilk27/wattwise/internal/service/ledger"
)

const defaultWindowDays = 14

// ConsumptionHandler exposes the consumption ledger over HTTP.
type ConsumptionHandler struct {
	ledger *ledger.Service
	logger *zap.Logger
}

// NewConsumptionHandler constructs the HTTP handler adapter.
func NewConsumptionHandler(svc *ledger.Service, logger *zap.Logger) *ConsumptionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsumptionHandler{ledger: svc, logger: logger}
}

type submitRequest struct {
	Appliances models.ApplianceCounts `json:"appliances"`
}

// Submit computes and upserts today's consumption record.
func (h *ConsumptionHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.ledger.SubmitToday(c.Request.Context(), usernameFrom(c), req.Appliances)
	if errors.Is(err, models.ErrNegativeCount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to save consumption", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save consumption data"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Range returns the record window plus its derived summary. "days" defaults
// to 14 and counts back from today inclusive.
func (h *ConsumptionHandler) Range(c *gin.Context) {
	days := defaultWindowDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = parsed
	}

	records, err := h.ledger.GetRange(c.Request.Context(), usernameFrom(c), days)
	if errors.Is(err, models.ErrInvalidWindow) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to load consumption range", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load consumption data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"summary": ledger.Summarize(records),
	})
}

// Today returns today's record when present, 404 otherwise. The UI uses
// this to warn that a submission will overwrite the existing entry.
func (h *ConsumptionHandler) Today(c *gin.Context) {
	records, err := h.ledger.GetRange(c.Request.Context(), usernameFrom(c), 0)
	if err != nil {
		h.logger.Error("failed to load today's record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load consumption data"})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no record for today", "date": h.ledger.Today()})
		return
	}

	c.JSON(http.StatusOK, records[0])
}
