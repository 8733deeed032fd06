// Package ledger owns the per-user, per-day consumption records: idempotent
// upsert of today's entry, time-ranged retrieval, and the derived window
// aggregates.
package ledger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/domain/models"
	"github.com/sahilk27/wattwise/internal/energy"
	"github.com/sahilk27/wattwise/internal/repository/mongodb"
)

// Service implements the consumption ledger on top of the storage
// repository. "Today" is computed in the configured location.
type Service struct {
	repo   mongodb.ConsumptionRepository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a ledger service instance.
func NewService(repo mongodb.ConsumptionRepository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, loc: loc, logger: logger, now: time.Now}
}

// SubmitResult is the outcome of a daily submission.
type SubmitResult struct {
	Record      models.ConsumptionRecord `json:"record"`
	Overwritten bool                     `json:"overwritten"`
}

// SubmitToday computes energy and cost for the given appliance counts and
// upserts the record keyed by (username, today). Resubmitting the same day
// replaces the whole document; last write wins, there is no merge and no
// version check.
func (s *Service) SubmitToday(ctx context.Context, username string, counts models.ApplianceCounts) (*SubmitResult, error) {
	energyKWh, cost, err := energy.Compute(counts)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.loc)
	record := models.ConsumptionRecord{
		Username:       username,
		Date:           today.Format(models.DateLayout),
		DayOfWeek:      today.Weekday().String(),
		Timestamp:      today,
		Appliances:     counts,
		TotalEnergyKWh: energyKWh.InexactFloat64(),
		EstimatedCost:  cost.InexactFloat64(),
	}

	replaced, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("save consumption record: %w", err)
	}

	s.logger.Info("daily consumption saved",
		zap.String("username", username),
		zap.String("date", record.Date),
		zap.Float64("energy_kwh", record.TotalEnergyKWh),
		zap.Bool("overwritten", replaced))

	return &SubmitResult{Record: record, Overwritten: replaced}, nil
}

// GetRange returns the user's records with dates in [today-windowDays,
// today], ascending by date. windowDays == 0 yields at most today's record.
// No records is an empty slice, not an error.
func (s *Service) GetRange(ctx context.Context, username string, windowDays int) ([]models.ConsumptionRecord, error) {
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidWindow, windowDays)
	}

	today := s.now().In(s.loc)
	from := today.AddDate(0, 0, -windowDays).Format(models.DateLayout)
	to := today.Format(models.DateLayout)

	records, err := s.repo.FindRange(ctx, username, from, to)
	if err != nil {
		return nil, fmt.Errorf("load consumption range: %w", err)
	}
	return records, nil
}

// Exists reports whether a record is already stored for (username, date).
// Callers use it to warn before an overwrite.
func (s *Service) Exists(ctx context.Context, username, date string) (bool, error) {
	ok, err := s.repo.Exists(ctx, username, date)
	if err != nil {
		return false, fmt.Errorf("check consumption record: %w", err)
	}
	return ok, nil
}

// Today returns today's calendar date in the ledger's location.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(models.DateLayout)
}
