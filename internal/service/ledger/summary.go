package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/sahilk27/wattwise/internal/domain/models"
	"github.com/sahilk27/wattwise/internal/energy"
)

const projectionDays = 30

// Summarize derives the window aggregates from an ordered record slice.
// Everything is recomputed on every call; the data volume is bounded by one
// record per day. An empty slice yields the zero summary with Days == 0.
func Summarize(records []models.ConsumptionRecord) models.UsageSummary {
	if len(records) == 0 {
		return models.UsageSummary{HighConsumptionDays: []models.ConsumptionRecord{}}
	}

	totalEnergy := decimal.Zero
	totalCost := decimal.Zero
	high := make([]models.ConsumptionRecord, 0)

	for _, rec := range records {
		e := decimal.NewFromFloat(rec.TotalEnergyKWh)
		totalEnergy = totalEnergy.Add(e)
		totalCost = totalCost.Add(decimal.NewFromFloat(rec.EstimatedCost))
		if e.GreaterThan(energy.HighConsumptionThresholdKWh) {
			high = append(high, rec)
		}
	}

	days := int64(len(records))
	averageDaily := totalEnergy.Div(decimal.NewFromInt(days)).Round(2)
	monthlyProjection := averageDaily.Mul(decimal.NewFromInt(projectionDays)).Round(2)

	return models.UsageSummary{
		Days:                 len(records),
		TotalEnergyKWh:       totalEnergy.Round(2).InexactFloat64(),
		TotalCost:            totalCost.Round(2).InexactFloat64(),
		AverageDailyKWh:      averageDaily.InexactFloat64(),
		MonthlyProjectionKWh: monthlyProjection.InexactFloat64(),
		HighConsumptionDays:  high,
	}
}
