package models

// UsageSummary aggregates a date-range window of consumption records. It is
// recomputed on every read; Days == 0 is the defined no-data state and all
// other fields are zero in that case.
type UsageSummary struct {
	Days                 int                 `json:"days"`
	TotalEnergyKWh       float64             `json:"total_energy_kwh"`
	TotalCost            float64             `json:"total_cost"`
	AverageDailyKWh      float64             `json:"average_daily_kwh"`
	MonthlyProjectionKWh float64             `json:"monthly_projection_kwh"`
	HighConsumptionDays  []ConsumptionRecord `json:"high_consumption_days"`
}
