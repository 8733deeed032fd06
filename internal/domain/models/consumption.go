package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used as part of the record key.
const DateLayout = "2006-01-02"

// ApplianceCounts holds how many units of each appliance kind were in use
// on a given day. Counts are plain units, never fractions.
type ApplianceCounts struct {
	Lights          int `bson:"lights" json:"lights"`
	Fans            int `bson:"fans" json:"fans"`
	TVs             int `bson:"tvs" json:"tvs"`
	AirConditioners int `bson:"ac" json:"ac"`
	Refrigerators   int `bson:"fridge" json:"fridge"`
	WashingMachines int `bson:"washing_machine" json:"washing_machine"`
}

// ConsumptionRecord is the per-user per-day consumption document. At most
// one record exists per (username, date); resubmitting a day replaces the
// whole document.
type ConsumptionRecord struct {
	Username       string          `bson:"username" json:"username"`
	Date           string          `bson:"date" json:"date"`
	DayOfWeek      string          `bson:"day_of_week" json:"day_of_week"`
	Timestamp      time.Time       `bson:"timestamp" json:"timestamp"`
	Appliances     ApplianceCounts `bson:"appliances" json:"appliances"`
	TotalEnergyKWh float64         `bson:"total_energy_kwh" json:"total_energy_kwh"`
	EstimatedCost  float64         `bson:"estimated_cost" json:"estimated_cost"`
}

// Validate checks that a document read back from storage carries the
// required field set. Documents written by older schema-less clients may
// miss fields; those are reported as corrupt rather than silently zeroed.
func (r ConsumptionRecord) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("%w: missing username", ErrCorruptRecord)
	}
	if r.Date == "" {
		return fmt.Errorf("%w: missing date", ErrCorruptRecord)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: bad date %q", ErrCorruptRecord, r.Date)
	}
	if r.TotalEnergyKWh < 0 || r.EstimatedCost < 0 {
		return fmt.Errorf("%w: negative totals for %s", ErrCorruptRecord, r.Date)
	}
	return nil
}
