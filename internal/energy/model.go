// Package energy implements the fixed-rate energy model: a pure mapping
// from an appliance-count vector to a daily kWh figure and its cost.
//
// The rate table and tariff are deployment-time constants, not runtime
// configuration. All rounding is to two decimal places, half away from
// zero (shopspring decimal.Round). Cost is derived from the already
// rounded energy figure, then rounded again.
package energy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sahilk27/wattwise/internal/domain/models"
)

// TariffPerKWh is the fixed currency-per-kWh conversion constant.
var TariffPerKWh = decimal.NewFromInt(8)

// HighConsumptionThresholdKWh flags days worth calling out on dashboards.
var HighConsumptionThresholdKWh = decimal.NewFromInt(15)

// Per-appliance kWh per unit per day.
var (
	rateLights         = decimal.NewFromFloat(0.2)
	rateFans           = decimal.NewFromFloat(0.2)
	rateTVs            = decimal.NewFromFloat(0.3)
	rateAC             = decimal.NewFromFloat(3.0)
	rateFridge         = decimal.NewFromFloat(3.1)
	rateWashingMachine = decimal.NewFromFloat(2.8)
)

// Compute returns the daily energy use and estimated cost for the given
// appliance counts, both rounded to two decimal places. Any negative count
// yields models.ErrNegativeCount. The function is deterministic and has no
// side effects.
func Compute(counts models.ApplianceCounts) (energyKWh, cost decimal.Decimal, err error) {
	for _, c := range []struct {
		name  string
		count int
	}{
		{"lights", counts.Lights},
		{"fans", counts.Fans},
		{"tvs", counts.TVs},
		{"ac", counts.AirConditioners},
		{"fridge", counts.Refrigerators},
		{"washing_machine", counts.WashingMachines},
	} {
		if c.count < 0 {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s = %d", models.ErrNegativeCount, c.name, c.count)
		}
	}

	total := decimal.Zero
	total = total.Add(rateLights.Mul(decimal.NewFromInt(int64(counts.Lights))))
	total = total.Add(rateFans.Mul(decimal.NewFromInt(int64(counts.Fans))))
	total = total.Add(rateTVs.Mul(decimal.NewFromInt(int64(counts.TVs))))
	total = total.Add(rateAC.Mul(decimal.NewFromInt(int64(counts.AirConditioners))))
	total = total.Add(rateFridge.Mul(decimal.NewFromInt(int64(counts.Refrigerators))))
	total = total.Add(rateWashingMachine.Mul(decimal.NewFromInt(int64(counts.WashingMachines))))

	energyKWh = total.Round(2)
	cost = energyKWh.Mul(TariffPerKWh).Round(2)
	return energyKWh, cost, nil
}
