// Package trip derives travel statistics from a route length: estimated
// driving time and fare, and the three text lines shown in the HUD panel.
package trip

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Defaults for a Tariff.
const (
	DefaultSpeedPerHour = 50.0  // distance units per hour
	DefaultCostPerUnit  = 3.2   // currency per distance unit
	DefaultCurrency     = "BDT" // label for currency
)

// ErrBadTariff indicates a negative or non-finite speed or rate.
var ErrBadTariff = errors.New("trip: bad tariff")

// Tariff holds the constants used to turn a distance into time and money.
type Tariff struct {
	SpeedPerHour float64 `mapstructure:"speed" json:"speed" yaml:"speed"`
	CostPerUnit  float64 `mapstructure:"cost_per_unit" json:"cost_per_unit" yaml:"cost_per_unit"`
	Currency     string  `mapstructure:"currency" json:"currency" yaml:"currency"`
}

// DefaultTariff returns 50 units/h, 3.2 BDT per unit.
func DefaultTariff() Tariff {
	return Tariff{
		SpeedPerHour: DefaultSpeedPerHour,
		CostPerUnit:  DefaultCostPerUnit,
		Currency:     DefaultCurrency,
	}
}

// Validate rejects negative or non-finite values. A zero speed is allowed
// and yields a zero travel time.
func (t Tariff) Validate() error {
	if t.SpeedPerHour < 0 || math.IsNaN(t.SpeedPerHour) || math.IsInf(t.SpeedPerHour, 0) {
		return fmt.Errorf("%w: speed %g", ErrBadTariff, t.SpeedPerHour)
	}
	if t.CostPerUnit < 0 || math.IsNaN(t.CostPerUnit) || math.IsInf(t.CostPerUnit, 0) {
		return fmt.Errorf("%w: cost per unit %g", ErrBadTariff, t.CostPerUnit)
	}

	return nil
}

// Summary is the derived statistics for one route.
type Summary struct {
	Distance float64 `json:"distance"`
	Hours    float64 `json:"hours"`
	Cost     float64 `json:"cost"`
	Currency string  `json:"currency"`
}

// Summarize computes hours = distance / speed (0 when speed <= 0) and
// cost = distance * rate.
func Summarize(distance float64, t Tariff) Summary {
	var hours float64
	if t.SpeedPerHour > 0 {
		hours = distance / t.SpeedPerHour
	}

	return Summary{
		Distance: distance,
		Hours:    hours,
		Cost:     distance * t.CostPerUnit,
		Currency: t.Currency,
	}
}

// DistanceText renders the distance as a rounded integer, e.g. "697KM".
// Halves round away from zero.
func (s Summary) DistanceText() string {
	return strconv.FormatInt(int64(math.Round(s.Distance)), 10) + "KM"
}

// TimeText renders the hours with one decimal, e.g. "13.9H".
func (s Summary) TimeText() string {
	return strconv.FormatFloat(s.Hours, 'f', 1, 64) + "H"
}

// CostText renders the fare, e.g. "COST BDT 2230.4".
func (s Summary) CostText() string {
	return "COST " + s.Currency + " " + strconv.FormatFloat(s.Cost, 'f', 1, 64)
}

// Lines returns the HUD lines bottom-up: distance, time, cost.
func (s Summary) Lines() [3]string {
	return [3]string{s.DistanceText(), s.TimeText(), s.CostText()}
}
