package domain

import "github.com/shopspring/decimal"

// PricingBreakdown holds every wage and allowance component plus the final
// payable amount. Recomputed fresh per invocation, never mutated in place.
type PricingBreakdown struct {
	GroupRate      decimal.Decimal `json:"group_rate"`
	SoloWorkedRate decimal.Decimal `json:"solo_worked_rate"`
	SoloAbsentRate decimal.Decimal `json:"solo_absent_rate"`
	RateSource     string          `json:"rate_source"`

	GroupWorkedDays int `json:"group_worked_days"`
	GroupAbsentDays int `json:"group_absent_days"`
	SoloWorkedDays  int `json:"solo_worked_days"`
	SoloAbsentDays  int `json:"solo_absent_days"`

	WageTotal   decimal.Decimal `json:"wage_total"`
	MealTotal   decimal.Decimal `json:"meal_total"`
	RoadTotal   decimal.Decimal `json:"road_total"`
	PaidTotal   decimal.Decimal `json:"paid_total"`
	PrepayTotal decimal.Decimal `json:"prepay_total"`
	Payable     decimal.Decimal `json:"payable"`
}
