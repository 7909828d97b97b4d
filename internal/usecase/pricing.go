package usecase

import (
	"github.com/shopspring/decimal"

	"wage-settlement/internal/config"
	"wage-settlement/internal/domain"
)

// RateResolution is the effective daily rate for the target person plus a
// label naming where it came from.
type RateResolution struct {
	Rate   decimal.Decimal
	Source string
}

// Rate source labels rendered into the report.
const (
	RateSourceDirective = "口令"
	RateSourceSystem    = "系统"
	RateSourceRole      = "角色默认"
	RateSourceZero      = "零"
)

// ResolveDailyRate picks the group-day rate for the directive's person:
// directive-level override beats the system fixed-rate table (matched on the
// normalized name), which beats the role default, which beats zero.
func ResolveDailyRate(directive domain.Directive, rates config.RateTable) RateResolution {
	key := nameKey(directive.PersonName)
	if rate, ok := directive.FixedDailyRates[key]; ok {
		return RateResolution{Rate: rate, Source: RateSourceDirective}
	}
	if directive.Options.DailyGroupRate != nil {
		return RateResolution{Rate: *directive.Options.DailyGroupRate, Source: RateSourceDirective}
	}
	if rate, ok := rates.FixedDaily[key]; ok {
		return RateResolution{Rate: rate, Source: RateSourceSystem}
	}
	if rate, ok := rates.RoleDaily[directive.Role]; ok {
		return RateResolution{Rate: rate, Source: RateSourceRole}
	}
	return RateResolution{Rate: decimal.Zero, Source: RateSourceZero}
}

// RoadPassphraseOff disables the road allowance component regardless of the
// project-ended flag.
const RoadPassphraseOff = "无路补"

// ComputePricing derives the full price breakdown from normalized attendance
// and classified payments. Fixed-point arithmetic throughout, no rounding
// mid-computation.
func ComputePricing(
	attendance domain.AttendanceResult,
	payment domain.PaymentResult,
	directive domain.Directive,
	rates config.RateTable,
) domain.PricingBreakdown {
	rate := ResolveDailyRate(directive, rates)

	soloWorkedRate := rates.SoloWorked
	if directive.Options.SingleYesRate != nil {
		soloWorkedRate = *directive.Options.SingleYesRate
	}
	soloAbsentRate := rates.SoloAbsent
	if directive.Options.SingleNoRate != nil {
		soloAbsentRate = *directive.Options.SingleNoRate
	}

	breakdown := domain.PricingBreakdown{
		GroupRate:       rate.Rate,
		SoloWorkedRate:  soloWorkedRate,
		SoloAbsentRate:  soloAbsentRate,
		RateSource:      rate.Source,
		GroupWorkedDays: len(attendance.DateSets.GroupWorked),
		GroupAbsentDays: len(attendance.DateSets.GroupAbsent),
		SoloWorkedDays:  len(attendance.DateSets.SoloWorked),
		SoloAbsentDays:  len(attendance.DateSets.SoloAbsent),
	}

	breakdown.WageTotal = rate.Rate.Mul(days(breakdown.GroupWorkedDays)).
		Add(soloWorkedRate.Mul(days(breakdown.SoloWorkedDays))).
		Add(soloAbsentRate.Mul(days(breakdown.SoloAbsentDays)))

	// Only group-mode days earn meal allowance.
	breakdown.MealTotal = rates.MealWorked.Mul(days(breakdown.GroupWorkedDays)).
		Add(rates.MealAbsent.Mul(days(breakdown.GroupAbsentDays)))

	breakdown.RoadTotal = roadAllowance(payment, directive, rates.RoadCap)
	breakdown.PaidTotal = payment.PaidTotal()
	breakdown.PrepayTotal = payment.PrepayTotal()
	breakdown.Payable = breakdown.WageTotal.
		Add(breakdown.MealTotal).
		Add(breakdown.RoadTotal).
		Sub(breakdown.PaidTotal).
		Sub(breakdown.PrepayTotal)
	return breakdown
}

// roadAllowance is min(cap, Σ road items), unconditionally zero unless the
// project is flagged ended, and forced to zero by the 无路补 passphrase.
func roadAllowance(payment domain.PaymentResult, directive domain.Directive, cap decimal.Decimal) decimal.Decimal {
	if directive.ProjectEnded == nil || !*directive.ProjectEnded {
		return decimal.Zero
	}
	if directive.Options.RoadPassphrase == RoadPassphraseOff {
		return decimal.Zero
	}
	raw := payment.RoadRawTotal()
	if raw.GreaterThan(cap) {
		return cap
	}
	return raw
}

func days(count int) decimal.Decimal {
	return decimal.NewFromInt(int64(count))
}
