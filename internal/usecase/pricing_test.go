package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"wage-settlement/internal/config"
	"wage-settlement/internal/domain"
	"wage-settlement/internal/usecase"
)

func boolPtr(v bool) *bool { return &v }

func decimalPtr(value int64) *decimal.Decimal {
	d := decimal.NewFromInt(value)
	return &d
}

func paidItem(amount int64) domain.PaymentItem {
	return domain.PaymentItem{Amount: decimal.NewFromInt(amount)}
}

func TestResolveDailyRate_PriorityChain(t *testing.T) {
	rates := config.Default()

	tests := []struct {
		name       string
		directive  domain.Directive
		wantRate   string
		wantSource string
	}{
		{
			name: "directive fixed rate wins over everything",
			directive: domain.Directive{
				PersonName:      "余步云",
				Role:            domain.RoleLeader,
				FixedDailyRates: map[string]decimal.Decimal{"余步云": decimal.NewFromInt(280)},
				Options:         domain.Options{DailyGroupRate: decimalPtr(310)},
			},
			wantRate:   "280",
			wantSource: usecase.RateSourceDirective,
		},
		{
			name: "daily group override beats the system table",
			directive: domain.Directive{
				PersonName: "余步云",
				Role:       domain.RoleLeader,
				Options:    domain.Options{DailyGroupRate: decimalPtr(310)},
			},
			wantRate:   "310",
			wantSource: usecase.RateSourceDirective,
		},
		{
			name:       "system fixed rate beats the role default",
			directive:  domain.Directive{PersonName: "余步云", Role: domain.RoleLeader},
			wantRate:   "260",
			wantSource: usecase.RateSourceSystem,
		},
		{
			name:       "system fixed rate matches the stripped name key",
			directive:  domain.Directive{PersonName: "余步云（P012）", Role: domain.RoleLeader},
			wantRate:   "260",
			wantSource: usecase.RateSourceSystem,
		},
		{
			name:       "leader role default",
			directive:  domain.Directive{PersonName: "王怀宇", Role: domain.RoleLeader},
			wantRate:   "300",
			wantSource: usecase.RateSourceRole,
		},
		{
			name:       "member role default",
			directive:  domain.Directive{PersonName: "王怀宇", Role: domain.RoleMember},
			wantRate:   "260",
			wantSource: usecase.RateSourceRole,
		},
		{
			name:       "unknown role falls to zero",
			directive:  domain.Directive{PersonName: "王怀宇", Role: "监理"},
			wantRate:   "0",
			wantSource: usecase.RateSourceZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolution := usecase.ResolveDailyRate(tt.directive, rates)
			assert.Equal(t, tt.wantRate, resolution.Rate.String())
			assert.Equal(t, tt.wantSource, resolution.Source)
		})
	}
}

func TestComputePricing_FullFormula(t *testing.T) {
	attendance := domain.AttendanceResult{DateSets: domain.DateSets{
		GroupWorked: []string{"2025-11-01", "2025-11-02", "2025-11-03"},
		GroupAbsent: []string{"2025-11-04"},
		SoloWorked:  []string{"2025-11-05"},
		SoloAbsent:  []string{"2025-11-06"},
	}}
	payment := domain.PaymentResult{
		PaidItems:          []domain.PaymentItem{paidItem(500)},
		PrepayItems:        []domain.PaymentItem{paidItem(200)},
		RoadAllowanceItems: []domain.PaymentItem{paidItem(120)},
	}
	directive := domain.Directive{
		PersonName:   "王怀宇",
		Role:         domain.RoleLeader,
		ProjectEnded: boolPtr(true),
	}

	breakdown := usecase.ComputePricing(attendance, payment, directive, config.Default())

	// 300×3 + 200×1 + 100×1
	assert.Equal(t, "1200", breakdown.WageTotal.String())
	// 30×3 + 15×1, group days only
	assert.Equal(t, "105", breakdown.MealTotal.String())
	assert.Equal(t, "120", breakdown.RoadTotal.String())
	assert.Equal(t, "500", breakdown.PaidTotal.String())
	assert.Equal(t, "200", breakdown.PrepayTotal.String())
	// 1200 + 105 + 120 - 500 - 200
	assert.Equal(t, "725", breakdown.Payable.String())
}

func TestComputePricing_SoloRateOverrides(t *testing.T) {
	attendance := domain.AttendanceResult{DateSets: domain.DateSets{
		SoloWorked: []string{"2025-11-05"},
		SoloAbsent: []string{"2025-11-06"},
	}}
	directive := domain.Directive{
		PersonName: "王怀宇",
		Role:       domain.RoleMember,
		Options: domain.Options{
			SingleYesRate: decimalPtr(220),
			SingleNoRate:  decimalPtr(110),
		},
	}

	breakdown := usecase.ComputePricing(attendance, domain.PaymentResult{}, directive, config.Default())

	assert.Equal(t, "330", breakdown.WageTotal.String())
	assert.Equal(t, "0", breakdown.MealTotal.String())
}

func TestComputePricing_RoadAllowanceGates(t *testing.T) {
	payment := domain.PaymentResult{
		RoadAllowanceItems: []domain.PaymentItem{paidItem(150), paidItem(120)},
	}
	base := domain.Directive{PersonName: "王怀宇", Role: domain.RoleMember}

	tests := []struct {
		name      string
		directive domain.Directive
		want      string
	}{
		{
			name: "capped at the configured maximum",
			directive: func() domain.Directive {
				d := base
				d.ProjectEnded = boolPtr(true)
				return d
			}(),
			want: "200",
		},
		{
			name: "zero while the project is running",
			directive: func() domain.Directive {
				d := base
				d.ProjectEnded = boolPtr(false)
				return d
			}(),
			want: "0",
		},
		{
			name:      "zero when the ended flag is unknown",
			directive: base,
			want:      "0",
		},
		{
			name: "passphrase disables the component",
			directive: func() domain.Directive {
				d := base
				d.ProjectEnded = boolPtr(true)
				d.Options.RoadPassphrase = usecase.RoadPassphraseOff
				return d
			}(),
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := usecase.ComputePricing(domain.AttendanceResult{}, payment, tt.directive, config.Default())
			assert.Equal(t, tt.want, breakdown.RoadTotal.String())
		})
	}
}

func TestComputePricing_RoadBelowCapPassesThrough(t *testing.T) {
	payment := domain.PaymentResult{
		RoadAllowanceItems: []domain.PaymentItem{paidItem(80), paidItem(60)},
	}
	directive := domain.Directive{
		PersonName:   "王怀宇",
		Role:         domain.RoleMember,
		ProjectEnded: boolPtr(true),
	}

	breakdown := usecase.ComputePricing(domain.AttendanceResult{}, payment, directive, config.Default())

	assert.Equal(t, "140", breakdown.RoadTotal.String())
}

func TestComputePricing_NegativePayable(t *testing.T) {
	attendance := domain.AttendanceResult{DateSets: domain.DateSets{
		GroupWorked: []string{"2025-11-01"},
	}}
	payment := domain.PaymentResult{
		PaidItems: []domain.PaymentItem{paidItem(1000)},
	}
	directive := domain.Directive{PersonName: "王怀宇", Role: domain.RoleMember}

	breakdown := usecase.ComputePricing(attendance, payment, directive, config.Default())

	// 260 + 30 - 1000: overpaid workers yield a negative payable, never a clamp.
	assert.Equal(t, "-710", breakdown.Payable.String())
}
