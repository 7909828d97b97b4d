package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wage-settlement/internal/config"
	"wage-settlement/internal/domain"
)

// Settler orchestrates one settlement invocation: it runs the attendance
// and payment pipelines, prices the result, validates it and renders either
// the two-segment settlement report or a blocking report, persisting one
// audit record either way.
type Settler struct {
	audit    AuditWriter
	rates    config.RateTable
	logger   *zap.Logger
	newRunID func() string
}

// NewSettler wires an orchestrator. The rate table is read-only reference
// data; callers pass alternates in tests.
func NewSettler(audit AuditWriter, rates config.RateTable, logger *zap.Logger) *Settler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Settler{
		audit:    audit,
		rates:    rates,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// SettlePerson computes the wage settlement for the directive's person over
// the given row sets. Attendance and payment rows may be the same merged
// list; each pipeline skips the other's rows.
func (s *Settler) SettlePerson(
	ctx context.Context,
	attendanceRows, paymentRows []domain.Row,
	directive domain.Directive,
) (*domain.SettlementOutput, error) {
	runID := s.newRunID()
	inputHash, err := InputHash(directive, attendanceRows, paymentRows)
	if err != nil {
		return nil, fmt.Errorf("could not fingerprint settlement input: %w", err)
	}
	auditPath := filepath.Join("logs", fmt.Sprintf("%s_%s.json", runID, Hash8(inputHash)))
	versionNote := s.rates.VersionNote()

	resolution := ResolveProject(directive.ProjectName, attendanceRows, paymentRows)
	directive = normalizeFixedRateKeys(directive)

	attendance := ComputeAttendance(attendanceRows, resolution.Name, directive.PersonName, s.logger)
	mergeRoleOverrides(&attendance, directive)
	payment := ComputePayments(paymentRows, resolution.Name, directive.PersonName, s.logger)
	pricing := ComputePricing(attendance, payment, directive, s.rates)

	checks, hardFailures := RunChecks(CheckContext{
		Attendance:         attendance,
		Payment:            payment,
		Pricing:            pricing,
		Directive:          directive,
		ProjectName:        resolution.Name,
		ProjectNameSource:  resolution.Source,
		ProjectPoolIssue:   resolution.PoolIssue,
		ProjectPoolErrors:  resolution.Errors,
		DateSetsConsistent: DateSetsConsistent(attendance.DateSets),
		VersionNote:        versionNote,
	})

	in := reportInput{
		Directive:   directive,
		ProjectName: resolution.Name,
		Attendance:  attendance,
		Payment:     payment,
		Pricing:     pricing,
		Checks:      checks,
		RunID:       runID,
		InputHash:   inputHash,
		VersionNote: versionNote,
		AuditPath:   auditPath,
		RoadCap:     s.rates.RoadCap,
	}

	blocked := len(hardFailures) > 0
	var body string
	if blocked {
		s.logger.Info("settlement blocked",
			zap.String("person", directive.PersonName),
			zap.Int("hard_failures", len(hardFailures)),
			zap.String("run_id", runID))
		body = RenderBlockingBody(in, hardFailures)
	} else {
		body = RenderSettlementBody(in)
	}

	outputHash := OutputHash(body)
	report := body
	if directive.Options.ShowAudit || blocked {
		report = body + "\n- output_hash: " + outputHash
	}

	record := domain.AuditRecord{
		RunID:          runID,
		RulesetVersion: s.rates.RulesetVersion,
		VersionNote:    versionNote,
		InputHash:      inputHash,
		OutputHash:     outputHash,
		Blocked:        blocked,
		Attendance:     attendance,
		Payment:        payment,
		Pricing:        pricing,
		PendingSummary: pendingSummary(payment),
		Checks:         checks,
	}
	writtenPath, err := s.audit.Write(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to persist audit record: %w", err)
	}
	if writtenPath != "" {
		auditPath = writtenPath
	}

	return &domain.SettlementOutput{
		Report:     report,
		Blocked:    blocked,
		RunID:      runID,
		InputHash:  inputHash,
		OutputHash: outputHash,
		AuditPath:  auditPath,
	}, nil
}

// normalizeFixedRateKeys rewrites the directive's fixed-rate map onto
// stripped name keys so "袁玉兵(P007)" and "袁玉兵" resolve the same rate.
func normalizeFixedRateKeys(directive domain.Directive) domain.Directive {
	if len(directive.FixedDailyRates) == 0 {
		return directive
	}
	normalized := make(map[string]decimal.Decimal, len(directive.FixedDailyRates))
	for name, rate := range directive.FixedDailyRates {
		normalized[nameKey(name)] = rate
	}
	directive.FixedDailyRates = normalized
	return directive
}

// mergeRoleOverrides folds directive-level role overrides into the
// table-derived roles; leader wins conflicts regardless of source.
func mergeRoleOverrides(attendance *domain.AttendanceResult, directive domain.Directive) {
	for person, role := range directive.RoleOverrides {
		applyRole(attendance.Roles, &attendance.AutoCorrections, person, string(role), domain.RoleSourceDirective)
	}
}

func pendingSummary(payment domain.PaymentResult) map[string]int {
	return map[string]int{
		"待确认":  len(payment.PendingItems),
		"金额缺失": len(payment.MissingAmountCandidates),
		"状态无效": len(payment.InvalidStatusItems),
		"类型缺失": len(payment.MissingTypeCandidates),
	}
}
