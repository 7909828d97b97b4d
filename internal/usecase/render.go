package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"wage-settlement/internal/domain"
)

// reportInput carries the fully computed settlement state into rendering.
// Rendering is pure string assembly and never mutates this state.
type reportInput struct {
	Directive   domain.Directive
	ProjectName string
	Attendance  domain.AttendanceResult
	Payment     domain.PaymentResult
	Pricing     domain.PricingBreakdown
	Checks      []domain.CheckResult
	RunID       string
	InputHash   string
	VersionNote string
	AuditPath   string
	RoadCap     decimal.Decimal
}

func formatDateList(dates []string) string {
	if len(dates) == 0 {
		return "-"
	}
	return strings.Join(dates, "、")
}

func formatItems(items []domain.PaymentItem) []string {
	if len(items) == 0 {
		return []string{"- -"}
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		voucher := item.Voucher
		if voucher == "" {
			voucher = "无凭证"
		}
		lines = append(lines, fmt.Sprintf("- %s %s %s（%s）", item.Date, item.RawType, item.Amount.String(), voucher))
	}
	return lines
}

// wageFormula renders the wage line; solo terms appear only when those day
// counts are non-zero.
func wageFormula(p domain.PricingBreakdown) string {
	terms := []string{fmt.Sprintf("%s×%d", p.GroupRate.String(), p.GroupWorkedDays)}
	if p.SoloWorkedDays > 0 {
		terms = append(terms, fmt.Sprintf("%s×%d", p.SoloWorkedRate.String(), p.SoloWorkedDays))
	}
	if p.SoloAbsentDays > 0 {
		terms = append(terms, fmt.Sprintf("%s×%d", p.SoloAbsentRate.String(), p.SoloAbsentDays))
	}
	return fmt.Sprintf("工资：%s=%s", strings.Join(terms, "+"), p.WageTotal.String())
}

// RenderSettlementBody assembles the two-segment settlement report without
// its output hash; the orchestrator hashes this frozen body and appends the
// hash line afterwards.
func RenderSettlementBody(in reportInput) string {
	var b strings.Builder
	opts := in.Directive.Options
	pricing := in.Pricing

	b.WriteString("【详细版（给杰对账）】\n")
	fmt.Fprintf(&b, "对象: %s｜角色: %s｜项目: %s\n", in.Directive.PersonName, in.Directive.Role, in.ProjectName)

	b.WriteString("1. 出勤明细\n")
	fmt.Fprintf(&b, "- 全组｜出勤 %d天: %s\n", pricing.GroupWorkedDays, formatDateList(in.Attendance.DateSets.GroupWorked))
	fmt.Fprintf(&b, "- 全组｜未出勤 %d天: %s\n", pricing.GroupAbsentDays, formatDateList(in.Attendance.DateSets.GroupAbsent))
	fmt.Fprintf(&b, "- 单防撞｜出勤 %d天: %s\n", pricing.SoloWorkedDays, formatDateList(in.Attendance.DateSets.SoloWorked))
	fmt.Fprintf(&b, "- 单防撞｜未出勤 %d天: %s\n", pricing.SoloAbsentDays, formatDateList(in.Attendance.DateSets.SoloAbsent))

	b.WriteString("2. 工资计算\n")
	fmt.Fprintf(&b, "- %s（来源：%s）\n", wageFormula(pricing), pricing.RateSource)
	fmt.Fprintf(&b, "- 餐补：%s\n", pricing.MealTotal.String())
	fmt.Fprintf(&b, "- 路补：%s\n", pricing.RoadTotal.String())
	fmt.Fprintf(&b, "- 应付 = 工资%s + 餐补%s + 路补%s - 已付%s - 预支%s = %s\n",
		pricing.WageTotal.String(), pricing.MealTotal.String(), pricing.RoadTotal.String(),
		pricing.PaidTotal.String(), pricing.PrepayTotal.String(), pricing.Payable.String())

	b.WriteString("3. 支付明细\n")
	b.WriteString("- 已付:\n")
	for _, line := range formatItems(in.Payment.PaidItems) {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("- 预支:\n")
	for _, line := range formatItems(in.Payment.PrepayItems) {
		b.WriteString("  " + line + "\n")
	}
	fmt.Fprintf(&b, "- 待确认: %d条\n", len(in.Payment.PendingItems)+len(in.Payment.MissingAmountCandidates))

	b.WriteString("4. 差异与日志\n")
	if opts.ShowLogsInDetail || opts.Verbose {
		logged := false
		for _, group := range [][]string{
			in.Attendance.ConflictLogs,
			in.Attendance.NormalizationLogs,
			in.Attendance.AutoCorrections,
		} {
			for _, line := range group {
				b.WriteString("- " + line + "\n")
				logged = true
			}
		}
		if !logged {
			b.WriteString("- -\n")
		}
	} else {
		fmt.Fprintf(&b, "- 冲突%d条｜标准化%d条｜自动修正%d条\n",
			len(in.Attendance.ConflictLogs), len(in.Attendance.NormalizationLogs), len(in.Attendance.AutoCorrections))
	}

	if opts.ShowNotes {
		b.WriteString("5. 备注\n")
		fmt.Fprintf(&b, "- 路补规则: 项目结束后计，上限%s元\n", in.RoadCap.String())
		b.WriteString("- 餐补规则: 仅全组日计餐补\n")
	}

	if opts.ShowChecks {
		b.WriteString("6. 检查项\n")
		for _, result := range in.Checks {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", result.Code, result.Name, result.Detail)
		}
	}

	if opts.ShowAudit {
		b.WriteString("7. 审计\n")
		fmt.Fprintf(&b, "- run_id: %s\n", in.RunID)
		fmt.Fprintf(&b, "- input_hash: %s\n", in.InputHash)
		if opts.AttendanceSource != "" || opts.PaymentSource != "" {
			fmt.Fprintf(&b, "- 数据来源: 出勤=%s 支付=%s\n", opts.AttendanceSource, opts.PaymentSource)
		}
	}
	b.WriteString(in.VersionNote + "\n")

	b.WriteString("\n")
	b.WriteString("【压缩版（发员工）】\n")
	fmt.Fprintf(&b, "%s｜%s\n", in.Directive.PersonName, in.ProjectName)
	b.WriteString(compactTotals(pricing) + "\n")
	if opts.ShowLogsInCompact && !opts.Verbose {
		fmt.Fprintf(&b, "日志：%s\n", in.AuditPath)
	}
	return strings.TrimRight(b.String(), "\n")
}

// compactTotals renders the recipient-facing totals line, omitting
// zero-valued components; the payable figure always appears.
func compactTotals(p domain.PricingBreakdown) string {
	parts := []string{}
	appendNonZero := func(label string, value decimal.Decimal) {
		if !value.IsZero() {
			parts = append(parts, label+value.String())
		}
	}
	appendNonZero("工资", p.WageTotal)
	appendNonZero("餐补", p.MealTotal)
	appendNonZero("路补", p.RoadTotal)
	appendNonZero("已付", p.PaidTotal)
	appendNonZero("预支", p.PrepayTotal)
	parts = append(parts, "应付"+p.Payable.String())
	return strings.Join(parts, " ")
}

// RenderBlockingBody assembles the blocking report without its output hash.
// Hard failure details are included verbatim.
func RenderBlockingBody(in reportInput, hardFailures []domain.CheckResult) string {
	var b strings.Builder
	b.WriteString("【阻断｜工资结算】\n")
	person := in.Directive.PersonName
	if person == "" {
		person = "未知"
	}
	title := "对象: " + person
	if in.ProjectName != "" {
		title += "｜项目: " + in.ProjectName
	}
	b.WriteString(title + "\n")

	b.WriteString("阻断原因:\n")
	for _, failure := range hardFailures {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", failure.Code, failure.Name, failure.Detail)
	}

	missing := append(append([]string{}, in.Attendance.MissingFields...), in.Payment.MissingFields...)
	if len(missing) > 0 {
		b.WriteString("缺失项:\n")
		for _, field := range missing {
			b.WriteString("- " + field + "\n")
		}
	}

	invalid := collectInvalidItems(in.Attendance, in.Payment)
	if len(invalid) > 0 {
		b.WriteString("异常项:\n")
		for _, item := range invalid {
			b.WriteString("- " + item + "\n")
		}
	}

	suggestions := fixSuggestions(missing, invalid, hardFailures)
	if len(suggestions) > 0 {
		b.WriteString("修复建议:\n")
		for _, suggestion := range suggestions {
			b.WriteString("- " + suggestion + "\n")
		}
	}

	b.WriteString("审计留痕:\n")
	fmt.Fprintf(&b, "- run_id: %s\n", in.RunID)
	fmt.Fprintf(&b, "- 规则版本: %s\n", in.VersionNote)
	fmt.Fprintf(&b, "- input_hash: %s", in.InputHash)
	return b.String()
}

func collectInvalidItems(attendance domain.AttendanceResult, payment domain.PaymentResult) []string {
	var items []string
	items = append(items, attendance.InvalidDates...)
	items = append(items, attendance.InvalidWorkValues...)
	items = append(items, payment.InvalidAmounts...)
	items = append(items, payment.VoucherDuplicates...)
	items = append(items, payment.EmptyVoucherDuplicates...)
	return items
}

// fixSuggestions turns the diagnostics into actionable one-liners so a
// blocked run answers "what to fix" and "what to add" in one response.
func fixSuggestions(missing, invalid []string, hardFailures []domain.CheckResult) []string {
	var suggestions []string
	if len(missing) > 0 {
		suggestions = append(suggestions, "补齐缺失列: "+strings.Join(missing, "、"))
	}
	if len(invalid) > 0 {
		suggestions = append(suggestions, "修正表格中的异常值后重试")
	}
	for _, failure := range hardFailures {
		switch failure.Code {
		case "L":
			suggestions = append(suggestions, "补充口令字段：项目已结束=是/否")
		case "B":
			suggestions = append(suggestions, "补充口令字段：项目=xxx")
		case "T":
			suggestions = append(suggestions, "为每条支付行补填报销类型/费用类型/科目/类别")
		}
	}
	return suggestions
}
