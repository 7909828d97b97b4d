package usecase

import (
	"fmt"
	"strings"

	"wage-settlement/internal/domain"
)

// CheckContext bundles everything the validation engine inspects: both
// pipeline outputs, the provisional price breakdown and the directive.
type CheckContext struct {
	Attendance domain.AttendanceResult
	Payment    domain.PaymentResult
	Pricing    domain.PricingBreakdown
	Directive  domain.Directive

	ProjectName        string
	ProjectNameSource  string // "command" or "pool"
	ProjectPoolIssue   bool
	ProjectPoolErrors  []string
	DateSetsConsistent bool
	VersionNote        string
}

func check(code, name string, passed bool, detail string) domain.CheckResult {
	return domain.CheckResult{Code: code, Name: name, Passed: passed, Severity: domain.SeverityHard, Detail: detail}
}

func softCheck(code, name string, passed bool, detail string) domain.CheckResult {
	return domain.CheckResult{Code: code, Name: name, Passed: passed, Severity: domain.SeveritySoft, Detail: detail}
}

func okOr(passed bool, detail string) string {
	if passed {
		return "OK"
	}
	return detail
}

// RunChecks runs the full ordered check battery and returns every result
// plus the hard failures. The list is always complete, never partial.
func RunChecks(ctx CheckContext) (checks []domain.CheckResult, hardFailures []domain.CheckResult) {
	attendance := ctx.Attendance
	payment := ctx.Payment
	directive := ctx.Directive

	headersOK := len(attendance.MissingFields) == 0 && len(payment.MissingFields) == 0
	checks = append(checks, check("A", "表头映射成功", headersOK,
		okOr(headersOK, "缺失: "+strings.Join(append(append([]string{}, attendance.MissingFields...), payment.MissingFields...), ","))))

	commandOK := directive.PersonName != "" && directive.Role != "" && len(directive.CommandErrors) == 0
	var commandParts []string
	if directive.PersonName == "" || directive.Role == "" {
		commandParts = append(commandParts, "缺少姓名/角色")
	}
	if len(directive.CommandErrors) > 0 {
		commandParts = append(commandParts, strings.Join(directive.CommandErrors, "；"))
	}
	checks = append(checks, check("K", "口令信息完整", commandOK, okOr(commandOK, strings.Join(commandParts, "；"))))

	nameKeyOK := len(directive.NameKeyConflicts) == 0
	checks = append(checks, check("N", "姓名归一冲突", nameKeyOK,
		okOr(nameKeyOK, fmt.Sprintf("name_key 冲突 %d条", len(directive.NameKeyConflicts)))))

	projectRequiresCommand := ctx.ProjectPoolIssue && ctx.ProjectNameSource != "command"
	var projectOK bool
	var projectDetail string
	if projectRequiresCommand {
		projectOK = false
		projectDetail = "项目池包含多个项目，需口令指定项目=XXX"
		if len(ctx.ProjectPoolErrors) > 0 {
			projectDetail = strings.Join(ctx.ProjectPoolErrors, "；")
		}
	} else {
		projectOK = ctx.ProjectName != "" || !ctx.ProjectPoolIssue
		projectDetail = okOr(projectOK, "未识别项目名")
	}
	checks = append(checks, check("B", "项目名确定", projectOK, projectDetail))

	endedOK := directive.ProjectEnded != nil
	checks = append(checks, check("L", "项目结束标识", endedOK, okOr(endedOK, "缺少项目已结束=是/否")))

	if directive.Options.RequireProjectEnded {
		requireOK := directive.ProjectEnded != nil && *directive.ProjectEnded
		checks = append(checks, check("L2", "项目已结束=是", requireOK, okOr(requireOK, "项目未结束")))
	}

	voucherOK := len(payment.VoucherDuplicates) == 0 && len(payment.EmptyVoucherDuplicates) == 0
	var voucherParts []string
	if len(payment.VoucherDuplicates) > 0 {
		voucherParts = append(voucherParts, "凭证重复")
	}
	if len(payment.EmptyVoucherDuplicates) > 0 {
		voucherParts = append(voucherParts, "空凭证重复")
	}
	checks = append(checks, check("C", "凭证唯一", voucherOK, okOr(voucherOK, strings.Join(voucherParts, ";"))))

	conflictDetail := "OK"
	if len(attendance.ConflictLogs) > 0 {
		conflictDetail = fmt.Sprintf("冲突%d条已消解", len(attendance.ConflictLogs))
	}
	checks = append(checks, softCheck("D", "出勤冲突消解", true, conflictDetail))

	recomputed := ctx.Pricing.WageTotal.
		Add(ctx.Pricing.MealTotal).
		Add(ctx.Pricing.RoadTotal).
		Sub(ctx.Pricing.PaidTotal).
		Sub(ctx.Pricing.PrepayTotal)
	payableOK := ctx.Pricing.Payable.Equal(recomputed)
	checks = append(checks, check("E", "应付反算一致", payableOK, okOr(payableOK, "应付反算不一致")))

	checks = append(checks, check("F", "模式不混合", true, "OK"))

	amountOK := len(payment.InvalidAmounts) == 0
	checks = append(checks, check("G", "金额数值化", amountOK,
		okOr(amountOK, "金额格式异常: "+strings.Join(payment.InvalidAmounts, "; "))))

	typeOK := len(payment.MissingTypeCandidates) == 0
	checks = append(checks, check("T", "支付行类型必填", typeOK,
		okOr(typeOK, "支付行类型缺失（必填）：请补‘报销类型/费用类型/科目/类别’；"+strings.Join(payment.MissingTypeCandidates, "; "))))

	checks = append(checks, check("H", "两版日期集合一致", ctx.DateSetsConsistent,
		okOr(ctx.DateSetsConsistent, "日期集合不一致")))

	soloOK := true
	soloDetail := "OK"
	if len(attendance.DateSets.SoloWorked)+len(attendance.DateSets.SoloAbsent) > 0 {
		switch {
		case attendance.HasVehicleField:
			soloDetail = "OK"
		case attendance.HasExplicitMode:
			soloDetail = "OK(出勤模式)"
		default:
			soloOK = false
			soloDetail = "缺少车辆字段/出勤模式"
		}
	}
	checks = append(checks, check("M", "单防撞必要字段满足", soloOK, soloDetail))

	pendingTotal := len(payment.PendingItems) + len(payment.MissingAmountCandidates)
	pendingDetail := fmt.Sprintf("待确认%d条", pendingTotal)
	if len(payment.MissingAmountCandidates) > 0 {
		pendingDetail += fmt.Sprintf("(金额缺失%d条)", len(payment.MissingAmountCandidates))
	}
	checks = append(checks, softCheck("P", "待确认条数提示", true, pendingDetail))

	versionOK := ctx.VersionNote != ""
	checks = append(checks, check("V", "版本尾注存在", versionOK, okOr(versionOK, "缺少版本尾注")))

	// Project mismatches stop blocking once the caller pinned the project via
	// the directive; the mismatching rows are simply out of scope then.
	mismatchBlocking := !(ctx.ProjectPoolIssue && ctx.ProjectNameSource == "command")
	schemaOK := len(attendance.InvalidDates) == 0 &&
		len(attendance.InvalidWorkValues) == 0 &&
		len(payment.InvalidAmounts) == 0
	if mismatchBlocking && (len(attendance.ProjectMismatches) > 0 || len(payment.ProjectMismatches) > 0) {
		schemaOK = false
	}
	var schemaParts []string
	if len(attendance.InvalidDates) > 0 {
		schemaParts = append(schemaParts, "日期格式异常")
	}
	if len(attendance.InvalidWorkValues) > 0 {
		schemaParts = append(schemaParts, "是否施工取值异常")
	}
	if mismatchBlocking && (len(attendance.ProjectMismatches) > 0 || len(payment.ProjectMismatches) > 0) {
		schemaParts = append(schemaParts, "项目不匹配")
	}
	if len(payment.InvalidAmounts) > 0 {
		schemaParts = append(schemaParts, "金额格式异常")
	}
	checks = append(checks, check("S", "schema校验", schemaOK, okOr(schemaOK, strings.Join(schemaParts, ";"))))

	for _, result := range checks {
		if !result.Passed && result.Severity == domain.SeverityHard {
			hardFailures = append(hardFailures, result)
		}
	}
	return checks, hardFailures
}
