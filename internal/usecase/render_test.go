package usecase

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"wage-settlement/internal/domain"
)

func renderFixture() reportInput {
	ended := true
	return reportInput{
		Directive: domain.Directive{
			PersonName:   "王怀宇",
			Role:         domain.RoleLeader,
			ProjectEnded: &ended,
			Options: domain.Options{
				ShowNotes:         true,
				ShowChecks:        true,
				ShowAudit:         true,
				ShowLogsInCompact: true,
			},
		},
		ProjectName: "测试项目",
		Attendance: domain.AttendanceResult{
			DateSets: domain.DateSets{
				GroupWorked: []string{"2025-11-01", "2025-11-02"},
				SoloWorked:  []string{"2025-11-05"},
			},
			ConflictLogs:      []string{"同日冲突: 王怀宇@2025-11-01 未施工->施工 (施工优先)"},
			NormalizationLogs: []string{"日期格式标准化: '2025/11/01' -> '2025-11-01'"},
		},
		Payment: domain.PaymentResult{
			PaidItems: []domain.PaymentItem{{
				Date: "2025-11-10", RawType: "工资", Amount: decimal.NewFromInt(500), Voucher: "V1",
			}},
		},
		Pricing: domain.PricingBreakdown{
			GroupRate:       decimal.NewFromInt(300),
			SoloWorkedRate:  decimal.NewFromInt(200),
			SoloAbsentRate:  decimal.NewFromInt(100),
			RateSource:      RateSourceRole,
			GroupWorkedDays: 2,
			SoloWorkedDays:  1,
			WageTotal:       decimal.NewFromInt(800),
			MealTotal:       decimal.NewFromInt(60),
			RoadTotal:       decimal.NewFromInt(200),
			PaidTotal:       decimal.NewFromInt(500),
			PrepayTotal:     decimal.Zero,
			Payable:         decimal.NewFromInt(560),
		},
		Checks: []domain.CheckResult{
			{Code: "A", Name: "表头映射成功", Passed: true, Detail: "OK"},
		},
		RunID:       "run-1234",
		InputHash:   "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899",
		VersionNote: "计算口径版本 v2025-11-25R52｜阻断模式：Hard",
		AuditPath:   "logs/run-1234_aabbccdd.json",
		RoadCap:     decimal.NewFromInt(200),
	}
}

func TestRenderSettlementBody_TwoSegments(t *testing.T) {
	body := RenderSettlementBody(renderFixture())

	assert.True(t, strings.HasPrefix(body, "【详细版（给杰对账）】\n"))
	assert.Contains(t, body, "【压缩版（发员工）】")
	detailIdx := strings.Index(body, "【详细版（给杰对账）】")
	compactIdx := strings.Index(body, "【压缩版（发员工）】")
	assert.Less(t, detailIdx, compactIdx)

	assert.Contains(t, body, "对象: 王怀宇｜角色: 组长｜项目: 测试项目")
	assert.Contains(t, body, "- 全组｜出勤 2天: 2025-11-01、2025-11-02")
	assert.Contains(t, body, "- 单防撞｜出勤 1天: 2025-11-05")
	assert.Contains(t, body, "- 全组｜未出勤 0天: -")

	assert.Contains(t, body, "工资：300×2+200×1=800（来源：角色默认）")
	assert.Contains(t, body, "- 应付 = 工资800 + 餐补60 + 路补200 - 已付500 - 预支0 = 560")
	assert.Contains(t, body, "  - 2025-11-10 工资 500（V1）")
	assert.Contains(t, body, "- [A] 表头映射成功: OK")
	assert.Contains(t, body, "- run_id: run-1234")
	assert.Contains(t, body, "计算口径版本 v2025-11-25R52｜阻断模式：Hard")
}

func TestRenderSettlementBody_CompactOmitsZeroComponents(t *testing.T) {
	in := renderFixture()
	body := RenderSettlementBody(in)

	compact := body[strings.Index(body, "【压缩版（发员工）】"):]
	assert.Contains(t, compact, "王怀宇｜测试项目")
	assert.Contains(t, compact, "工资800 餐补60 路补200 已付500 应付560")
	assert.NotContains(t, compact, "预支0")
	assert.Contains(t, compact, "日志：logs/run-1234_aabbccdd.json")
}

func TestRenderSettlementBody_LogsCollapseToCounts(t *testing.T) {
	in := renderFixture()
	body := RenderSettlementBody(in)

	assert.Contains(t, body, "- 冲突1条｜标准化1条｜自动修正0条")
	assert.NotContains(t, body, "同日冲突")

	in.Directive.Options.ShowLogsInDetail = true
	body = RenderSettlementBody(in)
	assert.Contains(t, body, "- 同日冲突: 王怀宇@2025-11-01 未施工->施工 (施工优先)")
	assert.Contains(t, body, "- 日期格式标准化: '2025/11/01' -> '2025-11-01'")
	assert.NotContains(t, body, "冲突1条｜")
}

func TestRenderSettlementBody_VerboseSuppressesCompactLogLine(t *testing.T) {
	in := renderFixture()
	in.Directive.Options.Verbose = true

	body := RenderSettlementBody(in)

	compact := body[strings.Index(body, "【压缩版（发员工）】"):]
	assert.NotContains(t, compact, "日志：")
}

func TestRenderSettlementBody_OptionalSectionsToggle(t *testing.T) {
	in := renderFixture()
	in.Directive.Options.ShowNotes = false
	in.Directive.Options.ShowChecks = false
	in.Directive.Options.ShowAudit = false

	body := RenderSettlementBody(in)

	assert.NotContains(t, body, "5. 备注")
	assert.NotContains(t, body, "6. 检查项")
	assert.NotContains(t, body, "7. 审计")
	// The version footer stays regardless of sections.
	assert.Contains(t, body, "计算口径版本")
}

func TestRenderSettlementBody_NotesCarryRoadCap(t *testing.T) {
	in := renderFixture()
	in.RoadCap = decimal.NewFromInt(150)

	body := RenderSettlementBody(in)

	assert.Contains(t, body, "- 路补规则: 项目结束后计，上限150元")
	assert.Contains(t, body, "- 餐补规则: 仅全组日计餐补")
}

func TestRenderSettlementBody_NeverContainsOutputHash(t *testing.T) {
	body := RenderSettlementBody(renderFixture())
	assert.NotContains(t, body, "output_hash")
}

func TestRenderBlockingBody(t *testing.T) {
	in := renderFixture()
	in.Attendance.MissingFields = []string{"是否施工"}
	in.Attendance.InvalidWorkValues = []string{"第1行 是否施工='未知'"}
	hardFailures := []domain.CheckResult{
		{Code: "A", Name: "表头映射成功", Detail: "缺失: 是否施工"},
		{Code: "L", Name: "项目结束标识", Detail: "缺少项目已结束=是/否"},
	}

	body := RenderBlockingBody(in, hardFailures)

	assert.True(t, strings.HasPrefix(body, "【阻断｜工资结算】\n"))
	assert.Contains(t, body, "对象: 王怀宇｜项目: 测试项目")
	assert.Contains(t, body, "阻断原因:\n- [A] 表头映射成功: 缺失: 是否施工")
	assert.Contains(t, body, "缺失项:\n- 是否施工")
	assert.Contains(t, body, "异常项:\n- 第1行 是否施工='未知'")
	assert.Contains(t, body, "修复建议:")
	assert.Contains(t, body, "补充口令字段：项目已结束=是/否")
	assert.Contains(t, body, "- run_id: run-1234")
	assert.Contains(t, body, "- 规则版本: 计算口径版本 v2025-11-25R52｜阻断模式：Hard")
	assert.Contains(t, body, "- input_hash: aabbccdd")
	assert.NotContains(t, body, "【压缩版（发员工）】")
}

func TestRenderBlockingBody_UnknownPerson(t *testing.T) {
	in := renderFixture()
	in.Directive.PersonName = ""
	in.ProjectName = ""

	body := RenderBlockingBody(in, []domain.CheckResult{{Code: "K", Name: "口令信息完整", Detail: "缺少姓名/角色"}})

	assert.Contains(t, body, "对象: 未知")
}
