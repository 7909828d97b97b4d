package usecase

import (
	"strings"

	"wage-settlement/internal/domain"
)

// Header synonym lists, ordered by priority: the first spelling present in
// the table wins. Attendance and payment tables resolve independently so a
// merged table can serve both pipelines.
var (
	attendanceDateHeaders = []string{"日期", "施工日期", "工作日期", "出勤日期"}
	attendanceNameHeaders = []string{"姓名", "施工人员", "实际施工人员", "出勤人员", "实际出勤人员"}
	workHeaders           = []string{"是否施工", "出勤", "施工"}
	vehicleHeaders        = []string{"车辆", "车辆信息", "车牌"}
	projectHeaders        = []string{"项目", "项目名称"}
	modeHeaders           = []string{"出勤模式（填表用）", "出勤模式", "模式"}
	roleHeaders           = []string{"角色", "岗位"}

	// Roster columns used by tables that spread names over fixed columns
	// instead of a single name column.
	rosterHeaders = []string{"人员1", "人员2", "人员3", "人员4", "人员5"}

	paymentDateHeaders   = []string{"报销日期", "支付日期", "打款日期", "日期"}
	paymentAmountHeaders = []string{"报销金额", "金额", "支付金额", "实付金额"}
	paymentStatusHeaders = []string{"报销状态", "状态", "付款状态"}
	paymentTypeHeaders   = []string{"报销类型", "费用类型", "类别", "类型", "科目"}
	paymentNameHeaders   = []string{"报销人员", "姓名", "收款人", "人员"}
	voucherHeaders       = []string{"上传凭证", "凭证号", "凭证", "票据号", "流水号", "订单号"}
	remarkHeaders        = []string{"备注", "说明", "报销备注", "用途", "报销说明"}
)

// Payment anchor columns: any non-empty value here marks a row as
// payment-shaped, so the attendance pipeline must skip it and the payment
// pipeline must admit it.
var (
	candidateAmountHeaders   = []string{"金额", "报销金额", "支付金额", "实付金额"}
	candidateCategoryHeaders = []string{"报销类型", "费用类型", "类型", "类别", "科目"}
	candidateStatusHeaders   = []string{"报销状态", "状态", "付款状态"}
	candidateVoucherHeaders  = []string{"凭证号", "上传凭证", "凭证", "票据号", "流水号", "订单号"}
	candidateRemarkHeaders   = []string{"备注", "用途", "说明", "报销说明"}
)

// headerSet collects the trimmed header names present across a row set.
func headerSet(rows []domain.Row) map[string]bool {
	headers := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			headers[strings.TrimSpace(key)] = true
		}
	}
	return headers
}

// resolveHeader returns the first candidate spelling present in headers.
func resolveHeader(headers map[string]bool, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if headers[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// rowValue looks a resolved header up in a row, tolerating padded header
// cells, and returns the trimmed cell value.
func rowValue(row domain.Row, key string) string {
	if key == "" {
		return ""
	}
	if value, ok := row[key]; ok {
		return strings.TrimSpace(value)
	}
	for rawKey, value := range row {
		if strings.TrimSpace(rawKey) == key {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// isPaymentCandidate reports whether a row carries any payment signal. The
// amount columns count only when they hold actual content after currency
// cleanup.
func isPaymentCandidate(row domain.Row) bool {
	for _, header := range candidateAmountHeaders {
		if cleanAmountText(rowValue(row, header)) != "" {
			return true
		}
	}
	for _, group := range [][]string{
		candidateCategoryHeaders,
		candidateStatusHeaders,
		candidateVoucherHeaders,
		candidateRemarkHeaders,
	} {
		for _, header := range group {
			if rowValue(row, header) != "" {
				return true
			}
		}
	}
	return false
}
