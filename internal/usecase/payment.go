package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wage-settlement/internal/domain"
)

// statusWhitelist is the closed set of paid/approved status tokens. Anything
// else routes an item into the pending/invalid buckets without discarding it.
var statusWhitelist = map[string]bool{
	"已支付": true, "已转账": true, "已报销": true, "完成": true, "通过": true,
	"成功": true, "已结清": true, "OK": true, "已打款": true, "审核通过": true,
}

// categoryRules is the keyword decision table for the raw type column; the
// first matching group wins. The advance group runs before the wage group so
// a combined type like 工资预支 lands in the advance bucket.
var categoryRules = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryAdvance, []string{"预支", "借支", "预发"}},
	{domain.CategoryWage, []string{"工资"}},
	{domain.CategoryMeal, []string{"餐补", "伙食", "盒饭", "工作餐"}},
	{domain.CategoryFuel, []string{"油费", "ETC"}},
	{domain.CategoryRoad, []string{"路补", "顺风车", "拼车", "打车", "滴滴", "路费"}},
}

var amountCleaner = strings.NewReplacer(",", "", "¥", "", "￥", "", "元", "", " ", "", "\u00a0", "")

// cleanAmountText strips currency symbols, thousands separators and literal
// 元 from an amount cell.
func cleanAmountText(value string) string {
	return strings.TrimSpace(amountCleaner.Replace(value))
}

// parseAmount parses a cleaned amount cell as an exact decimal. invalid is
// true only when non-empty text failed to parse; an empty cell is neither a
// value nor an error.
func parseAmount(value string) (amount decimal.Decimal, present bool, invalid bool) {
	cleaned := cleanAmountText(value)
	if cleaned == "" {
		return decimal.Zero, false, false
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false, true
	}
	return parsed, true, false
}

// categorize maps a free-text type into the closed category set.
func categorize(rawType string) domain.Category {
	text := strings.TrimSpace(rawType)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

type voucherIdentity struct {
	voucher string
	date    string
	amount  string
}

type emptyVoucherIdentity struct {
	name    string
	project string
	date    string
	amount  string
	rawType string
}

// ComputePayments classifies raw payment rows into categorized buckets for
// one target person, tracking duplicate vouchers and parse failures. Rows
// without any payment signal are skipped, which lets a merged attendance and
// payment table feed both pipelines.
func ComputePayments(rows []domain.Row, projectName, targetPerson string, logger *zap.Logger) domain.PaymentResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	headers := headerSet(rows)
	dateKey, hasDate := resolveHeader(headers, paymentDateHeaders)
	amountKey, hasAmount := resolveHeader(headers, paymentAmountHeaders)
	statusKey, hasStatus := resolveHeader(headers, paymentStatusHeaders)
	typeKey, hasType := resolveHeader(headers, paymentTypeHeaders)
	nameKeyCol, hasNameCol := resolveHeader(headers, paymentNameHeaders)
	projectKey, _ := resolveHeader(headers, projectHeaders)
	voucherKey, _ := resolveHeader(headers, voucherHeaders)

	var result domain.PaymentResult
	for _, missing := range []struct {
		ok    bool
		label string
	}{
		{hasDate, "日期"},
		{hasAmount, "金额"},
		{hasStatus, "状态"},
		{hasType, "类型"},
		{hasNameCol, "姓名"},
	} {
		if !missing.ok {
			result.MissingFields = append(result.MissingFields, missing.label)
		}
	}

	voucherSeen := map[voucherIdentity]bool{}
	emptyVoucherSeen := map[emptyVoucherIdentity]bool{}

	for index, row := range rows {
		rowNo := index + 1
		if !isPaymentCandidate(row) {
			continue
		}
		if len(result.MissingFields) > 0 {
			continue
		}

		dateValue := rowValue(row, dateKey)
		amountRaw := rowValue(row, amountKey)
		statusValue := rowValue(row, statusKey)
		typeValue := rowValue(row, typeKey)
		nameValue := rowValue(row, nameKeyCol)
		projectValue := rowValue(row, projectKey)
		voucherValue := rowValue(row, voucherKey)

		amount, present, invalid := parseAmount(amountRaw)
		if !present {
			if invalid {
				result.InvalidAmounts = append(result.InvalidAmounts,
					fmt.Sprintf("第%d行 金额='%s'", rowNo, amountRaw))
			} else {
				result.MissingAmountCandidates = append(result.MissingAmountCandidates,
					fmt.Sprintf("第%d行 疑似支付行但金额缺失: %s=''", rowNo, amountKey))
			}
			continue
		}

		if targetPerson != "" && nameValue != "" && nameValue != targetPerson {
			continue
		}
		if projectName != "" && projectValue != "" && projectValue != projectName {
			result.ProjectMismatches = append(result.ProjectMismatches,
				fmt.Sprintf("%s@%s: %s", nameValue, dateValue, projectValue))
		}
		if typeValue == "" {
			result.MissingTypeCandidates = append(result.MissingTypeCandidates,
				fmt.Sprintf("第%d行 金额=%s 类型为空", rowNo, amount.String()))
			continue
		}

		item := domain.PaymentItem{
			Date:     dateValue,
			Name:     nameValue,
			Project:  projectValue,
			Amount:   amount,
			Category: categorize(typeValue),
			Status:   statusValue,
			Voucher:  voucherValue,
			RawType:  typeValue,
		}

		voucherToken := voucherValue
		if voucherToken == "" {
			voucherToken = "TEMP"
		}
		identity := voucherIdentity{voucher: voucherToken, date: dateValue, amount: amount.String()}
		if voucherSeen[identity] {
			result.VoucherDuplicates = append(result.VoucherDuplicates,
				fmt.Sprintf("%s@%s:%s", voucherToken, dateValue, amount.String()))
			logger.Debug("duplicate voucher", zap.String("voucher", voucherToken), zap.String("date", dateValue))
		} else {
			voucherSeen[identity] = true
		}
		if voucherValue == "" {
			emptyIdentity := emptyVoucherIdentity{
				name:    nameValue,
				project: projectValue,
				date:    dateValue,
				amount:  amount.String(),
				rawType: typeValue,
			}
			if emptyVoucherSeen[emptyIdentity] {
				result.EmptyVoucherDuplicates = append(result.EmptyVoucherDuplicates,
					fmt.Sprintf("%s@%s@%s:%s", nameValue, projectValue, dateValue, amount.String()))
			} else {
				emptyVoucherSeen[emptyIdentity] = true
			}
		}

		if !statusWhitelist[statusValue] {
			result.PendingItems = append(result.PendingItems, item)
			result.InvalidStatusItems = append(result.InvalidStatusItems, item)
			continue
		}

		switch item.Category {
		case domain.CategoryWage:
			result.PaidItems = append(result.PaidItems, item)
		case domain.CategoryAdvance:
			result.PrepayItems = append(result.PrepayItems, item)
		case domain.CategoryRoad:
			result.RoadAllowanceItems = append(result.RoadAllowanceItems, item)
		case domain.CategoryMeal, domain.CategoryFuel:
			result.ProjectExpenseItems = append(result.ProjectExpenseItems, item)
		default:
			result.PendingItems = append(result.PendingItems, item)
		}
	}

	sortItems(result.PaidItems)
	sortItems(result.PrepayItems)
	sortItems(result.ProjectExpenseItems)
	sortItems(result.RoadAllowanceItems)
	sortItems(result.PendingItems)
	sortItems(result.InvalidStatusItems)

	return result
}

// CollectPaymentPeople enumerates every person named on a payment-candidate
// row under the given project.
func CollectPaymentPeople(rows []domain.Row, projectName string) []string {
	headers := headerSet(rows)
	nameKeyCol, hasNameCol := resolveHeader(headers, paymentNameHeaders)
	projectKey, _ := resolveHeader(headers, projectHeaders)
	if !hasNameCol {
		return nil
	}
	seen := map[string]bool{}
	var people []string
	for _, row := range rows {
		if !isPaymentCandidate(row) {
			continue
		}
		nameValue := rowValue(row, nameKeyCol)
		if nameValue == "" {
			continue
		}
		if projectName != "" {
			if projectValue := rowValue(row, projectKey); projectValue != "" && projectValue != projectName {
				continue
			}
		}
		if !seen[nameValue] {
			seen[nameValue] = true
			people = append(people, nameValue)
		}
	}
	sort.Strings(people)
	return people
}

func sortItems(items []domain.PaymentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].Amount.LessThan(items[j].Amount)
	})
}
