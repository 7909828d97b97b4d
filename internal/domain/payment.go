package domain

import "github.com/shopspring/decimal"

// Category is the closed expense taxonomy a raw type string maps into.
type Category string

const (
	CategoryWage    Category = "工资"
	CategoryAdvance Category = "预支"
	CategoryMeal    Category = "餐补"
	CategoryFuel    Category = "油费"
	CategoryRoad    Category = "路补"
	CategoryOther   Category = "其他"
)

// PaymentItem is one categorized payment row. Immutable once built.
type PaymentItem struct {
	Date     string          `json:"date"`
	Name     string          `json:"name"`
	Project  string          `json:"project"`
	Amount   decimal.Decimal `json:"amount"`
	Category Category        `json:"category"`
	Status   string          `json:"status"`
	Voucher  string          `json:"voucher"`
	RawType  string          `json:"raw_type"`
}

// PaymentResult holds the categorized item buckets and the diagnostics
// gathered while classifying. Buckets are sorted by (date, amount) for
// stable report rendering.
type PaymentResult struct {
	PaidItems           []PaymentItem `json:"paid_items"`
	PrepayItems         []PaymentItem `json:"prepay_items"`
	ProjectExpenseItems []PaymentItem `json:"project_expense_items"`
	RoadAllowanceItems  []PaymentItem `json:"road_allowance_items"`
	PendingItems        []PaymentItem `json:"pending_items"`
	InvalidStatusItems  []PaymentItem `json:"invalid_status_items"`

	MissingFields           []string `json:"missing_fields"`
	InvalidAmounts          []string `json:"invalid_amounts"`
	MissingAmountCandidates []string `json:"missing_amount_candidates"`
	MissingTypeCandidates   []string `json:"missing_type_candidates"`
	ProjectMismatches       []string `json:"project_mismatches"`
	VoucherDuplicates       []string `json:"voucher_duplicates"`
	EmptyVoucherDuplicates  []string `json:"empty_voucher_duplicates"`
}

func sumAmounts(items []PaymentItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// PaidTotal is the sum of already-paid wage items.
func (r PaymentResult) PaidTotal() decimal.Decimal { return sumAmounts(r.PaidItems) }

// PrepayTotal is the sum of advance items.
func (r PaymentResult) PrepayTotal() decimal.Decimal { return sumAmounts(r.PrepayItems) }

// RoadRawTotal is the uncapped sum of road-allowance items.
func (r PaymentResult) RoadRawTotal() decimal.Decimal { return sumAmounts(r.RoadAllowanceItems) }
