package domain

// Severity tags a check as blocking or informational.
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// CheckResult is one validation rule's outcome. Every invocation of the
// validation engine produces the full ordered list, never a partial one.
type CheckResult struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
}
