package domain

// AuditRecord is the durable per-invocation record backing a settlement or
// blocking report. RunID is randomly generated per invocation so identical
// reruns never collide on disk; InputHash and OutputHash are deterministic
// content fingerprints used for correlation.
type AuditRecord struct {
	RunID          string           `json:"run_id"`
	RulesetVersion string           `json:"ruleset_version"`
	VersionNote    string           `json:"version_note"`
	InputHash      string           `json:"input_hash"`
	OutputHash     string           `json:"output_hash"`
	Blocked        bool             `json:"blocked"`
	Attendance     AttendanceResult `json:"attendance"`
	Payment        PaymentResult    `json:"payment"`
	Pricing        PricingBreakdown `json:"pricing"`
	PendingSummary map[string]int   `json:"pending_summary"`
	Checks         []CheckResult    `json:"checks"`
}

// SettlementOutput is what one settlement invocation returns to the caller.
type SettlementOutput struct {
	Report     string `json:"report"`
	Blocked    bool   `json:"blocked"`
	RunID      string `json:"run_id"`
	InputHash  string `json:"input_hash"`
	OutputHash string `json:"output_hash"`
	AuditPath  string `json:"audit_path"`
}
