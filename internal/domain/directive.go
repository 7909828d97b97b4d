package domain

import "github.com/shopspring/decimal"

// Options are the named runtime options a caller may attach to a directive.
// Rate override pointers are nil when not supplied.
type Options struct {
	Verbose             bool             `json:"verbose"`
	ShowNotes           bool             `json:"show_notes"`
	ShowChecks          bool             `json:"show_checks"`
	ShowAudit           bool             `json:"show_audit"`
	ShowLogsInCompact   bool             `json:"show_logs_in_compact"`
	ShowLogsInDetail    bool             `json:"show_logs_in_detail"`
	SingleYesRate       *decimal.Decimal `json:"single_yes,omitempty"`
	SingleNoRate        *decimal.Decimal `json:"single_no,omitempty"`
	DailyGroupRate      *decimal.Decimal `json:"daily_group,omitempty"`
	RoadPassphrase      string           `json:"road_passphrase,omitempty"`
	AttendanceSource    string           `json:"attendance_source,omitempty"`
	PaymentSource       string           `json:"payment_source,omitempty"`
	RequireProjectEnded bool             `json:"require_project_ended"`
}

// Directive is the structured settlement command for one person, produced by
// an external command parser or CLI glue. ProjectEnded is tri-state: nil
// means the flag was never supplied, which is itself a blocking condition.
type Directive struct {
	PersonName       string                     `json:"person_name"`
	Role             Role                       `json:"role"`
	ProjectEnded     *bool                      `json:"project_ended"`
	ProjectName      string                     `json:"project_name"`
	RoleOverrides    map[string]Role            `json:"role_overrides,omitempty"`
	FixedDailyRates  map[string]decimal.Decimal `json:"fixed_daily_rates,omitempty"`
	Options          Options                    `json:"options"`
	CommandErrors    []string                   `json:"command_errors,omitempty"`
	NameKeyConflicts []string                   `json:"name_key_conflicts,omitempty"`
}
