package domain

// Row is one raw CSV row, keyed by trimmed header name. Exact header
// spellings vary across source tables; the usecase layer resolves them
// through synonym lists.
type Row map[string]string

// DayMode classifies a calendar date by crew staffing. Every person observed
// on a date shares that date's mode.
type DayMode string

const (
	DayModeGroup DayMode = "全组"
	DayModeSolo  DayMode = "单防撞"
)

// Role is a worker's role on the crew.
type Role string

const (
	RoleLeader Role = "组长"
	RoleMember Role = "组员"
)

// RoleSource records where a winning role observation came from.
type RoleSource string

const (
	RoleSourceTable     RoleSource = "表"
	RoleSourceDirective RoleSource = "口令"
)

// RoleAssignment is the resolved role for one person plus its source.
type RoleAssignment struct {
	Role   Role       `json:"role"`
	Source RoleSource `json:"source"`
}

// DateSets holds the four per-person date buckets: day mode crossed with
// worked / not worked. Each list is sorted and deduplicated. A date appears
// only when the person has an observed fact for it; absence is never
// inferred from a missing row.
type DateSets struct {
	GroupWorked []string `json:"group_worked"`
	GroupAbsent []string `json:"group_absent"`
	SoloWorked  []string `json:"solo_worked"`
	SoloAbsent  []string `json:"solo_absent"`
}

// AttendanceResult is the normalized attendance view for one target person
// plus the diagnostics gathered while normalizing.
type AttendanceResult struct {
	DateSets             DateSets                  `json:"date_sets"`
	ModeByDate           map[string]DayMode        `json:"mode_by_date"`
	Roles                map[string]RoleAssignment `json:"roles"`
	MissingFields        []string                  `json:"missing_fields"`
	InvalidDates         []string                  `json:"invalid_dates"`
	InvalidWorkValues    []string                  `json:"invalid_work_values"`
	ProjectMismatches    []string                  `json:"project_mismatches"`
	ConflictLogs         []string                  `json:"conflict_logs"`
	NormalizationLogs    []string                  `json:"normalization_logs"`
	AutoCorrections      []string                  `json:"auto_corrections"`
	CollisionVehicleHits []string                  `json:"collision_vehicle_hits"`
	HasVehicleField      bool                      `json:"has_vehicle_field"`
	HasExplicitMode      bool                      `json:"has_explicit_mode"`
}
