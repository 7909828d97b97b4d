// Package config holds the read-only reference data a settlement run needs:
// daily rate tables, meal rates, the road allowance cap and the ruleset
// version. Everything is injected into the orchestrator so tests can
// substitute alternate tables.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"wage-settlement/internal/domain"
)

// RulesetVersion identifies the calculation rules this build implements.
const RulesetVersion = "v2025-11-25R52"

// RateTable is the full reference rate configuration for one run.
// FixedDaily is keyed by normalized person name (trailing parenthetical
// qualifiers stripped).
type RateTable struct {
	RoleDaily  map[domain.Role]decimal.Decimal
	FixedDaily map[string]decimal.Decimal

	SoloWorked decimal.Decimal
	SoloAbsent decimal.Decimal
	MealWorked decimal.Decimal
	MealAbsent decimal.Decimal
	RoadCap    decimal.Decimal

	RulesetVersion string
}

// VersionNote is the rule-set footer line rendered into every report.
func (t RateTable) VersionNote() string {
	return fmt.Sprintf("计算口径版本 %s｜阻断模式：Hard", t.RulesetVersion)
}

// Default returns the built-in rate table.
func Default() RateTable {
	return RateTable{
		RoleDaily: map[domain.Role]decimal.Decimal{
			domain.RoleLeader: decimal.NewFromInt(300),
			domain.RoleMember: decimal.NewFromInt(260),
		},
		FixedDaily: map[string]decimal.Decimal{
			"余步云": decimal.NewFromInt(260),
		},
		SoloWorked:     decimal.NewFromInt(200),
		SoloAbsent:     decimal.NewFromInt(100),
		MealWorked:     decimal.NewFromInt(30),
		MealAbsent:     decimal.NewFromInt(15),
		RoadCap:        decimal.NewFromInt(200),
		RulesetVersion: RulesetVersion,
	}
}

// rateFile is the YAML shape of an override file. Amounts are strings so the
// file carries exact decimals, never floats.
type rateFile struct {
	RoleDaily      map[string]string `yaml:"role_daily"`
	FixedDaily     map[string]string `yaml:"fixed_daily"`
	SoloWorked     string            `yaml:"solo_worked"`
	SoloAbsent     string            `yaml:"solo_absent"`
	MealWorked     string            `yaml:"meal_worked"`
	MealAbsent     string            `yaml:"meal_absent"`
	RoadCap        string            `yaml:"road_cap"`
	RulesetVersion string            `yaml:"ruleset_version"`
}

// Load reads a YAML rate file and overlays it on the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (RateTable, error) {
	table := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("failed to read rate file %s: %w", path, err)
	}
	var file rateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return table, fmt.Errorf("failed to parse rate file %s: %w", path, err)
	}

	for role, raw := range file.RoleDaily {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return table, fmt.Errorf("invalid role rate %s=%q: %w", role, raw, err)
		}
		table.RoleDaily[domain.Role(role)] = rate
	}
	for name, raw := range file.FixedDaily {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return table, fmt.Errorf("invalid fixed rate %s=%q: %w", name, raw, err)
		}
		table.FixedDaily[name] = rate
	}
	for _, field := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{file.SoloWorked, &table.SoloWorked},
		{file.SoloAbsent, &table.SoloAbsent},
		{file.MealWorked, &table.MealWorked},
		{file.MealAbsent, &table.MealAbsent},
		{file.RoadCap, &table.RoadCap},
	} {
		if field.raw == "" {
			continue
		}
		rate, err := decimal.NewFromString(field.raw)
		if err != nil {
			return table, fmt.Errorf("invalid rate %q in %s: %w", field.raw, path, err)
		}
		*field.dst = rate
	}
	if file.RulesetVersion != "" {
		table.RulesetVersion = file.RulesetVersion
	}
	return table, nil
}
