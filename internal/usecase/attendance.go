package usecase

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"wage-settlement/internal/domain"
)

// Worked-flag interpretation is strict: recognized affirmative tokens mean
// worked, recognized negative tokens (and empty cells) mean not worked, and
// any other non-empty token is an invalid work value that fails the schema
// check.
var (
	workedTokens = map[string]bool{
		"是": true, "施工": true, "出勤": true, "1": true, "Y": true, "y": true, "有": true,
	}
	notWorkedTokens = map[string]bool{
		"否": true, "休": true, "休息": true, "0": true, "N": true, "n": true, "无": true,
	}
)

type personDay struct {
	person string
	date   string
}

// arbitrate applies the conflict decision table for a (person, date) fact:
// a worked observation always beats a not-worked one, and a recorded worked
// fact never de-escalates.
func arbitrate(existing, observed bool) (worked bool, escalated bool, kept bool) {
	switch {
	case !existing && observed:
		return true, true, false
	case existing && !observed:
		return true, false, true
	default:
		return existing, false, false
	}
}

// ComputeAttendance normalizes raw attendance rows into the per-person date
// sets, day modes and diagnostics for one target person. Rows that carry
// payment anchors with an empty worked flag are skipped so a merged table
// can feed both pipelines.
func ComputeAttendance(rows []domain.Row, projectName, targetPerson string, logger *zap.Logger) domain.AttendanceResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	headers := headerSet(rows)
	dateKey, hasDate := resolveHeader(headers, attendanceDateHeaders)
	nameCol, hasName := resolveHeader(headers, attendanceNameHeaders)
	workKey, hasWork := resolveHeader(headers, workHeaders)
	vehicleKey, hasVehicle := resolveHeader(headers, vehicleHeaders)
	projectKey, _ := resolveHeader(headers, projectHeaders)
	modeKey, hasMode := resolveHeader(headers, modeHeaders)
	roleKey, _ := resolveHeader(headers, roleHeaders)

	var rosterCols []string
	if !hasName {
		for _, header := range rosterHeaders {
			if headers[header] {
				rosterCols = append(rosterCols, header)
			}
		}
	}

	result := domain.AttendanceResult{
		ModeByDate:      map[string]domain.DayMode{},
		Roles:           map[string]domain.RoleAssignment{},
		HasVehicleField: hasVehicle,
		HasExplicitMode: hasMode,
	}
	if !hasDate {
		result.MissingFields = append(result.MissingFields, "日期")
	}
	if !hasName && len(rosterCols) == 0 {
		result.MissingFields = append(result.MissingFields, "姓名")
	}
	if !hasWork {
		result.MissingFields = append(result.MissingFields, "是否施工")
	}

	status := map[personDay]bool{}
	workingByDate := map[string]map[string]bool{}
	anyByDate := map[string]bool{}
	explicitMode := map[string]domain.DayMode{}

	for index, row := range rows {
		rowNo := index + 1
		if len(result.MissingFields) > 0 {
			continue
		}

		workRaw := rowValue(row, workKey)
		if workRaw == "" && isPaymentCandidate(row) {
			continue
		}

		dateRaw := rowValue(row, dateKey)
		parsedDate, dateChanged, dateOK := normalizeDate(dateRaw)
		if !dateOK {
			if dateRaw != "" {
				result.InvalidDates = append(result.InvalidDates, fmt.Sprintf("第%d行 日期='%s'", rowNo, dateRaw))
			}
			continue
		}
		if dateChanged {
			result.NormalizationLogs = append(result.NormalizationLogs,
				fmt.Sprintf("日期格式标准化: '%s' -> '%s'", dateRaw, parsedDate))
			logger.Debug("date normalized", zap.String("raw", dateRaw), zap.String("normalized", parsedDate))
		}

		var names []string
		if hasName {
			nameRaw := rowValue(row, nameCol)
			names = splitNames(nameRaw)
			if len(names) > 1 {
				result.NormalizationLogs = append(result.NormalizationLogs,
					fmt.Sprintf("姓名拆分: '%s' -> %d人", nameRaw, len(names)))
			}
		} else {
			for _, col := range rosterCols {
				if value := rowValue(row, col); value != "" {
					names = append(names, splitNames(value)...)
				}
			}
		}
		if len(names) == 0 {
			continue
		}

		var worked bool
		switch {
		case workedTokens[workRaw]:
			worked = true
		case workRaw == "" || notWorkedTokens[workRaw]:
			worked = false
		default:
			result.InvalidWorkValues = append(result.InvalidWorkValues,
				fmt.Sprintf("第%d行 是否施工='%s'", rowNo, workRaw))
			continue
		}

		vehicleValue := rowValue(row, vehicleKey)
		projectValue := rowValue(row, projectKey)
		modeValue := rowValue(row, modeKey)
		roleValue := rowValue(row, roleKey)

		if modeValue != "" {
			observed := domain.DayModeGroup
			if strings.Contains(modeValue, "单") {
				observed = domain.DayModeSolo
			}
			existing, seen := explicitMode[parsedDate]
			if seen && existing == domain.DayModeSolo && observed == domain.DayModeGroup {
				// Solo is sticky: a later group marker never downgrades it.
				result.AutoCorrections = append(result.AutoCorrections,
					fmt.Sprintf("出勤模式粘滞: %s 保持单防撞", parsedDate))
			} else {
				if seen && existing != observed {
					result.AutoCorrections = append(result.AutoCorrections,
						fmt.Sprintf("出勤模式升级: %s %s -> %s", parsedDate, existing, observed))
				}
				explicitMode[parsedDate] = observed
			}
		}

		for _, person := range names {
			if vehicleValue != "" && strings.Contains(vehicleValue, "防撞") {
				result.CollisionVehicleHits = append(result.CollisionVehicleHits,
					fmt.Sprintf("%s@%s:%s", person, parsedDate, vehicleValue))
			}
			if projectName != "" && projectValue != "" && projectValue != projectName {
				result.ProjectMismatches = append(result.ProjectMismatches,
					fmt.Sprintf("%s@%s: %s", person, parsedDate, projectValue))
			}
			if roleValue != "" {
				applyRole(result.Roles, &result.AutoCorrections, person, roleValue, domain.RoleSourceTable)
			}

			key := personDay{person: person, date: parsedDate}
			anyByDate[parsedDate] = true
			if existing, seen := status[key]; seen {
				final, escalated, kept := arbitrate(existing, worked)
				status[key] = final
				if escalated {
					result.ConflictLogs = append(result.ConflictLogs,
						fmt.Sprintf("同日冲突: %s %s 未施工->施工 (施工优先)", person, parsedDate))
					result.AutoCorrections = append(result.AutoCorrections,
						fmt.Sprintf("冲突消解: %s %s 按施工优先", person, parsedDate))
					logger.Debug("attendance conflict escalated",
						zap.String("person", person), zap.String("date", parsedDate))
				}
				if kept {
					result.ConflictLogs = append(result.ConflictLogs,
						fmt.Sprintf("同日冲突: %s %s 施工保持", person, parsedDate))
				}
				if final {
					addToDaySet(workingByDate, parsedDate, person)
				}
				continue
			}
			status[key] = worked
			if worked {
				addToDaySet(workingByDate, parsedDate, person)
			}
		}
	}

	for date := range anyByDate {
		if mode, ok := explicitMode[date]; ok {
			result.ModeByDate[date] = mode
			continue
		}
		count := len(workingByDate[date])
		if count >= 1 && count <= 2 {
			result.ModeByDate[date] = domain.DayModeSolo
		} else {
			// Zero workers is a degenerate case; it defaults to group.
			result.ModeByDate[date] = domain.DayModeGroup
		}
	}

	if targetPerson != "" {
		for key, worked := range status {
			if key.person != targetPerson {
				continue
			}
			mode := result.ModeByDate[key.date]
			switch {
			case mode == domain.DayModeSolo && worked:
				result.DateSets.SoloWorked = append(result.DateSets.SoloWorked, key.date)
			case mode == domain.DayModeSolo:
				result.DateSets.SoloAbsent = append(result.DateSets.SoloAbsent, key.date)
			case worked:
				result.DateSets.GroupWorked = append(result.DateSets.GroupWorked, key.date)
			default:
				result.DateSets.GroupAbsent = append(result.DateSets.GroupAbsent, key.date)
			}
		}
	}
	sortDates(result.DateSets.GroupWorked)
	sortDates(result.DateSets.GroupAbsent)
	sortDates(result.DateSets.SoloWorked)
	sortDates(result.DateSets.SoloAbsent)

	return result
}

// applyRole resolves a role observation with leader precedence.
func applyRole(roles map[string]domain.RoleAssignment, corrections *[]string, person, raw string, source domain.RoleSource) {
	var observed domain.Role
	switch {
	case strings.Contains(raw, string(domain.RoleLeader)):
		observed = domain.RoleLeader
	case strings.Contains(raw, string(domain.RoleMember)):
		observed = domain.RoleMember
	default:
		return
	}
	existing, seen := roles[person]
	if !seen {
		roles[person] = domain.RoleAssignment{Role: observed, Source: source}
		return
	}
	if existing.Role == observed {
		return
	}
	if observed == domain.RoleLeader {
		roles[person] = domain.RoleAssignment{Role: domain.RoleLeader, Source: source}
	}
	*corrections = append(*corrections,
		fmt.Sprintf("角色冲突消解: %s 按组长优先", person))
}

// CollectAttendancePeople enumerates every person with an attendance row
// under the given project, skipping payment-shaped rows in merged tables.
func CollectAttendancePeople(rows []domain.Row, projectName string) []string {
	headers := headerSet(rows)
	nameCol, hasName := resolveHeader(headers, attendanceNameHeaders)
	workKey, _ := resolveHeader(headers, workHeaders)
	projectKey, _ := resolveHeader(headers, projectHeaders)

	var rosterCols []string
	if !hasName {
		for _, header := range rosterHeaders {
			if headers[header] {
				rosterCols = append(rosterCols, header)
			}
		}
		if len(rosterCols) == 0 {
			return nil
		}
	}

	seen := map[string]bool{}
	var people []string
	for _, row := range rows {
		if rowValue(row, workKey) == "" && isPaymentCandidate(row) {
			continue
		}
		if projectName != "" {
			if projectValue := rowValue(row, projectKey); projectValue != "" && projectValue != projectName {
				continue
			}
		}
		var names []string
		if hasName {
			names = splitNames(rowValue(row, nameCol))
		} else {
			for _, col := range rosterCols {
				names = append(names, splitNames(rowValue(row, col))...)
			}
		}
		for _, person := range names {
			if !seen[person] {
				seen[person] = true
				people = append(people, person)
			}
		}
	}
	sort.Strings(people)
	return people
}

// DateSetsConsistent independently re-derives the invariants the four date
// buckets must satisfy: pairwise disjoint, sorted, deduplicated.
func DateSetsConsistent(sets domain.DateSets) bool {
	seen := map[string]bool{}
	for _, bucket := range [][]string{sets.GroupWorked, sets.GroupAbsent, sets.SoloWorked, sets.SoloAbsent} {
		if !sort.StringsAreSorted(bucket) {
			return false
		}
		for _, date := range bucket {
			if seen[date] {
				return false
			}
			seen[date] = true
		}
	}
	return true
}

func addToDaySet(byDate map[string]map[string]bool, date, person string) {
	if byDate[date] == nil {
		byDate[date] = map[string]bool{}
	}
	byDate[date][person] = true
}

func sortDates(dates []string) {
	sort.Strings(dates)
}
