package usecase

import (
	"fmt"
	"sort"
	"strings"

	"wage-settlement/internal/domain"
)

// CollectProjectCounts counts distinct project values across a row set.
func CollectProjectCounts(rows []domain.Row) map[string]int {
	headers := headerSet(rows)
	projectKey, ok := resolveHeader(headers, projectHeaders)
	counts := map[string]int{}
	if !ok {
		return counts
	}
	for _, row := range rows {
		if value := rowValue(row, projectKey); value != "" {
			counts[value]++
		}
	}
	return counts
}

// FormatProjectTop renders the most frequent project names as 名(次数)
// joined by 、, capped at limit entries.
func FormatProjectTop(counts map[string]int, limit int) string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s(%d)", e.name, e.count))
	}
	return strings.Join(parts, "、")
}

// ProjectResolution is the outcome of resolving the effective project name
// from the row pools when the directive did not supply one.
type ProjectResolution struct {
	Name      string
	Source    string // "command" or "pool"
	PoolIssue bool
	Errors    []string
}

// ResolveProject determines the effective project name. A directive-supplied
// name always wins. Otherwise each table must hold at most one distinct
// project value and the two tables must agree; anything else is a pool issue
// that blocks settlement until the caller supplies 项目=xxx.
func ResolveProject(directiveName string, attendanceRows, paymentRows []domain.Row) ProjectResolution {
	attendanceCounts := CollectProjectCounts(attendanceRows)
	paymentCounts := CollectProjectCounts(paymentRows)

	if directiveName != "" {
		return ProjectResolution{
			Name:      directiveName,
			Source:    "command",
			PoolIssue: len(attendanceCounts) >= 2 || len(paymentCounts) >= 2,
		}
	}

	resolution := ProjectResolution{Source: "pool"}
	if len(attendanceCounts) >= 2 {
		resolution.PoolIssue = true
		resolution.Errors = append(resolution.Errors, fmt.Sprintf(
			"项目池包含多个项目，无法自动识别项目，请补充项目=xxx（出勤表项目Top10：%s）",
			FormatProjectTop(attendanceCounts, 10)))
	}
	if len(paymentCounts) >= 2 {
		resolution.PoolIssue = true
		resolution.Errors = append(resolution.Errors, fmt.Sprintf(
			"项目池包含多个项目，无法自动识别项目，请补充项目=xxx（支付表项目Top10：%s）",
			FormatProjectTop(paymentCounts, 10)))
	}
	if resolution.PoolIssue {
		return resolution
	}

	attendanceProject := soleKey(attendanceCounts)
	paymentProject := soleKey(paymentCounts)
	if attendanceProject != "" && paymentProject != "" && attendanceProject != paymentProject {
		resolution.PoolIssue = true
		resolution.Errors = append(resolution.Errors, fmt.Sprintf(
			"出勤表与支付表项目名不一致，无法自动识别项目：出勤表=%s，支付表=%s",
			attendanceProject, paymentProject))
		return resolution
	}

	if attendanceProject != "" {
		resolution.Name = attendanceProject
	} else {
		resolution.Name = paymentProject
	}
	return resolution
}

func soleKey(counts map[string]int) string {
	if len(counts) != 1 {
		return ""
	}
	for name := range counts {
		return name
	}
	return ""
}
