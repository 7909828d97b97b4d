package usecase

import (
	"strings"
	"time"
)

// normalizeDate canonicalizes a raw date cell to YYYY-MM-DD. It accepts
// full-width 年/月/日 markers, slashes, dots and dashes. The second return
// reports whether normalization changed the raw text (logged for audit
// trails); ok is false when the non-empty text cannot be parsed at all.
func normalizeDate(raw string) (normalized string, changed bool, ok bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false, false
	}
	replacer := strings.NewReplacer("年", "-", "月", "-", "日", "", "/", "-", ".", "-")
	candidate := replacer.Replace(text)
	parts := make([]string, 0, 3)
	for _, part := range strings.Split(candidate, "-") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	candidate = strings.Join(parts, "-")

	for _, layout := range []string{"2006-1-2", "20060102"} {
		parsed, err := time.Parse(layout, candidate)
		if err != nil {
			continue
		}
		result := parsed.Format("2006-01-02")
		return result, result != text, true
	}
	return "", false, false
}
