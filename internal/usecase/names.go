package usecase

import (
	"regexp"
	"strings"
)

var (
	nameSplitPattern   = regexp.MustCompile(`[、，,;；\s　]+`)
	trailingQualifier  = regexp.MustCompile(`^(.*?)\s*\([^()]*\)\s*$`)
	fullwidthParenRepl = strings.NewReplacer("（", "(", "）", ")")
)

// splitNames splits a name cell that may hold several people joined by
// common delimiters. First-seen order is preserved and exact duplicates are
// dropped.
func splitNames(raw string) []string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, part := range nameSplitPattern.Split(cleaned, -1) {
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		names = append(names, part)
	}
	return names
}

// nameKey normalizes a display name for rate and identity lookups by
// stripping one trailing parenthetical qualifier, e.g. "袁玉兵(P007)" and
// "袁玉兵" share a key.
func nameKey(name string) string {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return cleaned
	}
	cleaned = fullwidthParenRepl.Replace(cleaned)
	if match := trailingQualifier.FindStringSubmatch(cleaned); match != nil {
		return strings.TrimSpace(match[1])
	}
	return cleaned
}
