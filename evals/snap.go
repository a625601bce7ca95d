package evals

import (
	"sort"
	"strings"

	"github.com/prashantgupta17/evaltemplates/templates"
)

// SnapToRail maps a raw model answer onto exactly one of rails.
//
// Matching is case-insensitive. Longer rails are tried first and removed from the
// answer once found, so "irrelevant" is not also counted as "relevant". An answer
// that contains no rail, or more than one, yields templates.NotParsable.
func SnapToRail(raw string, rails []string) string {
	snap := strings.ToLower(raw)

	seen := make(map[string]struct{}, len(rails))
	candidates := make([]string, 0, len(rails))
	for _, rail := range rails {
		rail = strings.ToLower(rail)
		if rail == "" {
			continue
		}
		if _, ok := seen[rail]; ok {
			continue
		}
		seen[rail] = struct{}{}
		candidates = append(candidates, rail)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})

	var found []string
	for _, rail := range candidates {
		if strings.Contains(snap, rail) {
			found = append(found, rail)
			snap = strings.ReplaceAll(snap, rail, "")
		}
	}
	if len(found) != 1 {
		return templates.NotParsable
	}
	return found[0]
}
