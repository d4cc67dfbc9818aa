package validation

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to three candidates close to name, best first.
// Matching is case-insensitive with an edit budget that grows with length.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	in := strings.ToLower(strings.TrimSpace(name))
	if in == "" {
		return nil
	}
	var hits []scored
	for _, c := range candidates {
		cand := strings.ToLower(c)
		dist := levenshtein.ComputeDistance(in, cand)
		if dist > editLimit(len(cand)) && !strings.HasPrefix(cand, in) {
			continue
		}
		hits = append(hits, scored{c, dist})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})
	out := make([]string, 0, 3)
	for _, h := range hits {
		out = append(out, h.name)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func editLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
