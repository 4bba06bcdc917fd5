package audit

import (
	"slices"

	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
)

// Skeleton turns observations into alias entries for manual review: one
// entry per fallback display name, carrying the raw spellings seen for it.
// Order follows the observations.
func Skeleton(obs []Observation) []teamname.Entry {
	idx := make(map[string]int)
	var out []teamname.Entry
	for _, o := range obs {
		i, ok := idx[o.Display]
		if !ok {
			i = len(out)
			idx[o.Display] = i
			out = append(out, teamname.Entry{Canonical: o.Display})
		}
		if o.Raw != o.Display && !slices.Contains(out[i].Variants, o.Raw) {
			out[i].Variants = append(out[i].Variants, o.Raw)
		}
	}
	return out
}

// LearnedEntries groups learned aliases by canonical name.
func LearnedEntries(learned []LearnedAlias) []teamname.Entry {
	idx := make(map[string]int)
	var out []teamname.Entry
	for _, la := range learned {
		i, ok := idx[la.Canonical]
		if !ok {
			i = len(out)
			idx[la.Canonical] = i
			out = append(out, teamname.Entry{Canonical: la.Canonical})
		}
		if la.Raw != la.Canonical && !slices.Contains(out[i].Variants, la.Raw) {
			out[i].Variants = append(out[i].Variants, la.Raw)
		}
	}
	return out
}
