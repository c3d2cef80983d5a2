package graph

import (
	"math"
	"sort"

	"repograph/internal/github"
	t "repograph/internal/types"
)

// Breakdown converts byte counts into percentages of the total, rounded to
// two decimals and sorted largest first (ties by name). With a zero total
// every share is 0.
func Breakdown(langs []github.LanguageBytes) []t.LanguageShare {
	var total int64
	for _, l := range langs {
		total += l.Bytes
	}
	out := make([]t.LanguageShare, 0, len(langs))
	for _, l := range langs {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(l.Bytes)/float64(total)*100*100) / 100
		}
		out = append(out, t.LanguageShare{Name: l.Name, Percentage: pct})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Name < out[j].Name
	})
	return out
}
