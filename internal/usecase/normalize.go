package usecase

import (
	"math"

	"github.com/fplcore/analysis-api/internal/domain/playerstats"
)

// filterUnavailable drops rows whose status carries the unavailable marker.
// Rows without a status pass through. Runs after both joins so unavailable
// players never reach aggregation.
func filterUnavailable(stats []playerstats.GameweekStat) []playerstats.GameweekStat {
	out := make([]playerstats.GameweekStat, 0, len(stats))
	for _, stat := range stats {
		if stat.Unavailable() {
			continue
		}
		out = append(out, stat)
	}
	return out
}

// normalizeStat rounds every floating-point value, fixed or pass-through, to
// two decimal places. Absent fields stay absent; there is nothing to strip
// because nil fields never serialize.
func normalizeStat(stat *playerstats.GameweekStat) {
	if stat.NowCost != nil {
		*stat.NowCost = round2(*stat.NowCost)
	}
	if stat.TeamElo != nil {
		*stat.TeamElo = round2(*stat.TeamElo)
	}
	for key, value := range stat.Extra {
		if f, ok := value.(float64); ok {
			stat.Extra[key] = round2(f)
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
