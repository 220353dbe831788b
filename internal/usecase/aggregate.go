package usecase

import (
	"github.com/fplcore/analysis-api/internal/domain/analysis"
	"github.com/fplcore/analysis-api/internal/domain/playerstats"
)

// groupByPlayerAndPosition buckets rows under their "{id}-{position}" key,
// preserving production order within each bucket. Rows without a resolved
// position cannot form a key and are excluded.
func groupByPlayerAndPosition(stats []playerstats.GameweekStat) map[string][]playerstats.GameweekStat {
	groups := make(map[string][]playerstats.GameweekStat)
	for _, stat := range stats {
		key, ok := stat.GroupKey()
		if !ok {
			continue
		}
		groups[key] = append(groups[key], stat)
	}
	return groups
}

// assemble is pure construction; all policy has already run.
func assemble(pastGameweeks []int, nextGameweek *int, groups map[string][]playerstats.GameweekStat) analysis.Result {
	if pastGameweeks == nil {
		pastGameweeks = []int{}
	}
	if groups == nil {
		groups = map[string][]playerstats.GameweekStat{}
	}
	return analysis.Result{
		PastGameweeks: pastGameweeks,
		NextGameweek:  nextGameweek,
		PlayerStats:   groups,
	}
}
