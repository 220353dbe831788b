package analysis

import "github.com/fplcore/analysis-api/internal/domain/playerstats"

// Result is the consumer-facing shape of one pipeline run. PlayerStats is
// keyed "{id}-{position}"; each sequence is ordered by gameweek load order.
type Result struct {
	PastGameweeks []int                                 `json:"past_gameweeks"`
	NextGameweek  *int                                  `json:"next_gameweek"`
	PlayerStats   map[string][]playerstats.GameweekStat `json:"player_stats"`
}

// Empty builds a well-formed result with no stats, keeping whatever next
// gameweek was resolved.
func Empty(pastGameweeks []int, nextGameweek *int) Result {
	if pastGameweeks == nil {
		pastGameweeks = []int{}
	}
	return Result{
		PastGameweeks: pastGameweeks,
		NextGameweek:  nextGameweek,
		PlayerStats:   map[string][]playerstats.GameweekStat{},
	}
}
