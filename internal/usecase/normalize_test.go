package usecase

import (
	"testing"

	"github.com/fplcore/analysis-api/internal/domain/playerstats"
)

func TestFilterUnavailable(t *testing.T) {
	unavailable := playerstats.StatusUnavailable
	active := "a"

	stats := []playerstats.GameweekStat{
		{ID: 1, Status: &active},
		{ID: 2, Status: &unavailable},
		{ID: 3},
	}

	got := filterUnavailable(stats)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected rows: %v", got)
	}
}

func TestNormalizeStatRoundsFloats(t *testing.T) {
	cost := 5.6789
	eloValue := 1820.346
	stat := playerstats.GameweekStat{
		ID:      1,
		NowCost: &cost,
		TeamElo: &eloValue,
		Extra: map[string]any{
			"influence":  32.6666,
			"ict_index":  7.125,
			"starts":     12,
			"short_name": "SAL",
		},
	}

	normalizeStat(&stat)

	if *stat.NowCost != 5.68 {
		t.Fatalf("now_cost not rounded: %v", *stat.NowCost)
	}
	if *stat.TeamElo != 1820.35 {
		t.Fatalf("team_elo not rounded: %v", *stat.TeamElo)
	}
	if stat.Extra["influence"] != 32.67 {
		t.Fatalf("extra float not rounded: %v", stat.Extra["influence"])
	}
	if stat.Extra["ict_index"] != 7.13 {
		t.Fatalf("extra float not rounded: %v", stat.Extra["ict_index"])
	}
	if stat.Extra["starts"] != 12 {
		t.Fatalf("integer extra must stay untouched: %v", stat.Extra["starts"])
	}
	if stat.Extra["short_name"] != "SAL" {
		t.Fatalf("string extra must stay untouched: %v", stat.Extra["short_name"])
	}
}

func TestNormalizeStatSkipsAbsentFields(t *testing.T) {
	stat := playerstats.GameweekStat{ID: 1}
	normalizeStat(&stat)
	if stat.NowCost != nil || stat.TeamElo != nil {
		t.Fatalf("absent fields must stay absent")
	}
}
