package usecase

import (
	"github.com/fplcore/analysis-api/internal/domain/player"
	"github.com/fplcore/analysis-api/internal/domain/playerstats"
	"github.com/fplcore/analysis-api/internal/domain/team"
)

// joinPlayerRefs is a left join of stat rows onto player reference data on
// stat id == ref player id. Every stat row survives; rows without a match
// keep position and team code unset. The match key itself never reaches the
// output schema. Duplicate player ids in the reference data resolve to the
// first occurrence.
func joinPlayerRefs(stats []playerstats.GameweekStat, refs []player.Ref) []playerstats.GameweekStat {
	if len(refs) == 0 {
		return stats
	}

	byID := make(map[int]player.Ref, len(refs))
	for _, ref := range refs {
		if _, ok := byID[ref.PlayerID]; !ok {
			byID[ref.PlayerID] = ref
		}
	}

	for i := range stats {
		ref, ok := byID[stats[i].ID]
		if !ok {
			continue
		}
		if ref.Position != "" {
			pos := ref.Position
			stats[i].Position = &pos
		}
		if ref.TeamCode > 0 {
			code := ref.TeamCode
			stats[i].TeamCode = &code
		}
	}
	return stats
}

// joinTeamRefs is a left join of stat rows onto team reference data on team
// code. Only the allow-listed team fields cross over, renamed with the team_
// prefix; strength metrics absent from the source are skipped. The code join
// key never reaches the output schema.
func joinTeamRefs(stats []playerstats.GameweekStat, refs []team.Ref) []playerstats.GameweekStat {
	if len(refs) == 0 {
		return stats
	}

	byCode := make(map[int]team.Ref, len(refs))
	for _, ref := range refs {
		if _, ok := byCode[ref.Code]; !ok {
			byCode[ref.Code] = ref
		}
	}

	for i := range stats {
		if stats[i].TeamCode == nil {
			continue
		}
		ref, ok := byCode[*stats[i].TeamCode]
		if !ok {
			continue
		}
		if ref.Name != "" {
			name := ref.Name
			stats[i].TeamName = &name
		}
		if ref.Elo != nil {
			elo := *ref.Elo
			stats[i].TeamElo = &elo
		}
		stats[i].TeamStrength = cloneInt(ref.Strength)
		stats[i].TeamStrengthOverallHome = cloneInt(ref.StrengthOverallHome)
		stats[i].TeamStrengthOverallAway = cloneInt(ref.StrengthOverallAway)
		stats[i].TeamStrengthAttackHome = cloneInt(ref.StrengthAttackHome)
		stats[i].TeamStrengthAttackAway = cloneInt(ref.StrengthAttackAway)
		stats[i].TeamStrengthDefenceHome = cloneInt(ref.StrengthDefenceHome)
		stats[i].TeamStrengthDefenceAway = cloneInt(ref.StrengthDefenceAway)
	}
	return stats
}

func hasTeamCodes(stats []playerstats.GameweekStat) bool {
	for i := range stats {
		if stats[i].TeamCode != nil {
			return true
		}
	}
	return false
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
