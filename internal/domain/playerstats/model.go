package playerstats

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// StatusUnavailable marks a player that has left the game; rows carrying it
// are filtered out before aggregation.
const StatusUnavailable = "u"

// GameweekStat is one player's performance in one gameweek, enriched by the
// player and team reference joins. The fixed fields cover the known schema;
// Extra carries arbitrary pass-through columns from the stats snapshot and is
// flattened into the same JSON object on serialization. Nil fields never
// appear in the serialized form.
type GameweekStat struct {
	ID         int     `json:"id"`
	FirstName  *string `json:"first_name,omitempty"`
	SecondName *string `json:"second_name,omitempty"`
	WebName    *string `json:"web_name,omitempty"`

	Gameweek int    `json:"gameweek"`
	Season   string `json:"season"`

	Status  *string  `json:"status,omitempty"`
	News    *string  `json:"news,omitempty"`
	NowCost *float64 `json:"now_cost,omitempty"`

	TotalPoints   *int `json:"total_points,omitempty"`
	Minutes       *int `json:"minutes,omitempty"`
	GoalsScored   *int `json:"goals_scored,omitempty"`
	Assists       *int `json:"assists,omitempty"`
	CleanSheets   *int `json:"clean_sheets,omitempty"`
	GoalsConceded *int `json:"goals_conceded,omitempty"`
	Bonus         *int `json:"bonus,omitempty"`
	Bps           *int `json:"bps,omitempty"`

	// Set by the player reference join.
	Position *string `json:"position,omitempty"`
	TeamCode *int    `json:"team_code,omitempty"`

	// Set by the team reference join, renamed with the team_ prefix to avoid
	// colliding with stat columns of the same name.
	TeamName                *string  `json:"team_name,omitempty"`
	TeamElo                 *float64 `json:"team_elo,omitempty"`
	TeamStrength            *int     `json:"team_strength,omitempty"`
	TeamStrengthOverallHome *int     `json:"team_strength_overall_home,omitempty"`
	TeamStrengthOverallAway *int     `json:"team_strength_overall_away,omitempty"`
	TeamStrengthAttackHome  *int     `json:"team_strength_attack_home,omitempty"`
	TeamStrengthAttackAway  *int     `json:"team_strength_attack_away,omitempty"`
	TeamStrengthDefenceHome *int     `json:"team_strength_defence_home,omitempty"`
	TeamStrengthDefenceAway *int     `json:"team_strength_defence_away,omitempty"`

	Extra map[string]any `json:"-"`
}

// GroupKey builds the "{id}-{position}" aggregation key. Rows without a
// resolved position cannot form a key.
func (s GameweekStat) GroupKey() (string, bool) {
	if s.Position == nil || *s.Position == "" {
		return "", false
	}
	return fmt.Sprintf("%d-%s", s.ID, *s.Position), true
}

// Unavailable reports whether the row carries the unavailable status marker.
// Rows with no status at all are considered available.
func (s GameweekStat) Unavailable() bool {
	return s.Status != nil && *s.Status == StatusUnavailable
}

// MarshalJSON flattens Extra into the top-level object alongside the fixed
// fields.
func (s GameweekStat) MarshalJSON() ([]byte, error) {
	type fixed GameweekStat

	base, err := sonic.Marshal(fixed(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return base, nil
	}

	extra, err := sonic.Marshal(s.Extra)
	if err != nil {
		return nil, err
	}
	if len(extra) <= 2 {
		return base, nil
	}

	out := make([]byte, 0, len(base)+len(extra))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, extra[1:]...)
	return out, nil
}
