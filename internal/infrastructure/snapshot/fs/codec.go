package fs

import (
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/fplcore/analysis-api/internal/domain/player"
	"github.com/fplcore/analysis-api/internal/domain/playerstats"
	"github.com/fplcore/analysis-api/internal/domain/schedule"
	"github.com/fplcore/analysis-api/internal/domain/team"
)

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// requireColumns maps column names to indexes, failing when any is absent.
func requireColumns(header []string, names ...string) (map[string]int, error) {
	cols := make(map[string]int, len(names))
	for _, name := range names {
		idx := columnIndex(header, name)
		if idx < 0 {
			return nil, crerr.Newf("required column %q is missing", name)
		}
		cols[name] = idx
	}
	return cols, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func rawColumn(header, rec []string, name string) string {
	return field(rec, columnIndex(header, name))
}

// parseBool accepts both native CSV booleans and the stringified "True"/
// "False" the exporter sometimes writes. Anything that is not "true" is
// false.
func parseBool(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

func decodeGameweek(rec []string, cols map[string]int) (schedule.Gameweek, error) {
	var gw schedule.Gameweek

	rawID := field(rec, cols["id"])
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return gw, crerr.Wrapf(err, "parse gameweek id %q", rawID)
	}

	rawDeadline := field(rec, cols["deadline_time"])
	deadline, err := time.Parse(time.RFC3339, rawDeadline)
	if err != nil {
		return gw, crerr.Wrapf(err, "parse deadline_time %q", rawDeadline)
	}

	gw.ID = id
	gw.Finished = parseBool(field(rec, cols["finished"]))
	gw.DataChecked = parseBool(field(rec, cols["data_checked"]))
	gw.IsNext = parseBool(field(rec, cols["is_next"]))
	gw.DeadlineTime = deadline
	return gw, nil
}

func decodePlayerRef(rec []string, cols map[string]int) (player.Ref, error) {
	var ref player.Ref

	rawID := field(rec, cols["player_id"])
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return ref, crerr.Wrapf(err, "parse player_id %q", rawID)
	}
	ref.PlayerID = id
	ref.Position = field(rec, cols["position"])

	if raw := field(rec, cols["team_code"]); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			return ref, crerr.Wrapf(err, "parse team_code %q", raw)
		}
		ref.TeamCode = code
	}
	return ref, nil
}

func decodeTeamRef(header, rec []string, cols map[string]int) (team.Ref, error) {
	var ref team.Ref

	rawCode := field(rec, cols["code"])
	code, err := strconv.Atoi(rawCode)
	if err != nil {
		return ref, crerr.Wrapf(err, "parse code %q", rawCode)
	}
	ref.Code = code
	ref.Name = rawColumn(header, rec, "name")

	if raw := rawColumn(header, rec, "elo"); raw != "" {
		elo, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ref, crerr.Wrapf(err, "parse elo %q", raw)
		}
		ref.Elo = &elo
	}

	strengths := map[string]**int{
		"strength":              &ref.Strength,
		"strength_overall_home": &ref.StrengthOverallHome,
		"strength_overall_away": &ref.StrengthOverallAway,
		"strength_attack_home":  &ref.StrengthAttackHome,
		"strength_attack_away":  &ref.StrengthAttackAway,
		"strength_defence_home": &ref.StrengthDefenceHome,
		"strength_defence_away": &ref.StrengthDefenceAway,
	}
	for name, target := range strengths {
		raw := rawColumn(header, rec, name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return ref, crerr.Wrapf(err, "parse %s %q", name, raw)
		}
		*target = &v
	}
	return ref, nil
}

// decodeGameweekStat maps known columns onto the fixed fields and collects
// everything else into Extra with inferred types. Columns whose names match
// join-derived fields decode into those fields so the serialized object never
// carries duplicate keys.
func decodeGameweekStat(header, rec []string) (playerstats.GameweekStat, error) {
	var stat playerstats.GameweekStat
	seenID := false

	for i, name := range header {
		raw := field(rec, i)
		if raw == "" {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			id, err := strconv.Atoi(raw)
			if err != nil {
				return stat, crerr.Wrapf(err, "parse id %q", raw)
			}
			stat.ID = id
			seenID = true
		case "gameweek", "season":
			// Stamped by the loader from the source location; a stray column
			// in the file must not override it.
		case "first_name":
			stat.FirstName = strptr(raw)
		case "second_name":
			stat.SecondName = strptr(raw)
		case "web_name":
			stat.WebName = strptr(raw)
		case "status":
			stat.Status = strptr(raw)
		case "news":
			stat.News = strptr(raw)
		case "now_cost":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return stat, crerr.Wrapf(err, "parse now_cost %q", raw)
			}
			stat.NowCost = &v
		case "total_points":
			if err := intColumn(&stat.TotalPoints, name, raw); err != nil {
				return stat, err
			}
		case "minutes":
			if err := intColumn(&stat.Minutes, name, raw); err != nil {
				return stat, err
			}
		case "goals_scored":
			if err := intColumn(&stat.GoalsScored, name, raw); err != nil {
				return stat, err
			}
		case "assists":
			if err := intColumn(&stat.Assists, name, raw); err != nil {
				return stat, err
			}
		case "clean_sheets":
			if err := intColumn(&stat.CleanSheets, name, raw); err != nil {
				return stat, err
			}
		case "goals_conceded":
			if err := intColumn(&stat.GoalsConceded, name, raw); err != nil {
				return stat, err
			}
		case "bonus":
			if err := intColumn(&stat.Bonus, name, raw); err != nil {
				return stat, err
			}
		case "bps":
			if err := intColumn(&stat.Bps, name, raw); err != nil {
				return stat, err
			}
		case "position":
			stat.Position = strptr(raw)
		case "team_code":
			if err := intColumn(&stat.TeamCode, name, raw); err != nil {
				return stat, err
			}
		case "team_name":
			stat.TeamName = strptr(raw)
		case "team_elo":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return stat, crerr.Wrapf(err, "parse team_elo %q", raw)
			}
			stat.TeamElo = &v
		case "team_strength":
			if err := intColumn(&stat.TeamStrength, name, raw); err != nil {
				return stat, err
			}
		case "team_strength_overall_home":
			if err := intColumn(&stat.TeamStrengthOverallHome, name, raw); err != nil {
				return stat, err
			}
		case "team_strength_overall_away":
			if err := intColumn(&stat.TeamStrengthOverallAway, name, raw); err != nil {
				return stat, err
			}
		case "team_strength_attack_home":
			if err := intColumn(&stat.TeamStrengthAttackHome, name, raw); err != nil {
				return stat, err
			}
		case "team_strength_attack_away":
			if err := intColumn(&stat.TeamStrengthAttackAway, name, raw); err != nil {
				return stat, err
			}
		case "team_strength_defence_home":
			if err := intColumn(&stat.TeamStrengthDefenceHome, name, raw); err != nil {
				return stat, err
			}
		case "team_strength_defence_away":
			if err := intColumn(&stat.TeamStrengthDefenceAway, name, raw); err != nil {
				return stat, err
			}
		default:
			if stat.Extra == nil {
				stat.Extra = make(map[string]any)
			}
			stat.Extra[strings.TrimSpace(name)] = inferValue(raw)
		}
	}

	if !seenID {
		return stat, crerr.New("missing id")
	}
	return stat, nil
}

func intColumn(target **int, name, raw string) error {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return crerr.Wrapf(err, "parse %s %q", name, raw)
	}
	*target = &v
	return nil
}

func strptr(v string) *string {
	return &v
}

// inferValue types a pass-through cell the way a dataframe load would:
// booleans, then integers, then floats, with string as the fallback.
func inferValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}
