package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
	"github.com/fplcore/analysis-api/internal/domain/player"
	"github.com/fplcore/analysis-api/internal/domain/playerstats"
	"github.com/fplcore/analysis-api/internal/domain/schedule"
	"github.com/fplcore/analysis-api/internal/domain/snapshot"
	"github.com/fplcore/analysis-api/internal/domain/team"
	"github.com/fplcore/analysis-api/internal/platform/logging"
)

const (
	summariesFile = "gameweek_summaries.csv"
	gameweekDir   = "ByGameweek"
	statsFile     = "player_gameweek_stats.csv"
	playersFile   = "players.csv"
	teamsFile     = "teams.csv"
)

// Provider reads snapshot CSVs from the season directory tree:
//
//	{dataDir}/gameweek_summaries.csv
//	{dataDir}/ByGameweek/GW{id}/player_gameweek_stats.csv
//	{dataDir}/ByGameweek/GW{id}/players.csv
//	{dataDir}/ByGameweek/GW{id}/teams.csv
type Provider struct {
	dataDir string
	logger  *logging.Logger
}

func NewProvider(dataDir string, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.Default()
	}
	return &Provider{
		dataDir: dataDir,
		logger:  logger,
	}
}

func (p *Provider) GameweekSummaries(ctx context.Context) ([]schedule.Gameweek, error) {
	path := filepath.Join(p.dataDir, summariesFile)
	header, records, err := p.readCSV(path)
	if err != nil {
		return nil, err
	}

	cols, err := requireColumns(header, "id", "finished", "data_checked", "is_next", "deadline_time")
	if err != nil {
		return nil, crerr.Wrapf(err, "gameweek summaries %s", path)
	}

	out := make([]schedule.Gameweek, 0, len(records))
	for _, rec := range records {
		gw, err := decodeGameweek(rec, cols)
		if err != nil {
			p.logger.WarnContext(ctx, "skipping malformed gameweek summary row", "path", path, "error", err)
			continue
		}
		out = append(out, gw)
	}
	return out, nil
}

func (p *Provider) PlayerGameweekStats(ctx context.Context, gameweekID int) ([]playerstats.GameweekStat, error) {
	path := p.gameweekPath(gameweekID, statsFile)
	header, records, err := p.readCSV(path)
	if err != nil {
		return nil, err
	}

	out := make([]playerstats.GameweekStat, 0, len(records))
	for _, rec := range records {
		stat, err := decodeGameweekStat(header, rec)
		if err != nil {
			p.logger.WarnContext(ctx, "dropping stat row that cannot be decoded",
				"gameweek", gameweekID,
				"player_id", rawColumn(header, rec, "id"),
				"error", err,
			)
			continue
		}
		out = append(out, stat)
	}
	return out, nil
}

func (p *Provider) Players(ctx context.Context, gameweekID int) ([]player.Ref, error) {
	path := p.gameweekPath(gameweekID, playersFile)
	header, records, err := p.readCSV(path)
	if err != nil {
		return nil, err
	}

	cols, err := requireColumns(header, "player_id", "position", "team_code")
	if err != nil {
		return nil, crerr.Wrapf(err, "players snapshot %s", path)
	}

	out := make([]player.Ref, 0, len(records))
	for _, rec := range records {
		ref, err := decodePlayerRef(rec, cols)
		if err != nil {
			p.logger.WarnContext(ctx, "skipping malformed player reference row",
				"gameweek", gameweekID,
				"player_id", rawColumn(header, rec, "player_id"),
				"error", err,
			)
			continue
		}
		out = append(out, ref)
	}
	return out, nil
}

func (p *Provider) Teams(ctx context.Context, gameweekID int) ([]team.Ref, error) {
	path := p.gameweekPath(gameweekID, teamsFile)
	header, records, err := p.readCSV(path)
	if err != nil {
		return nil, err
	}

	cols, err := requireColumns(header, "code")
	if err != nil {
		return nil, crerr.Wrapf(err, "teams snapshot %s", path)
	}

	out := make([]team.Ref, 0, len(records))
	for _, rec := range records {
		ref, err := decodeTeamRef(header, rec, cols)
		if err != nil {
			p.logger.WarnContext(ctx, "skipping malformed team reference row",
				"gameweek", gameweekID,
				"team_code", rawColumn(header, rec, "code"),
				"error", err,
			)
			continue
		}
		out = append(out, ref)
	}
	return out, nil
}

func (p *Provider) gameweekPath(gameweekID int, file string) string {
	return filepath.Join(p.dataDir, gameweekDir, fmt.Sprintf("GW%d", gameweekID), file)
}

// readCSV returns the header row and all data rows. A missing file maps to
// snapshot.ErrNotFound so callers can apply their skip/fallback policies.
func (p *Provider) readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, crerr.Mark(crerr.Wrapf(err, "open %s", path), snapshot.ErrNotFound)
		}
		return nil, nil, crerr.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, crerr.Newf("empty snapshot %s", path)
	}
	if err != nil {
		return nil, nil, crerr.Wrapf(err, "read header of %s", path)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, crerr.Wrapf(err, "read row of %s", path)
		}
		records = append(records, rec)
	}
	return header, records, nil
}
