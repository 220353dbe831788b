package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/fplcore/analysis-api/internal/domain/analysis"
	"github.com/fplcore/analysis-api/internal/domain/player"
	"github.com/fplcore/analysis-api/internal/domain/playerstats"
	"github.com/fplcore/analysis-api/internal/domain/snapshot"
	"github.com/fplcore/analysis-api/internal/domain/team"
	"github.com/fplcore/analysis-api/internal/platform/logging"
)

// DefaultRecentGameweeks is how many finished gameweeks feed one analysis
// run when the caller does not override it.
const DefaultRecentGameweeks = 5

// AnalysisService runs the snapshot ingestion pipeline: schedule selection,
// per-gameweek stat loading, reference joins, normalization and aggregation.
// Every run builds its own in-memory state, so concurrent runs are isolated.
type AnalysisService struct {
	snapshots snapshot.Provider
	schedule  *ScheduleService
	season    string
	recent    int
	logger    *logging.Logger
}

func NewAnalysisService(
	snapshots snapshot.Provider,
	scheduleService *ScheduleService,
	season string,
	recentGameweeks int,
	logger *logging.Logger,
) *AnalysisService {
	if recentGameweeks <= 0 {
		recentGameweeks = DefaultRecentGameweeks
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalysisService{
		snapshots: snapshots,
		schedule:  scheduleService,
		season:    season,
		recent:    recentGameweeks,
		logger:    logger,
	}
}

// Run executes one full pipeline pass over the configured number of recent
// gameweeks. The result is deterministic for identical snapshot contents.
func (s *AnalysisService) Run(ctx context.Context) (analysis.Result, error) {
	return s.RunWithCount(ctx, s.recent)
}

// RunWithCount is Run with an explicit recent-gameweek count.
func (s *AnalysisService) RunWithCount(ctx context.Context, count int) (analysis.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.RunWithCount")
	defer span.End()

	if count <= 0 {
		count = s.recent
	}

	pastGameweeks, err := s.schedule.RecentFinishedGameweeks(ctx, count)
	if err != nil {
		return analysis.Result{}, err
	}
	nextGameweek, err := s.schedule.NextGameweek(ctx)
	if err != nil {
		return analysis.Result{}, err
	}

	if len(pastGameweeks) == 0 {
		s.logger.WarnContext(ctx, "no finished and data-checked gameweeks found")
		return analysis.Empty(pastGameweeks, nextGameweek), nil
	}
	s.logger.InfoContext(ctx, "selected recent gameweeks", "gameweeks", pastGameweeks, "next", nextGameweek)

	stats := s.loadStats(ctx, pastGameweeks)
	if len(stats) == 0 {
		s.logger.WarnContext(ctx, "no player stats loaded for any selected gameweek")
		return analysis.Empty(pastGameweeks, nextGameweek), nil
	}

	if playerRefs := s.loadPlayerRefs(ctx, pastGameweeks); len(playerRefs) > 0 {
		stats = joinPlayerRefs(stats, playerRefs)
	}

	teamRefs := s.loadTeamRefs(ctx, pastGameweeks)
	switch {
	case len(teamRefs) == 0:
		// Warned inside loadTeamRefs.
	case !hasTeamCodes(stats):
		s.logger.WarnContext(ctx, "no row carries a team code, skipping team join")
	default:
		stats = joinTeamRefs(stats, teamRefs)
	}

	before := len(stats)
	stats = filterUnavailable(stats)
	if dropped := before - len(stats); dropped > 0 {
		s.logger.InfoContext(ctx, "filtered unavailable players", "rows", dropped)
	}

	for i := range stats {
		normalizeStat(&stats[i])
	}

	groups := groupByPlayerAndPosition(stats)
	if len(groups) == 0 && len(stats) > 0 {
		s.logger.WarnContext(ctx, "no row carries a position, returning empty player stats")
	}

	return assemble(pastGameweeks, nextGameweek, groups), nil
}

// loadStats reads the stats snapshot of each requested gameweek, stamping
// rows with their source gameweek and season. A missing snapshot skips that
// gameweek; partial results are acceptable.
func (s *AnalysisService) loadStats(ctx context.Context, gameweekIDs []int) []playerstats.GameweekStat {
	var out []playerstats.GameweekStat
	for _, id := range gameweekIDs {
		rows, err := s.snapshots.PlayerGameweekStats(ctx, id)
		if err != nil {
			if errors.Is(err, snapshot.ErrNotFound) {
				s.logger.WarnContext(ctx, "stats snapshot not found", "gameweek", id)
			} else {
				s.logger.WarnContext(ctx, "stats snapshot unreadable", "gameweek", id, "error", err)
			}
			continue
		}

		for i := range rows {
			rows[i].Gameweek = id
			rows[i].Season = s.season
		}
		out = append(out, rows...)
		s.logger.InfoContext(ctx, "loaded stats snapshot", "gameweek", id, "rows", len(rows))
	}
	return out
}

// loadPlayerRefs applies the most-recent-available policy: reference data
// changes rarely, so the newest readable snapshot among the candidates is
// good enough.
func (s *AnalysisService) loadPlayerRefs(ctx context.Context, gameweekIDs []int) []player.Ref {
	for _, id := range mostRecentFirst(gameweekIDs) {
		refs, err := s.snapshots.Players(ctx, id)
		if err != nil {
			s.logReferenceSkip(ctx, "players", id, err)
			continue
		}
		s.logger.InfoContext(ctx, "loaded players reference snapshot", "gameweek", id, "rows", len(refs))
		return refs
	}

	s.logger.WarnContext(ctx, "players reference snapshot not found in any candidate gameweek")
	return nil
}

func (s *AnalysisService) loadTeamRefs(ctx context.Context, gameweekIDs []int) []team.Ref {
	for _, id := range mostRecentFirst(gameweekIDs) {
		refs, err := s.snapshots.Teams(ctx, id)
		if err != nil {
			s.logReferenceSkip(ctx, "teams", id, err)
			continue
		}
		s.logger.InfoContext(ctx, "loaded teams reference snapshot", "gameweek", id, "rows", len(refs))
		return refs
	}

	s.logger.WarnContext(ctx, "teams reference snapshot not found in any candidate gameweek")
	return nil
}

func (s *AnalysisService) logReferenceSkip(ctx context.Context, table string, gameweekID int, err error) {
	if errors.Is(err, snapshot.ErrNotFound) {
		s.logger.DebugContext(ctx, "reference snapshot not found", "table", table, "gameweek", gameweekID)
		return
	}
	s.logger.WarnContext(ctx, "reference snapshot unreadable", "table", table, "gameweek", gameweekID, "error", err)
}

func mostRecentFirst(gameweekIDs []int) []int {
	out := append([]int(nil), gameweekIDs...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
