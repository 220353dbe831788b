package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/fplcore/analysis-api/internal/domain/schedule"
	"github.com/fplcore/analysis-api/internal/domain/snapshot"
	"github.com/fplcore/analysis-api/internal/platform/logging"
)

// ScheduleService answers which gameweeks are finished and verified, and
// which gameweek comes next.
type ScheduleService struct {
	snapshots snapshot.Provider
	logger    *logging.Logger
}

func NewScheduleService(snapshots snapshot.Provider, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
		snapshots: snapshots,
		logger:    logger,
	}
}

// RecentFinishedGameweeks returns up to count gameweek ids whose data is
// finished and checked, most recent deadline first. Gameweeks sharing a
// deadline are ordered by descending id, so the later-numbered round wins.
func (s *ScheduleService) RecentFinishedGameweeks(ctx context.Context, count int) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.RecentFinishedGameweeks")
	defer span.End()

	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be greater than zero", ErrInvalidInput)
	}

	summaries, err := s.snapshots.GameweekSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleLoad, err)
	}

	finished := make([]schedule.Gameweek, 0, len(summaries))
	for _, gw := range summaries {
		if gw.Playable() {
			finished = append(finished, gw)
		}
	}

	sort.Slice(finished, func(i, j int) bool {
		if !finished[i].DeadlineTime.Equal(finished[j].DeadlineTime) {
			return finished[i].DeadlineTime.After(finished[j].DeadlineTime)
		}
		return finished[i].ID > finished[j].ID
	})

	if len(finished) > count {
		finished = finished[:count]
	}

	ids := make([]int, 0, len(finished))
	for _, gw := range finished {
		ids = append(ids, gw.ID)
	}
	return ids, nil
}

// NextGameweek prefers the gameweek explicitly flagged as next, falling back
// to the unfinished gameweek with the earliest deadline (lowest id on a
// tie). Returns nil when no candidate exists.
func (s *ScheduleService) NextGameweek(ctx context.Context) (*int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.NextGameweek")
	defer span.End()

	summaries, err := s.snapshots.GameweekSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleLoad, err)
	}

	for _, gw := range summaries {
		if gw.IsNext {
			id := gw.ID
			return &id, nil
		}
	}

	var next *schedule.Gameweek
	for i := range summaries {
		gw := summaries[i]
		if gw.Finished {
			continue
		}
		if next == nil ||
			gw.DeadlineTime.Before(next.DeadlineTime) ||
			(gw.DeadlineTime.Equal(next.DeadlineTime) && gw.ID < next.ID) {
			next = &summaries[i]
		}
	}
	if next == nil {
		s.logger.DebugContext(ctx, "no upcoming gameweek in schedule")
		return nil, nil
	}

	id := next.ID
	return &id, nil
}
