package snapshot

import (
	"context"
	"errors"

	"github.com/fplcore/analysis-api/internal/domain/player"
	"github.com/fplcore/analysis-api/internal/domain/playerstats"
	"github.com/fplcore/analysis-api/internal/domain/schedule"
	"github.com/fplcore/analysis-api/internal/domain/team"
)

// ErrNotFound reports that a per-gameweek snapshot file does not exist.
// Callers decide whether that is fatal; for stats and reference tables it is
// not.
var ErrNotFound = errors.New("snapshot not found")

// Provider reads point-in-time snapshot exports for one season. Each method
// returns rows in the source's natural order.
type Provider interface {
	// GameweekSummaries loads the season's scheduling table.
	GameweekSummaries(ctx context.Context) ([]schedule.Gameweek, error)
	// PlayerGameweekStats loads the stats snapshot for one gameweek.
	PlayerGameweekStats(ctx context.Context, gameweekID int) ([]playerstats.GameweekStat, error)
	// Players loads the player reference snapshot for one gameweek.
	Players(ctx context.Context, gameweekID int) ([]player.Ref, error)
	// Teams loads the team reference snapshot for one gameweek.
	Teams(ctx context.Context, gameweekID int) ([]team.Ref, error)
}
