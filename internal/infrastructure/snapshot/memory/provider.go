package memory

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/fplcore/analysis-api/internal/domain/player"
	"github.com/fplcore/analysis-api/internal/domain/playerstats"
	"github.com/fplcore/analysis-api/internal/domain/schedule"
	"github.com/fplcore/analysis-api/internal/domain/snapshot"
	"github.com/fplcore/analysis-api/internal/domain/team"
)

// Provider serves snapshots from memory. It backs pipeline tests and any
// wiring that has no snapshot directory available.
type Provider struct {
	mu        sync.RWMutex
	summaries []schedule.Gameweek
	stats     map[int][]playerstats.GameweekStat
	players   map[int][]player.Ref
	teams     map[int][]team.Ref

	// summariesErr, when set, is returned by GameweekSummaries instead of
	// data; it simulates an unreadable schedule source.
	summariesErr error
}

func NewProvider(summaries []schedule.Gameweek) *Provider {
	return &Provider{
		summaries: append([]schedule.Gameweek(nil), summaries...),
		stats:     make(map[int][]playerstats.GameweekStat),
		players:   make(map[int][]player.Ref),
		teams:     make(map[int][]team.Ref),
	}
}

func (p *Provider) SetStats(gameweekID int, stats []playerstats.GameweekStat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats[gameweekID] = append([]playerstats.GameweekStat(nil), stats...)
}

func (p *Provider) SetPlayers(gameweekID int, refs []player.Ref) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.players[gameweekID] = append([]player.Ref(nil), refs...)
}

func (p *Provider) SetTeams(gameweekID int, refs []team.Ref) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teams[gameweekID] = append([]team.Ref(nil), refs...)
}

func (p *Provider) FailSummaries(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summariesErr = err
}

func (p *Provider) GameweekSummaries(_ context.Context) ([]schedule.Gameweek, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.summariesErr != nil {
		return nil, p.summariesErr
	}
	return append([]schedule.Gameweek(nil), p.summaries...), nil
}

func (p *Provider) PlayerGameweekStats(_ context.Context, gameweekID int) ([]playerstats.GameweekStat, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats, ok := p.stats[gameweekID]
	if !ok {
		return nil, crerr.Mark(crerr.Newf("no stats snapshot for gameweek %d", gameweekID), snapshot.ErrNotFound)
	}
	return append([]playerstats.GameweekStat(nil), stats...), nil
}

func (p *Provider) Players(_ context.Context, gameweekID int) ([]player.Ref, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	refs, ok := p.players[gameweekID]
	if !ok {
		return nil, crerr.Mark(crerr.Newf("no players snapshot for gameweek %d", gameweekID), snapshot.ErrNotFound)
	}
	return append([]player.Ref(nil), refs...), nil
}

func (p *Provider) Teams(_ context.Context, gameweekID int) ([]team.Ref, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	refs, ok := p.teams[gameweekID]
	if !ok {
		return nil, crerr.Mark(crerr.Newf("no teams snapshot for gameweek %d", gameweekID), snapshot.ErrNotFound)
	}
	return append([]team.Ref(nil), refs...), nil
}
