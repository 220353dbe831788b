package schedule

import "time"

// Gameweek is one row of the gameweek_summaries snapshot. IDs are unique
// within a single load.
type Gameweek struct {
	ID           int
	Finished     bool
	DataChecked  bool
	IsNext       bool
	DeadlineTime time.Time
}

// Playable reports whether the gameweek can feed analysis: it has finished
// and its data has been verified upstream.
func (g Gameweek) Playable() bool {
	return g.Finished && g.DataChecked
}
