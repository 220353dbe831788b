package player

// Ref is slowly-changing player reference data from a players snapshot.
// PlayerID matches the id column of player_gameweek_stats rows.
type Ref struct {
	PlayerID int
	Position string
	TeamCode int
}
