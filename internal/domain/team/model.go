package team

// Ref is slowly-changing team reference data from a teams snapshot. The
// strength metrics are optional in the source; absent ones stay nil and are
// skipped when joined onto stat rows.
type Ref struct {
	Code                int
	Name                string
	Elo                 *float64
	Strength            *int
	StrengthOverallHome *int
	StrengthOverallAway *int
	StrengthAttackHome  *int
	StrengthAttackAway  *int
	StrengthDefenceHome *int
	StrengthDefenceAway *int
}
