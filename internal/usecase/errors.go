package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrScheduleLoad is the only fatal pipeline failure: without the
	// gameweek schedule there is no way to decide which snapshots to load.
	ErrScheduleLoad = errors.New("gameweek schedule unavailable")
)
