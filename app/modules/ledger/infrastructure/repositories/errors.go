package ledgerdb

import "errors"

var (
	// ErrGameNotFound is returned when a game ID does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrPlayerNotFound is returned when a player ID does not exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrTokenNotFound is returned when a tally token ID does not exist.
	ErrTokenNotFound = errors.New("tally token not found")
)
