package ledgerservice

import "errors"

var (
	// ErrZeroPoints rejects score entries with a zero point delta before any
	// state change.
	ErrZeroPoints = errors.New("points must be a non-zero integer")
	// ErrGameFinished rejects mutations against a game that is no longer
	// active.
	ErrGameFinished = errors.New("game is already finished")
	// ErrNoPlayers rejects token rounds for games without seated players.
	ErrNoPlayers = errors.New("game has no players")
	// ErrDuplicatePlayer rejects seating a profile that already sits in the
	// game.
	ErrDuplicatePlayer = errors.New("player is already in the game")
)
