package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrAlreadyInGame     = errors.New("user is already in a game")
	ErrOpponentInGame    = errors.New("opponent is already in a game")
	ErrDuplicateInstance = errors.New("an instance of this game is already running in this guild")

	// Session errors
	ErrAlreadyInProgress      = errors.New("game is already in progress")
	ErrSelfPlay               = errors.New("cannot play against yourself")
	ErrUnsupportedMultiplayer = errors.New("game does not support multiplayer")
	ErrIllegalMove            = errors.New("move is not legal in the current state")
)
