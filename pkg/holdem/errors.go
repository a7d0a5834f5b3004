package holdem

import "errors"

// errors reported to the caller when a precondition fails.
// The game state is left untouched when one of these is returned.
var (
	// ErrNotEnoughPlayers is returned by Start() with fewer than two eligible players
	ErrNotEnoughPlayers = errors.New("at least two players are required")

	// ErrGameInProgress is returned when the operation requires no live hand
	ErrGameInProgress = errors.New("a hand is already in progress")

	// ErrNoBettingRound is returned when an action arrives outside a betting round
	ErrNoBettingRound = errors.New("no betting round in progress")

	// ErrNotYourTurn is returned when a player acts out of turn
	ErrNotYourTurn = errors.New("not your turn")

	// ErrInvalidCheck is returned when a player checks while a call is owed
	ErrInvalidCheck = errors.New("cannot check, must call")

	// ErrInvalidRaise is returned when a raise does not exceed the current bet level
	ErrInvalidRaise = errors.New("raise must exceed the current bet")

	// ErrInsufficientChips is returned when a raise requires more chips than the player has
	ErrInsufficientChips = errors.New("not enough chips")
)
