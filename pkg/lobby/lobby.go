package lobby

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/holdem/action"
)

var (
	// ErrUnknownPlayer is returned when the player is not seated at the table
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrHandInProgress is returned when the operation requires the table to be between hands
	ErrHandInProgress = errors.New("hand in progress")
)

// Lobby owns a single table. It seats players, gates the start of each hand
// on readiness, and projects per-player views of the game. All methods are
// safe for concurrent use.
type Lobby struct {
	mu     sync.Mutex
	log    logrus.FieldLogger
	game   *holdem.Game
	ready  map[string]bool
	reveal map[string]bool
}

// New returns a lobby with an empty table
func New(log logrus.FieldLogger, opts holdem.Options) (*Lobby, error) {
	game, err := holdem.NewGame(log, opts)
	if err != nil {
		return nil, err
	}

	return &Lobby{
		log:    log,
		game:   game,
		ready:  make(map[string]bool),
		reveal: make(map[string]bool),
	}, nil
}

// AddPlayer seats a player at the table. Seating the same player twice is a
// no-op, so a reconnecting client can always call it safely.
func (l *Lobby) AddPlayer(id, name string, stack int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.game.Player(id) != nil {
		return nil
	}

	if err := l.game.AddPlayer(holdem.NewPlayer(id, name, stack)); err != nil {
		return err
	}

	l.log.WithFields(logrus.Fields{
		"player": id,
		"stack":  stack,
	}).Info("player seated")
	return nil
}

// RemovePlayer drops a player's seat. If they were in a live hand their
// cards are folded first, which may end the hand as a walkover.
func (l *Lobby) RemovePlayer(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.game.RemovePlayer(id) {
		return
	}

	delete(l.ready, id)
	delete(l.reveal, id)
	l.log.WithField("player", id).Info("player left the table")

	if l.game.State() == holdem.StateFinished {
		l.endOfHand()
	}
}

// SetReady marks whether the player wants to be dealt into the next hand
func (l *Lobby) SetReady(id string, ready bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.game.Player(id)
	if p == nil {
		return ErrUnknownPlayer
	}

	p.SetSittingOut(!ready)
	l.ready[id] = ready
	return nil
}

// StartGame deals the next hand. Reveal grants from the previous hand are
// rescinded once new cards are out.
func (l *Lobby) StartGame() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.game.Start(); err != nil {
		return err
	}

	l.reveal = make(map[string]bool)
	return nil
}

// HandleAction forwards a betting action to the game. When the action ends
// the hand, every seat must ready up again before the next one is dealt.
func (l *Lobby) HandleAction(id string, act action.Action, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.game.HandleAction(id, act, amount); err != nil {
		return err
	}

	if l.game.State() == holdem.StateFinished {
		l.endOfHand()
	}

	return nil
}

// RevealCards lets a player show their hole cards to the table between
// hands, typically to show a successful bluff after a walkover.
func (l *Lobby) RevealCards(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.game.Player(id) == nil {
		return ErrUnknownPlayer
	}

	if l.game.InHand() {
		return ErrHandInProgress
	}

	l.reveal[id] = true
	return nil
}

// State returns the current stage of the hand
func (l *Lobby) State() holdem.State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.game.State()
}

// Stacks returns each seated player's current stack
func (l *Lobby) Stacks() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	stacks := make(map[string]int)
	for _, p := range l.game.Players() {
		stacks[p.ID()] = p.Stack()
	}

	return stacks
}

// PlayerIDs returns the seated players in seat order
func (l *Lobby) PlayerIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	players := l.game.Players()
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID()
	}

	return ids
}

// endOfHand must be called with the lock held
func (l *Lobby) endOfHand() {
	for _, p := range l.game.Players() {
		p.SetSittingOut(true)
		l.ready[p.ID()] = false
	}
}
