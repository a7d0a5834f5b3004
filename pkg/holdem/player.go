package holdem

import (
	"holdemtable-server/pkg/deck"
	"holdemtable-server/pkg/holdem/action"
)

// Status is a player's participation state in the current hand
type Status string

// status constants
const (
	StatusActive     Status = "active"
	StatusFolded     Status = "folded"
	StatusAllIn      Status = "all-in"
	StatusSittingOut Status = "sitting-out"
)

// LastAction is the most recent action a player took this betting round
type LastAction struct {
	Action action.Action `json:"action"`
	Amount int           `json:"amount,omitempty"`
}

// Player represents one seat's participation in the current hand.
// All mutation happens through the Game that owns the seat.
type Player struct {
	id   string
	name string

	stack            int
	hole             deck.Hand
	status           Status
	currentBet       int
	totalContributed int
	lastAction       *LastAction

	// sitOut marks a seat as inactive for upcoming hands
	sitOut bool
}

// NewPlayer returns a player with the given identity and starting stack
func NewPlayer(id, name string, stack int) *Player {
	return &Player{
		id:     id,
		name:   name,
		stack:  stack,
		status: StatusSittingOut,
		sitOut: true,
	}
}

// ID returns the player's stable identifier
func (p *Player) ID() string {
	return p.id
}

// Name returns the player's display name
func (p *Player) Name() string {
	return p.name
}

// Stack returns the chips not currently wagered
func (p *Player) Stack() int {
	return p.stack
}

// Status returns the player's status in the current hand
func (p *Player) Status() Status {
	return p.status
}

// HoleCards returns the player's hole cards (empty unless a hand is live)
func (p *Player) HoleCards() deck.Hand {
	return p.hole.Clone()
}

// CurrentBet returns the chips committed in the current betting round
func (p *Player) CurrentBet() int {
	return p.currentBet
}

// TotalContributed returns the chips committed across the entire hand
func (p *Player) TotalContributed() int {
	return p.totalContributed
}

// LastAction returns the most recent action this betting round, or nil
func (p *Player) LastAction() *LastAction {
	return p.lastAction
}

// SetSittingOut marks whether the seat participates in upcoming hands.
// It has no effect on a hand already in progress.
func (p *Player) SetSittingOut(sitOut bool) {
	p.sitOut = sitOut
}

// IsSittingOut returns true if the seat will not participate in the next hand
func (p *Player) IsSittingOut() bool {
	return p.sitOut
}

// eligible returns true if the seat can be dealt into a new hand
func (p *Player) eligible() bool {
	return !p.sitOut && p.stack > 0
}

func (p *Player) resetForHand() {
	p.hole = nil
	p.currentBet = 0
	p.totalContributed = 0
	p.lastAction = nil

	if p.eligible() {
		p.status = StatusActive
	} else {
		p.status = StatusSittingOut
	}
}

// bet moves up to amount from the stack into the current bet.
// A bet for the whole stack puts the player all in. Returns the amount moved.
func (p *Player) bet(amount int) int {
	if amount > p.stack {
		amount = p.stack
	}

	p.stack -= amount
	p.currentBet += amount
	p.totalContributed += amount

	if p.stack == 0 {
		p.status = StatusAllIn
	}

	return amount
}

func (p *Player) fold() {
	p.status = StatusFolded
	p.hole = nil
}
