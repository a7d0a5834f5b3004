package holdem

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/deck"
	"holdemtable-server/pkg/holdem/action"
)

// Options configures how a table plays
type Options struct {
	// MinBet is the big blind and the opening bet level of every hand
	MinBet int
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		MinBet: 20,
	}
}

func validateOptions(opts Options) error {
	if opts.MinBet <= 0 {
		return errors.New("min bet must be greater than zero")
	}

	if opts.MinBet%2 != 0 {
		return errors.New("min bet must be even so the small blind is exact")
	}

	return nil
}

// Game is a No-Limit Texas Hold'em table.
// It is not safe for concurrent use; the caller must serialize access,
// one writer per table.
type Game struct {
	log     logrus.FieldLogger
	options Options
	deck    *deck.Deck

	players   []*Player
	community deck.Hand
	state     State

	// pot holds chips already collected from completed betting rounds.
	// Bets for the round in progress are still in front of each player.
	pot           int
	currentMaxBet int

	dealerIndex int
	turnIndex   int

	// actedCount tracks how many players have acted since the last raise
	actedCount int

	// contestedCount tracks players still able to win the hand (not folded)
	contestedCount int

	handsPlayed     int
	reachedShowdown bool
	winners         []*Player
	results         map[string]int
}

// NewGame returns a new table with no seats filled
func NewGame(log logrus.FieldLogger, opts Options) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Game{
		log:     log,
		options: opts,
		deck:    deck.New(),
		state:   StateWaiting,
		results: make(map[string]int),
	}, nil
}

// InHand returns true while a hand is being played
func (g *Game) InHand() bool {
	return g.state != StateWaiting && g.state != StateFinished
}

// InBettingRound returns true if the current state accepts player actions
func (g *Game) InBettingRound() bool {
	switch g.state {
	case StatePreflop, StateFlop, StateTurn, StateRiver:
		return true
	}

	return false
}

// AddPlayer seats a player at the table.
// Fails if a hand is in progress or the seat is taken.
func (g *Game) AddPlayer(p *Player) error {
	if g.InHand() {
		return ErrGameInProgress
	}

	for _, seated := range g.players {
		if seated.id == p.id {
			return fmt.Errorf("player %s is already seated", p.id)
		}
	}

	g.players = append(g.players, p)
	return nil
}

// RemovePlayer removes the seat with the given id and returns true if found.
// If a hand is live the seat is folded first, which may end the hand.
func (g *Game) RemovePlayer(id string) bool {
	index := -1
	for i, p := range g.players {
		if p.id == id {
			index = i
			break
		}
	}

	if index < 0 {
		return false
	}

	p := g.players[index]
	if g.InHand() && (p.status == StatusActive || p.status == StatusAllIn) {
		wasTurn := g.InBettingRound() && g.turnIndex == index

		p.fold()
		g.contestedCount--
		if g.contestedCount == 1 {
			g.walkover()
		} else if wasTurn {
			if g.roundComplete() {
				g.nextStage()
			} else {
				g.rotateTurn()
			}
		}
	}

	g.players = append(g.players[:index], g.players[index+1:]...)
	if index < g.dealerIndex {
		g.dealerIndex--
	} else if g.dealerIndex >= len(g.players) {
		g.dealerIndex = 0
	}
	if index < g.turnIndex {
		g.turnIndex--
	} else if g.turnIndex >= len(g.players) {
		g.turnIndex = 0
	}

	return true
}

// Player returns the seated player with the given id, or nil
func (g *Game) Player(id string) *Player {
	for _, p := range g.players {
		if p.id == id {
			return p
		}
	}

	return nil
}

// Players returns the seats in table order
func (g *Game) Players() []*Player {
	players := make([]*Player, len(g.players))
	copy(players, g.players)

	return players
}

// Start begins a new hand: fresh shuffled deck, hole cards, and blinds.
// Fails with ErrNotEnoughPlayers unless at least two seats can be dealt in.
func (g *Game) Start() error {
	if g.InHand() {
		return ErrGameInProgress
	}

	eligible := 0
	for _, p := range g.players {
		if p.eligible() {
			eligible++
		}
	}

	if eligible < 2 {
		return ErrNotEnoughPlayers
	}

	if g.handsPlayed > 0 {
		g.advanceButton()
	}
	g.handsPlayed++

	g.deck.Shuffle(0)
	g.community = nil
	g.pot = 0
	g.winners = nil
	g.results = make(map[string]int)
	g.reachedShowdown = false
	g.actedCount = 0
	g.state = StatePreflop

	g.contestedCount = 0
	for _, p := range g.players {
		p.resetForHand()
		if p.status == StatusActive {
			g.contestedCount++
		}
	}

	g.dealHoleCards()
	g.postBlinds()

	g.log.WithFields(logrus.Fields{
		"hand":    g.handsPlayed,
		"players": g.contestedCount,
		"dealer":  g.players[g.dealerIndex].id,
	}).Info("hand started")

	// blinds can put every stack all in before anyone has a decision
	if g.countActive() == 0 {
		g.nextStage()
	}

	return nil
}

// advanceButton moves the dealer button to the next seat that can play
func (g *Game) advanceButton() {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		index := (g.dealerIndex + i) % n
		if g.players[index].eligible() {
			g.dealerIndex = index
			return
		}
	}
}

// dealHoleCards gives each dealt-in player two cards, one card per pass,
// starting with the first active seat after the dealer
func (g *Game) dealHoleCards() {
	n := len(g.players)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			p := g.players[(g.dealerIndex+i)%n]
			if p.status != StatusActive {
				continue
			}

			p.hole.AddCard(g.mustDraw())
		}
	}
}

// postBlinds posts the small and big blinds and sets first to act.
// Heads-up the dealer posts the small blind and acts first preflop.
func (g *Game) postBlinds() {
	var sbIndex int
	headsUp := g.contestedCount == 2

	if headsUp && g.players[g.dealerIndex].status == StatusActive {
		sbIndex = g.dealerIndex
	} else {
		sbIndex = g.nextActiveFrom(g.dealerIndex)
	}
	bbIndex := g.nextActiveFrom(sbIndex)

	sb := g.players[sbIndex]
	bb := g.players[bbIndex]

	sb.bet(min(sb.stack, g.options.MinBet/2))
	bb.bet(min(bb.stack, g.options.MinBet))

	// the bet to match is the full big blind even if the big blind is short
	g.currentMaxBet = g.options.MinBet
	g.actedCount = 0

	if headsUp {
		g.turnIndex = sbIndex
	} else {
		g.turnIndex = g.nextActiveFrom(bbIndex)
	}

	// a blind can put that seat all in; skip to a seat with a decision left
	if g.players[g.turnIndex].status != StatusActive {
		g.rotateTurn()
	}
}

// HandleAction applies a player's action to the current betting round.
// All preconditions are checked before any chips move; a returned error
// means no chips moved.
func (g *Game) HandleAction(playerID string, act action.Action, amount int) error {
	if !g.InBettingRound() {
		return ErrNoBettingRound
	}

	p := g.players[g.turnIndex]
	if p.id != playerID {
		return ErrNotYourTurn
	}

	switch act {
	case action.Fold:
		p.fold()
		g.contestedCount--
		p.lastAction = &LastAction{Action: act}
		g.logAction(p, act, 0)

		if g.contestedCount == 1 {
			g.walkover()
			return nil
		}

	case action.Check:
		if p.currentBet < g.currentMaxBet {
			return ErrInvalidCheck
		}

		g.actedCount++
		p.lastAction = &LastAction{Action: act}
		g.logAction(p, act, 0)

	case action.Call:
		owed := g.currentMaxBet - p.currentBet
		paid := p.bet(min(owed, p.stack))
		g.actedCount++
		p.lastAction = &LastAction{Action: act, Amount: paid}
		g.logAction(p, act, paid)

	case action.Raise:
		// amount is the new total bet level for the round, not a delta
		if amount <= g.currentMaxBet {
			return ErrInvalidRaise
		}

		if amount-p.currentBet > p.stack {
			return ErrInsufficientChips
		}

		p.bet(amount - p.currentBet)
		g.currentMaxBet = amount
		g.actedCount = 1
		p.lastAction = &LastAction{Action: act, Amount: amount}
		g.logAction(p, act, amount)

	case action.AllIn:
		paid := p.bet(p.stack)
		if p.currentBet > g.currentMaxBet {
			g.currentMaxBet = p.currentBet
			g.actedCount = 1
		} else {
			g.actedCount++
		}
		p.lastAction = &LastAction{Action: act, Amount: paid}
		g.logAction(p, act, paid)

	default:
		return fmt.Errorf("unknown action: %s", act)
	}

	if g.roundComplete() {
		g.nextStage()
	} else {
		g.rotateTurn()
	}

	return nil
}

// roundComplete returns true when every active player has matched the bet
// level and everyone has acted since the last raise. All-in players have no
// more decisions to make and never hold a round open.
func (g *Game) roundComplete() bool {
	active := 0
	for _, p := range g.players {
		if p.status != StatusActive {
			continue
		}

		if p.currentBet != g.currentMaxBet {
			return false
		}
		active++
	}

	return g.actedCount >= active
}

// rotateTurn advances the turn to the next active seat, wrapping.
// If a full circuit finds no active seat the turn stays parked; that state is
// preempted by the round-completion check, which runs before rotation.
func (g *Game) rotateTurn() {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		index := (g.turnIndex + i) % n
		if g.players[index].status == StatusActive {
			g.turnIndex = index
			return
		}
	}

	g.log.Warn("no active seat to rotate to")
}

// nextActiveFrom returns the next seat after index with an active player
func (g *Game) nextActiveFrom(index int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		next := (index + i) % n
		if g.players[next].status == StatusActive {
			return next
		}
	}

	return index
}

func (g *Game) countActive() int {
	count := 0
	for _, p := range g.players {
		if p.status == StatusActive {
			count++
		}
	}

	return count
}

// nextStage sweeps the round's bets into the pot and deals the next street.
// After the river it runs the showdown instead.
func (g *Game) nextStage() {
	for _, p := range g.players {
		g.pot += p.currentBet
		p.currentBet = 0
		p.lastAction = nil
	}
	g.currentMaxBet = 0
	g.actedCount = 0

	switch g.state {
	case StatePreflop:
		g.state = StateFlop
		g.dealCommunity(3)
	case StateFlop:
		g.state = StateTurn
		g.dealCommunity(1)
	case StateTurn:
		g.state = StateRiver
		g.dealCommunity(1)
	case StateRiver:
		g.showdown()
		return
	default:
		panic(fmt.Sprintf("cannot advance stage from state %s", g.state))
	}

	g.log.WithFields(logrus.Fields{
		"state":     g.state.String(),
		"community": g.community.String(),
		"pot":       g.pot,
	}).Debug("stage advanced")

	// with no seats left to act, run the remaining streets out
	if g.countActive() == 0 {
		g.nextStage()
		return
	}

	// action starts left of the dealer on every post-flop street
	g.turnIndex = g.dealerIndex
	g.rotateTurn()
}

// dealCommunity burns one card and deals n to the board
func (g *Game) dealCommunity(n int) {
	g.mustDraw() // burn

	for i := 0; i < n; i++ {
		g.community.AddCard(g.mustDraw())
	}
}

// mustDraw draws a card from the deck.
// A 52-card deck cannot run out during a single hand, so an empty deck is an
// internal-consistency bug, not a recoverable error.
func (g *Game) mustDraw() *deck.Card {
	card, err := g.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("deck ran out mid-hand: %v", err))
	}

	return card
}

// walkover ends the hand immediately when only one player has not folded.
// The survivor takes the collected pot plus every bet still in front of a
// player, with no hand evaluation.
func (g *Game) walkover() {
	var winner *Player
	for _, p := range g.players {
		if p.status == StatusActive || p.status == StatusAllIn {
			winner = p
			break
		}
	}

	if winner == nil {
		panic("walkover with no contestable player")
	}

	starting := g.snapshotStacks()

	total := g.pot
	for _, p := range g.players {
		total += p.currentBet
		p.currentBet = 0
	}
	g.pot = 0

	winner.stack += total
	g.winners = []*Player{winner}
	g.finishHand(starting)

	g.log.WithFields(logrus.Fields{
		"winner": winner.id,
		"amount": total,
	}).Info("hand won by walkover")
}

// showdown settles all pots at the end of the river betting round
func (g *Game) showdown() {
	g.state = StateShowdown
	g.reachedShowdown = true

	starting := g.snapshotStacks()
	g.settlePots()
	g.finishHand(starting)
}

// snapshotStacks captures each player's pre-hand chip total
func (g *Game) snapshotStacks() map[string]int {
	starting := make(map[string]int, len(g.players))
	for _, p := range g.players {
		starting[p.id] = p.stack + p.totalContributed
	}

	return starting
}

// finishHand records per-player net results and ends the hand
func (g *Game) finishHand(starting map[string]int) {
	g.results = make(map[string]int, len(g.players))
	for _, p := range g.players {
		g.results[p.id] = p.stack - starting[p.id]
	}

	g.state = StateFinished
}

func (g *Game) logAction(p *Player, act action.Action, amount int) {
	g.log.WithFields(logrus.Fields{
		"player": p.id,
		"state":  g.state.String(),
	}).Debug(act.LogMessage(amount))
}

// State returns the current stage of the hand
func (g *Game) State() State {
	return g.state
}

// Community returns the community cards dealt so far
func (g *Game) Community() deck.Hand {
	return g.community.Clone()
}

// Pot returns the chips collected from completed betting rounds
func (g *Game) Pot() int {
	return g.pot
}

// TotalPot returns the collected pot plus every bet still in front of a player
func (g *Game) TotalPot() int {
	total := g.pot
	for _, p := range g.players {
		total += p.currentBet
	}

	return total
}

// CurrentMaxBet returns the bet level every active player must match
func (g *Game) CurrentMaxBet() int {
	return g.currentMaxBet
}

// MinBet returns the table's big blind
func (g *Game) MinBet() int {
	return g.options.MinBet
}

// CurrentTurnID returns the id of the player whose turn it is,
// or "" outside a betting round
func (g *Game) CurrentTurnID() string {
	if !g.InBettingRound() {
		return ""
	}

	return g.players[g.turnIndex].id
}

// DealerID returns the id of the seat with the dealer button, or ""
func (g *Game) DealerID() string {
	if len(g.players) == 0 {
		return ""
	}

	return g.players[g.dealerIndex].id
}

// ReachedShowdown returns true if the last hand was decided by comparing
// hands rather than by everyone else folding
func (g *Game) ReachedShowdown() bool {
	return g.reachedShowdown
}

// Winners returns the players who won a share of the last settled hand
func (g *Game) Winners() []*Player {
	winners := make([]*Player, len(g.winners))
	copy(winners, g.winners)

	return winners
}

// Results returns each player's net chip change for the last settled hand
func (g *Game) Results() map[string]int {
	results := make(map[string]int, len(g.results))
	for id, amount := range g.results {
		results[id] = amount
	}

	return results
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
