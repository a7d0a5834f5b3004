package lobby

import (
	"holdemtable-server/pkg/deck"
	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/holdem/handeval"
)

// PlayerView is one seat as a specific viewer is allowed to see it
type PlayerView struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Stack            int                `json:"stack"`
	CurrentBet       int                `json:"currentBet"`
	TotalContributed int                `json:"totalContributed"`
	Status           holdem.Status      `json:"status"`
	Hand             deck.Hand          `json:"hand,omitempty"`
	IsSelf           bool               `json:"isSelf"`
	Position         int                `json:"position"`
	IsDealer         bool               `json:"isDealer"`
	IsCurrentTurn    bool               `json:"isCurrentTurn"`
	IsReady          bool               `json:"isReady"`
	LastAction       *holdem.LastAction `json:"lastAction,omitempty"`
}

// GameView is the table as a specific viewer is allowed to see it
type GameView struct {
	State           holdem.State   `json:"state"`
	CommunityCards  deck.Hand      `json:"communityCards"`
	Pot             int            `json:"pot"`
	CurrentMaxBet   int            `json:"currentMaxBet"`
	MinBet          int            `json:"minBet"`
	Players         []*PlayerView  `json:"players"`
	Me              *PlayerView    `json:"me,omitempty"`
	Winners         []string       `json:"winners,omitempty"`
	Results         map[string]int `json:"results,omitempty"`
	CurrentHandType string         `json:"currentHandType,omitempty"`
}

// GameView projects the table for one viewer. Hole cards are included only
// for the viewer's own seat, for every unfolded seat once the hand reaches
// showdown, and for seats that granted a reveal between hands. The pot
// includes the bets still in front of the players.
func (l *Lobby) GameView(forPlayerID string) *GameView {
	l.mu.Lock()
	defer l.mu.Unlock()

	game := l.game
	state := game.State()
	community := game.Community()
	currentTurn := game.CurrentTurnID()
	dealer := game.DealerID()

	players := game.Players()
	views := make([]*PlayerView, len(players))
	var me *PlayerView
	for i, p := range players {
		pv := &PlayerView{
			ID:               p.ID(),
			Name:             p.Name(),
			Stack:            p.Stack(),
			CurrentBet:       p.CurrentBet(),
			TotalContributed: p.TotalContributed(),
			Status:           p.Status(),
			IsSelf:           p.ID() == forPlayerID,
			Position:         i,
			IsDealer:         p.ID() == dealer,
			IsCurrentTurn:    p.ID() == currentTurn,
			IsReady:          l.ready[p.ID()],
			LastAction:       p.LastAction(),
		}

		if l.canSeeCards(p, forPlayerID, state) {
			pv.Hand = p.HoleCards()
		}

		views[i] = pv
		if pv.IsSelf {
			me = pv
		}
	}

	winners := game.Winners()
	winnerIDs := make([]string, len(winners))
	for i, w := range winners {
		winnerIDs[i] = w.ID()
	}

	view := &GameView{
		State:          state,
		CommunityCards: community,
		Pot:            game.TotalPot(),
		CurrentMaxBet:  game.CurrentMaxBet(),
		MinBet:         game.MinBet(),
		Players:        views,
		Me:             me,
		Winners:        winnerIDs,
	}

	if state == holdem.StateFinished {
		view.Results = game.Results()
	}

	if me != nil && len(me.Hand) > 0 {
		best := handeval.Evaluate(append(me.Hand.Clone(), community...))
		view.CurrentHandType = best.Category.String()
	}

	return view
}

// canSeeCards must be called with the lock held
func (l *Lobby) canSeeCards(p *holdem.Player, viewerID string, state holdem.State) bool {
	if p.ID() == viewerID {
		return true
	}

	if p.Status() == holdem.StatusFolded {
		return false
	}

	if state == holdem.StateShowdown {
		return true
	}

	// after a walkover nobody has to show; after a showdown everyone does
	if state == holdem.StateFinished && l.game.ReachedShowdown() {
		return true
	}

	return l.reveal[p.ID()]
}
