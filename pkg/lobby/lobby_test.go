package lobby

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/holdem/action"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testLobby(t *testing.T, names ...string) *Lobby {
	t.Helper()

	l, err := New(testLogger(), holdem.DefaultOptions())
	assert.NoError(t, err)

	for _, name := range names {
		assert.NoError(t, l.AddPlayer(name, name, 1000))
		assert.NoError(t, l.SetReady(name, true))
	}

	return l
}

func TestLobby_AddPlayer(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2")

	// seating the same id twice is a no-op
	a.NoError(l.AddPlayer("p1", "p1", 5000))
	a.Equal([]string{"p1", "p2"}, l.PlayerIDs())
	a.Equal(1000, l.Stacks()["p1"])

	a.NoError(l.StartGame())
	a.Equal(holdem.ErrGameInProgress, l.AddPlayer("p3", "p3", 1000))
}

func TestLobby_SetReady(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2")

	a.Equal(ErrUnknownPlayer, l.SetReady("nope", true))

	a.NoError(l.SetReady("p2", false))
	a.Equal(holdem.ErrNotEnoughPlayers, l.StartGame())

	a.NoError(l.SetReady("p2", true))
	a.NoError(l.StartGame())
}

func TestLobby_handEndResetsReadiness(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2")
	a.NoError(l.StartGame())

	// heads up: the dealer posts the small blind and folds
	a.NoError(l.HandleAction("p1", action.Fold, 0))

	view := l.GameView("p1")
	a.Equal(holdem.StateFinished, view.State)
	a.Equal([]string{"p2"}, view.Winners)
	a.Equal(-10, view.Results["p1"])
	a.Equal(10, view.Results["p2"])
	for _, pv := range view.Players {
		a.False(pv.IsReady)
	}

	a.Equal(holdem.ErrNotEnoughPlayers, l.StartGame())
	a.NoError(l.SetReady("p1", true))
	a.NoError(l.SetReady("p2", true))
	a.NoError(l.StartGame())
}

func TestLobby_GameView_masking(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2", "p3")
	a.NoError(l.StartGame())

	view := l.GameView("p1")
	a.Equal(holdem.StatePreflop, view.State)
	a.Equal(30, view.Pot) // blinds are still in front of the players
	a.NotNil(view.Me)
	a.Equal(2, len(view.Me.Hand))
	a.NotEmpty(view.CurrentHandType)

	for _, pv := range view.Players {
		if pv.ID == "p1" {
			a.Equal(2, len(pv.Hand))
			a.True(pv.IsSelf)
		} else {
			a.Empty(pv.Hand)
		}
	}

	spectator := l.GameView("ghost")
	a.Nil(spectator.Me)
	a.Empty(spectator.CurrentHandType)
	for _, pv := range spectator.Players {
		a.Empty(pv.Hand)
	}
}

func TestLobby_GameView_showdownRevealsHands(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2")
	a.NoError(l.StartGame())

	// check the hand all the way down
	a.NoError(l.HandleAction("p1", action.Call, 0))
	a.NoError(l.HandleAction("p2", action.Check, 0))
	for i := 0; i < 3; i++ {
		a.NoError(l.HandleAction("p2", action.Check, 0))
		a.NoError(l.HandleAction("p1", action.Check, 0))
	}

	view := l.GameView("p1")
	a.Equal(holdem.StateFinished, view.State)
	for _, pv := range view.Players {
		a.Equal(2, len(pv.Hand))
	}
}

func TestLobby_GameView_walkoverRevealsNothing(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2")
	a.NoError(l.StartGame())
	a.NoError(l.HandleAction("p1", action.Fold, 0))

	view := l.GameView("p1")
	a.Equal(holdem.StateFinished, view.State)
	for _, pv := range view.Players {
		if !pv.IsSelf {
			a.Empty(pv.Hand)
		}
	}
}

func TestLobby_RevealCards(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2")
	a.NoError(l.StartGame())

	a.Equal(ErrHandInProgress, l.RevealCards("p2"))
	a.NoError(l.HandleAction("p1", action.Fold, 0))

	a.Equal(ErrUnknownPlayer, l.RevealCards("ghost"))
	a.NoError(l.RevealCards("p2"))

	view := l.GameView("p1")
	for _, pv := range view.Players {
		if pv.ID == "p2" {
			a.Equal(2, len(pv.Hand))
		}
	}

	// the grant does not survive into the next hand
	a.NoError(l.SetReady("p1", true))
	a.NoError(l.SetReady("p2", true))
	a.NoError(l.StartGame())

	view = l.GameView("p1")
	for _, pv := range view.Players {
		if pv.ID == "p2" {
			a.Empty(pv.Hand)
		}
	}
}

func TestLobby_RemovePlayer(t *testing.T) {
	a := assert.New(t)
	l := testLobby(t, "p1", "p2", "p3")
	a.NoError(l.StartGame())

	// removing a live seat folds it; down to one contested ends the hand
	l.RemovePlayer("p1")
	l.RemovePlayer("p2")

	view := l.GameView("p3")
	a.Equal(holdem.StateFinished, view.State)
	a.Equal([]string{"p3"}, l.PlayerIDs())
	a.Equal(holdem.ErrNotEnoughPlayers, l.StartGame())
}
