package room

import (
	"sync"

	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/account"
	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/holdem/action"
	"holdemtable-server/pkg/lobby"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// Dealer is responsible for running one table. Every mutation of the lobby
// happens on the dealer's run loop, so the table never needs a lock of its own.
type Dealer struct {
	pitBoss  *PitBoss
	log      logrus.FieldLogger
	lobby    *lobby.Lobby
	accounts *account.Manager
	clients  map[*Client]bool
	lock     sync.RWMutex

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, accounts *account.Manager, opts holdem.Options, table string) (*Dealer, error) {
	log := logrus.WithField("table", table)
	l, err := lobby.New(log, opts)
	if err != nil {
		return nil, err
	}

	return &Dealer{
		pitBoss:       pitBoss,
		log:           log,
		lobby:         l,
		accounts:      accounts,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}, nil
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case <-d.stateChanged:
			d.broadcastState()
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client and seats them at the table
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		stack, ok := d.accounts.Stack(client.playerID)
		if !ok {
			d.log.WithField("player", client.playerID).Warn("no account for player")
			return
		}

		if err := d.lobby.AddPlayer(client.playerID, client.name, stack); err != nil {
			// a hand is live; they can watch until it finishes
			client.Send(newErrorResponse("", err))
		}

		d.stateChanged <- stateClientEvent
	}
}

// RemoveClient removes a client and their seat
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.execInRunLoop <- func() {
			d.removePlayer(client)
			d.stateChanged <- stateClientEvent
		}
		return false
	}

	// the run loop is about to terminate and no other client can race us
	d.removePlayer(client)
	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) removePlayer(client *Client) {
	d.lobby.RemovePlayer(client.playerID)
	d.persistStacks()
	d.accounts.Logout(client.sessionID)
}

// NOTE: must only be called from the run loop
func (d *Dealer) persistStacks() {
	for id, stack := range d.lobby.Stacks() {
		d.accounts.UpdateStack(id, stack)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcastState() {
	for _, client := range d.Clients() {
		view := d.lobby.GameView(client.playerID)
		if !client.Send(&Response{Key: "state", Data: view}) {
			d.log.WithField("client", client.String()).Warn("client send buffer full")
		}
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "ready", "unready":
		d.execInRunLoop <- func() {
			if err := d.lobby.SetReady(c.playerID, msg.Action == "ready"); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateGameEvent
		}

	case "start":
		d.execInRunLoop <- func() {
			if err := d.lobby.StartGame(); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateGameEvent
		}

	case "reveal":
		d.execInRunLoop <- func() {
			if err := d.lobby.RevealCards(c.playerID); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateGameEvent
		}

	default:
		act, err := action.FromString(msg.Action)
		if err != nil {
			d.log.WithField("msg", msg).Warn("unknown message")
			return
		}

		d.execInRunLoop <- func() {
			if err := d.lobby.HandleAction(c.playerID, act, msg.Amount); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			if d.lobby.State() == holdem.StateFinished {
				d.persistStacks()
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateGameEvent
		}
	}
}
