package room

import (
	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/account"
	"holdemtable-server/pkg/holdem"
)

// PitBoss is responsible for dispatching players to tables
type PitBoss struct {
	accounts   *account.Manager
	options    holdem.Options
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(accounts *account.Manager, opts holdem.Options) *PitBoss {
	return &PitBoss{
		accounts:   accounts,
		options:    opts,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.table]
			if !found {
				var err error
				dealer, err = NewDealer(p, p.accounts, p.options, client.table)
				if err != nil {
					logrus.WithError(err).Error("could not create dealer")
					client.Close <- "table unavailable"
					continue
				}

				dealer.StartShift()
				p.dealers[client.table] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.table]
			if !found {
				logrus.WithField("table", client.table).WithField("type", "exception").Error("table not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.table)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
