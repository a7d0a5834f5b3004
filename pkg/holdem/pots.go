package holdem

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/holdem/handeval"
)

// Pot is one slice of the money staked during a hand, with the players who
// can win it. When nobody is all in there is a single pot holding everything.
type Pot struct {
	Amount   int
	Eligible []*Player
}

// buildPots partitions each player's total contribution into main and side
// pots. Walking the distinct contribution levels from the bottom, each level
// holds (level - previousLevel) chips from every player who reached it; the
// players who reached it without folding are eligible to win it.
//
// A slice whose contributors all folded cannot be won where it sits, so its
// chips roll into the nearest slice below it (or the next one above it when
// there is nothing below). Chips are never dropped.
func buildPots(players []*Player) []Pot {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if p.totalContributed > 0 && !seen[p.totalContributed] {
			seen[p.totalContributed] = true
			levels = append(levels, p.totalContributed)
		}
	}
	sort.Ints(levels)

	pots := make([]Pot, 0, len(levels))
	carry := 0
	previous := 0

	for _, level := range levels {
		perPlayer := level - previous
		previous = level

		amount := 0
		eligible := make([]*Player, 0, len(players))
		for _, p := range players {
			if p.totalContributed >= level {
				amount += perPlayer
				if p.status != StatusFolded {
					eligible = append(eligible, p)
				}
			}
		}

		if len(eligible) == 0 {
			if n := len(pots); n > 0 {
				pots[n-1].Amount += amount
			} else {
				carry += amount
			}
			continue
		}

		pots = append(pots, Pot{Amount: amount + carry, Eligible: eligible})
		carry = 0
	}

	return pots
}

// settlePots evaluates every pot against the board and pays the winners.
// Each pot is split evenly among its best hands; an indivisible remainder
// goes to the first winner in evaluation order.
func (g *Game) settlePots() {
	pots := buildPots(g.players)

	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	if total != g.pot {
		// conservation broken means the engine miscounted somewhere upstream
		panic(fmt.Sprintf("pot slices total %d but %d chips were collected", total, g.pot))
	}

	winnerSet := make(map[*Player]bool)
	for _, pot := range pots {
		winners := g.potWinners(pot.Eligible)

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)

		for _, w := range winners {
			w.stack += share
			winnerSet[w] = true
		}
		winners[0].stack += remainder

		g.log.WithFields(logrus.Fields{
			"amount":  pot.Amount,
			"winners": len(winners),
		}).Debug("pot awarded")
	}

	g.winners = g.winners[:0]
	for _, p := range g.players {
		if winnerSet[p] {
			g.winners = append(g.winners, p)
		}
	}

	g.pot = 0
}

// potWinners returns the players holding the best hand among the eligible,
// in seat order. A sole eligible player wins without evaluation.
func (g *Game) potWinners(eligible []*Player) []*Player {
	if len(eligible) == 1 {
		return eligible
	}

	var best handeval.Result
	var winners []*Player

	for _, p := range eligible {
		result := handeval.Evaluate(append(p.hole.Clone(), g.community...))

		cmp := 1
		if len(winners) > 0 {
			cmp = handeval.Compare(result, best)
		}

		if cmp > 0 {
			best = result
			winners = winners[:0]
			winners = append(winners, p)
		} else if cmp == 0 {
			winners = append(winners, p)
		}
	}

	return winners
}
