package handeval

import (
	"sort"

	"holdemtable-server/pkg/deck"
)

// Result is the best five-card hand found within a set of cards
type Result struct {
	Category Category  `json:"category"`
	Cards    deck.Hand `json:"cards"`
}

// Evaluate returns the best five-card hand that can be made from the cards.
// It accepts up to seven cards; fewer than five evaluates the partial hand,
// which is how a player's current hand type is shown before the flop. An
// empty input returns a NoHand result.
func Evaluate(cards []*deck.Card) Result {
	if len(cards) == 0 {
		return Result{Category: NoHand, Cards: deck.Hand{}}
	}

	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	flush := flushCards(sorted)
	straight := straightCards(sorted)

	if flush != nil {
		// a straight and a flush made from different subsets is not a straight
		// flush, so only the flush-suit cards qualify here
		if sf := straightCards(flush); sf != nil {
			if sf[0].Rank == deck.Ace && sf[1].Rank == deck.King {
				return Result{Category: RoyalFlush, Cards: sf}
			}

			return Result{Category: StraightFlush, Cards: sf}
		}
	}

	groups := groupByRank(sorted)

	if res, ok := fourOfAKind(sorted, groups); ok {
		return res
	}

	if res, ok := fullHouse(groups); ok {
		return res
	}

	if flush != nil {
		return Result{Category: Flush, Cards: flush[0:5]}
	}

	if straight != nil {
		return Result{Category: Straight, Cards: straight}
	}

	if res, ok := threeOfAKind(sorted, groups); ok {
		return res
	}

	if res, ok := twoPair(sorted, groups); ok {
		return res
	}

	if res, ok := onePair(sorted, groups); ok {
		return res
	}

	if len(sorted) > 5 {
		sorted = sorted[0:5]
	}

	return Result{Category: HighCard, Cards: sorted}
}

// Compare returns > 0 if a beats b, < 0 if b beats a, and 0 on an exact tie.
// Categories are compared first, then the five result cards by rank, highest
// position first.
func Compare(a, b Result) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}

	for i := range a.Cards {
		if i >= len(b.Cards) {
			return 1
		}

		if a.Cards[i].Rank != b.Cards[i].Rank {
			return a.Cards[i].Rank - b.Cards[i].Rank
		}
	}

	if len(b.Cards) > len(a.Cards) {
		return -1
	}

	return 0
}

// flushCards returns all cards of a suit with five or more cards, rank
// descending, or nil. With at most seven cards only one suit can qualify.
func flushCards(sorted deck.Hand) deck.Hand {
	bySuit := make(map[deck.Suit]deck.Hand)
	for _, card := range sorted {
		bySuit[card.Suit] = append(bySuit[card.Suit], card)
	}

	for _, cards := range bySuit {
		if len(cards) >= 5 {
			return cards
		}
	}

	return nil
}

// straightCards returns the five cards of the highest straight, or nil.
// The wheel (A-5-4-3-2) is returned as [5,4,3,2,A].
func straightCards(sorted deck.Hand) deck.Hand {
	unique := make(deck.Hand, 0, len(sorted))
	for i, card := range sorted {
		if i == 0 || card.Rank != sorted[i-1].Rank {
			unique = append(unique, card)
		}
	}

	for i := 0; i+5 <= len(unique); i++ {
		if unique[i].Rank-unique[i+4].Rank == 4 {
			return unique[i : i+5]
		}
	}

	if len(unique) > 0 && unique[0].Rank == deck.Ace {
		low := make(deck.Hand, 0, 5)
		for _, want := range []int{5, 4, 3, 2} {
			for _, card := range unique {
				if card.Rank == want {
					low = append(low, card)
					break
				}
			}
		}

		if len(low) == 4 {
			return append(low, unique[0])
		}
	}

	return nil
}

// rankGroup holds every card of a single rank
type rankGroup struct {
	rank  int
	cards deck.Hand
}

// groupByRank buckets the cards by rank, ordered by descending rank.
// The descending order is what makes "first group with n cards" mean
// "highest-ranked group with n cards" in the detectors below.
func groupByRank(sorted deck.Hand) []rankGroup {
	var buckets [deck.Ace + 1]deck.Hand
	for _, card := range sorted {
		buckets[card.Rank] = append(buckets[card.Rank], card)
	}

	groups := make([]rankGroup, 0, len(sorted))
	for rank := deck.Ace; rank >= 2; rank-- {
		if len(buckets[rank]) > 0 {
			groups = append(groups, rankGroup{rank: rank, cards: buckets[rank]})
		}
	}

	return groups
}

// kickers returns up to n of the highest cards whose rank is not excluded
func kickers(sorted deck.Hand, n int, exclude ...int) deck.Hand {
	cards := make(deck.Hand, 0, n)

outer:
	for _, card := range sorted {
		for _, rank := range exclude {
			if card.Rank == rank {
				continue outer
			}
		}

		cards = append(cards, card)
		if len(cards) == n {
			break
		}
	}

	return cards
}

func fourOfAKind(sorted deck.Hand, groups []rankGroup) (Result, bool) {
	for _, g := range groups {
		if len(g.cards) >= 4 {
			cards := g.cards[0:4].Clone()
			cards = append(cards, kickers(sorted, 1, g.rank)...)
			return Result{Category: FourOfAKind, Cards: cards}, true
		}
	}

	return Result{}, false
}

func fullHouse(groups []rankGroup) (Result, bool) {
	tripleRank, pairRank := 0, 0
	for _, g := range groups {
		if len(g.cards) >= 3 {
			if tripleRank == 0 {
				tripleRank = g.rank
			} else if pairRank == 0 {
				// a second triple plays as the pair
				pairRank = g.rank
			}
		} else if len(g.cards) >= 2 && pairRank == 0 {
			pairRank = g.rank
		}
	}

	if tripleRank == 0 || pairRank == 0 {
		return Result{}, false
	}

	cards := make(deck.Hand, 0, 5)
	for _, g := range groups {
		if g.rank == tripleRank {
			cards = append(cards, g.cards[0:3]...)
		}
	}
	for _, g := range groups {
		if g.rank == pairRank {
			cards = append(cards, g.cards[0:2]...)
		}
	}

	return Result{Category: FullHouse, Cards: cards}, true
}

func threeOfAKind(sorted deck.Hand, groups []rankGroup) (Result, bool) {
	for _, g := range groups {
		if len(g.cards) >= 3 {
			cards := g.cards[0:3].Clone()
			cards = append(cards, kickers(sorted, 2, g.rank)...)
			return Result{Category: ThreeOfAKind, Cards: cards}, true
		}
	}

	return Result{}, false
}

func twoPair(sorted deck.Hand, groups []rankGroup) (Result, bool) {
	pairs := make([]rankGroup, 0, 2)
	for _, g := range groups {
		if len(g.cards) >= 2 {
			pairs = append(pairs, g)
			if len(pairs) == 2 {
				break
			}
		}
	}

	if len(pairs) < 2 {
		return Result{}, false
	}

	cards := pairs[0].cards[0:2].Clone()
	cards = append(cards, pairs[1].cards[0:2]...)
	cards = append(cards, kickers(sorted, 1, pairs[0].rank, pairs[1].rank)...)

	return Result{Category: TwoPair, Cards: cards}, true
}

func onePair(sorted deck.Hand, groups []rankGroup) (Result, bool) {
	for _, g := range groups {
		if len(g.cards) >= 2 {
			cards := g.cards[0:2].Clone()
			cards = append(cards, kickers(sorted, 3, g.rank)...)
			return Result{Category: OnePair, Cards: cards}, true
		}
	}

	return Result{}, false
}
