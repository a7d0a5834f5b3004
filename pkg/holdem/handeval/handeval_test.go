package handeval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtable-server/pkg/deck"
)

func evaluate(s string) Result {
	return Evaluate(deck.CardsFromString(s))
}

func TestEvaluate_emptyInput(t *testing.T) {
	res := Evaluate([]*deck.Card{})
	assert.Equal(t, NoHand, res.Category)
	assert.Equal(t, 0, len(res.Cards))
}

func TestEvaluate_fewerThanFiveCards(t *testing.T) {
	a := assert.New(t)

	// two unpaired hole cards are how every hand starts
	res := evaluate("14s,13d")
	a.Equal(HighCard, res.Category)
	a.Equal("14s,13d", res.Cards.String())

	res = evaluate("8s,8d")
	a.Equal(OnePair, res.Category)
	a.Equal("8s,8d", res.Cards.String())

	res = evaluate("8s,8d,8c")
	a.Equal(ThreeOfAKind, res.Category)

	res = evaluate("8s,8d,3c,3h")
	a.Equal(TwoPair, res.Category)
	a.Equal("8s,8d,3c,3h", res.Cards.String())

	res = evaluate("14s,9d,5c,2h")
	a.Equal(HighCard, res.Category)
	a.Equal(4, len(res.Cards))
}

func TestEvaluate_royalFlush(t *testing.T) {
	res := evaluate("14h,13h,12h,11h,10h,2d,3c")
	assert.Equal(t, RoyalFlush, res.Category)
	assert.Equal(t, "14h,13h,12h,11h,10h", res.Cards.String())
}

func TestEvaluate_straightFlush(t *testing.T) {
	a := assert.New(t)

	// the Ad and Kc high cards must not promote the hand
	res := evaluate("9s,8s,7s,6s,5s,14d,13c")
	a.Equal(StraightFlush, res.Category)
	a.Equal(9, res.Cards[0].Rank)

	// steel wheel
	res = evaluate("14s,5s,4s,3s,2s,13d,12c")
	a.Equal(StraightFlush, res.Category)
	a.Equal(5, res.Cards[0].Rank)
	a.Equal(deck.Ace, res.Cards[4].Rank)
}

func TestEvaluate_straightAndFlushFromDifferentSubsets(t *testing.T) {
	a := assert.New(t)

	// flush in hearts, ten-high straight using the 9c and 7c:
	// the straight-flush test only sees the heart cards, so this is a flush
	res := evaluate("2h,4h,6h,8h,10h,9c,7c")
	a.Equal(Flush, res.Category)
	a.Equal("10h,8h,6h,4h,2h", res.Cards.String())
}

func TestEvaluate_fourOfAKind(t *testing.T) {
	res := evaluate("5h,5d,5s,5c,14h,13d,2s")
	assert.Equal(t, FourOfAKind, res.Category)
	assert.Equal(t, 5, res.Cards[0].Rank)
	assert.Equal(t, deck.Ace, res.Cards[4].Rank)
}

func TestEvaluate_fullHouse(t *testing.T) {
	a := assert.New(t)

	res := evaluate("14c,14d,14h,5c,5h,2d,9s")
	a.Equal(FullHouse, res.Category)
	a.Equal("14c,14d,14h,5c,5h", res.Cards.String())

	// a second triple outranks a lower pair
	res = evaluate("7c,7d,7h,6c,6d,6h,2s")
	a.Equal(FullHouse, res.Category)
	a.Equal(7, res.Cards[0].Rank)
	a.Equal(6, res.Cards[3].Rank)

	// the higher pair plays over a lower second triple
	res = evaluate("3c,3d,3h,4c,4d,4h,5c")
	a.Equal(FullHouse, res.Category)
	a.Equal(4, res.Cards[0].Rank)
	a.Equal(3, res.Cards[3].Rank)
}

func TestEvaluate_flush(t *testing.T) {
	res := evaluate("14s,9s,7s,5s,2s,13d,12c")
	assert.Equal(t, Flush, res.Category)
	assert.Equal(t, "14s,9s,7s,5s,2s", res.Cards.String())
}

func TestEvaluate_straight(t *testing.T) {
	a := assert.New(t)

	res := evaluate("9s,8d,7c,6h,5s,2d,13c")
	a.Equal(Straight, res.Category)
	a.Equal(9, res.Cards[0].Rank)

	// the wheel: Ace plays low and the straight is five high
	res = evaluate("14h,5d,4s,3c,2h,9d,8s")
	a.Equal(Straight, res.Category)
	a.Equal(5, res.Cards[0].Rank)
	a.Equal(deck.Ace, res.Cards[4].Rank)

	// seven unique ranks, highest straight wins
	res = evaluate("10s,9d,8c,7h,6s,5d,4c")
	a.Equal(Straight, res.Category)
	a.Equal(10, res.Cards[0].Rank)
}

func TestEvaluate_threeOfAKind(t *testing.T) {
	res := evaluate("8s,8d,8c,14h,11s,5d,2c")
	assert.Equal(t, ThreeOfAKind, res.Category)
	assert.Equal(t, "8s,8d,8c,14h,11s", res.Cards.String())
}

func TestEvaluate_twoPair(t *testing.T) {
	a := assert.New(t)

	res := evaluate("13s,13d,8c,8h,14s,5d,2c")
	a.Equal(TwoPair, res.Category)
	a.Equal("13s,13d,8c,8h,14s", res.Cards.String())

	// three pairs: the two highest play, best remaining card kicks
	res = evaluate("13s,13d,8c,8h,5s,5d,14c")
	a.Equal(TwoPair, res.Category)
	a.Equal(13, res.Cards[0].Rank)
	a.Equal(8, res.Cards[2].Rank)
	a.Equal(deck.Ace, res.Cards[4].Rank)
}

func TestEvaluate_onePair(t *testing.T) {
	res := evaluate("9s,9d,14c,11h,7s,5d,2c")
	assert.Equal(t, OnePair, res.Category)
	assert.Equal(t, "9s,9d,14c,11h,7s", res.Cards.String())
}

func TestEvaluate_highCard(t *testing.T) {
	res := evaluate("14s,12d,9c,7h,5s,3d,2c")
	assert.Equal(t, HighCard, res.Category)
	assert.Equal(t, "14s,12d,9c,7h,5s", res.Cards.String())
}

func TestCompare(t *testing.T) {
	a := assert.New(t)

	// categories
	a.True(Compare(evaluate("14s,14d,2c,7h,9s"), evaluate("14s,13d,2c,7h,9s")) > 0)

	// KK-88-A beats KK-88-Q on the kicker
	kk88a := evaluate("13s,13d,8c,8h,14s,5d,2c")
	kk88q := evaluate("13c,13h,8s,8d,12s,5h,2d")
	a.True(Compare(kk88a, kk88q) > 0)
	a.True(Compare(kk88q, kk88a) < 0)

	// identical ranks in every position is an exact tie
	tieA := evaluate("13s,13d,8c,8h,14s")
	tieB := evaluate("13c,13h,8s,8d,14d")
	a.Equal(tieA.Category, tieB.Category)
	a.Zero(Compare(tieA, tieB))

	// higher straight beats lower straight
	a.True(Compare(evaluate("9s,8d,7c,6h,5s"), evaluate("8s,7d,6c,5h,4s")) > 0)

	// wheel loses to a six-high straight
	a.True(Compare(evaluate("6s,5d,4c,3h,2s"), evaluate("14h,5s,4d,3c,2h")) > 0)
}

func TestCategory_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("Royal flush", RoyalFlush.String())
	a.Equal("High card", HighCard.String())
	a.Equal("No hand", NoHand.String())
	a.Panics(func() { _ = Category(99).String() })
}
