package eval

import (
	"testing"

	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/variant"

	"github.com/stretchr/testify/assert"
)

func cards(s string) []*deck.Card {
	return deck.CardsFromString(s)
}

func TestEvaluate_holdem(t *testing.T) {
	a := assert.New(t)

	tests := []struct {
		name      string
		hole      string
		community string
		class     Class
		tiebreaks []int
	}{
		{"royal flush", "14s,13s", "12s,11s,10s,2c,3d", RoyalFlush, []int{14}},
		{"straight flush", "9s,8s", "7s,6s,5s,14c,14d", StraightFlush, []int{9}},
		{"suited wheel is lowest straight flush", "14h,2h", "3h,4h,5h,13c,12d", StraightFlush, []int{5}},
		{"four of a kind", "7s,7c", "7d,7h,3c,2d,9s", FourOfAKind, []int{7, 9}},
		{"full house", "10s,10c", "10d,4h,4c,2d,8s", FullHouse, []int{10, 4}},
		{"flush", "14s,9s", "6s,4s,2s,13c,13d", Flush, []int{14, 9, 6, 4, 2}},
		{"straight", "9c,8d", "7s,6h,5s,2c,13d", Straight, []int{9}},
		{"wheel straight", "14c,2d", "3s,4h,5s,9c,13d", Straight, []int{5}},
		{"trips", "5c,5d", "5s,13h,9s,2c,3d", ThreeOfAKind, []int{5, 13, 9}},
		{"two pair", "12c,12d", "8s,8h,4s,2c,3d", TwoPair, []int{12, 8, 4}},
		{"pair", "11c,11d", "9s,7h,4s,2c,3d", OnePair, []int{11, 9, 7, 4}},
		{"high card", "14c,12d", "9s,7h,4s,2c,3d", HighCard, []int{14, 12, 9, 7, 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Evaluate(variant.TexasHoldem, cards(tc.hole), cards(tc.community))
			a.NoError(err)
			a.Equal(tc.class, r.Class)
			a.Equal(tc.tiebreaks, r.Tiebreaks)
		})
	}
}

func TestEvaluate_wheelRanksBelowSixHigh(t *testing.T) {
	a := assert.New(t)

	wheel, err := Evaluate(variant.TexasHoldem, cards("14c,2d"), cards("3s,4h,5s,9c,13d"))
	a.NoError(err)

	sixHigh, err := Evaluate(variant.TexasHoldem, cards("6c,2d"), cards("3s,4h,5s,9c,13d"))
	a.NoError(err)

	a.True(sixHigh.Beats(wheel))
	a.False(wheel.Beats(sixHigh))
}

func TestEvaluate_notEnoughCards(t *testing.T) {
	a := assert.New(t)

	_, err := Evaluate(variant.TexasHoldem, cards("14c,2d"), cards("3s,4h"))
	a.Equal(ErrNotEnoughCards, err)
}

func TestEvaluate_omahaMustUseTwoHoleCards(t *testing.T) {
	a := assert.New(t)

	// four spades on board, one in the hole: no flush in Omaha because
	// exactly two hole cards must play
	r, err := Evaluate(variant.Omaha, cards("14s,9c,8d,2h"), cards("13s,11s,6s,4s,2c"))
	a.NoError(err)
	a.NotEqual(Flush, r.Class)

	// the same cards make an easy flush in hold'em
	r, err = Evaluate(variant.TexasHoldem, cards("14s,9c"), cards("13s,11s,6s,4s,2c"))
	a.NoError(err)
	a.Equal(Flush, r.Class)
}

func TestEvaluate_ties(t *testing.T) {
	a := assert.New(t)

	board := cards("10s,11s,12d,13c,14h")

	r1, err := Evaluate(variant.TexasHoldem, cards("2c,3d"), board)
	a.NoError(err)

	r2, err := Evaluate(variant.TexasHoldem, cards("4h,5s"), board)
	a.NoError(err)

	// both play the board
	a.True(r1.Ties(r2))
	a.Equal(0, r1.Compare(r2))
}

func TestEvaluateLow(t *testing.T) {
	a := assert.New(t)

	// player A holds A-2 and the board completes a wheel low
	low, err := EvaluateLow(variant.OmahaHiLo, cards("14h,2c,13d,13s"), cards("3d,4s,5c,12h,11d"))
	a.NoError(err)
	a.NotNil(low)
	a.Equal(LowHand, low.Class)
	a.Equal([]int{5, 4, 3, 2, 1}, low.Tiebreaks)

	// player B has no five distinct ranks <= 8
	noLow, err := EvaluateLow(variant.OmahaHiLo, cards("13h,12c,11d,9s"), cards("3d,4s,5c,12h,11d"))
	a.NoError(err)
	a.Nil(noLow)

	// lower low wins: 6-4-3-2-A beats 7-4-3-2-A
	better, err := EvaluateLow(variant.OmahaHiLo, cards("14h,6c,13d,13s"), cards("2d,3s,4c,12h,11d"))
	a.NoError(err)
	worse, err := EvaluateLow(variant.OmahaHiLo, cards("14h,7c,13d,13s"), cards("2d,3s,4c,12h,11d"))
	a.NoError(err)
	a.True(better.Beats(worse))

	_, err = EvaluateLow(variant.TexasHoldem, cards("14h,2c"), cards("3d,4s,5c,12h,11d"))
	a.Error(err)
}

func TestEvaluate_razz(t *testing.T) {
	a := assert.New(t)

	// the wheel is the best possible ace-to-five hand
	wheel, err := Evaluate(variant.Razz, cards("14s,2c,3d,4h,5s,13c,12d"), nil)
	a.NoError(err)
	a.Equal(HighCard, wheel.Class)
	a.Equal([]int{5, 4, 3, 2, 1}, wheel.Tiebreaks)

	sixLow, err := Evaluate(variant.Razz, cards("14s,2c,3d,4h,6s,13c,12d"), nil)
	a.NoError(err)
	a.True(wheel.Beats(sixLow))

	// a pair always loses to an unpaired hand
	paired, err := Evaluate(variant.Razz, cards("14s,14c,2d,3h,4s,5c,5d"), nil)
	a.NoError(err)

	// best five avoids the pair when it can: A-2-3-4-5 here
	a.Equal(HighCard, paired.Class)

	forcedPair, err := Evaluate(variant.Razz, cards("13s,13c,2d,3h,4s"), nil)
	a.NoError(err)
	a.Equal(OnePair, forcedPair.Class)
	a.True(sixLow.Beats(forcedPair))
}

func TestEvaluate_deuceToSeven(t *testing.T) {
	a := assert.New(t)

	// 7-5-4-3-2 offsuit is the nuts
	nuts, err := Evaluate(variant.DeuceToSevenTripleDraw, cards("7s,5c,4d,3h,2s"), nil)
	a.NoError(err)
	a.Equal(HighCard, nuts.Class)
	a.Equal([]int{7, 5, 4, 3, 2}, nuts.Tiebreaks)

	// the ace is always high
	aceHigh, err := Evaluate(variant.DeuceToSevenTripleDraw, cards("14s,5c,4d,3h,2s"), nil)
	a.NoError(err)
	a.Equal(HighCard, aceHigh.Class)
	a.Equal([]int{14, 5, 4, 3, 2}, aceHigh.Tiebreaks)
	a.True(nuts.Beats(aceHigh))

	// straights count against the player
	straight, err := Evaluate(variant.DeuceToSevenTripleDraw, cards("7s,6c,5d,4h,3s"), nil)
	a.NoError(err)
	a.Equal(Straight, straight.Class)
	a.True(aceHigh.Beats(straight))

	// flushes count against the player
	flush, err := Evaluate(variant.DeuceToSevenTripleDraw, cards("9s,7s,5s,4s,2s"), nil)
	a.NoError(err)
	a.Equal(Flush, flush.Class)
	a.True(straight.Beats(flush))
}

func TestEvaluate_badugi(t *testing.T) {
	a := assert.New(t)

	// four distinct ranks and suits
	four, err := Evaluate(variant.Badugi, cards("14s,2c,3d,4h"), nil)
	a.NoError(err)
	a.Equal(BadugiFour, four.Class)
	a.Equal([]int{4, 3, 2, 1}, four.Tiebreaks)

	// paired suit reduces to a three-card hand
	three, err := Evaluate(variant.Badugi, cards("14s,2c,3d,4d"), nil)
	a.NoError(err)
	a.Equal(BadugiThree, three.Class)
	a.Equal([]int{3, 2, 1}, three.Tiebreaks)

	// more cards beats fewer, regardless of ranks
	kingBadugi, err := Evaluate(variant.Badugi, cards("13s,12c,11d,10h"), nil)
	a.NoError(err)
	a.Equal(BadugiFour, kingBadugi.Class)
	a.True(kingBadugi.Beats(three))
	a.True(four.Beats(kingBadugi))

	// paired rank also reduces the hand
	pairedRank, err := Evaluate(variant.Badugi, cards("5s,5c,3d,4h"), nil)
	a.NoError(err)
	a.Equal(BadugiThree, pairedRank.Class)
	a.Equal([]int{5, 4, 3}, pairedRank.Tiebreaks)
}
