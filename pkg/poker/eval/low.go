package eval

import (
	"sort"

	"cardroom-server/pkg/deck"
)

// rankFiveLow8 classifies five cards as an 8-or-better low.
// A hand qualifies only if all five ranks are distinct and <= 8 with the ace
// counting low. Returns nil for a non-qualifying hand.
func rankFiveLow8(cards []*deck.Card) *Ranking {
	ranks := make([]int, 5)
	seen := make(map[int]bool, 5)
	for i, card := range cards {
		rank := card.AceLowRank()
		if rank > 8 || seen[rank] {
			return nil
		}

		seen[rank] = true
		ranks[i] = rank
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	return &Ranking{
		Class:        LowHand,
		Tiebreaks:    ranks,
		lowTiebreaks: true,
	}
}

// rankFiveAceToFive classifies five cards as an ace-to-five low.
// Straights and flushes are ignored; pairs count against the player. The
// wheel (5-4-3-2-A) is the best possible hand.
func rankFiveAceToFive(cards []*deck.Card) *Ranking {
	ranks := make([]int, 5)
	for i, card := range cards {
		ranks[i] = card.AceLowRank()
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	counts := rankCounts(ranks)

	var class Class
	var tiebreaks []int

	if quad := rankWithCount(counts, 4); quad > 0 {
		class = FourOfAKind
		tiebreaks = append([]int{quad}, bestKickers(ranks, 1, quad)...)
	} else if trip := rankWithCount(counts, 3); trip > 0 {
		if pair := rankWithCount(counts, 2); pair > 0 {
			class = FullHouse
			tiebreaks = []int{trip, pair}
		} else {
			class = ThreeOfAKind
			tiebreaks = append([]int{trip}, bestKickers(ranks, 2, trip)...)
		}
	} else if pairs := ranksWithCount(counts, 2); len(pairs) == 2 {
		class = TwoPair
		tiebreaks = append([]int{pairs[0], pairs[1]}, bestKickers(ranks, 1, pairs[0], pairs[1])...)
	} else if len(pairs) == 1 {
		class = OnePair
		tiebreaks = append([]int{pairs[0]}, bestKickers(ranks, 3, pairs[0])...)
	} else {
		class = HighCard
		tiebreaks = ranks
	}

	return &Ranking{
		Class:        class,
		Tiebreaks:    tiebreaks,
		lowClass:     true,
		lowTiebreaks: true,
	}
}

// rankFiveDeuceToSeven classifies five cards as a 2-7 low.
// The ace is always high, and straights and flushes count against the player,
// so the best possible hand is 7-5-4-3-2 offsuit.
func rankFiveDeuceToSeven(cards []*deck.Card) *Ranking {
	r := classifyFive(cards, false)
	return &Ranking{
		Class:        r.Class,
		Tiebreaks:    r.Tiebreaks,
		lowClass:     true,
		lowTiebreaks: true,
	}
}
