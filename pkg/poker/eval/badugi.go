package eval

import (
	"sort"

	"cardroom-server/pkg/deck"
)

// rankBadugi classifies up to four cards as a badugi hand: the largest subset
// of cards with pairwise-distinct rank and suit. More cards beats fewer, and
// between equal sizes the lower descending rank vector wins (ace low).
func rankBadugi(cards []*deck.Card) *Ranking {
	var best *Ranking

	for size := len(cards); size >= 1; size-- {
		eachCombination(cards, size, func(subset []*deck.Card) {
			if !distinctRanksAndSuits(subset) {
				return
			}

			ranks := make([]int, len(subset))
			for i, card := range subset {
				ranks[i] = card.AceLowRank()
			}
			sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

			r := &Ranking{
				Class:        Class(len(subset)),
				Tiebreaks:    ranks,
				lowTiebreaks: true,
			}

			if best == nil || r.Beats(best) {
				best = r
			}
		})

		// every subset of this size beats every smaller subset
		if best != nil {
			break
		}
	}

	return best
}

func distinctRanksAndSuits(cards []*deck.Card) bool {
	ranks := make(map[int]bool, len(cards))
	suits := make(map[deck.Suit]bool, len(cards))

	for _, card := range cards {
		rank := card.AceLowRank()
		if ranks[rank] || suits[card.Suit] {
			return false
		}

		ranks[rank] = true
		suits[card.Suit] = true
	}

	return true
}
