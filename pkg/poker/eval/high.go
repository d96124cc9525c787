package eval

import (
	"errors"
	"sort"

	"cardroom-server/pkg/deck"
)

// ErrNotEnoughCards is an error when fewer than five cards are available
var ErrNotEnoughCards = errors.New("not enough cards to evaluate")

// rankFiveHigh classifies exactly five cards as a standard high hand
func rankFiveHigh(cards []*deck.Card) *Ranking {
	return classifyFive(cards, true)
}

// classifyFive classifies exactly five cards. wheel controls whether
// A-2-3-4-5 counts as a straight (it does not in 2-7 lowball).
func classifyFive(cards []*deck.Card, wheel bool) *Ranking {
	ranks := make([]int, 5)
	flush := true
	for i, card := range cards {
		ranks[i] = card.Rank
		if card.Suit != cards[0].Suit {
			flush = false
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	straightHigh := straightHighCard(ranks, wheel)

	if flush && straightHigh > 0 {
		if straightHigh == deck.Ace {
			return &Ranking{Class: RoyalFlush, Tiebreaks: []int{deck.Ace}}
		}

		return &Ranking{Class: StraightFlush, Tiebreaks: []int{straightHigh}}
	}

	counts := rankCounts(ranks)

	if quad := rankWithCount(counts, 4); quad > 0 {
		kicker := bestKickers(ranks, 1, quad)
		return &Ranking{Class: FourOfAKind, Tiebreaks: []int{quad, kicker[0]}}
	}

	if trip := rankWithCount(counts, 3); trip > 0 {
		if pair := rankWithCount(counts, 2); pair > 0 {
			return &Ranking{Class: FullHouse, Tiebreaks: []int{trip, pair}}
		}

		kickers := bestKickers(ranks, 2, trip)
		return &Ranking{Class: ThreeOfAKind, Tiebreaks: append([]int{trip}, kickers...)}
	}

	if flush {
		return &Ranking{Class: Flush, Tiebreaks: ranks}
	}

	if straightHigh > 0 {
		return &Ranking{Class: Straight, Tiebreaks: []int{straightHigh}}
	}

	pairs := ranksWithCount(counts, 2)
	switch len(pairs) {
	case 2:
		kicker := bestKickers(ranks, 1, pairs[0], pairs[1])
		return &Ranking{Class: TwoPair, Tiebreaks: []int{pairs[0], pairs[1], kicker[0]}}
	case 1:
		kickers := bestKickers(ranks, 3, pairs[0])
		return &Ranking{Class: OnePair, Tiebreaks: append([]int{pairs[0]}, kickers...)}
	}

	return &Ranking{Class: HighCard, Tiebreaks: ranks}
}

// straightHighCard returns the high card of a five-card straight, or 0.
// ranks must be sorted descending. The wheel (A-2-3-4-5) returns 5, making it
// the lowest straight.
func straightHighCard(ranks []int, wheel bool) int {
	for i := 1; i < 5; i++ {
		if ranks[i] != ranks[i-1]-1 {
			// the wheel sorts as A,5,4,3,2
			if wheel && i == 1 && ranks[0] == deck.Ace && ranks[1] == 5 {
				continue
			}

			return 0
		}
	}

	if ranks[0] == deck.Ace && ranks[1] == 5 {
		return 5
	}

	return ranks[0]
}

func rankCounts(ranks []int) map[int]int {
	counts := make(map[int]int)
	for _, rank := range ranks {
		counts[rank]++
	}

	return counts
}

// rankWithCount returns the highest rank appearing exactly count times, or 0
func rankWithCount(counts map[int]int, count int) int {
	best := 0
	for rank, c := range counts {
		if c == count && rank > best {
			best = rank
		}
	}

	return best
}

// ranksWithCount returns every rank appearing exactly count times, descending
func ranksWithCount(counts map[int]int, count int) []int {
	ranks := make([]int, 0, 2)
	for rank, c := range counts {
		if c == count {
			ranks = append(ranks, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// bestKickers returns the want highest ranks not in exclude.
// ranks must be sorted descending.
func bestKickers(ranks []int, want int, exclude ...int) []int {
	kickers := make([]int, 0, want)

Outer:
	for _, rank := range ranks {
		for _, ex := range exclude {
			if rank == ex {
				continue Outer
			}
		}

		kickers = append(kickers, rank)
		if len(kickers) == want {
			break
		}
	}

	return kickers
}

// eachCombination calls fn with every k-card subset of cards.
// The slice passed to fn is reused between calls and must not be retained.
func eachCombination(cards []*deck.Card, k int, fn func([]*deck.Card)) {
	subset := make([]*deck.Card, k)

	var recurse func(start, chosen int)
	recurse = func(start, chosen int) {
		if chosen == k {
			fn(subset)
			return
		}

		for i := start; i <= len(cards)-(k-chosen); i++ {
			subset[chosen] = cards[i]
			recurse(i+1, chosen+1)
		}
	}

	recurse(0, 0)
}

// bestFive returns the maximum ranking over every legal five-card subset.
// When useHole > 0, exactly useHole cards must come from hole and
// 5-useHole from community; otherwise any five of the union may be used.
func bestFive(hole, community []*deck.Card, useHole int, rank func([]*deck.Card) *Ranking) (*Ranking, error) {
	var best *Ranking

	consider := func(cards []*deck.Card) {
		r := rank(cards)
		if r == nil {
			// the subset did not qualify under the variant's rules
			return
		}

		if best == nil || r.Beats(best) {
			best = r
		}
	}

	if useHole == 0 {
		all := make([]*deck.Card, 0, len(hole)+len(community))
		all = append(all, hole...)
		all = append(all, community...)

		if len(all) < 5 {
			return nil, ErrNotEnoughCards
		}

		eachCombination(all, 5, consider)
		return best, nil
	}

	useCommunity := 5 - useHole
	if len(hole) < useHole || len(community) < useCommunity {
		return nil, ErrNotEnoughCards
	}

	eachCombination(hole, useHole, func(holePart []*deck.Card) {
		fromHole := make([]*deck.Card, useHole)
		copy(fromHole, holePart)

		eachCombination(community, useCommunity, func(communityPart []*deck.Card) {
			cards := make([]*deck.Card, 0, 5)
			cards = append(cards, fromHole...)
			cards = append(cards, communityPart...)
			consider(cards)
		})
	})

	return best, nil
}
