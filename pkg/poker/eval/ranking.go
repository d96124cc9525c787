package eval

import "fmt"

// Class is a rank class, i.e., a full house
type Class int

// Constants for rank classes.
// Badugi rankings reuse this type with BadugiOne through BadugiFour; the two
// families are never compared against each other.
const (
	HighCard Class = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// badugi rank classes: more unsuited, unpaired cards beats fewer
const (
	BadugiOne Class = iota + 1
	BadugiTwo
	BadugiThree
	BadugiFour
)

// LowHand is the rank class shared by every qualifying 8-or-better low
const LowHand Class = 0

// String returns the string representation of a rank class
func (c Class) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		panic(fmt.Sprintf("unknown class: %d", c))
	}
}

// Ranking is a totally ordered evaluation of a hand: a rank class plus an
// ordered tiebreak vector. Two rankings compare by class first, then
// lexicographically by tiebreaks.
type Ranking struct {
	Class     Class `json:"class"`
	Tiebreaks []int `json:"tiebreaks"`

	// lowClass is true when a lower class wins (2-7 lowball)
	lowClass bool
	// lowTiebreaks is true when a lower tiebreak vector wins (all low games)
	lowTiebreaks bool
}

// Compare returns 1 if r beats o, -1 if o beats r, and 0 on a genuine tie.
// Both rankings must come from the same evaluator family.
func (r *Ranking) Compare(o *Ranking) int {
	if r.Class != o.Class {
		if (r.Class > o.Class) != r.lowClass {
			return 1
		}

		return -1
	}

	for i, tb := range r.Tiebreaks {
		if i >= len(o.Tiebreaks) {
			break
		}

		if tb != o.Tiebreaks[i] {
			if (tb > o.Tiebreaks[i]) != r.lowTiebreaks {
				return 1
			}

			return -1
		}
	}

	return 0
}

// Beats returns true if r strictly beats o
func (r *Ranking) Beats(o *Ranking) bool {
	return r.Compare(o) > 0
}

// Ties returns true if the two rankings are exactly equal
func (r *Ranking) Ties(o *Ranking) bool {
	return r.Compare(o) == 0
}
