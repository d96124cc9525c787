// Package eval ranks poker hands for every supported variant. Evaluators are
// deterministic and side-effect-free: the same cards always produce the same
// ranking, and exact ties are detectable so pots can split.
package eval

import (
	"fmt"

	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/variant"
)

// Evaluate returns the best ranking the cards can make under the variant's
// primary (high, or low for lowball games) ordering.
func Evaluate(gameType variant.GameType, hole, community []*deck.Card) (*Ranking, error) {
	rules := variant.RulesFor(gameType)

	switch gameType {
	case variant.TexasHoldem, variant.SevenStud, variant.SevenStudHiLo:
		return bestFive(hole, community, 0, rankFiveHigh)
	case variant.Omaha, variant.OmahaHiLo:
		return bestFive(hole, community, rules.UseHole, rankFiveHigh)
	case variant.Razz:
		return bestFive(hole, community, 0, rankFiveAceToFive)
	case variant.DeuceToSevenTripleDraw:
		return bestFive(hole, community, 0, rankFiveDeuceToSeven)
	case variant.Badugi:
		if len(hole) == 0 {
			return nil, ErrNotEnoughCards
		}

		return rankBadugi(hole), nil
	default:
		panic(fmt.Sprintf("unknown game type: %d", gameType))
	}
}

// EvaluateLow returns the best qualifying 8-or-better low for a hi/lo split
// variant. A nil ranking with a nil error means the player has no low.
func EvaluateLow(gameType variant.GameType, hole, community []*deck.Card) (*Ranking, error) {
	rules := variant.RulesFor(gameType)
	if !rules.HiLo {
		return nil, fmt.Errorf("%s does not split high/low", gameType)
	}

	low, err := bestFive(hole, community, rules.UseHole, rankFiveLow8)
	if err != nil {
		return nil, err
	}

	// nil means no five-card subset qualified
	return low, nil
}
