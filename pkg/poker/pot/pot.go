// Package pot builds side pots from contribution history and settles them:
// single or split winners, high/low halves, and multi-run-out fractions.
package pot

import (
	"sort"

	"cardroom-server/pkg/poker/betting"
)

// Pot is one tier of the pot. Eligible holds the contenders who can win it:
// the non-folded players whose hand contribution reached the tier's level.
type Pot struct {
	Amount   int
	Eligible []*betting.Seat
}

// EligibleIDs returns the player ids eligible to win this pot
func (p *Pot) EligibleIDs() []int64 {
	ids := make([]int64, len(p.Eligible))
	for i, seat := range p.Eligible {
		ids[i] = seat.PlayerID
	}

	return ids
}

func (p *Pot) isEligible(playerID int64) bool {
	for _, seat := range p.Eligible {
		if seat.PlayerID == playerID {
			return true
		}
	}

	return false
}

// Pots is the ordered list of pot tiers. The main pot is first.
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}

// Fraction returns the i-th of n equal divisions of every pot. Any remainder
// from the division lands in the first fraction, so the fractions always sum
// back to the original amounts.
func (p Pots) Fraction(i, n int) Pots {
	pots := make(Pots, len(p))
	for j, pot := range p {
		amount := pot.Amount / n
		if i == 0 {
			amount += pot.Amount % n
		}

		pots[j] = &Pot{
			Amount:   amount,
			Eligible: pot.Eligible,
		}
	}

	return pots
}

// Build derives the pot tiers from the seats' contribution history.
// Side pots are recomputed from scratch, never mutated incrementally: sort
// the distinct contribution levels ascending; each tier collects, from every
// player, the part of their contribution between the previous level and this
// one. Adjacent tiers with identical eligibility are merged.
func Build(seats []*betting.Seat) Pots {
	levels := make([]int, 0, len(seats))
	seen := make(map[int]bool)
	for _, seat := range seats {
		if seat.TotalContribution > 0 && !seen[seat.TotalContribution] {
			seen[seat.TotalContribution] = true
			levels = append(levels, seat.TotalContribution)
		}
	}

	sort.Ints(levels)

	pots := make(Pots, 0, len(levels))
	prev := 0
	for _, level := range levels {
		amount := 0
		eligible := make([]*betting.Seat, 0, len(seats))
		for _, seat := range seats {
			contribution := seat.TotalContribution
			if contribution > level {
				contribution = level
			}

			if slice := contribution - prev; slice > 0 {
				amount += slice
			}

			if !seat.Folded && seat.TotalContribution >= level {
				eligible = append(eligible, seat)
			}
		}

		// a folded player's partial contribution creates a tier with the
		// same eligibility as the next one; fold it in
		if n := len(pots); n > 0 && sameEligibility(pots[n-1].Eligible, eligible) {
			pots[n-1].Amount += amount
		} else {
			pots = append(pots, &Pot{
				Amount:   amount,
				Eligible: eligible,
			})
		}

		prev = level
	}

	return pots
}

func sameEligibility(a, b []*betting.Seat) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
