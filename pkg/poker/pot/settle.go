package pot

import (
	"errors"

	"cardroom-server/pkg/poker/eval"
)

// ErrNoContenders is returned when a pot has no eligible contender with a
// ranked hand
var ErrNoContenders = errors.New("pot: no eligible contenders")

// Contender is a player at showdown. Low is nil outside of hi/lo games, and
// nil in hi/lo games when the player does not qualify for the low half.
// Contenders must be supplied in payout-priority order: closest clockwise
// from the dealer first. Remainder chips from uneven splits go to the
// earliest winner in that order.
type Contender struct {
	PlayerID int64
	High     *eval.Ranking
	Low      *eval.Ranking
}

// PotResult records how one pot tier was settled
type PotResult struct {
	Amount      int
	HighWinners []int64
	LowWinners  []int64
	Payouts     map[int64]int
}

// Settlement is the outcome of settling all pots
type Settlement struct {
	Pots    []*PotResult
	Payouts map[int64]int
}

// PayoutFor returns the total amount won by the given player
func (s *Settlement) PayoutFor(playerID int64) int {
	return s.Payouts[playerID]
}

// Settle determines the winners of each pot and distributes the chips.
// Every chip of every pot is paid out: each pot's payouts sum exactly to its
// amount. In a hi/lo pot the low half is only carved out when an eligible
// contender qualifies for low; otherwise the full pot goes to the high
// winners. When a half splits unevenly, the odd chip stays with the high
// half, and within a side any remainder goes to the first winner in
// contender order.
func Settle(pots Pots, contenders []*Contender) (*Settlement, error) {
	settlement := &Settlement{
		Pots:    make([]*PotResult, 0, len(pots)),
		Payouts: make(map[int64]int),
	}

	for _, pot := range pots {
		result, err := settlePot(pot, contenders)
		if err != nil {
			return nil, err
		}

		settlement.Pots = append(settlement.Pots, result)
		for playerID, amount := range result.Payouts {
			settlement.Payouts[playerID] += amount
		}
	}

	return settlement, nil
}

func settlePot(pot *Pot, contenders []*Contender) (*PotResult, error) {
	eligible := make([]*Contender, 0, len(contenders))
	for _, contender := range contenders {
		if pot.isEligible(contender.PlayerID) {
			eligible = append(eligible, contender)
		}
	}

	if len(eligible) == 0 {
		return nil, ErrNoContenders
	}

	highWinners := bestOf(eligible, func(c *Contender) *eval.Ranking { return c.High })
	lowWinners := bestOf(eligible, func(c *Contender) *eval.Ranking { return c.Low })

	result := &PotResult{
		Amount:      pot.Amount,
		HighWinners: playerIDs(highWinners),
		LowWinners:  playerIDs(lowWinners),
		Payouts:     make(map[int64]int),
	}

	highAmount := pot.Amount
	if len(lowWinners) > 0 {
		lowAmount := pot.Amount / 2
		highAmount = pot.Amount - lowAmount
		distribute(result.Payouts, lowAmount, lowWinners)
	}

	distribute(result.Payouts, highAmount, highWinners)

	return result, nil
}

// bestOf returns the contenders whose ranking ties for best, in contender
// order. Contenders with a nil ranking are out of the running.
func bestOf(contenders []*Contender, ranking func(*Contender) *eval.Ranking) []*Contender {
	var winners []*Contender
	var best *eval.Ranking
	for _, contender := range contenders {
		r := ranking(contender)
		if r == nil {
			continue
		}

		switch {
		case best == nil || r.Beats(best):
			best = r
			winners = append(winners[:0], contender)
		case r.Ties(best):
			winners = append(winners, contender)
		}
	}

	return winners
}

func distribute(payouts map[int64]int, amount int, winners []*Contender) {
	if len(winners) == 0 || amount == 0 {
		return
	}

	share := amount / len(winners)
	remainder := amount % len(winners)
	for i, winner := range winners {
		payout := share
		if i == 0 {
			payout += remainder
		}

		payouts[winner.PlayerID] += payout
	}
}

func playerIDs(contenders []*Contender) []int64 {
	if len(contenders) == 0 {
		return nil
	}

	ids := make([]int64, len(contenders))
	for i, contender := range contenders {
		ids[i] = contender.PlayerID
	}

	return ids
}
