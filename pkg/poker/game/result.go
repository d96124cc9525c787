package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/eval"
	"cardroom-server/pkg/poker/pot"
)

// Result is the settled outcome of a hand, in the shape the persistence
// layer records: who won what, per pot, plus the final board(s).
type Result struct {
	Boards  []deck.Hand      `json:"boards,omitempty"`
	Pots    []*pot.PotResult `json:"pots"`
	Payouts map[int64]int    `json:"payouts"`
	// Uncontested is the winner's player id when everyone else folded
	Uncontested int64 `json:"uncontested,omitempty"`
	Voided      bool  `json:"voided,omitempty"`
}

// settleUncontested awards the whole pot to the last contender without
// revealing any cards
func (h *Hand) settleUncontested() error {
	winner := h.round.Contenders()[0]
	total := h.round.Pot()
	winner.Stack += total

	h.result = &Result{
		Pots: []*pot.PotResult{{
			Amount:      total,
			HighWinners: []int64{winner.PlayerID},
			Payouts:     map[int64]int{winner.PlayerID: total},
		}},
		Payouts:     map[int64]int{winner.PlayerID: total},
		Uncontested: winner.PlayerID,
	}

	h.state = StateComplete
	return nil
}

// showdown evaluates every contender against the single board and settles
func (h *Hand) showdown() error {
	h.showdownSeen = true

	pots := pot.Build(h.round.Seats())
	contenders, err := h.contenders(h.community)
	if err != nil {
		return h.void(err)
	}

	settlement, err := pot.Settle(pots, contenders)
	if err != nil {
		return h.void(err)
	}

	boards := []deck.Hand(nil)
	if len(h.community) > 0 {
		boards = []deck.Hand{h.community}
	}

	return h.finish(boards, settlement.Pots, settlement.Payouts)
}

// settleMultiBoard settles each run-out board against its fraction of the
// pot and merges the payouts
func (h *Hand) settleMultiBoard() error {
	h.showdownSeen = true

	pots := pot.Build(h.round.Seats())
	payouts := make(map[int64]int)
	results := make([]*pot.PotResult, 0, len(pots)*len(h.boards))

	for i, board := range h.boards {
		contenders, err := h.contenders(board)
		if err != nil {
			return h.void(err)
		}

		settlement, err := pot.Settle(pots.Fraction(i, len(h.boards)), contenders)
		if err != nil {
			return h.void(err)
		}

		results = append(results, settlement.Pots...)
		for playerID, amount := range settlement.Payouts {
			payouts[playerID] += amount
		}
	}

	return h.finish(h.boards, results, payouts)
}

// contenders returns the non-folded seats as settlement contenders in payout
// priority order: closest clockwise from the dealer first. Remainder chips
// from uneven splits land on the earliest of them.
func (h *Hand) contenders(board deck.Hand) ([]*pot.Contender, error) {
	seats := h.round.Seats()
	contenders := make([]*pot.Contender, 0, len(seats))
	for i := 1; i <= len(seats); i++ {
		seat := seats[(h.dealerIndex+i)%len(seats)]
		if seat.Folded {
			continue
		}

		high, err := eval.Evaluate(h.options.GameType, h.hole[seat.PlayerID], board)
		if err != nil {
			return nil, err
		}

		var low *eval.Ranking
		if h.rules.HiLo {
			low, err = eval.EvaluateLow(h.options.GameType, h.hole[seat.PlayerID], board)
			if err != nil {
				return nil, err
			}
		}

		contenders = append(contenders, &pot.Contender{
			PlayerID: seat.PlayerID,
			High:     high,
			Low:      low,
		})
	}

	return contenders, nil
}

// finish applies the payouts to the stacks after verifying every chip in the
// pot is accounted for
func (h *Hand) finish(boards []deck.Hand, results []*pot.PotResult, payouts map[int64]int) error {
	total := 0
	for _, amount := range payouts {
		total += amount
	}

	if potTotal := h.round.Pot(); total != potTotal {
		return h.void(fmt.Errorf("settlement paid %d from a pot of %d", total, potTotal))
	}

	for _, seat := range h.round.Seats() {
		seat.Stack += payouts[seat.PlayerID]
	}

	h.result = &Result{
		Boards:  boards,
		Pots:    results,
		Payouts: payouts,
	}

	h.state = StateComplete
	return nil
}

// void aborts the hand and restores every stack to its pre-hand value. The
// pot math can no longer be trusted, so no chips change hands.
func (h *Hand) void(err error) error {
	h.logger.WithError(err).WithFields(logrus.Fields{
		"hand": h.id,
		"game": h.options.GameType.Key(),
	}).Error("hand voided")

	for _, seat := range h.round.Seats() {
		seat.Stack = h.startingStacks[seat.PlayerID]
		seat.TotalContribution = 0
		seat.RoundContribution = 0
	}

	h.result = &Result{Voided: true, Payouts: map[int64]int{}}
	h.state = StateVoided
	return nil
}
