package game

import (
	"cardroom-server/pkg/deck"
)

// SeatState is one seat's view in a snapshot
type SeatState struct {
	PlayerID          int64  `json:"playerId"`
	SeatNumber        int    `json:"seatNumber"`
	Stack             int    `json:"stack"`
	RoundContribution int    `json:"roundContribution"`
	Folded            bool   `json:"folded"`
	AllIn             bool   `json:"allIn"`
	IsTurn            bool   `json:"isTurn"`
	// HoleCards is nil while the cards are concealed from the viewer
	HoleCards []string `json:"holeCards,omitempty"`
}

// Snapshot is a point-in-time view of the hand for one viewer. Concealed
// cards belonging to other players are redacted until showdown.
type Snapshot struct {
	ID           string        `json:"id"`
	GameType     string        `json:"gameType"`
	State        State         `json:"state"`
	Community    []string      `json:"community"`
	Boards       [][]string    `json:"boards,omitempty"`
	Pot          int           `json:"pot"`
	CurrentBet   int           `json:"currentBet"`
	MinRaise     int           `json:"minRaise"`
	ActingPlayer int64         `json:"actingPlayer,omitempty"`
	Seats        []*SeatState  `json:"seats"`
	Payouts      map[int64]int `json:"payouts,omitempty"`
}

// Snapshot returns the hand as seen by forPlayer. Pass 0 for a pure
// observer. A player always sees their own hole cards; everyone else's stay
// hidden until the hand reaches showdown, and a folded player's cards are
// never shown.
func (h *Hand) Snapshot(forPlayer int64) *Snapshot {
	acting := h.ActingPlayer()

	seats := make([]*SeatState, len(h.round.Seats()))
	for i, seat := range h.round.Seats() {
		state := &SeatState{
			PlayerID:          seat.PlayerID,
			SeatNumber:        seat.SeatNumber,
			Stack:             seat.Stack,
			RoundContribution: seat.RoundContribution,
			Folded:            seat.Folded,
			AllIn:             seat.AllIn,
			IsTurn:            acting != 0 && seat.PlayerID == acting,
		}

		if h.canSeeHoleCards(forPlayer, seat.PlayerID, seat.Folded) {
			state.HoleCards = cardStrings(h.hole[seat.PlayerID])
		}

		seats[i] = state
	}

	snapshot := &Snapshot{
		ID:           h.id.String(),
		GameType:     h.options.GameType.Key(),
		State:        h.state,
		Community:    cardStrings(h.community),
		Pot:          h.round.Pot(),
		CurrentBet:   h.round.CurrentBet(),
		MinRaise:     h.round.MinRaise(),
		ActingPlayer: acting,
		Seats:        seats,
	}

	for _, board := range h.boards {
		snapshot.Boards = append(snapshot.Boards, cardStrings(board))
	}

	if h.result != nil {
		snapshot.Payouts = h.result.Payouts
	}

	return snapshot
}

func (h *Hand) canSeeHoleCards(viewer, owner int64, folded bool) bool {
	if viewer == owner {
		return true
	}

	return h.showdownSeen && !folded
}

func cardStrings(cards deck.Hand) []string {
	strs := make([]string, len(cards))
	for i, card := range cards {
		strs[i] = deck.CardToString(card)
	}

	return strs
}
