// Package betting implements the betting round state machine: whose turn it
// is, which actions are legal, how chips move, and when a round or the whole
// hand is over.
package betting

import (
	"errors"
	"fmt"
)

// IllegalActionError is a player-caused rejection that is safe to show to the
// requester. The state is unchanged when one is returned.
type IllegalActionError string

func (e IllegalActionError) Error() string {
	return string(e)
}

func newIllegalAction(format string, a ...interface{}) IllegalActionError {
	return IllegalActionError(fmt.Sprintf(format, a...))
}

// ErrNotYourTurn is an error when a player acts out of turn
var ErrNotYourTurn = IllegalActionError("it is not your turn")

// ErrHandComplete is an error when an action is attempted after the hand ended
var ErrHandComplete = errors.New("hand is complete")

// ErrRoundComplete is an error when an action is attempted between rounds
var ErrRoundComplete = errors.New("betting round is complete")

// State is the betting state machine's state
type State int

// state constants
const (
	// AwaitingAction means one seat is on the clock
	AwaitingAction State = iota
	// RoundComplete means the betting round ended and the next stage may begin
	RoundComplete
	// HandComplete means at most one contender remains; no further betting
	HandComplete
)

// Round tracks betting for an entire hand: per-round contributions, the
// current bet, the minimum raise increment, and who still has to act. It
// survives across betting rounds; NextRound() advances it to the next stage.
type Round struct {
	seats       []*Seat
	dealerIndex int
	bigBlind    int

	currentBet   int
	blindsPosted bool
	// minRaise is the current legal raise increment
	minRaise int
	// lastAggressor is the index of the last seat to bet or raise, or -1
	lastAggressor int
	actionAt      int
	state         State
	roundNumber   int
}

// NewRound returns a betting engine for one hand.
// seats must be in clockwise table order; dealerIndex points into seats.
func NewRound(seats []*Seat, dealerIndex, bigBlind int) (*Round, error) {
	if len(seats) < 2 {
		return nil, errors.New("at least two seats are required")
	}

	if dealerIndex < 0 || dealerIndex >= len(seats) {
		return nil, fmt.Errorf("dealer index %d out of range", dealerIndex)
	}

	if bigBlind <= 0 {
		return nil, errors.New("big blind must be positive")
	}

	for _, seat := range seats {
		if seat.Stack <= 0 {
			return nil, fmt.Errorf("seat %d has no stack", seat.SeatNumber)
		}
	}

	r := &Round{
		seats:         seats,
		dealerIndex:   dealerIndex,
		bigBlind:      bigBlind,
		minRaise:      bigBlind,
		lastAggressor: -1,
	}

	r.actionAt = r.firstToAct()
	return r, nil
}

// PostBlinds posts the small and big blinds and sets the opening bet.
// Heads-up, the dealer posts the small blind and acts first before the deal.
func (r *Round) PostBlinds(smallBlind, bigBlind int) {
	smallIndex := r.nextIndex(r.dealerIndex)
	bigIndex := r.nextIndex(smallIndex)
	if len(r.seats) == 2 {
		smallIndex = r.dealerIndex
		bigIndex = r.nextIndex(r.dealerIndex)
	}

	r.seats[smallIndex].contribute(smallBlind)
	r.seats[bigIndex].contribute(bigBlind)

	r.currentBet = bigBlind
	r.minRaise = bigBlind
	r.blindsPosted = true

	// pre-deal action opens after the big blind
	r.actionAt = r.firstToAct()
}

// PostAntes takes the ante from every seat as dead money
func (r *Round) PostAntes(ante int) {
	if ante <= 0 {
		return
	}

	for _, seat := range r.seats {
		seat.contributeDead(ante)
	}
}

// State returns the state machine's current state
func (r *Round) State() State {
	return r.state
}

// ActingSeat returns the seat currently on the clock
func (r *Round) ActingSeat() (*Seat, error) {
	if r.state != AwaitingAction {
		return nil, ErrRoundComplete
	}

	return r.seats[r.actionAt], nil
}

// CurrentBet returns the bet-to-call for the current round
func (r *Round) CurrentBet() int {
	return r.currentBet
}

// MinRaise returns the smallest legal raise-to amount
func (r *Round) MinRaise() int {
	if r.currentBet == 0 {
		return r.bigBlind
	}

	return r.currentBet + r.minRaise
}

// Pot returns the total chips wagered this hand
func (r *Round) Pot() int {
	pot := 0
	for _, seat := range r.seats {
		pot += seat.TotalContribution
	}

	return pot
}

// Seats returns the seats in table order
func (r *Round) Seats() []*Seat {
	return r.seats
}

// Contenders returns the seats that have not folded
func (r *Round) Contenders() []*Seat {
	contenders := make([]*Seat, 0, len(r.seats))
	for _, seat := range r.seats {
		if seat.contending() {
			contenders = append(contenders, seat)
		}
	}

	return contenders
}

// CanActCount returns how many seats can still make decisions
func (r *Round) CanActCount() int {
	count := 0
	for _, seat := range r.seats {
		if seat.canAct() {
			count++
		}
	}

	return count
}

// LastAggressor returns the last seat to bet or raise, or nil
func (r *Round) LastAggressor() *Seat {
	if r.lastAggressor < 0 {
		return nil
	}

	return r.seats[r.lastAggressor]
}

// PotLimitMaxBet returns the maximum raise-to amount in a pot-limit game:
// the current bet plus the size of the pot after the acting player calls
func (r *Round) PotLimitMaxBet() (int, error) {
	seat, err := r.ActingSeat()
	if err != nil {
		return 0, err
	}

	toCall := r.currentBet - seat.RoundContribution
	return r.currentBet + r.Pot() + toCall, nil
}

// Fold marks the acting player folded. If only one contender remains the
// hand is complete and no further betting or evaluation occurs.
func (r *Round) Fold(playerID int64) error {
	seat, err := r.validateTurn(playerID)
	if err != nil {
		return err
	}

	seat.Folded = true
	seat.acted = true

	if len(r.Contenders()) == 1 {
		r.state = HandComplete
		return nil
	}

	r.completeTurn()
	return nil
}

// Check passes the action without betting. Legal only when the acting
// player's round contribution already matches the current bet.
func (r *Round) Check(playerID int64) error {
	seat, err := r.validateTurn(playerID)
	if err != nil {
		return err
	}

	if seat.RoundContribution != r.currentBet {
		return newIllegalAction("you cannot check with %d to call", r.currentBet-seat.RoundContribution)
	}

	seat.acted = true
	r.completeTurn()
	return nil
}

// Call matches the current bet, going all-in if the stack is short
func (r *Round) Call(playerID int64) error {
	seat, err := r.validateTurn(playerID)
	if err != nil {
		return err
	}

	if r.currentBet <= seat.RoundContribution {
		return newIllegalAction("there is no bet to call")
	}

	seat.contribute(r.currentBet - seat.RoundContribution)
	seat.acted = true
	r.completeTurn()
	return nil
}

// BetOrRaise moves the current bet to raiseTo. The legal minimum is the big
// blind for an opening bet, or the current bet plus the last full raise
// increment for a re-raise. An all-in for less is always permitted.
//
// Minimum-raise bookkeeping rule: the increment only updates when the raise
// is at least the legal minimum. A short all-in moves the bet-to-call but
// leaves the increment unchanged and does not re-open action for players who
// have already matched the new high watermark.
func (r *Round) BetOrRaise(playerID int64, raiseTo int) error {
	seat, err := r.validateTurn(playerID)
	if err != nil {
		return err
	}

	if raiseTo <= r.currentBet {
		return newIllegalAction("a raise to %d must exceed the current bet of %d", raiseTo, r.currentBet)
	}

	required := raiseTo - seat.RoundContribution
	if required > seat.Stack {
		return newIllegalAction("you only have %d behind", seat.Stack)
	}

	isAllIn := required == seat.Stack
	if raiseTo < r.MinRaise() && !isAllIn {
		return newIllegalAction("the minimum raise is to %d", r.MinRaise())
	}

	r.applyRaise(seat, raiseTo)
	r.completeTurn()
	return nil
}

// AllIn commits the acting player's entire stack. If this exceeds the
// current bet it is treated as a raise per the BetOrRaise bookkeeping rule.
func (r *Round) AllIn(playerID int64) error {
	seat, err := r.validateTurn(playerID)
	if err != nil {
		return err
	}

	total := seat.RoundContribution + seat.Stack

	if total <= r.currentBet {
		// an all-in for less than the bet is a short call
		seat.contribute(seat.Stack)
		seat.acted = true
		r.completeTurn()
		return nil
	}

	r.applyRaise(seat, total)
	r.completeTurn()
	return nil
}

// applyRaise moves the current bet to raiseTo for seat. A full raise resets
// the acted set so every other contender must respond again; a short all-in
// leaves the acted set alone and relies on the unmatched-bet check in
// roundIsOver to re-open action only for players below the new watermark.
func (r *Round) applyRaise(seat *Seat, raiseTo int) {
	increment := raiseTo - r.currentBet
	fullRaise := raiseTo >= r.MinRaise() || r.currentBet == 0

	seat.contribute(raiseTo - seat.RoundContribution)
	r.currentBet = raiseTo

	if fullRaise {
		if increment >= r.minRaise {
			r.minRaise = increment
		}

		for _, s := range r.seats {
			s.acted = false
		}
	}

	seat.acted = true
	r.lastAggressor = r.indexOf(seat)
}

// NextRound resets per-round state and selects the first seat to act for the
// next stage. Returns ErrHandComplete if at most one contender remains.
func (r *Round) NextRound() error {
	if r.state == HandComplete {
		return ErrHandComplete
	}

	if r.state != RoundComplete {
		return errors.New("betting round is not complete")
	}

	for _, seat := range r.seats {
		seat.newRound()
	}

	r.currentBet = 0
	r.minRaise = r.bigBlind
	r.lastAggressor = -1
	r.roundNumber++

	if r.CanActCount() <= 1 {
		// no one left to bet; the game deals out and goes to showdown
		r.state = RoundComplete
		return nil
	}

	r.state = AwaitingAction
	r.actionAt = r.firstToAct()
	return nil
}

// firstToAct picks the opening seat for the current round: the first
// contender clockwise of the dealer. Heads-up, the dealer acts first before
// the deal and last on every later round.
func (r *Round) firstToAct() int {
	start := r.nextIndex(r.dealerIndex)

	if len(r.seats) == 2 {
		if r.roundNumber == 0 {
			start = r.dealerIndex
		} else {
			start = r.nextIndex(r.dealerIndex)
		}
	} else if r.roundNumber == 0 && r.blindsPosted {
		// pre-deal action starts after the big blind
		start = r.nextIndex(r.nextIndex(r.nextIndex(r.dealerIndex)))
	}

	for i := 0; i < len(r.seats); i++ {
		index := (start + i) % len(r.seats)
		if r.seats[index].canAct() {
			return index
		}
	}

	return start
}

// completeTurn advances the clock or finishes the round
func (r *Round) completeTurn() {
	if r.roundIsOver() {
		r.state = RoundComplete
		return
	}

	for i := 1; i <= len(r.seats); i++ {
		index := (r.actionAt + i) % len(r.seats)
		seat := r.seats[index]
		if !seat.canAct() {
			continue
		}

		// skip seats that have already matched and acted
		if seat.acted && seat.RoundContribution == r.currentBet {
			continue
		}

		r.actionAt = index
		return
	}

	r.state = RoundComplete
}

// roundIsOver returns true when every non-folded, non-all-in seat has both
// matched the current bet and acted since the last raise
func (r *Round) roundIsOver() bool {
	for _, seat := range r.seats {
		if !seat.canAct() {
			continue
		}

		if !seat.acted || seat.RoundContribution != r.currentBet {
			return false
		}
	}

	return true
}

func (r *Round) validateTurn(playerID int64) (*Seat, error) {
	switch r.state {
	case HandComplete:
		return nil, ErrHandComplete
	case RoundComplete:
		return nil, ErrRoundComplete
	}

	seat := r.seats[r.actionAt]
	if seat.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}

	return seat, nil
}

func (r *Round) nextIndex(index int) int {
	return (index + 1) % len(r.seats)
}

func (r *Round) indexOf(seat *Seat) int {
	for i, s := range r.seats {
		if s == seat {
			return i
		}
	}

	panic("seat not found")
}
