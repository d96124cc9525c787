// Package game orchestrates one hand of poker: dealing, betting stages,
// community reveals, and settlement. It delegates turn and chip bookkeeping
// to the betting engine and pays pots through the settlement engine.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker/betting"
	"cardroom-server/pkg/poker/variant"
)

// ErrHandOver is returned for actions against a finished hand
var ErrHandOver = errors.New("the hand is over")

// maxRunOuts caps how many boards an all-in confrontation may be run
const maxRunOuts = 4

// Options configures a hand
type Options struct {
	GameType   variant.GameType
	SmallBlind int
	BigBlind   int
	Ante       int
}

// DefaultOptions returns a no-ante 25/50 structure
func DefaultOptions(gameType variant.GameType) Options {
	return Options{
		GameType:   gameType,
		SmallBlind: 25,
		BigBlind:   50,
	}
}

// Player is a seated player entering the hand
type Player struct {
	PlayerID   int64
	SeatNumber int
	Stack      int
}

// State is the hand's lifecycle state
type State int

// state constants
const (
	// StateInProgress means the hand is being played
	StateInProgress State = iota
	// StateComplete means the pot has been settled and stacks updated
	StateComplete
	// StateVoided means a settlement invariant failed and stacks were
	// restored to their pre-hand values
	StateVoided
)

// LogEntry records one accepted action for the persisted hand record
type LogEntry struct {
	PlayerID int64  `json:"playerId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
}

// Hand is one hand of poker. It is not safe for concurrent use; the table
// coordinator serializes access.
type Hand struct {
	id          uuid.UUID
	logger      logrus.FieldLogger
	options     Options
	rules       variant.Rules
	deck        *deck.Deck
	round       *betting.Round
	dealerIndex int

	hole      map[int64]deck.Hand
	community deck.Hand
	boards    []deck.Hand

	stagesDealt       int
	bettingRoundsDone int
	runItTimes        int

	state          State
	showdownSeen   bool
	startingStacks map[int64]int
	result         *Result
	log            []*LogEntry
}

// New deals a new hand: shuffles, posts antes and blinds, and deals each
// player's hole cards. players must be in clockwise seat order and
// dealerIndex points into players.
func New(logger logrus.FieldLogger, players []Player, dealerIndex int, options Options) (*Hand, error) {
	d := deck.New()
	d.Shuffle()
	return newWithDeck(logger, players, dealerIndex, options, d)
}

func newWithDeck(logger logrus.FieldLogger, players []Player, dealerIndex int, options Options, d *deck.Deck) (*Hand, error) {
	if options.BigBlind <= 0 {
		return nil, errors.New("big blind must be positive")
	}

	seats := make([]*betting.Seat, len(players))
	startingStacks := make(map[int64]int, len(players))
	for i, player := range players {
		seats[i] = betting.NewSeat(player.PlayerID, player.SeatNumber, player.Stack)
		startingStacks[player.PlayerID] = player.Stack
	}

	round, err := betting.NewRound(seats, dealerIndex, options.BigBlind)
	if err != nil {
		return nil, err
	}

	h := &Hand{
		id:             uuid.New(),
		logger:         logger,
		options:        options,
		rules:          variant.RulesFor(options.GameType),
		deck:           d,
		round:          round,
		dealerIndex:    dealerIndex,
		hole:           make(map[int64]deck.Hand, len(players)),
		community:      make(deck.Hand, 0, 5),
		runItTimes:     1,
		startingStacks: startingStacks,
	}

	round.PostAntes(options.Ante)
	if options.SmallBlind > 0 {
		round.PostBlinds(options.SmallBlind, options.BigBlind)
	}

	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}

	return h, nil
}

// ID returns the hand's unique identifier
func (h *Hand) ID() uuid.UUID {
	return h.id
}

// State returns the hand's lifecycle state
func (h *Hand) State() State {
	return h.state
}

// Result returns the settlement outcome, or nil while the hand is live
func (h *Hand) Result() *Result {
	return h.result
}

// Log returns the accepted actions in order
func (h *Hand) Log() []*LogEntry {
	return h.log
}

// Community returns the shared cards revealed so far
func (h *Hand) Community() deck.Hand {
	return h.community
}

// HoleCards returns the player's concealed cards
func (h *Hand) HoleCards(playerID int64) deck.Hand {
	return h.hole[playerID]
}

// Stacks returns each player's current chip count
func (h *Hand) Stacks() map[int64]int {
	stacks := make(map[int64]int, len(h.round.Seats()))
	for _, seat := range h.round.Seats() {
		stacks[seat.PlayerID] = seat.Stack
	}

	return stacks
}

// ActingPlayer returns the player id on the clock, or 0 if no one is
func (h *Hand) ActingPlayer() int64 {
	seat, err := h.round.ActingSeat()
	if err != nil {
		return 0
	}

	return seat.PlayerID
}

// Apply validates and applies one player action, then advances the hand as
// far as it can go without further input. Every state transition funnels
// through here, including synthetic timeout actions.
func (h *Hand) Apply(playerID int64, action Action, amount int) error {
	if h.state != StateInProgress {
		return ErrHandOver
	}

	if err := h.applyToRound(playerID, action, amount); err != nil {
		return err
	}

	h.log = append(h.log, &LogEntry{PlayerID: playerID, Action: action.String(), Amount: amount})
	return h.advance()
}

// ApplyTimeout folds or checks for a player whose turn clock expired. It
// checks when checking is free and folds otherwise, through the same
// validated path as a live action.
func (h *Hand) ApplyTimeout(playerID int64) error {
	if err := h.Apply(playerID, ActionCheck, 0); err == nil {
		return nil
	} else if errors.Is(err, betting.ErrNotYourTurn) || errors.Is(err, ErrHandOver) {
		return err
	}

	return h.Apply(playerID, ActionFold, 0)
}

// ElectRunItTimes sets how many boards to run when the betting finishes with
// an all-in before the board is complete. Legal only mid-hand in a
// community-card game with cards to come, once a contender is all-in.
func (h *Hand) ElectRunItTimes(times int) error {
	if h.state != StateInProgress {
		return ErrHandOver
	}

	if times < 1 || times > maxRunOuts {
		return fmt.Errorf("must run the board between 1 and %d times", maxRunOuts)
	}

	toCome := h.remainingCommunityCards()
	if toCome == 0 {
		return errors.New("there are no more cards to come")
	}

	if times*toCome > h.deck.CardsLeft() {
		return fmt.Errorf("not enough cards left to run it %d times", times)
	}

	allIn := false
	for _, seat := range h.round.Contenders() {
		if seat.AllIn {
			allIn = true
			break
		}
	}

	if !allIn {
		return betting.IllegalActionError("running it multiple times requires an all-in")
	}

	h.runItTimes = times
	return nil
}

// RabbitHunt returns what the next count community cards would have been.
// Purely informational; the deck and the settlement are untouched.
func (h *Hand) RabbitHunt(count int) deck.Hand {
	remaining := h.deck.Remaining()
	if count > len(remaining) {
		count = len(remaining)
	}

	if max := h.remainingCommunityCards(); count > max {
		count = max
	}

	return remaining[:count]
}

func (h *Hand) applyToRound(playerID int64, action Action, amount int) error {
	switch action {
	case ActionFold:
		return h.round.Fold(playerID)
	case ActionCheck:
		return h.round.Check(playerID)
	case ActionCall:
		return h.round.Call(playerID)
	case ActionBet, ActionRaise:
		if err := h.validateLimit(amount); err != nil {
			return err
		}

		return h.round.BetOrRaise(playerID, amount)
	case ActionAllIn:
		return h.round.AllIn(playerID)
	default:
		return fmt.Errorf("unknown action: %d", action)
	}
}

// validateLimit enforces the variant's betting discipline on a raise-to
// amount. No-limit raises are unbounded, pot-limit raises are capped by the
// pot, and fixed-limit raises must be exactly one increment.
func (h *Hand) validateLimit(raiseTo int) error {
	switch h.rules.Limit {
	case variant.PotLimit:
		max, err := h.round.PotLimitMaxBet()
		if err != nil {
			return err
		}

		if raiseTo > max {
			return betting.IllegalActionError(fmt.Sprintf("the pot-limit maximum is %d", max))
		}
	case variant.FixedLimit:
		if raiseTo != h.round.MinRaise() {
			return betting.IllegalActionError(fmt.Sprintf("bets are fixed at %d", h.round.MinRaise()))
		}
	}

	return nil
}

// advance pushes the hand forward through stage transitions until it either
// needs another decision or settles.
func (h *Hand) advance() error {
	for {
		switch h.round.State() {
		case betting.AwaitingAction:
			return nil
		case betting.HandComplete:
			return h.settleUncontested()
		case betting.RoundComplete:
			h.bettingRoundsDone++
			if h.bettingRoundsDone >= h.rules.BettingRounds() {
				return h.showdown()
			}

			// with at most one player able to act there is no more
			// betting; deal everything out and settle
			if h.round.CanActCount() <= 1 {
				return h.runOut()
			}

			if err := h.dealNextStage(); err != nil {
				return err
			}

			if err := h.round.NextRound(); err != nil {
				return err
			}
		}
	}
}

func (h *Hand) dealHoleCards() error {
	n := len(h.round.Seats())
	for i := 0; i < h.rules.HoleCards; i++ {
		for j := 1; j <= n; j++ {
			seat := h.round.Seats()[(h.dealerIndex+j)%n]
			card, err := h.deck.Draw()
			if err != nil {
				return err
			}

			h.hole[seat.PlayerID] = append(h.hole[seat.PlayerID], card)
		}
	}

	return nil
}

func (h *Hand) dealNextStage() error {
	if h.stagesDealt >= len(h.rules.CommunityStages) {
		return nil
	}

	cards, err := h.deck.DrawMany(h.rules.CommunityStages[h.stagesDealt])
	if err != nil {
		return err
	}

	h.community = append(h.community, cards...)
	h.stagesDealt++
	return nil
}

func (h *Hand) remainingCommunityCards() int {
	remaining := 0
	for _, count := range h.rules.CommunityStages[h.stagesDealt:] {
		remaining += count
	}

	return remaining
}

// runOut completes the board with no further betting. When a multi-board
// run-out was elected and cards remain, the stub deals each board's
// completion from disjoint draws.
func (h *Hand) runOut() error {
	toCome := h.remainingCommunityCards()
	if h.runItTimes <= 1 || toCome == 0 {
		for h.stagesDealt < len(h.rules.CommunityStages) {
			if err := h.dealNextStage(); err != nil {
				return err
			}
		}

		return h.showdown()
	}

	boards := make([]deck.Hand, h.runItTimes)
	for i := range boards {
		completion, err := h.deck.DrawMany(toCome)
		if err != nil {
			return err
		}

		board := make(deck.Hand, 0, len(h.community)+toCome)
		board = append(board, h.community...)
		boards[i] = append(board, completion...)
	}

	h.boards = boards
	return h.settleMultiBoard()
}
