package betting

// Seat is one player's betting state for a hand
type Seat struct {
	// PlayerID is the stable identity of the seated player
	PlayerID int64 `json:"playerId"`
	// SeatNumber defines turn order, clockwise ascending
	SeatNumber int `json:"seatNumber"`
	// Stack is the player's chips not yet wagered
	Stack int `json:"stack"`
	// RoundContribution is how much the player has put in this betting round
	RoundContribution int `json:"roundContribution"`
	// TotalContribution is how much the player has put in the whole hand;
	// side pot construction runs off this value
	TotalContribution int `json:"totalContribution"`
	// Folded is true once the player folds
	Folded bool `json:"folded"`
	// AllIn is true once the player's stack is fully committed
	AllIn bool `json:"allIn"`

	// acted is true if the seat has acted since the last bet or raise
	acted bool
}

// NewSeat returns a seat for a player with the given stack
func NewSeat(playerID int64, seatNumber, stack int) *Seat {
	return &Seat{
		PlayerID:   playerID,
		SeatNumber: seatNumber,
		Stack:      stack,
	}
}

// canAct returns true if the seat can check, call, bet, raise, or fold
func (s *Seat) canAct() bool {
	return !s.Folded && !s.AllIn
}

// contend returns true if the seat has not folded
func (s *Seat) contending() bool {
	return !s.Folded
}

// contribute moves up to amount chips from the stack into the pot and
// returns how much actually moved. Exhausting the stack marks the seat all-in.
func (s *Seat) contribute(amount int) int {
	if amount >= s.Stack {
		amount = s.Stack
		s.AllIn = true
	}

	s.Stack -= amount
	s.RoundContribution += amount
	s.TotalContribution += amount

	return amount
}

// contributeDead moves chips into the pot without counting toward the
// round contribution. Antes are dead money.
func (s *Seat) contributeDead(amount int) int {
	if amount >= s.Stack {
		amount = s.Stack
		s.AllIn = true
	}

	s.Stack -= amount
	s.TotalContribution += amount

	return amount
}

// newRound resets the per-round state
func (s *Seat) newRound() {
	s.RoundContribution = 0
	s.acted = false
}
