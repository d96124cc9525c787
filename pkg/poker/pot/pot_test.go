package pot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardroom-server/pkg/poker/betting"
)

func seat(playerID int64, seatNumber, contributed int, folded bool) *betting.Seat {
	return &betting.Seat{
		PlayerID:          playerID,
		SeatNumber:        seatNumber,
		TotalContribution: contributed,
		Folded:            folded,
	}
}

func TestBuild_allInTiers(t *testing.T) {
	a := assert.New(t)

	seats := []*betting.Seat{
		seat(1, 1, 50, false),
		seat(2, 2, 150, false),
		seat(3, 3, 300, false),
	}

	pots := Build(seats)
	a.Len(pots, 3)

	a.Equal(150, pots[0].Amount)
	a.Equal([]int64{1, 2, 3}, pots[0].EligibleIDs())

	a.Equal(200, pots[1].Amount)
	a.Equal([]int64{2, 3}, pots[1].EligibleIDs())

	a.Equal(150, pots[2].Amount)
	a.Equal([]int64{3}, pots[2].EligibleIDs())

	a.Equal(500, pots.Total())
}

func TestBuild_foldedPartialContribution(t *testing.T) {
	a := assert.New(t)

	// the folder's 75 is dead money; it does not create a separate tier
	seats := []*betting.Seat{
		seat(1, 1, 200, false),
		seat(2, 2, 75, true),
		seat(3, 3, 200, false),
	}

	pots := Build(seats)
	a.Len(pots, 1)
	a.Equal(475, pots[0].Amount)
	a.Equal([]int64{1, 3}, pots[0].EligibleIDs())
}

func TestBuild_foldedAtFullLevel(t *testing.T) {
	a := assert.New(t)

	seats := []*betting.Seat{
		seat(1, 1, 100, false),
		seat(2, 2, 100, true),
		seat(3, 3, 40, false),
	}

	pots := Build(seats)
	a.Len(pots, 2)

	a.Equal(120, pots[0].Amount)
	a.Equal([]int64{1, 3}, pots[0].EligibleIDs())

	a.Equal(120, pots[1].Amount)
	a.Equal([]int64{1}, pots[1].EligibleIDs())
}

func TestPots_Fraction(t *testing.T) {
	a := assert.New(t)

	eligible := []*betting.Seat{
		seat(1, 1, 101, false),
		seat(2, 2, 100, false),
	}

	pots := Pots{{Amount: 201, Eligible: eligible}}

	first := pots.Fraction(0, 2)
	second := pots.Fraction(1, 2)

	// the odd chip lands in the first run-out
	a.Equal(101, first.Total())
	a.Equal(100, second.Total())
	a.Equal([]int64{1, 2}, first[0].EligibleIDs())
}
