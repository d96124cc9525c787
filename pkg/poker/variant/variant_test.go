package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameType_Key_roundTrip(t *testing.T) {
	a := assert.New(t)

	for _, g := range GameTypes {
		got, err := GameTypeFromKey(g.Key())
		a.NoError(err)
		a.Equal(g, got)
	}

	_, err := GameTypeFromKey("five-card-charlie")
	a.EqualError(err, "unknown game type: five-card-charlie")
}

func TestRulesFor(t *testing.T) {
	a := assert.New(t)

	holdem := RulesFor(TexasHoldem)
	a.Equal(2, holdem.HoleCards)
	a.Equal(5, holdem.CommunityCards)
	a.Equal(0, holdem.UseHole)
	a.False(holdem.HiLo)
	a.Equal(NoLimit, holdem.Limit)
	a.Equal(4, holdem.BettingRounds())

	omaha := RulesFor(OmahaHiLo)
	a.Equal(4, omaha.HoleCards)
	a.Equal(2, omaha.UseHole)
	a.Equal(3, omaha.UseCommunity)
	a.True(omaha.HiLo)
	a.Equal(PotLimit, omaha.Limit)

	badugi := RulesFor(Badugi)
	a.Equal(4, badugi.HoleCards)
	a.Equal(0, badugi.CommunityCards)
	a.Equal(FixedLimit, badugi.Limit)
	a.Equal(4, badugi.BettingRounds())
}

func TestRules_MaxSeats(t *testing.T) {
	a := assert.New(t)

	a.Equal(10, RulesFor(TexasHoldem).MaxSeats())
	a.Equal(10, RulesFor(Badugi).MaxSeats())
	a.Equal(10, RulesFor(DeuceToSevenTripleDraw).MaxSeats())

	// seven cards apiece caps a stud table at seven players
	a.Equal(7, RulesFor(SevenStud).MaxSeats())
	a.Equal(7, RulesFor(Razz).MaxSeats())

	for _, g := range GameTypes {
		rules := RulesFor(g)
		a.LessOrEqual(rules.MaxSeats()*rules.HoleCards+rules.CommunityCards, 52)
	}
}
