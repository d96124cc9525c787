package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRandom struct{}

func (stubRandom) Intn(n int) int { return 0 }

func TestNew(t *testing.T) {
	a := assert.New(t)

	d := New()
	a.Equal(52, d.CardsLeft())

	seen := make(map[string]bool)
	for _, card := range d.Cards {
		seen[CardToString(card)] = true
	}
	a.Equal(52, len(seen))
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	d := New()
	before := CardsToString(d.Cards)

	d.Shuffle()
	a.Equal(52, d.CardsLeft())

	// a crypto shuffle matching the factory order is effectively impossible
	a.NotEqual(before, CardsToString(d.Cards))
}

func TestDeck_Shuffle_deterministic(t *testing.T) {
	a := assert.New(t)

	d := New()
	d.SetRandomizer(stubRandom{})
	d.Shuffle()

	// Intn always returning 0 rotates the deck by one
	a.Equal(52, d.CardsLeft())
	card, err := d.Draw()
	a.NoError(err)
	a.NotNil(card)
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)

	d := FromCards(CardsFromString("2c,3d,4h")...)

	card, err := d.Draw()
	a.NoError(err)
	a.Equal("2c", CardToString(card))

	cards, err := d.DrawMany(2)
	a.NoError(err)
	a.Equal("3d,4h", CardsToString(cards))

	a.False(d.CanDraw(1))

	card, err = d.Draw()
	a.Equal(ErrEndOfDeck, err)
	a.Nil(card)

	cards, err = d.DrawMany(1)
	a.Equal(ErrEndOfDeck, err)
	a.Nil(cards)
}

func TestDeck_Remaining(t *testing.T) {
	a := assert.New(t)

	d := FromCards(CardsFromString("2c,3d,4h")...)
	remaining := d.Remaining()
	a.Equal("2c,3d,4h", CardsToString(remaining))

	// mutating the copy must not affect the deck
	remaining[0] = CardFromString("14s")
	a.Equal("2c,3d,4h", CardsToString(d.Cards))
}
