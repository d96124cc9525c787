package deck

import (
	"errors"

	"cardroom-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents a playing deck
// A deck belongs to exactly one hand and is thrown away when the hand ends.
type Deck struct {
	Cards []*Card `json:"cards"`

	random rng.Generator
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		random: rng.Crypto{},
	}

	d.buildDeck()
	return d
}

// FromCards returns a deck consisting of exactly the cards provided, in order.
// Intended for tests that need a deterministic deal.
func FromCards(cards ...*Card) *Deck {
	return &Deck{
		Cards:  cards,
		random: rng.Crypto{},
	}
}

// SetRandomizer replaces the random source used by Shuffle()
// This should only be used by tests
func (d *Deck) SetRandomizer(random rng.Generator) {
	d.random = random
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= 14; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the deck of cards
// The permutation is uniform as long as the underlying generator is unbiased.
func (d *Deck) Shuffle() {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.random.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// DrawMany draws count cards
// If the deck runs out before count cards are drawn, an ErrEndOfDeck is returned.
func (d *Deck) DrawMany(count int) ([]*Card, error) {
	if !d.CanDraw(count) {
		return nil, ErrEndOfDeck
	}

	cards := d.Cards[0:count]
	d.Cards = d.Cards[count:]

	return cards, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// Remaining returns a copy of the undealt cards without consuming them
func (d *Deck) Remaining() []*Card {
	cards := make([]*Card, len(d.Cards))
	copy(cards, d.Cards)

	return cards
}
