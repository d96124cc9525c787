package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/table"
)

func TestDealer_AddClient(t *testing.T) {
	d := NewDealer(&PitBoss{}, &table.Table{})
	c := NewClient(nil, &table.Player{ID: 1}, &table.Table{})
	c2 := NewClient(nil, &table.Player{ID: 2}, &table.Table{})

	d.AddClient(c)
	d.AddClient(c2)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestSeatedPlayers(t *testing.T) {
	a := assert.New(t)

	players := []*table.PlayerTable{
		{PlayerID: 1, SeatNumber: 1, Stack: 1000},
		{PlayerID: 2, SeatNumber: 2, Stack: 1000},
		{PlayerID: 3, SeatNumber: 3, Stack: 1000},
	}

	// the last settlement wins over a database read that has not yet seen
	// the hand-end write
	settled := map[int64]int{1: 1500, 2: 0}
	gamePlayers := seatedPlayers(players, settled)

	a.Len(gamePlayers, 2)
	a.EqualValues(1, gamePlayers[0].PlayerID)
	a.Equal(1500, gamePlayers[0].Stack)

	// a player the dealer has not settled keeps their database stack
	a.EqualValues(3, gamePlayers[1].PlayerID)
	a.Equal(1000, gamePlayers[1].Stack)

	// busted players sit out entirely
	gamePlayers = seatedPlayers(players, map[int64]int{1: 0, 2: 0, 3: 0})
	a.Empty(gamePlayers)
}

func TestClient_sendDoesNotBlock(t *testing.T) {
	a := assert.New(t)

	c := NewClient(nil, &table.Player{ID: 1}, &table.Table{})
	for i := 0; i < 256; i++ {
		a.True(c.Send(OK()))
	}

	// buffer is full; the message is dropped instead of stalling the dealer
	a.False(c.Send(OK()))
}

func TestBoardString(t *testing.T) {
	a := assert.New(t)

	a.Equal("", boardString(nil))

	one := deck.Hand(deck.CardsFromString("2c,3c,4c"))
	two := deck.Hand(deck.CardsFromString("5d,6d,7d"))
	a.Equal("2c,3c,4c", boardString([]deck.Hand{one}))
	a.Equal("2c,3c,4c;5d,6d,7d", boardString([]deck.Hand{one, two}))
}
