package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardroom-server/pkg/poker/variant"
	"cardroom-server/pkg/table"
)

func muxPlayer(t *testing.T) *table.Player {
	t.Helper()

	p, err := table.CreatePlayer(cbg, "mux test player", 10000)
	assert.NoError(t, err)
	return p
}

func Test_postTable(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	a := assert.New(t)
	p := muxPlayer(t)

	var tbl table.Table
	assertPost(t, ts, "/table", postTablePayload{
		Name:     "My Table",
		GameType: variant.TexasHoldem.Key(),
		BuyIn:    1000,
	}, &tbl, 201, p.ID)
	a.NotEmpty(tbl.UUID)
	a.Equal("My Table", tbl.Name)
	a.Equal(p.ID, tbl.PlayerID)

	var errObj errorResponse
	assertPost(t, ts, "/table", postTablePayload{Name: "x", GameType: variant.TexasHoldem.Key(), BuyIn: 1000}, &errObj, 400, p.ID)
	a.Equal("name must be 3-40 characters", errObj.Message)

	assertPost(t, ts, "/table", postTablePayload{Name: "My Table", GameType: "not-a-game", BuyIn: 1000}, &errObj, 400, p.ID)

	assertPost(t, ts, "/table", postTablePayload{Name: "My Table", GameType: variant.TexasHoldem.Key()}, &errObj, 400, p.ID)
	a.Equal("buy-in must be greater than zero", errObj.Message)
}

func Test_getTableUUID(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	a := assert.New(t)
	p := muxPlayer(t)

	tbl, err := p.CreateTable(cbg, "lookup table", variant.Omaha.Key(), 500)
	a.NoError(err)

	var resp getTableUUIDResponse
	assertGet(t, ts, "/table/"+tbl.UUID, &resp, 200, p.ID)
	a.Equal(tbl.UUID, resp.UUID)
	a.Equal(1, len(resp.Players))
	a.Equal(p.ID, resp.Players[0].PlayerID)

	var errObj errorResponse
	assertGet(t, ts, "/table/0b0e021e-0000-0000-0000-000000000000", &errObj, 404, p.ID)
}

func Test_postTableUUIDSeat(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	a := assert.New(t)
	p := muxPlayer(t)
	p2 := muxPlayer(t)

	tbl, err := p.CreateTable(cbg, "seat table", variant.TexasHoldem.Key(), 1000)
	a.NoError(err)

	var pt table.PlayerTable
	assertPost(t, ts, "/table/"+tbl.UUID+"/seat", postSeatPayload{SeatNumber: 2, BuyIn: 1000}, &pt, 201, p2.ID)
	a.Equal(p2.ID, pt.PlayerID)
	a.Equal(2, pt.SeatNumber)
	a.Equal(1000, pt.Stack)

	// seat is taken
	p3 := muxPlayer(t)
	var errObj errorResponse
	assertPost(t, ts, "/table/"+tbl.UUID+"/seat", postSeatPayload{SeatNumber: 2, BuyIn: 1000}, &errObj, 400, p3.ID)
	a.Equal("that seat is already taken", errObj.Message)

	// buy-in exceeds bankroll
	assertPost(t, ts, "/table/"+tbl.UUID+"/seat", postSeatPayload{SeatNumber: 3, BuyIn: 50000}, &errObj, 400, p3.ID)
	a.Equal("buy-in exceeds your bankroll", errObj.Message)

	// seat number out of range for the variant
	assertPost(t, ts, "/table/"+tbl.UUID+"/seat", postSeatPayload{SeatNumber: 0, BuyIn: 1000}, &errObj, 400, p3.ID)
	a.Equal("seat number must be between 1 and 10", errObj.Message)
}
