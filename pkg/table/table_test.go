package table

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"cardroom-server/pkg/poker/variant"
)

var cbg = context.Background()

func player() *Player {
	name := fmt.Sprintf("player-%d", time.Now().UnixNano())
	p, err := CreatePlayer(cbg, name, 10000)
	if err != nil {
		panic(err)
	}

	return p
}

func playerAndTable() (*Player, *Table) {
	p := player()
	tbl, err := p.CreateTable(cbg, "test table", variant.TexasHoldem.Key(), 1000)
	if err != nil {
		panic(err)
	}

	return p, tbl
}

func TestCreatePlayer(t *testing.T) {
	a := assert.New(t)

	p := player()
	a.Greater(p.ID, int64(0))
	a.Equal(10000, p.Bankroll)

	p2, err := GetPlayerByID(cbg, p.ID)
	a.NoError(err)
	a.Equal(p.DisplayName, p2.DisplayName)
}

func TestGetTableByUUID(t *testing.T) {
	a := assert.New(t)

	tbl, err := GetTableByUUID(cbg, uuid.New().String())
	a.Equal(sql.ErrNoRows, err)
	a.Nil(tbl)

	_, tbl2 := playerAndTable()
	tbl, err = GetTableByUUID(cbg, tbl2.UUID)
	a.NoError(err)
	a.Equal(tbl2.Name, tbl.Name)
	a.Equal("texas-hold-em", tbl.GameType)
}

func TestPlayer_Join(t *testing.T) {
	a := assert.New(t)

	p1, tbl := playerAndTable()
	p2 := player()

	pt, err := p2.Join(cbg, tbl, 2, 1000)
	a.NoError(err)
	a.Equal(1000, pt.Stack)
	a.Equal(2, pt.SeatNumber)
	a.Equal(9000, p2.Bankroll)

	_, err = p2.Join(cbg, tbl, 3, 100000)
	a.EqualError(err, "buy-in exceeds your bankroll")

	_, err = p2.Join(cbg, tbl, 0, 1000)
	a.EqualError(err, "seat number must be between 1 and 10")

	_, err = p2.Join(cbg, tbl, 11, 1000)
	a.EqualError(err, "seat number must be between 1 and 10")

	players, err := tbl.GetPlayers(cbg)
	a.NoError(err)
	a.Len(players, 2)
	a.Equal(p1.ID, players[0].PlayerID)
	a.Equal(p2.ID, players[1].PlayerID)

	a.NoError(pt.SetActive(cbg, true))
	active, err := tbl.GetActivePlayers(cbg)
	a.NoError(err)
	a.Len(active, 1)
	a.Equal(p2.ID, active[0].PlayerID)

	a.NoError(pt.Leave(cbg))
	p2reloaded, err := GetPlayerByID(cbg, p2.ID)
	a.NoError(err)
	a.Equal(10000, p2reloaded.Bankroll)
}

func TestPlayer_Join_studCapacity(t *testing.T) {
	a := assert.New(t)

	p := player()
	tbl, err := p.CreateTable(cbg, "stud table", variant.SevenStud.Key(), 1000)
	a.NoError(err)

	// seven cards apiece: an eighth seat could exhaust the deck mid-deal,
	// so it is refused up front
	p2 := player()
	_, err = p2.Join(cbg, tbl, 8, 1000)
	a.EqualError(err, "seat number must be between 1 and 7")

	pt, err := p2.Join(cbg, tbl, 7, 1000)
	a.NoError(err)
	a.Equal(7, pt.SeatNumber)
}

func TestHand_End(t *testing.T) {
	a := assert.New(t)

	p1, tbl := playerAndTable()
	p2 := player()
	pt2, err := p2.Join(cbg, tbl, 2, 1000)
	a.NoError(err)

	hand, err := tbl.CreateHand(cbg, uuid.New().String())
	a.NoError(err)
	a.True(hand.Ended.IsZero())

	count, err := tbl.GetHandsCount(cbg)
	a.NoError(err)
	a.EqualValues(1, count)

	winnings := map[int64]int{p1.ID: 200, p2.ID: 0}
	stacks := map[int64]int{p1.ID: 1100, p2.ID: 900}
	a.NoError(hand.End(cbg, "2c,7d,10h,5c,9h", []string{"call", "check"}, winnings, stacks))
	a.False(hand.Ended.IsZero())

	recorded, err := hand.Winnings(cbg)
	a.NoError(err)
	a.Equal(winnings, recorded)

	pt2Reloaded, err := p2.GetPlayerTable(cbg, tbl)
	a.NoError(err)
	a.Equal(pt2.ID, pt2Reloaded.ID)
	a.Equal(900, pt2Reloaded.Stack)

	// a retried write must not double-record
	a.NoError(hand.End(cbg, "2c,7d,10h,5c,9h", []string{"call", "check"}, winnings, map[int64]int{p1.ID: 9999}))
	pt1, err := p1.GetPlayerTable(cbg, tbl)
	a.NoError(err)
	a.Equal(1100, pt1.Stack)
}
