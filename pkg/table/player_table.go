package table

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"cardroom-server/pkg/db"
	"cardroom-server/pkg/poker/variant"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

const playerTableColumns = `
players_tables.id,
players_tables.player_id,
players_tables.table_uuid,
players_tables.seat_number,
players_tables.stack,
players_tables.active,
players_tables.created,
players_tables.updated`

// PlayerTable represents a row in the players_tables table: one player's
// seat and stack at one table
type PlayerTable struct {
	Player     *Player   `json:"player"`
	ID         int64     `json:"id"`
	PlayerID   int64     `json:"playerId"`
	TableUUID  string    `json:"tableUuid"`
	SeatNumber int       `json:"seatNumber"`
	Stack      int       `json:"stack"`
	Active     bool      `json:"active"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

func getPlayerTableByRow(row db.Scanner) (*PlayerTable, error) {
	var p Player
	var pt PlayerTable

	if err := row.Scan(&p.ID, &p.DisplayName, &p.Bankroll, &p.Created, &p.Updated,
		&pt.ID, &pt.PlayerID, &pt.TableUUID, &pt.SeatNumber, &pt.Stack,
		&pt.Active, &pt.Created, &pt.Updated); err != nil {
		return nil, err
	}

	pt.Player = &p

	return &pt, nil
}

// Join seats the player at the table with a buy-in moved from their bankroll.
// The seat number is bounded by how many players the table's variant can deal.
func (p *Player) Join(ctx context.Context, t *Table, seatNumber, buyIn int) (*PlayerTable, error) {
	gameType, err := variant.GameTypeFromKey(t.GameType)
	if err != nil {
		return nil, err
	}

	if maxSeats := variant.RulesFor(gameType).MaxSeats(); seatNumber < 1 || seatNumber > maxSeats {
		return nil, UserError(fmt.Sprintf("seat number must be between 1 and %d", maxSeats))
	}

	if buyIn > p.Bankroll {
		return nil, UserError("buy-in exceeds your bankroll")
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO players_tables (player_id, table_uuid, seat_number, stack)
VALUES ($1, $2, $3, $4)
RETURNING ` + playerTableColumns

	var pt PlayerTable
	row := tx.QueryRowContext(ctx, query, p.ID, t.UUID, seatNumber, buyIn)
	if err := row.Scan(&pt.ID, &pt.PlayerID, &pt.TableUUID, &pt.SeatNumber, &pt.Stack,
		&pt.Active, &pt.Created, &pt.Updated); err != nil {
		rollback(tx)
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, UserError("that seat is already taken")
		}

		return nil, err
	}

	const query2 = `
UPDATE players
SET bankroll = bankroll - $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query2, buyIn, p.ID); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.Bankroll -= buyIn
	pt.Player = p
	return &pt, nil
}

// GetPlayerTable returns the player's seat at the table
func (p *Player) GetPlayerTable(ctx context.Context, t *Table) (*PlayerTable, error) {
	const query = `
SELECT ` + playerColumns + `, ` + playerTableColumns + `
FROM players_tables
INNER JOIN players ON players_tables.player_id = players.id
WHERE players_tables.table_uuid = $1
  AND players_tables.player_id = $2`

	row := db.Instance().QueryRowContext(ctx, query, t.UUID, p.ID)
	return getPlayerTableByRow(row)
}

// SetActive sets the active state for the player table in the database
func (p *PlayerTable) SetActive(ctx context.Context, active bool) error {
	const query = `
UPDATE players_tables
SET active = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`
	execContext, err := db.Instance().ExecContext(ctx, query, active, p.ID)
	if err != nil {
		return err
	}

	if ra, _ := execContext.RowsAffected(); ra > 0 {
		p.Active = active
	}

	return nil
}

// SetStack writes the player's current chip count at the table
func (p *PlayerTable) SetStack(ctx context.Context, stack int) error {
	const query = `
UPDATE players_tables
SET stack = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	if _, err := db.Instance().ExecContext(ctx, query, stack, p.ID); err != nil {
		return err
	}

	p.Stack = stack
	return nil
}

// Leave removes the player's seat and returns their stack to their bankroll
func (p *PlayerTable) Leave(ctx context.Context) error {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const query = `
DELETE FROM players_tables
WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, p.ID); err != nil {
		rollback(tx)
		return err
	}

	const query2 = `
UPDATE players
SET bankroll = bankroll + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query2, p.Stack, p.PlayerID); err != nil {
		rollback(tx)
		return err
	}

	return tx.Commit()
}
