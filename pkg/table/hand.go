package table

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"cardroom-server/pkg/db"
)

// Hand is a record in the `hands` table: one settled hand of poker
type Hand struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	TableUUID string    `json:"tableUuid"`
	GameType  string    `json:"gameType"`
	Board     string    `json:"board"`
	Created   time.Time `json:"created"`
	Ended     time.Time `json:"ended"`

	log interface{}
}

const handColumns = `id, uuid, table_uuid, game_type, board, log, created, ended`

// CreateHand records the start of a hand at the table
func (t *Table) CreateHand(ctx context.Context, handUUID string) (*Hand, error) {
	const query = `
INSERT INTO hands (uuid, table_uuid, game_type)
VALUES ($1, $2, $3)
RETURNING ` + handColumns

	row := db.Instance().QueryRowContext(ctx, query, handUUID, t.UUID, t.GameType)
	return handByRow(row)
}

// HandByUUID returns a hand record by its UUID
func HandByUUID(ctx context.Context, handUUID string) (*Hand, error) {
	const query = `
SELECT ` + handColumns + `
FROM hands
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, handUUID)
	return handByRow(row)
}

func handByRow(row db.Scanner) (*Hand, error) {
	var h Hand
	var board sql.NullString
	var log []byte
	var ended sql.NullTime

	if err := row.Scan(&h.ID, &h.UUID, &h.TableUUID, &h.GameType, &board, &log, &h.Created, &ended); err != nil {
		return nil, err
	}

	h.Board = board.String
	h.Ended = ended.Time
	if log != nil {
		if err := json.Unmarshal(log, &h.log); err != nil {
			return nil, err
		}
	}

	return &h, nil
}

// End records the settled hand in one transaction: the final board and
// action log, each participant's winnings, and the resulting stacks. The
// write is idempotent per hand so a retry never double-pays.
func (h *Hand) End(ctx context.Context, board string, log interface{}, winnings map[int64]int, stacks map[int64]int) error {
	logBytes, err := json.Marshal(log)
	if err != nil {
		return err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const query = `
UPDATE hands
SET board = $1, log = $2, ended = NOW() AT TIME ZONE 'utc'
WHERE id = $3
  AND ended IS NULL
RETURNING ended`

	var ended time.Time
	row := tx.QueryRowContext(ctx, query, board, logBytes, h.ID)
	if err := row.Scan(&ended); err != nil {
		rollback(tx)
		if err == sql.ErrNoRows {
			// already recorded by an earlier attempt
			return nil
		}

		return err
	}

	const query2 = `
INSERT INTO hand_players (hand_id, player_id, winnings)
VALUES ($1, $2, $3)`
	stmt, err := tx.PrepareContext(ctx, query2)
	if err != nil {
		rollback(tx)
		return err
	}

	for playerID, amount := range winnings {
		if _, err := stmt.ExecContext(ctx, h.ID, playerID, amount); err != nil {
			rollback(tx)
			return err
		}
	}

	const query3 = `
UPDATE players_tables
SET stack = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE table_uuid = $2
  AND player_id = $3`
	for playerID, stack := range stacks {
		if _, err := tx.ExecContext(ctx, query3, stack, h.TableUUID, playerID); err != nil {
			rollback(tx)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	h.Board = board
	h.log = log
	h.Ended = ended
	return nil
}

// Winnings returns each participant's recorded winnings for the hand
func (h *Hand) Winnings(ctx context.Context) (map[int64]int, error) {
	const query = `
SELECT player_id, winnings
FROM hand_players
WHERE hand_id = $1`

	rows, err := db.Instance().QueryContext(ctx, query, h.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	winnings := make(map[int64]int)
	for rows.Next() {
		var playerID int64
		var amount int
		if err := rows.Scan(&playerID, &amount); err != nil {
			return nil, err
		}

		winnings[playerID] = amount
	}

	return winnings, nil
}
