package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cardroom-server/pkg/db"
)

const tableColumns = `
tables.uuid,
tables.name,
tables.game_type,
tables.player_id,
tables.created`

// Table represents a poker table
// A table has many players and plays many hands of one game type
type Table struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	GameType string `json:"gameType"`
	// PlayerID is who created the table
	PlayerID int64     `json:"playerId"`
	Created  time.Time `json:"created"`
}

// ErrPlayerNotAtTable happens when the player is not a member of the table
var ErrPlayerNotAtTable = errors.New("player is not a member of the table")

// CreateTable creates a new table playing the given game type and seats the
// creator at seat 1
func (p *Player) CreateTable(ctx context.Context, name, gameType string, buyIn int) (*Table, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO tables (uuid, name, game_type, player_id)
VALUES ($1, $2, $3, $4)
RETURNING created
`
	var created time.Time
	row := tx.QueryRowContext(ctx, query, u, name, gameType, p.ID)
	if err := row.Scan(&created); err != nil {
		rollback(tx)
		return nil, err
	}

	const query2 = `
INSERT INTO players_tables (player_id, table_uuid, seat_number, stack)
VALUES ($1, $2, 1, $3)`
	if _, err = tx.ExecContext(ctx, query2, p.ID, u, buyIn); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Table{
		UUID:     u,
		Name:     name,
		GameType: gameType,
		PlayerID: p.ID,
		Created:  created,
	}, nil
}

func getTableByRow(row db.Scanner) (*Table, error) {
	var t Table
	if err := row.Scan(&t.UUID, &t.Name, &t.GameType, &t.PlayerID, &t.Created); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, uuid string) (*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getTableByRow(row)
}

// Reload will refresh the data from the database
func (t *Table) Reload(ctx context.Context) error {
	tbl, err := GetTableByUUID(ctx, t.UUID)
	if err != nil {
		return err
	}

	*t = *tbl
	return nil
}

// GetPlayers returns all players at the table in seat order
func (t *Table) GetPlayers(ctx context.Context) ([]*PlayerTable, error) {
	const query = `
SELECT ` + playerColumns + `, ` + playerTableColumns + `
FROM players_tables
INNER JOIN players ON players_tables.player_id = players.id
WHERE players_tables.table_uuid = $1
ORDER BY players_tables.seat_number`

	rows, err := db.Instance().QueryContext(ctx, query, t.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*PlayerTable, 0)
	for rows.Next() {
		p, err := getPlayerTableByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, p)
	}

	return records, nil
}

// GetActivePlayers returns the seated players who are active and funded
func (t *Table) GetActivePlayers(ctx context.Context) ([]*PlayerTable, error) {
	players, err := t.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*PlayerTable, 0, len(players))
	for _, player := range players {
		if player.Active && player.Stack > 0 {
			active = append(active, player)
		}
	}

	return active, nil
}

// GetHandsCount returns the number of hands played at the table. The dealer
// button position is derived from it.
func (t *Table) GetHandsCount(ctx context.Context) (int64, error) {
	const query = `
SELECT COUNT(id)
FROM hands
WHERE table_uuid = $1`

	var count int64
	if err := db.Instance().QueryRowContext(ctx, query, t.UUID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
