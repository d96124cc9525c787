package table

import (
	"context"
	"time"

	"cardroom-server/pkg/db"
)

const playerColumns = `
players.id,
players.display_name,
players.bankroll,
players.created,
players.updated`

// Player is a record in the `players` table
type Player struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Bankroll    int       `json:"bankroll"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.DisplayName, &player.Bankroll, &player.Created, &player.Updated); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player with a starting bankroll
func CreatePlayer(ctx context.Context, displayName string, bankroll int) (*Player, error) {
	const query = `
INSERT INTO players (display_name, bankroll)
VALUES ($1, $2)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, displayName, bankroll)
	return getPlayerByRow(row)
}

// GetPlayerByID returns player based on the ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// Save will persist any changes made to the player to the database
func (p *Player) Save(ctx context.Context) error {
	const query = `
UPDATE players
SET display_name = $1,
    bankroll = $2,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $3`

	_, err := db.Instance().ExecContext(ctx, query, p.DisplayName, p.Bankroll, p.ID)
	return err
}
