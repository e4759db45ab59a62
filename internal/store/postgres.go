package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finsim/internal/game"
)

// Postgres keeps one jsonb snapshot row per player.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the saves table if it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_saves (
			player_name text PRIMARY KEY,
			snapshot    jsonb NOT NULL,
			updated_at  timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, playerName string) (game.Snapshot, error) {
	var raw []byte
	err := p.db.QueryRow(ctx, `
		SELECT snapshot
		FROM game_saves
		WHERE player_name = $1
	`, playerName).Scan(&raw)
	if err == pgx.ErrNoRows {
		return game.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return game.Snapshot{}, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (p *Postgres) Save(ctx context.Context, playerName string, snap game.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO game_saves (player_name, snapshot, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (player_name) DO UPDATE
		SET snapshot = EXCLUDED.snapshot, updated_at = now()
	`, playerName, string(raw))
	return err
}
