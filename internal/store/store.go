// Package store persists game snapshots keyed by player name. Only the
// snapshot subset of the aggregate is stored; asset prices and pending
// events are rebuilt from catalog defaults on load.
package store

import (
	"context"
	"errors"

	"finsim/internal/game"
)

var ErrNotFound = errors.New("snapshot not found")

type Store interface {
	Load(ctx context.Context, playerName string) (game.Snapshot, error)
	Save(ctx context.Context, playerName string, snap game.Snapshot) error
}
