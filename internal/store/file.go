package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"finsim/internal/game"
)

// File stores one JSON snapshot per player in a directory. Used by the
// local/offline modes and as the server fallback when no database is
// configured.
type File struct {
	dir string
}

// NewFile uses the given directory, or ~/.finsim/saves when empty.
func NewFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".finsim", "saves")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) Load(_ context.Context, playerName string) (game.Snapshot, error) {
	raw, err := os.ReadFile(f.path(playerName))
	if err != nil {
		if os.IsNotExist(err) {
			return game.Snapshot{}, ErrNotFound
		}
		return game.Snapshot{}, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return game.Snapshot{}, err
	}
	return snap, nil
}

func (f *File) Save(_ context.Context, playerName string, snap game.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(playerName), raw, 0o600)
}

func (f *File) path(playerName string) string {
	return filepath.Join(f.dir, sanitizeName(playerName)+".json")
}

// File names come from user input; keep them to a safe character set.
func sanitizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "player"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
