package store

import (
	"context"
	"errors"
	"testing"

	"finsim/internal/game"
)

func TestFileStoreRoundTrip(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	snap := game.Snapshot{
		CurrentYear: 2027,
		Balance:     123456.78,
		Player:      game.DefaultPlayer(),
		Portfolio: []game.PortfolioItem{
			{AssetID: "apple-stock", Quantity: 10, PurchasePrice: 150},
		},
		History: []game.HistoryEntry{
			{Year: 2024, Balance: 500000, NetWorth: 500000, Salary: 80000, MajorEvents: []string{"Game started"}},
		},
	}

	if err := f.Save(ctx, "Alice", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := f.Load(ctx, "Alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentYear != snap.CurrentYear || got.Balance != snap.Balance {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Portfolio) != 1 || got.Portfolio[0].AssetID != "apple-stock" {
		t.Fatalf("portfolio mismatch: %+v", got.Portfolio)
	}
	if len(got.History) != 1 || got.History[0].MajorEvents[0] != "Game started" {
		t.Fatalf("history mismatch: %+v", got.History)
	}
}

func TestFileStoreMissingPlayer(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, err := f.Load(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreNameCollisions(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	// Names differing only in case or unsafe characters map to the same
	// file; the later save wins.
	if err := f.Save(ctx, "Bob Jones", game.Snapshot{CurrentYear: 2025}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := f.Save(ctx, "bob jones", game.Snapshot{CurrentYear: 2030}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := f.Load(ctx, "BOB JONES")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentYear != 2030 {
		t.Fatalf("expected last save to win, got year %d", got.CurrentYear)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Alice", want: "alice"},
		{in: "  Bob Jones ", want: "bob_jones"},
		{in: "x/../../etc", want: "x_______etc"},
		{in: "", want: "player"},
		{in: "ok-name_1", want: "ok-name_1"},
	}
	for _, tc := range tests {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Fatalf("sanitize %q got %q want %q", tc.in, got, tc.want)
		}
	}
}
