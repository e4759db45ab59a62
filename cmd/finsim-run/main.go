// finsim-run plays a game headlessly: it advances the configured number
// of years, optionally resolving every triggered event with its first
// choice, and saves the final snapshot. Useful for balancing the asset
// and event catalogs without the HTTP layer.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finsim/internal/config"
	"finsim/internal/game"
	"finsim/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadRunFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := game.NewEngine(logger, rand.New(rand.NewSource(seed)))

	for i := 0; i < cfg.Years; i++ {
		if ctx.Err() != nil {
			break
		}
		eng.AdvanceYear()
		if cfg.AutoResolve {
			for _, ev := range eng.PendingEvents() {
				choice := -1
				if len(ev.Choices) > 0 {
					choice = 0
				}
				eng.ResolveEvent(ev.ID, choice)
			}
		}
	}

	for _, h := range eng.History() {
		events := ""
		if len(h.MajorEvents) > 0 {
			events = fmt.Sprintf("  events=%v", h.MajorEvents)
		}
		fmt.Printf("year=%d balance=%.2f net_worth=%.2f salary=%.2f%s\n",
			h.Year, h.Balance, h.NetWorth, h.Salary, events)
	}

	st, err := store.NewFile(cfg.SaveDir)
	if err != nil {
		logger.Error("file store init failed", "err", err)
		os.Exit(1)
	}
	if err := st.Save(ctx, cfg.PlayerName, eng.Snapshot()); err != nil {
		logger.Error("snapshot save failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("saved snapshot for %q (seed %d)\n", cfg.PlayerName, seed)
}
