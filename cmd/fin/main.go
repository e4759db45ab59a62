package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "finsim/internal/cli"
	"finsim/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "fin",
		Short:        "Financial life simulator CLI client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newStartCmd(&apiBase),
		newStatusCmd(&apiBase),
		newAssetsCmd(&apiBase),
		newBuyCmd(&apiBase),
		newSellCmd(&apiBase),
		newAdvanceCmd(&apiBase),
		newCareerCmd(&apiBase),
		newEventsCmd(&apiBase),
		newResolveCmd(&apiBase),
		newHistoryCmd(&apiBase),
		newLogCmd(&apiBase),
		newWalletCmd(&apiBase),
		newResetCmd(&apiBase),
		newQuitCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func activeSession() (cl.Session, error) {
	return cl.LoadSession()
}

func newStartCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start [player-name]",
		Short: "Start (or resume) a game for a player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = strings.TrimSpace(args[0])
			}
			if name == "" {
				var err error
				name, err = promptRequired("Player name")
				if err != nil {
					return err
				}
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			raw, err := client.NewGame(ctx, name)
			if err != nil {
				return err
			}
			created, err := decodeInto[gameCreatedPayload](raw)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{GameID: created.GameID, PlayerName: name}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Game ready for %s. Session saved.", name))
			return renderState(created.State)
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current year, balance, career and portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).State(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return renderStatePayload(raw)
		},
	}
}

func newAssetsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "List the asset market",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).Assets(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return renderAssets(raw)
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy [asset-id] [quantity]",
		Short: "Buy an asset",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, apiBase, "buy", args)
		},
	}
}

func newSellCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sell [asset-id] [quantity]",
		Short: "Sell an asset you hold",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, apiBase, "sell", args)
		},
	}
}

func runOrder(cmd *cobra.Command, apiBase *string, side string, args []string) error {
	sess, err := activeSession()
	if err != nil {
		return err
	}

	assetID := ""
	if len(args) > 0 {
		assetID = strings.TrimSpace(args[0])
	}
	if assetID == "" {
		assetID, err = promptRequired("Asset ID")
		if err != nil {
			return err
		}
	}

	qty := 0.0
	if len(args) > 1 {
		qty, err = strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
	}
	if qty <= 0 {
		qty, err = promptFloat("Quantity", 0)
		if err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	raw, err := newClient(apiBase).PlaceOrder(ctx, sess.GameID, assetID, side, qty)
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Order sent: %s %.4f x %s", strings.ToUpper(side), qty, assetID))
	return renderStatePayload(raw)
}

func newAdvanceCmd(apiBase *string) *cobra.Command {
	var years int
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Advance the simulation by one or more years",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			if years < 1 {
				years = 1
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			client := newClient(apiBase)
			var raw map[string]any
			for i := 0; i < years; i++ {
				raw, err = client.Advance(ctx, sess.GameID)
				if err != nil {
					return err
				}
			}
			return renderStatePayload(raw)
		},
	}
	cmd.Flags().IntVarP(&years, "years", "y", 1, "number of years to advance")
	return cmd
}

func newCareerCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Show the career ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).CareerLadder(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return renderCareerLadder(raw)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "upgrade",
		Short: "Attempt a promotion to the next career level",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).UpgradeCareer(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return renderStatePayload(raw)
		},
	})
	return cmd
}

func newEventsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List pending events",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).Events(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return renderEvents(raw)
		},
	}
}

func newResolveCmd(apiBase *string) *cobra.Command {
	var choice int
	cmd := &cobra.Command{
		Use:   "resolve [event-id]",
		Short: "Resolve a pending event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).ResolveEvent(ctx, sess.GameID, strings.TrimSpace(args[0]), choice)
			if err != nil {
				return err
			}
			return renderStatePayload(raw)
		},
	}
	cmd.Flags().IntVarP(&choice, "choice", "c", -1, "choice index for events with options")
	return cmd
}

func newHistoryCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the per-year history",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).History(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return renderHistory(raw)
		},
	}
}

func newLogCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the game event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).Log(ctx, sess.GameID)
			if err != nil {
				return err
			}
			return renderLog(raw)
		},
	}
}

func newWalletCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Deposit or spend cash outside the market",
	}
	for _, op := range []string{"deposit", "spend"} {
		op := op
		cmd.AddCommand(&cobra.Command{
			Use:   op + " [amount]",
			Short: strings.ToUpper(op[:1]) + op[1:] + " an amount of cash",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sess, err := activeSession()
				if err != nil {
					return err
				}
				amount, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
				if err != nil || amount <= 0 {
					return fmt.Errorf("invalid amount %q", args[0])
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				raw, err := newClient(apiBase).Wallet(ctx, sess.GameID, op, amount)
				if err != nil {
					return err
				}
				return renderStatePayload(raw)
			},
		})
	}
	return cmd
}

func newResetCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the game back to the starting year",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession()
			if err != nil {
				return err
			}
			answer, err := promptChoice("Reset wipes all progress. Continue?", []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if answer != "yes" {
				printInfo("Reset cancelled.")
				return nil
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).Reset(ctx, sess.GameID)
			if err != nil {
				return err
			}
			printSuccess("Game reset.")
			return renderStatePayload(raw)
		},
	}
}

func newQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Forget the saved session on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Session cleared.")
			return nil
		},
	}
}
