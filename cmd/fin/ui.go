package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"finsim/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

type gameCreatedPayload struct {
	GameID string         `json:"game_id"`
	State  game.StateView `json:"state"`
}

type statePayload struct {
	State game.StateView `json:"state"`
}

type assetsPayload struct {
	Assets []game.AssetView `json:"assets"`
}

type historyPayload struct {
	History []game.HistoryEntry `json:"history"`
}

type logPayload struct {
	Log []string `json:"log"`
}

type eventsPayload struct {
	Events []game.Event `json:"events"`
}

type careerPayload struct {
	Ladder  []game.CareerConfig `json:"ladder"`
	Current game.CareerLevel    `json:"current"`
}

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v <= min {
			printWarn(fmt.Sprintf("Value must be > %.4f", min))
			continue
		}
		return v, nil
	}
}

func renderStatePayload(raw map[string]any) error {
	payload, err := decodeInto[statePayload](raw)
	if err != nil {
		return err
	}
	return renderState(payload.State)
}

func renderState(st game.StateView) error {
	accent.Printf("\n== YEAR %d ==\n", st.CurrentYear)
	fmt.Printf("Player:      %s (%s, age %d)\n", st.Player.Name, st.Player.Career, st.Player.Age)
	fmt.Printf("Balance:     $%s\n", formatMoney(st.Balance))
	fmt.Printf("Net Worth:   $%s\n", formatMoney(st.NetWorth))
	fmt.Printf("Salary:      $%s/yr", formatMoney(st.Salary))
	if st.SalaryWithBonus > st.Salary {
		fmt.Printf(" ($%s with skill bonus)", formatMoney(st.SalaryWithBonus))
	}
	fmt.Println()
	fmt.Printf("Skills:      prog=%.0f fin=%.0f luck=%.0f\n",
		st.Player.Skills.Programming, st.Player.Skills.Finance, st.Player.Skills.Luck)

	fmt.Println()
	accent.Println("Portfolio")
	if len(st.Positions) == 0 {
		printInfo("No positions yet.")
	} else {
		fmt.Printf("%-22s %-24s %10s %12s %12s %14s %14s\n", "ASSET", "NAME", "QTY", "AVG", "NOW", "VALUE", "P/L")
		for _, p := range st.Positions {
			fmt.Printf("%-22s %-24s %10.4f %12s %12s %14s %14s\n",
				p.AssetID,
				truncate(p.Name, 24),
				p.Quantity,
				formatMoney(p.AvgPrice),
				formatMoney(p.CurrentPrice),
				formatMoney(p.MarketValue),
				colorizeMoney(p.Unrealized),
			)
		}
	}

	if len(st.PendingEvents) > 0 {
		fmt.Println()
		warn.Printf("%d event(s) pending. Run `fin events` to see them.\n", len(st.PendingEvents))
	}
	fmt.Println()
	return nil
}

func renderAssets(raw map[string]any) error {
	payload, err := decodeInto[assetsPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== ASSET MARKET ==")
	if len(payload.Assets) == 0 {
		printInfo("No assets found.")
		return nil
	}
	fmt.Printf("%-22s %-24s %-12s %12s %9s %10s\n", "ID", "NAME", "TYPE", "PRICE", "CHANGE", "OWNED")
	for _, a := range payload.Assets {
		fmt.Printf("%-22s %-24s %-12s %12s %9s %10.4f\n",
			a.ID,
			truncate(a.Name, 24),
			string(a.Type),
			formatMoney(a.CurrentPrice),
			colorizePercent(a.ChangePct),
			a.OwnedQuantity,
		)
	}
	fmt.Println()
	return nil
}

func renderHistory(raw map[string]any) error {
	payload, err := decodeInto[historyPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== HISTORY ==")
	if len(payload.History) == 0 {
		printInfo("No history yet.")
		return nil
	}
	fmt.Printf("%-6s %16s %16s %14s  %s\n", "YEAR", "BALANCE", "NET WORTH", "SALARY", "EVENTS")
	for _, h := range payload.History {
		fmt.Printf("%-6d %16s %16s %14s  %s\n",
			h.Year,
			formatMoney(h.Balance),
			formatMoney(h.NetWorth),
			formatMoney(h.Salary),
			truncate(strings.Join(h.MajorEvents, "; "), 48),
		)
	}
	fmt.Println()
	return nil
}

func renderLog(raw map[string]any) error {
	payload, err := decodeInto[logPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== GAME LOG ==")
	if len(payload.Log) == 0 {
		printInfo("Log is empty.")
		return nil
	}
	for _, line := range payload.Log {
		fmt.Println("  " + line)
	}
	fmt.Println()
	return nil
}

func renderEvents(raw map[string]any) error {
	payload, err := decodeInto[eventsPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== PENDING EVENTS ==")
	if len(payload.Events) == 0 {
		printInfo("Nothing pending.")
		return nil
	}
	for _, ev := range payload.Events {
		fmt.Println()
		fmt.Printf("[%s] %s (%s)\n", ev.ID, ev.Title, string(ev.Type))
		fmt.Println("  " + ev.Description)
		if len(ev.Choices) == 0 {
			fmt.Printf("  Effect: %s\n", describeEffect(ev.Effect))
			fmt.Printf("  Resolve with: fin resolve %s\n", ev.ID)
			continue
		}
		for i, ch := range ev.Choices {
			fmt.Printf("  [%d] %s  (%s)\n", i, ch.Text, describeEffect(ch.Effect))
		}
		fmt.Printf("  Resolve with: fin resolve %s --choice <n>\n", ev.ID)
	}
	fmt.Println()
	return nil
}

func renderCareerLadder(raw map[string]any) error {
	payload, err := decodeInto[careerPayload](raw)
	if err != nil {
		return err
	}
	accent.Println("\n== CAREER LADDER ==")
	fmt.Printf("%-12s %14s %14s %8s  %s\n", "LEVEL", "SALARY", "COST", "SKILL", "")
	for _, c := range payload.Ladder {
		marker := ""
		if c.Level == payload.Current {
			marker = success.Sprint("<- you")
		}
		fmt.Printf("%-12s %14s %14s %8.0f  %s\n",
			string(c.Level),
			formatMoney(c.BaseSalary),
			formatMoney(c.UpgradeCost),
			c.SkillRequirement,
			marker,
		)
	}
	fmt.Println()
	return nil
}

func describeEffect(e game.Effect) string {
	parts := []string{}
	if e.BalanceChange != 0 {
		parts = append(parts, fmt.Sprintf("%s$%s", signOf(e.BalanceChange), formatMoney(abs(e.BalanceChange))))
	}
	if e.SkillChange.Programming != 0 {
		parts = append(parts, fmt.Sprintf("prog %+.0f", e.SkillChange.Programming))
	}
	if e.SkillChange.Finance != 0 {
		parts = append(parts, fmt.Sprintf("fin %+.0f", e.SkillChange.Finance))
	}
	if e.SkillChange.Luck != 0 {
		parts = append(parts, fmt.Sprintf("luck %+.0f", e.SkillChange.Luck))
	}
	if len(parts) == 0 {
		return "no effect"
	}
	return strings.Join(parts, ", ")
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func colorizeMoney(v float64) string {
	text := signOf(v) + formatMoney(abs(v))
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	frac := int64((v-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}
	return fmt.Sprintf("%s%s.%02d", sign, comma(whole), frac)
}

func signOf(v float64) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
