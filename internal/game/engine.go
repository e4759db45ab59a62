package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Engine owns the whole mutable game aggregate. All operations run to
// completion under one mutex; callers exposing the engine to multiple
// goroutines get serialized access per game for free, matching the
// one-session-one-owner model.
//
// Domain rule violations (insufficient funds, missing asset, over-sell,
// ineligible upgrade, unknown event id) are not errors: they append a
// human-readable line to the game log and leave state untouched.
// Errors are reserved for invalid input, which is a caller bug.
type Engine struct {
	mu     sync.Mutex
	log    *slog.Logger
	rng    *rand.Rand
	events *EventCatalog

	eventChance float64

	year         int
	balance      float64
	player       Player
	ledger       *Ledger
	assets       []Asset
	pending      []Event
	history      []HistoryEntry
	eventLog     []string
	priceChanges map[string]float64
}

// NewEngine starts a fresh game at the fixed starting constants.
// A nil rng gets a time-based seed; inject a seeded one for
// deterministic runs.
func NewEngine(logger *slog.Logger, rng *rand.Rand) *Engine {
	e := newEngine(logger, rng)
	e.resetLocked()
	return e
}

// NewEngineFromSnapshot restores a persisted game. Asset prices and
// pending events are reinitialized to catalog defaults: they are not
// part of the snapshot, so an unresolved event is discarded on reload.
func NewEngineFromSnapshot(snap Snapshot, logger *slog.Logger, rng *rand.Rand) *Engine {
	e := newEngine(logger, rng)
	e.year = snap.CurrentYear
	e.balance = snap.Balance
	e.player = snap.Player
	e.ledger = NewLedger(snap.Portfolio)
	e.history = make([]HistoryEntry, len(snap.History))
	copy(e.history, snap.History)
	e.assets = DefaultAssets()
	e.eventLog = []string{"Game restored from save."}
	return e
}

func newEngine(logger *slog.Logger, rng *rand.Rand) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		log:         logger,
		rng:         rng,
		events:      DefaultEventCatalog(),
		eventChance: DefaultEventChance,
	}
}

// SetEventChance overrides the per-year event trigger probability.
// Values outside [0,1] are ignored.
func (e *Engine) SetEventChance(p float64) {
	if p < 0 || p > 1 {
		return
	}
	e.mu.Lock()
	e.eventChance = p
	e.mu.Unlock()
}

// AdvanceYear runs one year transition: salary, price evolution, net
// worth, history snapshot, event cleanup, and maybe one new event.
func (e *Engine) AdvanceYear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.year++
	yearlySalary := e.player.Salary * MonthsPerYear
	e.balance += yearlySalary

	e.priceChanges = EvolvePrices(e.assets, e.rng)
	netWorth := e.balance + e.ledger.Value(e.assets)

	// History records the titles of whatever is still pending, resolved
	// or not; then the pending list is cleared. Unresolved events do not
	// carry over into the new year.
	titles := make([]string, 0, len(e.pending))
	for _, ev := range e.pending {
		titles = append(titles, ev.Title)
	}
	e.history = append(e.history, HistoryEntry{
		Year:        e.year,
		Balance:     e.balance,
		NetWorth:    netWorth,
		Salary:      e.player.Salary,
		MajorEvents: titles,
	})
	e.pending = nil

	e.logf("Year %d: salary received %s", e.year, money(yearlySalary))
	e.log.Info("year advanced", "year", e.year, "balance", e.balance, "net_worth", netWorth)

	if e.rng.Float64() < e.eventChance {
		e.triggerRandomEventLocked()
	}
}

// TriggerRandomEvent enqueues one event straight from the catalog,
// bypassing the yearly probability roll.
func (e *Engine) TriggerRandomEvent() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.triggerRandomEventLocked()
}

func (e *Engine) triggerRandomEventLocked() {
	ev := e.events.PickRandom(e.rng)
	e.pending = append(e.pending, ev)
	e.logf("Event: %s", ev.Title)
	e.log.Info("event triggered", "event_id", ev.ID, "title", ev.Title, "type", ev.Type)
}

// BuyAsset purchases qty of the asset at its current price. Unknown
// asset and insufficient funds are logged no-ops. A consumable asset
// applies its skill bonus immediately on top of entering the portfolio.
func (e *Engine) BuyAsset(assetID string, qty float64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	asset, found := AssetByID(e.assets, assetID)
	if !found {
		e.logf("Buy failed: asset %s not found", assetID)
		return nil
	}
	totalCost := asset.CurrentPrice * qty
	if e.balance < totalCost {
		e.logf("Buy failed: insufficient funds for %g x %s", qty, asset.Name)
		return nil
	}

	e.ledger.Add(assetID, qty, asset.CurrentPrice, time.Now())
	e.balance -= totalCost
	e.logf("Bought %g x %s for %s", qty, asset.Name, money(totalCost))

	if asset.Type == AssetConsumable && asset.Effects != nil {
		e.applySkillChangeLocked(asset.Effects.SkillBonus)
		e.logf("%s raised your skills", asset.Name)
	}
	return nil
}

// SellAsset sells qty of a held asset at the current market price.
// Missing position or over-sell are logged no-ops. Realized P&L is
// reported in the log only; it is not accumulated anywhere.
func (e *Engine) SellAsset(assetID string, qty float64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	asset, found := AssetByID(e.assets, assetID)
	if !found {
		e.logf("Sell failed: asset %s not found", assetID)
		return nil
	}
	if _, held := e.ledger.Position(assetID); !held {
		e.logf("Sell failed: %s is not in your portfolio", asset.Name)
		return nil
	}
	proceeds, realized, ok := e.ledger.Reduce(assetID, qty, asset.CurrentPrice)
	if !ok {
		e.logf("Sell failed: not enough %s to sell", asset.Name)
		return nil
	}
	e.balance += proceeds
	e.logf("Sold %g x %s for %s", qty, asset.Name, money(proceeds))
	if realized >= 0 {
		e.logf("Profit: %s", money(realized))
	} else {
		e.logf("Loss: %s", money(-realized))
	}
	return nil
}

// UpgradeCareer promotes the player one rung up the ladder. Promotion
// requires BOTH enough balance for the upgrade cost AND enough
// programming skill; salary is replaced by the new base (any skill
// bonus shown in views is discarded), and the player gains a fixed
// programming bonus capped at 100.
func (e *Engine) UpgradeCareer() {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, ok := NextCareer(e.player.Career)
	if !ok {
		e.logf("You are already at the top of the career ladder")
		return
	}
	if e.balance < next.UpgradeCost || e.player.Skills.Programming < next.SkillRequirement {
		e.logf("Upgrade to %s failed: insufficient funds or skill", next.Level)
		return
	}

	e.balance -= next.UpgradeCost
	e.player.Career = next.Level
	e.player.Salary = next.BaseSalary
	e.player.Skills.Programming = clampSkill(e.player.Skills.Programming + UpgradeSkillBonus)
	e.logf("Promoted to %s, new salary %s/month", next.Level, money(next.BaseSalary))
	e.log.Info("career upgraded", "level", next.Level, "salary", next.BaseSalary)
}

// ResolveEvent applies a pending event's effect and removes it from the
// pending list. For an event with choices, pass the choice index;
// choice < 0 applies the (inert) top-level effect, matching the
// no-choice path. An unknown event id is a silent no-op; an
// out-of-range choice leaves the event pending.
func (e *Engine) ResolveEvent(eventID string, choice int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, ev := range e.pending {
		if ev.ID == eventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	ev := e.pending[idx]

	effect := ev.Effect
	if choice >= 0 && len(ev.Choices) > 0 {
		if choice >= len(ev.Choices) {
			e.logf("Event %s: choice %d does not exist", ev.Title, choice)
			return
		}
		effect = ev.Choices[choice].Effect
	}

	if effect.BalanceChange != 0 {
		e.balance += effect.BalanceChange
	}
	e.applySkillChangeLocked(effect.SkillChange)

	e.pending = append(e.pending[:idx], e.pending[idx+1:]...)
	e.logf("Resolved: %s", ev.Title)
	e.log.Info("event resolved", "event_id", ev.ID, "title", ev.Title, "balance_change", effect.BalanceChange)
}

// Skills from events and consumables are not hard-clamped; only the
// career upgrade bonus is.
func (e *Engine) applySkillChangeLocked(change Skills) {
	e.player.Skills.Programming += change.Programming
	e.player.Skills.Finance += change.Finance
	e.player.Skills.Luck += change.Luck
}

// AddMoney credits the balance. Non-positive amounts are rejected.
func (e *Engine) AddMoney(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.balance += amount
	e.logf("Received %s", money(amount))
	return nil
}

// SpendMoney debits the balance; insufficient funds is a logged no-op.
func (e *Engine) SpendMoney(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.balance < amount {
		e.logf("Spend failed: insufficient funds")
		return nil
	}
	e.balance -= amount
	e.logf("Spent %s", money(amount))
	return nil
}

// ResetGame replaces the whole aggregate with the fixed starting
// state. Calling it repeatedly yields identical state every time.
func (e *Engine) ResetGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	player := DefaultPlayer()
	e.year = StartingYear
	e.balance = StartingBalance
	e.player = player
	e.ledger = NewLedger(nil)
	e.assets = DefaultAssets()
	e.pending = nil
	e.priceChanges = nil
	e.history = []HistoryEntry{
		{
			Year:        StartingYear,
			Balance:     StartingBalance,
			NetWorth:    StartingBalance,
			Salary:      player.Salary,
			MajorEvents: []string{"Game started"},
		},
	}
	e.eventLog = []string{"Welcome to the financial simulator!"}
}

func (e *Engine) CurrentYear() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.year
}

func (e *Engine) Balance() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance
}

// NetWorth is cash plus the market value of all held positions.
func (e *Engine) NetWorth() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance + e.ledger.Value(e.assets)
}

func (e *Engine) Player() Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player
}

func (e *Engine) Portfolio() []PortfolioItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Items()
}

func (e *Engine) Assets() []Asset {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Asset, len(e.assets))
	copy(out, e.assets)
	return out
}

func (e *Engine) PendingEvents() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.pending))
	copy(out, e.pending)
	return out
}

func (e *Engine) History() []HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]HistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Engine) Log() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.eventLog))
	copy(out, e.eventLog)
	return out
}

// PriceChanges returns last year's realized percent change per asset.
func (e *Engine) PriceChanges() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]float64, len(e.priceChanges))
	for k, v := range e.priceChanges {
		out[k] = v
	}
	return out
}

// Snapshot captures the persisted subset of the aggregate.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := make([]HistoryEntry, len(e.history))
	copy(history, e.history)
	return Snapshot{
		CurrentYear: e.year,
		Balance:     e.balance,
		Player:      e.player,
		Portfolio:   e.ledger.Items(),
		History:     history,
	}
}

// StateView assembles the dashboard projection of the aggregate.
func (e *Engine) StateView() StateView {
	e.mu.Lock()
	defer e.mu.Unlock()

	positions := make([]PositionView, 0, len(e.ledger.items))
	for _, it := range e.ledger.Items() {
		pos := PositionView{
			AssetID:  it.AssetID,
			Name:     it.AssetID,
			Quantity: it.Quantity,
			AvgPrice: it.PurchasePrice,
		}
		if a, found := AssetByID(e.assets, it.AssetID); found {
			pos.Name = a.Name
			pos.CurrentPrice = a.CurrentPrice
			pos.MarketValue = a.CurrentPrice * it.Quantity
			pos.Unrealized = (a.CurrentPrice - it.PurchasePrice) * it.Quantity
		}
		positions = append(positions, pos)
	}

	pending := make([]Event, len(e.pending))
	copy(pending, e.pending)

	return StateView{
		CurrentYear:     e.year,
		Balance:         e.balance,
		NetWorth:        e.balance + e.ledger.Value(e.assets),
		Salary:          e.player.Salary,
		SalaryWithBonus: SalaryWithBonus(e.player.Salary, e.player.Skills.Programming),
		Player:          e.player,
		Positions:       positions,
		PendingEvents:   pending,
	}
}

// AssetViews decorates the catalog with ownership and last-change data.
func (e *Engine) AssetViews() []AssetView {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]AssetView, 0, len(e.assets))
	for _, a := range e.assets {
		view := AssetView{
			Asset:         a,
			ChangePct:     e.priceChanges[a.ID],
			ExpectedPrice: ExpectedPrice(a, 1),
		}
		if pos, held := e.ledger.Position(a.ID); held {
			view.OwnedQuantity = pos.Quantity
		}
		out = append(out, view)
	}
	return out
}

func (e *Engine) logf(format string, args ...any) {
	e.eventLog = append(e.eventLog, fmt.Sprintf(format, args...))
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
