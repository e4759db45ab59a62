package game

import "time"

type CareerLevel string

const (
	CareerIntern   CareerLevel = "intern"
	CareerJunior   CareerLevel = "junior"
	CareerMiddle   CareerLevel = "middle"
	CareerSenior   CareerLevel = "senior"
	CareerLead     CareerLevel = "lead"
	CareerDirector CareerLevel = "director"
)

type AssetType string

const (
	AssetStock      AssetType = "stock"
	AssetCrypto     AssetType = "crypto"
	AssetRealEstate AssetType = "real_estate"
	AssetConsumable AssetType = "consumable"
	AssetBank       AssetType = "bank"
)

type EventType string

const (
	EventPositive    EventType = "positive"
	EventNegative    EventType = "negative"
	EventNeutral     EventType = "neutral"
	EventCrisis      EventType = "crisis"
	EventOpportunity EventType = "opportunity"
)

type Skills struct {
	Programming float64 `json:"programming"`
	Finance     float64 `json:"finance"`
	Luck        float64 `json:"luck"`
}

type Player struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Age    int         `json:"age"`
	Career CareerLevel `json:"career"`
	Salary float64     `json:"salary"`
	Skills Skills      `json:"skills"`
}

// AssetEffects describes what a consumable asset does to the player
// at purchase time.
type AssetEffects struct {
	SkillBonus  Skills  `json:"skill_bonus"`
	CareerBoost float64 `json:"career_boost,omitempty"`
}

type Asset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         AssetType `json:"type"`
	CurrentPrice float64   `json:"current_price"`
	Volatility   float64   `json:"volatility"`
	Trend        float64   `json:"trend"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`

	// Yield fields are surfaced in views only; year advancement does
	// not auto-apply them.
	DividendYield float64 `json:"dividend_yield,omitempty"`
	RentalYield   float64 `json:"rental_yield,omitempty"`
	InterestRate  float64 `json:"interest_rate,omitempty"`

	Effects *AssetEffects `json:"effects,omitempty"`
}

// PortfolioItem holds one position. PurchasePrice is the
// quantity-weighted average cost basis, not a lot-level history.
type PortfolioItem struct {
	AssetID       string    `json:"asset_id"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	PurchaseDate  time.Time `json:"purchase_date"`
}

type Effect struct {
	BalanceChange float64 `json:"balance_change,omitempty"`
	SkillChange   Skills  `json:"skill_change"`
}

type EventChoice struct {
	Text   string `json:"text"`
	Effect Effect `json:"effect"`
}

// Event is a triggered game event awaiting resolution. If Choices is
// non-empty the top-level Effect is inert and each choice carries its own.
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        EventType     `json:"type"`
	Effect      Effect        `json:"effect"`
	Choices     []EventChoice `json:"choices,omitempty"`
}

type HistoryEntry struct {
	Year        int      `json:"year"`
	Balance     float64  `json:"balance"`
	NetWorth    float64  `json:"net_worth"`
	Salary      float64  `json:"salary"`
	MajorEvents []string `json:"major_events"`
}

// Snapshot is the persisted shape of a game. Available assets and
// pending events are deliberately absent: a restored game starts from
// catalog default prices with no pending event.
type Snapshot struct {
	CurrentYear int             `json:"current_year"`
	Balance     float64         `json:"balance"`
	Player      Player          `json:"player"`
	Portfolio   []PortfolioItem `json:"portfolio"`
	History     []HistoryEntry  `json:"history"`
}

type PositionView struct {
	AssetID      string  `json:"asset_id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	AvgPrice     float64 `json:"avg_price"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	Unrealized   float64 `json:"unrealized"`
}

type AssetView struct {
	Asset
	OwnedQuantity float64 `json:"owned_quantity"`
	ChangePct     float64 `json:"change_pct"`
	ExpectedPrice float64 `json:"expected_price"`
}

type StateView struct {
	CurrentYear     int            `json:"current_year"`
	Balance         float64        `json:"balance"`
	NetWorth        float64        `json:"net_worth"`
	Salary          float64        `json:"salary"`
	SalaryWithBonus float64        `json:"salary_with_bonus"`
	Player          Player         `json:"player"`
	Positions       []PositionView `json:"positions"`
	PendingEvents   []Event        `json:"pending_events"`
}
