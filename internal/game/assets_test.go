package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestDefaultAssetsCatalog(t *testing.T) {
	assets := DefaultAssets()
	if len(assets) != 8 {
		t.Fatalf("catalog size got %d want 8", len(assets))
	}
	seen := make(map[string]struct{})
	for _, a := range assets {
		if a.ID == "" || a.Name == "" {
			t.Fatalf("asset missing id or name: %+v", a)
		}
		if _, dup := seen[a.ID]; dup {
			t.Fatalf("duplicate asset id %s", a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.CurrentPrice < MinAssetPrice {
			t.Fatalf("asset %s starts below the price floor: %v", a.ID, a.CurrentPrice)
		}
		if a.Type == AssetConsumable && a.Effects == nil {
			t.Fatalf("consumable %s has no effects", a.ID)
		}
	}
}

func TestAssetByID(t *testing.T) {
	assets := DefaultAssets()
	if a, found := AssetByID(assets, "bitcoin"); !found || a.Name != "Bitcoin" {
		t.Fatalf("lookup failed: %+v found=%v", a, found)
	}
	if _, found := AssetByID(assets, "dogecoin"); found {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestEvolvePricesBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	assets := DefaultAssets()

	for year := 0; year < 200; year++ {
		before := make(map[string]float64, len(assets))
		for _, a := range assets {
			before[a.ID] = a.CurrentPrice
		}

		changes := EvolvePrices(assets, rng)

		for _, a := range assets {
			if a.CurrentPrice < MinAssetPrice {
				t.Fatalf("asset %s fell below floor: %v", a.ID, a.CurrentPrice)
			}
			old := before[a.ID]
			// One step is bounded by drift plus/minus half the volatility,
			// except when the floor kicks in.
			lo := old * (1 + a.Trend*0.1 - a.Volatility/2)
			hi := old * (1 + a.Trend*0.1 + a.Volatility/2)
			if a.CurrentPrice > hi+1e-9 {
				t.Fatalf("asset %s moved above bound: %v > %v", a.ID, a.CurrentPrice, hi)
			}
			if a.CurrentPrice < lo-1e-9 && a.CurrentPrice != MinAssetPrice {
				t.Fatalf("asset %s moved below bound: %v < %v", a.ID, a.CurrentPrice, lo)
			}

			wantPct := (a.CurrentPrice - old) / old * 100
			if math.Abs(changes[a.ID]-wantPct) > 1e-9 {
				t.Fatalf("asset %s change pct got %v want %v", a.ID, changes[a.ID], wantPct)
			}
		}
	}
}

func TestEvolvePricesFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// High volatility and a price near the floor: downside draws must
	// clamp at the minimum instead of going to zero or negative.
	assets := []Asset{{ID: "penny", CurrentPrice: 1.01, Volatility: 3.0, Trend: 0}}
	floored := false
	for i := 0; i < 100; i++ {
		EvolvePrices(assets, rng)
		if assets[0].CurrentPrice < MinAssetPrice {
			t.Fatalf("price below floor: %v", assets[0].CurrentPrice)
		}
		if assets[0].CurrentPrice == MinAssetPrice {
			floored = true
		}
	}
	if !floored {
		t.Fatalf("expected the floor to engage at least once")
	}
}

func TestExpectedPrice(t *testing.T) {
	a := Asset{CurrentPrice: 100, Trend: 0.2}
	if got := ExpectedPrice(a, 1); math.Abs(got-102) > 1e-9 {
		t.Fatalf("one-year projection got %v want 102", got)
	}
	if got := ExpectedPrice(a, 2); math.Abs(got-104.04) > 1e-9 {
		t.Fatalf("two-year projection got %v want 104.04", got)
	}
	if got := ExpectedPrice(a, 0); got != 100 {
		t.Fatalf("zero-year projection got %v want 100", got)
	}
}
