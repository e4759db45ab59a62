package game

import (
	"math"
	"math/rand"
)

// DefaultAssets returns the starting market catalog. Prices are
// catalog defaults; a running game carries its own evolved copies.
func DefaultAssets() []Asset {
	return []Asset{
		{
			ID:            "apple-stock",
			Name:          "Apple Shares",
			Type:          AssetStock,
			CurrentPrice:  150,
			Volatility:    0.3,
			Trend:         0.2,
			Description:   "Blue-chip tech stock. Moderate risk, steady growth.",
			Category:      "tech",
			DividendYield: 0.015,
		},
		{
			ID:           "bitcoin",
			Name:         "Bitcoin",
			Type:         AssetCrypto,
			CurrentPrice: 50000,
			Volatility:   0.8,
			Trend:        0.1,
			Description:  "Highly volatile cryptocurrency. High risk, high potential return.",
			Category:     "crypto",
		},
		{
			ID:           "downtown-apartment",
			Name:         "Downtown Apartment",
			Type:         AssetRealEstate,
			CurrentPrice: 5000000,
			Volatility:   0.2,
			Trend:        0.3,
			Description:  "City-center property. Low risk, steady growth plus rental income.",
			Category:     "real_estate",
			RentalYield:  0.05,
		},
		{
			ID:           "programming-course",
			Name:         "Programming Courses",
			Type:         AssetConsumable,
			CurrentPrice: 100000,
			Volatility:   0.1,
			Trend:        0.9,
			Description:  "Invest in yourself. Raises programming skill and speeds up career growth.",
			Category:     "education",
			Effects: &AssetEffects{
				SkillBonus:  Skills{Programming: 15},
				CareerBoost: 0.3,
			},
		},
		{
			ID:           "bank-deposit",
			Name:         "Bank Deposit",
			Type:         AssetBank,
			CurrentPrice: 1,
			Volatility:   0.05,
			Trend:        0.1,
			Description:  "Safe but slow. For conservative investors.",
			Category:     "bank",
			InterestRate: 0.08,
		},
		{
			ID:           "tesla-stock",
			Name:         "Tesla Shares",
			Type:         AssetStock,
			CurrentPrice: 200,
			Volatility:   0.5,
			Trend:        0.4,
			Description:  "Growth stock. High volatility, high upside.",
			Category:     "tech",
		},
		{
			ID:           "ethereum",
			Name:         "Ethereum",
			Type:         AssetCrypto,
			CurrentPrice: 3000,
			Volatility:   0.7,
			Trend:        0.25,
			Description:  "Second-largest cryptocurrency. Smart-contract platform.",
			Category:     "crypto",
		},
		{
			ID:           "finance-course",
			Name:         "Finance Courses",
			Type:         AssetConsumable,
			CurrentPrice: 75000,
			Volatility:   0.05,
			Trend:        0.8,
			Description:  "Fundamentals of investing and money management.",
			Category:     "education",
			Effects: &AssetEffects{
				SkillBonus: Skills{Finance: 20},
			},
		},
	}
}

// AssetByID does a linear scan; catalogs are tens of assets at most.
// Absence is a recoverable condition for callers, not an error.
func AssetByID(assets []Asset, id string) (Asset, bool) {
	for _, a := range assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// EvolvePrices advances every asset price by one year:
//
//	next = max(1, price * (1 + trend*0.1 + U(-0.5,0.5)*volatility))
//
// Trend contributes compounding drift scaled by 0.1; volatility scales
// symmetric uniform noise. Floor of 1, no ceiling. Returns the realized
// percent change per asset id.
func EvolvePrices(assets []Asset, rng *rand.Rand) map[string]float64 {
	changes := make(map[string]float64, len(assets))
	for i := range assets {
		old := assets[i].CurrentPrice
		noise := (rng.Float64() - 0.5) * assets[i].Volatility
		next := old * (1 + assets[i].Trend*0.1 + noise)
		if next < MinAssetPrice {
			next = MinAssetPrice
		}
		assets[i].CurrentPrice = next
		if old > 0 {
			changes[assets[i].ID] = (next - old) / old * 100
		}
	}
	return changes
}

// ExpectedPrice projects the drift-only price after the given number of
// years, ignoring noise. Display helper.
func ExpectedPrice(a Asset, years int) float64 {
	return a.CurrentPrice * math.Pow(1+a.Trend*0.1, float64(years))
}
