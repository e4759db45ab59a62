package game

import "time"

// Ledger tracks held positions, one entry per asset id while its
// quantity is above zero.
type Ledger struct {
	items []PortfolioItem
}

func NewLedger(items []PortfolioItem) *Ledger {
	l := &Ledger{items: make([]PortfolioItem, len(items))}
	copy(l.items, items)
	return l
}

func (l *Ledger) Items() []PortfolioItem {
	out := make([]PortfolioItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Position(assetID string) (PortfolioItem, bool) {
	for _, it := range l.items {
		if it.AssetID == assetID {
			return it, true
		}
	}
	return PortfolioItem{}, false
}

// Add merges a purchase into the ledger. An existing position gets the
// quantity-weighted average cost:
//
//	newAvg = (oldAvg*oldQty + price*qty) / (oldQty + qty)
//
// The balance side of a buy is handled by the caller so both sides
// change together.
func (l *Ledger) Add(assetID string, qty, price float64, at time.Time) {
	for i := range l.items {
		if l.items[i].AssetID == assetID {
			oldQty := l.items[i].Quantity
			oldAvg := l.items[i].PurchasePrice
			newQty := oldQty + qty
			l.items[i].PurchasePrice = (oldAvg*oldQty + price*qty) / newQty
			l.items[i].Quantity = newQty
			return
		}
	}
	l.items = append(l.items, PortfolioItem{
		AssetID:       assetID,
		Quantity:      qty,
		PurchasePrice: price,
		PurchaseDate:  at,
	})
}

// Reduce sells qty at the given price. Returns the proceeds and the
// realized P&L against average cost, or ok=false when the position is
// absent or too small. A full liquidation removes the entry; a partial
// sale leaves the average cost untouched.
func (l *Ledger) Reduce(assetID string, qty, price float64) (proceeds, realized float64, ok bool) {
	for i := range l.items {
		if l.items[i].AssetID != assetID {
			continue
		}
		if l.items[i].Quantity < qty {
			return 0, 0, false
		}
		proceeds = price * qty
		realized = (price - l.items[i].PurchasePrice) * qty
		if l.items[i].Quantity == qty {
			l.items = append(l.items[:i], l.items[i+1:]...)
		} else {
			l.items[i].Quantity -= qty
		}
		return proceeds, realized, true
	}
	return 0, 0, false
}

// Value prices all positions against the given assets. Positions whose
// asset is no longer in the catalog contribute zero.
func (l *Ledger) Value(assets []Asset) float64 {
	total := 0.0
	for _, it := range l.items {
		if a, found := AssetByID(assets, it.AssetID); found {
			total += a.CurrentPrice * it.Quantity
		}
	}
	return total
}
