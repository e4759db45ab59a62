package game

import (
	"math"
	"testing"
	"time"
)

func TestLedgerWeightedAverage(t *testing.T) {
	l := NewLedger(nil)
	l.Add("apple-stock", 10, 100, time.Now())
	l.Add("apple-stock", 10, 200, time.Now())

	pos, held := l.Position("apple-stock")
	if !held {
		t.Fatalf("expected position after buys")
	}
	if pos.Quantity != 20 {
		t.Fatalf("quantity got %v want 20", pos.Quantity)
	}
	if pos.PurchasePrice != 150 {
		t.Fatalf("avg cost got %v want 150", pos.PurchasePrice)
	}
}

func TestLedgerWeightedAverageUneven(t *testing.T) {
	l := NewLedger(nil)
	l.Add("bitcoin", 1, 50000, time.Now())
	l.Add("bitcoin", 3, 30000, time.Now())

	pos, _ := l.Position("bitcoin")
	want := (50000.0 + 3*30000.0) / 4
	if math.Abs(pos.PurchasePrice-want) > 1e-9 {
		t.Fatalf("avg cost got %v want %v", pos.PurchasePrice, want)
	}
}

func TestLedgerPartialSaleKeepsAverage(t *testing.T) {
	l := NewLedger(nil)
	l.Add("tesla-stock", 10, 200, time.Now())

	proceeds, realized, ok := l.Reduce("tesla-stock", 4, 250)
	if !ok {
		t.Fatalf("expected sale to succeed")
	}
	if proceeds != 1000 {
		t.Fatalf("proceeds got %v want 1000", proceeds)
	}
	if realized != 200 {
		t.Fatalf("realized got %v want 200", realized)
	}

	pos, held := l.Position("tesla-stock")
	if !held {
		t.Fatalf("expected remaining position")
	}
	if pos.Quantity != 6 {
		t.Fatalf("quantity got %v want 6", pos.Quantity)
	}
	if pos.PurchasePrice != 200 {
		t.Fatalf("avg cost changed on partial sale: got %v", pos.PurchasePrice)
	}
}

func TestLedgerFullSaleRemovesEntry(t *testing.T) {
	l := NewLedger(nil)
	l.Add("ethereum", 2, 3000, time.Now())

	if _, _, ok := l.Reduce("ethereum", 2, 2500); !ok {
		t.Fatalf("expected sale to succeed")
	}
	if _, held := l.Position("ethereum"); held {
		t.Fatalf("expected position removed after full liquidation")
	}
	if len(l.Items()) != 0 {
		t.Fatalf("expected empty ledger, got %d items", len(l.Items()))
	}
}

func TestLedgerOversellFails(t *testing.T) {
	l := NewLedger(nil)
	l.Add("apple-stock", 5, 150, time.Now())

	if _, _, ok := l.Reduce("apple-stock", 6, 150); ok {
		t.Fatalf("expected oversell to fail")
	}
	pos, _ := l.Position("apple-stock")
	if pos.Quantity != 5 {
		t.Fatalf("oversell mutated position: qty %v", pos.Quantity)
	}

	if _, _, ok := l.Reduce("never-bought", 1, 10); ok {
		t.Fatalf("expected sale of absent position to fail")
	}
}

func TestLedgerValueSkipsUnknownAssets(t *testing.T) {
	l := NewLedger(nil)
	l.Add("apple-stock", 10, 150, time.Now())
	l.Add("delisted", 100, 1, time.Now())

	assets := []Asset{{ID: "apple-stock", CurrentPrice: 160}}
	if got := l.Value(assets); got != 1600 {
		t.Fatalf("value got %v want 1600", got)
	}
}
