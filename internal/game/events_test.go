package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewEventCatalogValidation(t *testing.T) {
	templates := []Event{{Title: "t", Type: EventPositive}}

	if _, err := NewEventCatalog(nil, []EventProbability{{Type: EventPositive, Weight: 1}}); err == nil {
		t.Fatalf("expected error for empty template pool")
	}
	if _, err := NewEventCatalog(templates, nil); err == nil {
		t.Fatalf("expected error for empty probability table")
	}
	if _, err := NewEventCatalog(templates, []EventProbability{{Type: EventPositive, Weight: 0}}); err == nil {
		t.Fatalf("expected error for zero weight")
	}
	if _, err := NewEventCatalog(templates, []EventProbability{{Type: EventPositive, Weight: 0.5}}); err == nil {
		t.Fatalf("expected error for weights not summing to 1")
	}
	if _, err := NewEventCatalog(templates, []EventProbability{
		{Type: EventPositive, Weight: 0.5},
		{Type: EventCrisis, Weight: 0.5},
	}); err == nil {
		t.Fatalf("expected error for weighted type without templates")
	}

	if _, err := NewEventCatalog(templates, []EventProbability{{Type: EventPositive, Weight: 1}}); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}
}

func TestDefaultEventProbabilitiesSumToOne(t *testing.T) {
	sum := 0.0
	for _, p := range DefaultEventCatalog().Probabilities() {
		sum += p.Weight
	}
	if math.Abs(sum-1.0) > probSumEpsilon {
		t.Fatalf("weights sum to %v want 1.0", sum)
	}
}

func TestPickRandomDistribution(t *testing.T) {
	c := DefaultEventCatalog()
	rng := rand.New(rand.NewSource(42))

	const draws = 10000
	counts := make(map[EventType]int)
	for i := 0; i < draws; i++ {
		ev := c.PickRandom(rng)
		counts[ev.Type]++
	}

	for _, p := range c.Probabilities() {
		got := float64(counts[p.Type]) / draws
		if math.Abs(got-p.Weight) > 0.03 {
			t.Fatalf("type %s frequency %v out of tolerance for weight %v", p.Type, got, p.Weight)
		}
	}
}

func TestPickRandomAssignsFreshIDs(t *testing.T) {
	c := DefaultEventCatalog()
	rng := rand.New(rand.NewSource(1))

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ev := c.PickRandom(rng)
		if ev.ID == "" {
			t.Fatalf("picked event has no id")
		}
		if _, dup := seen[ev.ID]; dup {
			t.Fatalf("duplicate event id %s", ev.ID)
		}
		seen[ev.ID] = struct{}{}
	}
}

func TestPickRandomMatchesType(t *testing.T) {
	c := DefaultEventCatalog()
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 500; i++ {
		ev := c.PickRandom(rng)
		switch ev.Type {
		case EventPositive, EventNegative, EventNeutral, EventCrisis, EventOpportunity:
		default:
			t.Fatalf("unexpected event type %q", ev.Type)
		}
		if ev.Title == "" {
			t.Fatalf("picked event has no title")
		}
	}
}
