package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// EventProbability is one row of the type-probability table. Slice
// order is the partition order of [0,1), so it must stay a slice, not
// a map.
type EventProbability struct {
	Type   EventType
	Weight float64
}

// probSumEpsilon absorbs float rounding when validating the table.
const probSumEpsilon = 1e-9

// EventCatalog is a weighted template pool. Templates carry no id;
// a fresh one is assigned at trigger time.
type EventCatalog struct {
	templates []Event
	probs     []EventProbability
}

// NewEventCatalog validates that weights are positive, sum to 1.0 and
// that every weighted type has at least one template. Violations are
// programming errors in the catalog definition, not runtime conditions.
func NewEventCatalog(templates []Event, probs []EventProbability) (*EventCatalog, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("event catalog needs at least one template")
	}
	if len(probs) == 0 {
		return nil, fmt.Errorf("event catalog needs a probability table")
	}
	sum := 0.0
	for _, p := range probs {
		if p.Weight <= 0 {
			return nil, fmt.Errorf("event type %q has non-positive weight %v", p.Type, p.Weight)
		}
		sum += p.Weight
		found := false
		for _, t := range templates {
			if t.Type == p.Type {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("event type %q has weight but no templates", p.Type)
		}
	}
	if math.Abs(sum-1.0) > probSumEpsilon {
		return nil, fmt.Errorf("event probabilities sum to %v, want 1.0", sum)
	}
	c := &EventCatalog{
		templates: make([]Event, len(templates)),
		probs:     make([]EventProbability, len(probs)),
	}
	copy(c.templates, templates)
	copy(c.probs, probs)
	return c, nil
}

// PickRandom partitions [0,1) by the probability table in declaration
// order, draws once, then picks uniformly among the templates of the
// selected type. If rounding exhausts the table the first template is
// the defined fallback. The returned event carries a fresh unique id.
func (c *EventCatalog) PickRandom(rng *rand.Rand) Event {
	draw := rng.Float64()
	cumulative := 0.0
	for _, p := range c.probs {
		cumulative += p.Weight
		if draw <= cumulative {
			ofType := c.templatesOfType(p.Type)
			ev := ofType[rng.Intn(len(ofType))]
			ev.ID = uuid.NewString()
			return ev
		}
	}
	ev := c.templates[0]
	ev.ID = uuid.NewString()
	return ev
}

func (c *EventCatalog) templatesOfType(t EventType) []Event {
	var out []Event
	for _, ev := range c.templates {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Probabilities returns a copy of the type-probability table.
func (c *EventCatalog) Probabilities() []EventProbability {
	out := make([]EventProbability, len(c.probs))
	copy(out, c.probs)
	return out
}

// DefaultEventCatalog builds the stock catalog. It panics on an invalid
// definition since that can only be a programming error.
func DefaultEventCatalog() *EventCatalog {
	c, err := NewEventCatalog(defaultEventTemplates(), defaultEventProbabilities())
	if err != nil {
		panic(err)
	}
	return c
}

func defaultEventProbabilities() []EventProbability {
	return []EventProbability{
		{Type: EventPositive, Weight: 0.25},
		{Type: EventNegative, Weight: 0.25},
		{Type: EventOpportunity, Weight: 0.20},
		{Type: EventCrisis, Weight: 0.15},
		{Type: EventNeutral, Weight: 0.15},
	}
}

func defaultEventTemplates() []Event {
	return []Event{
		{
			Title:       "Unexpected Bonus",
			Description: "Your project went well and you got a bonus at work.",
			Type:        EventPositive,
			Effect:      Effect{BalanceChange: 50000},
		},
		{
			Title:       "Inheritance",
			Description: "A distant relative left you a small inheritance.",
			Type:        EventPositive,
			Effect:      Effect{BalanceChange: 200000},
		},
		{
			Title:       "Lottery Win",
			Description: "Bought a lottery ticket with your change and won.",
			Type:        EventPositive,
			Effect:      Effect{BalanceChange: 100000},
		},
		{
			Title:       "Laptop Breakdown",
			Description: "Your work laptop died and needs urgent repair.",
			Type:        EventNegative,
			Effect:      Effect{BalanceChange: -30000},
		},
		{
			Title:       "Dental Bill",
			Description: "Emergency dental work; insurance did not cover everything.",
			Type:        EventNegative,
			Effect:      Effect{BalanceChange: -50000},
		},
		{
			Title:       "Speeding Ticket",
			Description: "A road camera caught you. Time to pay the fine.",
			Type:        EventNegative,
			Effect:      Effect{BalanceChange: -5000},
		},
		{
			Title:       "Job Offer",
			Description: "Another company offers you a better position, but it requires expensive training.",
			Type:        EventOpportunity,
			Effect:      Effect{},
			Choices: []EventChoice{
				{
					Text: "Accept the offer (costs 150k)",
					Effect: Effect{
						BalanceChange: -150000,
						SkillChange:   Skills{Programming: 20, Finance: 5},
					},
				},
				{
					Text:   "Decline and stay put",
					Effect: Effect{},
				},
			},
		},
		{
			Title:       "Crypto Crash",
			Description: "The crypto market just tanked. What do you do?",
			Type:        EventCrisis,
			Effect:      Effect{},
			Choices: []EventChoice{
				{
					Text:   "Sell everything to cut losses",
					Effect: Effect{SkillChange: Skills{Finance: -5}},
				},
				{
					Text: "Buy the dip (invest 100k)",
					Effect: Effect{
						BalanceChange: -100000,
						SkillChange:   Skills{Finance: 10},
					},
				},
				{
					Text:   "Do nothing, wait it out",
					Effect: Effect{SkillChange: Skills{Finance: 3}},
				},
			},
		},
		{
			Title:       "Free Webinar",
			Description: "You joined a free investing webinar and learned something new.",
			Type:        EventNeutral,
			Effect:      Effect{SkillChange: Skills{Finance: 3}},
		},
		{
			Title:       "Open Source Weekend",
			Description: "You spent some free time contributing to an open source project.",
			Type:        EventNeutral,
			Effect:      Effect{SkillChange: Skills{Programming: 5}},
		},
	}
}
