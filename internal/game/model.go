package game

import (
	"errors"
	"math"
)

const (
	StartingYear    = 2024
	StartingBalance = 500000.0
	MonthsPerYear   = 12

	// Chance that advancing a year triggers a random event.
	DefaultEventChance = 0.30

	// MinAssetPrice floors price evolution; a zero price would break
	// percentage P&L math downstream.
	MinAssetPrice = 1.0

	SkillCap          = 100.0
	UpgradeSkillBonus = 10.0
)

var (
	ErrInvalidQuantity = errors.New("quantity must be > 0")
	ErrInvalidAmount   = errors.New("amount must be > 0")
	ErrUnknownOp       = errors.New("unknown wallet operation")
)

func DefaultPlayer() Player {
	return Player{
		ID:     "player-1",
		Name:   "Investor",
		Age:    25,
		Career: CareerJunior,
		Salary: 80000,
		Skills: Skills{
			Programming: 50,
			Finance:     30,
			Luck:        50,
		},
	}
}

func clampSkill(v float64) float64 {
	if v > SkillCap {
		return SkillCap
	}
	return v
}

// SalaryWithBonus returns the skill-adjusted salary shown in views.
// The stored salary stays at the career base; upgrades replace it.
func SalaryWithBonus(baseSalary, programmingSkill float64) float64 {
	multiplier := 1 + math.Floor(programmingSkill/10)*0.05
	return math.Round(baseSalary * multiplier)
}
