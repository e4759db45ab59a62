package game

// CareerConfig is one rung of the ladder. UpgradeCost and
// SkillRequirement gate the promotion INTO this level.
type CareerConfig struct {
	Level            CareerLevel `json:"level"`
	BaseSalary       float64     `json:"base_salary"`
	UpgradeCost      float64     `json:"upgrade_cost"`
	SkillRequirement float64     `json:"skill_requirement"`
	Description      string      `json:"description"`
}

var careerLadder = []CareerConfig{
	{
		Level:            CareerIntern,
		BaseSalary:       40000,
		UpgradeCost:      0,
		SkillRequirement: 0,
		Description:      "Intern. Just starting out, learning the basics.",
	},
	{
		Level:            CareerJunior,
		BaseSalary:       80000,
		UpgradeCost:      50000,
		SkillRequirement: 30,
		Description:      "Junior developer. Simple tasks under supervision.",
	},
	{
		Level:            CareerMiddle,
		BaseSalary:       150000,
		UpgradeCost:      100000,
		SkillRequirement: 50,
		Description:      "Mid-level developer. Handles most tasks independently.",
	},
	{
		Level:            CareerSenior,
		BaseSalary:       250000,
		UpgradeCost:      200000,
		SkillRequirement: 70,
		Description:      "Senior developer. Leads projects, mentors others.",
	},
	{
		Level:            CareerLead,
		BaseSalary:       400000,
		UpgradeCost:      500000,
		SkillRequirement: 85,
		Description:      "Team lead. Manages the team, owns architecture decisions.",
	},
	{
		Level:            CareerDirector,
		BaseSalary:       700000,
		UpgradeCost:      1000000,
		SkillRequirement: 95,
		Description:      "Engineering director. Strategy and org-level planning.",
	},
}

// CareerLadderConfigs returns the full ordered ladder.
func CareerLadderConfigs() []CareerConfig {
	out := make([]CareerConfig, len(careerLadder))
	copy(out, careerLadder)
	return out
}

func CareerConfigFor(level CareerLevel) (CareerConfig, bool) {
	for _, c := range careerLadder {
		if c.Level == level {
			return c, true
		}
	}
	return CareerConfig{}, false
}

// NextCareer returns the level above the given one, or false at the top
// (or for an unknown level).
func NextCareer(level CareerLevel) (CareerConfig, bool) {
	for i, c := range careerLadder {
		if c.Level == level {
			if i+1 >= len(careerLadder) {
				return CareerConfig{}, false
			}
			return careerLadder[i+1], true
		}
	}
	return CareerConfig{}, false
}

// AtMaxCareer reports whether the level is the last rung.
func AtMaxCareer(level CareerLevel) bool {
	return level == careerLadder[len(careerLadder)-1].Level
}
