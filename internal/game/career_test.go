package game

import "testing"

func TestCareerLadderOrder(t *testing.T) {
	ladder := CareerLadderConfigs()
	if len(ladder) != 6 {
		t.Fatalf("ladder length got %d want 6", len(ladder))
	}
	if ladder[0].Level != CareerIntern || ladder[len(ladder)-1].Level != CareerDirector {
		t.Fatalf("unexpected ladder endpoints: %s .. %s", ladder[0].Level, ladder[len(ladder)-1].Level)
	}
	for i := 1; i < len(ladder); i++ {
		if ladder[i].BaseSalary <= ladder[i-1].BaseSalary {
			t.Fatalf("salary not increasing at %s", ladder[i].Level)
		}
		if ladder[i].UpgradeCost <= ladder[i-1].UpgradeCost {
			t.Fatalf("upgrade cost not increasing at %s", ladder[i].Level)
		}
		if ladder[i].SkillRequirement <= ladder[i-1].SkillRequirement {
			t.Fatalf("skill requirement not increasing at %s", ladder[i].Level)
		}
	}
}

func TestNextCareer(t *testing.T) {
	next, ok := NextCareer(CareerJunior)
	if !ok || next.Level != CareerMiddle {
		t.Fatalf("next of junior got %s ok=%v", next.Level, ok)
	}
	if next.UpgradeCost != 100000 || next.SkillRequirement != 50 {
		t.Fatalf("unexpected middle config: %+v", next)
	}
	if _, ok := NextCareer(CareerDirector); ok {
		t.Fatalf("director should have no next level")
	}
	if _, ok := NextCareer(CareerLevel("janitor")); ok {
		t.Fatalf("unknown level should have no next")
	}
}

func TestCareerConfigFor(t *testing.T) {
	c, ok := CareerConfigFor(CareerSenior)
	if !ok || c.BaseSalary != 250000 {
		t.Fatalf("senior config got %+v ok=%v", c, ok)
	}
	if _, ok := CareerConfigFor(CareerLevel("ceo")); ok {
		t.Fatalf("expected miss for unknown level")
	}
}

func TestAtMaxCareer(t *testing.T) {
	if AtMaxCareer(CareerJunior) {
		t.Fatalf("junior is not the top level")
	}
	if !AtMaxCareer(CareerDirector) {
		t.Fatalf("director is the top level")
	}
}
