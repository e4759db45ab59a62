package game

import "testing"

func TestSalaryWithBonus(t *testing.T) {
	tests := []struct {
		salary float64
		skill  float64
		want   float64
	}{
		{salary: 80000, skill: 0, want: 80000},
		{salary: 80000, skill: 9, want: 80000},
		{salary: 80000, skill: 10, want: 84000},
		{salary: 80000, skill: 50, want: 100000},
		{salary: 80000, skill: 55, want: 100000},
		{salary: 80000, skill: 100, want: 120000},
	}
	for _, tc := range tests {
		got := SalaryWithBonus(tc.salary, tc.skill)
		if got != tc.want {
			t.Fatalf("salary=%v skill=%v got=%v want=%v", tc.salary, tc.skill, got, tc.want)
		}
	}
}

func TestClampSkill(t *testing.T) {
	if got := clampSkill(105); got != SkillCap {
		t.Fatalf("got %v want %v", got, SkillCap)
	}
	if got := clampSkill(99); got != 99 {
		t.Fatalf("got %v want 99", got)
	}
	// Only the upper bound is clamped.
	if got := clampSkill(-5); got != -5 {
		t.Fatalf("got %v want -5", got)
	}
}

func TestDefaultPlayer(t *testing.T) {
	p := DefaultPlayer()
	if p.Career != CareerJunior {
		t.Fatalf("career got %s want %s", p.Career, CareerJunior)
	}
	c, ok := CareerConfigFor(p.Career)
	if !ok || p.Salary != c.BaseSalary {
		t.Fatalf("salary %v does not match ladder base %v", p.Salary, c.BaseSalary)
	}
}
