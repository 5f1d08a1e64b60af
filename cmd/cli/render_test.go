package main

import (
	"strings"
	"testing"
)

func TestGaugeScale(t *testing.T) {
	cases := []struct {
		base, final float64
		filled      int
	}{
		{400, 400, 10},
		{400, 800, 20},
		{400, 1200, 20},
		{400, 40, 1},
		{0, 50, 10},
	}
	for _, c := range cases {
		got := strings.Count(gauge(c.base, c.final), "█")
		if got != c.filled {
			t.Errorf("gauge(%v, %v) filled %d cells, want %d", c.base, c.final, got, c.filled)
		}
	}
}

func TestFactorsMarkdown(t *testing.T) {
	if got := factorsMarkdown(nil); !strings.Contains(got, "No adjustments") {
		t.Errorf("empty factors rendered %q", got)
	}
	got := factorsMarkdown([]factor{{Nutrient: "magnesium", Multiplier: 1.3, Source: "pain.headache"}})
	if !strings.Contains(got, "| magnesium | ×1.30 | pain.headache |") {
		t.Errorf("unexpected table:\n%s", got)
	}
}

func TestPlanMarkdownGroupsByMeal(t *testing.T) {
	md := planMarkdown(planResponse{
		Plan: []planFood{
			{Food: "ribeye", Weight: "400g", FoodCategory: "dinner"},
			{Food: "eggs", Weight: "150g", FoodCategory: "Breakfast"},
		},
		Supplements: "none needed",
	})
	breakfast := strings.Index(md, "## Breakfast")
	dinner := strings.Index(md, "## Dinner")
	if breakfast < 0 || dinner < 0 || breakfast > dinner {
		t.Fatalf("meals out of order:\n%s", md)
	}
	if strings.Contains(md, "## Lunch") {
		t.Errorf("empty meal rendered:\n%s", md)
	}
	if !strings.Contains(md, "## Supplements") {
		t.Errorf("supplements missing:\n%s", md)
	}
}

func TestRenderTargetsMarksPinned(t *testing.T) {
	out := renderTargets(targetsResponse{
		Date:       "2024-03-01",
		Base:       map[string]float64{"iodine": 150},
		Final:      map[string]float64{"iodine": 220},
		Overridden: []string{"iodine"},
		Units:      map[string]string{"iodine": "mcg"},
	})
	if !strings.Contains(out, "220 mcg") || !strings.Contains(out, "pinned") {
		t.Errorf("unexpected render:\n%s", out)
	}
}
