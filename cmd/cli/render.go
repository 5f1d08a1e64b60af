package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	gaugeWidth = 20
	// Daily factors are clamped to this, so a full gauge means the maximum.
	maxRatio = 2.0
)

var (
	labelStyle  = lipgloss.NewStyle().Width(12)
	valueStyle  = lipgloss.NewStyle().Width(18).Align(lipgloss.Right)
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	steadyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pinnedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// gauge draws final relative to base on a 0 to maxRatio scale.
func gauge(base, final float64) string {
	ratio := 1.0
	if base > 0 {
		ratio = final / base
	}
	filled := int(math.Round(math.Min(ratio/maxRatio, 1) * gaugeWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)

	switch {
	case ratio > 1:
		return upStyle.Render(bar)
	case ratio < 1:
		return downStyle.Render(bar)
	default:
		return steadyStyle.Render(bar)
	}
}

func formatAmount(v float64, unit string) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f %s", v, unit)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

func renderTargets(t targetsResponse) string {
	pinned := make(map[string]bool, len(t.Overridden))
	for _, n := range t.Overridden {
		pinned[n] = true
	}

	rows := []string{titleStyle.Render("Targets for " + t.Date)}
	for _, n := range nutrientOrder {
		base, final := t.Base[n], t.Final[n]
		unit := t.Units[n]
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(n),
			valueStyle.Render(formatAmount(final, unit)),
			"  ",
			gauge(base, final),
			"  ",
			steadyStyle.Render("base "+formatAmount(base, unit)),
		)
		if pinned[n] {
			row += " " + pinnedStyle.Render("pinned")
		}
		rows = append(rows, row)
	}
	rows = append(rows, "", fmt.Sprintf("Salt: %.2f tsp", t.SaltTeaspoons))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// factorsMarkdown lists the day's adjustments as a markdown table.
func factorsMarkdown(factors []factor) string {
	if len(factors) == 0 {
		return "_No adjustments today._\n"
	}
	var b strings.Builder
	b.WriteString("| Nutrient | Factor | Reason |\n|---|---|---|\n")
	for _, f := range factors {
		fmt.Fprintf(&b, "| %s | ×%.2f | %s |\n", f.Nutrient, f.Multiplier, f.Source)
	}
	return b.String()
}

var mealOrder = []string{"breakfast", "lunch", "dinner", "snack"}

func planMarkdown(p planResponse) string {
	var b strings.Builder
	b.WriteString("# Meal plan\n\n")
	for _, meal := range mealOrder {
		var foods []planFood
		for _, f := range p.Plan {
			if strings.EqualFold(f.FoodCategory, meal) {
				foods = append(foods, f)
			}
		}
		if len(foods) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", strings.ToUpper(meal[:1])+meal[1:])
		for _, f := range foods {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", f.Food, f.Weight, f.Nutrients)
			if f.FoodExplanation != "" {
				fmt.Fprintf(&b, "  %s\n", f.FoodExplanation)
			}
		}
		b.WriteString("\n")
	}
	if p.PlanExplanation != "" {
		b.WriteString("## Why\n\n" + p.PlanExplanation + "\n\n")
	}
	if p.Supplements != "" {
		b.WriteString("## Supplements\n\n" + p.Supplements + "\n")
	}
	return b.String()
}
