package filewatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguxez/carnitarget/models"
)

const sampleProfile = `
gender: female
age: 34
weight: 64.5
goal: HEALING
activity_level: moderate
stress_level: high
sleep_hours: 6.5
thyroid_function: hypothyroid
supplements:
  vitamin_d: true
metabolic_stress_indicators: [morning_fatigue, night_wake]
custom_nutrient_targets:
  magnesium:
    mode: manual
    value: 800
  sodium:
    mode: auto
`

func TestDecodeProfile(t *testing.T) {
	p, err := DecodeProfile([]byte(sampleProfile))
	require.NoError(t, err)

	assert.Equal(t, models.Female, p.Gender)
	assert.Equal(t, 34, p.Age)
	assert.Equal(t, 64.5, p.Weight)
	assert.Equal(t, models.GoalHealing, p.Goal)
	assert.Equal(t, models.LevelHigh, p.StressLevel)
	assert.Equal(t, models.Hypothyroid, p.ThyroidFunction)
	assert.True(t, p.Supplements.VitaminD)
	assert.False(t, p.Supplements.Iodine)
	assert.True(t, p.HasIndicator(models.IndicatorNightWake))

	mg := p.CustomNutrientTargets[models.Magnesium]
	assert.Equal(t, models.ModeManual, mg.Mode)
	require.NotNil(t, mg.Value)
	assert.Equal(t, 800.0, *mg.Value)
	assert.Nil(t, p.CustomNutrientTargets[models.Sodium].Value)
}

func TestDecodeProfile_Empty(t *testing.T) {
	p, err := DecodeProfile(nil)
	require.NoError(t, err)
	assert.Equal(t, models.UserProfile{}, p)
}

func TestDecodeProfile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", "gender: female\nfavourite_cut: ribeye\n"},
		{"unknown nutrient", "custom_nutrient_targets:\n  vitamin_c:\n    mode: manual\n    value: 90\n"},
		{"bad mode", "custom_nutrient_targets:\n  iron:\n    mode: sometimes\n"},
		{"bad type", "age: old\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProfile([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestParseProfile_MissingFile(t *testing.T) {
	_, err := ParseProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
