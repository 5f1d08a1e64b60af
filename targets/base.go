// Package targets derives daily nutrient targets from a user profile and the
// day's logged status. Everything here is a pure function of its arguments.
package targets

import (
	"math"

	"github.com/aguxez/carnitarget/models"
)

// Defaults are used for every nutrient the profile does not move.
var Defaults = models.NutrientTargetSet{
	Protein:    110,
	Fat:        150,
	Sodium:     5000,
	Potassium:  4700,
	Magnesium:  400,
	Iron:       8,
	Zinc:       11,
	VitaminA:   900,
	VitaminD:   2000,
	VitaminK2:  200,
	VitaminB12: 2.4,
	Choline:    550,
	Iodine:     150,
}

// Input is what a base rule can see. Weight is zero when unknown.
type Input struct {
	Profile models.UserProfile
	Weight  float64
}

// Rule is one named step of the base resolver. Rules run in slice order and a
// rule whose When is nil always applies.
type Rule struct {
	Name  string
	When  func(in Input) bool
	Apply func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet
}

// BaseRules returns a copy of the ordered rule list used by
// ResolveBaseTargets.
func BaseRules() []Rule {
	return append([]Rule(nil), baseRules...)
}

// ResolveBaseTargets maps a profile to its baseline targets. A zero weight
// means the weight is unknown.
func ResolveBaseTargets(p models.UserProfile, weight float64) models.NutrientTargetSet {
	return Run(baseRules, Input{Profile: p, Weight: weight})
}

// Run folds rules over Defaults.
func Run(rules []Rule, in Input) models.NutrientTargetSet {
	t := Defaults
	for _, r := range rules {
		if r.When != nil && !r.When(in) {
			continue
		}
		t = r.Apply(t, in)
	}
	return t
}

// round is half-up, matching how targets have always been displayed.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func floor(t models.NutrientTargetSet, n models.Nutrient, minimum float64) models.NutrientTargetSet {
	return t.With(n, math.Max(t.Get(n), minimum))
}

func scale(t models.NutrientTargetSet, n models.Nutrient, factor float64) models.NutrientTargetSet {
	return t.With(n, round(t.Get(n)*factor))
}

var baseRules = []Rule{
	{
		Name: "body_weight",
		When: func(in Input) bool { return in.Weight != 0 },
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			t.Protein = round(in.Weight * 1.6)
			t.Fat = round(t.Protein * 1.2)
			return t
		},
	},
	{
		Name: "gender_iron",
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			p := in.Profile
			switch {
			case p.Gender == models.Female && !p.PostMenopausal:
				t.Iron = 18
			case p.PostMenopausal || p.Gender == models.Male:
				t.Iron = 8
			}
			return t
		},
	},
	{
		Name: "pregnancy",
		When: func(in Input) bool { return in.Profile.Pregnant },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			t = floor(t, models.Protein, 120)
			t = floor(t, models.Iron, 27)
			return floor(t, models.Magnesium, 700)
		},
	},
	{
		Name: "breastfeeding",
		When: func(in Input) bool { return in.Profile.Breastfeeding },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			t = floor(t, models.Protein, 130)
			t = floor(t, models.Iron, 9)
			return floor(t, models.Magnesium, 700)
		},
	},
	{
		Name: "activity_active",
		When: func(in Input) bool { return in.Profile.ActivityLevel == models.ActivityActive },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			t = floor(t, models.Protein, 120)
			t = floor(t, models.Fat, 180)
			t = floor(t, models.Magnesium, 700)
			return floor(t, models.Sodium, t.Sodium+1000)
		},
	},
	{
		Name: "activity_moderate",
		When: func(in Input) bool { return in.Profile.ActivityLevel == models.ActivityModerate },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			t = floor(t, models.Protein, 110)
			return floor(t, models.Fat, 160)
		},
	},
	{
		Name: "stress_high",
		When: func(in Input) bool { return in.Profile.StressLevel == models.LevelHigh },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Magnesium, 700)
		},
	},
	{
		Name: "age_over_50",
		When: func(in Input) bool { return in.Profile.Age > 50 },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			t = floor(t, models.VitaminD, 3000)
			return floor(t, models.Protein, 110)
		},
	},
	{
		Name: "magnesium_load",
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			return scale(t, models.Magnesium, magnesiumFactor(in.Profile))
		},
	},
	{
		Name: "sleep_debt_magnesium",
		When: func(in Input) bool { return sleepDeficit(in.Profile) },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Magnesium, 650)
		},
	},
	{
		Name:  "exercise_floor_pre",
		When:  hasExerciseFloor,
		Apply: exerciseFloor,
	},
	{
		Name: "exercise_load",
		When: func(in Input) bool { return exerciseFactor(in.Profile) > 1 },
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			f := exerciseFactor(in.Profile)
			t = scale(t, models.Protein, f)
			t = scale(t, models.Fat, f)
			if f > 1.2 {
				return scale(t, models.Sodium, 1.3)
			}
			return scale(t, models.Sodium, 1.1)
		},
	},
	{
		Name:  "exercise_floor_post",
		When:  hasExerciseFloor,
		Apply: exerciseFloor,
	},
	{
		Name: "thyroid_iodine",
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			t = scale(t, models.Iodine, iodineFactor(in.Profile))
			if untreatedHypothyroid(in) {
				t = floor(t, models.Iodine, 300)
			}
			return t
		},
	},
	{
		Name: "sun_vitamin_d",
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			p := in.Profile
			t = scale(t, models.VitaminD, vitaminDFactor(p))
			lowSun := p.SunExposure == models.FrequencyNever || p.SunExposure == models.FrequencyRare
			if lowSun && !p.Supplements.VitaminD {
				t = floor(t, models.VitaminD, 4000)
			}
			return t
		},
	},
	{
		Name: "digestive_issues",
		When: func(in Input) bool { return in.Profile.DigestiveIssues },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			t = scale(t, models.Zinc, 1.3)
			t = scale(t, models.Iron, 1.3)
			return floor(t, models.Protein, 110)
		},
	},
	{
		Name: "mental_health_poor",
		When: func(in Input) bool { return in.Profile.MentalHealth == models.MentalHealthPoor },
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			t = floor(t, models.Magnesium, 700)
			if !in.Profile.Supplements.VitaminD {
				t = floor(t, models.VitaminD, 3000)
			}
			return t
		},
	},
	{
		Name: "alcohol_b12",
		When: func(in Input) bool {
			a := in.Profile.Alcohol
			return a == models.FrequencyDaily || a == models.FrequencyWeekly
		},
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.VitaminB12, 3.0)
		},
	},
	{
		Name: "caffeine_under_stress",
		When: func(in Input) bool {
			return in.Profile.Caffeine == models.LevelHigh && in.Profile.StressLevel == models.LevelHigh
		},
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Magnesium, 750)
		},
	},
	{
		Name: "fat_protein_ratio",
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Fat, t.Protein*1.2)
		},
	},
	{
		Name: "hypothyroid_iodine_floor",
		When: untreatedHypothyroid,
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Iodine, 300)
		},
	},
	{
		Name: "indicator_morning_fatigue",
		When: func(in Input) bool { return in.Profile.HasIndicator(models.IndicatorMorningFatigue) },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Sodium, t.Sodium+1500)
		},
	},
	{
		Name: "indicator_night_wake",
		When: func(in Input) bool { return in.Profile.HasIndicator(models.IndicatorNightWake) },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Magnesium, t.Magnesium+200)
		},
	},
	{
		Name: "indicator_coffee_high",
		When: func(in Input) bool { return in.Profile.HasIndicator(models.IndicatorCoffeeHigh) },
		Apply: func(t models.NutrientTargetSet, _ Input) models.NutrientTargetSet {
			return floor(t, models.Sodium, t.Sodium+500)
		},
	},
	{
		Name: "manual_overrides",
		Apply: func(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
			return ApplyOverrides(t, in.Profile.CustomNutrientTargets)
		},
	},
}

func sleepDeficit(p models.UserProfile) bool {
	return p.SleepHours > 0 && p.SleepHours < 7
}

func untreatedHypothyroid(in Input) bool {
	return in.Profile.ThyroidFunction == models.Hypothyroid && !in.Profile.Supplements.Iodine
}

// magnesiumFactor compounds every independent magnesium-draining habit.
func magnesiumFactor(p models.UserProfile) float64 {
	f := 1.0
	switch {
	case p.SleepHours > 0 && p.SleepHours < 6:
		f *= 1.3
	case sleepDeficit(p):
		f *= 1.15
	}
	switch p.StressLevel {
	case models.LevelHigh:
		f *= 1.5
	case models.LevelModerate:
		f *= 1.2
	}
	if p.Inflammation == models.LevelHigh {
		f *= 1.3
	}
	switch p.Alcohol {
	case models.FrequencyDaily:
		f *= 1.4
	case models.FrequencyWeekly, models.FrequencyRare:
		f *= 1.2
	}
	switch p.Caffeine {
	case models.LevelHigh:
		f *= 1.3
	case models.LevelModerate:
		f *= 1.15
	}
	return f
}

func exerciseFactor(p models.UserProfile) float64 {
	switch p.ExerciseIntensity {
	case models.ExerciseIntense:
		switch p.ExerciseFrequency {
		case models.SessionsFivePlus:
			return 1.4
		case models.SessionsThreeToFour:
			return 1.3
		}
	case models.ExerciseModerate:
		switch p.ExerciseFrequency {
		case models.SessionsThreeToFour:
			return 1.25
		case models.SessionsOneToTwo:
			return 1.15
		}
	}
	return 1
}

func hasExerciseFloor(in Input) bool {
	p := in.Profile
	return (p.ExerciseIntensity == models.ExerciseIntense && p.ExerciseFrequency == models.SessionsFivePlus) ||
		(p.ExerciseIntensity == models.ExerciseModerate && p.ExerciseFrequency == models.SessionsThreeToFour)
}

// exerciseFloor runs both before and after exercise_load, so a floor raised
// before scaling is scaled too.
func exerciseFloor(t models.NutrientTargetSet, in Input) models.NutrientTargetSet {
	if in.Profile.ExerciseIntensity == models.ExerciseIntense {
		t = floor(t, models.Protein, 130)
		t = floor(t, models.Fat, 190)
		return floor(t, models.Magnesium, 750)
	}
	t = floor(t, models.Protein, 115)
	t = floor(t, models.Fat, 170)
	return floor(t, models.Magnesium, 650)
}

func iodineFactor(p models.UserProfile) float64 {
	f := 1.0
	switch p.ThyroidFunction {
	case models.Hypothyroid:
		f *= 2.0
	case models.Hyperthyroid:
		f *= 0.5
	}
	if p.Supplements.Iodine {
		f *= 0.7
	}
	return f
}

func vitaminDFactor(p models.UserProfile) float64 {
	f := 1.0
	switch p.SunExposure {
	case models.FrequencyDaily:
		f *= 0.5
	case models.FrequencyOccasional:
		f *= 0.8
	case models.FrequencyRare:
		f *= 1.2
	case models.FrequencyNever:
		f *= 1.5
	}
	if p.Supplements.VitaminD {
		f *= 0.6
	}
	return f
}
