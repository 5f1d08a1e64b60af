package targets

import (
	"math"

	"github.com/aguxez/carnitarget/models"
)

// Factor bounds. A folded factor is clamped into [MinFactor, MaxFactor] before
// it scales a base target.
const (
	MinFactor = 0.1
	MaxFactor = 2.0
)

// leanMassProteinRatio is grams of protein per kg of lean body mass.
const leanMassProteinRatio = 2.0

// Factor is one multiplier contributed by a daily rule group.
type Factor struct {
	Nutrient   models.Nutrient `json:"nutrient"`
	Multiplier float64         `json:"multiplier"`
	Source     string          `json:"source"`
}

// Group is a named set of daily rules. Groups run in order; a later group
// can read the factors collected before it.
type Group struct {
	Name    string
	Collect func(c *Collector)
}

// Collector accumulates factors for one status.
type Collector struct {
	Base          models.NutrientTargetSet
	Status        models.DailyStatus
	ProfileWeight float64

	group   string
	factors []Factor
}

// Add records a multiplier for n. Neutral multipliers are dropped.
func (c *Collector) Add(n models.Nutrient, multiplier float64, reason string) {
	if multiplier == 1 {
		return
	}
	c.factors = append(c.factors, Factor{Nutrient: n, Multiplier: multiplier, Source: c.group + "." + reason})
}

// Product folds the factors collected so far for n, unclamped.
func (c *Collector) Product(n models.Nutrient) float64 {
	return fold(c.factors, n)
}

// DailyGroups returns a copy of the ordered rule groups used by
// ApplyDailyAdjustments.
func DailyGroups() []Group {
	return append([]Group(nil), dailyGroups...)
}

// ApplyDailyAdjustments scales base by the day's status. A nil status returns
// base unchanged. profileWeight is used for the lean-mass protein floor when
// the day has no weight of its own; zero means unknown.
//
// Manually overridden nutrients in base are scaled like any other. Callers
// that want overrides to win must apply ApplyOverrides to the result, as
// Compute does.
func ApplyDailyAdjustments(base models.NutrientTargetSet, status *models.DailyStatus, profileWeight float64) models.NutrientTargetSet {
	out, _ := adjust(base, status, profileWeight)
	return out
}

// CollectFactors returns every factor the day's status contributes, in rule
// order. A nil status contributes nothing.
func CollectFactors(base models.NutrientTargetSet, status *models.DailyStatus, profileWeight float64) []Factor {
	_, factors := adjust(base, status, profileWeight)
	return factors
}

func adjust(base models.NutrientTargetSet, status *models.DailyStatus, profileWeight float64) (models.NutrientTargetSet, []Factor) {
	if status == nil {
		return base, nil
	}
	c := &Collector{Base: base, Status: *status, ProfileWeight: profileWeight}
	for _, g := range dailyGroups {
		c.group = g.Name
		g.Collect(c)
	}

	out := base
	touched := make(map[models.Nutrient]bool)
	for _, f := range c.factors {
		if touched[f.Nutrient] {
			continue
		}
		touched[f.Nutrient] = true
		out = out.With(f.Nutrient, round(base.Get(f.Nutrient)*Clamp(fold(c.factors, f.Nutrient))))
	}
	if lbm, ok := leanMassFloor(*status, profileWeight); ok {
		out.Protein = math.Max(out.Protein, round(lbm))
	}
	return out, c.factors
}

// Clamp bounds a folded factor.
func Clamp(f float64) float64 {
	return math.Min(math.Max(f, MinFactor), MaxFactor)
}

func fold(factors []Factor, n models.Nutrient) float64 {
	p := 1.0
	for _, f := range factors {
		if f.Nutrient == n {
			p *= f.Multiplier
		}
	}
	return p
}

// leanMassFloor is the protein minimum implied by the day's body-fat reading.
func leanMassFloor(s models.DailyStatus, profileWeight float64) (float64, bool) {
	if s.BodyFatPercentage == nil {
		return 0, false
	}
	weight := profileWeight
	if s.Weight != nil {
		weight = *s.Weight
	}
	if weight == 0 {
		return 0, false
	}
	lean := weight * (1 - *s.BodyFatPercentage/100)
	return lean * leanMassProteinRatio, true
}

// at reports whether v is logged and satisfies cmp.
func at(v *float64, cmp func(float64) bool) bool {
	return v != nil && cmp(*v)
}

func atLeast(n float64) func(float64) bool { return func(v float64) bool { return v >= n } }
func atMost(n float64) func(float64) bool { return func(v float64) bool { return v <= n } }
func below(n float64) func(float64) bool { return func(v float64) bool { return v < n } }
func above(n float64) func(float64) bool { return func(v float64) bool { return v > n } }

var dailyGroups = []Group{
	{Name: "sleep", Collect: sleepFactors},
	{Name: "pain", Collect: painFactors},
	{Name: "mental", Collect: mentalFactors},
	{Name: "energy", Collect: energyFactors},
	{Name: "digestion", Collect: digestionFactors},
	{Name: "body_composition", Collect: bodyCompositionFactors},
	{Name: "cardiovascular", Collect: cardiovascularFactors},
	{Name: "sun", Collect: sunFactors},
	{Name: "temperature", Collect: temperatureFactors},
	{Name: "fasting", Collect: fastingFactors},
	{Name: "skin", Collect: skinFactors},
	{Name: "social", Collect: socialFactors},
	{Name: "exercise", Collect: exerciseFactors},
}

func sleepFactors(c *Collector) {
	s := c.Status
	switch {
	case at(s.SleepScore, below(50)):
		c.Add(models.Magnesium, 1.3, "score")
		c.Add(models.VitaminD, 1.1, "score")
	case at(s.SleepScore, below(70)):
		c.Add(models.Magnesium, 1.15, "score")
	}
	if at(s.DeepSleepMinutes, below(60)) {
		c.Add(models.Magnesium, 1.1, "deep_sleep")
	}
	if s.AwakeCount != nil && *s.AwakeCount >= 3 {
		c.Add(models.Magnesium, 1.1, "awakenings")
	}
	if at(s.SleepLatency, above(30)) {
		c.Add(models.Magnesium, 1.1, "latency")
	}
}

func painFactors(c *Collector) {
	s := c.Status
	switch {
	case at(s.Headache, atLeast(7)):
		c.Add(models.Magnesium, 1.3, "headache")
	case at(s.Headache, atLeast(4)):
		c.Add(models.Magnesium, 1.15, "headache")
	}
	switch {
	case at(s.JointPain, atLeast(7)):
		c.Add(models.Magnesium, 1.2, "joint_pain")
		c.Add(models.Protein, 1.1, "joint_pain")
	case at(s.JointPain, atLeast(4)):
		c.Add(models.Magnesium, 1.1, "joint_pain")
	}
	switch {
	case at(s.MuscleSoreness, atLeast(7)):
		c.Add(models.Protein, 1.2, "muscle_soreness")
		c.Add(models.Magnesium, 1.15, "muscle_soreness")
	case at(s.MuscleSoreness, atLeast(4)):
		c.Add(models.Protein, 1.1, "muscle_soreness")
	}
}

func mentalFactors(c *Collector) {
	s := c.Status
	switch {
	case at(s.Anxiety, atLeast(7)):
		c.Add(models.Magnesium, 1.25, "anxiety")
	case at(s.Anxiety, atLeast(4)):
		c.Add(models.Magnesium, 1.1, "anxiety")
	}
	switch {
	case at(s.Depression, atLeast(7)):
		c.Add(models.VitaminD, 1.3, "depression")
		c.Add(models.Magnesium, 1.1, "depression")
	case at(s.Depression, atLeast(4)):
		c.Add(models.VitaminD, 1.15, "depression")
	}
	if at(s.BrainFog, atLeast(7)) {
		c.Add(models.Protein, 1.1, "brain_fog")
		c.Add(models.Magnesium, 1.1, "brain_fog")
	}
	if at(s.Focus, atMost(3)) {
		c.Add(models.Magnesium, 1.1, "focus")
	}
}

func energyFactors(c *Collector) {
	s := c.Status
	if at(s.EnergyLevel, atMost(3)) {
		c.Add(models.Protein, 1.1, "low_energy")
		c.Add(models.Fat, 1.15, "low_energy")
		c.Add(models.Iron, 1.2, "low_energy")
		c.Add(models.Magnesium, 1.1, "low_energy")
	}
	if at(s.PhysicalFatigue, atLeast(7)) {
		c.Add(models.Protein, 1.15, "fatigue")
		c.Add(models.Magnesium, 1.15, "fatigue")
		c.Add(models.Iron, 1.1, "fatigue")
	}
}

func digestionFactors(c *Collector) {
	s := c.Status
	switch s.BowelMovement {
	case models.BowelConstipated:
		c.Add(models.Magnesium, 1.3, "constipated")
		c.Add(models.Potassium, 1.1, "constipated")
	case models.BowelWatery:
		c.Add(models.Sodium, 1.3, "watery")
		c.Add(models.Potassium, 1.3, "watery")
		c.Add(models.Zinc, 1.2, "watery")
		c.Add(models.Iron, 1.1, "watery")
	case models.BowelLoose:
		c.Add(models.Sodium, 1.15, "loose")
		c.Add(models.Potassium, 1.15, "loose")
		c.Add(models.Zinc, 1.1, "loose")
		c.Add(models.Iron, 1.05, "loose")
	}
	if at(s.Bloating, atLeast(5)) {
		c.Add(models.Zinc, 1.15, "bloating")
	}
}

// bodyCompositionFactors raises the protein factor so the scaled target meets
// the lean-mass floor as it stands at this point in the group order.
func bodyCompositionFactors(c *Collector) {
	lbm, ok := leanMassFloor(c.Status, c.ProfileWeight)
	if !ok {
		return
	}
	current := c.Base.Protein * c.Product(models.Protein)
	if current > 0 && lbm > current {
		c.Add(models.Protein, lbm/current, "lean_mass")
	}
}

func cardiovascularFactors(c *Collector) {
	s := c.Status
	if at(s.HeartRate, above(90)) {
		c.Add(models.Magnesium, 1.2, "heart_rate")
		c.Add(models.Potassium, 1.1, "heart_rate")
	}
	bp := s.BloodPressure
	if bp == nil {
		return
	}
	switch {
	case bp.Systolic >= 140 || bp.Diastolic >= 90:
		c.Add(models.Sodium, 0.8, "hypertension")
		c.Add(models.Potassium, 1.2, "hypertension")
		c.Add(models.Magnesium, 1.2, "hypertension")
	case bp.Systolic >= 130 || bp.Diastolic >= 80:
		c.Add(models.Sodium, 0.9, "elevated_pressure")
		c.Add(models.Potassium, 1.1, "elevated_pressure")
		c.Add(models.Magnesium, 1.1, "elevated_pressure")
	case bp.Systolic < 90 || bp.Diastolic < 60:
		c.Add(models.Sodium, 1.3, "hypotension")
	}
}

func sunFactors(c *Collector) {
	s := c.Status
	overcast := s.Weather == models.WeatherCloudy || s.Weather == models.WeatherRainy || s.Weather == models.WeatherSnowy
	switch {
	case at(s.SunMinutes, atLeast(60)):
		c.Add(models.VitaminD, 0.5, "sun")
	case at(s.SunMinutes, atLeast(30)):
		c.Add(models.VitaminD, 0.7, "sun")
	case at(s.SunMinutes, atLeast(15)):
		c.Add(models.VitaminD, 0.85, "sun")
	case overcast:
		c.Add(models.VitaminD, 1.2, "overcast")
	}
}

func temperatureFactors(c *Collector) {
	s := c.Status
	switch {
	case at(s.ColdExposureMinutes, atLeast(10)):
		c.Add(models.Fat, 1.15, "cold")
		c.Add(models.Protein, 1.05, "cold")
		c.Add(models.Magnesium, 1.1, "cold")
	case at(s.ColdExposureMinutes, atLeast(3)):
		c.Add(models.Fat, 1.05, "cold")
	}
	switch {
	case at(s.SaunaMinutes, atLeast(20)):
		c.Add(models.Sodium, 1.25, "sauna")
		c.Add(models.Magnesium, 1.15, "sauna")
	case at(s.SaunaMinutes, atLeast(10)):
		c.Add(models.Sodium, 1.1, "sauna")
	}
}

func fastingFactors(c *Collector) {
	s := c.Status
	switch {
	case at(s.FastingHours, atLeast(24)):
		c.Add(models.Sodium, 1.4, "fast")
		c.Add(models.Potassium, 1.2, "fast")
		c.Add(models.Magnesium, 1.2, "fast")
	case at(s.FastingHours, atLeast(16)):
		c.Add(models.Sodium, 1.2, "fast")
		c.Add(models.Potassium, 1.1, "fast")
		c.Add(models.Magnesium, 1.1, "fast")
	}
	switch {
	case at(s.Ketones, atLeast(1.5)):
		c.Add(models.Sodium, 1.2, "ketones")
		c.Add(models.Magnesium, 1.1, "ketones")
	case at(s.Ketones, atLeast(0.5)):
		c.Add(models.Sodium, 1.1, "ketones")
	}
	switch {
	case at(s.Glucose, below(70)):
		c.Add(models.Sodium, 1.1, "low_glucose")
	case at(s.Glucose, above(110)):
		c.Add(models.Magnesium, 1.15, "high_glucose")
	}
}

func skinFactors(c *Collector) {
	s := c.Status
	switch s.SkinCondition {
	case models.SkinAcne:
		c.Add(models.Zinc, 1.3, "acne")
		c.Add(models.VitaminA, 1.2, "acne")
	case models.SkinDry:
		c.Add(models.Fat, 1.1, "dry")
		c.Add(models.VitaminA, 1.15, "dry")
	case models.SkinEczema, models.SkinRash:
		c.Add(models.Zinc, 1.2, string(s.SkinCondition))
		c.Add(models.VitaminA, 1.2, string(s.SkinCondition))
	}
	if at(s.Libido, atMost(3)) {
		c.Add(models.Zinc, 1.2, "libido")
		c.Add(models.Fat, 1.1, "libido")
		c.Add(models.Protein, 1.05, "libido")
	}
}

func socialFactors(c *Collector) {
	s := c.Status
	if at(s.Loneliness, atLeast(7)) {
		c.Add(models.Magnesium, 1.15, "loneliness")
		c.Add(models.VitaminD, 1.1, "loneliness")
	}
	if at(s.SocialSatisfaction, atMost(3)) {
		c.Add(models.Magnesium, 1.1, "social_satisfaction")
	}
}

func exerciseFactors(c *Collector) {
	s := c.Status
	long := at(s.ExerciseMinutes, atLeast(30))
	switch s.ExerciseIntensity {
	case models.ExerciseIntense:
		if long {
			c.Add(models.Protein, 1.2, "intense")
			c.Add(models.Fat, 1.1, "intense")
			c.Add(models.Sodium, 1.2, "intense")
			return
		}
		c.Add(models.Protein, 1.1, "intense")
	case models.ExerciseModerate:
		if long {
			c.Add(models.Protein, 1.1, "moderate")
			c.Add(models.Sodium, 1.1, "moderate")
		}
	case models.ExerciseLight:
		if at(s.ExerciseMinutes, atLeast(60)) {
			c.Add(models.Protein, 1.05, "light")
		}
	}
}
