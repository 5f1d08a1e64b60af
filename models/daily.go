package models

import (
	"fmt"
	"time"
)

type BowelMovement string

const (
	BowelNormal      BowelMovement = "normal"
	BowelConstipated BowelMovement = "constipated"
	BowelLoose       BowelMovement = "loose"
	BowelWatery      BowelMovement = "watery"
	BowelNone        BowelMovement = "none"
)

type Weather string

const (
	WeatherSunny  Weather = "sunny"
	WeatherCloudy Weather = "cloudy"
	WeatherRainy  Weather = "rainy"
	WeatherSnowy  Weather = "snowy"
)

type SkinCondition string

const (
	SkinGood   SkinCondition = "good"
	SkinDry    SkinCondition = "dry"
	SkinAcne   SkinCondition = "acne"
	SkinEczema SkinCondition = "eczema"
	SkinRash   SkinCondition = "rash"
)

// BloodPressure in mmHg.
type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

func (b BloodPressure) String() string {
	return fmt.Sprintf("%d/%d", b.Systolic, b.Diastolic)
}

// DailyStatus is one day's symptoms and measurements. Pointer fields are nil
// when not logged, since zero is a meaningful reading for most of them.
// Scores are on a 0-10 scale unless stated otherwise.
type DailyStatus struct {
	// Sleep
	SleepScore       *float64 `json:"sleep_score,omitempty"` // 0-100
	DeepSleepMinutes *float64 `json:"deep_sleep_minutes,omitempty"`
	AwakeCount       *int     `json:"awake_count,omitempty"`
	SleepLatency     *float64 `json:"sleep_latency,omitempty"` // minutes

	// Pain
	Headache       *float64 `json:"headache,omitempty"`
	JointPain      *float64 `json:"joint_pain,omitempty"`
	MuscleSoreness *float64 `json:"muscle_soreness,omitempty"`

	// Mental state
	Anxiety    *float64 `json:"anxiety,omitempty"`
	Depression *float64 `json:"depression,omitempty"`
	BrainFog   *float64 `json:"brain_fog,omitempty"`
	Focus      *float64 `json:"focus,omitempty"`

	// Energy
	EnergyLevel     *float64 `json:"energy_level,omitempty"`
	PhysicalFatigue *float64 `json:"physical_fatigue,omitempty"`

	// Digestion
	BowelMovement BowelMovement `json:"bowel_movement,omitempty"`
	Bloating      *float64      `json:"bloating,omitempty"`

	// Body
	BodyFatPercentage *float64 `json:"body_fat_percentage,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`

	// Cardiovascular
	HeartRate     *float64       `json:"heart_rate,omitempty"` // resting bpm
	BloodPressure *BloodPressure `json:"blood_pressure,omitempty"`

	// Environment
	Weather             Weather  `json:"weather,omitempty"`
	SunMinutes          *float64 `json:"sun_minutes,omitempty"`
	ColdExposureMinutes *float64 `json:"cold_exposure_minutes,omitempty"`
	SaunaMinutes        *float64 `json:"sauna_minutes,omitempty"`

	// Metabolic
	FastingHours *float64 `json:"fasting_hours,omitempty"`
	Glucose      *float64 `json:"glucose,omitempty"` // mg/dL
	Ketones      *float64 `json:"ketones,omitempty"` // mmol/L

	SkinCondition SkinCondition `json:"skin_condition,omitempty"`
	Libido        *float64      `json:"libido,omitempty"`

	// Social
	Loneliness         *float64 `json:"loneliness,omitempty"`
	SocialSatisfaction *float64 `json:"social_satisfaction,omitempty"`

	// Activity
	ActivityLevel     ActivityLevel     `json:"activity_level,omitempty"`
	ExerciseIntensity ExerciseIntensity `json:"exercise_intensity,omitempty"`
	ExerciseMinutes   *float64          `json:"exercise_minutes,omitempty"`
}

// DailyEntry is a DailyStatus pinned to its calendar day.
type DailyEntry struct {
	Date   time.Time   `json:"date"`
	Status DailyStatus `json:"status"`
}

// DateKey is the calendar-day key used to index daily entries.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
