package models

type Gender string

const (
	Female Gender = "female"
	Male   Gender = "male"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// Level is shared by stress, inflammation and caffeine intake.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

type ExerciseIntensity string

const (
	ExerciseNone     ExerciseIntensity = "none"
	ExerciseLight    ExerciseIntensity = "light"
	ExerciseModerate ExerciseIntensity = "moderate"
	ExerciseIntense  ExerciseIntensity = "intense"
)

// ExerciseFrequency is sessions per week.
type ExerciseFrequency string

const (
	SessionsNone        ExerciseFrequency = "0"
	SessionsOneToTwo    ExerciseFrequency = "1-2"
	SessionsThreeToFour ExerciseFrequency = "3-4"
	SessionsFivePlus    ExerciseFrequency = "5+"
)

type ThyroidFunction string

const (
	ThyroidNormal ThyroidFunction = "normal"
	Hypothyroid   ThyroidFunction = "hypothyroid"
	Hyperthyroid  ThyroidFunction = "hyperthyroid"
)

// Frequency is shared by sun exposure and alcohol intake.
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyOccasional Frequency = "occasional"
	FrequencyRare       Frequency = "rare"
	FrequencyNever      Frequency = "none"
)

type MentalHealth string

const (
	MentalHealthGood MentalHealth = "good"
	MentalHealthFair MentalHealth = "fair"
	MentalHealthPoor MentalHealth = "poor"
)

type Goal string

const (
	GoalHealing     Goal = "HEALING"
	GoalWeightLoss  Goal = "WEIGHT_LOSS"
	GoalPerformance Goal = "PERFORMANCE"
	GoalMaintenance Goal = "MAINTENANCE"
)

type MetabolicStatus string

const (
	MetabolicTransitioning MetabolicStatus = "TRANSITIONING"
	MetabolicAdapted       MetabolicStatus = "ADAPTED"
)

// Metabolic-stress indicator tags recognised by the base resolver.
const (
	IndicatorMorningFatigue = "morning_fatigue"
	IndicatorNightWake      = "night_wake"
	IndicatorCoffeeHigh     = "coffee_high"
)

type CustomMode string

const (
	ModeAuto   CustomMode = "auto"
	ModeManual CustomMode = "manual"
)

// Customization is a per-nutrient user setting. Value is only read when Mode
// is manual.
type Customization struct {
	Mode  CustomMode `json:"mode" yaml:"mode"`
	Value *float64   `json:"value,omitempty" yaml:"value,omitempty"`
}

type Supplements struct {
	Magnesium bool `json:"magnesium" yaml:"magnesium"`
	VitaminD  bool `json:"vitamin_d" yaml:"vitamin_d"`
	Iodine    bool `json:"iodine" yaml:"iodine"`
}

// UserProfile is the long-lived user description. Every field is optional;
// zero values mean "not provided".
type UserProfile struct {
	Gender          Gender          `json:"gender,omitempty" yaml:"gender,omitempty"`
	Age             int             `json:"age,omitempty" yaml:"age,omitempty"`
	Weight          float64         `json:"weight,omitempty" yaml:"weight,omitempty"`
	Goal            Goal            `json:"goal,omitempty" yaml:"goal,omitempty"`
	MetabolicStatus MetabolicStatus `json:"metabolic_status,omitempty" yaml:"metabolic_status,omitempty"`
	ActivityLevel   ActivityLevel   `json:"activity_level,omitempty" yaml:"activity_level,omitempty"`

	Pregnant       bool `json:"pregnant,omitempty" yaml:"pregnant,omitempty"`
	Breastfeeding  bool `json:"breastfeeding,omitempty" yaml:"breastfeeding,omitempty"`
	PostMenopausal bool `json:"post_menopausal,omitempty" yaml:"post_menopausal,omitempty"`

	StressLevel       Level             `json:"stress_level,omitempty" yaml:"stress_level,omitempty"`
	SleepHours        float64           `json:"sleep_hours,omitempty" yaml:"sleep_hours,omitempty"`
	ExerciseIntensity ExerciseIntensity `json:"exercise_intensity,omitempty" yaml:"exercise_intensity,omitempty"`
	ExerciseFrequency ExerciseFrequency `json:"exercise_frequency,omitempty" yaml:"exercise_frequency,omitempty"`
	ThyroidFunction   ThyroidFunction   `json:"thyroid_function,omitempty" yaml:"thyroid_function,omitempty"`
	SunExposure       Frequency         `json:"sun_exposure,omitempty" yaml:"sun_exposure,omitempty"`
	DigestiveIssues   bool              `json:"digestive_issues,omitempty" yaml:"digestive_issues,omitempty"`
	Inflammation      Level             `json:"inflammation_level,omitempty" yaml:"inflammation_level,omitempty"`
	MentalHealth      MentalHealth      `json:"mental_health_status,omitempty" yaml:"mental_health_status,omitempty"`
	Supplements       Supplements       `json:"supplements" yaml:"supplements"`
	Alcohol           Frequency         `json:"alcohol_frequency,omitempty" yaml:"alcohol_frequency,omitempty"`
	Caffeine          Level             `json:"caffeine_frequency,omitempty" yaml:"caffeine_frequency,omitempty"`
	BodyComposition   string            `json:"body_composition,omitempty" yaml:"body_composition,omitempty"`

	MetabolicStressIndicators []string                   `json:"metabolic_stress_indicators,omitempty" yaml:"metabolic_stress_indicators,omitempty"`
	CustomNutrientTargets     map[Nutrient]Customization `json:"custom_nutrient_targets,omitempty" yaml:"custom_nutrient_targets,omitempty"`
}

// HasIndicator reports whether tag is among the profile's metabolic-stress
// indicators.
func (p UserProfile) HasIndicator(tag string) bool {
	for _, t := range p.MetabolicStressIndicators {
		if t == tag {
			return true
		}
	}
	return false
}
