package filewatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aguxez/carnitarget/models"
)

var ErrUnknownColumn = errors.New("unknown column")

const dateColumn = "date"

type columnSetter func(s *models.DailyStatus, v string) error

func floatColumn(field func(s *models.DailyStatus) **float64) columnSetter {
	return func(s *models.DailyStatus, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite value %q", v)
		}
		*field(s) = &f
		return nil
	}
}

func intColumn(field func(s *models.DailyStatus) **int) columnSetter {
	return func(s *models.DailyStatus, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(s) = &n
		return nil
	}
}

func enumColumn[T ~string](field func(s *models.DailyStatus) *T, allowed ...T) columnSetter {
	return func(s *models.DailyStatus, v string) error {
		for _, a := range allowed {
			if T(v) == a {
				*field(s) = a
				return nil
			}
		}
		return fmt.Errorf("unexpected value %q", v)
	}
}

func bloodPressureColumn(s *models.DailyStatus, v string) error {
	sys, dia, ok := strings.Cut(v, "/")
	if !ok {
		return fmt.Errorf("expected systolic/diastolic, got %q", v)
	}
	systolic, err := strconv.Atoi(strings.TrimSpace(sys))
	if err != nil {
		return err
	}
	diastolic, err := strconv.Atoi(strings.TrimSpace(dia))
	if err != nil {
		return err
	}
	s.BloodPressure = &models.BloodPressure{Systolic: systolic, Diastolic: diastolic}
	return nil
}

var (
	bowelMovementColumn = enumColumn(func(s *models.DailyStatus) *models.BowelMovement { return &s.BowelMovement },
		models.BowelNormal, models.BowelConstipated, models.BowelLoose, models.BowelWatery, models.BowelNone)
	weatherColumn = enumColumn(func(s *models.DailyStatus) *models.Weather { return &s.Weather },
		models.WeatherSunny, models.WeatherCloudy, models.WeatherRainy, models.WeatherSnowy)
	skinConditionColumn = enumColumn(func(s *models.DailyStatus) *models.SkinCondition { return &s.SkinCondition },
		models.SkinGood, models.SkinDry, models.SkinAcne, models.SkinEczema, models.SkinRash)
	activityLevelColumn = enumColumn(func(s *models.DailyStatus) *models.ActivityLevel { return &s.ActivityLevel },
		models.ActivitySedentary, models.ActivityModerate, models.ActivityActive)
	exerciseIntensityColumn = enumColumn(func(s *models.DailyStatus) *models.ExerciseIntensity { return &s.ExerciseIntensity },
		models.ExerciseNone, models.ExerciseLight, models.ExerciseModerate, models.ExerciseIntense)
)

var dailyColumns = map[string]columnSetter{
	"sleep_score":           floatColumn(func(s *models.DailyStatus) **float64 { return &s.SleepScore }),
	"deep_sleep_minutes":    floatColumn(func(s *models.DailyStatus) **float64 { return &s.DeepSleepMinutes }),
	"awake_count":           intColumn(func(s *models.DailyStatus) **int { return &s.AwakeCount }),
	"sleep_latency":         floatColumn(func(s *models.DailyStatus) **float64 { return &s.SleepLatency }),
	"headache":              floatColumn(func(s *models.DailyStatus) **float64 { return &s.Headache }),
	"joint_pain":            floatColumn(func(s *models.DailyStatus) **float64 { return &s.JointPain }),
	"muscle_soreness":       floatColumn(func(s *models.DailyStatus) **float64 { return &s.MuscleSoreness }),
	"anxiety":               floatColumn(func(s *models.DailyStatus) **float64 { return &s.Anxiety }),
	"depression":            floatColumn(func(s *models.DailyStatus) **float64 { return &s.Depression }),
	"brain_fog":             floatColumn(func(s *models.DailyStatus) **float64 { return &s.BrainFog }),
	"focus":                 floatColumn(func(s *models.DailyStatus) **float64 { return &s.Focus }),
	"energy_level":          floatColumn(func(s *models.DailyStatus) **float64 { return &s.EnergyLevel }),
	"physical_fatigue":      floatColumn(func(s *models.DailyStatus) **float64 { return &s.PhysicalFatigue }),
	"bloating":              floatColumn(func(s *models.DailyStatus) **float64 { return &s.Bloating }),
	"body_fat_percentage":   floatColumn(func(s *models.DailyStatus) **float64 { return &s.BodyFatPercentage }),
	"weight":                floatColumn(func(s *models.DailyStatus) **float64 { return &s.Weight }),
	"heart_rate":            floatColumn(func(s *models.DailyStatus) **float64 { return &s.HeartRate }),
	"sun_minutes":           floatColumn(func(s *models.DailyStatus) **float64 { return &s.SunMinutes }),
	"cold_exposure_minutes": floatColumn(func(s *models.DailyStatus) **float64 { return &s.ColdExposureMinutes }),
	"sauna_minutes":         floatColumn(func(s *models.DailyStatus) **float64 { return &s.SaunaMinutes }),
	"fasting_hours":         floatColumn(func(s *models.DailyStatus) **float64 { return &s.FastingHours }),
	"glucose":               floatColumn(func(s *models.DailyStatus) **float64 { return &s.Glucose }),
	"ketones":               floatColumn(func(s *models.DailyStatus) **float64 { return &s.Ketones }),
	"libido":                floatColumn(func(s *models.DailyStatus) **float64 { return &s.Libido }),
	"loneliness":            floatColumn(func(s *models.DailyStatus) **float64 { return &s.Loneliness }),
	"social_satisfaction":   floatColumn(func(s *models.DailyStatus) **float64 { return &s.SocialSatisfaction }),
	"exercise_minutes":      floatColumn(func(s *models.DailyStatus) **float64 { return &s.ExerciseMinutes }),
	"blood_pressure":        bloodPressureColumn,
	"bowel_movement":        bowelMovementColumn,
	"weather":               weatherColumn,
	"skin_condition":        skinConditionColumn,
	"activity_level":        activityLevelColumn,
	"exercise_intensity":    exerciseIntensityColumn,
}

// ParseDailyLog reads and parses a daily log CSV
func ParseDailyLog(path string) ([]models.DailyEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening daily log file: %w", err)
	}
	defer f.Close()

	return ReadDailyLog(f)
}

// ReadDailyLog parses a daily log. The header names the columns; "date" is
// required and every other column is optional. Empty cells are not logged.
func ReadDailyLog(src io.Reader) ([]models.DailyEntry, error) {
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	setters := make([]columnSetter, len(header))
	dateIdx := -1
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == dateColumn {
			dateIdx = i
			continue
		}
		set, ok := dailyColumns[name]
		if !ok {
			return nil, fmt.Errorf("invalid header: %w: %q", ErrUnknownColumn, h)
		}
		setters[i] = set
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("invalid header: missing %q column", dateColumn)
	}

	var entries []models.DailyEntry
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %s: %w", line, record[dateIdx], err)
		}

		var status models.DailyStatus
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if setters[i] == nil || cell == "" {
				continue
			}
			if err := setters[i](&status, cell); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", line, header[i], err)
			}
		}
		entries = append(entries, models.DailyEntry{Date: date, Status: status})
	}

	return entries, nil
}
