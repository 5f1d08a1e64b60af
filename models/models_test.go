package models

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStateManager_UpdateDailyMergesSources(t *testing.T) {
	sm := &StateManager{}
	one, two := 1, 2
	sm.UpdateDaily("a.csv", []DailyEntry{
		{Date: day("2024-03-02"), Status: DailyStatus{AwakeCount: &one}},
		{Date: day("2024-03-01")},
	})
	sm.UpdateDaily("b.csv", []DailyEntry{{Date: day("2024-03-02").Add(9 * time.Hour), Status: DailyStatus{AwakeCount: &two}}})

	entries := sm.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-03-01", DateKey(entries[0].Date))

	status, ok := sm.StatusFor(day("2024-03-02"))
	require.True(t, ok)
	assert.Equal(t, 2, *status.AwakeCount)

	_, ok = sm.StatusFor(day("2024-03-03"))
	assert.False(t, ok)
}

func TestStateManager_UpdateDailyReplacesSource(t *testing.T) {
	sm := &StateManager{}
	sm.UpdateDaily("march.csv", []DailyEntry{{Date: day("2024-03-01")}, {Date: day("2024-03-02")}})
	sm.UpdateDaily("march.csv", []DailyEntry{{Date: day("2024-03-02")}})

	_, ok := sm.StatusFor(day("2024-03-01"))
	assert.False(t, ok)
	assert.Len(t, sm.Entries(), 1)
}

func TestStateManager_RemoveDaily(t *testing.T) {
	sm := &StateManager{}
	one, two := 1, 2
	sm.UpdateDaily("a.csv", []DailyEntry{{Date: day("2024-03-01"), Status: DailyStatus{AwakeCount: &one}}})
	sm.UpdateDaily("b.csv", []DailyEntry{{Date: day("2024-03-01"), Status: DailyStatus{AwakeCount: &two}}, {Date: day("2024-03-05")}})

	sm.RemoveDaily("b.csv")

	status, ok := sm.StatusFor(day("2024-03-01"))
	require.True(t, ok)
	assert.Equal(t, 1, *status.AwakeCount)
	_, ok = sm.StatusFor(day("2024-03-05"))
	assert.False(t, ok)

	sm.RemoveDaily("a.csv")
	sm.RemoveDaily("never-loaded.csv")
	assert.Empty(t, sm.Entries())
}

func TestStateManager_StatusForReturnsCopy(t *testing.T) {
	sm := &StateManager{}
	sm.UpdateDaily("march.csv", []DailyEntry{{Date: day("2024-03-01"), Status: DailyStatus{Weather: WeatherSunny}}})

	status, _ := sm.StatusFor(day("2024-03-01"))
	status.Weather = WeatherSnowy

	again, _ := sm.StatusFor(day("2024-03-01"))
	assert.Equal(t, WeatherSunny, again.Weather)
}

func TestStateManager_ConcurrentAccess(t *testing.T) {
	sm := &StateManager{}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			sm.UpdateProfile(UserProfile{Age: i})
			sm.UpdateDaily(fmt.Sprintf("day-%02d.csv", i), []DailyEntry{{Date: day("2024-03-01").AddDate(0, 0, i)}})
		}(i)
		go func() {
			defer wg.Done()
			_ = sm.Profile()
			_ = sm.Entries()
		}()
	}
	wg.Wait()
	assert.Len(t, sm.Entries(), 16)
}

func TestNutrientTargetSet(t *testing.T) {
	var s NutrientTargetSet
	s2 := s.With(Magnesium, 520).With("unknown", 1)
	assert.Zero(t, s.Magnesium)
	assert.Equal(t, 520.0, s2.Get(Magnesium))
	assert.Zero(t, s2.Get("unknown"))

	for _, n := range Nutrients {
		assert.NotEmpty(t, Units[n], n)
	}
}

func TestUserProfile_HasIndicator(t *testing.T) {
	p := UserProfile{MetabolicStressIndicators: []string{IndicatorMorningFatigue}}
	assert.True(t, p.HasIndicator(IndicatorMorningFatigue))
	assert.False(t, p.HasIndicator(IndicatorNightWake))
}

func TestBloodPressure_String(t *testing.T) {
	assert.Equal(t, "128/84", BloodPressure{Systolic: 128, Diastolic: 84}.String())
}
