// Package history aggregates targets over logged days so a period can be
// compared with the one before it.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/aguxez/carnitarget/models"
	"github.com/aguxez/carnitarget/targets"
)

var ErrInvalidPeriod = errors.New("invalid period")

const secondsPerDay = 24 * 60 * 60

// Period is an inclusive range of calendar days.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func NewPeriod(from, to time.Time) (Period, error) {
	p := Period{From: day(from), To: day(to)}
	if p.From.After(p.To) {
		return Period{}, fmt.Errorf("%w: %s is after %s", ErrInvalidPeriod, models.DateKey(from), models.DateKey(to))
	}
	return p, nil
}

// Days is the number of calendar days covered.
func (p Period) Days() int {
	return int((p.To.Unix()-p.From.Unix())/secondsPerDay) + 1
}

// Previous is the period of equal length that ends the day before p starts.
func (p Period) Previous() Period {
	n := p.Days()
	return Period{From: p.From.AddDate(0, 0, -n), To: p.From.AddDate(0, 0, -1)}
}

func (p Period) Contains(t time.Time) bool {
	d := day(t)
	return !d.Before(p.From) && !d.After(p.To)
}

// Day is one logged day with its computed targets.
type Day struct {
	Date  string                   `json:"date"`
	Base  models.NutrientTargetSet `json:"base"`
	Final models.NutrientTargetSet `json:"final"`
}

// Averages is the per-nutrient mean over the logged days of a period.
type Averages struct {
	Days  int                         `json:"days"`
	Base  map[models.Nutrient]float64 `json:"base"`
	Final map[models.Nutrient]float64 `json:"final"`
}

// Summary compares a period with the one before it. Delta is current minus
// previous final average per nutrient, and is empty when either period has no
// logged days.
type Summary struct {
	Period   Period                      `json:"period"`
	Days     []Day                       `json:"days"`
	Current  Averages                    `json:"current"`
	Previous Averages                    `json:"previous"`
	Delta    map[models.Nutrient]float64 `json:"delta"`
}

// Evaluate computes targets for a single entry, using the day's weight when it
// was logged.
func Evaluate(profile models.UserProfile, e models.DailyEntry) Day {
	weight := profile.Weight
	if e.Status.Weight != nil {
		weight = *e.Status.Weight
	}
	base := targets.ResolveBaseTargets(profile, weight)
	status := e.Status
	final := targets.ApplyOverrides(
		targets.ApplyDailyAdjustments(base, &status, profile.Weight),
		profile.CustomNutrientTargets,
	)
	return Day{Date: models.DateKey(e.Date), Base: base, Final: final}
}

// Summarize evaluates every entry in period and in the period before it.
func Summarize(profile models.UserProfile, entries []models.DailyEntry, period Period) Summary {
	prev := period.Previous()

	var current, previous []Day
	for _, e := range entries {
		switch {
		case period.Contains(e.Date):
			current = append(current, Evaluate(profile, e))
		case prev.Contains(e.Date):
			previous = append(previous, Evaluate(profile, e))
		}
	}

	s := Summary{
		Period:   period,
		Days:     current,
		Current:  average(current),
		Previous: average(previous),
		Delta:    map[models.Nutrient]float64{},
	}
	if s.Current.Days > 0 && s.Previous.Days > 0 {
		for _, n := range models.Nutrients {
			s.Delta[n] = s.Current.Final[n] - s.Previous.Final[n]
		}
	}
	return s
}

func average(days []Day) Averages {
	a := Averages{
		Days:  len(days),
		Base:  make(map[models.Nutrient]float64, len(models.Nutrients)),
		Final: make(map[models.Nutrient]float64, len(models.Nutrients)),
	}
	if len(days) == 0 {
		return a
	}
	for _, d := range days {
		for _, n := range models.Nutrients {
			a.Base[n] += d.Base.Get(n)
			a.Final[n] += d.Final.Get(n)
		}
	}
	for _, n := range models.Nutrients {
		a.Base[n] /= float64(len(days))
		a.Final[n] /= float64(len(days))
	}
	return a
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
