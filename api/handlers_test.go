package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aguxez/carnitarget/agent"
	"github.com/aguxez/carnitarget/history"
	"github.com/aguxez/carnitarget/models"
	"github.com/aguxez/carnitarget/targets"
)

func ptr[T any](v T) *T { return &v }

type fakePlanner struct {
	got agent.PlanRequest
	err error
}

func (f *fakePlanner) GenerateMealPlan(_ context.Context, req agent.PlanRequest) (agent.MealPlanResponse, error) {
	f.got = req
	if f.err != nil {
		return agent.MealPlanResponse{}, f.err
	}
	return agent.MealPlanResponse{
		Plan:            []agent.MealPlanFood{{Food: "ground beef", Weight: "500g", FoodCategory: agent.Lunch}},
		PlanExplanation: "Simple.",
	}, nil
}

func newTestServer(t *testing.T, planner MealPlanner) (*Server, *models.StateManager) {
	t.Helper()
	sm := &models.StateManager{}
	sm.UpdateProfile(models.UserProfile{
		Gender: models.Female,
		Weight: 70,
		CustomNutrientTargets: map[models.Nutrient]models.Customization{
			models.Iodine: {Mode: models.ModeManual, Value: ptr(220.0)},
		},
	})
	sm.UpdateDaily("march.csv", []models.DailyEntry{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Status: models.DailyStatus{Headache: ptr(8.0)}},
		{Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Status: models.DailyStatus{}},
	})
	s := NewServer(sm, planner, targets.DefaultUnitOptions, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, 3, 1, 18, 30, 0, 0, time.Local) }
	return s, sm
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleTargets_Today(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes([]string{"*"}), http.MethodGet, "/targets", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[TargetsResponse](t, rec)
	assert.Equal(t, "2024-03-01", resp.Date)
	assert.Equal(t, 400.0, resp.Base.Magnesium)
	assert.Equal(t, 520.0, resp.Final.Magnesium)
	assert.Equal(t, 220.0, resp.Final.Iodine)
	assert.Equal(t, []models.Nutrient{models.Iodine}, resp.Overridden)
	require.Len(t, resp.Factors, 1)
	assert.Equal(t, "pain.headache", resp.Factors[0].Source)
	assert.Equal(t, 2.12, resp.SaltTeaspoons)
	assert.Equal(t, "mg", resp.Units[models.Magnesium])
}

func TestHandleTargets_DayWithoutLog(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes([]string{"*"}), http.MethodGet, "/targets?date=2024-01-15", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[TargetsResponse](t, rec)
	assert.Equal(t, resp.Base, resp.Final)
	assert.Empty(t, resp.Factors)
	assert.Contains(t, rec.Body.String(), `"factors":[]`)
}

func TestHandleTargets_BadDate(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes([]string{"*"}), http.MethodGet, "/targets?date=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "invalid date")
}

func TestHandleCompute(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body := `{"profile":{"weight":100},"status":{"exercise_intensity":"intense","exercise_minutes":45}}`
	rec := do(t, s.Routes([]string{"*"}), http.MethodPost, "/targets/compute", body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[TargetsResponse](t, rec)
	assert.Empty(t, resp.Date)
	assert.Equal(t, 160.0, resp.Base.Protein)
	assert.Equal(t, 192.0, resp.Final.Protein)
}

func TestHandleCompute_BadBody(t *testing.T) {
	s, _ := newTestServer(t, nil)
	for _, body := range []string{`{`, `{"profile":{"wieght":80}}`} {
		rec := do(t, s.Routes([]string{"*"}), http.MethodPost, "/targets/compute", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHandleHistory(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes([]string{"*"}), http.MethodGet, "/history?from=2024-03-01&to=2024-03-01", "")

	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[history.Summary](t, rec)
	require.Len(t, summary.Days, 1)
	assert.Equal(t, 1, summary.Previous.Days)
	assert.Equal(t, 120.0, summary.Delta[models.Magnesium])
}

func TestHandleHistory_BadRange(t *testing.T) {
	s, _ := newTestServer(t, nil)
	for _, q := range []string{"", "?from=2024-03-01", "?from=2024-03-05&to=2024-03-01"} {
		rec := do(t, s.Routes([]string{"*"}), http.MethodGet, "/history"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestHandleMealPlanRequest(t *testing.T) {
	planner := &fakePlanner{}
	s, _ := newTestServer(t, planner)
	rec := do(t, s.Routes([]string{"*"}), http.MethodPost, "/mealplan", "")

	require.Equal(t, http.StatusOK, rec.Code)
	plan := decode[agent.MealPlanResponse](t, rec)
	assert.Equal(t, "ground beef", plan.Plan[0].Food)
	assert.Equal(t, "2024-03-01", planner.got.Date)
	assert.Equal(t, 520.0, planner.got.Targets.Magnesium)
	assert.Equal(t, []models.Nutrient{models.Iodine}, planner.got.Overridden)
}

func TestHandleMealPlanRequest_Failures(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes([]string{"*"}), http.MethodPost, "/mealplan", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s, _ = newTestServer(t, &fakePlanner{err: errors.New("llm down")})
	rec = do(t, s.Routes([]string{"*"}), http.MethodPost, "/mealplan", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "llm down")
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes([]string{"*"}), http.MethodDelete, "/targets", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutes_Health(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s.Routes([]string{"*"}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRoutes_CORS(t *testing.T) {
	s, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	s.Routes([]string{"http://app.test"}).ServeHTTP(rec, req)

	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := loggingMiddleware(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	do(t, h, http.MethodGet, "/brew", "")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/brew", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}

func TestHandleTargets_UnencodableResultIs500(t *testing.T) {
	s, sm := newTestServer(t, nil)
	sm.UpdateDaily("bad.csv", []models.DailyEntry{{
		Date:   time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Status: models.DailyStatus{Weight: ptr(math.NaN()), BodyFatPercentage: ptr(20.0)},
	}})

	rec := do(t, s.Routes([]string{"*"}), http.MethodGet, "/targets?date=2024-03-03", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "encoding response", decode[errorResponse](t, rec).Error)
}

func TestWriteJSON(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, math.Inf(1))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}
