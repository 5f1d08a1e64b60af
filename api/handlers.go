package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aguxez/carnitarget/agent"
	"github.com/aguxez/carnitarget/history"
	"github.com/aguxez/carnitarget/models"
	"github.com/aguxez/carnitarget/targets"
)

const dateLayout = "2006-01-02"

type MealPlanner interface {
	GenerateMealPlan(ctx context.Context, req agent.PlanRequest) (agent.MealPlanResponse, error)
}

// Store is the read side of the profile and daily log.
type Store interface {
	Profile() models.UserProfile
	StatusFor(day time.Time) (*models.DailyStatus, bool)
	Entries() []models.DailyEntry
}

type Server struct {
	store   Store
	planner MealPlanner
	units   targets.UnitOptions
	logger  *zap.Logger
	now     func() time.Time
}

// NewServer wires the handlers. planner may be nil, in which case meal plans
// are unavailable.
func NewServer(store Store, planner MealPlanner, units targets.UnitOptions, logger *zap.Logger) *Server {
	return &Server{store: store, planner: planner, units: units, logger: logger, now: time.Now}
}

type TargetsResponse struct {
	Date          string                     `json:"date,omitempty"`
	Base          models.NutrientTargetSet   `json:"base"`
	Final         models.NutrientTargetSet   `json:"final"`
	Factors       []targets.Factor           `json:"factors"`
	Overridden    []models.Nutrient          `json:"overridden"`
	SaltTeaspoons float64                    `json:"salt_teaspoons"`
	Units         map[models.Nutrient]string `json:"units"`
}

type ComputeRequest struct {
	Profile models.UserProfile  `json:"profile"`
	Status  *models.DailyStatus `json:"status,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respond(date string, profile models.UserProfile, status *models.DailyStatus) TargetsResponse {
	r := targets.Compute(profile, status)
	factors := r.Factors
	if factors == nil {
		factors = []targets.Factor{}
	}
	overridden := targets.Overridden(profile.CustomNutrientTargets)
	if overridden == nil {
		overridden = []models.Nutrient{}
	}
	return TargetsResponse{
		Date:          date,
		Base:          r.Base,
		Final:         r.Final,
		Factors:       factors,
		Overridden:    overridden,
		SaltTeaspoons: targets.SaltTeaspoons(r.Final.Sodium, s.units),
		Units:         models.Units,
	}
}

// day parses the date query parameter, defaulting to today.
func (s *Server) day(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, raw)
}

func (s *Server) HandleTargets(w http.ResponseWriter, r *http.Request) {
	day, err := s.day(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	status, _ := s.store.StatusFor(day)
	s.writeJSON(w, http.StatusOK, s.respond(models.DateKey(day), s.store.Profile(), status))
}

func (s *Server) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.respond("", req.Profile, req.Status))
}

func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := time.Parse(dateLayout, q.Get("from"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, q.Get("to"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
		return
	}
	period, err := history.NewPeriod(from, to)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, history.Summarize(s.store.Profile(), s.store.Entries(), period))
}

// HandleMealPlanRequest asks the planner for a plan meeting the day's final
// targets.
func (s *Server) HandleMealPlanRequest(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		s.writeError(w, http.StatusServiceUnavailable, "meal planning is not configured")
		return
	}
	day, err := s.day(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	s.logger.Info("generating meal plan", zap.String("date", models.DateKey(day)))

	profile := s.store.Profile()
	status, _ := s.store.StatusFor(day)
	t := s.respond(models.DateKey(day), profile, status)

	plan, err := s.planner.GenerateMealPlan(r.Context(), agent.PlanRequest{
		Date:       t.Date,
		Targets:    t.Final,
		Factors:    t.Factors,
		Overridden: t.Overridden,
	})
	if err != nil {
		s.logger.Error("generating meal plan", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// writeJSON encodes v before writing the header, so an unencodable value
// becomes a 500 rather than an empty 200.
func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"encoding response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, errorResponse{Error: msg})
}
