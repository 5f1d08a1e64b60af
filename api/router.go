package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Routes returns the service handler with CORS and request logging applied.
func (s *Server) Routes(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/targets", s.HandleTargets).Methods(http.MethodGet)
	r.HandleFunc("/targets/compute", s.HandleCompute).Methods(http.MethodPost)
	r.HandleFunc("/history", s.HandleHistory).Methods(http.MethodGet)
	r.HandleFunc("/mealplan", s.HandleMealPlanRequest).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.HandleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(loggingMiddleware(s.logger, r))
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapper.statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
