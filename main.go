package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aguxez/carnitarget/agent"
	"github.com/aguxez/carnitarget/api"
	"github.com/aguxez/carnitarget/config"
	"github.com/aguxez/carnitarget/filewatch"
	"github.com/aguxez/carnitarget/logging"
	"github.com/aguxez/carnitarget/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize state manager
	sm := &models.StateManager{}

	watchPaths := []string{cfg.ProfileDir(), cfg.DailyDir()}
	for _, p := range watchPaths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			logger.Fatal("creating data dir", zap.String("path", p), zap.Error(err))
		}
	}

	fw, err := filewatch.NewFileWatcher(watchPaths, sm, logger)
	if err != nil {
		logger.Fatal("creating file watcher", zap.Error(err))
	}
	defer fw.Close()

	// On init, load into memory
	if err := fw.LoadAll(cfg.DataDir); err != nil {
		logger.Fatal("loading data", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	go fw.Watch(ctx)

	var planner api.MealPlanner
	if cfg.LLM.APIKey != "" {
		llm, err := agent.NewOpenRouterLLM(cfg.LLM)
		if err != nil {
			logger.Fatal("creating llm client", zap.Error(err))
		}
		planner = agent.NewMealPlanAgent(llm, cfg.LLM.MemorySize, logger)
	} else {
		logger.Warn("OPENROUTER_API_KEY not set, meal planning disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewServer(sm, planner, cfg.Units(), logger).Routes(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutting down server", zap.Error(err))
		}
	}()

	logger.Info("server starting", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
