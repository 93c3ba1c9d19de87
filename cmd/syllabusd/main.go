package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/coursetrack/syllabus-tracker/internal/common"
	"github.com/coursetrack/syllabus-tracker/internal/export"
	"github.com/coursetrack/syllabus-tracker/internal/extract"
	"github.com/coursetrack/syllabus-tracker/internal/ingest"
	"github.com/coursetrack/syllabus-tracker/internal/llm"
	"github.com/coursetrack/syllabus-tracker/internal/llm/openrouter"
	"github.com/coursetrack/syllabus-tracker/internal/pipeline"
	"github.com/coursetrack/syllabus-tracker/internal/repository"
	"github.com/coursetrack/syllabus-tracker/internal/server"
	"github.com/coursetrack/syllabus-tracker/internal/studyplan"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Config
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Internals log through slog; keep one JSON handler for the whole process.
	ilog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(ilog)

	// Cache store
	repo, err := repository.Open(ctx, cfg.Database, ilog)
	if err != nil {
		log.Fatalf("opening cache store: %v", err)
	}
	defer repo.Close()

	if err := repo.Ping(ctx); err != nil {
		log.Fatalf("cache store health failed: %v", err)
	}
	log.Infow("cache store health OK", "driver", cfg.Database.Driver)

	// Extraction backends
	local := extract.NewLocalExtractor(cfg.Extract.DefaultYear, ilog)

	var remoteExtractor llm.EventExtractor
	var remotePlans llm.PlanGenerator
	if cfg.Extract.Backend == string(pipeline.BackendRemote) {
		client := openrouter.NewClient(openrouter.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			APIKey:  cfg.LLM.APIKey,
			Referer: cfg.LLM.Referer,
			Timeout: cfg.LLM.Timeout,
		}, ilog)
		remoteExtractor = client
		remotePlans = client
	}

	proc := pipeline.NewProcessor(pipeline.Config{
		Backend:         pipeline.Backend(cfg.Extract.Backend),
		FallbackToLocal: cfg.Extract.FallbackToLocal,
	}, local, remoteExtractor, ilog).WithReader(ingest.NewDocumentReader(ilog))

	plans := studyplan.NewGenerator(remotePlans, repo,
		cfg.Extract.Backend != string(pipeline.BackendRemote), ilog)

	// HTTP server
	handler := server.NewHandler(
		repo,
		proc,
		plans,
		export.NewService(ilog),
		logger,
	)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("http serving on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	fmt.Println("stopped.")
}
