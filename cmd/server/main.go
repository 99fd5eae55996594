package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"github.com/bdqkit/bdqkit/catalog"
	"github.com/bdqkit/bdqkit/internal/logger"
	"github.com/bdqkit/bdqkit/pipeline"
	"github.com/bdqkit/bdqkit/terms"
)

type Server struct {
	pipeline *pipeline.Pipeline
	store    pipeline.RunStore
	timeout  time.Duration
	router   *chi.Mux
}

func NewServer(pl *pipeline.Pipeline, store pipeline.RunStore, timeout time.Duration) *Server {
	s := &Server{
		pipeline: pl,
		store:    store,
		timeout:  timeout,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/api/v1/health", s.handleHealth)
	r.Get("/api/v1/tests", s.handleListTests)

	r.Route("/api/v1/runs", func(r chi.Router) {
		r.Post("/", s.handleCreateRun)
		r.Get("/", s.handleListRuns)
		r.Get("/{runId}", s.handleGetRun)
		r.Get("/{runId}/results", s.handleGetResults)
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"testsLoaded": s.pipeline.Catalog().Len(),
	})
}

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	defs := s.pipeline.Catalog().Tests()
	tests := make([]testInfo, 0, len(defs))
	for _, d := range defs {
		tests = append(tests, testInfo{
			ID:         d.ID,
			GUID:       d.GUID,
			ActedUpon:  d.ActedUpon,
			Consulted:  d.Consulted,
			Parameters: d.Parameters,
			Library:    d.Library,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"tests": tests})
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if len(req.Columns) == 0 {
		respondError(w, http.StatusBadRequest, "columns are required", nil)
		return
	}
	if req.IDColumn == "" {
		respondError(w, http.StatusBadRequest, "idColumn is required", nil)
		return
	}

	ds, err := pipeline.NewDataset(req.Dataset, req.IDColumn, req.Columns, req.Rows)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dataset", err)
		return
	}

	result, runErr := s.pipeline.Run(r.Context(), ds, pipeline.Options{
		Timeout:   s.timeout,
		Prefilter: req.Prefilter,
		TestIDs:   req.Tests,
	})

	// Errors with no run result: bad prefilter, engine timeout or failure.
	if result == nil {
		var timeout *pipeline.ExecutionTimeout
		var failure *pipeline.ExecutionFailure
		status := http.StatusBadRequest
		switch {
		case errors.As(runErr, &timeout):
			status = http.StatusGatewayTimeout
		case errors.As(runErr, &failure):
			status = http.StatusBadGateway
		}
		respondError(w, status, "run failed", runErr)
		return
	}

	resp := runResponse{
		RunID:     result.RunID,
		RequestID: result.RequestID,
		Status:    pipeline.RunCompleted,
		Rows:      result.Rows,
		Summary:   result.Summary,
	}

	switch {
	case errors.Is(runErr, pipeline.ErrNoApplicableTests):
		resp.Status = pipeline.RunNoApplicable
		resp.Warning = runErr.Error()
	case runErr != nil:
		// Partial aggregation: well-formed tests produced rows, the
		// malformed remainder is reported alongside them.
		resp.Warning = runErr.Error()
	}

	s.persistRun(result, ds, resp.Status)

	respondJSON(w, http.StatusOK, resp)
}

// persistRun records a finished run. Persistence failures are logged, not
// surfaced: the caller already holds the result.
func (s *Server) persistRun(result *pipeline.RunResult, ds *pipeline.Dataset, status string) {
	run := &pipeline.Run{
		ID:          result.RunID,
		RequestID:   result.RequestID,
		Dataset:     ds.Name,
		RecordCount: len(ds.Records),
		TestCount:   len(result.Applicable),
		StartedAt:   time.Now().Add(-result.Elapsed),
	}
	if err := s.store.CreateRun(run); err != nil {
		logger.Logger.Error("failed to persist run", "runId", result.RunID, "error", err)
		return
	}
	if err := s.store.AppendResults(result.RunID, result.Rows); err != nil {
		logger.Logger.Error("failed to persist results", "runId", result.RunID, "error", err)
	}
	if err := s.store.FinishRun(result.RunID, status, len(result.Rows)); err != nil {
		logger.Logger.Error("failed to finish run", "runId", result.RunID, "error", err)
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list runs", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runId")

	run, err := s.store.GetRun(runID)
	if err != nil {
		respondError(w, http.StatusNotFound, "run not found", err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runId")

	rows, err := s.store.Results(runID)
	if err != nil {
		respondError(w, http.StatusNotFound, "run not found", err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err := pipeline.WriteCSV(w, rows); err != nil {
			logger.Logger.Error("failed to write csv results", "runId", runID, "error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"results": rows})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

func main() {
	log := logger.Logger

	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		log.Error("CATALOG_PATH environment variable is required")
		os.Exit(1)
	}

	f, err := os.Open(catalogPath)
	if err != nil {
		log.Error("failed to open catalog", "path", catalogPath, "error", err)
		os.Exit(1)
	}
	cat, err := catalog.Load(f)
	f.Close()
	if err != nil {
		log.Error("failed to load catalog", "path", catalogPath, "error", err)
		os.Exit(1)
	}
	log.Info("catalog loaded", "path", catalogPath, "tests", cat.Len())

	engineCmd := os.Getenv("ENGINE_CMD")
	if engineCmd == "" {
		log.Error("ENGINE_CMD environment variable is required")
		os.Exit(1)
	}
	parts := strings.Fields(engineCmd)
	engine := pipeline.NewSubprocessEngine(parts[0], parts[1:]...)

	timeout := 60 * time.Second
	if t := os.Getenv("ENGINE_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			log.Error("invalid ENGINE_TIMEOUT", "value", t, "error", err)
			os.Exit(1)
		}
		timeout = d
	}

	var store pipeline.RunStore
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		store = pipeline.NewPostgresRunStore(db)
		log.Info("using postgres run store")
	} else {
		store = pipeline.NewInMemoryRunStore()
		log.Info("DATABASE_URL not set, using in-memory run store")
	}

	pl := pipeline.New(cat, terms.NewResolver(), engine, log)
	server := NewServer(pl, store, timeout)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	log.Info("server stopped")
}
