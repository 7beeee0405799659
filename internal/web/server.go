// Package web exposes the evaluation workflow over HTTP as plain JSON, the
// tool's only remote surface.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"traduco.dev/pkg/traduco/internal/adapter"
	"traduco.dev/pkg/traduco/internal/domain"
	m "traduco.dev/pkg/traduco/internal/model"
)

const maxRequestBody = 1 << 20

// Server is the HTTP server for evaluations and the leaderboard.
type Server struct {
	workflow domain.Workflow
	points   adapter.PointsAggregator
	srv      *http.Server
}

// NewServer creates a new Server over a workflow and a points aggregator.
func NewServer(wf domain.Workflow, points adapter.PointsAggregator) *Server {
	return &Server{workflow: wf, points: points}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = s.srv.Shutdown(shutdownCtx)
	}()

	slog.Info("http server listening", "addr", addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

type evaluateRequest struct {
	User      string `json:"user"`
	Source    string `json:"source"`
	Student   string `json:"student"`
	Reference string `json:"reference"`
}

type evaluateResponse struct {
	Segments []m.AnnotatedSegment `json:"segments"`
	Feedback []m.FeedbackItem     `json:"feedback"`
	Scores   m.ScoreMap           `json:"scores"`
	Points   int                  `json:"points"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req evaluateRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()

	eval, err := s.workflow.Evaluate(r.Context(), domain.EvaluateArgs{
		User:      req.User,
		Source:    req.Source,
		Student:   req.Student,
		Reference: req.Reference,
	})
	if err != nil {
		slog.Error("evaluation failed", "user", req.User, "error", err)
		http.Error(w, "evaluation failed", http.StatusInternalServerError)

		return
	}

	evaluationsTotal.Inc()
	evaluationDuration.Observe(time.Since(start).Seconds())

	for _, item := range eval.Feedback {
		feedbackItemsTotal.WithLabelValues(string(item.Kind)).Inc()
	}

	writeJSON(w, evaluateResponse{
		Segments: eval.Segments,
		Feedback: eval.Feedback,
		Scores:   eval.Scores,
		Points:   eval.Points,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := s.points.Leaderboard()
	if entries == nil {
		entries = []m.LeaderboardEntry{}
	}

	writeJSON(w, entries)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
