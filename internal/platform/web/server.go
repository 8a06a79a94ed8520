// Package web serves a read-only HTTP scoreboard.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bricks/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Scores is the read side of the score store.
type Scores interface {
	TopRecords(gameID string, limit int) ([]storage.Record, error)
	HighScore(gameID string) (int, error)
	Stats(gameID string) (*storage.Stats, error)
}

// Server exposes scores over HTTP.
type Server struct {
	scores   Scores
	logger   *log.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	// PollInterval is how often the live feed checks for a new high score.
	PollInterval time.Duration
}

// NewServer creates the scoreboard server. A nil logger uses the default logger.
func NewServer(scores Scores, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		scores: scores,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		PollInterval: 2 * time.Second,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.StandardLog(),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/highscore", s.handleHighScore)
		r.Get("/scores", s.handleScores)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/ws", s.handleLive)

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP scoreboard", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type highScoreResponse struct {
	Game      string `json:"game"`
	HighScore int    `json:"high_score"`
}

type recordResponse struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
}

type statsResponse struct {
	Game       string    `json:"game"`
	Records    int       `json:"records"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	MaxLevel   int       `json:"max_level"`
	LastPlayed time.Time `json:"last_played"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok")) //nolint:errcheck
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	score, err := s.scores.HighScore(storage.GameID)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, highScoreResponse{Game: storage.GameID, HighScore: score})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	records, err := s.scores.TopRecords(storage.GameID, limit)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	resp := make([]recordResponse, len(records))
	for i, rec := range records {
		resp[i] = recordResponse{
			Rank:      i + 1,
			Score:     rec.Score,
			Level:     rec.Level,
			RunID:     rec.RunID,
			CreatedAt: rec.CreatedAt,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.scores.Stats(storage.GameID)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statsResponse{
		Game:       st.GameID,
		Records:    st.Records,
		HighScore:  st.HighScore,
		AvgScore:   st.AvgScore,
		MaxLevel:   st.MaxLevel,
		LastPlayed: st.LastPlayed,
	})
}

// handleLive pushes the high score to a websocket client whenever it changes.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Reading is only used to notice the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	last := -1
	for {
		score, err := s.scores.HighScore(storage.GameID)
		if err != nil {
			s.logger.Warn("live feed: reading high score", "error", err)
		} else if score != last {
			if err := conn.WriteJSON(highScoreResponse{Game: storage.GameID, HighScore: score}); err != nil {
				return
			}
			last = score
		}

		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return min(n, maxLimit), nil
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("writing response", "error", err)
	}
}
