package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-bricks/internal/storage"
)

// fakeScores is a concurrency-safe in-memory Scores.
type fakeScores struct {
	mu      sync.Mutex
	records []storage.Record
	high    int
	err     error
}

func (f *fakeScores) TopRecords(gameID string, limit int) ([]storage.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.records[:min(limit, len(f.records))], nil
}

func (f *fakeScores) HighScore(string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.high, f.err
}

func (f *fakeScores) Stats(gameID string) (*storage.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &storage.Stats{GameID: gameID, Records: len(f.records), HighScore: f.high}, nil
}

func (f *fakeScores) setHigh(n int) {
	f.mu.Lock()
	f.high = n
	f.mu.Unlock()
}

func newTestServer(t *testing.T, scores Scores) *httptest.Server {
	t.Helper()
	srv := NewServer(scores, log.New(io.Discard))
	srv.PollInterval = 10 * time.Millisecond
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fakeScores{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestHighScore(t *testing.T) {
	ts := newTestServer(t, &fakeScores{high: 420})

	var got highScoreResponse
	status := getJSON(t, ts.URL+"/api/highscore", &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, highScoreResponse{Game: storage.GameID, HighScore: 420}, got)
}

func TestScores(t *testing.T) {
	scores := &fakeScores{}
	for _, s := range []int{300, 200, 100} {
		scores.records = append(scores.records, storage.Record{Score: s, Level: 2, RunID: "run"})
	}
	ts := newTestServer(t, scores)

	tests := []struct {
		name   string
		query  string
		status int
		count  int
	}{
		{"default limit", "", http.StatusOK, 3},
		{"explicit limit", "?limit=2", http.StatusOK, 2},
		{"clamped limit", "?limit=1000", http.StatusOK, 3},
		{"zero limit", "?limit=0", http.StatusBadRequest, 0},
		{"garbage limit", "?limit=ten", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/scores" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				var e errorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
				assert.Contains(t, e.Error, "invalid limit")
				return
			}
			var got []recordResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			require.Len(t, got, tt.count)
			assert.Equal(t, 1, got[0].Rank)
			assert.Equal(t, 300, got[0].Score)
		})
	}
}

func TestStoreErrors(t *testing.T) {
	ts := newTestServer(t, &fakeScores{err: errors.New("disk on fire")})

	for _, path := range []string{"/api/highscore", "/api/scores", "/api/stats"} {
		var e errorResponse
		status := getJSON(t, ts.URL+path, &e)
		assert.Equal(t, http.StatusInternalServerError, status, path)
		assert.Equal(t, "disk on fire", e.Error)
	}
}

func TestStatsWithSQLite(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()
	store.SaveRecord(storage.Record{Score: 50, Level: 1})
	store.SaveRecord(storage.Record{Score: 150, Level: 2})

	ts := newTestServer(t, store)

	var got statsResponse
	status := getJSON(t, ts.URL+"/api/stats", &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, got.Records)
	assert.Equal(t, 150, got.HighScore)
	assert.Equal(t, 100.0, got.AvgScore)
	assert.Equal(t, 2, got.MaxLevel)
}

func TestLiveFeed(t *testing.T) {
	scores := &fakeScores{high: 120}
	ts := newTestServer(t, scores)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got highScoreResponse
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 120, got.HighScore)

	scores.setHigh(260)
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 260, got.HighScore)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, &fakeScores{})
	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
