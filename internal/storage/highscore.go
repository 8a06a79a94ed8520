package storage

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/bricks"
)

var (
	_ bricks.HighScores = (*HighScoreBook)(nil)
	_ bricks.HighScores = (*FileHighScore)(nil)
)

// HighScoreBook adapts a Store to bricks.HighScores. Every Write appends a
// record, so the table holds the history of broken records.
type HighScoreBook struct {
	store  *Store
	gameID string
	runID  string
	logger *log.Logger

	// Level, when set, supplies the level stored with each record.
	Level func() int
}

// NewHighScoreBook creates a book for one run. A nil logger uses the default logger.
func NewHighScoreBook(store *Store, runID string, logger *log.Logger) *HighScoreBook {
	if logger == nil {
		logger = log.Default()
	}
	return &HighScoreBook{store: store, gameID: GameID, runID: runID, logger: logger}
}

// Read returns the stored high score, or 0 when it cannot be read.
func (b *HighScoreBook) Read() int {
	score, err := b.store.HighScore(b.gameID)
	if err != nil {
		b.logger.Warn("reading high score", "err", err)
		return 0
	}
	return score
}

// Write stores a new high score record.
func (b *HighScoreBook) Write(score int) {
	level := 0
	if b.Level != nil {
		level = b.Level()
	}
	if _, err := b.store.SaveRecord(Record{GameID: b.gameID, RunID: b.runID, Score: score, Level: level}); err != nil {
		b.logger.Error("saving high score", "score", score, "err", err)
	}
}

// FileHighScore keeps the high score as a decimal number in a text file.
type FileHighScore struct {
	Path   string
	logger *log.Logger
}

// NewFileHighScore creates a file-backed high score. A nil logger uses the default logger.
func NewFileHighScore(path string, logger *log.Logger) *FileHighScore {
	if logger == nil {
		logger = log.Default()
	}
	return &FileHighScore{Path: path, logger: logger}
}

// Read returns the stored score. A missing or unreadable file counts as 0.
func (f *FileHighScore) Read() int {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("reading high score file", "path", f.Path, "err", err)
		}
		return 0
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		f.logger.Warn("malformed high score file", "path", f.Path, "err", err)
		return 0
	}
	return score
}

// Write replaces the stored score.
func (f *FileHighScore) Write(score int) {
	if err := os.WriteFile(f.Path, []byte(strconv.Itoa(score)), 0o600); err != nil {
		f.logger.Error("writing high score file", "path", f.Path, "err", err)
	}
}
