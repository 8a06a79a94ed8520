// bricks is a brick-breaker for the terminal.
//
// Usage:
//
//	bricks play              - Play in this terminal
//	bricks menu              - Pick a difficulty or view scores
//	bricks scores            - Show high scores
//	bricks simulate          - Run a headless match with an autopilot paddle
//	bricks serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>          - Set RNG seed for reproducible gameplay
//	--db <path>             - Set database path (default: ~/.bricks/scores.db, env BRICKS_DB)
//	--config <path>         - Custom game config YAML (env BRICKS_CONFIG)
//	--difficulty <preset>   - easy, normal or hard
//	--highscore-file <path> - Keep the high score in a text file instead of the database
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bricks/internal/bricks"
	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var (
	// Global flags
	flagSeed          int64
	flagDBPath        string
	flagConfig        string
	flagDifficulty    string
	flagHighScoreFile string
	flagVerbose       bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "bricks",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bricks",
	Short: "Bricks - break bricks in your terminal",
	Long: `Bricks is a terminal brick-breaker: bounce the ball off the paddle,
clear the grid and keep going as every level speeds the ball up.

Available commands:
  play      - Play in this terminal
  menu      - Pick a difficulty or view scores
  scores    - View high scores
  simulate  - Run a headless match and print a summary
  serve     - Start SSH server for remote play

Examples:
  bricks play
  bricks play --difficulty hard
  bricks scores --browse
  bricks simulate --seed 42
  bricks serve --ssh :2222 --http :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bricks/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagHighScoreFile, "highscore-file", "", "Keep the high score in this text file instead of the database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env and fills unset flags from the environment.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not load .env", "error", err)
	}
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	for flag, env := range map[string]string{
		"db":     "BRICKS_DB",
		"config": "BRICKS_CONFIG",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil || f.Changed {
			continue
		}
		if v := os.Getenv(env); v != "" {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}
	return nil
}

// loadGameConfig loads the game config and applies the difficulty preset.
func loadGameConfig() (config.Bricks, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Bricks{}, err
	}
	cfg, err := config.LoadBricks(expandHome(flagConfig))
	if err != nil {
		return config.Bricks{}, err
	}
	config.ApplyBricksPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// openHighScores returns the configured high score store and a cleanup func.
// A database that cannot be opened disables high scores rather than play.
func openHighScores() (bricks.HighScores, *storage.Store, func()) {
	if flagHighScoreFile != "" {
		return storage.NewFileHighScore(expandHome(flagHighScoreFile), logger), nil, func() {}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, high scores disabled", "error", err)
		return nil, nil, func() {}
	}
	runID := uuid.NewString()
	logger.Debug("opened scores database", "path", flagDBPath, "run", runID)
	return storage.NewHighScoreBook(store, runID, logger), store, func() { store.Close() }
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
