package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bricks/internal/audio"
	"github.com/vovakirdan/tui-bricks/internal/bricks"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
)

var (
	flagMute    bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a match in this terminal.

Controls:
  Left/A, Right/D  - Move paddle
  Space            - Launch the ball
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, wide paddle, slow ball
  normal - the configured values
  hard   - 1 life, narrow paddle, fast ball, fewer power-ups

Examples:
  bricks play
  bricks play --difficulty easy
  bricks play --config ./my-bricks.yaml
  bricks play --highscore-file ./highscore.txt --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	game, err := loadGameConfig()
	if err != nil {
		return err
	}

	// Logging to the terminal would tear the alternate screen.
	if flagLogFile != "" {
		f, err := os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	scores, _, closeScores := openHighScores()
	defer closeScores()

	var sink bricks.AudioSink
	if !flagMute {
		player := audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("audio disabled", "error", err)
		} else {
			defer player.Close()
			sink = player
		}
	}

	best, err := tui.Run(tui.Options{
		Game: game,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Audio:  sink,
		Scores: scores,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	fmt.Printf("Best: %d\n", best)
	return nil
}
