package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a menu to pick difficulty or view scores",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a match ends, you return to the menu to play again.

Examples:
  bricks menu
  bricks menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	current, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	for {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}

		item, err := tui.RunMenu(width, height, current)
		if err != nil {
			return err
		}

		switch item.Choice {
		case tui.MenuQuit:
			return nil

		case tui.MenuScores:
			if err := browseScores(width, height); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case tui.MenuPlay:
			current = item.Difficulty
			flagDifficulty = string(current)
			if err := runPlay(cmd, args); err != nil {
				return err
			}
		}
	}
}

func browseScores(width, height int) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return tui.RunScoreboard(store, width, height)
}
