package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded scores.

Every time a match beats the stored high score a record is added, so the
list is the history of broken records.

Examples:
  bricks scores
  bricks scores --limit 25
  bricks scores --browse
  bricks scores --highscore-file ./highscore.txt`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of records to show")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all records")
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagHighScoreFile != "" {
		hs := storage.NewFileHighScore(expandHome(flagHighScoreFile), logger)
		fmt.Printf("Best: %d\n", hs.Read())
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(storage.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	records, err := store.TopRecords(storage.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Bricks")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bricks play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, r := range records {
		fmt.Printf("  %-4d  %-8d  %-5d  %s\n", i+1, r.Score, r.Level, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(storage.GameID); err == nil {
		fmt.Printf("Best: %d  (%d records, best level %d)\n", stats.HighScore, stats.Records, stats.MaxLevel)
	}
	return nil
}
