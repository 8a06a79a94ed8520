package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
	"github.com/vovakirdan/tui-bricks/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bricks SSH server",
	Long: `Start an SSH server where every connection plays its own match.
Scores are stored per-server (all players share the same high score).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bricks/host_key

With --http a read-only scoreboard is served as well:
  GET /api/highscore, /api/scores?limit=N, /api/stats, /healthz
  GET /ws  (websocket, pushes the high score when it changes)

Examples:
  bricks serve                           # Listen on :23234 with auto-generated key
  bricks serve --ssh :2222               # Listen on port 2222
  bricks serve --http :8080              # Also serve the scoreboard
  bricks serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Also serve the HTTP scoreboard on this address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	game, err := loadGameConfig()
	if err != nil {
		return err
	}

	_, store, closeStore := openHighScores()
	defer closeStore()
	if flagHTTPAddr != "" && store == nil {
		return errors.New("the HTTP scoreboard needs the scores database")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: expandHome(flagHostKey),
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        game,
	}, store)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting bricks SSH server on %s\n", sshServer.Addr())
	fmt.Println("Press Ctrl+C to stop")

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- sshServer.ListenAndServe(ctx) }()

	if flagHTTPAddr != "" {
		running++
		scoreboard := web.NewServer(store, logger.WithPrefix("bricks-web"))
		go func() { errCh <- scoreboard.ListenAndServe(ctx, flagHTTPAddr) }()
	}

	// The first server to fail takes the other one down with it.
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	return firstErr
}
