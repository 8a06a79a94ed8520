package bricks

import (
	"time"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/sched"
)

// SimOptions configure a headless run.
type SimOptions struct {
	Seed     int64
	MaxSteps int // Scheduler callbacks to run; zero or less means 10000
	Audio    AudioSink
	Scores   HighScores
	Policy   EffectPolicy
}

// SimResult summarises a headless run.
type SimResult struct {
	Match    *Match
	Steps    int
	Elapsed  time.Duration // Virtual time
	Snapshot Snapshot
}

// Simulate plays a match on a virtual clock with the autopilot at the
// paddle, one input per scheduler step, until game over or MaxSteps.
func Simulate(cfg config.Bricks, opts SimOptions) (SimResult, error) {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 10000
	}

	clock := sched.NewManual()
	router := core.NewInputRouter()
	m, err := NewMatch(cfg, Deps{
		Scheduler: clock,
		Input:     router,
		Audio:     opts.Audio,
		Scores:    opts.Scores,
		Policy:    opts.Policy,
		Seed:      opts.Seed,
	})
	if err != nil {
		return SimResult{}, err
	}
	m.Start()

	steps := 0
	for steps < opts.MaxSteps && m.Phase() != PhaseGameOver {
		if a := Autopilot(m); a != core.ActionNone {
			router.Dispatch(a)
		}
		if !clock.Step() && m.Phase() != PhaseAwaitingLaunch {
			break
		}
		steps++
	}
	m.Stop()

	return SimResult{
		Match:    m,
		Steps:    steps,
		Elapsed:  clock.Now(),
		Snapshot: m.Snapshot(),
	}, nil
}
