package bricks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/sched"
)

type recordingAudio struct {
	cues []Cue
}

func (r *recordingAudio) Play(c Cue) { r.cues = append(r.cues, c) }

func (r *recordingAudio) count(c Cue) int {
	n := 0
	for _, v := range r.cues {
		if v == c {
			n++
		}
	}
	return n
}

type memScores struct {
	stored int
	reads  int
	writes []int
}

func (s *memScores) Read() int {
	s.reads++
	return s.stored
}

func (s *memScores) Write(score int) {
	s.writes = append(s.writes, score)
	s.stored = score
}

type fixture struct {
	match  *Match
	clock  *sched.Manual
	router *core.InputRouter
	audio  *recordingAudio
	scores *memScores
}

// newFixture builds a started match on a manual clock. mutate may adjust the
// default config before the match is created.
func newFixture(t *testing.T, seed int64, mutate func(*config.Bricks)) *fixture {
	t.Helper()
	cfg := config.DefaultBricksConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	f := &fixture{
		clock:  sched.NewManual(),
		router: core.NewInputRouter(),
		audio:  &recordingAudio{},
		scores: &memScores{},
	}
	m, err := NewMatch(cfg, Deps{
		Scheduler: f.clock,
		Input:     f.router,
		Audio:     f.audio,
		Scores:    f.scores,
		Seed:      seed,
	})
	require.NoError(t, err)
	m.Start()
	f.match = m
	return f
}

func noPowerUps(c *config.Bricks) { c.PowerUps.Chance = 0 }

// moveTo centres an entity on (cx, cy).
func moveTo(e Entity, cx, cy float64) {
	b := e.Box()
	e.MoveBy(cx-b.CenterX(), cy-b.CenterY())
}

// keepOneBrick removes every brick except the first one with the given hits.
func keepOneBrick(t *testing.T, m *Match, hits int) *Brick {
	t.Helper()
	var kept *Brick
	for _, e := range m.Arena().OfKind(KindBrick) {
		b := e.(*Brick)
		if kept == nil && b.Hits() == hits {
			kept = b
			continue
		}
		m.Arena().Remove(b.Handle())
	}
	require.NotNil(t, kept)
	return kept
}

// dropBall launches if needed and pushes the primary ball below the field.
func (f *fixture) dropBall(t *testing.T) {
	t.Helper()
	if f.match.Phase() == PhaseAwaitingLaunch {
		require.True(t, f.router.Dispatch(core.ActionLaunch))
	}
	ball := f.match.Ball()
	moveTo(ball, ball.Box().CenterX(), f.match.Config().Field.Height+50)
	f.clock.Advance(f.match.Config().Timing.Tick.Std())
}
