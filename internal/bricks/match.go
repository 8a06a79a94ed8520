package bricks

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Phase is the state of a match.
type Phase int

const (
	PhaseAwaitingLaunch Phase = iota // Ball rests on the paddle
	PhaseRunning                     // Ticks are being scheduled
	PhaseLevelTransition             // Grid cleared, waiting for the next level
	PhaseGameOver                    // Terminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingLaunch:
		return "awaiting_launch"
	case PhaseRunning:
		return "running"
	case PhaseLevelTransition:
		return "level_transition"
	case PhaseGameOver:
		return "game_over"
	default:
		panic(fmt.Sprintf("bricks: unknown phase %d", int(p)))
	}
}

// Overlay texts.
const (
	TextPressStart = "Press Space to start"
	TextGameOver   = "Game Over!"
)

// Deps are the collaborators a match drives or is driven by.
// Scheduler and Input are required; the rest default to no-ops.
type Deps struct {
	Scheduler core.Scheduler
	Input     core.InputSource
	Audio     AudioSink
	Scores    HighScores
	Policy    EffectPolicy // Overrides the config policy when set
	Seed      int64
}

// Match owns every entity and runs the tick state machine.
// All methods must be called from the goroutine that runs scheduler callbacks.
type Match struct {
	cfg    config.Bricks
	arena  *Arena
	paddle Handle
	ball   Handle // primary ball; losing it costs a life

	lives     int
	level     int
	score     int
	best      int
	phase     Phase
	ballSpeed float64
	ticks     uint64

	background core.Color
	palette    []core.Color
	banner     string

	rng     *RNG
	policy  EffectPolicy
	sched   core.Scheduler
	input   core.InputSource
	audio   AudioSink
	scores  HighScores
	pending core.Timer
	started bool
}

// NewMatch validates the config and creates a match that has not started yet.
func NewMatch(cfg config.Bricks, deps Deps) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Scheduler == nil || deps.Input == nil {
		return nil, errors.New("bricks: scheduler and input source are required")
	}

	policy := deps.Policy
	if policy == nil {
		p, err := PolicyFromConfig(cfg.PowerUps)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	background, _ := core.ParseColor(cfg.Theme.Background)
	palette := make([]core.Color, 0, len(cfg.Theme.Palette))
	for _, name := range cfg.Theme.Palette {
		c, _ := core.ParseColor(name)
		palette = append(palette, c)
	}

	m := &Match{
		cfg:        cfg,
		arena:      NewArena(),
		lives:      cfg.Gameplay.Lives,
		level:      1,
		phase:      PhaseAwaitingLaunch,
		ballSpeed:  cfg.Ball.Speed,
		background: background,
		palette:    palette,
		rng:        NewRNG(deps.Seed),
		policy:     policy,
		sched:      deps.Scheduler,
		input:      deps.Input,
		audio:      deps.Audio,
		scores:     deps.Scores,
	}
	if m.audio == nil {
		m.audio = silentAudio{}
	}
	if m.scores == nil {
		m.scores = noScores{}
	}
	return m, nil
}

// Start places the paddle and the grid, serves the first ball and binds
// input. Calling Start twice has no effect.
func (m *Match) Start() {
	if m.started {
		return
	}
	m.started = true

	m.paddle = m.arena.Add(NewPaddle(m.cfg.Field.Width/2, m.cfg.Paddle.Y, m.cfg.Paddle.Width, m.cfg.Paddle.Height))
	m.buildGrid()

	m.input.Bind(core.ActionLeft, func() { m.MovePaddle(-m.cfg.Paddle.Step) })
	m.input.Bind(core.ActionRight, func() { m.MovePaddle(m.cfg.Paddle.Step) })
	m.serve()
}

// Stop cancels pending timers and removes the match's input bindings.
// The match state is kept for rendering.
func (m *Match) Stop() {
	m.cancelPending()
	m.input.Unbind(core.ActionLeft)
	m.input.Unbind(core.ActionRight)
	m.input.Unbind(core.ActionLaunch)
}

// buildGrid adds one brick per row for every column that fits between the margins.
func (m *Match) buildGrid() {
	g := m.cfg.Bricks
	for x := g.Margin; x < m.cfg.Field.Width-g.Margin; x += g.Width {
		for _, row := range g.Rows {
			m.arena.Add(NewBrick(x+g.Width/2, row.Y, g.Width, g.Height, row.Hits))
		}
	}
}

// serve replaces every ball with a fresh one attached to the paddle and
// waits for launch.
func (m *Match) serve() {
	m.pending = nil
	for _, e := range m.arena.OfKind(KindBall) {
		m.arena.Remove(e.Handle())
	}

	p := m.Paddle()
	m.ball = m.arena.Add(NewBall(p.Box().CenterX(), m.cfg.Ball.SpawnY, m.cfg.Ball.Radius, m.ballSpeed))
	p.SetBall(m.ball)

	m.phase = PhaseAwaitingLaunch
	m.banner = TextPressStart
	m.input.BindOnce(core.ActionLaunch, func() { m.Launch() })
}

// Launch releases the ball and runs the first tick immediately.
// It reports false unless the match is awaiting launch.
func (m *Match) Launch() bool {
	if !m.started || m.phase != PhaseAwaitingLaunch {
		return false
	}
	m.input.Unbind(core.ActionLaunch)
	m.Paddle().Detach()
	m.banner = ""
	m.phase = PhaseRunning
	m.tick()
	return true
}

// MovePaddle moves the paddle by offset, rejecting moves that leave the field.
func (m *Match) MovePaddle(offset float64) bool {
	if !m.started {
		return false
	}
	return m.Paddle().Move(offset, m.cfg.Field.Width, m.arena)
}

func (m *Match) tick() {
	m.pending = nil
	if m.phase != PhaseRunning {
		return
	}
	m.ticks++

	for _, e := range m.arena.OfKind(KindBall) {
		if m.arena.Has(e.Handle()) {
			m.collide(e.(*Ball))
		}
	}

	if m.arena.Count(KindBrick) == 0 {
		m.levelUp()
		return
	}

	ball := m.Ball()
	if ball.Box().Bottom >= m.cfg.Field.Height {
		ball.Stop()
		m.lives--
		if m.lives < 0 {
			m.gameOver()
			return
		}
		m.pending = m.sched.ScheduleOnce(m.cfg.Timing.Respawn.Std(), m.serve)
		return
	}

	for _, e := range m.arena.OfKind(KindBall) {
		b := e.(*Ball)
		if b.handle != m.ball && b.Box().Bottom >= m.cfg.Field.Height {
			m.arena.Remove(b.handle)
			continue
		}
		b.Update(m.cfg.Field.Width)
	}
	m.pending = m.sched.ScheduleOnce(m.cfg.Timing.Tick.Std(), m.tick)
}

// collide runs the collision phase for one ball: direction and brick hits
// against solids, then pickups, then a power-up roll per overlapped brick
// that survived its hit.
func (m *Match) collide(b *Ball) {
	var (
		solids  []Entity
		pickups []*PowerUp
		hit     []*Brick
	)
	for _, e := range m.arena.Overlapping(b.Box(), b.handle) {
		switch v := e.(type) {
		case *PowerUp:
			pickups = append(pickups, v)
		case *Brick:
			hit = append(hit, v)
			solids = append(solids, e)
		default:
			solids = append(solids, e)
		}
	}

	b.Collide(solids, m)
	for _, p := range pickups {
		p.Activate(m)
	}
	for _, br := range hit {
		if !m.arena.Has(br.handle) {
			continue
		}
		if m.rng.Float64() < m.cfg.PowerUps.Chance {
			c := br.Box()
			effect := m.policy.Choose(m.rng)
			m.arena.Add(NewPowerUp(c.CenterX(), c.CenterY(), m.cfg.PowerUps.Size, effect))
		}
	}
}

func (m *Match) levelUp() {
	for _, e := range m.arena.OfKind(KindBrick) {
		m.arena.Remove(e.Handle())
	}
	m.level++
	m.ballSpeed += m.cfg.Ball.LevelSpeedUp
	if b := m.Ball(); b != nil {
		b.Speed = m.ballSpeed
	}
	m.background = m.palette[m.rng.Intn(len(m.palette))]
	m.banner = fmt.Sprintf("Level %d", m.level)
	m.phase = PhaseLevelTransition

	m.pending = m.sched.ScheduleOnce(m.cfg.Timing.LevelDelay.Std(), func() {
		m.buildGrid()
		m.serve()
	})
}

func (m *Match) gameOver() {
	m.phase = PhaseGameOver
	m.banner = TextGameOver
	m.cancelPending()
	m.input.Unbind(core.ActionLaunch)

	stored := m.scores.Read()
	m.best = stored
	if m.score > stored {
		m.scores.Write(m.score)
		m.best = m.score
	}
}

func (m *Match) cancelPending() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

func (m *Match) addExtraBall() {
	p := m.Paddle()
	m.arena.Add(NewBall(p.Box().CenterX(), m.cfg.Ball.SpawnY, m.cfg.Ball.Radius, m.ballSpeed))
}

func (m *Match) addScore(points int) {
	if points > 0 {
		m.score += points
	}
}

func (m *Match) play(c Cue) {
	m.audio.Play(c)
}

// Phase returns the current phase.
func (m *Match) Phase() Phase { return m.phase }

// Lives returns the remaining lives; it is -1 after game over.
func (m *Match) Lives() int { return m.lives }

// Level returns the current level, starting at 1.
func (m *Match) Level() int { return m.level }

// Score returns the current score.
func (m *Match) Score() int { return m.score }

// HighScore returns the best score known after game over, or 0 before.
func (m *Match) HighScore() int { return m.best }

// Ticks returns the number of ticks run.
func (m *Match) Ticks() uint64 { return m.ticks }

// BallSpeed returns the speed given to newly served balls.
func (m *Match) BallSpeed() float64 { return m.ballSpeed }

// Background returns the playfield background color.
func (m *Match) Background() core.Color { return m.background }

// Banner returns the overlay text, or "" when none is shown.
func (m *Match) Banner() string { return m.banner }

// Config returns the match configuration.
func (m *Match) Config() config.Bricks { return m.cfg }

// Arena returns the entity arena.
func (m *Match) Arena() *Arena { return m.arena }

// BrickCount returns the number of live bricks.
func (m *Match) BrickCount() int { return m.arena.Count(KindBrick) }

// Paddle returns the paddle, or nil before Start.
func (m *Match) Paddle() *Paddle {
	p, _ := m.arena.Get(m.paddle).(*Paddle)
	return p
}

// Ball returns the primary ball, or nil before Start.
func (m *Match) Ball() *Ball {
	b, _ := m.arena.Get(m.ball).(*Ball)
	return b
}

// Autopilot returns the action a simple bot would take: launch when waiting,
// otherwise step the paddle toward the primary ball.
func Autopilot(m *Match) core.Action {
	if m.phase == PhaseAwaitingLaunch {
		return core.ActionLaunch
	}
	b, p := m.Ball(), m.Paddle()
	if b == nil || p == nil || b.Stopped() {
		return core.ActionNone
	}
	dx := b.Box().CenterX() - p.Box().CenterX()
	half := m.cfg.Paddle.Step / 2
	switch {
	case dx > half:
		return core.ActionRight
	case dx < -half:
		return core.ActionLeft
	default:
		return core.ActionNone
	}
}
