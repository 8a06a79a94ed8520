// Package audio plays the match's sound cues through the system speaker.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-bricks/internal/bricks"
)

const sampleRate = beep.SampleRate(44100)

var _ bricks.AudioSink = (*Player)(nil)

// Tone is a short sine beep.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64
}

// DefaultTones maps each cue to its beep.
var DefaultTones = map[bricks.Cue]Tone{
	bricks.CueBrickHit:  {Freq: 880, Duration: 50 * time.Millisecond, Volume: 0.3},
	bricks.CuePaddleHit: {Freq: 440, Duration: 60 * time.Millisecond, Volume: 0.3},
	bricks.CuePowerUp:   {Freq: 1320, Duration: 120 * time.Millisecond, Volume: 0.25},
}

// Player is a bricks.AudioSink backed by beep. Until Init succeeds every
// Play is a no-op, so a machine without sound still runs the game.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	tones       map[bricks.Cue]Tone
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates an uninitialized player.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		tones:  DefaultTones,
		logger: logger,
	}
}

// Init opens the speaker. Calling it twice is harmless.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues the cue's tone and returns immediately.
func (p *Player) Play(c bricks.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := p.streamer(c)
	if err != nil {
		p.logger.Debug("skipping cue", "cue", c, "err", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops any sound still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) streamer(c bricks.Cue) (beep.Streamer, error) {
	t, ok := p.tones[c]
	if !ok {
		return nil, fmt.Errorf("audio: no tone for cue %s", c)
	}
	return t.Streamer(sampleRate)
}

// Streamer renders the tone at the given sample rate.
func (t Tone) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	return volume(beep.Take(sr.N(t.Duration), sine), t.Volume), nil
}

// volume scales s linearly by vol. A non-positive vol is silent, since
// math.Log2(0) is -Inf.
func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
