package bricks

// Cue names a sound effect.
type Cue int

const (
	CueBrickHit Cue = iota
	CuePaddleHit
	CuePowerUp
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueBrickHit:
		return "brick_hit"
	case CuePaddleHit:
		return "paddle_hit"
	case CuePowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// AudioSink plays cues. Play must not block on playback.
type AudioSink interface {
	Play(c Cue)
}

// HighScores persists the single best score. Read returns 0 when nothing is
// stored or the store cannot be read; implementations deal with their own
// failures.
type HighScores interface {
	Read() int
	Write(score int)
}

type silentAudio struct{}

func (silentAudio) Play(Cue) {}

type noScores struct{}

func (noScores) Read() int { return 0 }
func (noScores) Write(int) {}
