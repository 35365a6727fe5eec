// Package audio clicks when bodies hit the walls.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/quillaja/gravity/sim"
)

const (
	SampleRate    = beep.SampleRate(44100)
	ClickFreq     = 660.0
	ClickDuration = 30 * time.Millisecond
	MinGap        = 40 * time.Millisecond // no more than one click per gap
)

// Click is a short sine burst at freq, scaled to vol in [0, 1].
func Click(rate beep.SampleRate, freq, vol float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("click tone: %w", err)
	}
	s := beep.Take(rate.N(ClickDuration), sine)
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}, nil
}

// Bouncer plays a click for steps that had bounces, throttled to MinGap.
type Bouncer struct {
	mu     sync.Mutex
	play   func(beep.Streamer)
	now    func() time.Time
	last   time.Time
	volume float64
	ready  bool

	Played int
}

// NewBouncer returns a silent Bouncer; call Init to attach the speaker.
func NewBouncer(volume float64) *Bouncer {
	return &Bouncer{volume: volume, now: time.Now}
}

// Init opens the speaker. Without it the Bouncer stays silent.
func (b *Bouncer) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	b.play = func(s beep.Streamer) { speaker.Play(s) }
	b.ready = true
	return nil
}

// Close releases the speaker.
func (b *Bouncer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready && b.play != nil {
		speaker.Close()
	}
	b.ready = false
}

// Stepped satisfies sim.Observer.
func (b *Bouncer) Stepped(_ *sim.Simulation, r sim.StepResult) {
	if r.Bounces == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return
	}
	now := b.now()
	if now.Sub(b.last) < MinGap {
		return
	}
	// louder for several bodies hitting at once
	vol := b.volume * math.Min(1, 0.5+0.25*float64(r.Bounces))
	s, err := Click(SampleRate, ClickFreq, vol)
	if err != nil {
		return
	}
	b.last = now
	b.play(s)
	b.Played++
}
