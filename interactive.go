package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/time/rate"

	"github.com/quillaja/gravity/physics"
	"github.com/quillaja/gravity/render"
	"github.com/quillaja/gravity/sim"
)

var statusColor = colorful.Color{R: 0.8, G: 0.8, B: 0.8}

// host is the terminal side of the frame loop: it owns the screen, turns
// input into commands and tells the simulation how much time passed.
type host struct {
	screen tcell.Screen
	canvas *render.Terminal
	r      *render.Renderer
	s      *sim.Simulation

	paused  bool
	advance bool // step once while paused
	quit    bool
	fps     float64
}

func newHost(screen tcell.Screen, r *render.Renderer, s *sim.Simulation) *host {
	return &host{
		screen: screen,
		canvas: render.NewTerminal(screen),
		r:      r,
		s:      s,
	}
}

func (h *host) bounds() physics.Bounds {
	return physics.BoundsForAspect(render.Aspect(h.canvas))
}

// handle applies one input event.
func (h *host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			h.quit = true
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				h.quit = true
			case ' ':
				h.paused = !h.paused
			case '.':
				if h.paused {
					h.advance = true
				}
			}
		}
	case *tcell.EventResize:
		h.canvas.Resize()
		h.screen.Sync()
	}
}

// frame runs the physics for dt, unless paused, and redraws.
func (h *host) frame(dt float64) {
	bounds := h.bounds()
	switch {
	case !h.paused:
		h.s.Step(dt, bounds)
	case h.advance:
		h.s.Step(dt, bounds)
		h.advance = false
	}

	h.r.Draw(h.canvas, h.s.Bodies(), bounds)
	h.canvas.Flush()

	state := ""
	if h.paused {
		state = " [paused: space resume, . step]"
	}
	h.canvas.Text(0, 0, fmt.Sprintf(" %s  frame %d  t=%.1fs  %.0f fps%s  q quit ",
		h.s.Name(), h.s.Frame(), h.s.Elapsed(), h.fps, state), statusColor)
	h.canvas.Show()
}

// pumpEvents forwards polled events until poll returns nil (screen
// finalised) or ctx ends, whichever comes first.
func pumpEvents(ctx context.Context, poll func() tcell.Event, events chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// interactive draws into the terminal until quit, the context ends or the
// frame limit is hit. fixedDt > 0 replaces the wall clock.
func interactive(ctx context.Context, s *sim.Simulation, r *render.Renderer, opts options, fixedDt float64) (physics.Bounds, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return physics.Bounds{}, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return physics.Bounds{}, fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	h := newHost(screen, r, s)
	limiter := rate.NewLimiter(rate.Limit(opts.fps), 1)

	// stops the event pump when the loop returns for any reason
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go pumpEvents(ctx, screen.PollEvent, events)

	last := time.Now()
	for frames := 0; opts.frames == 0 || frames < opts.frames; frames++ {
		if err := limiter.Wait(ctx); err != nil {
			break // interrupted
		}

	drain:
		for {
			select {
			case ev := <-events:
				h.handle(ev)
			default:
				break drain
			}
		}
		if h.quit {
			break
		}

		now := time.Now()
		gap := now.Sub(last)
		last = now
		if gap > 0 {
			h.fps = 0.9*h.fps + 0.1/gap.Seconds()
		}

		// a stall shows up as one long step; there is no catch-up or clamping
		dt := fixedDt
		if dt == 0 {
			dt = gap.Seconds()
		}
		h.frame(dt)
	}

	return h.bounds(), nil
}
