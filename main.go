// implements a small n-body gravity simulation drawn in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/quillaja/gravity/audio"
	"github.com/quillaja/gravity/mesh"
	"github.com/quillaja/gravity/metrics"
	"github.com/quillaja/gravity/physics"
	"github.com/quillaja/gravity/render"
	"github.com/quillaja/gravity/scenario"
	"github.com/quillaja/gravity/sim"
)

type options struct {
	scenario string
	fps      float64
	headless bool
	frames   int
	dt       float64
	aspect   float64
	mesh     mesh.Kind
	sound    bool
	volume   float64
	snapshot string
	metrics  bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("gravity", flag.ContinueOnError)
	fs.StringVar(&o.scenario, "scenario", "twobody", "built-in scenario name or path to a .json scenario")
	fs.Float64Var(&o.fps, "fps", 60, "frames per second to aim for")
	fs.BoolVar(&o.headless, "headless", false, "run without a terminal view")
	fs.IntVar(&o.frames, "frames", 0, "stop after this many frames (0 = until quit; headless defaults to 600)")
	fs.Float64Var(&o.dt, "dt", 0, "fixed step in seconds (0 = scenario dt, else wall clock; headless falls back to 1/fps)")
	fs.Float64Var(&o.aspect, "aspect", 2.4, "domain aspect ratio when headless")
	meshName := fs.String("mesh", "fan", "body geometry: fan or sphere")
	fs.BoolVar(&o.sound, "sound", false, "click on boundary bounces")
	fs.Float64Var(&o.volume, "volume", 0.5, "click volume, 0..1")
	fs.StringVar(&o.snapshot, "snapshot", "", "write the last frame to this png")
	fs.BoolVar(&o.metrics, "metrics", false, "print run metrics on exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	kind, ok := mesh.ParseKind(*meshName)
	if !ok {
		return o, fmt.Errorf("unknown mesh %q", *meshName)
	}
	o.mesh = kind
	if o.fps <= 0 {
		return o, fmt.Errorf("fps must be positive, got %v", o.fps)
	}
	if o.aspect <= 0 {
		return o, fmt.Errorf("aspect must be positive, got %v", o.aspect)
	}
	if o.dt < 0 {
		return o, fmt.Errorf("dt must not be negative, got %v", o.dt)
	}
	if o.headless && o.frames == 0 {
		o.frames = 600
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gravity: %v\n", err)
		os.Exit(1)
	}
}

// run plays the scenario and writes the exit report (snapshot notice,
// metrics) to out.
func run(opts options, out io.Writer) error {
	sc, err := scenario.Load(opts.scenario)
	if err != nil {
		return err
	}
	s := sim.New(sc)

	var collector *metrics.Collector
	if opts.metrics {
		collector = metrics.NewCollector()
		s.Observe(collector)
	}

	if opts.sound {
		bouncer := audio.NewBouncer(opts.volume)
		if err := bouncer.Init(); err != nil {
			// runs fine without sound
			log.Printf("sound disabled: %v", err)
		} else {
			defer bouncer.Close()
			s.Observe(bouncer)
		}
	}

	dt := opts.dt
	if dt == 0 {
		dt = sc.Dt
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := render.New(opts.mesh)
	var last physics.Bounds
	if opts.headless {
		if dt == 0 {
			dt = 1 / opts.fps
		}
		last, err = headless(ctx, s, opts, dt)
	} else {
		last, err = interactive(ctx, s, r, opts, dt)
	}
	if err != nil {
		return err
	}

	if opts.snapshot != "" {
		img := render.NewImage(int(480*last.X), 480)
		r.Draw(img, s.Bodies(), last)
		if err := img.WritePNG(opts.snapshot); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", opts.snapshot)
	}

	if collector != nil {
		if err := collector.WriteText(out); err != nil {
			return err
		}
	}
	return nil
}

// headless steps a fixed number of frames at a fixed dt and reports
// progress on one line.
func headless(ctx context.Context, s *sim.Simulation, opts options, dt float64) (physics.Bounds, error) {
	bounds := physics.BoundsForAspect(opts.aspect)

	fmt.Printf("scenario: %s\nbodies: %d\nstep: %g sec\nframes: %d\nsimulation time: %.1f sec\n",
		s.Name(), len(s.Bodies()), dt, opts.frames, dt*float64(opts.frames))

	start := time.Now()
	bounces := 0
	for frame := 1; frame <= opts.frames; frame++ {
		if ctx.Err() != nil {
			break
		}
		bounces += s.Step(dt, bounds).Bounces

		if frame%60 == 0 || frame == opts.frames {
			perFrame := time.Since(start) / time.Duration(frame)
			left := perFrame * time.Duration(opts.frames-frame)
			fmt.Printf("%.1f%%, %d bounces, %s/frame, %s remaining                    \r",
				100*float64(frame)/float64(opts.frames),
				bounces,
				perFrame,
				left.Truncate(time.Millisecond))
		}
	}

	com := s.System().CenterOfMass(s.Bodies())
	fmt.Printf("\nDone. Took %s. centre of mass [%.4f, %.4f, %.4f]\n",
		time.Since(start).Truncate(time.Millisecond), com[0], com[1], com[2])
	for _, b := range s.Bodies() {
		fmt.Print(b)
	}
	return bounds, nil
}
