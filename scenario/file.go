package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/quillaja/gravity/physics"
)

// File is the on-disk shape of a scenario. Missing constants fall back to
// physics.DefaultConfig.
type File struct {
	Name          string     `json:"name"`
	Dt            float64    `json:"dt,omitempty"`
	G             *float64   `json:"g,omitempty"`
	Softening     *float64   `json:"softening,omitempty"`
	DistanceScale *float64   `json:"distance_scale,omitempty"`
	AutoOrbit     bool       `json:"auto_orbit,omitempty"`
	Bodies        []BodyFile `json:"bodies"`
}

// BodyFile describes one body. A missing mass or radius means the body
// default; an explicit value, zero included, is validated as given.
type BodyFile struct {
	Name      string     `json:"name,omitempty"`
	Mass      *float64   `json:"mass,omitempty"`
	Radius    *float64   `json:"radius,omitempty"`
	Pos       [3]float64 `json:"pos"`
	Vel       [3]float64 `json:"vel"`
	Color     string     `json:"color,omitempty"`
	EdgeColor string     `json:"edge_color,omitempty"`
}

// LoadFile reads a JSON scenario from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode reads and validates one JSON scenario.
func Decode(r io.Reader) (*Scenario, error) {
	var file File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return file.Scenario()
}

// Scenario converts the file form, applying defaults, auto-orbit and validation.
func (f *File) Scenario() (*Scenario, error) {
	cfg := physics.DefaultConfig()
	if f.G != nil {
		cfg.G = *f.G
	}
	if f.Softening != nil {
		cfg.Softening = *f.Softening
	}
	if f.DistanceScale != nil {
		cfg.DistanceScale = *f.DistanceScale
	}

	s := &Scenario{
		Name:   f.Name,
		Dt:     f.Dt,
		Config: cfg,
		Bodies: make([]physics.Body, len(f.Bodies)),
	}

	for i, bf := range f.Bodies {
		b := physics.NewBody()
		b.Name = bf.Name
		if bf.Mass != nil {
			b.Mass = *bf.Mass
		}
		if bf.Radius != nil {
			b.Radius = *bf.Radius
		}
		b.Position = physics.Vector3(bf.Pos)
		b.Velocity = physics.Vector3(bf.Vel)

		b.CenterColor = DefaultColor(i)
		if bf.Color != "" {
			c, err := colorful.Hex(bf.Color)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: body %d: color %q: %w", f.Name, i, bf.Color, err)
			}
			b.CenterColor = c
		}
		b.EdgeColor = b.CenterColor.BlendLab(colorful.Color{}, 0.7).Clamped()
		if bf.EdgeColor != "" {
			c, err := colorful.Hex(bf.EdgeColor)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: body %d: edge color %q: %w", f.Name, i, bf.EdgeColor, err)
			}
			b.EdgeColor = c
		}
		s.Bodies[i] = b
	}

	if f.AutoOrbit {
		AutoOrbit(s.Config, s.Bodies)
	}

	finish(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
