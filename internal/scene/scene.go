// Package scene assembles the body hierarchy and its geometry from
// configuration and turns it into per-frame draw lists.
package scene

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/mesh"
	"github.com/Faultbox/orrery/internal/orbit"
	"github.com/Faultbox/orrery/pkg/math"
)

// ErrInvalidColor is returned for a body color that is not a hex triplet.
var ErrInvalidColor = errors.New("invalid body color")

// Draw is everything the renderer needs to submit one body.
type Draw struct {
	Body     orbit.Handle
	Name     string
	Mesh     *mesh.Mesh
	Model    math.Mat4
	Center   math.Vec3
	Emissive bool
	Color    [3]float32
}

// Scene owns the body system and the geometry of each body. It is built
// once and not modified afterwards, except for the scratch buffer used by
// Frame, so it must only be used from the render thread.
type Scene struct {
	System *orbit.System

	meshes []*mesh.Mesh // by handle, shared between equal radii
	colors []colorful.Color

	transforms []orbit.Transform
}

// Build validates cfg and creates the scene. Bodies are reordered so every
// parent precedes its children. No GPU resources are touched.
func Build(cfg config.SceneConfig) (*Scene, error) {
	ordered, err := topoSort(cfg.Bodies)
	if err != nil {
		return nil, err
	}

	log := logger.With("scene")
	s := &Scene{System: orbit.NewSystem()}
	cache := make(map[float32]*mesh.Mesh)

	for i, bc := range ordered {
		parent := orbit.NoParent
		if bc.Parent != "" {
			// topoSort guarantees the parent was added already
			parent, _ = s.System.Lookup(bc.Parent)
		}

		h, err := s.System.Add(orbit.Body{
			Name:             bc.Name,
			OrbitRadius:      bc.OrbitRadius,
			RevolutionPeriod: bc.RevolutionPeriod,
			RotationPeriod:   bc.RotationPeriod,
			Parent:           parent,
		})
		if err != nil {
			return nil, err
		}

		m, ok := cache[bc.Radius]
		if !ok {
			m, err = mesh.GenerateSphere(cfg.Resolution, bc.Radius)
			if err != nil {
				return nil, fmt.Errorf("body %q: %w", bc.Name, err)
			}
			cache[bc.Radius] = m
		}

		c, err := parseColor(bc.Color, i, len(ordered))
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", bc.Name, err)
		}

		s.meshes = append(s.meshes, m)
		s.colors = append(s.colors, c)

		log.Debug("body added",
			zap.String("name", bc.Name),
			zap.String("parent", bc.Parent),
			zap.Int("handle", int(h)),
			zap.Int("depth", s.System.Depth(h)),
			zap.Float32("radius", bc.Radius),
			zap.String("color", c.Hex()),
		)
	}

	if err := s.System.Validate(); err != nil {
		return nil, err
	}

	log.Info("scene built",
		zap.Int("bodies", s.System.Len()),
		zap.Int("meshes", len(cache)),
		zap.Int("resolution", cfg.Resolution),
	)
	return s, nil
}

// Len returns the number of bodies.
func (s *Scene) Len() int {
	return s.System.Len()
}

// Mesh returns the geometry of body h.
func (s *Scene) Mesh(h orbit.Handle) *mesh.Mesh {
	return s.meshes[h]
}

// Meshes returns every distinct mesh once, in first-use order.
func (s *Scene) Meshes() []*mesh.Mesh {
	seen := make(map[*mesh.Mesh]bool)
	var out []*mesh.Mesh
	for _, m := range s.meshes {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Frame composes all transforms at time t and appends one Draw per body to
// dst[:0], parents first.
func (s *Scene) Frame(t float64, dst []Draw) []Draw {
	s.transforms = s.System.ComposeInto(s.transforms, t)

	dst = dst[:0]
	for i, b := range s.System.Bodies() {
		c := s.colors[i]
		dst = append(dst, Draw{
			Body:     orbit.Handle(i),
			Name:     b.Name,
			Mesh:     s.meshes[i],
			Model:    s.transforms[i].Model,
			Center:   s.transforms[i].Center,
			Emissive: b.IsRoot(),
			Color:    [3]float32{float32(c.R), float32(c.G), float32(c.B)},
		})
	}
	return dst
}

// parseColor parses a hex color, or picks a well spread hue for body i of n.
func parseColor(hex string, i, n int) (colorful.Color, error) {
	if hex == "" {
		return colorful.Hcl(360*float64(i)/float64(n), 0.5, 0.75).Clamped(), nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return c, nil
}
