// Package mesh generates the CPU-side sphere geometry shared by all bodies.
package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

// MinResolution is the smallest subdivision count that yields a closed
// sphere without degenerate faces.
const MinResolution = 3

// ErrInvalidParameter is returned for an unusable resolution or radius.
var ErrInvalidParameter = errors.New("invalid mesh parameter")

// FloatsPerVertex is the stride of Interleaved: position, normal, texcoord.
const FloatsPerVertex = 8

// Mesh is an indexed triangle mesh. It is immutable once generated and may
// be shared by several bodies.
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32

	Radius     float32
	Resolution int
}

// GenerateSphere builds a UV sphere of the given radius centered on the origin.
//
// The polar angle theta and the azimuth phi are both sampled at
// resolution+1 steps; the last column repeats the first so the texture seam
// closes. Quads in the first and last rows collapse onto a pole, and only
// their non-degenerate triangle is emitted, so the mesh has
// (resolution+1)^2 vertices and 6*resolution*(resolution-1) indices.
// Triangles are counter-clockwise seen from outside.
func GenerateSphere(resolution int, radius float32) (*Mesh, error) {
	if resolution < MinResolution {
		return nil, fmt.Errorf("%w: resolution %d, need at least %d", ErrInvalidParameter, resolution, MinResolution)
	}
	r := float64(radius)
	if !(r > 0) || gomath.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: radius %v, need a finite value > 0", ErrInvalidParameter, radius)
	}

	n := resolution + 1
	m := &Mesh{
		Positions:  make([]math.Vec3, 0, n*n),
		Normals:    make([]math.Vec3, 0, n*n),
		TexCoords:  make([]math.Vec2, 0, n*n),
		Indices:    make([]uint32, 0, IndexCount(resolution)),
		Radius:     radius,
		Resolution: resolution,
	}

	for i := 0; i <= resolution; i++ {
		v := float64(i) / float64(resolution)
		theta := v * gomath.Pi
		sinT, cosT := gomath.Sincos(theta)

		for j := 0; j <= resolution; j++ {
			u := float64(j) / float64(resolution)
			phi := u * 2 * gomath.Pi
			sinP, cosP := gomath.Sincos(phi)

			dir := math.Vec3{
				X: float32(sinT * cosP),
				Y: float32(cosT),
				Z: float32(sinT * sinP),
			}
			m.Positions = append(m.Positions, dir.Scale(radius))
			m.Normals = append(m.Normals, dir.Normalize())
			m.TexCoords = append(m.TexCoords, math.Vec2{X: float32(u), Y: float32(v)})
		}
	}

	for i := 0; i < resolution; i++ {
		for j := 0; j < resolution; j++ {
			a := uint32(i*n + j) // (theta_i, phi_j)
			b := a + uint32(n)   // (theta_i+1, phi_j)
			c := b + 1           // (theta_i+1, phi_j+1)
			d := a + 1           // (theta_i, phi_j+1)

			// a and d are both the north pole on the first row.
			if i != 0 {
				m.Indices = append(m.Indices, a, d, c)
			}
			// b and c are both the south pole on the last row.
			if i != resolution-1 {
				m.Indices = append(m.Indices, a, c, b)
			}
		}
	}

	return m, nil
}

// VertexCount returns the number of vertices GenerateSphere emits.
func VertexCount(resolution int) int {
	return (resolution + 1) * (resolution + 1)
}

// IndexCount returns the number of indices GenerateSphere emits.
func IndexCount(resolution int) int {
	return 6 * resolution * (resolution - 1)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Interleaved packs the vertex attributes for a single GPU buffer:
// position (3), normal (3), texcoord (2).
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*FloatsPerVertex)
	for i, p := range m.Positions {
		nrm := m.Normals[i]
		uv := m.TexCoords[i]
		out = append(out, p.X, p.Y, p.Z, nrm.X, nrm.Y, nrm.Z, uv.X, uv.Y)
	}
	return out
}
