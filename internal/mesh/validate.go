package mesh

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned by Validate for a mesh that breaks an invariant.
var ErrMalformed = errors.New("malformed mesh")

// NormalTolerance is the allowed deviation of a normal's length from 1.
const NormalTolerance = 1e-5

// Validate checks the attribute lengths, index range and normal lengths.
// A mesh without triangles is malformed.
func (m *Mesh) Validate() error {
	nv := len(m.Positions)
	if len(m.Indices) == 0 {
		return fmt.Errorf("%w: no triangles", ErrMalformed)
	}
	if len(m.Normals) != nv || len(m.TexCoords) != nv {
		return fmt.Errorf("%w: %d positions, %d normals, %d texcoords",
			ErrMalformed, nv, len(m.Normals), len(m.TexCoords))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrMalformed, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= nv {
			return fmt.Errorf("%w: index %d at %d out of range [0, %d)", ErrMalformed, idx, i, nv)
		}
	}
	for i, n := range m.Normals {
		l := n.Length()
		if l < 1-NormalTolerance || l > 1+NormalTolerance {
			return fmt.Errorf("%w: normal %d has length %v", ErrMalformed, i, l)
		}
	}
	return nil
}
