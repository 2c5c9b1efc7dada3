package orbit

import "fmt"

// System is an append-only arena of bodies. A body can only reference a
// parent that was added before it, so the arena is always in topological
// order and the parent graph cannot contain a cycle.
//
// A System is built once during scene setup and is read-only afterwards.
type System struct {
	bodies []Body
	byName map[string]Handle
	root   Handle
}

// NewSystem creates an empty system.
func NewSystem() *System {
	return &System{
		byName: make(map[string]Handle),
		root:   NoParent,
	}
}

// Add appends a body and returns its handle.
func (s *System) Add(b Body) (Handle, error) {
	if err := b.validate(); err != nil {
		return NoParent, err
	}
	if _, dup := s.byName[b.Name]; dup {
		return NoParent, fmt.Errorf("%w: duplicate body name %q", ErrInvalidConfiguration, b.Name)
	}

	h := Handle(len(s.bodies))
	switch {
	case b.IsRoot():
		if s.root != NoParent {
			return NoParent, fmt.Errorf("%w: body %q is a second root (root is %q)",
				ErrInvalidConfiguration, b.Name, s.bodies[s.root].Name)
		}
		s.root = h
	case b.Parent < 0 || b.Parent >= h:
		return NoParent, fmt.Errorf("%w: body %q references unknown parent handle %d",
			ErrInvalidConfiguration, b.Name, b.Parent)
	}

	s.bodies = append(s.bodies, b)
	s.byName[b.Name] = h
	return h, nil
}

// Validate checks that the system has exactly one root.
func (s *System) Validate() error {
	if s.root == NoParent {
		return fmt.Errorf("%w: no root body", ErrInvalidConfiguration)
	}
	return nil
}

// Len returns the number of bodies.
func (s *System) Len() int {
	return len(s.bodies)
}

// Root returns the root handle, or NoParent for an empty system.
func (s *System) Root() Handle {
	return s.root
}

// Body returns the body for h.
func (s *System) Body(h Handle) Body {
	return s.bodies[h]
}

// Bodies returns the bodies in topological order. The slice must not be modified.
func (s *System) Bodies() []Body {
	return s.bodies
}

// Lookup finds a body by name.
func (s *System) Lookup(name string) (Handle, bool) {
	h, ok := s.byName[name]
	return h, ok
}

// Depth returns the number of ancestors of h.
func (s *System) Depth(h Handle) int {
	d := 0
	for p := s.bodies[h].Parent; p != NoParent; p = s.bodies[p].Parent {
		d++
	}
	return d
}

// ValidateOrder checks that bodies form a single tree listed parent before
// child: names are unique, the first body is the only root and every parent
// index is smaller than its child's.
func ValidateOrder(bodies []Body) error {
	if len(bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalidConfiguration)
	}
	names := make(map[string]struct{}, len(bodies))
	for i, b := range bodies {
		if err := b.validate(); err != nil {
			return err
		}
		if _, dup := names[b.Name]; dup {
			return fmt.Errorf("%w: duplicate body name %q", ErrInvalidConfiguration, b.Name)
		}
		names[b.Name] = struct{}{}
		if i == 0 {
			if !b.IsRoot() {
				return fmt.Errorf("%w: first body %q is not the root", ErrInvalidConfiguration, b.Name)
			}
			continue
		}
		if b.IsRoot() {
			return fmt.Errorf("%w: body %q is a second root", ErrInvalidConfiguration, b.Name)
		}
		if b.Parent < 0 || int(b.Parent) >= i {
			return fmt.Errorf("%w: body %q at %d has parent %d, which does not precede it",
				ErrInvalidConfiguration, b.Name, i, b.Parent)
		}
	}
	return nil
}
