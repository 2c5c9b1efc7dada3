package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/orbit"
)

// topoSort returns the bodies with every parent before its children,
// keeping the configured order among siblings. It rejects empty or
// duplicate names, unknown parents, anything but exactly one root, and
// cycles.
func topoSort(bodies []config.BodyConfig) ([]config.BodyConfig, error) {
	byName := make(map[string]int, len(bodies))
	var roots []string
	for i, b := range bodies {
		if b.Name == "" {
			return nil, fmt.Errorf("%w: body %d has no name", orbit.ErrInvalidConfiguration, i)
		}
		if _, dup := byName[b.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate body name %q", orbit.ErrInvalidConfiguration, b.Name)
		}
		byName[b.Name] = i
		if b.Parent == "" {
			roots = append(roots, b.Name)
		}
	}

	switch len(roots) {
	case 0:
		return nil, fmt.Errorf("%w: no root body (every body has a parent)", orbit.ErrInvalidConfiguration)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %d root bodies: %s",
			orbit.ErrInvalidConfiguration, len(roots), strings.Join(roots, ", "))
	}

	children := make(map[string][]int, len(bodies))
	for i, b := range bodies {
		if b.Parent == "" {
			continue
		}
		if _, ok := byName[b.Parent]; !ok {
			return nil, fmt.Errorf("%w: body %q has unknown parent %q",
				orbit.ErrInvalidConfiguration, b.Name, b.Parent)
		}
		children[b.Parent] = append(children[b.Parent], i)
	}

	ordered := make([]config.BodyConfig, 0, len(bodies))
	queue := []int{byName[roots[0]]}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		ordered = append(ordered, bodies[i])
		queue = append(queue, children[bodies[i].Name]...)
	}

	// Every body has an existing parent, so anything unreachable from the
	// root sits on a cycle.
	if len(ordered) != len(bodies) {
		placed := make(map[string]bool, len(ordered))
		for _, b := range ordered {
			placed[b.Name] = true
		}
		var cyclic []string
		for _, b := range bodies {
			if !placed[b.Name] {
				cyclic = append(cyclic, b.Name)
			}
		}
		sort.Strings(cyclic)
		return nil, fmt.Errorf("%w: parent cycle among %s",
			orbit.ErrInvalidConfiguration, strings.Join(cyclic, ", "))
	}

	return ordered, nil
}
