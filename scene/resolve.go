package scene

import (
	"github.com/pkg/errors"
)

var (
	ErrAttributeUndefined   = errors.New("attribute undefined")
	ErrInvalidInterpolation = errors.New("attribute interpolation is not constant")
)

// ResolveAttribute finds the effective binding for name on n, returning
// the binding and the node that defines it.
//
// Precedence, highest first:
//  1. the node's own binding
//  2. inherits edges in declared order, each resolved with the full
//     rule on its target (the search never re-enters the inheriting
//     node's parent chain)
//  3. the containment parent
//
// A binding with non-constant interpolation is a resolution error, not
// a candidate to skip.
func ResolveAttribute(n *Node, name string) (Attribute, *Node, error) {
	if a, ok := n.attrs[name]; ok {
		if !a.Interpolation.IsConstant() {
			return Attribute{}, nil, errors.Wrapf(ErrInvalidInterpolation,
				"%q on %q has interpolation %q", name, n.path, a.Interpolation)
		}
		return a, n, nil
	}

	for _, target := range n.inherits {
		t := n.graph.byPath[target]
		if t == nil {
			continue
		}
		a, def, err := ResolveAttribute(t, name)
		if err == nil {
			return a, def, nil
		}
		if !errors.Is(err, ErrAttributeUndefined) {
			return Attribute{}, nil, err
		}
	}

	if n.parent != nil {
		return ResolveAttribute(n.parent, name)
	}

	return Attribute{}, nil, errors.Wrapf(ErrAttributeUndefined, "%q above %q", name, n.path)
}
