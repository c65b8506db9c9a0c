package scene

import (
	"github.com/pkg/errors"
)

var (
	ErrDuplicateNode = errors.New("duplicate node path")
	ErrInheritsCycle = errors.New("inherits cycle")
	ErrUnknownTarget = errors.New("inherits target does not exist")
	ErrInvalidName   = errors.New("invalid node name")
)

// Graph is the immutable-after-load scene structure: a forest of
// containment trees plus inherits edges between arbitrary nodes.
// Top-level class nodes (Abstract) usually carry shared bindings.
type Graph struct {
	roots  []*Node
	byPath map[string]*Node
}

func NewGraph() *Graph {
	return &Graph{byPath: make(map[string]*Node)}
}

// AddNode creates a child of parent, or a root node when parent is nil.
// Containment stays acyclic by construction: a node is always attached
// to an already existing parent.
func (g *Graph) AddNode(parent *Node, name, kind string) (*Node, error) {
	if name == "" {
		return nil, errors.Wrapf(ErrInvalidName, "empty name under %q", parentPath(parent))
	}

	path := parentPath(parent) + "/" + name
	if _, exists := g.byPath[path]; exists {
		return nil, errors.Wrapf(ErrDuplicateNode, "%q", path)
	}

	n := &Node{
		graph:  g,
		parent: parent,
		name:   name,
		path:   path,
		Kind:   kind,
		attrs:  make(map[string]Attribute),
	}

	if parent == nil {
		g.roots = append(g.roots, n)
	} else {
		parent.children = append(parent.children, n)
	}
	g.byPath[path] = n
	return n, nil
}

func parentPath(parent *Node) string {
	if parent == nil {
		return ""
	}
	return parent.path
}

func (g *Graph) Node(path string) *Node { return g.byPath[path] }

func (g *Graph) Roots() []*Node { return g.roots }

func (g *Graph) Len() int { return len(g.byPath) }

// Validate fails on dangling inherits targets and on cycles in the
// resolution relation (inherits edges combined with parent links).
// Must pass before any traversal starts; a broken edge set would make
// attribute resolution unbounded.
func (g *Graph) Validate() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make(map[string]int, len(g.byPath))

	var visit func(n *Node) error
	visit = func(n *Node) error {
		switch state[n.path] {
		case gray:
			return errors.Wrapf(ErrInheritsCycle, "through %q", n.path)
		case black:
			return nil
		}
		state[n.path] = gray
		for _, target := range n.inherits {
			t := g.byPath[target]
			if t == nil {
				return errors.Wrapf(ErrUnknownTarget, "%q inherits %q", n.path, target)
			}
			if err := visit(t); err != nil {
				return err
			}
		}
		if n.parent != nil {
			if err := visit(n.parent); err != nil {
				return err
			}
		}
		state[n.path] = black
		return nil
	}

	for _, n := range g.byPath {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}
