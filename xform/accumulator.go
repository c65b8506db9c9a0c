package xform

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Node is the part of a scene node the accumulator needs. XformParent
// must return nil (not a typed nil) at a traversal root.
type Node interface {
	Path() string
	XformOps() []Op
	ResetsXformStack() bool
	XformParent() Node
}

// Accumulator computes reset-aware local-to-world transforms. Results
// are memoized by node path, so one Accumulator is good for exactly one
// pass over an immutable graph.
type Accumulator struct {
	memo map[string]mgl64.Mat4
}

func NewAccumulator() *Accumulator {
	return &Accumulator{memo: make(map[string]mgl64.Mat4)}
}

// Accumulated returns the node's local-to-world matrix. A node with the
// reset flag discards its parent's accumulated transform and restarts
// from its own local transform.
func (a *Accumulator) Accumulated(n Node) mgl64.Mat4 {
	if m, ok := a.memo[n.Path()]; ok {
		return m
	}

	local := Local(n.XformOps())

	var m mgl64.Mat4
	if parent := n.XformParent(); parent == nil || n.ResetsXformStack() {
		m = local
	} else {
		m = a.Accumulated(parent).Mul4(local)
	}

	a.memo[n.Path()] = m
	return m
}
