// Package traverse walks a scene graph depth-first and yields one
// result per node: the effective CRS, the reset-aware local-to-world
// transform and the node's coordinate expressed in a target CRS.
package traverse

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mistafunk/aousd-geospatial-pocs/config"
	"github.com/mistafunk/aousd-geospatial-pocs/geo"
	"github.com/mistafunk/aousd-geospatial-pocs/scene"
	"github.com/mistafunk/aousd-geospatial-pocs/xform"
)

// Result is the per-node report record. CRS is nil for nodes without a
// resolvable geolocation; Err carries node-scoped resolution or
// transformation failures and never aborts the traversal.
type Result struct {
	Path string
	Kind string
	Ops  []xform.Op

	World mgl64.Mat4

	CRS          *geo.Descriptor
	CRSDefinedBy string

	Point       mgl64.Vec3
	Transformed mgl64.Vec3
	HasPoint    bool

	Warnings []string
	Err      error
}

// Traverse yields results pre-order, parents before children, skipping
// abstract class nodes. Every call produces an independent pass over
// the immutable graph, so sequences are restartable and may run
// concurrently against different targets. Stopping consumption early
// stops the walk; no state outlives the pass.
//
// A nil target reports authored coordinates without reprojection.
func Traverse(g *scene.Graph, reg *geo.Registry, target *geo.Descriptor) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		acc := xform.NewAccumulator()
		for _, root := range g.Roots() {
			if !visit(root, reg, target, acc, yield) {
				return
			}
		}
	}
}

func visit(n *scene.Node, reg *geo.Registry, target *geo.Descriptor, acc *xform.Accumulator, yield func(Result) bool) bool {
	if n.Abstract {
		return true
	}
	if !yield(resolveNode(n, reg, target, acc)) {
		return false
	}
	for _, child := range n.Children() {
		if !visit(child, reg, target, acc, yield) {
			return false
		}
	}
	return true
}

func resolveNode(n *scene.Node, reg *geo.Registry, target *geo.Descriptor, acc *xform.Accumulator) Result {
	res := Result{
		Path:  n.Path(),
		Kind:  n.Kind,
		Ops:   n.Ops,
		World: acc.Accumulated(n),
	}

	binding, definedBy, err := scene.ResolveAttribute(n, scene.CRS_ATTRIBUTE)
	switch {
	case errors.Is(err, scene.ErrAttributeUndefined):
		// not georeferenced, nothing more to report
		return res
	case err != nil:
		res.Err = err
		return res
	}
	res.CRSDefinedBy = definedBy.Path()

	if definedBy == n && !n.ResetXformStack {
		res.Warnings = append(res.Warnings,
			"node authors a crs binding without resetting the transform stack; world coordinates mix parent offsets with crs-relative ones")
	}

	crs, err := reg.Resolve(binding.Value)
	if err != nil {
		res.Err = err
		return res
	}
	res.CRS = crs

	res.Point = authoredPoint(res.World)
	res.HasPoint = true

	if target == nil {
		res.Transformed = res.Point
		return res
	}

	transformed, err := reg.Transform(res.Point, crs, target)
	if err != nil {
		res.HasPoint = false
		res.Err = err
		return res
	}
	res.Transformed = transformed
	return res
}

// authoredPoint turns the translation of an accumulated transform into
// a coordinate in the authored CRS: scene units scaled to meters, and
// Y-up stages mapped onto the easting/northing/height frame.
func authoredPoint(world mgl64.Mat4) mgl64.Vec3 {
	t := xform.Translation(world).Mul(config.GetMetersPerUnit())
	if config.GetUpAxis() == config.UP_AXIS_Y {
		return mgl64.Vec3{t[0], -t[2], t[1]}
	}
	return t
}
