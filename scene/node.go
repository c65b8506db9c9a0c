package scene

import (
	"github.com/mistafunk/aousd-geospatial-pocs/xform"
)

// CRS_ATTRIBUTE is the reserved binding that georeferences a node. Its
// value is a CRS identifier, either a "file<path>" reference into a
// geodetic library document or inline WKT.
const CRS_ATTRIBUTE = "primvars:geolocation:crs"

type Interpolation string

const (
	INTERPOLATION_CONSTANT Interpolation = "constant"
	INTERPOLATION_UNIFORM  Interpolation = "uniform"
	INTERPOLATION_VARYING  Interpolation = "varying"
	INTERPOLATION_VERTEX   Interpolation = "vertex"
)

// IsConstant treats an unset interpolation as constant, matching the
// scene document default.
func (i Interpolation) IsConstant() bool {
	return i == "" || i == INTERPOLATION_CONSTANT
}

type Attribute struct {
	Name          string
	Value         string
	Interpolation Interpolation
}

// Node is a vertex of the containment tree. Containment links are
// managed by Graph.AddNode; everything else is plain authored data.
type Node struct {
	graph    *Graph
	parent   *Node
	children []*Node
	name     string
	path     string

	Kind            string
	Abstract        bool
	Ops             []xform.Op
	ResetXformStack bool

	attrs     map[string]Attribute
	attrOrder []string
	inherits  []string
}

func (n *Node) Name() string      { return n.name }
func (n *Node) Path() string      { return n.path }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

func (n *Node) SetAttribute(a Attribute) {
	if _, exists := n.attrs[a.Name]; !exists {
		n.attrOrder = append(n.attrOrder, a.Name)
	}
	n.attrs[a.Name] = a
}

func (n *Node) Attribute(name string) (Attribute, bool) {
	a, ok := n.attrs[name]
	return a, ok
}

// Attributes returns bindings in authored order.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, 0, len(n.attrOrder))
	for _, name := range n.attrOrder {
		out = append(out, n.attrs[name])
	}
	return out
}

// AddInherits appends a composition edge to the node at the given
// absolute path. Declared order is resolution order.
func (n *Node) AddInherits(path string) {
	n.inherits = append(n.inherits, path)
}

func (n *Node) Inherits() []string { return n.inherits }

// xform.Node implementation.

func (n *Node) XformOps() []xform.Op   { return n.Ops }
func (n *Node) ResetsXformStack() bool { return n.ResetXformStack }

func (n *Node) XformParent() xform.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}
