// Package document loads scene and geodetic library documents. It is
// the only place that knows the on-disk YAML schema; everything past
// LoadScene works on the immutable scene.Graph.
package document

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mistafunk/aousd-geospatial-pocs/config"
	"github.com/mistafunk/aousd-geospatial-pocs/scene"
	"github.com/mistafunk/aousd-geospatial-pocs/xform"
)

type sceneDoc struct {
	UpAxis        string     `yaml:"upAxis"`
	MetersPerUnit float64    `yaml:"metersPerUnit"`
	Nodes         []nodeSpec `yaml:"nodes"`
}

type nodeSpec struct {
	Name            string     `yaml:"name"`
	Kind            string     `yaml:"kind"`
	Class           bool       `yaml:"class"`
	ResetXformStack bool       `yaml:"resetXformStack"`
	Inherits        []string   `yaml:"inherits"`
	XformOps        []opSpec   `yaml:"xformOps"`
	Attributes      []attrSpec `yaml:"attributes"`
	Children        []nodeSpec `yaml:"children"`
}

type opSpec struct {
	Op    string    `yaml:"op"`
	Value yaml.Node `yaml:"value"`
}

type attrSpec struct {
	Name          string `yaml:"name"`
	Value         string `yaml:"value"`
	Interpolation string `yaml:"interpolation"`
}

// LoadScene reads a YAML scene document into a validated graph and
// applies its stage settings (up axis, meters per unit).
func LoadScene(path string) (*scene.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read scene document %q", path)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*scene.Graph, error) {
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal scene document")
	}

	axis, err := config.ParseUpAxis(doc.UpAxis)
	if err != nil {
		return nil, err
	}
	config.SetUpAxis(axis)
	config.SetMetersPerUnit(doc.MetersPerUnit)

	g := scene.NewGraph()
	for i := range doc.Nodes {
		if err := buildNode(g, nil, &doc.Nodes[i]); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	log.Printf("[document] Loaded scene with %d nodes (up axis %v)", g.Len(), axis)
	return g, nil
}

func buildNode(g *scene.Graph, parent *scene.Node, spec *nodeSpec) error {
	kind := spec.Kind
	if kind == "" && !spec.Class {
		kind = "Xform"
	}

	n, err := g.AddNode(parent, spec.Name, kind)
	if err != nil {
		return err
	}
	n.Abstract = spec.Class
	n.ResetXformStack = spec.ResetXformStack

	for _, target := range spec.Inherits {
		n.AddInherits(target)
	}

	for _, op := range spec.XformOps {
		parsed, err := parseOp(op)
		if err != nil {
			return errors.Wrapf(err, "node %q", n.Path())
		}
		n.Ops = append(n.Ops, parsed)
	}

	for _, a := range spec.Attributes {
		if a.Name == "" {
			return errors.Errorf("Attribute without name on node %q", n.Path())
		}
		n.SetAttribute(scene.Attribute{
			Name:          a.Name,
			Value:         a.Value,
			Interpolation: scene.Interpolation(a.Interpolation),
		})
	}

	for i := range spec.Children {
		if err := buildNode(g, n, &spec.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func parseOp(spec opSpec) (xform.Op, error) {
	switch spec.Op {
	case "translate", "scale":
		var v [3]float64
		if err := spec.Value.Decode(&v); err != nil {
			return xform.Op{}, errors.Wrapf(err, "op %q wants [x, y, z]", spec.Op)
		}
		if spec.Op == "translate" {
			return xform.Translate(v[0], v[1], v[2]), nil
		}
		return xform.Scale(v[0], v[1], v[2]), nil
	case "rotateX", "rotateY", "rotateZ":
		var deg float64
		if err := spec.Value.Decode(&deg); err != nil {
			return xform.Op{}, errors.Wrapf(err, "op %q wants an angle in degrees", spec.Op)
		}
		switch spec.Op {
		case "rotateX":
			return xform.RotateX(deg), nil
		case "rotateY":
			return xform.RotateY(deg), nil
		default:
			return xform.RotateZ(deg), nil
		}
	case "matrix":
		var m [16]float64
		if err := spec.Value.Decode(&m); err != nil {
			return xform.Op{}, errors.Wrapf(err, "op %q wants 16 row-major values", spec.Op)
		}
		return xform.Matrix(m), nil
	case "":
		return xform.Op{}, errors.New("xform op without an op tag")
	}
	return xform.Op{}, errors.Errorf("Unknown xform op %q", spec.Op)
}
