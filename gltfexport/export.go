// Package gltfexport flattens a resolved scene into a glTF document:
// one node per non-abstract scene node carrying its accumulated
// local-to-world matrix, so downstream viewers see the reset-aware
// placement without replaying the containment hierarchy.
package gltfexport

import (
	"io"

	"github.com/qmuntal/gltf"

	"github.com/mistafunk/aousd-geospatial-pocs/geo"
	"github.com/mistafunk/aousd-geospatial-pocs/scene"
	"github.com/mistafunk/aousd-geospatial-pocs/traverse"
)

func Build(g *scene.Graph, reg *geo.Registry, target *geo.Descriptor) *gltf.Document {
	doc := gltf.NewDocument()

	for res := range traverse.Traverse(g, reg, target) {
		node := &gltf.Node{Name: res.Path}
		for i, v := range res.World {
			node.Matrix[i] = float32(v)
		}
		if res.CRS != nil {
			node.Extras = map[string]interface{}{
				"crs":          res.CRS.Name,
				"crsKey":       res.CRS.Key,
				"crsDefinedBy": res.CRSDefinedBy,
			}
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	return doc
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	for iNode := range doc.Nodes {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(iNode))
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
