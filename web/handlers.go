package web

import (
	"bytes"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mistafunk/aousd-geospatial-pocs/gltfexport"
	"github.com/mistafunk/aousd-geospatial-pocs/scene"
	"github.com/mistafunk/aousd-geospatial-pocs/traverse"
	"github.com/mistafunk/aousd-geospatial-pocs/utils"
	"github.com/mistafunk/aousd-geospatial-pocs/webutils"
)

type jNodeSummary struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Abstract bool   `json:"abstract,omitempty"`
}

type jNodeDetail struct {
	jNodeSummary
	ResetXformStack bool              `json:"resetXformStack"`
	Inherits        []string          `json:"inherits,omitempty"`
	XformOps        []string          `json:"xformOps,omitempty"`
	Attributes      []scene.Attribute `json:"attributes,omitempty"`
	Children        []string          `json:"children,omitempty"`
}

type jNodeResult struct {
	Path         string      `json:"path"`
	Kind         string      `json:"kind"`
	World        [16]float64 `json:"world"`
	CRS          string      `json:"crs,omitempty"`
	CRSKey       string      `json:"crsKey,omitempty"`
	CRSDefinedBy string      `json:"crsDefinedBy,omitempty"`
	Point        *[3]float64 `json:"point,omitempty"`
	Transformed  *[3]float64 `json:"transformed,omitempty"`
	Warnings     []string    `json:"warnings,omitempty"`
	Error        string      `json:"error,omitempty"`
}

func errNodeNotFound(path string) error {
	return errors.Errorf("No node at path %q", path)
}

func resultToJson(res traverse.Result) jNodeResult {
	out := jNodeResult{
		Path:         res.Path,
		Kind:         res.Kind,
		World:        [16]float64(res.World),
		CRSDefinedBy: res.CRSDefinedBy,
		Warnings:     res.Warnings,
	}
	if res.CRS != nil {
		out.CRS = res.CRS.Name
		out.CRSKey = res.CRS.Key
	}
	if res.HasPoint {
		point, transformed := [3]float64(res.Point), [3]float64(res.Transformed)
		out.Point = &point
		out.Transformed = &transformed
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

func HandlerAjaxScene(w http.ResponseWriter, r *http.Request) {
	nodes := make([]jNodeSummary, 0, ServerGraph.Len())
	var walk func(n *scene.Node)
	walk = func(n *scene.Node) {
		nodes = append(nodes, jNodeSummary{Path: n.Path(), Kind: n.Kind, Abstract: n.Abstract})
		for _, child := range n.Children() {
			walk(child)
		}
	}
	for _, root := range ServerGraph.Roots() {
		walk(root)
	}
	webutils.WriteJson(w, nodes)
}

func nodeFromRequest(r *http.Request) *scene.Node {
	path := mux.Vars(r)["path"]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return ServerGraph.Node(path)
}

func HandlerAjaxNode(w http.ResponseWriter, r *http.Request) {
	n := nodeFromRequest(r)
	if n == nil {
		webutils.WriteError(w, errNodeNotFound(mux.Vars(r)["path"]))
		return
	}

	detail := jNodeDetail{
		jNodeSummary:    jNodeSummary{Path: n.Path(), Kind: n.Kind, Abstract: n.Abstract},
		ResetXformStack: n.ResetXformStack,
		Inherits:        n.Inherits(),
		Attributes:      n.Attributes(),
	}
	for _, op := range n.Ops {
		detail.XformOps = append(detail.XformOps, op.String())
	}
	for _, child := range n.Children() {
		detail.Children = append(detail.Children, child.Path())
	}
	webutils.WriteJson(w, detail)
}

func HandlerAjaxTraverse(w http.ResponseWriter, r *http.Request) {
	target, err := targetFromRequest(r)
	if err != nil {
		log.Printf("[web] Bad traverse target: %v", err)
		webutils.WriteError(w, err)
		return
	}

	results := make([]jNodeResult, 0, ServerGraph.Len())
	for res := range traverse.Traverse(ServerGraph, ServerRegistry, target) {
		results = append(results, resultToJson(res))
	}
	webutils.WriteJson(w, results)
}

func HandlerDumpNode(w http.ResponseWriter, r *http.Request) {
	n := nodeFromRequest(r)
	if n == nil {
		webutils.WriteError(w, errNodeNotFound(mux.Vars(r)["path"]))
		return
	}
	webutils.WriteResult(w, []byte(utils.SDump(n)))
}

func HandlerDumpGltf(w http.ResponseWriter, r *http.Request) {
	target, err := targetFromRequest(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	doc := gltfexport.Build(ServerGraph, ServerRegistry, target)

	var buf bytes.Buffer
	if err := gltfexport.ExportBinary(&buf, doc); err != nil {
		log.Printf("[web] Failed to export gltf: %v", err)
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, "scene.glb")
}
