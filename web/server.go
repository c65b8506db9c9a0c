// Package web serves the resolved scene over HTTP: JSON endpoints for
// tooling, a websocket stream of traversal results, spew dumps for
// debugging and a glTF download of the resolved graph.
package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mistafunk/aousd-geospatial-pocs/geo"
	"github.com/mistafunk/aousd-geospatial-pocs/scene"
)

var (
	ServerGraph    *scene.Graph
	ServerRegistry *geo.Registry
)

func StartServer(addr string, g *scene.Graph, reg *geo.Registry, webPath string) error {
	ServerGraph = g
	ServerRegistry = reg

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerAjaxScene)
	r.HandleFunc("/json/traverse", HandlerAjaxTraverse)
	r.HandleFunc("/json/node/{path:.*}", HandlerAjaxNode)
	r.HandleFunc("/ws/traverse", HandlerWsTraverse)
	r.HandleFunc("/dump/gltf", HandlerDumpGltf)
	r.HandleFunc("/dump/node/{path:.*}", HandlerDumpNode)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}

// targetFromRequest resolves the ?target= query parameter, nil when
// absent (authored coordinates only).
func targetFromRequest(r *http.Request) (*geo.Descriptor, error) {
	identifier := r.URL.Query().Get("target")
	if identifier == "" {
		return nil, nil
	}
	return ServerRegistry.Resolve(identifier)
}
