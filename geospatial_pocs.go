package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mistafunk/aousd-geospatial-pocs/config"
	"github.com/mistafunk/aousd-geospatial-pocs/document"
	"github.com/mistafunk/aousd-geospatial-pocs/geo"
	"github.com/mistafunk/aousd-geospatial-pocs/gltfexport"
	"github.com/mistafunk/aousd-geospatial-pocs/report"
	"github.com/mistafunk/aousd-geospatial-pocs/traverse"
	"github.com/mistafunk/aousd-geospatial-pocs/web"
)

func main() {
	var scenePath, target, addr, gltfOut, encoding string
	var serve bool
	flag.StringVar(&scenePath, "scene", "", "Path to scene document (yaml)")
	flag.StringVar(&target, "target", "", "Target CRS: EPSG:code, geodetic.yaml<path> reference or inline WKT")
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.BoolVar(&serve, "serve", false, "Serve the scene over http instead of printing a report")
	flag.StringVar(&gltfOut, "gltf", "", "Write the resolved scene as binary glTF to this file")
	flag.StringVar(&encoding, "encoding", "", "Charmap for legacy .wkt sidecar files (default ISO 8859-1)")
	flag.Parse()

	if scenePath == "" {
		flag.PrintDefaults()
		return
	}

	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatalf("Known encodings: %v\n%v", config.ListEncodings(), err)
		}
	}

	graph, err := document.LoadScene(scenePath)
	if err != nil {
		log.Fatal(err)
	}

	library := document.NewLibrary(filepath.Dir(scenePath))
	registry := geo.NewRegistry(library.LookupWKT)

	var targetCRS *geo.Descriptor
	if target != "" {
		if targetCRS, err = registry.Resolve(target); err != nil {
			log.Fatal(err)
		}
	}

	if gltfOut != "" {
		f, err := os.Create(gltfOut)
		if err != nil {
			log.Fatal(err)
		}
		doc := gltfexport.Build(graph, registry, targetCRS)
		if err := gltfexport.ExportBinary(f, doc); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("[gltf] Wrote %v", gltfOut)
	}

	if serve {
		if err := web.StartServer(addr, graph, registry, "web"); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := report.Write(os.Stdout, traverse.Traverse(graph, registry, targetCRS), targetCRS); err != nil {
		log.Fatal(err)
	}
}
