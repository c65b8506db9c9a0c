package document

import (
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mistafunk/aousd-geospatial-pocs/config"
)

type geodeticDoc struct {
	CRS []crsSpec `yaml:"crs"`
}

type crsSpec struct {
	Path    string `yaml:"path"`
	WKT     string `yaml:"wkt"`
	WKTFile string `yaml:"wktFile"`
}

// Library resolves "file<path>" CRS references against geodetic
// documents under a base directory. Documents are parsed once and kept
// for the library's lifetime; its LookupWKT is the geo.AssetLookup fed
// to the registry.
type Library struct {
	dir string

	mu   sync.Mutex
	docs map[string]map[string]string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir, docs: make(map[string]map[string]string)}
}

func (l *Library) LookupWKT(file, path string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, ok := l.docs[file]
	if !ok {
		var err error
		doc, err = l.loadDoc(file)
		if err != nil {
			return "", err
		}
		l.docs[file] = doc
	}

	text, ok := doc[path]
	if !ok {
		return "", errors.Errorf("No crs %q in geodetic document %q", path, file)
	}
	return text, nil
}

func (l *Library) loadDoc(file string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, file))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read geodetic document %q", file)
	}

	var doc geodeticDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal geodetic document %q", file)
	}

	out := make(map[string]string, len(doc.CRS))
	for _, spec := range doc.CRS {
		if spec.Path == "" {
			return nil, errors.Errorf("crs entry without path in %q", file)
		}
		switch {
		case spec.WKT != "" && spec.WKTFile != "":
			return nil, errors.Errorf("crs %q in %q has both wkt and wktFile", spec.Path, file)
		case spec.WKT != "":
			out[spec.Path] = spec.WKT
		case spec.WKTFile != "":
			text, err := l.readSidecar(spec.WKTFile)
			if err != nil {
				return nil, errors.Wrapf(err, "crs %q in %q", spec.Path, file)
			}
			out[spec.Path] = text
		default:
			return nil, errors.Errorf("crs %q in %q has neither wkt nor wktFile", spec.Path, file)
		}
	}
	return out, nil
}

// readSidecar loads a raw .wkt file, decoding it with the configured
// charmap unless it already is valid utf-8.
func (l *Library) readSidecar(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return "", errors.Wrapf(err, "Failed to read wkt sidecar")
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := config.GetEncoding().NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to decode wkt sidecar with %v", config.GetEncoding())
	}
	return string(decoded), nil
}
