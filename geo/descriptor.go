package geo

import (
	"github.com/mistafunk/aousd-geospatial-pocs/wkt"
)

// Descriptor is an immutable reference-system record. Key is the
// identifier it was resolved from and is what descriptor equality
// means; WKT (when present) is what the projection engine consumes.
type Descriptor struct {
	Key       string
	Name      string
	Authority string
	WKT       string

	def *wkt.Value
}

// Parameter exposes the defining projection parameters, e.g.
// "central_meridian" or "false_easting".
func (d *Descriptor) Parameter(name string) (float64, bool) {
	if d.def == nil {
		return 0, false
	}
	return d.def.Parameter(name)
}

// projInput is the string handed to PROJ: full WKT when we have it,
// otherwise the identifier itself (e.g. "EPSG:32617").
func (d *Descriptor) projInput() string {
	if d.WKT != "" {
		return d.WKT
	}
	return d.Key
}

func newDescriptorFromWKT(key, text string) (*Descriptor, error) {
	def, err := wkt.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	d := &Descriptor{
		Key:  key,
		Name: def.Name(),
		WKT:  text,
		def:  def,
	}
	if auth, ok := def.Authority(); ok {
		d.Authority = auth
	}
	return d, nil
}
