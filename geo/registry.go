// Package geo resolves CRS identifiers to descriptors and transforms
// points between reference systems. The cartographic math is PROJ's,
// through github.com/twpayne/go-proj; this package only owns identifier
// dereferencing, caching and the error taxonomy.
package geo

import (
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	proj "github.com/twpayne/go-proj/v10"

	"github.com/mistafunk/aousd-geospatial-pocs/wkt"
)

var (
	ErrUnknownCRS           = errors.New("unknown crs")
	ErrTransformUnsupported = errors.New("no transformation between reference systems")
	ErrTransformDomain      = errors.New("point outside source reference system domain")
)

// AssetLookup dereferences a "file<path>" reference from a geodetic
// library document to its WKT text.
type AssetLookup func(file, path string) (string, error)

var assetRefRe = regexp.MustCompile(`^([^<]*)<([^<>]*)>$`)

// Registry owns the descriptor set for the lifetime of one or more
// traversal runs. Safe for concurrent use.
type Registry struct {
	lookup AssetLookup

	mu          sync.Mutex
	descriptors map[string]*Descriptor

	transformers *cache.Cache
}

func NewRegistry(lookup AssetLookup) *Registry {
	return &Registry{
		lookup:       lookup,
		descriptors:  make(map[string]*Descriptor),
		transformers: cache.New(cache.NoExpiration, 0),
	}
}

// Resolve dereferences a CRS identifier to a descriptor. Supported
// forms: "file<path>" geodetic library references, inline WKT, and
// authority codes like "EPSG:32617". Descriptors are cached by
// identifier for the registry's lifetime.
func (r *Registry) Resolve(identifier string) (*Descriptor, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, errors.Wrap(ErrUnknownCRS, "empty identifier")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.descriptors[identifier]; ok {
		return d, nil
	}

	d, err := r.resolveLocked(identifier)
	if err != nil {
		return nil, err
	}
	r.descriptors[identifier] = d
	return d, nil
}

func (r *Registry) resolveLocked(identifier string) (*Descriptor, error) {
	if m := assetRefRe.FindStringSubmatch(identifier); m != nil {
		if r.lookup == nil {
			return nil, errors.Wrapf(ErrUnknownCRS, "no geodetic library to resolve %q", identifier)
		}
		text, err := r.lookup(m[1], m[2])
		if err != nil {
			return nil, errors.Wrapf(ErrUnknownCRS, "%q: %v", identifier, err)
		}
		d, err := newDescriptorFromWKT(identifier, text)
		if err != nil {
			return nil, errors.Wrapf(ErrUnknownCRS, "%q: %v", identifier, err)
		}
		return d, nil
	}

	if wkt.IsCoordinateSystem(identifier) {
		d, err := newDescriptorFromWKT(identifier, identifier)
		if err != nil {
			return nil, errors.Wrapf(ErrUnknownCRS, "inline wkt: %v", err)
		}
		// inline definitions share a descriptor when they share an
		// authority code
		if d.Authority != "" {
			d.Key = d.Authority
		}
		return d, nil
	}

	if code, ok := authorityCode(identifier); ok {
		return &Descriptor{Key: code, Name: code, Authority: code}, nil
	}

	return nil, errors.Wrapf(ErrUnknownCRS, "%q", identifier)
}

func authorityCode(identifier string) (string, bool) {
	parts := strings.SplitN(identifier, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	for _, auth := range []string{"EPSG", "ESRI", "OGC", "IAU_2015"} {
		if strings.EqualFold(parts[0], auth) {
			return auth + ":" + parts[1], true
		}
	}
	return "", false
}

// Transform converts a point from src to dst. It is a pure function of
// its inputs; transforming within a single system is the exact
// identity.
func (r *Registry) Transform(p mgl64.Vec3, src, dst *Descriptor) (mgl64.Vec3, error) {
	if src == nil || dst == nil {
		return mgl64.Vec3{}, errors.Wrap(ErrTransformUnsupported, "missing descriptor")
	}
	if src.Key == dst.Key {
		return p, nil
	}

	pj, err := r.transformer(src, dst)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	out, err := pj.Forward(proj.NewCoord(p[0], p[1], p[2], 0))
	if err != nil {
		return mgl64.Vec3{}, errors.Wrapf(ErrTransformDomain,
			"(%g, %g, %g) in %q: %v", p[0], p[1], p[2], src.Name, err)
	}
	q := mgl64.Vec3{out.X(), out.Y(), out.Z()}
	for _, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return mgl64.Vec3{}, errors.Wrapf(ErrTransformDomain,
				"(%g, %g, %g) in %q", p[0], p[1], p[2], src.Name)
		}
	}
	return q, nil
}

// transformer builds (or reuses) the PROJ pipeline for an ordered
// descriptor pair, normalized to easting/northing axis order.
func (r *Registry) transformer(src, dst *Descriptor) (*proj.PJ, error) {
	key := src.Key + "\x00" + dst.Key
	if cached, ok := r.transformers.Get(key); ok {
		return cached.(*proj.PJ), nil
	}

	pj, err := proj.NewCRSToCRS(src.projInput(), dst.projInput(), nil)
	if err != nil {
		return nil, errors.Wrapf(ErrTransformUnsupported, "%q -> %q: %v", src.Name, dst.Name, err)
	}
	pj, err = pj.NormalizeForVisualization()
	if err != nil {
		return nil, errors.Wrapf(ErrTransformUnsupported, "%q -> %q: %v", src.Name, dst.Name, err)
	}

	r.transformers.Set(key, pj, cache.NoExpiration)
	return pj, nil
}
