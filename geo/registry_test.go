package geo_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mistafunk/aousd-geospatial-pocs/geo"
)

const utm30n = `PROJCS["WGS 84 / UTM zone 30N",
    GEOGCS["WGS 84",
        DATUM["WGS_1984",
            SPHEROID["WGS 84",6378137,298.257223563,
                AUTHORITY["EPSG","7030"]],
            AUTHORITY["EPSG","6326"]],
        PRIMEM["Greenwich",0,
            AUTHORITY["EPSG","8901"]],
        UNIT["degree",0.0174532925199433,
            AUTHORITY["EPSG","9122"]],
        AUTHORITY["EPSG","4326"]],
    PROJECTION["Transverse_Mercator"],
    PARAMETER["latitude_of_origin",0],
    PARAMETER["central_meridian",-3],
    PARAMETER["scale_factor",0.9996],
    PARAMETER["false_easting",500000],
    PARAMETER["false_northing",0],
    UNIT["metre",1,
        AUTHORITY["EPSG","9001"]],
    AXIS["Easting",EAST],
    AXIS["Northing",NORTH],
    AUTHORITY["EPSG","32630"]]`

const utm17n = `PROJCS["NAD83 / UTM zone 17N",
    GEOGCS["NAD83",
        DATUM["North_American_Datum_1983",
            SPHEROID["GRS 1980",6378137,298.257222101],
            TOWGS84[0,0,0,0,0,0,0]],
        PRIMEM["Greenwich",0,
            AUTHORITY["EPSG","8901"]],
        UNIT["degree",0.0174532925199433,
            AUTHORITY["EPSG","9122"]],
        AUTHORITY["EPSG","4269"]],
    PROJECTION["Transverse_Mercator"],
    PARAMETER["latitude_of_origin",0],
    PARAMETER["central_meridian",-81],
    PARAMETER["scale_factor",0.9996],
    PARAMETER["false_easting",500000],
    PARAMETER["false_northing",0],
    UNIT["metre",1,
        AUTHORITY["EPSG","9001"]],
    AXIS["Easting",EAST],
    AXIS["Northing",NORTH],
    AUTHORITY["EPSG","26917"]]`

func testLookup(file, path string) (string, error) {
	if file != "geodetic.yaml" {
		return "", errors.Errorf("no document %q", file)
	}
	switch path {
	case "/utm30n":
		return utm30n, nil
	case "/utm17n":
		return utm17n, nil
	}
	return "", errors.Errorf("no crs %q", path)
}

func TestResolveAssetReference(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	d, err := reg.Resolve("geodetic.yaml</utm17n>")
	require.NoError(t, err)
	assert.Equal(t, "NAD83 / UTM zone 17N", d.Name)
	assert.Equal(t, "EPSG:26917", d.Authority)
	assert.Equal(t, "geodetic.yaml</utm17n>", d.Key)

	cm, ok := d.Parameter("central_meridian")
	assert.True(t, ok)
	assert.Equal(t, -81.0, cm)

	// resolving again returns the cached descriptor
	again, err := reg.Resolve("geodetic.yaml</utm17n>")
	require.NoError(t, err)
	assert.Same(t, d, again)
}

func TestResolveInlineWKT(t *testing.T) {
	reg := geo.NewRegistry(nil)

	d, err := reg.Resolve(utm30n)
	require.NoError(t, err)
	assert.Equal(t, "WGS 84 / UTM zone 30N", d.Name)
	assert.Equal(t, "EPSG:32630", d.Key)
}

func TestResolveAuthorityCode(t *testing.T) {
	reg := geo.NewRegistry(nil)

	d, err := reg.Resolve("EPSG:32617")
	require.NoError(t, err)
	assert.Equal(t, "EPSG:32617", d.Key)
}

func TestResolveUnknown(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	for _, identifier := range []string{
		"",
		"not a crs at all",
		"geodetic.yaml</nowhere>",
		"missing.yaml</utm17n>",
	} {
		_, err := reg.Resolve(identifier)
		assert.ErrorIs(t, err, geo.ErrUnknownCRS, "identifier %q", identifier)
	}
}

func TestTransformSameSystemIsExactIdentity(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	a, err := reg.Resolve("geodetic.yaml</utm17n>")
	require.NoError(t, err)

	p := mgl64.Vec3{586000.123456789, 4515000.987654321, 50.5}
	got, err := reg.Transform(p, a, a)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestTransformIsPure(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	src, err := reg.Resolve("geodetic.yaml</utm30n>")
	require.NoError(t, err)
	dst, err := reg.Resolve("geodetic.yaml</utm17n>")
	require.NoError(t, err)

	p := mgl64.Vec3{500000, 5700000, 10}
	first, err := reg.Transform(p, src, dst)
	require.NoError(t, err)
	second, err := reg.Transform(p, src, dst)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTransformSampleCrossZone(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	src, err := reg.Resolve("geodetic.yaml</utm30n>")
	require.NoError(t, err)
	dst, err := reg.Resolve("geodetic.yaml</utm17n>")
	require.NoError(t, err)

	got, err := reg.Transform(mgl64.Vec3{708276.9, 5706731.7, 50}, src, dst)
	require.NoError(t, err)
	assert.InDelta(t, 5080928.80, got[0], 1.0)
	assert.InDelta(t, 9206849.81, got[1], 1.0)
	assert.InDelta(t, 50.0, got[2], 1e-6)
}

func TestTransformRoundTripProperty(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	utm, err := reg.Resolve("geodetic.yaml</utm30n>")
	require.NoError(t, err)
	lonlat, err := reg.Resolve("EPSG:4326")
	require.NoError(t, err)

	rapid.Check(t, func(r *rapid.T) {
		p := mgl64.Vec3{
			rapid.Float64Range(400000, 600000).Draw(r, "easting"),
			rapid.Float64Range(4500000, 5800000).Draw(r, "northing"),
			rapid.Float64Range(-100, 1000).Draw(r, "height"),
		}

		mid, err := reg.Transform(p, utm, lonlat)
		if err != nil {
			t.Fatal(err)
		}
		back, err := reg.Transform(mid, lonlat, utm)
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 3; i++ {
			if diff := back[i] - p[i]; diff > 1e-6 || diff < -1e-6 {
				t.Fatalf("round trip drift %v at axis %d: %v vs %v", diff, i, back, p)
			}
		}
	})
}

func TestTransformDomainError(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	src, err := reg.Resolve("EPSG:4326")
	require.NoError(t, err)
	dst, err := reg.Resolve("geodetic.yaml</utm30n>")
	require.NoError(t, err)

	// latitude 95 does not exist on the ellipsoid
	_, err = reg.Transform(mgl64.Vec3{-3, 95, 0}, src, dst)
	assert.ErrorIs(t, err, geo.ErrTransformDomain)
}

func TestTransformMissingDescriptor(t *testing.T) {
	reg := geo.NewRegistry(testLookup)

	d, err := reg.Resolve("geodetic.yaml</utm17n>")
	require.NoError(t, err)

	_, err = reg.Transform(mgl64.Vec3{}, nil, d)
	assert.ErrorIs(t, err, geo.ErrTransformUnsupported)
}
