package wkt_test

import (
	"testing"

	"github.com/mistafunk/aousd-geospatial-pocs/wkt"
)

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

func TestParseProjectedSystem(t *testing.T) {
	v, err := wkt.Parse([]byte(utm17n))
	if err != nil {
		t.Fatal(err)
	}

	if v.Keyword != "PROJCS" {
		t.Errorf("keyword %q", v.Keyword)
	}
	if v.Name() != "NAD83 / UTM zone 17N" {
		t.Errorf("name %q", v.Name())
	}

	auth, ok := v.Authority()
	if !ok || auth != "EPSG:26917" {
		t.Errorf("authority %q ok=%v", auth, ok)
	}

	geogcs := v.Find("GEOGCS")
	if geogcs == nil {
		t.Fatal("no GEOGCS child")
	}
	if geogcs.Name() != "NAD83" {
		t.Errorf("geogcs name %q", geogcs.Name())
	}
	if auth, ok := geogcs.Authority(); !ok || auth != "EPSG:4269" {
		t.Errorf("geogcs authority %q ok=%v", auth, ok)
	}

	for _, tc := range []struct {
		param string
		want  float64
	}{
		{"central_meridian", -81},
		{"scale_factor", 0.9996},
		{"false_easting", 500000},
		{"latitude_of_origin", 0},
	} {
		got, ok := v.Parameter(tc.param)
		if !ok || got != tc.want {
			t.Errorf("parameter %q = %v ok=%v, want %v", tc.param, got, ok, tc.want)
		}
	}

	if _, ok := v.Parameter("no_such_parameter"); ok {
		t.Error("found a parameter that does not exist")
	}
}

func TestParseBareEnumKeywords(t *testing.T) {
	v, err := wkt.Parse([]byte(`AXIS["Easting",EAST]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Args) != 2 {
		t.Fatalf("args %v", v.Args)
	}
	if v.Args[1] != "EAST" {
		t.Errorf("enum arg %v", v.Args[1])
	}
}

func TestParseParentheses(t *testing.T) {
	// ESRI flavored wkt uses round brackets
	v, err := wkt.Parse([]byte(`GEOGCS("WGS 84",DATUM("WGS_1984",SPHEROID("WGS 84",6378137,298.257223563)))`))
	if err != nil {
		t.Fatal(err)
	}
	if v.Find("DATUM") == nil {
		t.Error("no DATUM child")
	}
}

func TestParseScientificNotation(t *testing.T) {
	v, err := wkt.Parse([]byte(`UNIT["degree",1.7453292519943295e-2]`))
	if err != nil {
		t.Fatal(err)
	}
	if v.Args[1].(float64) == 0 {
		t.Error("number not parsed")
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		"",
		`PROJCS`,
		`PROJCS["unterminated"`,
		`PROJCS["a" "b"]`,
		`["no keyword"]`,
		`PROJCS["a"] trailing`,
	} {
		if _, err := wkt.Parse([]byte(text)); err == nil {
			t.Errorf("no error for %q", text)
		}
	}
}

func TestIsCoordinateSystem(t *testing.T) {
	if !wkt.IsCoordinateSystem(utm17n) {
		t.Error("utm17n should look like wkt")
	}
	if wkt.IsCoordinateSystem("geodetic.yaml</utm17n>") {
		t.Error("asset reference mistaken for wkt")
	}
	if wkt.IsCoordinateSystem("EPSG:26917") {
		t.Error("authority code mistaken for wkt")
	}
}

func TestStringRoundTripsThroughParse(t *testing.T) {
	v, err := wkt.Parse([]byte(utm17n))
	if err != nil {
		t.Fatal(err)
	}
	again, err := wkt.Parse([]byte(v.String()))
	if err != nil {
		t.Fatal(err)
	}
	if again.Name() != v.Name() {
		t.Errorf("name changed: %q vs %q", again.Name(), v.Name())
	}
}
