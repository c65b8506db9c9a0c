package report_test

import (
	"iter"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mistafunk/aousd-geospatial-pocs/geo"
	"github.com/mistafunk/aousd-geospatial-pocs/report"
	"github.com/mistafunk/aousd-geospatial-pocs/traverse"
	"github.com/mistafunk/aousd-geospatial-pocs/xform"
)

func seq(results ...traverse.Result) iter.Seq[traverse.Result] {
	return func(yield func(traverse.Result) bool) {
		for _, res := range results {
			if !yield(res) {
				return
			}
		}
	}
}

func TestWriteReport(t *testing.T) {
	target := &geo.Descriptor{Key: "EPSG:4326", Name: "WGS 84"}
	crs := &geo.Descriptor{Key: "EPSG:26917", Name: "NAD83 / UTM zone 17N"}

	georeferenced := traverse.Result{
		Path:         "/World/MoMa",
		Kind:         "Xform",
		Ops:          []xform.Op{xform.Translate(-393.7, -337.3, 0)},
		World:        mgl64.Translate3D(585606.3, 4514662.7, 50),
		CRS:          crs,
		CRSDefinedBy: "/World",
		Point:        mgl64.Vec3{585606.3, 4514662.7, 50},
		Transformed:  mgl64.Vec3{-74.034, 40.778, 50},
		HasPoint:     true,
		Warnings:     []string{"crs binding without resetXformStack"},
	}
	plain := traverse.Result{
		Path:  "/Props",
		Kind:  "Xform",
		World: mgl64.Ident4(),
	}

	var b strings.Builder
	if err := report.Write(&b, seq(georeferenced, plain), target); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"Node: /World/MoMa",
		"  Kind: Xform",
		"  Local Transform Operations:",
		"  Local to World Translation: (585606.300, 4514662.700, 50.000)",
		"  Warning: crs binding without resetXformStack",
		"  Node CRS: NAD83 / UTM zone 17N (/World)",
		"  Transformed coordinates: (-74.034, 40.778, 50.000) in target CRS: WGS 84",
		"Node: /Props",
		"  No local transform operations.",
		"  Node is not georeferenced.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestWriteReportNodeError(t *testing.T) {
	res := traverse.Result{
		Path:  "/Broken",
		Kind:  "Xform",
		World: mgl64.Ident4(),
		Err:   geo.ErrUnknownCRS,
	}

	var b strings.Builder
	if err := report.Write(&b, seq(res), nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(b.String(), "  Error: ") {
		t.Errorf("expected error line, got:\n%s", b.String())
	}
}
