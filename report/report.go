// Package report renders a traversal result stream as text. It is a
// consumer of traverse.Result and enforces no contract of its own.
package report

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mistafunk/aousd-geospatial-pocs/geo"
	"github.com/mistafunk/aousd-geospatial-pocs/traverse"
	"github.com/mistafunk/aousd-geospatial-pocs/xform"
)

// Write streams the per-node report. It consumes the sequence lazily,
// so a write error on a pipe still leaves earlier nodes printed.
func Write(w io.Writer, results iter.Seq[traverse.Result], target *geo.Descriptor) error {
	var err error
	for res := range results {
		if err = writeNode(w, res, target); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, res traverse.Result, target *geo.Descriptor) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nNode: %s\n", res.Path)
	fmt.Fprintf(&b, "  Kind: %s\n", res.Kind)

	if len(res.Ops) == 0 {
		b.WriteString("  No local transform operations.\n")
	} else {
		b.WriteString("  Local Transform Operations:\n")
		for _, op := range res.Ops {
			fmt.Fprintf(&b, "    - %v\n", op)
		}
	}
	fmt.Fprintf(&b, "  Local to World Translation: %s\n", formatVec(xform.Translation(res.World)))

	for _, warn := range res.Warnings {
		fmt.Fprintf(&b, "  Warning: %s\n", warn)
	}

	switch {
	case res.Err != nil:
		fmt.Fprintf(&b, "  Error: %v\n", res.Err)
	case res.CRS == nil:
		b.WriteString("  Node is not georeferenced.\n")
	default:
		fmt.Fprintf(&b, "  Node CRS: %s (%s)\n", res.CRS.Name, res.CRSDefinedBy)
		if target != nil && res.HasPoint {
			fmt.Fprintf(&b, "  Transformed coordinates: %s in target CRS: %s\n",
				formatVec(res.Transformed), target.Name)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
