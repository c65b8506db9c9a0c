// Package wkt parses OGC WKT 1 coordinate-system definitions into a
// keyword tree, enough to pull out display names, authority codes and
// projection parameters. The projection math itself never looks at
// this tree; PROJ consumes the raw WKT text directly.
package wkt

import (
	"fmt"
	"strings"
)

// Value is one bracketed keyword clause, e.g.
// PROJCS["name", GEOGCS[...], PARAMETER["central_meridian", -81], ...].
// Args holds string, float64 and *Value entries in authored order.
type Value struct {
	Keyword string
	Args    []interface{}
}

// Name returns the first string argument, the display name by WKT 1
// convention.
func (v *Value) Name() string {
	for _, a := range v.Args {
		if s, ok := a.(string); ok {
			return s
		}
	}
	return ""
}

// Find returns the first direct child clause with the given keyword.
func (v *Value) Find(keyword string) *Value {
	for _, a := range v.Args {
		if c, ok := a.(*Value); ok && strings.EqualFold(c.Keyword, keyword) {
			return c
		}
	}
	return nil
}

// Parameter looks up a PARAMETER["name", value] child.
func (v *Value) Parameter(name string) (float64, bool) {
	for _, a := range v.Args {
		c, ok := a.(*Value)
		if !ok || !strings.EqualFold(c.Keyword, "PARAMETER") || !strings.EqualFold(c.Name(), name) {
			continue
		}
		for _, arg := range c.Args {
			if f, ok := arg.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// Authority returns the node's AUTHORITY clause as "EPSG:26917".
func (v *Value) Authority() (string, bool) {
	auth := v.Find("AUTHORITY")
	if auth == nil {
		return "", false
	}
	var parts []string
	for _, a := range auth.Args {
		if s, ok := a.(string); ok {
			parts = append(parts, s)
		}
	}
	if len(parts) != 2 {
		return "", false
	}
	return parts[0] + ":" + parts[1], true
}

func (v *Value) String() string {
	parts := make([]string, 0, len(v.Args))
	for _, a := range v.Args {
		switch arg := a.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%q", arg))
		case float64:
			parts = append(parts, fmt.Sprintf("%g", arg))
		case *Value:
			parts = append(parts, arg.String())
		}
	}
	return v.Keyword + "[" + strings.Join(parts, ",") + "]"
}

// IsCoordinateSystem reports whether text plausibly starts a WKT
// coordinate-system definition, used to tell inline WKT identifiers
// apart from asset references.
func IsCoordinateSystem(text string) bool {
	head := strings.ToUpper(strings.TrimSpace(text))
	for _, kw := range []string{"PROJCS", "GEOGCS", "GEOCCS", "COMPD_CS", "PROJCRS", "GEOGCRS"} {
		if strings.HasPrefix(head, kw) {
			return true
		}
	}
	return false
}
