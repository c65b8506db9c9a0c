// Package config holds stage-level settings shared by the loader,
// the traversal and the report.
package config

import (
	"strings"

	"github.com/pkg/errors"
)

type UpAxis int

const (
	UP_AXIS_Z UpAxis = iota
	UP_AXIS_Y
)

var (
	upAxis        = UP_AXIS_Z
	metersPerUnit = 1.0
)

func GetUpAxis() UpAxis { return upAxis }

func SetUpAxis(a UpAxis) { upAxis = a }

func ParseUpAxis(s string) (UpAxis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "Z":
		return UP_AXIS_Z, nil
	case "Y":
		return UP_AXIS_Y, nil
	}
	return UP_AXIS_Z, errors.Errorf("Unknown up axis %q", s)
}

func (a UpAxis) String() string {
	if a == UP_AXIS_Y {
		return "Y"
	}
	return "Z"
}

func GetMetersPerUnit() float64 { return metersPerUnit }

func SetMetersPerUnit(m float64) {
	if m <= 0 {
		m = 1.0
	}
	metersPerUnit = m
}
