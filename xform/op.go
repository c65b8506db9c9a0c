package xform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type OpKind int

const (
	OP_TRANSLATE OpKind = iota
	OP_ROTATE_X
	OP_ROTATE_Y
	OP_ROTATE_Z
	OP_SCALE
	OP_MATRIX
)

func (k OpKind) String() string {
	switch k {
	case OP_TRANSLATE:
		return "translate"
	case OP_ROTATE_X:
		return "rotateX"
	case OP_ROTATE_Y:
		return "rotateY"
	case OP_ROTATE_Z:
		return "rotateZ"
	case OP_SCALE:
		return "scale"
	case OP_MATRIX:
		return "matrix"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is a single authored transform operation. Angles are degrees,
// matrix payloads are row-major as authored in scene documents.
type Op struct {
	Kind  OpKind
	Vec   mgl64.Vec3
	Angle float64
	M     mgl64.Mat4
}

func Translate(x, y, z float64) Op {
	return Op{Kind: OP_TRANSLATE, Vec: mgl64.Vec3{x, y, z}}
}

func RotateX(degrees float64) Op { return Op{Kind: OP_ROTATE_X, Angle: degrees} }
func RotateY(degrees float64) Op { return Op{Kind: OP_ROTATE_Y, Angle: degrees} }
func RotateZ(degrees float64) Op { return Op{Kind: OP_ROTATE_Z, Angle: degrees} }

func Scale(x, y, z float64) Op {
	return Op{Kind: OP_SCALE, Vec: mgl64.Vec3{x, y, z}}
}

// Matrix wraps an authored row-major, row-vector matrix; reinterpreting
// the 16 values column-major is the column-vector transpose.
func Matrix(rowMajor [16]float64) Op {
	return Op{Kind: OP_MATRIX, M: mgl64.Mat4(rowMajor)}
}

func (o Op) Mat4() mgl64.Mat4 {
	switch o.Kind {
	case OP_TRANSLATE:
		return mgl64.Translate3D(o.Vec[0], o.Vec[1], o.Vec[2])
	case OP_ROTATE_X:
		return mgl64.HomogRotate3DX(mgl64.DegToRad(o.Angle))
	case OP_ROTATE_Y:
		return mgl64.HomogRotate3DY(mgl64.DegToRad(o.Angle))
	case OP_ROTATE_Z:
		return mgl64.HomogRotate3DZ(mgl64.DegToRad(o.Angle))
	case OP_SCALE:
		return mgl64.Scale3D(o.Vec[0], o.Vec[1], o.Vec[2])
	case OP_MATRIX:
		return o.M
	}
	return mgl64.Ident4()
}

func (o Op) String() string {
	switch o.Kind {
	case OP_TRANSLATE, OP_SCALE:
		return fmt.Sprintf("%v: (%g, %g, %g)", o.Kind, o.Vec[0], o.Vec[1], o.Vec[2])
	case OP_ROTATE_X, OP_ROTATE_Y, OP_ROTATE_Z:
		return fmt.Sprintf("%v: %g", o.Kind, o.Angle)
	case OP_MATRIX:
		return fmt.Sprintf("%v: %v", o.Kind, o.M)
	}
	return o.Kind.String()
}

// Local composes ops in authored order, the first op being the most
// local one (applied to a point before any later op).
func Local(ops []Op) mgl64.Mat4 {
	m := mgl64.Ident4()
	for _, op := range ops {
		m = op.Mat4().Mul4(m)
	}
	return m
}

// Translation extracts the translation column of a local-to-world matrix.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}
