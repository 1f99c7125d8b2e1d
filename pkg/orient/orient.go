// Package orient resolves sketch planes and axis-aligning rotations from
// coordinate frames and direction vectors.
package orient

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ahzs645/Fusion2SCAD/pkg/model"
)

// planeTolerance is how close a normal component must be to ±1 for the
// frame to classify as a principal plane.
const planeTolerance = 0.001

// axisReferenceLimit: when the target direction's X component reaches
// this magnitude, the Y axis is used as the basis reference instead.
const axisReferenceLimit = 0.9

// Plane is a canonical sketch plane.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
	PlaneCustom
)

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "XY"
	case PlaneXZ:
		return "XZ"
	case PlaneYZ:
		return "YZ"
	default:
		return "CUSTOM"
	}
}

// PlaneFromNormal classifies a plane normal as one of the three principal
// planes, or Custom when no component is within tolerance of ±1.
func PlaneFromNormal(n v3.Vec) Plane {
	switch {
	case math.Abs(n.Z-1) < planeTolerance || math.Abs(n.Z+1) < planeTolerance:
		return PlaneXY
	case math.Abs(n.Y-1) < planeTolerance || math.Abs(n.Y+1) < planeTolerance:
		return PlaneXZ
	case math.Abs(n.X-1) < planeTolerance || math.Abs(n.X+1) < planeTolerance:
		return PlaneYZ
	default:
		return PlaneCustom
	}
}

// PlaneFromFrame classifies a coordinate frame by its third axis. A nil
// frame defaults to XY.
func PlaneFromFrame(f *model.Frame) Plane {
	if f == nil {
		return PlaneXY
	}
	return PlaneFromNormal(f.ZAxis)
}

// Matrix4 is a 4x4 transform in row-major order.
type Matrix4 [4][4]float64

// Identity returns the identity transform.
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// AxisAlign constructs a rotation whose third basis column is the given
// direction, placing a primitive's default Z axis onto it. The reference
// vector is the X axis unless the direction already leans into X, in
// which case the Y axis is used; the remaining columns come from
// normalized cross products, so the basis is orthonormal, right-handed,
// and deterministic for a given direction.
func AxisAlign(dir v3.Vec) Matrix4 {
	if dir.Length() < 1e-9 {
		return Identity()
	}
	z := dir.Normalize()

	ref := v3.Vec{X: 1, Y: 0, Z: 0}
	if math.Abs(z.X) >= axisReferenceLimit {
		ref = v3.Vec{X: 0, Y: 1, Z: 0}
	}

	x := ref.Cross(z).Normalize()
	y := z.Cross(x).Normalize()

	return Matrix4{
		{x.X, y.X, z.X, 0},
		{x.Y, y.Y, z.Y, 0},
		{x.Z, y.Z, z.Z, 0},
		{0, 0, 0, 1},
	}
}

// FrameMatrix builds the placement transform of a coordinate frame, with
// the frame's axes as basis columns and its origin as the translation
// column. Origin coordinates are passed through unchanged; callers
// convert units before or after as needed.
func FrameMatrix(f *model.Frame) Matrix4 {
	if f == nil {
		return Identity()
	}
	return Matrix4{
		{f.XAxis.X, f.YAxis.X, f.ZAxis.X, f.Origin.X},
		{f.XAxis.Y, f.YAxis.Y, f.ZAxis.Y, f.Origin.Y},
		{f.XAxis.Z, f.YAxis.Z, f.ZAxis.Z, f.Origin.Z},
		{0, 0, 0, 1},
	}
}

// EulerFromNormal converts a unit normal to (rx, ry, rz) rotation angles
// in degrees that tilt the Z axis onto the normal. A near-zero vector
// yields no rotation.
func EulerFromNormal(n v3.Vec) (rx, ry, rz float64) {
	length := n.Length()
	if length < 1e-4 {
		return 0, 0, 0
	}
	u := n.Normalize()

	ry = math.Asin(-u.X) * 180 / math.Pi
	rx = math.Atan2(u.Y, u.Z) * 180 / math.Pi
	return rx, ry, 0
}
