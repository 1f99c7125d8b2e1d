package orient

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ahzs645/Fusion2SCAD/pkg/model"
)

func TestPlaneFromNormal(t *testing.T) {
	tests := []struct {
		name string
		n    v3.Vec
		want Plane
	}{
		{"ZUp", v3.Vec{Z: 1}, PlaneXY},
		{"ZDown", v3.Vec{Z: -1}, PlaneXY},
		{"YUp", v3.Vec{Y: 1}, PlaneXZ},
		{"YDown", v3.Vec{Y: -1}, PlaneXZ},
		{"XUp", v3.Vec{X: 1}, PlaneYZ},
		{"XDown", v3.Vec{X: -1}, PlaneYZ},
		{"WithinTolerance", v3.Vec{X: 0.0005, Z: 0.9995}, PlaneXY},
		{"OutsideTolerance", v3.Vec{X: 0.05, Z: 0.9987}, PlaneCustom},
		{"Diagonal", v3.Vec{X: 0.577, Y: 0.577, Z: 0.577}, PlaneCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaneFromNormal(tt.n); got != tt.want {
				t.Errorf("PlaneFromNormal(%v) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestPlaneFromFrame(t *testing.T) {
	if got := PlaneFromFrame(nil); got != PlaneXY {
		t.Errorf("nil frame = %v, want XY", got)
	}
	f := &model.Frame{ZAxis: v3.Vec{Y: 1}}
	if got := PlaneFromFrame(f); got != PlaneXZ {
		t.Errorf("Y-normal frame = %v, want XZ", got)
	}
}

// column extracts column j of a Matrix4's rotation block.
func column(m Matrix4, j int) v3.Vec {
	return v3.Vec{X: m[0][j], Y: m[1][j], Z: m[2][j]}
}

func TestAxisAlignPlacesDirection(t *testing.T) {
	dirs := []v3.Vec{
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: -0.3, Y: 0.2, Z: 0.9},
	}
	for _, dir := range dirs {
		m := AxisAlign(dir)
		want := dir.Normalize()
		got := column(m, 2)
		if got.Sub(want).Length() > 1e-9 {
			t.Errorf("AxisAlign(%v): third column %v, want %v", dir, got, want)
		}
	}
}

func TestAxisAlignOrthonormalRightHanded(t *testing.T) {
	dirs := []v3.Vec{
		{X: 0, Y: 0, Z: 1},
		{X: 0.95, Y: 0.1, Z: 0.1}, // leans into X, forcing the Y reference
		{X: 0.5, Y: -0.5, Z: 0.7},
	}
	for _, dir := range dirs {
		m := AxisAlign(dir)
		x, y, z := column(m, 0), column(m, 1), column(m, 2)

		for i, c := range []v3.Vec{x, y, z} {
			if math.Abs(c.Length()-1) > 1e-9 {
				t.Errorf("AxisAlign(%v): column %d not unit length: %v", dir, i, c.Length())
			}
		}
		if math.Abs(x.Dot(y)) > 1e-9 || math.Abs(y.Dot(z)) > 1e-9 || math.Abs(z.Dot(x)) > 1e-9 {
			t.Errorf("AxisAlign(%v): columns not orthogonal", dir)
		}
		if x.Cross(y).Sub(z).Length() > 1e-9 {
			t.Errorf("AxisAlign(%v): basis not right-handed", dir)
		}
	}
}

func TestAxisAlignDeterministic(t *testing.T) {
	dir := v3.Vec{X: 0.3, Y: 0.4, Z: 0.86}
	if AxisAlign(dir) != AxisAlign(dir) {
		t.Error("AxisAlign is not deterministic for equal inputs")
	}
}

func TestAxisAlignDegenerateDirection(t *testing.T) {
	if AxisAlign(v3.Vec{}) != Identity() {
		t.Error("zero direction should yield the identity")
	}
}

func TestFrameMatrix(t *testing.T) {
	f := &model.Frame{
		Origin: v3.Vec{X: 1, Y: 2, Z: 3},
		XAxis:  v3.Vec{X: 1},
		YAxis:  v3.Vec{Y: 1},
		ZAxis:  v3.Vec{Z: 1},
	}
	m := FrameMatrix(f)
	if m[0][3] != 1 || m[1][3] != 2 || m[2][3] != 3 {
		t.Errorf("translation column = (%v, %v, %v), want (1, 2, 3)", m[0][3], m[1][3], m[2][3])
	}
	if column(m, 0) != f.XAxis || column(m, 1) != f.YAxis || column(m, 2) != f.ZAxis {
		t.Error("axis columns do not match the frame")
	}
	if FrameMatrix(nil) != Identity() {
		t.Error("nil frame should yield the identity")
	}
}

func TestEulerFromNormal(t *testing.T) {
	rx, ry, rz := EulerFromNormal(v3.Vec{Z: 1})
	if rx != 0 || ry != 0 || rz != 0 {
		t.Errorf("Z normal: got (%v, %v, %v), want zeros", rx, ry, rz)
	}

	rx, ry, rz = EulerFromNormal(v3.Vec{X: 1})
	if math.Abs(ry+90) > 1e-9 || rz != 0 {
		t.Errorf("X normal: got (%v, %v, %v), want ry=-90 rz=0", rx, ry, rz)
	}

	rx, ry, rz = EulerFromNormal(v3.Vec{Y: 1})
	if math.Abs(rx-90) > 1e-9 || ry != 0 || rz != 0 {
		t.Errorf("Y normal: got (%v, %v, %v), want rx=90", rx, ry, rz)
	}
}
