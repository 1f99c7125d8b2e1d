package model

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SketchInfo describes the sketch a profile belongs to: its name, its
// origin in model space, its coordinate frame, and the host's name for
// the reference plane it was drawn on.
type SketchInfo struct {
	Name           string  `json:"name,omitempty"`
	Origin         v3.Vec  `json:"origin"`
	Frame          *Frame  `json:"frame,omitempty"`
	ReferencePlane string  `json:"reference_plane,omitempty"`
	PlaneNormal    *v3.Vec `json:"plane_normal,omitempty"`
	PlaneOrigin    *v3.Vec `json:"plane_origin,omitempty"`
}

// Profile is one closed region of a sketch: an outer loop plus zero or
// more hole loops. The host marks loop roles explicitly.
type Profile struct {
	Loops       []*Loop     `json:"loops"`
	Sketch      *SketchInfo `json:"sketch,omitempty"`
	BoundingBox *Box2       `json:"bounding_box,omitempty"`
}

// Box2 is an axis-aligned 2D bounding box in sketch coordinates.
type Box2 struct {
	Min v2.Vec `json:"min"`
	Max v2.Vec `json:"max"`
}

// Loop is an ordered, closed run of curves. IsOuter distinguishes the
// boundary loop from hole loops.
type Loop struct {
	IsOuter bool    `json:"is_outer"`
	Curves  []Curve `json:"curves"`
}

// CurveKind enumerates the curve types a sketch loop can contain.
type CurveKind int

const (
	CurveLine CurveKind = iota
	CurveArc
	CurveCircle
	CurveEllipse
	CurveSpline
)

func (k CurveKind) String() string {
	switch k {
	case CurveLine:
		return "line"
	case CurveArc:
		return "arc"
	case CurveCircle:
		return "circle"
	case CurveEllipse:
		return "ellipse"
	case CurveSpline:
		return "spline"
	default:
		return "unknown"
	}
}

// Curve is the closed union of sketch curve types.
type Curve interface {
	curve() // marker method restricting implementations to this package
	Kind() CurveKind
}

// LineCurve is a straight segment.
type LineCurve struct {
	Start v2.Vec `json:"start"`
	End   v2.Vec `json:"end"`
}

func (LineCurve) curve()          {}
func (LineCurve) Kind() CurveKind { return CurveLine }

// ArcCurve is a circular arc. Angles are radians, measured from the
// positive X axis.
type ArcCurve struct {
	Center     v2.Vec  `json:"center"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

func (ArcCurve) curve()          {}
func (ArcCurve) Kind() CurveKind { return CurveArc }

// CircleCurve is a full circle.
type CircleCurve struct {
	Center v2.Vec  `json:"center"`
	Radius float64 `json:"radius"`
}

func (CircleCurve) curve()          {}
func (CircleCurve) Kind() CurveKind { return CurveCircle }

// EllipseCurve is a full ellipse, optionally rotated. Rotation is radians.
type EllipseCurve struct {
	Center      v2.Vec  `json:"center"`
	MajorRadius float64 `json:"major_radius"`
	MinorRadius float64 `json:"minor_radius"`
	Rotation    float64 `json:"rotation,omitempty"`
}

func (EllipseCurve) curve()          {}
func (EllipseCurve) Kind() CurveKind { return CurveEllipse }

// SplineCurve is a fitted spline described by the points it interpolates.
type SplineCurve struct {
	FitPoints []v2.Vec `json:"fit_points"`
}

func (SplineCurve) curve()          {}
func (SplineCurve) Kind() CurveKind { return CurveSpline }

// ParameterExtents reports the spline's parameter range. A spline through
// n points is parameterized over [0, n-1]; fewer than two points is
// degenerate and reported as invalid.
func (s SplineCurve) ParameterExtents() (start, end float64, ok bool) {
	if len(s.FitPoints) < 2 {
		return 0, 0, false
	}
	return 0, float64(len(s.FitPoints) - 1), true
}

// PointAt evaluates the spline at parameter t using centripetal-free
// Catmull-Rom interpolation through the fit points. End segments reuse
// the boundary point as the missing neighbor.
func (s SplineCurve) PointAt(t float64) (v2.Vec, bool) {
	n := len(s.FitPoints)
	if n == 0 {
		return v2.Vec{}, false
	}
	if n == 1 {
		return s.FitPoints[0], true
	}
	if t <= 0 {
		return s.FitPoints[0], true
	}
	if t >= float64(n-1) {
		return s.FitPoints[n-1], true
	}

	i := int(t)
	u := t - float64(i)

	p1 := s.FitPoints[i]
	p2 := s.FitPoints[i+1]
	p0 := p1
	if i > 0 {
		p0 = s.FitPoints[i-1]
	}
	p3 := p2
	if i+2 < n {
		p3 = s.FitPoints[i+2]
	}

	return v2.Vec{
		X: catmullRom(p0.X, p1.X, p2.X, p3.X, u),
		Y: catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, u),
	}, true
}

// catmullRom evaluates the uniform Catmull-Rom basis for one coordinate.
func catmullRom(p0, p1, p2, p3, u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	return 0.5 * ((2 * p1) +
		(-p0+p2)*u +
		(2*p0-5*p1+4*p2-p3)*u2 +
		(-p0+3*p1-3*p2+p3)*u3)
}
