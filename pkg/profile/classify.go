package profile

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/ahzs645/Fusion2SCAD/pkg/curve"
	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/units"
)

// roundingTolerance is the maximum spread between corner arc radii (mm)
// for a loop to classify as a rounded rectangle.
const roundingTolerance = 0.01

// Classify reduces a profile to a canonical shape descriptor by applying
// ordered rules:
//
//  1. one loop, one curve, full circle          -> Circle
//  2. one loop, four straight segments          -> Rect
//  3. one loop, four lines + four arcs with
//     radii within roundingTolerance            -> RoundedRect
//  4. anything else (including multiple loops)  -> Polygon
//
// Rules are order-sensitive and evaluation is total.
func Classify(p *model.Profile, segments int) Shape {
	if p == nil || len(p.Loops) == 0 {
		return Polygon{}
	}

	if len(p.Loops) == 1 {
		loop := p.Loops[0]
		curves := loop.Curves

		if len(curves) == 1 {
			if c, ok := curves[0].(model.CircleCurve); ok {
				return Circle{
					Center: v2.Vec{X: units.ToMM(c.Center.X), Y: units.ToMM(c.Center.Y)},
					Radius: units.ToMM(c.Radius),
				}
			}
		}

		if len(curves) == 4 && allLines(curves) {
			center, w, h := boundsOf(p, segments)
			return Rect{Center: center, Width: w, Height: h}
		}

		if len(curves) == 8 {
			var lines, arcs int
			var radii []float64
			for _, c := range curves {
				switch a := c.(type) {
				case model.LineCurve:
					lines++
				case model.ArcCurve:
					arcs++
					radii = append(radii, units.ToMM(a.Radius))
				}
			}
			if lines == 4 && arcs == 4 && radiiSpread(radii) < roundingTolerance {
				center, w, h := boundsOf(p, segments)
				return RoundedRect{Center: center, Width: w, Height: h, Rounding: radii[0]}
			}
		}
	}

	return ExtractPolygon(p, segments)
}

// ExtractPolygon approximates every loop of a profile into point runs,
// assigning the outer boundary from the host's explicit loop role. Loops
// that approximate to nothing are dropped.
func ExtractPolygon(p *model.Profile, segments int) Polygon {
	var poly Polygon
	if p == nil {
		return poly
	}
	for _, loop := range p.Loops {
		points := curve.Dedupe(loopPoints(loop, segments), curve.DedupeTolerance)
		if len(points) == 0 {
			continue
		}
		if loop.IsOuter && poly.Outer == nil {
			poly.Outer = points
		} else {
			poly.Holes = append(poly.Holes, points)
		}
	}
	// A profile whose host forgot to mark an outer loop still needs one.
	if poly.Outer == nil && len(poly.Holes) > 0 {
		poly.Outer = poly.Holes[0]
		poly.Holes = poly.Holes[1:]
	}
	return poly
}

// loopPoints concatenates per-curve point runs for one loop, converted to
// millimeters. Closing curves drop their final point so it is not doubled
// with the next curve's start; deduplication of the remaining seams is
// left to the caller, which runs once over the assembled loop.
func loopPoints(loop *model.Loop, segments int) []v2.Vec {
	var points []v2.Vec
	for _, c := range loop.Curves {
		switch e := c.(type) {
		case model.LineCurve:
			points = append(points, mm(e.Start))

		case model.ArcCurve:
			run := curve.ArcPoints(mm(e.Center), units.ToMM(e.Radius), e.StartAngle, e.EndAngle, segments)
			points = append(points, run[:len(run)-1]...)

		case model.CircleCurve:
			run := curve.CirclePoints(mm(e.Center), units.ToMM(e.Radius), segments)
			points = append(points, run[:len(run)-1]...)

		case model.EllipseCurve:
			run := curve.EllipsePoints(mm(e.Center), units.ToMM(e.MajorRadius), units.ToMM(e.MinorRadius), e.Rotation, segments*2)
			points = append(points, run...)

		case model.SplineCurve:
			run := curve.SplinePoints(mmSpline(e), segments*2)
			if len(run) > 1 {
				points = append(points, run[:len(run)-1]...)
			}
		}
	}
	return points
}

// mm converts a host centimeter point to millimeters.
func mm(p v2.Vec) v2.Vec {
	return v2.Vec{X: units.ToMM(p.X), Y: units.ToMM(p.Y)}
}

// mmSpline wraps a spline so sampling yields millimeter points.
type mmEvaluator struct {
	s model.SplineCurve
}

func mmSpline(s model.SplineCurve) curve.Evaluator {
	return mmEvaluator{s: s}
}

func (e mmEvaluator) ParameterExtents() (float64, float64, bool) {
	return e.s.ParameterExtents()
}

func (e mmEvaluator) PointAt(t float64) (v2.Vec, bool) {
	p, ok := e.s.PointAt(t)
	if !ok {
		return v2.Vec{}, false
	}
	return mm(p), true
}

func allLines(curves []model.Curve) bool {
	for _, c := range curves {
		if _, ok := c.(model.LineCurve); !ok {
			return false
		}
	}
	return true
}

// radiiSpread returns max - min over the radii.
func radiiSpread(radii []float64) float64 {
	if len(radii) == 0 {
		return math.Inf(1)
	}
	lo, hi := radii[0], radii[0]
	for _, r := range radii[1:] {
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}
	return hi - lo
}

// boundsOf derives the millimeter center and dimensions of a profile from
// the host bounding box, falling back to the approximated outline when
// the host did not supply one.
func boundsOf(p *model.Profile, segments int) (center v2.Vec, width, height float64) {
	if p.BoundingBox != nil {
		min, max := mm(p.BoundingBox.Min), mm(p.BoundingBox.Max)
		return v2.Vec{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}, max.X - min.X, max.Y - min.Y
	}

	var min, max v2.Vec
	first := true
	for _, loop := range p.Loops {
		for _, pt := range loopPoints(loop, segments) {
			if first {
				min, max = pt, pt
				first = false
				continue
			}
			min.X = math.Min(min.X, pt.X)
			min.Y = math.Min(min.Y, pt.Y)
			max.X = math.Max(max.X, pt.X)
			max.Y = math.Max(max.Y, pt.Y)
		}
	}
	if first {
		return v2.Vec{}, 0, 0
	}
	return v2.Vec{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}, max.X - min.X, max.Y - min.Y
}
