// Package curve approximates 2D boundary curves as ordered point runs.
// Arcs, circles, and ellipses are sampled analytically; splines are
// sampled through a parametric evaluator. All coordinates are target
// millimeters.
package curve

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultSegments is the segment count used for a single arc. Circles
// and ellipses use twice this.
const DefaultSegments = 16

// DedupeTolerance is the distance below which two consecutive points are
// considered coincident.
const DedupeTolerance = 0.001

// Evaluator is a parametric curve that can be sampled at a parameter
// value. model.SplineCurve satisfies it.
type Evaluator interface {
	// ParameterExtents reports the valid parameter range. ok is false for
	// degenerate curves.
	ParameterExtents() (start, end float64, ok bool)
	// PointAt evaluates the curve at parameter t.
	PointAt(t float64) (v2.Vec, bool)
}

// ArcPoints samples an arc from its start angle to its end angle with the
// given segment count, producing segments+1 points. A numerically negative
// span (end < start) is normalized by a full turn, so arcs are always
// swept in the increasing-angle direction.
func ArcPoints(center v2.Vec, radius, startAngle, endAngle float64, segments int) []v2.Vec {
	if segments < 1 {
		segments = 1
	}
	span := endAngle - startAngle
	if span < 0 {
		span += 2 * math.Pi
	}

	points := make([]v2.Vec, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		a := startAngle + t*span
		points = append(points, v2.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return points
}

// CirclePoints samples a full circle as an arc swept one whole turn,
// using twice the given segment count.
func CirclePoints(center v2.Vec, radius float64, segments int) []v2.Vec {
	return ArcPoints(center, radius, 0, 2*math.Pi, segments*2)
}

// EllipsePoints samples a full ellipse, optionally rotated, with the
// given segment count. Unlike ArcPoints the run is not closed: the first
// point is not repeated at the end.
func EllipsePoints(center v2.Vec, majorRadius, minorRadius, rotation float64, segments int) []v2.Vec {
	if segments < 3 {
		segments = 3
	}
	cosR := math.Cos(rotation)
	sinR := math.Sin(rotation)

	points := make([]v2.Vec, 0, segments)
	for i := 0; i < segments; i++ {
		t := 2 * math.Pi * float64(i) / float64(segments)
		px := majorRadius * math.Cos(t)
		py := minorRadius * math.Sin(t)
		points = append(points, v2.Vec{
			X: center.X + px*cosR - py*sinR,
			Y: center.Y + px*sinR + py*cosR,
		})
	}
	return points
}

// SplinePoints samples a parametric curve from its start to its end
// parameter, producing up to segments+1 points. An invalid parameter
// range or failed evaluation yields the points gathered so far.
func SplinePoints(e Evaluator, segments int) []v2.Vec {
	if segments < 1 {
		segments = 1
	}
	start, end, ok := e.ParameterExtents()
	if !ok {
		return nil
	}
	span := end - start

	points := make([]v2.Vec, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := start + span*float64(i)/float64(segments)
		p, ok := e.PointAt(t)
		if !ok {
			return points
		}
		points = append(points, p)
	}
	return points
}

// Dedupe collapses consecutive points closer than tol. It must run once
// per assembled loop, after per-curve runs are concatenated, so that the
// join point between two curves is deduplicated as well.
func Dedupe(points []v2.Vec, tol float64) []v2.Vec {
	if len(points) == 0 {
		return points
	}
	cleaned := make([]v2.Vec, 0, len(points))
	cleaned = append(cleaned, points[0])
	for _, p := range points[1:] {
		last := cleaned[len(cleaned)-1]
		if math.Hypot(p.X-last.X, p.Y-last.Y) > tol {
			cleaned = append(cleaned, p)
		}
	}
	return cleaned
}
