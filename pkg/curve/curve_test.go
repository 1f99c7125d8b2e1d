package curve

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestArcPointsQuarterTurn(t *testing.T) {
	pts := ArcPoints(v2.Vec{}, 10, 0, math.Pi/2, 4)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	if d := math.Hypot(pts[0].X-10, pts[0].Y); d > 1e-9 {
		t.Errorf("start point = %v, want (10, 0)", pts[0])
	}
	last := pts[len(pts)-1]
	if d := math.Hypot(last.X, last.Y-10); d > 1e-9 {
		t.Errorf("end point = %v, want (0, 10)", last)
	}
	for i, p := range pts {
		if r := math.Hypot(p.X, p.Y); math.Abs(r-10) > 1e-9 {
			t.Errorf("point %d off the arc: radius %v", i, r)
		}
	}
}

func TestArcPointsNegativeSpanNormalized(t *testing.T) {
	// End angle numerically below the start angle: the sweep must go the
	// long way around in the increasing-angle direction, not backwards.
	pts := ArcPoints(v2.Vec{}, 1, math.Pi/2, 0, 8)
	if len(pts) != 9 {
		t.Fatalf("expected 9 points, got %d", len(pts))
	}
	// Three quarters of a turn; check the halfway sample.
	mid := pts[4]
	wantA := math.Pi/2 + 0.5*(3*math.Pi/2)
	want := v2.Vec{X: math.Cos(wantA), Y: math.Sin(wantA)}
	if math.Hypot(mid.X-want.X, mid.Y-want.Y) > 1e-9 {
		t.Errorf("midpoint = %v, want %v", mid, want)
	}
	last := pts[len(pts)-1]
	if math.Hypot(last.X-1, last.Y) > 1e-9 {
		t.Errorf("end point = %v, want (1, 0)", last)
	}
}

func TestCirclePointsUsesDoubleSegments(t *testing.T) {
	pts := CirclePoints(v2.Vec{X: 2, Y: 3}, 5, 16)
	if len(pts) != 33 {
		t.Fatalf("expected 33 points (2*16 segments closed), got %d", len(pts))
	}
	first, last := pts[0], pts[len(pts)-1]
	if math.Hypot(first.X-last.X, first.Y-last.Y) > 1e-9 {
		t.Errorf("circle run should close: first %v, last %v", first, last)
	}
}

func TestEllipsePointsNotClosed(t *testing.T) {
	pts := EllipsePoints(v2.Vec{}, 4, 2, 0, 12)
	if len(pts) != 12 {
		t.Fatalf("expected 12 points, got %d", len(pts))
	}
	first, last := pts[0], pts[len(pts)-1]
	if math.Hypot(first.X-last.X, first.Y-last.Y) < 1e-9 {
		t.Error("ellipse run must not repeat its first point")
	}
}

func TestEllipsePointsRotation(t *testing.T) {
	pts := EllipsePoints(v2.Vec{}, 4, 2, math.Pi/2, 8)
	// Rotated a quarter turn, the major axis lies along Y.
	if math.Abs(pts[0].X) > 1e-9 || math.Abs(pts[0].Y-4) > 1e-9 {
		t.Errorf("first point = %v, want (0, 4)", pts[0])
	}
}

type lineEvaluator struct {
	valid bool
}

func (e lineEvaluator) ParameterExtents() (float64, float64, bool) {
	return 0, 1, e.valid
}

func (e lineEvaluator) PointAt(t float64) (v2.Vec, bool) {
	return v2.Vec{X: t, Y: 2 * t}, true
}

func TestSplinePoints(t *testing.T) {
	pts := SplinePoints(lineEvaluator{valid: true}, 4)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	if math.Abs(pts[2].X-0.5) > 1e-9 || math.Abs(pts[2].Y-1) > 1e-9 {
		t.Errorf("midpoint = %v, want (0.5, 1)", pts[2])
	}
}

func TestSplinePointsDegenerate(t *testing.T) {
	if pts := SplinePoints(lineEvaluator{valid: false}, 4); pts != nil {
		t.Errorf("degenerate spline should yield nil, got %v", pts)
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []v2.Vec
		tol  float64
		want int
	}{
		{"Empty", nil, 0.001, 0},
		{"NoDuplicates", []v2.Vec{{X: 0}, {X: 1}, {X: 2}}, 0.001, 3},
		{"ExactDuplicate", []v2.Vec{{X: 0}, {X: 0}, {X: 1}}, 0.001, 2},
		{"WithinTolerance", []v2.Vec{{X: 0}, {X: 0.0005}, {X: 1}}, 0.001, 2},
		{"JustOutside", []v2.Vec{{X: 0}, {X: 0.0015}, {X: 1}}, 0.001, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.in, tt.tol)
			if len(got) != tt.want {
				t.Errorf("Dedupe kept %d points, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDedupeCollapsesCurveSeams(t *testing.T) {
	// Two concatenated runs sharing a join point, as loop assembly
	// produces them.
	runA := []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}}
	runB := []v2.Vec{{X: 1, Y: 0.0001}, {X: 1, Y: 1}}
	joined := append(append([]v2.Vec{}, runA...), runB...)

	got := Dedupe(joined, DedupeTolerance)
	if len(got) != 3 {
		t.Fatalf("seam not collapsed: got %d points, want 3", len(got))
	}
}
