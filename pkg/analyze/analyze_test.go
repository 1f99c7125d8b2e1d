package analyze_test

import (
	"errors"
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ahzs645/Fusion2SCAD/pkg/analyze"
	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/orient"
	"github.com/ahzs645/Fusion2SCAD/pkg/profile"
)

func circleProfile(radiusCM float64) *model.Profile {
	return &model.Profile{
		Loops: []*model.Loop{{
			IsOuter: true,
			Curves:  []model.Curve{model.CircleCurve{Center: v2.Vec{}, Radius: radiusCM}},
		}},
	}
}

func distanceExtent(cm float64) *model.Extent {
	return &model.Extent{Kind: model.ExtentDistance, Distance: cm}
}

func TestExtrudeBasics(t *testing.T) {
	cfg := analyze.DefaultConfig()
	f := model.ExtrudeFeature{
		Operation: model.OpNewBody,
		Profiles:  []*model.Profile{circleProfile(0.5)},
		ExtentOne: distanceExtent(2),
		Bodies:    []string{"Body1"},
	}
	f.ExtentOne.Expression = "depth"

	d, warns, err := cfg.Extrude(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if d.Operation != analyze.OpNew {
		t.Errorf("operation = %v, want new", d.Operation)
	}
	if math.Abs(d.Height-20) > 1e-9 {
		t.Errorf("height = %v mm, want 20", d.Height)
	}
	if d.HeightExpression != "depth" {
		t.Errorf("height expression = %q, want %q", d.HeightExpression, "depth")
	}
	if d.Symmetric {
		t.Error("one-sided extrusion reported symmetric")
	}
	if d.Plane != orient.PlaneXY {
		t.Errorf("plane = %v, want XY default", d.Plane)
	}
	if len(d.Shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(d.Shapes))
	}
	if _, ok := d.Shapes[0].(profile.Circle); !ok {
		t.Errorf("shape = %T, want Circle", d.Shapes[0])
	}
}

func TestExtrudeMissingExtentDegrades(t *testing.T) {
	cfg := analyze.DefaultConfig()
	d, warns, err := cfg.Extrude(model.ExtrudeFeature{
		Profiles: []*model.Profile{circleProfile(1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Height != analyze.DefaultExtrudeHeight {
		t.Errorf("height = %v, want default %v", d.Height, analyze.DefaultExtrudeHeight)
	}
	if len(warns) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warns))
	}
	if warns[0].Kind != analyze.GeometryExtraction {
		t.Errorf("warning kind = %v, want geometry-extraction", warns[0].Kind)
	}
}

func TestExtrudeTwoSidedIsSymmetric(t *testing.T) {
	cfg := analyze.DefaultConfig()
	d, _, err := cfg.Extrude(model.ExtrudeFeature{
		Profiles:  []*model.Profile{circleProfile(1)},
		ExtentOne: distanceExtent(1),
		ExtentTwo: distanceExtent(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Symmetric {
		t.Error("two-sided extrusion not reported symmetric")
	}
}

func TestExtrudeNoProfilesIsError(t *testing.T) {
	cfg := analyze.DefaultConfig()
	if _, _, err := cfg.Extrude(model.ExtrudeFeature{}); err == nil {
		t.Fatal("expected an error for an extrude without profiles")
	}
}

func TestExtrudeCustomPlaneFromFrame(t *testing.T) {
	cfg := analyze.DefaultConfig()
	frame := &model.Frame{
		XAxis: v3.Vec{X: 1},
		YAxis: v3.Vec{Y: 0.707, Z: 0.707},
		ZAxis: v3.Vec{Y: -0.707, Z: 0.707},
	}
	d, _, err := cfg.Extrude(model.ExtrudeFeature{
		Profiles: []*model.Profile{{
			Loops:  circleProfile(1).Loops,
			Sketch: &model.SketchInfo{Origin: v3.Vec{X: 1}, Frame: frame},
		}},
		ExtentOne: distanceExtent(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Plane != orient.PlaneCustom {
		t.Errorf("plane = %v, want CUSTOM", d.Plane)
	}
	if d.Frame != frame {
		t.Error("frame not carried into the descriptor")
	}
	if math.Abs(d.PlaneOrigin.X-10) > 1e-9 {
		t.Errorf("plane origin X = %v mm, want 10", d.PlaneOrigin.X)
	}
}

func TestRevolveDefaultsToFullTurn(t *testing.T) {
	cfg := analyze.DefaultConfig()
	d, _, err := cfg.Revolve(model.RevolveFeature{
		Profiles: []*model.Profile{circleProfile(1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Angle != analyze.FullTurn {
		t.Errorf("angle = %v, want %v", d.Angle, analyze.FullTurn)
	}
}

func TestRevolveAngleConverted(t *testing.T) {
	cfg := analyze.DefaultConfig()
	rad := math.Pi / 2
	d, _, err := cfg.Revolve(model.RevolveFeature{
		Profiles: []*model.Profile{circleProfile(1)},
		Angle:    &rad,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d.Angle-90) > 1e-9 {
		t.Errorf("angle = %v deg, want 90", d.Angle)
	}
}

func TestHoleExtents(t *testing.T) {
	cfg := analyze.DefaultConfig()
	pos := v3.Vec{X: 1, Y: 2, Z: 0.3}

	tests := []struct {
		name      string
		extent    *model.Extent
		wantDepth float64
		wantWarn  bool
	}{
		{"Distance", distanceExtent(1.5), 15, false},
		{"ThroughAll", &model.Extent{Kind: model.ExtentThroughAll}, analyze.ThroughAllDepth, false},
		{"Missing", nil, analyze.DefaultHoleDepth, true},
		{"ToEntity", &model.Extent{Kind: model.ExtentToEntity}, analyze.DefaultHoleDepth, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, warns, err := cfg.Hole(model.HoleFeature{
				Diameter: 0.6,
				Extent:   tt.extent,
				Position: &pos,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(d.Depth-tt.wantDepth) > 1e-9 {
				t.Errorf("depth = %v, want %v", d.Depth, tt.wantDepth)
			}
			if math.Abs(d.Diameter-6) > 1e-9 {
				t.Errorf("diameter = %v mm, want 6", d.Diameter)
			}
			if (len(warns) > 0) != tt.wantWarn {
				t.Errorf("warnings = %v, wantWarn = %v", warns, tt.wantWarn)
			}
			if d.Position == nil || math.Abs(d.Position.Z-3) > 1e-9 {
				t.Errorf("position = %v, want Z 3 mm", d.Position)
			}
		})
	}
}

func TestHoleTiltedAxisGetsMatrix(t *testing.T) {
	cfg := analyze.DefaultConfig()
	d, _, err := cfg.Hole(model.HoleFeature{
		Diameter: 0.5,
		Extent:   distanceExtent(1),
		Faces: []model.Face{{
			BodyName: "Body1",
			Cylinder: &model.CylinderSurface{
				Origin: v3.Vec{X: 1},
				Axis:   v3.Vec{X: 1, Z: 1},
				Radius: 0.25,
			},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Matrix == nil {
		t.Fatal("tilted hole axis should yield an alignment matrix")
	}
	if d.Position == nil || math.Abs(d.Position.X-10) > 1e-9 {
		t.Errorf("position should fall back to the cylinder origin, got %v", d.Position)
	}
}

func TestHoleVerticalAxisNoMatrix(t *testing.T) {
	cfg := analyze.DefaultConfig()
	d, _, err := cfg.Hole(model.HoleFeature{
		Diameter: 0.5,
		Extent:   distanceExtent(1),
		Faces: []model.Face{{
			Cylinder: &model.CylinderSurface{Axis: v3.Vec{Z: -1}, Radius: 0.25},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Matrix != nil {
		t.Error("vertical hole should not get an alignment matrix")
	}
}

func TestFilletFirstEdgeSetOnly(t *testing.T) {
	cfg := analyze.DefaultConfig()
	f := model.FilletFeature{
		EdgeSets: []model.EdgeSet{
			{Kind: model.EdgeSetConstantRadius, Value: 0.2, Edges: []model.Edge{{BodyName: "Body1", EdgeType: "top"}}},
			{Kind: model.EdgeSetConstantRadius, Value: 0.9},
		},
		Faces: []model.Face{{BodyName: "Body1"}, {BodyName: "Body2"}},
	}

	d, warns, err := cfg.Fillet(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d.Radius-2) > 1e-9 {
		t.Errorf("radius = %v mm, want 2 (first set only)", d.Radius)
	}
	if len(warns) != 1 || warns[0].Kind != analyze.UnsupportedConfig {
		t.Fatalf("expected one unsupported-config warning for the extra edge set, got %v", warns)
	}
	// Bodies come from the modified faces, not the edge inputs.
	if len(d.Bodies) != 2 || d.Bodies[0] != "Body1" || d.Bodies[1] != "Body2" {
		t.Errorf("bodies = %v, want [Body1 Body2]", d.Bodies)
	}
}

func TestFilletWrongEdgeSetKind(t *testing.T) {
	cfg := analyze.DefaultConfig()
	_, _, err := cfg.Fillet(model.FilletFeature{
		EdgeSets: []model.EdgeSet{{Kind: model.EdgeSetVariableRadius, Value: 0.2}},
	})
	if err == nil {
		t.Fatal("variable-radius edge set should not analyze")
	}
	var rec *analyze.RecoverableError
	if !errors.As(err, &rec) || rec.Kind != analyze.UnsupportedConfig {
		t.Fatalf("expected unsupported-config recoverable error, got %v", err)
	}
}

func TestChamferBodiesFromEdgesWhenNoFaces(t *testing.T) {
	cfg := analyze.DefaultConfig()
	d, warns, err := cfg.Chamfer(model.ChamferFeature{
		EdgeSets: []model.EdgeSet{{
			Kind:  model.EdgeSetEqualDistance,
			Value: 0.1,
			Edges: []model.Edge{{BodyName: "Body1", EdgeType: "bottom"}},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d.Distance-1) > 1e-9 {
		t.Errorf("distance = %v mm, want 1", d.Distance)
	}
	if len(d.Bodies) != 1 || d.Bodies[0] != "Body1" {
		t.Errorf("bodies = %v, want [Body1] from edge inputs", d.Bodies)
	}
	if len(warns) == 0 {
		t.Error("expected a warning about the edge-input fallback")
	}
	if len(d.EdgeTypes) != 1 || d.EdgeTypes[0] != "bottom" {
		t.Errorf("edge types = %v, want [bottom]", d.EdgeTypes)
	}
}

func TestMapOperationDefaultsToUnion(t *testing.T) {
	if got := analyze.MapOperation(model.Operation(42)); got != analyze.OpUnion {
		t.Errorf("unknown operation mapped to %v, want union", got)
	}
	if got := analyze.MapOperation(model.OpCut); got != analyze.OpDifference {
		t.Errorf("cut mapped to %v, want difference", got)
	}
}
