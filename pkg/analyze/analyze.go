// Package analyze reduces raw timeline features and their sketch
// geometry into structured, geometry-free descriptors. Analysis is
// best-effort: lookup failures degrade individual fields to documented
// defaults and are reported as recoverable errors, never aborting the
// surrounding compilation.
package analyze

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/orient"
	"github.com/ahzs645/Fusion2SCAD/pkg/profile"
	"github.com/ahzs645/Fusion2SCAD/pkg/units"
)

// Documented defaults used when a feature's extent cannot be resolved.
// They are heuristics, not geometric truths.
const (
	// DefaultExtrudeHeight stands in for an extrusion whose distance
	// extent is missing or of an unsupported kind.
	DefaultExtrudeHeight = 10.0
	// DefaultHoleDepth stands in for a hole with no extent information.
	DefaultHoleDepth = 50.0
	// ThroughAllDepth is the generous depth used for through-all holes,
	// which have no finite extent to read.
	ThroughAllDepth = 200.0
	// FullTurn is the default revolve sweep.
	FullTurn = 360.0
)

// verticalTolerance decides when a hole axis counts as already vertical,
// needing no alignment matrix.
const verticalTolerance = 0.001

// Config carries the analyzer knobs that vary per run.
type Config struct {
	// ArcSegments is the segment count for approximating one arc.
	ArcSegments int
}

// DefaultConfig returns the analyzer defaults.
func DefaultConfig() Config {
	return Config{ArcSegments: 16}
}

// Extrude analyzes an extrusion feature. The returned warnings record
// fields that degraded to defaults; the error return is reserved for
// features with no usable geometry at all.
func (c Config) Extrude(f model.ExtrudeFeature) (*Extrude, []*RecoverableError, error) {
	if len(f.Profiles) == 0 {
		return nil, nil, extractionErr("extrude has no profiles")
	}

	var warns []*RecoverableError
	d := &Extrude{
		Operation:   MapOperation(f.Operation),
		Height:      DefaultExtrudeHeight,
		Plane:       orient.PlaneXY,
		PlaneNormal: v3.Vec{Z: 1},
		Bodies:      append([]string(nil), f.Bodies...),
	}

	switch {
	case f.ExtentOne == nil:
		warns = append(warns, extractionErr("extrude has no extent, assuming %g mm", DefaultExtrudeHeight))
	case f.ExtentOne.Kind == model.ExtentDistance:
		d.Height = units.ToMM(f.ExtentOne.Distance)
		d.HeightExpression = f.ExtentOne.Expression
	default:
		warns = append(warns, unsupportedErr("extrude extent kind %s, assuming %g mm", f.ExtentOne.Kind, DefaultExtrudeHeight))
	}

	if f.ExtentTwo != nil {
		d.Symmetric = true
	}
	d.TaperAngle = units.Degrees(f.TaperAngle)

	if sk := f.Profiles[0].Sketch; sk != nil {
		d.PlaneOrigin = v3.Vec{
			X: units.ToMM(sk.Origin.X),
			Y: units.ToMM(sk.Origin.Y),
			Z: units.ToMM(sk.Origin.Z),
		}
		if sk.Frame != nil {
			d.Frame = sk.Frame
			d.PlaneNormal = sk.Frame.ZAxis
			d.Plane = orient.PlaneFromFrame(sk.Frame)
		} else if sk.PlaneNormal != nil {
			d.PlaneNormal = *sk.PlaneNormal
			d.Plane = orient.PlaneFromNormal(*sk.PlaneNormal)
		}
	}

	for _, p := range f.Profiles {
		d.Shapes = append(d.Shapes, profile.Classify(p, c.ArcSegments))
	}

	return d, warns, nil
}

// Revolve analyzes a revolve feature. An absent angle extent means a
// full turn.
func (c Config) Revolve(f model.RevolveFeature) (*Revolve, []*RecoverableError, error) {
	if len(f.Profiles) == 0 {
		return nil, nil, extractionErr("revolve has no profiles")
	}

	d := &Revolve{
		Operation: MapOperation(f.Operation),
		Angle:     FullTurn,
		Bodies:    append([]string(nil), f.Bodies...),
	}
	if f.Angle != nil {
		d.Angle = units.Degrees(*f.Angle)
	}
	for _, p := range f.Profiles {
		d.Shapes = append(d.Shapes, profile.Classify(p, c.ArcSegments))
	}
	return d, nil, nil
}

// Hole analyzes a hole feature. Placement falls back to the origin of a
// supporting cylindrical face, and that face's axis yields an alignment
// matrix when the hole is not vertical.
func (c Config) Hole(f model.HoleFeature) (*Hole, []*RecoverableError, error) {
	var warns []*RecoverableError
	d := &Hole{
		Diameter:           units.ToMM(f.Diameter),
		DiameterExpression: f.DiameterExpression,
		Depth:              DefaultHoleDepth,
	}

	switch {
	case f.Extent == nil:
		warns = append(warns, extractionErr("hole has no extent, assuming %g mm", DefaultHoleDepth))
	case f.Extent.Kind == model.ExtentDistance:
		d.Depth = units.ToMM(f.Extent.Distance)
	case f.Extent.Kind == model.ExtentThroughAll:
		d.Depth = ThroughAllDepth
	default:
		warns = append(warns, unsupportedErr("hole extent kind %s, assuming %g mm", f.Extent.Kind, DefaultHoleDepth))
	}

	if f.Position != nil {
		d.Position = mmVec(*f.Position)
	}

	for _, face := range f.Faces {
		cyl := face.Cylinder
		if cyl == nil {
			continue
		}
		if d.Position == nil {
			d.Position = mmVec(cyl.Origin)
		}
		if d.Matrix == nil && !isVertical(cyl.Axis) {
			m := orient.AxisAlign(cyl.Axis)
			d.Matrix = &m
		}
		break
	}

	if d.Position == nil {
		warns = append(warns, extractionErr("hole has no resolvable position"))
	}
	return d, warns, nil
}

// Fillet analyzes a fillet feature: the uniform radius from the first
// edge set, and the bodies the fillet touches, resolved from the faces
// it modified rather than its declared inputs.
func (c Config) Fillet(f model.FilletFeature) (*Fillet, []*RecoverableError, error) {
	value, edgeTypes, bodies, warns, err := analyzeEdgeSets(f.EdgeSets, f.Faces, model.EdgeSetConstantRadius, "fillet")
	if err != nil {
		return nil, warns, err
	}
	return &Fillet{Radius: value, Bodies: bodies, EdgeTypes: edgeTypes}, warns, nil
}

// Chamfer analyzes a chamfer feature: the uniform distance from the
// first edge set plus touched bodies.
func (c Config) Chamfer(f model.ChamferFeature) (*Chamfer, []*RecoverableError, error) {
	value, edgeTypes, bodies, warns, err := analyzeEdgeSets(f.EdgeSets, f.Faces, model.EdgeSetEqualDistance, "chamfer")
	if err != nil {
		return nil, warns, err
	}
	return &Chamfer{Distance: value, Bodies: bodies, EdgeTypes: edgeTypes}, warns, nil
}

// analyzeEdgeSets implements the shared fillet/chamfer contract: only the
// first edge set is read, it must carry a single constant scalar, and
// additional edge sets are flagged rather than silently merged.
func analyzeEdgeSets(sets []model.EdgeSet, faces []model.Face, want model.EdgeSetKind, kind string) (float64, []string, []string, []*RecoverableError, error) {
	if len(sets) == 0 {
		return 0, nil, nil, nil, extractionErr("%s has no edge sets", kind)
	}

	var warns []*RecoverableError
	if len(sets) > 1 {
		warns = append(warns, unsupportedErr("%s has %d edge sets; only the first is exported", kind, len(sets)))
	}

	first := sets[0]
	if first.Kind != want {
		return 0, nil, nil, warns, unsupportedErr("%s edge set kind %s is not supported", kind, first.Kind)
	}
	value := units.ToMM(first.Value)

	typeSet := make(map[string]bool)
	for _, e := range first.Edges {
		if e.EdgeType != "" {
			typeSet[e.EdgeType] = true
		}
	}
	edgeTypes := sortedKeys(typeSet)

	// Prefer the faces the feature actually modified: the feature may be
	// defined against one body but end up touching more after upstream
	// merges.
	bodySet := make(map[string]bool)
	for _, face := range faces {
		if face.BodyName != "" {
			bodySet[face.BodyName] = true
		}
	}
	if len(bodySet) == 0 {
		for _, e := range first.Edges {
			if e.BodyName != "" {
				bodySet[e.BodyName] = true
			}
		}
		if len(bodySet) > 0 {
			warns = append(warns, extractionErr("%s has no modified faces; bodies resolved from edge inputs", kind))
		}
	}
	if len(bodySet) == 0 {
		warns = append(warns, extractionErr("%s touches no resolvable bodies", kind))
	}

	return value, edgeTypes, sortedKeys(bodySet), warns, nil
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mmVec(p v3.Vec) *v3.Vec {
	return &v3.Vec{X: units.ToMM(p.X), Y: units.ToMM(p.Y), Z: units.ToMM(p.Z)}
}

// isVertical reports whether an axis is already aligned with Z.
func isVertical(axis v3.Vec) bool {
	l := axis.Length()
	if l < 1e-9 {
		return true
	}
	return math.Abs(math.Abs(axis.Z)/l-1) < verticalTolerance
}
