package export

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/units"
)

// DebugRecord mirrors every resolved attribute of the snapshot for
// diagnostic consumption. It is pure data; field names are part of the
// diagnostic format and must not change.
type DebugRecord struct {
	DesignName string                `json:"design_name"`
	Parameters map[string]DebugParam `json:"parameters"`
	Features   []DebugFeature        `json:"features"`
	Bodies     []DebugBody           `json:"bodies"`
	Sketches   []DebugSketch         `json:"sketches"`
}

// DebugParam is one parameter, in both host units and millimeters.
type DebugParam struct {
	Value      float64 `json:"value"`
	ValueMM    float64 `json:"value_mm"`
	Unit       string  `json:"unit"`
	Expression string  `json:"expression"`
	Comment    string  `json:"comment"`
}

// DebugFeature is one timeline entry with kind-specific details.
type DebugFeature struct {
	Index   int            `json:"index"`
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Details map[string]any `json:"details"`
	Error   string         `json:"error,omitempty"`
}

// DebugBody is one solid body with its bounding box in millimeters.
type DebugBody struct {
	Name    string   `json:"name"`
	BBoxMin DebugVec `json:"bbox_min"`
	BBoxMax DebugVec `json:"bbox_max"`
}

// DebugSketch is reserved for standalone sketch dumps.
type DebugSketch struct {
	Name string `json:"name"`
}

// DebugVec is a named-field 3D vector.
type DebugVec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func debugVec(v v3.Vec) DebugVec {
	return DebugVec{X: v.X, Y: v.Y, Z: v.Z}
}

func debugVecMM(v v3.Vec) DebugVec {
	return DebugVec{X: units.ToMM(v.X), Y: units.ToMM(v.Y), Z: units.ToMM(v.Z)}
}

// buildDebugRecord assembles the debug structure straight from the
// snapshot, independently of how compilation fared.
func buildDebugRecord(d *model.Design) *DebugRecord {
	rec := &DebugRecord{
		DesignName: d.Name,
		Parameters: make(map[string]DebugParam, len(d.Parameters)),
		Features:   []DebugFeature{},
		Bodies:     []DebugBody{},
		Sketches:   []DebugSketch{},
	}

	for _, p := range d.Parameters {
		var value float64
		if p.Value != nil {
			value = *p.Value
		}
		rec.Parameters[p.Name] = DebugParam{
			Value:      value,
			ValueMM:    units.ToMM(value),
			Unit:       p.Unit,
			Expression: p.Expression,
			Comment:    p.Comment,
		}
	}

	for i, entry := range d.Timeline {
		if entry.Feature == nil {
			continue
		}
		rec.Features = append(rec.Features, debugFeature(i, entry))
	}

	for _, b := range d.Bodies {
		rec.Bodies = append(rec.Bodies, DebugBody{
			Name:    b.Name,
			BBoxMin: debugVecMM(b.BoundingBox.Min),
			BBoxMax: debugVecMM(b.BoundingBox.Max),
		})
	}

	return rec
}

func debugFeature(index int, entry model.TimelineEntry) DebugFeature {
	df := DebugFeature{
		Index:   index,
		Name:    entry.Name,
		Type:    entry.Feature.Kind().HostType(),
		Details: map[string]any{},
	}

	switch f := entry.Feature.(type) {
	case model.ExtrudeFeature:
		extrudeDetails(df.Details, f)
	case model.RevolveFeature:
		revolveDetails(df.Details, f)
	case model.HoleFeature:
		holeDetails(df.Details, f)
	case model.FilletFeature:
		edgeFeatureDetails(df.Details, f.EdgeSets, f.Faces, "radius_mm")
	case model.ChamferFeature:
		edgeFeatureDetails(df.Details, f.EdgeSets, f.Faces, "distance_mm")
	case model.SketchFeature:
		df.Details["profile_count"] = len(f.Profiles)
		df.Details["curve_count"] = f.CurveCount
	case model.OtherFeature:
		if f.HostType != "" {
			df.Type = f.HostType
		}
	}
	return df
}

func extrudeDetails(details map[string]any, f model.ExtrudeFeature) {
	details["operation"] = f.Operation.String()

	if len(f.Profiles) > 0 {
		if p := f.Profiles[0]; p != nil {
			details["profile_curves"] = profileDebug(p)
			if sk := p.Sketch; sk != nil {
				if sk.Name != "" {
					details["sketch_name"] = sk.Name
				}
				details["sketch_origin"] = debugVecMM(sk.Origin)
				if fr := sk.Frame; fr != nil {
					details["transform"] = map[string]any{
						"origin": debugVec(fr.Origin),
						"x_axis": debugVec(fr.XAxis),
						"y_axis": debugVec(fr.YAxis),
						"z_axis": debugVec(fr.ZAxis),
					}
				}
				if sk.ReferencePlane != "" {
					details["reference_plane"] = sk.ReferencePlane
				}
				if sk.PlaneNormal != nil {
					details["plane_normal"] = debugVec(*sk.PlaneNormal)
				}
				if sk.PlaneOrigin != nil {
					details["plane_origin"] = debugVec(*sk.PlaneOrigin)
				}
			}
		}
	}

	if f.ExtentOne != nil && f.ExtentOne.Kind == model.ExtentDistance {
		details["height_cm"] = f.ExtentOne.Distance
		details["height_mm"] = units.ToMM(f.ExtentOne.Distance)
	}
	if f.StartFaceNormal != nil {
		details["start_face_normal"] = debugVec(*f.StartFaceNormal)
	}
	if f.EndFaceNormal != nil {
		details["end_face_normal"] = debugVec(*f.EndFaceNormal)
	}
	if len(f.Bodies) > 0 {
		details["bodies"] = f.Bodies
	}
}

func revolveDetails(details map[string]any, f model.RevolveFeature) {
	details["operation"] = f.Operation.String()
	if f.Angle != nil {
		details["angle_deg"] = units.Degrees(*f.Angle)
	}
	if len(f.Profiles) > 0 && f.Profiles[0] != nil {
		details["profile_curves"] = profileDebug(f.Profiles[0])
	}
	if len(f.Bodies) > 0 {
		details["bodies"] = f.Bodies
	}
}

func holeDetails(details map[string]any, f model.HoleFeature) {
	details["diameter"] = units.ToMM(f.Diameter)
	details["hole_type"] = f.HoleType.String()
	if f.Position != nil {
		details["position"] = debugVecMM(*f.Position)
	}
}

func edgeFeatureDetails(details map[string]any, sets []model.EdgeSet, faces []model.Face, valueKey string) {
	details["edge_set_count"] = len(sets)
	if len(sets) > 0 {
		details["edge_set_type"] = sets[0].Kind.String()
		details[valueKey] = units.ToMM(sets[0].Value)
	}
	details["face_count"] = len(faces)

	seen := map[string]bool{}
	bodies := []string{}
	for _, face := range faces {
		if face.BodyName != "" && !seen[face.BodyName] {
			seen[face.BodyName] = true
			bodies = append(bodies, face.BodyName)
		}
	}
	details["affected_bodies"] = bodies
}

// profileDebug dumps the loop/curve structure of a profile, with curve
// endpoints in millimeters rounded to two decimals.
func profileDebug(p *model.Profile) map[string]any {
	loops := []any{}
	for _, loop := range p.Loops {
		curves := []any{}
		for i, c := range loop.Curves {
			cd := map[string]any{
				"index": i,
				"type":  hostCurveType(c.Kind()),
			}
			if start, end, ok := curveEndpoints(c); ok {
				cd["start"] = map[string]float64{"x": round2(units.ToMM(start[0])), "y": round2(units.ToMM(start[1]))}
				cd["end"] = map[string]float64{"x": round2(units.ToMM(end[0])), "y": round2(units.ToMM(end[1]))}
			}
			curves = append(curves, cd)
		}
		loops = append(loops, map[string]any{
			"is_outer":    loop.IsOuter,
			"curve_count": len(loop.Curves),
			"curves":      curves,
		})
	}
	return map[string]any{
		"loop_count": len(p.Loops),
		"loops":      loops,
	}
}

// hostCurveType maps curve kinds back to the host sketch entity class
// names used in the diagnostic format.
func hostCurveType(k model.CurveKind) string {
	switch k {
	case model.CurveLine:
		return "SketchLine"
	case model.CurveArc:
		return "SketchArc"
	case model.CurveCircle:
		return "SketchCircle"
	case model.CurveEllipse:
		return "SketchEllipse"
	case model.CurveSpline:
		return "SketchFittedSpline"
	default:
		return "SketchEntity"
	}
}

// curveEndpoints reports the start and end points of a curve in host
// units, when the curve has distinct well-defined endpoints.
func curveEndpoints(c model.Curve) (start, end [2]float64, ok bool) {
	switch s := c.(type) {
	case model.LineCurve:
		return [2]float64{s.Start.X, s.Start.Y}, [2]float64{s.End.X, s.End.Y}, true
	case model.ArcCurve:
		sx := s.Center.X + s.Radius*math.Cos(s.StartAngle)
		sy := s.Center.Y + s.Radius*math.Sin(s.StartAngle)
		ex := s.Center.X + s.Radius*math.Cos(s.EndAngle)
		ey := s.Center.Y + s.Radius*math.Sin(s.EndAngle)
		return [2]float64{sx, sy}, [2]float64{ex, ey}, true
	case model.SplineCurve:
		if len(s.FitPoints) >= 2 {
			first := s.FitPoints[0]
			last := s.FitPoints[len(s.FitPoints)-1]
			return [2]float64{first.X, first.Y}, [2]float64{last.X, last.Y}, true
		}
	}
	return start, end, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
