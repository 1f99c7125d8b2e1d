package model

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FeatureKind enumerates the timeline feature types the exporter knows.
type FeatureKind int

const (
	FeatureExtrude FeatureKind = iota
	FeatureRevolve
	FeatureHole
	FeatureFillet
	FeatureChamfer
	FeatureSketch
	FeatureOther
)

func (k FeatureKind) String() string {
	switch k {
	case FeatureExtrude:
		return "extrude"
	case FeatureRevolve:
		return "revolve"
	case FeatureHole:
		return "hole"
	case FeatureFillet:
		return "fillet"
	case FeatureChamfer:
		return "chamfer"
	case FeatureSketch:
		return "sketch"
	default:
		return "other"
	}
}

// HostType returns the host API class name for the feature kind, used in
// the debug record.
func (k FeatureKind) HostType() string {
	switch k {
	case FeatureExtrude:
		return "ExtrudeFeature"
	case FeatureRevolve:
		return "RevolveFeature"
	case FeatureHole:
		return "HoleFeature"
	case FeatureFillet:
		return "FilletFeature"
	case FeatureChamfer:
		return "ChamferFeature"
	case FeatureSketch:
		return "Sketch"
	default:
		return "Feature"
	}
}

// Operation is the host's boolean operation enum for a feature.
type Operation int

const (
	OpJoin Operation = iota
	OpCut
	OpIntersect
	OpNewBody
	OpNewComponent
)

// String returns the host API name for the operation, used in the debug
// record.
func (o Operation) String() string {
	switch o {
	case OpJoin:
		return "JoinFeatureOperation"
	case OpCut:
		return "CutFeatureOperation"
	case OpIntersect:
		return "IntersectFeatureOperation"
	case OpNewBody:
		return "NewBodyFeatureOperation"
	case OpNewComponent:
		return "NewComponentFeatureOperation"
	default:
		return "UnknownFeatureOperation"
	}
}

// ExtentKind distinguishes how far an extrusion or hole reaches.
type ExtentKind int

const (
	ExtentDistance ExtentKind = iota
	ExtentThroughAll
	ExtentToEntity
)

func (k ExtentKind) String() string {
	switch k {
	case ExtentDistance:
		return "distance"
	case ExtentThroughAll:
		return "through_all"
	case ExtentToEntity:
		return "to_entity"
	default:
		return "unknown"
	}
}

// Extent describes an extrusion/hole extent. Distance is host centimeters
// and only meaningful for ExtentDistance. Expression is the host-side
// formula the distance was entered as, when the snapshot carries one.
type Extent struct {
	Kind       ExtentKind `json:"kind"`
	Distance   float64    `json:"distance,omitempty"`
	Expression string     `json:"expression,omitempty"`
}

// EdgeSetKind distinguishes fillet/chamfer edge set flavors. Only the
// constant-radius and equal-distance flavors carry a single scalar the
// exporter can use.
type EdgeSetKind int

const (
	EdgeSetConstantRadius EdgeSetKind = iota
	EdgeSetVariableRadius
	EdgeSetEqualDistance
	EdgeSetTwoDistance
)

func (k EdgeSetKind) String() string {
	switch k {
	case EdgeSetConstantRadius:
		return "ConstantRadiusFilletEdgeSet"
	case EdgeSetVariableRadius:
		return "VariableRadiusFilletEdgeSet"
	case EdgeSetEqualDistance:
		return "EqualDistanceChamferEdgeSet"
	case EdgeSetTwoDistance:
		return "TwoDistancesChamferEdgeSet"
	default:
		return "EdgeSet"
	}
}

// Edge is one edge selected by a fillet/chamfer edge set.
type Edge struct {
	BodyName string `json:"body_name"`
	EdgeType string `json:"edge_type,omitempty"` // e.g. "top", "bottom", "side"
}

// EdgeSet is one group of edges filleted or chamfered together. Value is
// the radius (fillet) or distance (chamfer) in host centimeters.
type EdgeSet struct {
	Kind  EdgeSetKind `json:"kind"`
	Value float64     `json:"value"`
	Edges []Edge      `json:"edges,omitempty"`
}

// Feature is the closed union of timeline feature payloads.
type Feature interface {
	feature() // marker method restricting implementations to this package
	Kind() FeatureKind
}

// ExtrudeFeature extrudes sketch profiles along the sketch normal.
type ExtrudeFeature struct {
	Operation       Operation  `json:"operation"`
	Profiles        []*Profile `json:"profiles"`
	ExtentOne       *Extent    `json:"extent_one,omitempty"`
	ExtentTwo       *Extent    `json:"extent_two,omitempty"` // presence marks a two-sided extrusion
	TaperAngle      float64    `json:"taper_angle,omitempty"` // radians
	Bodies          []string   `json:"bodies,omitempty"`      // names of bodies produced or joined
	StartFaceNormal *v3.Vec    `json:"start_face_normal,omitempty"`
	EndFaceNormal   *v3.Vec    `json:"end_face_normal,omitempty"`
}

func (ExtrudeFeature) feature()          {}
func (ExtrudeFeature) Kind() FeatureKind { return FeatureExtrude }

// RevolveFeature sweeps sketch profiles around an axis. Angle is radians;
// absent means a full turn.
type RevolveFeature struct {
	Operation Operation  `json:"operation"`
	Profiles  []*Profile `json:"profiles"`
	Angle     *float64   `json:"angle,omitempty"`
	Bodies    []string   `json:"bodies,omitempty"`
}

func (RevolveFeature) feature()          {}
func (RevolveFeature) Kind() FeatureKind { return FeatureRevolve }

// HoleKind enumerates hole flavors.
type HoleKind int

const (
	HoleSimple HoleKind = iota
	HoleCounterbore
	HoleCountersink
)

func (k HoleKind) String() string {
	switch k {
	case HoleSimple:
		return "SimpleHole"
	case HoleCounterbore:
		return "CounterboreHole"
	case HoleCountersink:
		return "CountersinkHole"
	default:
		return "UnknownHole"
	}
}

// HoleFeature drills a cylindrical hole. Diameter is host centimeters;
// DiameterExpression is its host-side formula when the snapshot carries
// one.
type HoleFeature struct {
	HoleType           HoleKind `json:"hole_type"`
	Diameter           float64  `json:"diameter"`
	DiameterExpression string   `json:"diameter_expression,omitempty"`
	Extent             *Extent  `json:"extent,omitempty"`
	Position           *v3.Vec  `json:"position,omitempty"`
	Faces              []Face   `json:"faces,omitempty"`
}

func (HoleFeature) feature()          {}
func (HoleFeature) Kind() FeatureKind { return FeatureHole }

// FilletFeature rounds edges. Faces are the faces the fillet created or
// modified; their owning bodies are the bodies the fillet touches.
type FilletFeature struct {
	EdgeSets []EdgeSet `json:"edge_sets"`
	Faces    []Face    `json:"faces,omitempty"`
}

func (FilletFeature) feature()          {}
func (FilletFeature) Kind() FeatureKind { return FeatureFillet }

// ChamferFeature bevels edges.
type ChamferFeature struct {
	EdgeSets []EdgeSet `json:"edge_sets"`
	Faces    []Face    `json:"faces,omitempty"`
}

func (ChamferFeature) feature()          {}
func (ChamferFeature) Kind() FeatureKind { return FeatureChamfer }

// SketchFeature is a bare sketch timeline entry. Sketches generate no
// geometry of their own; profiles are consumed via the features that
// reference them.
type SketchFeature struct {
	Name       string     `json:"name,omitempty"`
	Profiles   []*Profile `json:"profiles,omitempty"`
	CurveCount int        `json:"curve_count,omitempty"`
}

func (SketchFeature) feature()          {}
func (SketchFeature) Kind() FeatureKind { return FeatureSketch }

// OtherFeature is any timeline entry the exporter does not translate.
// HostType preserves the host class name for diagnostics.
type OtherFeature struct {
	HostType string `json:"host_type,omitempty"`
}

func (OtherFeature) feature()          {}
func (OtherFeature) Kind() FeatureKind { return FeatureOther }

// TimelineEntry is one entry in the design timeline. Feature is nil when
// the host entry had no usable source entity; such entries are skipped.
type TimelineEntry struct {
	Name    string
	Feature Feature
}
