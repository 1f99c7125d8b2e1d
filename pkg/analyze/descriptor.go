package analyze

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/orient"
	"github.com/ahzs645/Fusion2SCAD/pkg/profile"
)

// OperationKind is the boolean role a generated solid plays in the
// output script.
type OperationKind int

const (
	OpNew OperationKind = iota
	OpUnion
	OpDifference
	OpIntersection
)

func (o OperationKind) String() string {
	switch o {
	case OpNew:
		return "new"
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	default:
		return "union"
	}
}

// MapOperation converts a host operation enum to its script role. Any
// unrecognized operation defaults to union.
func MapOperation(op model.Operation) OperationKind {
	switch op {
	case model.OpNewBody:
		return OpNew
	case model.OpJoin:
		return OpUnion
	case model.OpCut:
		return OpDifference
	case model.OpIntersect:
		return OpIntersection
	default:
		return OpUnion
	}
}

// Descriptor is the closed union of analyzed, geometry-free feature
// descriptions. Descriptors are immutable once produced; all scalar
// fields are millimeters and degrees.
type Descriptor interface {
	descriptor() // marker method restricting implementations to this package
	FeatureKind() model.FeatureKind
}

// Extrude describes an analyzed extrusion. HeightExpression is the
// host-side formula behind the height, kept so emission can reference
// the parameter driving it instead of a literal.
type Extrude struct {
	Operation        OperationKind
	Height           float64
	HeightExpression string
	Symmetric        bool
	TaperAngle       float64 // degrees
	Plane            orient.Plane
	PlaneOrigin      v3.Vec
	PlaneNormal      v3.Vec
	Frame            *model.Frame
	Shapes           []profile.Shape
	Bodies           []string // host names of bodies this extrusion produces or joins
}

func (*Extrude) descriptor()                    {}
func (*Extrude) FeatureKind() model.FeatureKind { return model.FeatureExtrude }

// Revolve describes an analyzed revolution.
type Revolve struct {
	Operation OperationKind
	Angle     float64 // degrees
	Shapes    []profile.Shape
	Bodies    []string
}

func (*Revolve) descriptor()                    {}
func (*Revolve) FeatureKind() model.FeatureKind { return model.FeatureRevolve }

// Hole describes an analyzed hole.
type Hole struct {
	Diameter           float64
	DiameterExpression string // host-side formula behind the diameter
	Depth              float64
	Position           *v3.Vec         // millimeters; nil when no placement was found
	Matrix             *orient.Matrix4 // axis alignment for non-vertical holes
}

func (*Hole) descriptor()                    {}
func (*Hole) FeatureKind() model.FeatureKind { return model.FeatureHole }

// Fillet describes an analyzed fillet: the uniform radius of its first
// edge set and the bodies it physically touches.
type Fillet struct {
	Radius    float64
	Bodies    []string
	EdgeTypes []string
}

func (*Fillet) descriptor()                    {}
func (*Fillet) FeatureKind() model.FeatureKind { return model.FeatureFillet }

// Chamfer describes an analyzed chamfer.
type Chamfer struct {
	Distance  float64
	Bodies    []string
	EdgeTypes []string
}

func (*Chamfer) descriptor()                    {}
func (*Chamfer) FeatureKind() model.FeatureKind { return model.FeatureChamfer }
