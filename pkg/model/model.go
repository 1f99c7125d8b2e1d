package model

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Design is a complete snapshot of a parametric design: the root component
// name, the user parameters, the ordered feature timeline, and the solid
// bodies present after the last feature. A Design is never mutated by the
// exporter; each export run reads one snapshot to completion.
type Design struct {
	Name       string          `json:"name"`
	Parameters []Parameter     `json:"parameters"`
	Timeline   []TimelineEntry `json:"timeline"`
	Bodies     []Body          `json:"bodies,omitempty"`
}

// Parameter is one user-defined parameter as the host stores it. Value is
// in host centimeters for length parameters; Expression is the host's
// textual formula. Value may be absent when the host snapshot carries only
// the expression.
type Parameter struct {
	Name       string   `json:"name"`
	Value      *float64 `json:"value,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Expression string   `json:"expression,omitempty"`
	Comment    string   `json:"comment,omitempty"`
}

// Body is a solid body tracked by the host, identified by its user-visible
// name. Bounding box coordinates are host centimeters.
type Body struct {
	Name        string `json:"name"`
	BoundingBox Box3   `json:"bounding_box"`
}

// Box3 is an axis-aligned 3D bounding box.
type Box3 struct {
	Min v3.Vec `json:"min"`
	Max v3.Vec `json:"max"`
}

// Face is one B-rep face, carrying the name of its owning body and, for
// cylindrical faces, the underlying surface geometry. The exporter uses
// faces to recover hole axes and to resolve which bodies a fillet or
// chamfer physically touches.
type Face struct {
	BodyName string           `json:"body_name"`
	Cylinder *CylinderSurface `json:"cylinder,omitempty"`
}

// CylinderSurface is the geometry of a cylindrical face.
type CylinderSurface struct {
	Origin v3.Vec  `json:"origin"`
	Axis   v3.Vec  `json:"axis"`
	Radius float64 `json:"radius"`
}

// Frame is a coordinate frame: an origin and three orthonormal axes.
// The third axis is the frame's normal.
type Frame struct {
	Origin v3.Vec `json:"origin"`
	XAxis  v3.Vec `json:"x_axis"`
	YAxis  v3.Vec `json:"y_axis"`
	ZAxis  v3.Vec `json:"z_axis"`
}
