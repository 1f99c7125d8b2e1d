// Package profile classifies closed sketch profiles into canonical shape
// descriptors. Classification is total: every profile maps to exactly one
// shape, with Polygon as the universal fallback, and it never fails the
// surrounding compilation.
package profile

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ShapeKind identifies the classified shape variant.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
	ShapeRoundedRect
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rectangle"
	case ShapeRoundedRect:
		return "rounded_rect"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is the closed union of classified shape descriptors. All
// dimensions are millimeters.
type Shape interface {
	shape() // marker method restricting implementations to this package
	Kind() ShapeKind
}

// Circle is a single full-circle loop.
type Circle struct {
	Center v2.Vec
	Radius float64
}

func (Circle) shape()          {}
func (Circle) Kind() ShapeKind { return ShapeCircle }

// Rect is an axis-aligned rectangle, dimensions and center taken from the
// loop's bounding box.
type Rect struct {
	Center v2.Vec
	Width  float64
	Height float64
}

func (Rect) shape()          {}
func (Rect) Kind() ShapeKind { return ShapeRect }

// RoundedRect is a rectangle with four uniformly rounded corners.
type RoundedRect struct {
	Center   v2.Vec
	Width    float64
	Height   float64
	Rounding float64
}

func (RoundedRect) shape()          {}
func (RoundedRect) Kind() ShapeKind { return ShapeRoundedRect }

// Polygon is the fallback descriptor: an approximated outer boundary plus
// zero or more hole boundaries.
type Polygon struct {
	Outer []v2.Vec
	Holes [][]v2.Vec
}

func (Polygon) shape()          {}
func (Polygon) Kind() ShapeKind { return ShapePolygon }
