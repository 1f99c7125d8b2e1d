package scad

import "github.com/ahzs645/Fusion2SCAD/pkg/analyze"

// unwrappedUnionLimit: a lone union bucket with at most this many
// fragments is emitted unwrapped at top level.
const unwrappedUnionLimit = 3

// Buckets groups emitted fragments by boolean operation, in emission
// order. It is accumulated during compilation and consumed exactly once
// by AssembleTree.
type Buckets struct {
	Union        []Fragment
	Difference   []Fragment
	Intersection []Fragment
}

// Add routes a fragment into the bucket for its operation. New-body and
// union fragments share the union bucket.
func (b *Buckets) Add(op analyze.OperationKind, f Fragment) {
	switch op {
	case analyze.OpDifference:
		b.Difference = append(b.Difference, f)
	case analyze.OpIntersection:
		b.Intersection = append(b.Intersection, f)
	default:
		b.Union = append(b.Union, f)
	}
}

// AssembleTree renders the final boolean tree:
//
//   - non-empty difference bucket: difference() wrapping an inner
//     union() of the union bucket (only if non-empty) followed by the
//     difference fragments;
//   - otherwise a lone union bucket, wrapped in union() only when it
//     holds more than unwrappedUnionLimit fragments;
//   - the intersection bucket is not part of the tree. With
//     foldIntersections the whole tree is wrapped in an intersection()
//     together with those fragments; without it they are preserved as
//     commented-out lines so nothing is dropped silently.
func AssembleTree(b Buckets, foldIntersections bool) []string {
	var lines []string

	switch {
	case len(b.Difference) > 0:
		lines = append(lines, "difference() {")
		if len(b.Union) > 0 {
			lines = append(lines, indent+"union() {")
			for _, f := range b.Union {
				lines = append(lines, indented(indented(f))...)
			}
			lines = append(lines, indent+"}")
		}
		for _, f := range b.Difference {
			lines = append(lines, indented(f)...)
		}
		lines = append(lines, "}")

	case len(b.Union) > unwrappedUnionLimit:
		lines = append(lines, "union() {")
		for _, f := range b.Union {
			lines = append(lines, indented(f)...)
		}
		lines = append(lines, "}")

	default:
		for _, f := range b.Union {
			lines = append(lines, f...)
		}
	}

	if len(b.Intersection) == 0 {
		return lines
	}

	if foldIntersections {
		wrapped := []string{"intersection() {"}
		wrapped = append(wrapped, indented(lines)...)
		for _, f := range b.Intersection {
			wrapped = append(wrapped, indented(f)...)
		}
		wrapped = append(wrapped, "}")
		return wrapped
	}

	lines = append(lines, "", "// Intersection features below are collected but not combined.")
	for _, f := range b.Intersection {
		for _, l := range f {
			lines = append(lines, "// "+l)
		}
	}
	return lines
}
