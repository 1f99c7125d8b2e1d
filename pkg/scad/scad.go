// Package scad renders analyzed feature descriptors into OpenSCAD/BOSL2
// source text: identifier sanitization, numeric formatting, shape and
// polygon fragments, and final boolean tree assembly.
package scad

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// precision is the decimal precision for formatted values.
const precision = 4

// integerSnap is how close a value must be to a whole number to render
// as a bare integer.
const integerSnap = 0.0001

// indent is one level of block indentation.
const indent = "    "

// SanitizeName converts a host parameter name into a valid script
// identifier: non-alphanumeric runes become underscores, a leading digit
// gets an underscore prefix, and the result is lowercased.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return strings.ToLower(s)
}

// FormatValue renders a numeric value for script output. Values within
// integerSnap of a whole number render as bare integers; everything else
// renders with 4-decimal precision, trailing zeros and a trailing
// decimal point stripped.
func FormatValue(v float64) string {
	if math.Abs(v-math.Round(v)) < integerSnap {
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// Param is one rendered parameter declaration.
type Param struct {
	Name    string  // sanitized identifier
	Value   float64 // millimeters
	Comment string
}

// Header returns the fixed file banner and library include.
func Header() []string {
	return []string{
		"// ============================================",
		"// Generated by Fusion2SCAD",
		"// Requires the BOSL2 library:",
		"//   https://github.com/BelfrySCAD/BOSL2",
		"// ============================================",
		"",
		"include <BOSL2/std.scad>",
		"",
	}
}

// ParametersSection renders the parameter declarations, one line per
// parameter, with the original comment carried along when present.
func ParametersSection(params []Param) []string {
	lines := []string{
		"// ============================================",
		"// Parameters",
		"// ============================================",
	}
	for _, p := range params {
		line := fmt.Sprintf("%s = %s;", p.Name, FormatValue(p.Value))
		if p.Comment != "" {
			line += " // " + p.Comment
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	return lines
}

// GeometryBanner returns the section banner preceding the boolean tree.
func GeometryBanner() []string {
	return []string{
		"// ============================================",
		"// Geometry (exported from timeline features)",
		"// ============================================",
		"",
	}
}

// PolygonCall renders a polygon() call over the given points, one point
// per line.
func PolygonCall(points []v2.Vec) []string {
	lines := []string{"polygon(points=["}
	for i, p := range points {
		sep := ","
		if i == len(points)-1 {
			sep = ""
		}
		lines = append(lines, fmt.Sprintf("%s[%s, %s]%s", indent, FormatValue(p.X), FormatValue(p.Y), sep))
	}
	lines = append(lines, "])")
	return lines
}

// PolygonWithHoles renders a polygon() call with explicit paths: the
// outer boundary first, then each hole as its own path.
func PolygonWithHoles(outer []v2.Vec, holes [][]v2.Vec) []string {
	if len(holes) == 0 {
		return PolygonCall(outer)
	}

	all := make([]v2.Vec, 0, len(outer))
	all = append(all, outer...)
	paths := []string{indexRange(0, len(outer))}
	for _, hole := range holes {
		start := len(all)
		all = append(all, hole...)
		paths = append(paths, indexRange(start, len(hole)))
	}

	lines := []string{"polygon("}
	lines = append(lines, indent+"points=[")
	for i, p := range all {
		sep := ","
		if i == len(all)-1 {
			sep = ""
		}
		lines = append(lines, fmt.Sprintf("%s%s[%s, %s]%s", indent, indent, FormatValue(p.X), FormatValue(p.Y), sep))
	}
	lines = append(lines, indent+"],")
	lines = append(lines, fmt.Sprintf("%spaths=[%s]", indent, strings.Join(paths, ", ")))
	lines = append(lines, ")")
	return lines
}

// indexRange renders [start, start+1, ... start+n-1].
func indexRange(start, n int) string {
	idx := make([]string, n)
	for i := 0; i < n; i++ {
		idx[i] = strconv.Itoa(start + i)
	}
	return "[" + strings.Join(idx, ", ") + "]"
}
