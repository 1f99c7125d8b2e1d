package scad

import (
	"fmt"
	"math"
	"strings"

	"github.com/ahzs645/Fusion2SCAD/pkg/analyze"
	"github.com/ahzs645/Fusion2SCAD/pkg/orient"
	"github.com/ahzs645/Fusion2SCAD/pkg/profile"
	"github.com/ahzs645/Fusion2SCAD/pkg/units"
)

// offsetTolerance decides when a shape center needs a translate prefix.
const offsetTolerance = 0.001

// Modifiers carries the rounding/chamfer accumulated on the body a
// fragment belongs to.
type Modifiers struct {
	Rounding      float64
	Chamfer       float64
	RoundingEdges []string
	ChamferEdges  []string
}

// Refs carries pre-resolved script terms for dimensions driven by user
// parameters, so the emitted code references the parameter instead of a
// numeric literal. An empty term falls back to the descriptor's value.
type Refs struct {
	Height   string // extrusion height
	Diameter string // hole diameter
}

// orValue picks a resolved term over a formatted numeric value.
func orValue(term string, value float64) string {
	if term != "" {
		return term
	}
	return FormatValue(value)
}

// Config carries emitter feature flags.
type Config struct {
	// SelectiveEdges emits BOSL2 edges= arguments so fillet/chamfer
	// modifiers apply only to the edge groups the source feature
	// selected, instead of every edge of the body.
	SelectiveEdges bool
}

// Fragment is one emitted code fragment: the lines of a single feature's
// geometry, comment included.
type Fragment []string

// ExtrudeFragment renders an analyzed extrusion with its body's
// accumulated modifiers applied.
func ExtrudeFragment(name string, d *analyze.Extrude, refs Refs, mods Modifiers, cfg Config) Fragment {
	lines := Fragment{"// " + name}
	for _, shape := range d.Shapes {
		lines = append(lines, shapeSolid(d, shape, refs, mods, cfg)...)
	}
	return lines
}

// shapeSolid renders one classified shape as an extruded solid,
// wrapping it in plane-orientation and center-offset transforms.
func shapeSolid(d *analyze.Extrude, shape profile.Shape, refs Refs, mods Modifiers, cfg Config) []string {
	anchor := "BOTTOM"
	if d.Symmetric {
		anchor = "CENTER"
	}

	var body []string
	var center struct{ x, y float64 }

	switch s := shape.(type) {
	case profile.Circle:
		center.x, center.y = s.Center.X, s.Center.Y
		body = []string{cylCall(d.Height, refs.Height, s.Radius, d.TaperAngle, anchor, mods, cfg)}

	case profile.Rect:
		center.x, center.y = s.Center.X, s.Center.Y
		body = []string{boxCall(s.Width, s.Height, d.Height, refs.Height, 0, d.TaperAngle, anchor, mods, cfg)}

	case profile.RoundedRect:
		center.x, center.y = s.Center.X, s.Center.Y
		body = []string{boxCall(s.Width, s.Height, d.Height, refs.Height, s.Rounding, d.TaperAngle, anchor, mods, cfg)}

	case profile.Polygon:
		ext := fmt.Sprintf("linear_extrude(height=%s", orValue(refs.Height, d.Height))
		if d.Symmetric {
			ext += ", center=true"
		}
		ext += ")"
		body = append([]string{ext}, indented(PolygonWithHoles(s.Outer, s.Holes))...)

	default:
		return nil
	}

	body[len(body)-1] += ";"

	var wrapped []string
	switch d.Plane {
	case orient.PlaneXZ:
		wrapped = append(wrapped, "xrot(90)")
	case orient.PlaneYZ:
		wrapped = append(wrapped, "yrot(-90)")
	case orient.PlaneCustom:
		wrapped = append(wrapped, multmatrixCall(planeMatrix(d)))
	}
	if math.Abs(center.x) > offsetTolerance || math.Abs(center.y) > offsetTolerance {
		wrapped = append(wrapped, fmt.Sprintf("translate([%s, %s, 0])", FormatValue(center.x), FormatValue(center.y)))
	}

	return nest(wrapped, body)
}

// RevolveFragment renders an analyzed revolution. The profile is swept
// as a 2D section; a full-turn sweep omits the angle argument.
func RevolveFragment(name string, d *analyze.Revolve) Fragment {
	lines := Fragment{"// " + name}

	sweep := "rotate_extrude()"
	if math.Abs(d.Angle-360) > offsetTolerance {
		sweep = fmt.Sprintf("rotate_extrude(angle=%s)", FormatValue(d.Angle))
	}

	for _, shape := range d.Shapes {
		var section []string
		var center struct{ x, y float64 }

		switch s := shape.(type) {
		case profile.Circle:
			center.x, center.y = s.Center.X, s.Center.Y
			section = []string{fmt.Sprintf("circle(r=%s)", FormatValue(s.Radius))}
		case profile.Rect:
			center.x, center.y = s.Center.X, s.Center.Y
			section = []string{fmt.Sprintf("rect([%s, %s])", FormatValue(s.Width), FormatValue(s.Height))}
		case profile.RoundedRect:
			center.x, center.y = s.Center.X, s.Center.Y
			section = []string{fmt.Sprintf("rect([%s, %s], rounding=%s)",
				FormatValue(s.Width), FormatValue(s.Height), FormatValue(s.Rounding))}
		case profile.Polygon:
			section = PolygonWithHoles(s.Outer, s.Holes)
		default:
			continue
		}

		section[len(section)-1] += ";"

		var wrapped []string
		wrapped = append(wrapped, sweep)
		if math.Abs(center.x) > offsetTolerance || math.Abs(center.y) > offsetTolerance {
			// The section is swept about the Z axis; the offset moves the
			// section within the sweep plane.
			wrapped = append(wrapped, fmt.Sprintf("translate([%s, %s])", FormatValue(center.x), FormatValue(center.y)))
		}
		lines = append(lines, nest(wrapped, section)...)
	}
	return lines
}

// HoleFragment renders an analyzed hole as a cutting cylinder anchored
// at its top, optionally re-aimed by the axis-alignment matrix.
func HoleFragment(name string, d *analyze.Hole, refs Refs) Fragment {
	lines := Fragment{"// " + name}

	var wrapped []string
	if p := d.Position; p != nil {
		wrapped = append(wrapped, fmt.Sprintf("translate([%s, %s, %s])",
			FormatValue(p.X), FormatValue(p.Y), FormatValue(p.Z)))
	}
	if d.Matrix != nil {
		wrapped = append(wrapped, multmatrixCall(*d.Matrix))
	}

	body := []string{fmt.Sprintf("cyl(h=%s, d=%s, anchor=TOP);", FormatValue(d.Depth), orValue(refs.Diameter, d.Diameter))}
	return append(lines, nest(wrapped, body)...)
}

// cylCall renders a BOSL2 cyl() for a circular extrusion. A taper angle
// shrinks the top radius; modifiers become rounding/chamfer arguments.
func cylCall(height float64, heightTerm string, radius, taper float64, anchor string, mods Modifiers, cfg Config) string {
	args := []string{fmt.Sprintf("h=%s", orValue(heightTerm, height))}
	if taper != 0 {
		top := radius - height*math.Tan(units.Radians(taper))
		if top < 0 {
			top = 0
		}
		args = append(args, fmt.Sprintf("r1=%s", FormatValue(radius)), fmt.Sprintf("r2=%s", FormatValue(top)))
	} else {
		args = append(args, fmt.Sprintf("r=%s", FormatValue(radius)))
	}
	args = append(args, modifierArgs(mods, cfg)...)
	args = append(args, "anchor="+anchor)
	return "cyl(" + strings.Join(args, ", ") + ")"
}

// boxCall renders a BOSL2 cuboid() (or prismoid() when tapered) for a
// rectangular extrusion. baseRounding is the profile's own corner
// rounding; the larger of it and the modifier rounding wins.
func boxCall(w, h, depth float64, depthTerm string, baseRounding, taper float64, anchor string, mods Modifiers, cfg Config) string {
	rounding := math.Max(baseRounding, mods.Rounding)

	if taper != 0 {
		shrink := 2 * depth * math.Tan(units.Radians(taper))
		w2 := math.Max(w-shrink, 0)
		h2 := math.Max(h-shrink, 0)
		args := []string{
			fmt.Sprintf("size1=[%s, %s]", FormatValue(w), FormatValue(h)),
			fmt.Sprintf("size2=[%s, %s]", FormatValue(w2), FormatValue(h2)),
			fmt.Sprintf("h=%s", orValue(depthTerm, depth)),
		}
		if rounding > 0 {
			args = append(args, fmt.Sprintf("rounding=%s", FormatValue(rounding)))
		}
		args = append(args, "anchor="+anchor)
		return "prismoid(" + strings.Join(args, ", ") + ")"
	}

	args := []string{fmt.Sprintf("[%s, %s, %s]", FormatValue(w), FormatValue(h), orValue(depthTerm, depth))}
	if rounding > 0 {
		args = append(args, fmt.Sprintf("rounding=%s", FormatValue(rounding)))
		if es := edgesArg(mods.RoundingEdges, cfg); es != "" {
			args = append(args, es)
		}
	}
	if mods.Chamfer > 0 {
		args = append(args, fmt.Sprintf("chamfer=%s", FormatValue(mods.Chamfer)))
		if es := edgesArg(mods.ChamferEdges, cfg); es != "" {
			args = append(args, es)
		}
	}
	args = append(args, "anchor="+anchor)
	return "cuboid(" + strings.Join(args, ", ") + ")"
}

// modifierArgs renders rounding/chamfer arguments for cyl().
func modifierArgs(mods Modifiers, cfg Config) []string {
	var args []string
	if mods.Rounding > 0 {
		args = append(args, fmt.Sprintf("rounding=%s", FormatValue(mods.Rounding)))
	}
	if mods.Chamfer > 0 {
		args = append(args, fmt.Sprintf("chamfer=%s", FormatValue(mods.Chamfer)))
	}
	return args
}

// edgesArg maps source edge groups to a BOSL2 edges= argument. Disabled
// unless the selective-edges flag is on.
func edgesArg(edgeTypes []string, cfg Config) string {
	if !cfg.SelectiveEdges || len(edgeTypes) == 0 {
		return ""
	}
	var specs []string
	for _, t := range edgeTypes {
		switch t {
		case "top":
			specs = append(specs, "TOP")
		case "bottom":
			specs = append(specs, "BOT")
		case "side":
			specs = append(specs, `"Z"`)
		}
	}
	if len(specs) == 0 {
		return ""
	}
	if len(specs) == 1 {
		return "edges=" + specs[0]
	}
	return "edges=[" + strings.Join(specs, ", ") + "]"
}

// planeMatrix is the custom-plane placement transform with millimeter
// translation.
func planeMatrix(d *analyze.Extrude) orient.Matrix4 {
	m := orient.FrameMatrix(d.Frame)
	m[0][3] = d.PlaneOrigin.X
	m[1][3] = d.PlaneOrigin.Y
	m[2][3] = d.PlaneOrigin.Z
	return m
}

// multmatrixCall renders a multmatrix() over a 4x4 transform.
func multmatrixCall(m orient.Matrix4) string {
	rows := make([]string, 4)
	for i, row := range m {
		cells := make([]string, 4)
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		rows[i] = "[" + strings.Join(cells, ", ") + "]"
	}
	return "multmatrix(m=[" + strings.Join(rows, ", ") + "])"
}

// nest stacks wrapper lines above a body, indenting one level per
// wrapper so transforms visually apply to the statement below.
func nest(wrappers, body []string) []string {
	var lines []string
	for i, w := range wrappers {
		lines = append(lines, strings.Repeat(indent, i)+w)
	}
	depth := len(wrappers)
	for _, b := range body {
		lines = append(lines, strings.Repeat(indent, depth)+b)
	}
	return lines
}

// indented shifts a block one level right.
func indented(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = indent + l
	}
	return out
}
