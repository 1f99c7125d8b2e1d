package export

import (
	"fmt"
	"sort"

	"github.com/ahzs645/Fusion2SCAD/pkg/analyze"
	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/params"
	"github.com/ahzs645/Fusion2SCAD/pkg/scad"
	"github.com/ahzs645/Fusion2SCAD/pkg/units"
)

// compileState tracks where a compilation is in its single forward run.
// There is no branching back; the timeline is processed exactly once
// per export.
type compileState int

const (
	stateIdle compileState = iota
	stateCollecting
	stateResolving
	stateEmitting
	stateDone
)

func (s compileState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCollecting:
		return "collecting"
	case stateResolving:
		return "resolving-modifiers"
	case stateEmitting:
		return "emitting"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("compileState(%d)", int(s))
	}
}

// collected is one pass-1 entry: an analyzed descriptor plus the stable
// key of the body it belongs to. Fillets and chamfers are never
// collected; they fold into bodyState instead.
type collected struct {
	name string
	desc analyze.Descriptor
	body string // stable body key; empty when no body was resolvable
}

// bodyState accumulates the modifiers seen for one body during pass 1.
// Rounding and chamfer only ever grow (max-merge), so feature order
// within the timeline cannot change the outcome.
type bodyState struct {
	rounding      float64
	chamfer       float64
	roundingEdges map[string]bool
	chamferEdges  map[string]bool
}

// compilation is the per-run state of the timeline compiler. One
// compilation serves exactly one export and is discarded afterwards.
type compilation struct {
	cfg    Config
	params *params.Table

	state    compileState
	features []collected
	bodies   map[string]*bodyState

	comments []string // per-feature error comment lines, in timeline order
	issues   []Issue
}

func newCompilation(cfg Config, table *params.Table) *compilation {
	return &compilation{
		cfg:    cfg,
		params: table,
		state:  stateIdle,
		bodies: make(map[string]*bodyState),
	}
}

// run drives the compiler through its states and returns the geometry
// section lines: error comments first, then the assembled boolean tree.
func (c *compilation) run(timeline []model.TimelineEntry) []string {
	c.state = stateCollecting
	c.collect(timeline)

	c.state = stateResolving
	resolved := c.resolveModifiers()

	c.state = stateEmitting
	buckets := c.emit(resolved)

	c.state = stateDone

	lines := append([]string(nil), c.comments...)
	return append(lines, scad.AssembleTree(buckets, c.cfg.FoldIntersections)...)
}

// collect is pass 1: analyze every timeline entry in order. Extrude,
// revolve and hole descriptors join the ordered feature list; fillets
// and chamfers max-merge into the body modifier table. Entries with no
// source geometry are skipped. Analysis failure becomes a comment line
// and the entry is dropped; collection never aborts.
func (c *compilation) collect(timeline []model.TimelineEntry) {
	for i, entry := range timeline {
		if entry.Feature == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("feature_%d", i)
		}

		switch f := entry.Feature.(type) {
		case model.ExtrudeFeature:
			d, warns, err := c.cfg.Analyze.Extrude(f)
			c.record(name, "analyze", warns)
			if err != nil {
				c.fail(name, "analyze", err)
				continue
			}
			c.features = append(c.features, collected{name: name, desc: d, body: c.claimBody(d.Bodies)})

		case model.RevolveFeature:
			d, warns, err := c.cfg.Analyze.Revolve(f)
			c.record(name, "analyze", warns)
			if err != nil {
				c.fail(name, "analyze", err)
				continue
			}
			c.features = append(c.features, collected{name: name, desc: d, body: c.claimBody(d.Bodies)})

		case model.HoleFeature:
			d, warns, err := c.cfg.Analyze.Hole(f)
			c.record(name, "analyze", warns)
			if err != nil {
				c.fail(name, "analyze", err)
				continue
			}
			c.features = append(c.features, collected{name: name, desc: d})

		case model.FilletFeature:
			d, warns, err := c.cfg.Analyze.Fillet(f)
			c.record(name, "analyze", warns)
			if err != nil {
				c.fail(name, "analyze", err)
				continue
			}
			for _, body := range d.Bodies {
				st := c.body(body)
				if d.Radius > st.rounding {
					st.rounding = d.Radius
				}
				for _, t := range d.EdgeTypes {
					st.roundingEdges[t] = true
				}
			}

		case model.ChamferFeature:
			d, warns, err := c.cfg.Analyze.Chamfer(f)
			c.record(name, "analyze", warns)
			if err != nil {
				c.fail(name, "analyze", err)
				continue
			}
			for _, body := range d.Bodies {
				st := c.body(body)
				if d.Distance > st.chamfer {
					st.chamfer = d.Distance
				}
				for _, t := range d.EdgeTypes {
					st.chamferEdges[t] = true
				}
			}

		case model.SketchFeature:
			// Sketches generate no geometry; their profiles arrive via
			// the features that consume them.

		default:
			// Untranslated feature kinds pass through silently.
		}
	}
}

// claimBody registers the first body a solid-producing feature touches
// and returns it as that feature's stable key. The key is the body's
// user-visible NAME as seen when the body is first produced; low-level
// host identity tokens are deliberately not used, because they change
// whenever a later feature re-derives the body.
func (c *compilation) claimBody(bodies []string) string {
	if len(bodies) == 0 {
		return ""
	}
	name := bodies[0]
	c.body(name)
	return name
}

// body returns the modifier state for a key, creating it at zero.
func (c *compilation) body(name string) *bodyState {
	st, ok := c.bodies[name]
	if !ok {
		st = &bodyState{
			roundingEdges: make(map[string]bool),
			chamferEdges:  make(map[string]bool),
		}
		c.bodies[name] = st
	}
	return st
}

// resolveModifiers freezes the accumulated body states into emitter
// modifiers. After this point the table is read-only.
func (c *compilation) resolveModifiers() map[string]scad.Modifiers {
	out := make(map[string]scad.Modifiers, len(c.bodies))
	for name, st := range c.bodies {
		out[name] = scad.Modifiers{
			Rounding:      st.rounding,
			Chamfer:       st.chamfer,
			RoundingEdges: sortedKeys(st.roundingEdges),
			ChamferEdges:  sortedKeys(st.chamferEdges),
		}
	}
	return out
}

// emit is pass 2: generate a fragment per collected feature with its
// body's modifiers applied, and route it into the bucket matching its
// operation. Holes always cut; revolves always join. Generation failure
// becomes a comment line, never an abort.
func (c *compilation) emit(modifiers map[string]scad.Modifiers) scad.Buckets {
	var buckets scad.Buckets

	for _, f := range c.features {
		mods := modifiers[f.body] // zero value when the body is unknown

		switch d := f.desc.(type) {
		case *analyze.Extrude:
			if len(d.Shapes) == 0 {
				c.fail(f.name, "generate", fmt.Errorf("no classifiable shapes"))
				continue
			}
			if d.Operation == analyze.OpIntersection && !c.cfg.FoldIntersections {
				c.issues = append(c.issues, Issue{
					Feature: f.name,
					Stage:   "generate",
					Err:     fmt.Errorf("intersection feature emitted as comments only"),
				})
			}
			refs := scad.Refs{Height: c.refTerm(d.Height, d.HeightExpression)}
			buckets.Add(d.Operation, scad.ExtrudeFragment(f.name, d, refs, mods, c.cfg.Emit))

		case *analyze.Revolve:
			if len(d.Shapes) == 0 {
				c.fail(f.name, "generate", fmt.Errorf("no classifiable shapes"))
				continue
			}
			buckets.Add(analyze.OpUnion, scad.RevolveFragment(f.name, d))

		case *analyze.Hole:
			if d.Position == nil {
				c.fail(f.name, "generate", fmt.Errorf("no resolvable position"))
				continue
			}
			refs := scad.Refs{Diameter: c.refTerm(d.Diameter, d.DiameterExpression)}
			buckets.Add(analyze.OpDifference, scad.HoleFragment(f.name, d, refs))

		default:
			c.fail(f.name, "generate", fmt.Errorf("unexpected descriptor %T", f.desc))
		}
	}
	return buckets
}

// refTerm resolves a millimeter dimension against the parameter table:
// when its host expression references a parameter, the emitted code uses
// the parameter name and stays parametric. Empty means no override.
func (c *compilation) refTerm(valueMM float64, hostExpression string) string {
	if hostExpression == "" {
		return ""
	}
	return c.params.RefOrValue(valueMM/units.CMToMM, hostExpression)
}

// fail records a per-feature error as a script comment and an Issue.
func (c *compilation) fail(name, stage string, err error) {
	verb := "analyzing"
	if stage == "generate" {
		verb = "generating"
	}
	c.comments = append(c.comments, fmt.Sprintf("// Error %s %s: %v", verb, name, err))
	c.issues = append(c.issues, Issue{Feature: name, Stage: stage, Err: err})
}

// record keeps analyzer warnings as Issues without touching the script.
func (c *compilation) record(name, stage string, warns []*analyze.RecoverableError) {
	for _, w := range warns {
		c.issues = append(c.issues, Issue{Feature: name, Stage: stage, Err: w})
	}
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
