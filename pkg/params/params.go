// Package params extracts user-defined parameters from a design snapshot
// and resolves their expressions. Extraction runs once per export; the
// resulting table is keyed by raw host name so that feature expressions
// can be matched back to the parameter that drives them.
package params

import (
	"fmt"
	"strings"

	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/scad"
	"github.com/ahzs645/Fusion2SCAD/pkg/units"
)

// Resolved is one extracted parameter. Value is millimeters; HostValue is
// the host's native centimeter value it was converted from.
type Resolved struct {
	RawName    string
	Name       string // sanitized identifier
	Value      float64
	HostValue  float64
	Unit       string
	Expression string
	Comment    string
}

// Issue is a non-fatal problem found during extraction, such as an
// expression that could not be evaluated or disagrees with the stored
// value. Issues are reported, never fatal.
type Issue struct {
	Param string
	Msg   string
}

func (i Issue) String() string {
	return fmt.Sprintf("parameter %q: %s", i.Param, i.Msg)
}

// Table holds the extracted parameters in snapshot order, keyed by raw
// host name. Immutable after Extract returns.
type Table struct {
	order []string
	byRaw map[string]*Resolved
}

// valueMismatchTolerance is the relative disagreement between a stored
// value and its evaluated expression above which an Issue is reported.
const valueMismatchTolerance = 1e-6

// Extract builds a parameter table from the snapshot's parameter list.
// Parameters missing a stored value get one by evaluating their
// expression against the parameters extracted so far; evaluation failures
// degrade to zero with an Issue. A stored value that disagrees with its
// evaluated expression is kept as-is and flagged.
func Extract(list []model.Parameter) (*Table, []Issue) {
	t := &Table{byRaw: make(map[string]*Resolved, len(list))}
	var issues []Issue
	ev := NewEvaluator()

	for _, p := range list {
		r := &Resolved{
			RawName:    p.Name,
			Name:       scad.SanitizeName(p.Name),
			Unit:       p.Unit,
			Expression: p.Expression,
			Comment:    p.Comment,
		}

		switch {
		case p.Value != nil:
			r.HostValue = *p.Value
			if p.Expression != "" {
				if got, err := ev.Eval(rewrite(p.Expression, t), t.scope()); err == nil {
					if mismatch(got, r.HostValue) {
						issues = append(issues, Issue{
							Param: p.Name,
							Msg:   fmt.Sprintf("expression %q evaluates to %g, stored value is %g", p.Expression, got, r.HostValue),
						})
					}
				}
			}
		case p.Expression != "":
			got, err := ev.Eval(rewrite(p.Expression, t), t.scope())
			if err != nil {
				issues = append(issues, Issue{
					Param: p.Name,
					Msg:   fmt.Sprintf("cannot evaluate expression %q: %v", p.Expression, err),
				})
			}
			r.HostValue = got
		default:
			issues = append(issues, Issue{Param: p.Name, Msg: "no value and no expression"})
		}

		r.Value = units.ToMM(r.HostValue)
		t.order = append(t.order, p.Name)
		t.byRaw[p.Name] = r
	}

	return t, issues
}

// Len reports the number of extracted parameters.
func (t *Table) Len() int { return len(t.order) }

// Lookup returns the parameter with the given raw host name.
func (t *Table) Lookup(rawName string) (*Resolved, bool) {
	r, ok := t.byRaw[rawName]
	return r, ok
}

// All returns the parameters in snapshot order.
func (t *Table) All() []*Resolved {
	out := make([]*Resolved, 0, len(t.order))
	for _, raw := range t.order {
		out = append(out, t.byRaw[raw])
	}
	return out
}

// ScadParams converts the table into emitter parameter declarations,
// preserving snapshot order.
func (t *Table) ScadParams() []scad.Param {
	out := make([]scad.Param, 0, len(t.order))
	for _, raw := range t.order {
		r := t.byRaw[raw]
		out = append(out, scad.Param{Name: r.Name, Value: r.Value, Comment: r.Comment})
	}
	return out
}

// RefOrValue returns the sanitized name of the first parameter whose raw
// name appears in the host expression, so that emitted code stays
// parametric. When no parameter matches, the converted millimeter value
// is formatted instead.
func (t *Table) RefOrValue(hostValue float64, hostExpression string) string {
	if hostExpression != "" {
		for _, raw := range t.order {
			if strings.Contains(hostExpression, raw) {
				return t.byRaw[raw].Name
			}
		}
	}
	return scad.FormatValue(units.ToMM(hostValue))
}

// scope returns the host-unit values of every parameter extracted so
// far, keyed by sanitized name, for expression evaluation.
func (t *Table) scope() map[string]float64 {
	m := make(map[string]float64, len(t.order))
	for _, raw := range t.order {
		r := t.byRaw[raw]
		m[r.Name] = r.HostValue
	}
	return m
}

// rewrite replaces raw parameter names in an expression with their
// sanitized identifiers. Longer names are replaced first so that a
// parameter whose name is a prefix of another never clobbers it.
func rewrite(expr string, t *Table) string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && len(names[j]) > len(names[j-1]); j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	for _, raw := range names {
		sanitized := t.byRaw[raw].Name
		if raw != sanitized {
			expr = strings.ReplaceAll(expr, raw, sanitized)
		}
	}
	return expr
}

func mismatch(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	scale := b
	if scale < 0 {
		scale = -scale
	}
	if scale < 1 {
		scale = 1
	}
	return diff > valueMismatchTolerance*scale
}
