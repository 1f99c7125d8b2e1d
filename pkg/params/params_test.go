package params

import (
	"math"
	"strings"
	"testing"

	"github.com/ahzs645/Fusion2SCAD/pkg/model"
)

func fp(v float64) *float64 { return &v }

func TestExtractBasics(t *testing.T) {
	table, issues := Extract([]model.Parameter{
		{Name: "Wall Thickness", Value: fp(0.25), Unit: "mm", Expression: "2.5 mm", Comment: "shell"},
		{Name: "height", Value: fp(4), Unit: "mm"},
	})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 parameters, got %d", table.Len())
	}

	r, ok := table.Lookup("Wall Thickness")
	if !ok {
		t.Fatal("raw-name lookup failed")
	}
	if r.Name != "wall_thickness" {
		t.Errorf("sanitized name = %q", r.Name)
	}
	if math.Abs(r.Value-2.5) > 1e-9 {
		t.Errorf("value = %v mm, want 2.5", r.Value)
	}
	if r.Comment != "shell" {
		t.Errorf("comment = %q", r.Comment)
	}
}

func TestExtractEvaluatesMissingValue(t *testing.T) {
	table, issues := Extract([]model.Parameter{
		{Name: "wall", Value: fp(0.2), Unit: "mm"},
		{Name: "rim", Expression: "wall * 2 + 1", Unit: "mm"},
	})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	r, _ := table.Lookup("rim")
	// wall is 0.2 host units; the expression result stays in host units
	// and converts to mm on extraction.
	if math.Abs(r.HostValue-1.4) > 1e-9 {
		t.Errorf("host value = %v, want 1.4", r.HostValue)
	}
	if math.Abs(r.Value-14) > 1e-9 {
		t.Errorf("value = %v mm, want 14", r.Value)
	}
}

func TestExtractFlagsMismatch(t *testing.T) {
	_, issues := Extract([]model.Parameter{
		{Name: "wall", Value: fp(0.2), Unit: "mm"},
		{Name: "rim", Value: fp(9), Expression: "wall * 2", Unit: "mm"},
	})
	if len(issues) != 1 {
		t.Fatalf("expected 1 mismatch issue, got %v", issues)
	}
	if !strings.Contains(issues[0].Msg, "evaluates to") {
		t.Errorf("unexpected issue: %v", issues[0])
	}
}

func TestExtractBadExpressionDegrades(t *testing.T) {
	table, issues := Extract([]model.Parameter{
		{Name: "broken", Expression: "no_such_param * 2"},
	})
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	r, _ := table.Lookup("broken")
	if r.Value != 0 {
		t.Errorf("failed evaluation should degrade to zero, got %v", r.Value)
	}
}

func TestRefOrValue(t *testing.T) {
	table, _ := Extract([]model.Parameter{
		{Name: "Wall Thickness", Value: fp(0.25), Unit: "mm"},
	})

	if got := table.RefOrValue(0.25, "Wall Thickness"); got != "wall_thickness" {
		t.Errorf("expression referencing a parameter should return its name, got %q", got)
	}
	if got := table.RefOrValue(0.25, "Wall Thickness + 1"); got != "wall_thickness" {
		t.Errorf("substring match should still return the name, got %q", got)
	}
	if got := table.RefOrValue(0.3, ""); got != "3" {
		t.Errorf("no expression should format the mm value, got %q", got)
	}
	if got := table.RefOrValue(0.25, "unrelated"); got != "2.5" {
		t.Errorf("unmatched expression should format the mm value, got %q", got)
	}
}

func TestScadParamsPreservesOrder(t *testing.T) {
	table, _ := Extract([]model.Parameter{
		{Name: "zeta", Value: fp(1)},
		{Name: "alpha", Value: fp(2)},
	})
	params := table.ScadParams()
	if len(params) != 2 || params[0].Name != "zeta" || params[1].Name != "alpha" {
		t.Errorf("snapshot order not preserved: %v", params)
	}
}

func TestEvaluatorLiterals(t *testing.T) {
	ev := NewEvaluator()
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{"Bare", "12", 12},
		{"Decimal", "2.5", 2.5},
		{"MM", "25 mm", 2.5},
		{"CM", "3 cm", 3},
		{"Inches", "1 in", 2.54},
		{"Degrees", "90 deg", math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Eval(tt.expr, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluatorArithmetic(t *testing.T) {
	ev := NewEvaluator()
	scope := map[string]float64{"wall": 2, "count": 3}

	got, err := ev.Eval("wall * count + 1", scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-7) > 1e-9 {
		t.Errorf("got %v, want 7", got)
	}
}

func TestEvaluatorErrors(t *testing.T) {
	ev := NewEvaluator()
	if _, err := ev.Eval("", nil); err == nil {
		t.Error("empty expression should error")
	}
	if _, err := ev.Eval("undefined_name + 1", nil); err == nil {
		t.Error("unknown identifier should error")
	}
}
