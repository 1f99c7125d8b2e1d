// Package export compiles a design snapshot into an OpenSCAD/BOSL2
// script plus a parallel structured debug record. Compilation is a pure
// function of the snapshot: each run owns its own state and discards it
// at the end, so an Exporter is safe to reuse across runs.
package export

import (
	"fmt"
	"strings"

	"github.com/ahzs645/Fusion2SCAD/pkg/analyze"
	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/params"
	"github.com/ahzs645/Fusion2SCAD/pkg/scad"
)

// Config carries the per-export knobs.
type Config struct {
	// Analyze configures feature analysis (arc segment counts).
	Analyze analyze.Config
	// Emit configures fragment generation (selective edge modifiers).
	Emit scad.Config
	// FoldIntersections merges intersection-operation features into the
	// final tree by wrapping it in intersection(). When off, those
	// features are preserved as commented-out lines.
	FoldIntersections bool
}

// DefaultConfig returns the exporter defaults.
func DefaultConfig() Config {
	return Config{Analyze: analyze.DefaultConfig()}
}

// FatalInputError means the snapshot cannot be exported at all, as
// opposed to per-feature recoverable problems.
type FatalInputError struct {
	Msg string
}

func (e *FatalInputError) Error() string {
	return "export: " + e.Msg
}

// Issue is one recoverable problem encountered during a run: a feature
// that failed analysis or generation, or a parameter whose expression
// did not resolve. Issues never abort the run.
type Issue struct {
	Feature string // feature or parameter name
	Stage   string // "parameters", "analyze" or "generate"
	Err     error
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %v", i.Stage, i.Feature, i.Err)
}

// Result is the complete output of one export run.
type Result struct {
	Script string
	Debug  *DebugRecord
	Issues []Issue
}

// Exporter compiles design snapshots. The zero value is not usable;
// construct with New.
type Exporter struct {
	cfg Config
}

// New creates an Exporter with the given configuration.
func New(cfg Config) *Exporter {
	if cfg.Analyze.ArcSegments <= 0 {
		cfg.Analyze = analyze.DefaultConfig()
	}
	return &Exporter{cfg: cfg}
}

// Export compiles one snapshot to a script string and a debug record.
// The error return is reserved for fatal input problems; everything
// recoverable lands in Result.Issues.
func (e *Exporter) Export(d *model.Design) (*Result, error) {
	if d == nil {
		return nil, &FatalInputError{Msg: "nil design snapshot"}
	}
	if len(d.Timeline) == 0 && len(d.Parameters) == 0 {
		return nil, &FatalInputError{Msg: "snapshot has no timeline and no parameters"}
	}

	table, paramIssues := params.Extract(d.Parameters)

	c := newCompilation(e.cfg, table)
	geometry := c.run(d.Timeline)

	var lines []string
	lines = append(lines, scad.Header()...)
	lines = append(lines, scad.ParametersSection(table.ScadParams())...)
	lines = append(lines, scad.GeometryBanner()...)
	lines = append(lines, geometry...)

	res := &Result{
		Script: strings.Join(lines, "\n"),
		Debug:  buildDebugRecord(d),
	}
	for _, pi := range paramIssues {
		res.Issues = append(res.Issues, Issue{Feature: pi.Param, Stage: "parameters", Err: fmt.Errorf("%s", pi.Msg)})
	}
	res.Issues = append(res.Issues, c.issues...)
	return res, nil
}
