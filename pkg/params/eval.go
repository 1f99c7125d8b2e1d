package params

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/v9/zygo"
)

// EvalTimeout is the hard limit for a single expression evaluation.
const EvalTimeout = 5 * time.Second

// Evaluator evaluates host parameter expressions in a sandboxed zygomys
// environment. It is safe for concurrent use; each call to Eval creates
// a fresh sandbox for determinism.
type Evaluator struct {
	mu         sync.Mutex
	generation uint64
}

// NewEvaluator creates a new Evaluator instance.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// unitLiteral matches a bare numeric literal with an optional unit
// suffix, e.g. "12", "2.5 mm", "1 in".
var unitLiteral = regexp.MustCompile(`^\s*([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)\s*(mm|cm|m|in|deg|rad)?\s*$`)

// hostFactor converts a literal in the given unit to the host's native
// unit (centimeters for lengths, radians for angles).
func hostFactor(unit string) float64 {
	switch unit {
	case "mm":
		return 0.1
	case "m":
		return 100.0
	case "in":
		return 2.54
	case "deg":
		return 0.017453292519943295
	default:
		// cm, rad, or no suffix are already host-native.
		return 1.0
	}
}

type evalOutcome struct {
	value float64
	err   error
}

// Eval resolves an expression against the given scope of host-unit
// parameter values and returns the result in host units.
//
// Bare numeric literals (with an optional unit suffix) are converted
// directly. Everything else is handed to a fresh sandboxed zygomys
// environment: the scope becomes a prelude of definitions and the
// expression itself runs as an infix block.
func (e *Evaluator) Eval(expr string, scope map[string]float64) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("empty expression")
	}

	if m := unitLiteral.FindStringSubmatch(expr); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, err
		}
		return v * hostFactor(m[2]), nil
	}

	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOutcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		v, err := evaluate(expr, scope)
		ch <- evalOutcome{value: v, err: err}
	}()

	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		e.mu.Lock()
		current := e.generation
		e.mu.Unlock()
		if gen != current {
			return 0, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.value, res.err

	case <-timer.C:
		return 0, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
// Sandbox mode prevents expressions from reaching the filesystem or
// syscalls.
func evaluate(expr string, scope map[string]float64) (float64, error) {
	env := zygo.NewZlispSandbox()
	defer env.Close()

	var src strings.Builder
	names := make([]string, 0, len(scope))
	for name := range scope {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&src, "(def %s %s)\n", name, strconv.FormatFloat(scope[name], 'g', -1, 64))
	}
	// The braces switch zygomys into infix mode, which matches the
	// host's arithmetic expression syntax.
	fmt.Fprintf(&src, "{%s}\n", expr)

	if err := env.LoadString(src.String()); err != nil {
		return 0, fmt.Errorf("parse: %s", firstLine(err))
	}

	result, err := env.Run()
	if err != nil {
		return 0, fmt.Errorf("eval: %s", firstLine(err))
	}

	switch v := result.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", result, result.SexpString(nil))
}

// firstLine trims a zygomys error to its first line; parse errors carry
// a multi-line context dump that is noise in an Issue.
func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
