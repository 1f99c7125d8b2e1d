package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// The snapshot wire format uses a "kind" discriminant for the two closed
// unions (timeline features and sketch curves). The envelope types below
// keep the public union types free of JSON plumbing.

type timelineEntryJSON struct {
	Name    string           `json:"name"`
	Kind    string           `json:"kind,omitempty"`
	Extrude *ExtrudeFeature  `json:"extrude,omitempty"`
	Revolve *RevolveFeature  `json:"revolve,omitempty"`
	Hole    *HoleFeature     `json:"hole,omitempty"`
	Fillet  *FilletFeature   `json:"fillet,omitempty"`
	Chamfer *ChamferFeature  `json:"chamfer,omitempty"`
	Sketch  *SketchFeature   `json:"sketch,omitempty"`
	Other   *OtherFeature    `json:"other,omitempty"`
}

// MarshalJSON encodes the entry with its payload under a kind-named key.
func (e TimelineEntry) MarshalJSON() ([]byte, error) {
	env := timelineEntryJSON{Name: e.Name}
	switch f := e.Feature.(type) {
	case nil:
		// An entry with no source entity round-trips as name-only.
	case ExtrudeFeature:
		env.Kind, env.Extrude = "extrude", &f
	case RevolveFeature:
		env.Kind, env.Revolve = "revolve", &f
	case HoleFeature:
		env.Kind, env.Hole = "hole", &f
	case FilletFeature:
		env.Kind, env.Fillet = "fillet", &f
	case ChamferFeature:
		env.Kind, env.Chamfer = "chamfer", &f
	case SketchFeature:
		env.Kind, env.Sketch = "sketch", &f
	case OtherFeature:
		env.Kind, env.Other = "other", &f
	default:
		return nil, fmt.Errorf("model: unknown feature type %T", e.Feature)
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes the kind-discriminated envelope.
func (e *TimelineEntry) UnmarshalJSON(data []byte) error {
	var env timelineEntryJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	e.Name = env.Name
	switch {
	case env.Extrude != nil:
		e.Feature = *env.Extrude
	case env.Revolve != nil:
		e.Feature = *env.Revolve
	case env.Hole != nil:
		e.Feature = *env.Hole
	case env.Fillet != nil:
		e.Feature = *env.Fillet
	case env.Chamfer != nil:
		e.Feature = *env.Chamfer
	case env.Sketch != nil:
		e.Feature = *env.Sketch
	case env.Other != nil:
		e.Feature = *env.Other
	case env.Kind != "":
		return fmt.Errorf("model: timeline entry %q: kind %q has no payload", env.Name, env.Kind)
	default:
		e.Feature = nil
	}
	return nil
}

type curveJSON struct {
	Kind    string        `json:"kind"`
	Line    *LineCurve    `json:"line,omitempty"`
	Arc     *ArcCurve     `json:"arc,omitempty"`
	Circle  *CircleCurve  `json:"circle,omitempty"`
	Ellipse *EllipseCurve `json:"ellipse,omitempty"`
	Spline  *SplineCurve  `json:"spline,omitempty"`
}

type loopJSON struct {
	IsOuter bool        `json:"is_outer"`
	Curves  []curveJSON `json:"curves"`
}

// MarshalJSON encodes the loop's curves with kind discriminants.
func (l Loop) MarshalJSON() ([]byte, error) {
	env := loopJSON{IsOuter: l.IsOuter, Curves: make([]curveJSON, 0, len(l.Curves))}
	for _, c := range l.Curves {
		cj := curveJSON{Kind: c.Kind().String()}
		switch v := c.(type) {
		case LineCurve:
			cj.Line = &v
		case ArcCurve:
			cj.Arc = &v
		case CircleCurve:
			cj.Circle = &v
		case EllipseCurve:
			cj.Ellipse = &v
		case SplineCurve:
			cj.Spline = &v
		default:
			return nil, fmt.Errorf("model: unknown curve type %T", c)
		}
		env.Curves = append(env.Curves, cj)
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes the loop's kind-discriminated curves.
func (l *Loop) UnmarshalJSON(data []byte) error {
	var env loopJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.IsOuter = env.IsOuter
	l.Curves = make([]Curve, 0, len(env.Curves))
	for i, cj := range env.Curves {
		switch {
		case cj.Line != nil:
			l.Curves = append(l.Curves, *cj.Line)
		case cj.Arc != nil:
			l.Curves = append(l.Curves, *cj.Arc)
		case cj.Circle != nil:
			l.Curves = append(l.Curves, *cj.Circle)
		case cj.Ellipse != nil:
			l.Curves = append(l.Curves, *cj.Ellipse)
		case cj.Spline != nil:
			l.Curves = append(l.Curves, *cj.Spline)
		default:
			return fmt.Errorf("model: loop curve %d: kind %q has no payload", i, cj.Kind)
		}
	}
	return nil
}

// LoadSnapshot reads and decodes a design snapshot from a JSON file.
func LoadSnapshot(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot decodes a design snapshot from JSON bytes.
func DecodeSnapshot(data []byte) (*Design, error) {
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("model: decode snapshot: %w", err)
	}
	return &d, nil
}
