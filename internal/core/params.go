package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// ParamSpec declares one numeric model parameter, its default and its
// optional bounds.
type ParamSpec struct {
	Key         string
	Label       string
	Type        ParamType
	Default     float64
	Description string

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Params holds resolved model parameters.
type Params map[string]float64

// Int returns an integer parameter.
func (p Params) Int(key string) int { return int(p[key]) }

// Float returns a floating point parameter.
func (p Params) Float(key string) float64 { return p[key] }

// ResolveParams applies defaults and validates the given values against the
// specs. Unknown keys, out-of-range values and fractional values for integer
// parameters are configuration errors.
func ResolveParams(specs []ParamSpec, given map[string]float64) (Params, error) {
	out := make(Params, len(specs))
	known := make(map[string]ParamSpec, len(specs))
	for _, s := range specs {
		known[s.Key] = s
		out[s.Key] = s.Default
	}
	keys := make([]string, 0, len(given))
	for k := range given {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := given[k]
		s, ok := known[k]
		if !ok {
			return nil, fmt.Errorf("core: unknown parameter %q: %w", k, ErrConfiguration)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("core: parameter %q is not finite: %w", k, ErrConfiguration)
		}
		if s.Type == ParamTypeInt && v != math.Trunc(v) {
			return nil, fmt.Errorf("core: parameter %q must be an integer, got %v: %w", k, v, ErrConfiguration)
		}
		if s.HasMin && v < s.Min {
			return nil, fmt.Errorf("core: parameter %q = %v below minimum %v: %w", k, v, s.Min, ErrConfiguration)
		}
		if s.HasMax && v > s.Max {
			return nil, fmt.Errorf("core: parameter %q = %v above maximum %v: %w", k, v, s.Max, ErrConfiguration)
		}
		out[k] = v
	}
	return out, nil
}

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

func formatParam(s ParamSpec, v float64) Parameter {
	value := strconv.FormatFloat(v, 'f', -1, 64)
	if s.Type == ParamTypeInt {
		value = strconv.Itoa(int(v))
	}
	label := s.Label
	if label == "" {
		label = s.Key
	}
	return Parameter{Key: s.Key, Label: label, Type: s.Type, Value: value, Description: s.Description}
}
