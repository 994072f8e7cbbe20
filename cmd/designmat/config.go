// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/designmat/coding"
	"github.com/katalvlaran/designmat/design"
	"github.com/katalvlaran/designmat/events"
	"github.com/katalvlaran/designmat/formula"
	"github.com/katalvlaran/designmat/spline"
	"gopkg.in/yaml.v3"
)

var (
	errNoFormulas   = errors.New("config: no formulas")
	errEventType    = errors.New("events: event without a string \"type\"")
	errSplineConfig = errors.New("config: spline needs a variable and k >= 1")
)

// modelConfig is the YAML (or JSON) model description.
type modelConfig struct {
	Formulas      []string       `yaml:"formulas"`
	EventTypes    [][]string     `yaml:"eventtypes"`
	Categorical   []string       `yaml:"categorical"`
	Splines       []splineConfig `yaml:"splines"`
	SplineSpacing string         `yaml:"splinespacing"`
	CodingSchema  string         `yaml:"codingschema"`
}

type splineConfig struct {
	Variable string `yaml:"variable"`
	K        int    `yaml:"k"`
}

func loadConfig(path string) (*modelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg modelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if len(cfg.Formulas) == 0 {
		return nil, fmt.Errorf("%w in %s", errNoFormulas, path)
	}
	return &cfg, nil
}

// options translates the config into build options.
func (c *modelConfig) options(logger *slog.Logger) ([]design.Option, error) {
	spacing, err := spline.ParseSpacing(c.SplineSpacing)
	if err != nil {
		return nil, err
	}
	schema, err := coding.ParseSchema(c.CodingSchema)
	if err != nil {
		return nil, err
	}
	opts := []design.Option{
		design.WithSplineSpacing(spacing),
		design.WithCodingSchema(schema),
		design.WithLogger(logger),
	}
	for _, name := range c.Categorical {
		if name == "" {
			return nil, fmt.Errorf("config: empty categorical name")
		}
	}
	if len(c.Categorical) > 0 {
		opts = append(opts, design.WithCategorical(c.Categorical...))
	}
	if len(c.Splines) > 0 {
		specs := make([]formula.SplineSpec, len(c.Splines))
		for i, s := range c.Splines {
			if s.Variable == "" || s.K < 1 {
				return nil, fmt.Errorf("%w: %+v", errSplineConfig, s)
			}
			specs[i] = formula.SplineSpec{Variable: s.Variable, K: s.K}
		}
		opts = append(opts, design.WithSplines(specs...))
	}
	return opts, nil
}

// loadEvents reads a list of attribute maps; "type" names the event type.
func loadEvents(path string) ([]events.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("events %s: %w", path, err)
	}
	out := make([]events.Event, len(raw))
	for i, m := range raw {
		typ, ok := m[events.TypeColumn].(string)
		if !ok || typ == "" {
			return nil, fmt.Errorf("%w (event %d in %s)", errEventType, i+1, path)
		}
		delete(m, events.TypeColumn)
		out[i] = events.NewEvent(typ, m)
	}
	return out, nil
}
