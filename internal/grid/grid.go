// Package grid holds the in-memory model of the rectilinear sample grid that
// population members are matched against. Axes are loaded once per run from a
// YAML definition, transformed into comparison space, validated, and read-only
// thereafter.
package grid

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/starlab-dev/starmatch/internal/dimension"
)

// ErrInvalidGrid is returned when a grid definition cannot be used: an axis is
// missing, has fewer than two samples, or is not strictly ascending after the
// comparison-space transform.
var ErrInvalidGrid = errors.New("invalid grid definition")

// Grid is a rectilinear, axis-aligned sample grid with one ascending sample
// sequence per schema axis, stored in comparison space (log axes already
// log10-transformed). Immutable after Load.
type Grid struct {
	schema *dimension.Schema
	axes   [][]float64
}

// Load builds a Grid from a mapping of axis name to physical-space samples.
// Log axes are transformed to log10 before validation, so samples on those
// axes must be positive. Every schema axis must be present; axes not in the
// schema are rejected rather than silently dropped.
func Load(schema *dimension.Schema, def map[string][]float64) (*Grid, error) {
	for name := range def {
		if schema.Index(name) < 0 {
			return nil, fmt.Errorf("%w: axis %q is not a matched dimension", ErrInvalidGrid, name)
		}
	}

	axes := make([][]float64, schema.Len())
	for i := 0; i < schema.Len(); i++ {
		ax := schema.Axis(i)
		samples, ok := def[ax.Name]
		if !ok {
			return nil, fmt.Errorf("%w: missing axis %q", ErrInvalidGrid, ax.Name)
		}
		if len(samples) < 2 {
			return nil, fmt.Errorf("%w: axis %q has %d samples, need at least 2", ErrInvalidGrid, ax.Name, len(samples))
		}

		transformed := make([]float64, len(samples))
		for j, v := range samples {
			if ax.Log {
				if v <= 0 {
					return nil, fmt.Errorf("%w: axis %q sample %d is %g, log axes require positive samples", ErrInvalidGrid, ax.Name, j, v)
				}
				transformed[j] = math.Log10(v)
			} else {
				transformed[j] = v
			}
		}

		for j := 1; j < len(transformed); j++ {
			if transformed[j] <= transformed[j-1] {
				return nil, fmt.Errorf("%w: axis %q is not strictly ascending at sample %d", ErrInvalidGrid, ax.Name, j)
			}
		}

		axes[i] = transformed
	}

	return &Grid{schema: schema, axes: axes}, nil
}

// LoadFile reads a YAML grid definition ({axis: [v1, v2, ...], ...}) and
// builds a Grid from it.
func LoadFile(schema *dimension.Schema, path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}

	var def map[string][]float64
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing grid file %s: %w", path, err)
	}

	g, err := Load(schema, def)
	if err != nil {
		return nil, fmt.Errorf("grid file %s: %w", path, err)
	}
	return g, nil
}

// Schema returns the schema the grid was loaded for.
func (g *Grid) Schema() *dimension.Schema { return g.schema }

// Axis returns the ordered comparison-space samples for schema axis i.
// Callers must not modify the returned slice.
func (g *Grid) Axis(i int) []float64 { return g.axes[i] }
