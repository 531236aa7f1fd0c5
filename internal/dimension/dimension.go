// Package dimension defines the closed, ordered set of matched axes and the
// fixed-shape coordinate vectors used throughout the matchmaking engine.
// Keying coordinates by position in a validated schema replaces the loose
// name-keyed maps a matchmaker might otherwise pass around, so a missing or
// misspelled dimension is caught once at startup instead of deep inside a pass.
package dimension

import (
	"fmt"
)

// Axis describes one matched dimension.
type Axis struct {
	// Name is the short dimension name used in grid files and log output.
	Name string

	// Column is the population database column the dimension is read from.
	Column string

	// CatalogColumn is the catalog database column holding the same quantity
	// for detailed runs.
	CatalogColumn string

	// Log marks axes compared in log10 space.
	Log bool
}

// Schema is an ordered, immutable set of axes. The order is significant for
// grid-cell corner enumeration; build it once from configuration and share it.
type Schema struct {
	axes  []Axis
	index map[string]int
}

// NewSchema validates the axis list and builds a schema.
func NewSchema(axes []Axis) (*Schema, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("schema requires at least one axis")
	}

	index := make(map[string]int, len(axes))
	for i, ax := range axes {
		if ax.Name == "" {
			return nil, fmt.Errorf("axis %d has an empty name", i)
		}
		if ax.Column == "" {
			return nil, fmt.Errorf("axis %q has an empty population column", ax.Name)
		}
		if ax.CatalogColumn == "" {
			return nil, fmt.Errorf("axis %q has an empty catalog column", ax.Name)
		}
		if _, dup := index[ax.Name]; dup {
			return nil, fmt.Errorf("duplicate axis name %q", ax.Name)
		}
		index[ax.Name] = i
	}

	s := &Schema{
		axes:  make([]Axis, len(axes)),
		index: index,
	}
	copy(s.axes, axes)
	return s, nil
}

// Len returns the number of axes.
func (s *Schema) Len() int { return len(s.axes) }

// Axis returns the axis at position i in schema order.
func (s *Schema) Axis(i int) Axis { return s.axes[i] }

// Axes returns the axes in schema order. The returned slice is a copy.
func (s *Schema) Axes() []Axis {
	out := make([]Axis, len(s.axes))
	copy(out, s.axes)
	return out
}

// Index returns the position of the named axis, or -1 if it is not declared.
func (s *Schema) Index(name string) int {
	i, ok := s.index[name]
	if !ok {
		return -1
	}
	return i
}

// Vector is a coordinate with exactly one value per schema axis, in schema
// order. A Vector is only meaningful together with the Schema it was built for.
type Vector []float64

// NewVector returns a zero vector shaped for the schema.
func (s *Schema) NewVector() Vector {
	return make(Vector, len(s.axes))
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// String formats v against the schema for log output, e.g. "(m1=10.00, ecc=0.45)".
func (s *Schema) String(v Vector) string {
	out := "("
	for i, ax := range s.axes {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%.2f", ax.Name, v[i])
	}
	return out + ")"
}
