package match

import (
	"errors"
	"fmt"
	"math"

	"github.com/starlab-dev/starmatch/internal/dimension"
)

// ErrInvalidValue is returned when a non-positive value is submitted for a
// log-space axis. The caller decides whether to skip the member or abort.
var ErrInvalidValue = errors.New("invalid value for log axis")

// ToComparisonSpace converts a physical-space coordinate into comparison
// space: log axes become their base-10 logarithm, other axes pass through.
func ToComparisonSpace(schema *dimension.Schema, v dimension.Vector) (dimension.Vector, error) {
	out := v.Clone()
	for i := 0; i < schema.Len(); i++ {
		ax := schema.Axis(i)
		if !ax.Log {
			continue
		}
		if v[i] <= 0 {
			return nil, fmt.Errorf("%w: %s=%g", ErrInvalidValue, ax.Name, v[i])
		}
		out[i] = math.Log10(v[i])
	}
	return out, nil
}

// ToPhysicalSpace converts a comparison-space coordinate back to physical
// space. Log axes become 10^x rounded to 2 decimal digits. The rounding is a
// deliberate, lossy normalization: it keeps downstream distance computations
// and trace output stable across the transform round trip.
func ToPhysicalSpace(schema *dimension.Schema, v dimension.Vector) dimension.Vector {
	out := v.Clone()
	for i := 0; i < schema.Len(); i++ {
		if schema.Axis(i).Log {
			out[i] = math.Round(math.Pow(10, v[i])*100) / 100
		}
	}
	return out
}
