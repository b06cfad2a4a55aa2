// SPDX-License-Identifier: EPL-2.0

package speakers

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/govbap/geometry"
	"github.com/ik5/govbap/vbap"
)

// Bounds limits the azimuth a source may be panned to, in degrees.
type Bounds struct {
	Min float64 `json:"min" yaml:"min" toml:"min"`
	Max float64 `json:"max" yaml:"max" toml:"max"`
}

// Clamp wraps az into (-180, 180] and limits it to [b.Min, b.Max].
func (b Bounds) Clamp(az float64) float64 {
	return min(max(geometry.WrapAzimuth(az), b.Min), b.Max)
}

// Contains reports whether az, once wrapped into (-180, 180], lies within
// the bounds.
func (b Bounds) Contains(az float64) bool {
	az = geometry.WrapAzimuth(az)
	return az >= b.Min && az <= b.Max
}

// Layout describes a loudspeaker array. Index i of Azimuth and Elevation is
// output channel i. Elevation may be nil for planar arrays.
type Layout struct {
	Name      string    `json:"name" yaml:"name" toml:"name"`
	Azimuth   []float64 `json:"azimuth" yaml:"azimuth" toml:"azimuth"`
	Elevation []float64 `json:"elevation,omitempty" yaml:"elevation,omitempty" toml:"elevation,omitempty"`
	Bounds    *Bounds   `json:"bounds,omitempty" yaml:"bounds,omitempty" toml:"bounds,omitempty"`
}

// Len returns the number of loudspeakers.
func (l Layout) Len() int { return len(l.Azimuth) }

// Directions returns the loudspeaker directions in channel order.
func (l Layout) Directions() []geometry.Direction {
	out := make([]geometry.Direction, len(l.Azimuth))
	for i, az := range l.Azimuth {
		out[i].Azimuth = az
		if i < len(l.Elevation) {
			out[i].Elevation = l.Elevation[i]
		}
	}
	return out
}

// Clamp limits d to the layout's bounds, if it has any.
func (l Layout) Clamp(d geometry.Direction) geometry.Direction {
	if l.Bounds != nil {
		d.Azimuth = l.Bounds.Clamp(d.Azimuth)
	}
	return d
}

// Engine builds a panning engine for the layout.
func (l Layout) Engine(opts ...vbap.Option) (*vbap.Engine, error) {
	return vbap.New(l.Azimuth, l.Elevation, opts...)
}

// Validate checks the layout's shape. Geometry is checked by the engine.
func (l Layout) Validate() error {
	if len(l.Azimuth) == 0 {
		return fmt.Errorf("%w: no loudspeaker positions", ErrMalformedLayout)
	}
	if l.Elevation != nil && len(l.Elevation) != len(l.Azimuth) {
		return fmt.Errorf("%w: %d azimuths, %d elevations", ErrMalformedLayout, len(l.Azimuth), len(l.Elevation))
	}
	if b := l.Bounds; b != nil {
		if math.IsNaN(b.Min) || math.IsNaN(b.Max) || b.Min > b.Max || b.Min < -180 || b.Max > 180 {
			return fmt.Errorf("%w: bounds [%g, %g]", ErrMalformedLayout, b.Min, b.Max)
		}
	}
	return nil
}

func (l Layout) clone() Layout {
	l.Azimuth = slices.Clone(l.Azimuth)
	l.Elevation = slices.Clone(l.Elevation)
	if l.Bounds != nil {
		b := *l.Bounds
		l.Bounds = &b
	}
	return l
}
