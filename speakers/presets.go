// SPDX-License-Identifier: EPL-2.0

package speakers

import (
	"fmt"
	"maps"
	"slices"
)

var presets = map[string]Layout{
	"stereo": {
		Name:    "stereo",
		Azimuth: []float64{30, -30},
		Bounds:  &Bounds{Min: -30, Max: 30},
	},
	"quad": {
		Name:    "quad",
		Azimuth: []float64{45, -45, 135, -135},
	},
	"5d0": {
		Name:      "5d0",
		Azimuth:   []float64{30, 0, -30, 110, -110},
		Elevation: []float64{0, 0, 0, 0, 0},
	},
	"5d0+4": {
		Name:      "5d0+4",
		Azimuth:   []float64{30, 0, -30, 110, -110, 45, -45, 135, -135},
		Elevation: []float64{0, 0, 0, 0, 0, 45, 45, 45, 45},
	},
	"octahedron": {
		Name:      "octahedron",
		Azimuth:   []float64{0, 90, 180, -90, 0, 0},
		Elevation: []float64{0, 0, 0, 0, 90, -90},
	},
}

// Preset returns a copy of the named built-in layout.
func Preset(name string) (Layout, error) {
	l, ok := presets[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return l.clone(), nil
}

// Presets returns the names of the built-in layouts in sorted order.
func Presets() []string {
	return slices.Sorted(maps.Keys(presets))
}
