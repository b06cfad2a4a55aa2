// SPDX-License-Identifier: EPL-2.0

// Package geometry builds the geometric model of a loudspeaker array.
//
// A Setup is created once from the angular positions of the loudspeakers and is
// immutable afterwards. It holds one unit vector per loudspeaker and the set of
// candidate regions a source can be panned into:
//
//   - Planar (2-D) arrays, where every elevation is zero. Vectors are
//     (-sin(az), cos(az)) and regions are pairs of angularly adjacent speakers.
//   - Spherical (3-D) arrays, where at least one elevation is non-zero. Vectors are
//     (cos(el)cos(az), cos(el)sin(az), sin(el)) and regions are the faces of the
//     convex hull of the speaker vectors.
//
// Each region carries the inverse of its basis matrix (the speaker vectors stacked
// as columns), computed once at construction so the real-time path only needs a
// matrix-vector product.
//
// # Building a Setup
//
//	// 5.0 surround, planar
//	s, err := geometry.New([]float64{30, 0, -30, 110, -110}, nil)
//
//	// 5.0 + 4 height speakers, spherical
//	s, err := geometry.New(
//	    []float64{30, 0, -30, 110, -110, 45, -45, 135, -135},
//	    []float64{0, 0, 0, 0, 0, 45, 45, 45, 45},
//	)
//
// Degenerate arrays (too few speakers, duplicates, all speakers colinear or
// coplanar, no usable region) are rejected with a *SetupError.
//
// # Region order
//
// Spherical regions are ordered by their ascending speaker index triple, so the
// same speaker list always yields the same region order regardless of the order
// in which the hull was built.
package geometry
