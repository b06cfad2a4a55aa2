// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Dimension selects the planar or spherical model of a Setup.
type Dimension int

const (
	Planar    Dimension = 2
	Spherical Dimension = 3
)

func (d Dimension) String() string {
	switch d {
	case Planar:
		return "2-D"
	case Spherical:
		return "3-D"
	default:
		return "unknown"
	}
}

const (
	minPlanarSpeakers    = 2
	minSphericalSpeakers = 4

	// Two speakers closer than this (unit-vector distance) are duplicates.
	duplicateEps = 1e-9
	// A hull face must keep the listener at least this far inside its plane.
	enclosureEps = 1e-9
	// Planar pairs spanning this many degrees or more cannot form a basis.
	maxPairSpan = 180 - 1e-9
)

// Region is a candidate active region: 2 (planar) or 3 (spherical) speakers and
// the inverse of the basis whose columns are their unit vectors.
type Region struct {
	speakers [3]int
	size     int
	inv      [3][3]float64
}

// Size returns the number of speakers bounding the region.
func (r *Region) Size() int { return r.size }

// Speakers returns the speaker indices of the region in ascending order.
// The returned slice aliases the region and must not be modified.
func (r *Region) Speakers() []int { return r.speakers[:r.size] }

// Gains returns the un-normalized gains that reproduce target from the region's
// speakers, in the order of Speakers. Entries past Size are zero.
func (r *Region) Gains(target Vec3) [3]float64 {
	var g [3]float64
	for i := range r.size {
		for j := range r.size {
			g[i] += r.inv[i][j] * target[j]
		}
	}
	return g
}

// Setup is the immutable geometric model of a loudspeaker array.
type Setup struct {
	dims      Dimension
	speakers  []Direction
	vectors   []Vec3
	triangles [][3]int
	regions   []Region
}

// New builds a Setup from loudspeaker azimuths and optional elevations, both in
// degrees. Azimuths must be in (-180, 180] and elevations in [-90, 90]. When
// elevations is nil or all zero the array is planar, otherwise it is spherical.
func New(azimuths, elevations []float64) (*Setup, error) {
	if elevations != nil && len(elevations) != len(azimuths) {
		return nil, setupErr(ErrLengthMismatch, "%d azimuths, %d elevations", len(azimuths), len(elevations))
	}

	s := &Setup{
		dims:     Planar,
		speakers: make([]Direction, len(azimuths)),
		vectors:  make([]Vec3, len(azimuths)),
	}

	for i, az := range azimuths {
		if math.IsNaN(az) || az <= -180 || az > 180 {
			return nil, setupErr(ErrAngleOutOfRange, "speaker %d azimuth %g not in (-180, 180]", i, az)
		}
		s.speakers[i].Azimuth = az
	}
	for i, el := range elevations {
		if math.IsNaN(el) || el < -90 || el > 90 {
			return nil, setupErr(ErrAngleOutOfRange, "speaker %d elevation %g not in [-90, 90]", i, el)
		}
		s.speakers[i].Elevation = el
		if el != 0 {
			s.dims = Spherical
		}
	}

	for i, d := range s.speakers {
		s.vectors[i] = d.Vector(s.dims)
		for j := range i {
			if s.vectors[i].Sub(s.vectors[j]).Len() < duplicateEps {
				return nil, setupErr(ErrDuplicateSpeaker, "speakers %d and %d", j, i)
			}
		}
	}

	var err error
	if s.dims == Planar {
		err = s.buildPairs()
	} else {
		err = s.buildTriangles()
	}
	if err != nil {
		return nil, err
	}

	if len(s.regions) == 0 {
		return nil, setupErr(ErrNoRegions, "%s array of %d speakers", s.dims, len(s.speakers))
	}
	return s, nil
}

// buildPairs links every speaker to its angular neighbour, walking the circle
// by increasing azimuth and closing it with the wrap-around pair.
func (s *Setup) buildPairs() error {
	n := len(s.speakers)
	if n < minPlanarSpeakers {
		return setupErr(ErrTooFewSpeakers, "need at least %d for a 2-D array, got %d", minPlanarSpeakers, n)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(s.speakers[a].Azimuth, s.speakers[b].Azimuth)
	})

	for k := range n {
		a, b := order[k], order[(k+1)%n]
		span := s.speakers[b].Azimuth - s.speakers[a].Azimuth
		if k == n-1 {
			span += 360
		}
		if span >= maxPairSpan {
			continue
		}
		r, err := s.region(min(a, b), max(a, b))
		if err != nil {
			return err
		}
		s.regions = append(s.regions, r)
	}
	return nil
}

// buildTriangles triangulates the sphere with the convex hull of the speaker
// vectors. Faces whose plane does not keep the listener strictly inside are
// dropped: directions behind them are outside the array's coverage.
func (s *Setup) buildTriangles() error {
	faces, err := convexHull(s.vectors)
	if err != nil {
		return err
	}

	for _, f := range faces {
		tri := f.v
		slices.Sort(tri[:])
		s.triangles = append(s.triangles, tri)
		if f.offset <= enclosureEps {
			continue
		}
		r, err := s.region(tri[:]...)
		if err != nil {
			return err
		}
		s.regions = append(s.regions, r)
	}

	slices.SortFunc(s.triangles, compareTriple)
	slices.SortFunc(s.regions, func(a, b Region) int {
		return compareTriple(a.speakers, b.speakers)
	})
	return nil
}

func compareTriple(a, b [3]int) int {
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// region inverts the basis formed by the given speakers' vectors.
func (s *Setup) region(idx ...int) (Region, error) {
	size := len(idx)
	basis := mat.NewDense(size, size, nil)
	for c, sp := range idx {
		for r := range size {
			basis.Set(r, c, s.vectors[sp][r])
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(basis); err != nil {
		return Region{}, &SetupError{Err: &SingularBasisError{Speakers: slices.Clone(idx), Err: err}}
	}

	r := Region{size: size}
	copy(r.speakers[:], idx)
	for i := range size {
		for j := range size {
			r.inv[i][j] = inv.At(i, j)
		}
	}
	return r, nil
}

// Dims reports whether the setup is planar or spherical.
func (s *Setup) Dims() Dimension { return s.dims }

// Len returns the number of loudspeakers (output channels).
func (s *Setup) Len() int { return len(s.speakers) }

// Speaker returns the direction of loudspeaker i.
func (s *Setup) Speaker(i int) Direction { return s.speakers[i] }

// Speakers returns a copy of all loudspeaker directions in channel order.
func (s *Setup) Speakers() []Direction { return slices.Clone(s.speakers) }

// Vector returns the unit vector of loudspeaker i.
func (s *Setup) Vector(i int) Vec3 { return s.vectors[i] }

// Triangles returns a copy of the convex hull faces of a spherical setup,
// each as ascending speaker indices. It is nil for planar setups.
func (s *Setup) Triangles() [][3]int { return slices.Clone(s.triangles) }

// NumRegions returns the number of candidate regions.
func (s *Setup) NumRegions() int { return len(s.regions) }

// Region returns candidate region i. Regions are read-only.
func (s *Setup) Region(i int) *Region { return &s.regions[i] }
