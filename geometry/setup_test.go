// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/ik5/govbap/internal/testutil"
)

var (
	surround50Az = []float64{30, 0, -30, 110, -110}

	octahedronAz = []float64{0, 90, 180, -90, 0, 0}
	octahedronEl = []float64{0, 0, 0, 0, 90, -90}
)

func regionSpeakers(s *Setup) [][]int {
	out := make([][]int, 0, s.NumRegions())
	for i := range s.NumRegions() {
		out = append(out, slices.Clone(s.Region(i).Speakers()))
	}
	return out
}

func TestNew_Planar(t *testing.T) {
	t.Parallel()

	s, err := New(surround50Az, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.Dims() != Planar {
		t.Errorf("Dims() = %v, want %v", s.Dims(), Planar)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if s.Triangles() != nil {
		t.Errorf("Triangles() = %v, want nil for planar setup", s.Triangles())
	}

	// Walking the circle: -110, -30, 0, 30, 110 and back to -110.
	want := [][]int{{2, 4}, {1, 2}, {0, 1}, {0, 3}, {3, 4}}
	got := regionSpeakers(s)
	if !slices.EqualFunc(got, want, slices.Equal[[]int]) {
		t.Errorf("regions = %v, want %v", got, want)
	}
}

func TestNew_PlanarZeroElevationsStayPlanar(t *testing.T) {
	t.Parallel()

	s, err := New(surround50Az, []float64{0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Dims() != Planar {
		t.Errorf("Dims() = %v, want %v", s.Dims(), Planar)
	}
}

func TestNew_PlanarDropsWideSpans(t *testing.T) {
	t.Parallel()

	// Three speakers spanning 90 degrees: the closing pair spans 270.
	s, err := New([]float64{-45, 0, 45}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := [][]int{{0, 1}, {1, 2}}
	if got := regionSpeakers(s); !slices.EqualFunc(got, want, slices.Equal[[]int]) {
		t.Errorf("regions = %v, want %v", got, want)
	}
}

func TestNew_Octahedron(t *testing.T) {
	t.Parallel()

	s, err := New(octahedronAz, octahedronEl)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.Dims() != Spherical {
		t.Errorf("Dims() = %v, want %v", s.Dims(), Spherical)
	}

	want := [][3]int{
		{0, 1, 4}, {0, 1, 5}, {0, 3, 4}, {0, 3, 5},
		{1, 2, 4}, {1, 2, 5}, {2, 3, 4}, {2, 3, 5},
	}
	if got := s.Triangles(); !slices.Equal(got, want) {
		t.Errorf("Triangles() = %v, want %v", got, want)
	}
	if s.NumRegions() != len(want) {
		t.Errorf("NumRegions() = %d, want %d", s.NumRegions(), len(want))
	}
}

func TestNew_DeterministicRegionOrder(t *testing.T) {
	t.Parallel()

	az := []float64{30, 0, -30, 110, -110, 45, -45, 135, -135, 0}
	el := []float64{0, 0, 0, 0, 0, 45, 45, 45, 45, -60}

	first, err := New(az, el)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for range 5 {
		again, err := New(az, el)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if !slices.EqualFunc(regionSpeakers(first), regionSpeakers(again), slices.Equal[[]int]) {
			t.Fatal("region order differs between identical setups")
		}
	}

	regions := regionSpeakers(first)
	if !slices.IsSortedFunc(regions, slices.Compare[[]int]) {
		t.Errorf("regions not in ascending index order: %v", regions)
	}
}

func TestNew_HemisphereExcludesFloor(t *testing.T) {
	t.Parallel()

	// 5.0+4: every speaker at or above the horizon. The hull's floor lies in the
	// horizontal plane through the listener and must not become a region.
	s, err := New(
		[]float64{30, 0, -30, 110, -110, 45, -45, 135, -135},
		[]float64{0, 0, 0, 0, 0, 45, 45, 45, 45},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range s.NumRegions() {
		allHorizontal := true
		for _, sp := range s.Region(i).Speakers() {
			if s.Speaker(sp).Elevation != 0 {
				allHorizontal = false
			}
		}
		if allHorizontal {
			t.Errorf("region %v lies on the horizontal plane", s.Region(i).Speakers())
		}
	}
	if len(s.Triangles()) <= s.NumRegions() {
		t.Errorf("Triangles() = %d faces, want more than the %d regions", len(s.Triangles()), s.NumRegions())
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		az   []float64
		el   []float64
		want error
	}{
		{"no speakers", nil, nil, ErrTooFewSpeakers},
		{"single planar speaker", []float64{0}, nil, ErrTooFewSpeakers},
		{"three spherical speakers", []float64{0, 90, 180}, []float64{10, 10, 10}, ErrTooFewSpeakers},
		{"length mismatch", []float64{0, 90}, []float64{0}, ErrLengthMismatch},
		{"azimuth -180", []float64{-180, 0}, nil, ErrAngleOutOfRange},
		{"azimuth above 180", []float64{0, 181}, nil, ErrAngleOutOfRange},
		{"azimuth NaN", []float64{0, math.NaN()}, nil, ErrAngleOutOfRange},
		{"elevation above 90", []float64{0, 90}, []float64{0, 91}, ErrAngleOutOfRange},
		{"duplicate planar", []float64{30, 30, -30}, nil, ErrDuplicateSpeaker},
		{"duplicate zenith", []float64{0, 90, 180, -90, 0, 45}, []float64{0, 0, 0, 0, 90, 90}, ErrDuplicateSpeaker},
		{"opposite pair", []float64{-90, 90}, nil, ErrNoRegions},
		{
			name: "great circle through the poles",
			az:   []float64{0, 0, 180, 0},
			el:   []float64{0, 90, 0, -90},
			want: ErrCoplanar,
		},
		{
			name: "elevated ring",
			az:   []float64{0, 90, 180, -90},
			el:   []float64{30, 30, 30, 30},
			want: ErrCoplanar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := New(tt.az, tt.el)
			if s != nil {
				t.Errorf("New() = %v, want nil setup", s)
			}

			var setupErr *SetupError
			if !errors.As(err, &setupErr) {
				t.Fatalf("New() error = %v, want *SetupError", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegion_GainsReproduceTarget(t *testing.T) {
	t.Parallel()

	s, err := New(octahedronAz, octahedronEl)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	target := Direction{Azimuth: 20, Elevation: 30}.Vector3D()
	for i := range s.NumRegions() {
		r := s.Region(i)
		g := r.Gains(target)

		var back Vec3
		for k, sp := range r.Speakers() {
			back = back.Add(s.Vector(sp).Scale(g[k]))
		}
		testutil.RequireSliceNearlyEqual(t, back[:], target[:], 1e-12)
	}
}

func TestSetup_AccessorsCopy(t *testing.T) {
	t.Parallel()

	s, err := New(surround50Az, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	dirs := s.Speakers()
	dirs[0].Azimuth = 99
	if s.Speaker(0).Azimuth != 30 {
		t.Errorf("Speakers() exposed internal state: Speaker(0) = %v", s.Speaker(0))
	}
}

func BenchmarkNew_Spherical(b *testing.B) {
	az := []float64{30, 0, -30, 110, -110, 45, -45, 135, -135, 0, 90, -90, 180, 0}
	el := []float64{0, 0, 0, 0, 0, 45, 45, 45, 45, 90, 0, 0, 0, -60}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := New(az, el); err != nil {
			b.Fatal(err)
		}
	}
}
