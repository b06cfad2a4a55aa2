// SPDX-License-Identifier: EPL-2.0

package vbap

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/govbap/internal/testutil"
)

func TestSolve(t *testing.T) {
	t.Parallel()

	// Columns are the unit vectors of speakers at 30 and 0 degrees.
	basis := [][]float64{
		{-0.5, 0},
		{math.Sqrt(3) / 2, 1},
	}
	target := []float64{-math.Sin(15 * math.Pi / 180), math.Cos(15 * math.Pi / 180)}

	g, err := Solve(basis, target)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	testutil.RequireNearlyEqual(t, "g[0]", g[0], g[1], testutil.Eps)

	back := []float64{
		basis[0][0]*g[0] + basis[0][1]*g[1],
		basis[1][0]*g[0] + basis[1][1]*g[1],
	}
	testutil.RequireSliceNearlyEqual(t, back, target, testutil.Eps)
}

func TestSolve_Singular(t *testing.T) {
	t.Parallel()

	basis := [][]float64{
		{1, 2, 3},
		{2, 4, 6},
		{0, 0, 1},
	}
	_, err := Solve(basis, []float64{1, 0, 0})

	var singular *SingularBasisError
	if !errors.As(err, &singular) {
		t.Fatalf("Solve() error = %v, want *SingularBasisError", err)
	}
	if len(singular.Speakers) != 3 {
		t.Errorf("SingularBasisError.Speakers = %v, want 3 entries", singular.Speakers)
	}
}

func TestSolve_ShapeMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		basis  [][]float64
		target []float64
	}{
		{"rows", [][]float64{{1, 0}}, []float64{1, 0}},
		{"columns", [][]float64{{1, 0}, {0}}, []float64{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Solve(tt.basis, tt.target); err == nil {
				t.Error("Solve() error = nil, want shape error")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		gains   []float64
		volNorm float64
		want    []float64
	}{
		{"unit power", []float64{3, 4}, 1, []float64{0.6, 0.8}},
		{"power four", []float64{3, 4}, 4, []float64{1.2, 1.6}},
		{"single speaker", []float64{0.25, 0, 0}, 2, []float64{math.Sqrt2, 0, 0}},
		{"mute", []float64{3, 4}, 0, []float64{0, 0}},
		{"all zero", []float64{0, 0, 0}, 1, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			Normalize(tt.gains, tt.volNorm)
			testutil.RequireSliceNearlyEqual(t, tt.gains, tt.want, testutil.Eps)
		})
	}
}

func TestNormalizeRegion_MatchesNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		gains   []float64
		volNorm float64
	}{
		{"single", []float64{0.3}, 1},
		{"pair", []float64{0.2, 0.7}, 1},
		{"triangle", []float64{0.1, 0.4, 0.9}, 2.5},
		{"muted", []float64{0.5, 0.5, 0.5}, 0},
		{"all zero", []float64{0, 0}, 1},
		{"tiny", []float64{1e-12, 3e-12, 2e-12}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := append([]float64(nil), tt.gains...)
			Normalize(want, tt.volNorm)

			r := ActiveRegion{Size: len(tt.gains)}
			copy(r.Gains[:], tt.gains)
			normalizeRegion(&r, tt.volNorm)

			testutil.RequireSliceNearlyEqual(t, r.Gains[:r.Size], want, 1e-12)
			for i := r.Size; i < len(r.Gains); i++ {
				if r.Gains[i] != 0 {
					t.Errorf("Gains[%d] = %g past Size, want 0", i, r.Gains[i])
				}
			}
		})
	}
}
